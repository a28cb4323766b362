package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"DropWatch/internal/domain/models"
	domrepo "DropWatch/internal/domain/repository"
	pkgch "DropWatch/pkg/clickhouse"
	applogger "DropWatch/pkg/logger"
)

// CHSignalStore persists per-run signal records in ClickHouse for history
// queries. Writes are best effort at the usecase level; the daily report
// never depends on the store being up.
type CHSignalStore struct {
	client *pkgch.Client
	db     *sql.DB
	l      *applogger.Logger
}

func NewCHSignalStore(ch *pkgch.Client) *CHSignalStore {
	return &CHSignalStore{client: ch, db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHSignalStore) SetLogger(l *applogger.Logger) { s.l = l }

var signalSchema = []string{
	`CREATE TABLE IF NOT EXISTS signal_records (
        run_date          Date,
        symbol            String,
        latest_price      Float64,
        low_3m            Nullable(Float64),
        high_3m           Nullable(Float64),
        low_6m            Nullable(Float64),
        high_6m           Nullable(Float64),
        low_52w           Nullable(Float64),
        high_52w          Float64,
        pct_drop_prev     Float64,
        pct_drop_open     Float64,
        down_streak       Int32,
        drop_from_52w     Nullable(Float64),
        created_at        DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(created_at)
    PARTITION BY toYYYYMM(run_date)
    ORDER BY (run_date, symbol)`,
}

// Init ensures the signal table exists.
func (s *CHSignalStore) Init(ctx context.Context) error {
	if err := s.client.InitSchema(ctx, signalSchema); err != nil {
		return fmt.Errorf("init signal schema: %w", err)
	}
	return nil
}

// StoreBatch inserts one run's records in a single prepared batch.
func (s *CHSignalStore) StoreBatch(ctx context.Context, records []*models.SignalRecord) error {
	if len(records) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO signal_records
        (run_date, symbol, latest_price, low_3m, high_3m, low_6m, high_6m,
         low_52w, high_52w, pct_drop_prev, pct_drop_open, down_streak, drop_from_52w)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.AsOf, r.Symbol, r.LatestPrice,
			r.Low3m, r.High3m, r.Low6m, r.High6m,
			r.Low52w, r.High52w,
			r.PctDropFromPrevClose, r.PctDropOpenToClose,
			int32(r.DownStreak), r.DropFrom52wHigh,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s: %w", r.Symbol, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	if s.l != nil {
		s.l.Info("clickhouse signal batch stored",
			applogger.Int("records", len(records)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// Query returns a symbol's records between from and to, ascending, capped
// at limit (0 means no cap).
func (s *CHSignalStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.SignalRecord, error) {
	q := `SELECT run_date, symbol, latest_price, low_3m, high_3m, low_6m, high_6m,
               low_52w, high_52w, pct_drop_prev, pct_drop_open, down_streak, drop_from_52w
        FROM signal_records FINAL
        WHERE symbol = ? AND run_date >= ? AND run_date <= ?
        ORDER BY run_date ASC`
	args := []any{symbol, from, to}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse signal query error",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	out := make([]*models.SignalRecord, 0, 64)
	for rows.Next() {
		var r models.SignalRecord
		var streak int32
		if err := rows.Scan(&r.AsOf, &r.Symbol, &r.LatestPrice,
			&r.Low3m, &r.High3m, &r.Low6m, &r.High6m,
			&r.Low52w, &r.High52w,
			&r.PctDropFromPrevClose, &r.PctDropOpenToClose,
			&streak, &r.DropFrom52wHigh,
		); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		r.DownStreak = int(streak)
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// Health pings the backing pool.
func (s *CHSignalStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

// Close releases the pool.
func (s *CHSignalStore) Close() error {
	return s.client.Close()
}

var _ domrepo.SignalStore = (*CHSignalStore)(nil)
