package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"DropWatch/internal/domain/models"
	domrepo "DropWatch/internal/domain/repository"
	"DropWatch/pkg/logger"
	"DropWatch/pkg/util"
)

const triggerLogPrefix = "trigger_log_"

// CSVTriggerLog stores trigger rows as one CSV file per calendar date in a
// flat directory. A re-run for the same date overwrites its partition, so
// the log never double-counts.
type CSVTriggerLog struct {
	dir string
	log *logger.Logger
}

func NewCSVTriggerLog(dir string, log *logger.Logger) (*CSVTriggerLog, error) {
	if dir == "" {
		return nil, fmt.Errorf("trigger log dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create trigger log dir: %w", err)
	}
	return &CSVTriggerLog{dir: dir, log: log}, nil
}

func (c *CSVTriggerLog) partitionPath(date time.Time) string {
	return filepath.Join(c.dir, triggerLogPrefix+date.Format(util.DateLayout)+".csv")
}

// Append writes the date's partition. The whole file is rewritten; entries
// must be the complete trigger set for that date.
func (c *CSVTriggerLog) Append(ctx context.Context, date time.Time, entries []models.TriggerLogEntry) error {
	path := c.partitionPath(date)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create partition: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"symbol", "date", "alert_type"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		row := []string{e.Symbol, e.Date.Format(util.DateLayout), string(e.AlertType)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush partition: %w", err)
	}

	c.log.Info("trigger log written",
		logger.String("path", path),
		logger.Int("entries", len(entries)))
	return nil
}

// ReadWindow loads entries for every business-day partition between from
// and to inclusive. Missing files contribute nothing; unreadable or
// malformed partitions are skipped with a warning so one corrupt day can't
// sink the repeat scan.
func (c *CSVTriggerLog) ReadWindow(ctx context.Context, from, to time.Time) ([]models.TriggerLogEntry, error) {
	var out []models.TriggerLogEntry
	for d := util.Midnight(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		if !util.IsBusinessDay(d) {
			continue
		}
		entries, err := c.readPartition(d)
		if err != nil {
			if !os.IsNotExist(err) {
				c.log.Warn("skipping trigger partition",
					logger.String("date", d.Format(util.DateLayout)),
					logger.Error(err))
			}
			continue
		}
		out = append(out, entries...)
	}
	return out, nil
}

func (c *CSVTriggerLog) readPartition(date time.Time) ([]models.TriggerLogEntry, error) {
	f, err := os.Open(c.partitionPath(date))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	var out []models.TriggerLogEntry
	for i, row := range rows {
		if i == 0 && row[0] == "symbol" {
			continue
		}
		d, ok := util.ParseDate(row[1])
		if !ok {
			return nil, fmt.Errorf("row %d: bad date %q", i, row[1])
		}
		out = append(out, models.TriggerLogEntry{
			Symbol:    util.NormalizeSymbol(row[0]),
			Date:      d,
			AlertType: models.AlertType(row[2]),
		})
	}
	return out, nil
}

var (
	_ domrepo.TriggerLogWriter = (*CSVTriggerLog)(nil)
	_ domrepo.TriggerLogReader = (*CSVTriggerLog)(nil)
)
