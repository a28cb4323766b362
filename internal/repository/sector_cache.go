package repository

import (
	"context"
	"errors"
	"time"

	domrepo "DropWatch/internal/domain/repository"
	"DropWatch/pkg/cache"
	"DropWatch/pkg/logger"
)

// CachedSectorSource decorates a SectorSource with a cache layer and a
// polite delay before each upstream lookup. Sectors change rarely, so a
// long TTL keeps the profile endpoint mostly untouched.
type CachedSectorSource struct {
	next  domrepo.SectorSource
	cache cache.Service
	ttl   time.Duration
	delay time.Duration
	log   *logger.Logger
}

func NewCachedSectorSource(next domrepo.SectorSource, c cache.Service, ttl, delay time.Duration, log *logger.Logger) *CachedSectorSource {
	return &CachedSectorSource{next: next, cache: c, ttl: ttl, delay: delay, log: log}
}

func sectorKey(symbol string) string { return "sector:" + symbol }

// Sector returns the cached sector, falling back to the upstream source on
// a miss. Cache faults degrade to a direct lookup.
func (s *CachedSectorSource) Sector(ctx context.Context, symbol string) (string, error) {
	key := sectorKey(symbol)
	if v, err := s.cache.Get(ctx, key); err == nil && v != "" {
		return v, nil
	} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("sector cache get failed", logger.String("symbol", symbol), logger.Error(err))
	}

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}

	sector, err := s.next.Sector(ctx, symbol)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, key, sector, s.ttl); err != nil {
		s.log.Warn("sector cache set failed", logger.String("symbol", symbol), logger.Error(err))
	}
	return sector, nil
}

var _ domrepo.SectorSource = (*CachedSectorSource)(nil)
