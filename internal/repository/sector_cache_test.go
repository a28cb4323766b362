package repository

import (
	"context"
	"testing"
	"time"

	"DropWatch/pkg/cache"
)

type countingSectorSource struct {
	calls   int
	sectors map[string]string
}

func (c *countingSectorSource) Sector(_ context.Context, symbol string) (string, error) {
	c.calls++
	if s, ok := c.sectors[symbol]; ok {
		return s, nil
	}
	return "Unknown", nil
}

func TestCachedSectorSource(t *testing.T) {
	upstream := &countingSectorSource{sectors: map[string]string{"AAPL": "Technology"}}
	mem := cache.NewMemoryCache()
	defer mem.Close()

	src := NewCachedSectorSource(upstream, mem, time.Hour, 0, testLogger(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := src.Sector(ctx, "AAPL")
		if err != nil {
			t.Fatalf("sector: %v", err)
		}
		if got != "Technology" {
			t.Fatalf("sector = %q, want Technology", got)
		}
	}
	if upstream.calls != 1 {
		t.Fatalf("upstream calls = %d, want 1 (cache must absorb repeats)", upstream.calls)
	}

	if got, _ := src.Sector(ctx, "ZZZZ"); got != "Unknown" {
		t.Fatalf("unknown symbol sector = %q, want Unknown", got)
	}
	if upstream.calls != 2 {
		t.Fatalf("upstream calls = %d, want 2", upstream.calls)
	}
}
