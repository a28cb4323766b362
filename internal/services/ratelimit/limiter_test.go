package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowConsumesCapacity(t *testing.T) {
	l := New()
	now := time.Now()
	for i := 0; i < 3; i++ {
		if !l.allowAt("k", 3, 0, now) {
			t.Fatalf("request %d within capacity must pass", i)
		}
	}
	if l.allowAt("k", 3, 0, now) {
		t.Fatalf("request beyond capacity must be rejected")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()
	now := time.Now()
	if !l.allowAt("k", 1, 2, now) {
		t.Fatalf("first request must pass")
	}
	if l.allowAt("k", 1, 2, now) {
		t.Fatalf("bucket drained, must reject")
	}
	// 2 tokens/sec: after 600ms one token is back.
	if !l.allowAt("k", 1, 2, now.Add(600*time.Millisecond)) {
		t.Fatalf("refilled token must pass")
	}
}

func TestAllowKeysIndependent(t *testing.T) {
	l := New()
	now := time.Now()
	if !l.allowAt("a", 1, 0, now) {
		t.Fatalf("key a must pass")
	}
	if !l.allowAt("b", 1, 0, now) {
		t.Fatalf("draining key a must not affect key b")
	}
}

func TestWaitContextCancelled(t *testing.T) {
	l := New()
	// Drain the bucket with no refill so Wait can only exit via ctx.
	if !l.Allow("k", 1, 0) {
		t.Fatalf("first request must pass")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 0); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestWaitEventuallyPasses(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 50) {
		t.Fatalf("first request must pass")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 50); err != nil {
		t.Fatalf("wait must succeed once the bucket refills: %v", err)
	}
}
