package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestUnlimitedByDefault(t *testing.T) {
	tests := []struct {
		name string
		rate float64
	}{
		{name: "zero", rate: 0},
		{name: "negative", rate: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.rate)
			if got := l.Limit(); got != 0 {
				t.Fatalf("Limit() = %v, want 0 (unlimited)", got)
			}

			start := time.Now()
			for range 100 {
				if err := l.Wait(context.Background()); err != nil {
					t.Fatalf("Wait: %v", err)
				}
			}
			if elapsed := time.Since(start); elapsed > time.Second {
				t.Fatalf("unlimited limiter blocked for %v", elapsed)
			}
		})
	}
}

func TestConfiguredLimit(t *testing.T) {
	l := New(25)
	if got := l.Limit(); got != 25 {
		t.Fatalf("Limit() = %v, want 25", got)
	}
}

func TestWaitHonoursContextCancellation(t *testing.T) {
	l := New(0.001)

	// First row passes on the burst; the second would wait ~1000s.
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Fatal("expected context error from throttled Wait")
	}
}
