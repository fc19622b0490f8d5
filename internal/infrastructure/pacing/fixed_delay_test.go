package pacing

import (
	"context"
	"testing"
	"time"
)

func TestZeroDelayReturnsImmediately(t *testing.T) {
	t.Parallel()

	p := NewFixedDelay(0, 0)

	start := time.Now()
	if err := p.PauseAfterItem(context.Background()); err != nil {
		t.Fatalf("PauseAfterItem error: %v", err)
	}
	if err := p.PauseAfterBatch(context.Background()); err != nil {
		t.Fatalf("PauseAfterBatch error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("zero delay took too long: %v", elapsed)
	}
}

func TestDelayElapses(t *testing.T) {
	t.Parallel()

	p := NewFixedDelay(20*time.Millisecond, 0)

	start := time.Now()
	if err := p.PauseAfterItem(context.Background()); err != nil {
		t.Fatalf("PauseAfterItem error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("pause returned early after %v", elapsed)
	}
}

func TestCanceledContextAbortsPause(t *testing.T) {
	t.Parallel()

	p := NewFixedDelay(time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := p.PauseAfterBatch(ctx)
	if err == nil {
		t.Fatal("expected context error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancellation did not abort pause: %v", elapsed)
	}
}
