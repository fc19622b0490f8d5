package pacing

import (
	"context"
	"time"

	"InsightsFeeder/internal/ports"
)

// FixedDelay pauses for a constant duration after each item and after each
// batch. Zero or negative durations disable the corresponding pause.
type FixedDelay struct {
	item  time.Duration
	batch time.Duration
}

var _ ports.Pacer = (*FixedDelay)(nil)

// NewFixedDelay creates a pacer with the given per-item and per-batch delays.
func NewFixedDelay(item, batch time.Duration) *FixedDelay {
	return &FixedDelay{item: item, batch: batch}
}

// PauseAfterItem waits the configured per-item delay.
func (p *FixedDelay) PauseAfterItem(ctx context.Context) error {
	return sleep(ctx, p.item)
}

// PauseAfterBatch waits the configured per-batch delay.
func (p *FixedDelay) PauseAfterBatch(ctx context.Context) error {
	return sleep(ctx, p.batch)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
