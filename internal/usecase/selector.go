package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"InsightsFeeder/internal/domain"
	"InsightsFeeder/internal/ports"
)

// Selector decides which responses still need processing: everything the
// source holds past the cutoff, minus what the ledger already recorded.
// Both sets are held fully in memory, so a selection costs O(source+ledger)
// per run; fine at current collection sizes, a limit worth knowing at scale.
type Selector struct {
	source ports.ResponseSource
	ledger ports.ResponseLedger
	logger *slog.Logger
}

// NewSelector builds a selector over the given source and ledger.
func NewSelector(source ports.ResponseSource, ledger ports.ResponseLedger, logger *slog.Logger) *Selector {
	return &Selector{source: source, ledger: ledger, logger: logger}
}

// SelectPending returns the unprocessed responses in source order.
func (s *Selector) SelectPending(ctx context.Context, cutoff time.Time) ([]domain.Response, error) {
	eligible, err := s.source.FetchSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("fetch eligible: %w", err)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(eligible))
	for _, resp := range eligible {
		ids = append(ids, resp.ID)
	}

	processed, err := s.ledger.Processed(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load processed: %w", err)
	}

	pending := make([]domain.Response, 0, len(eligible))
	for _, resp := range eligible {
		if processed[resp.ID] {
			continue
		}
		pending = append(pending, resp)
	}

	s.debug("selected pending responses",
		"eligible", len(eligible), "processed", len(eligible)-len(pending), "pending", len(pending))
	return pending, nil
}

func (s *Selector) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
