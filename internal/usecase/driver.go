package usecase

import (
	"context"
	"log/slog"
	"time"

	"InsightsFeeder/internal/domain"
	"InsightsFeeder/internal/ports"
)

// DriverDeps wires the collaborators a Driver needs.
type DriverDeps struct {
	Selector *Selector
	Ledger   ports.ResponseLedger
	Client   ports.AssistantClient
	Pacer    ports.Pacer
	Reporter ports.Reporter
	Logger   *slog.Logger

	BatchSize int
	Cutoff    time.Time

	// Now stamps ledger entries; defaults to time.Now.
	Now func() time.Time
}

// Driver walks pending responses in batches, submitting each to the
// assistant and recording successes in the ledger. Item failures do not stop
// the run; a ledger write failure does.
type Driver struct {
	selector  *Selector
	ledger    ports.ResponseLedger
	client    ports.AssistantClient
	pacer     ports.Pacer
	reporter  ports.Reporter
	logger    *slog.Logger
	batchSize int
	cutoff    time.Time
	now       func() time.Time
}

// NewDriver builds a driver, filling in safe defaults for optional deps.
func NewDriver(deps DriverDeps) *Driver {
	size := deps.BatchSize
	if size < 1 {
		size = 1
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	reporter := deps.Reporter
	if reporter == nil {
		reporter = noopReporter{}
	}
	pacer := deps.Pacer
	if pacer == nil {
		pacer = noopPacer{}
	}
	return &Driver{
		selector:  deps.Selector,
		ledger:    deps.Ledger,
		client:    deps.Client,
		pacer:     pacer,
		reporter:  reporter,
		logger:    deps.Logger,
		batchSize: size,
		cutoff:    deps.Cutoff,
		now:       now,
	}
}

// Run processes every pending response once. It returns the tally of
// successes and failures; the error is non-nil only for fatal conditions
// (selection failure, ledger write failure, cancellation), in which case the
// tally covers the items handled before the abort.
func (d *Driver) Run(ctx context.Context) (domain.RunResult, error) {
	var result domain.RunResult

	pending, err := d.selector.SelectPending(ctx, d.cutoff)
	if err != nil {
		return result, err
	}
	d.reporter.Pending(len(pending))
	if len(pending) == 0 {
		d.reporter.Summary(result)
		return result, nil
	}

	batches := partition(pending, d.batchSize)
	for i, batch := range batches {
		d.reporter.BatchStarted(i+1, len(batches), len(batch))
		for _, resp := range batch {
			if err := d.processOne(ctx, resp, &result); err != nil {
				return result, err
			}
			if err := d.pacer.PauseAfterItem(ctx); err != nil {
				return result, err
			}
		}
		if err := d.pacer.PauseAfterBatch(ctx); err != nil {
			return result, err
		}
	}

	d.reporter.Summary(result)
	return result, nil
}

// processOne submits a single response and records it in the ledger. A
// payload or submission failure is tallied and swallowed; a ledger write
// failure is returned and aborts the run.
func (d *Driver) processOne(ctx context.Context, resp domain.Response, result *domain.RunResult) error {
	payload, err := resp.Payload()
	if err != nil {
		d.recordFailure(result, resp.ID, err)
		return nil
	}

	if err := d.client.SubmitResponse(ctx, payload); err != nil {
		d.recordFailure(result, resp.ID, &domain.SubmitError{ResponseID: resp.ID, Err: err})
		return nil
	}

	entry := domain.ProcessedResponse{ResponseID: resp.ID, ProcessedAt: d.now()}
	if err := d.ledger.MarkProcessed(ctx, entry); err != nil {
		return &domain.LedgerWriteError{ResponseID: resp.ID, Err: err}
	}

	result.RecordSuccess()
	d.reporter.ItemSucceeded(resp.ID)
	return nil
}

func (d *Driver) recordFailure(result *domain.RunResult, id string, err error) {
	result.RecordFailure(id, err)
	d.reporter.ItemFailed(id, err)
	if d.logger != nil {
		d.logger.Debug("response failed", "id", id, "error", err)
	}
}

// partition splits responses into contiguous batches of at most size items.
func partition(responses []domain.Response, size int) [][]domain.Response {
	if size < 1 {
		size = 1
	}
	var batches [][]domain.Response
	for start := 0; start < len(responses); start += size {
		end := start + size
		if end > len(responses) {
			end = len(responses)
		}
		batches = append(batches, responses[start:end])
	}
	return batches
}

type noopReporter struct{}

func (noopReporter) Connected(string)           {}
func (noopReporter) Pending(int)                {}
func (noopReporter) BatchStarted(int, int, int) {}
func (noopReporter) ItemSucceeded(string)       {}
func (noopReporter) ItemFailed(string, error)   {}
func (noopReporter) Summary(domain.RunResult)   {}

type noopPacer struct{}

func (noopPacer) PauseAfterItem(context.Context) error  { return nil }
func (noopPacer) PauseAfterBatch(context.Context) error { return nil }
