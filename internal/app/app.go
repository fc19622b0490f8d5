package app

import (
	"context"
	"log/slog"

	"InsightsFeeder/internal/config"
	"InsightsFeeder/internal/infrastructure/assistant"
	"InsightsFeeder/internal/infrastructure/console"
	"InsightsFeeder/internal/infrastructure/mongodb"
	"InsightsFeeder/internal/infrastructure/pacing"
	"InsightsFeeder/internal/logging"
	"InsightsFeeder/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	return &Application{cfg: cfg, logger: baseLogger}
}

// Run connects to the store, selects pending responses, and feeds them to
// the assistant in paced batches. It returns once the backlog is drained or
// a fatal error aborts the run.
func (a *Application) Run(ctx context.Context) error {
	client, err := mongodb.Connect(ctx, a.cfg.Store.URI)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongodb.Disconnect(context.Background(), client); err != nil {
			a.logger.Warn("store disconnect failed", "error", err)
		}
	}()

	reporter := console.NewReporter()
	reporter.Connected(a.cfg.Store.Database)

	db := client.Database(a.cfg.Store.Database)
	ledger := mongodb.NewLedger(db.Collection(a.cfg.Store.LedgerCollection))
	if err := ledger.EnsureIndexes(ctx); err != nil {
		return err
	}
	source := mongodb.NewSource(db.Collection(a.cfg.Store.SourceCollection), a.logger.With("component", "source"))

	selector := usecase.NewSelector(source, ledger, a.logger.With("component", "selector"))
	driver := usecase.NewDriver(usecase.DriverDeps{
		Selector:  selector,
		Ledger:    ledger,
		Client:    assistant.NewClient(a.cfg.Assistant, a.logger.With("component", "assistant")),
		Pacer:     pacing.NewFixedDelay(a.cfg.Batch.ItemDelay(), a.cfg.Batch.BatchDelay()),
		Reporter:  reporter,
		Logger:    a.logger.With("component", "driver"),
		BatchSize: a.cfg.Batch.Size,
		Cutoff:    a.cfg.Store.SinceTime(),
	})

	_, err = driver.Run(ctx)
	return err
}
