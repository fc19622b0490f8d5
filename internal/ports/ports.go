package ports

import (
	"context"
	"time"

	"InsightsFeeder/internal/domain"
)

// ResponseSource pulls eligible response documents from the source
// collection.
type ResponseSource interface {
	FetchSince(ctx context.Context, cutoff time.Time) ([]domain.Response, error)
}

// ResponseLedger persists processed-response records for deduplication.
type ResponseLedger interface {
	Processed(ctx context.Context, ids []string) (map[string]bool, error)
	MarkProcessed(ctx context.Context, entry domain.ProcessedResponse) error
}

// AssistantClient submits one response payload per call to the inference
// endpoint.
type AssistantClient interface {
	SubmitResponse(ctx context.Context, payload string) error
}

// Pacer bounds the outbound request rate between items and between batches.
type Pacer interface {
	PauseAfterItem(ctx context.Context) error
	PauseAfterBatch(ctx context.Context) error
}

// Reporter surfaces human-readable run progress to the operator.
type Reporter interface {
	Connected(database string)
	Pending(count int)
	BatchStarted(number, total, size int)
	ItemSucceeded(id string)
	ItemFailed(id string, err error)
	Summary(result domain.RunResult)
}
