package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Response is a core entity describing one document read from the source
// collection.
type Response struct {
	ID        string
	Text      string
	Document  map[string]any
	CreatedAt time.Time
}

// Payload derives the content submitted downstream. A response with a
// non-blank nested text field is submitted verbatim; every other shape falls
// back to serializing the whole document. There is no third form.
func (r Response) Payload() (string, error) {
	if strings.TrimSpace(r.Text) != "" {
		return r.Text, nil
	}

	raw, err := json.Marshal(r.Document)
	if err != nil {
		return "", fmt.Errorf("serialize response %s: %w", r.ID, err)
	}
	return string(raw), nil
}

// ProcessedResponse persisted to the ledger for deduplication and audit.
type ProcessedResponse struct {
	ResponseID  string
	ProcessedAt time.Time
}

// Failure captures a processing error for a single response.
type Failure struct {
	ResponseID string
	Reason     string
}

// RunResult aggregates the outcome of one driver pass. It exists only for the
// duration of the run and is never persisted.
type RunResult struct {
	Succeeded int
	Failed    int
	Failures  []Failure
}

// RecordSuccess counts one successfully submitted response.
func (r *RunResult) RecordSuccess() {
	r.Succeeded++
}

// RecordFailure counts one failed response and keeps its reason.
func (r *RunResult) RecordFailure(id string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, Failure{ResponseID: id, Reason: err.Error()})
}

// Total returns the number of responses handled in the run.
func (r RunResult) Total() int {
	return r.Succeeded + r.Failed
}
