package domain

import (
	"fmt"
	"strings"
)

// ConfigError reports required settings that were absent at startup. No work
// starts while it is non-nil.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// ConnectError wraps a failure to establish or verify the store connection.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("store connection: %v", e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// SubmitError wraps a failed downstream submission for a single response. It
// is absorbed at the item boundary: the response stays unprocessed and the
// run continues.
type SubmitError struct {
	ResponseID string
	Err        error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit response %s: %v", e.ResponseID, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// LedgerWriteError wraps a ledger write that failed after a successful
// submission. It aborts the run: continuing would lose the fact that the
// downstream call already happened.
type LedgerWriteError struct {
	ResponseID string
	Err        error
}

func (e *LedgerWriteError) Error() string {
	return fmt.Sprintf("record response %s as processed: %v", e.ResponseID, e.Err)
}

func (e *LedgerWriteError) Unwrap() error {
	return e.Err
}
