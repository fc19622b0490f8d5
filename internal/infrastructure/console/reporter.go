package console

import (
	"fmt"
	"io"
	"os"

	"InsightsFeeder/internal/domain"
	"InsightsFeeder/internal/ports"
)

// Reporter prints run progress in a human-readable form.
type Reporter struct {
	out     io.Writer
	total   int
	handled int
}

var _ ports.Reporter = (*Reporter)(nil)

// NewReporter creates a reporter writing to stdout.
func NewReporter() *Reporter {
	return NewReporterTo(os.Stdout)
}

// NewReporterTo creates a reporter writing to the given writer.
func NewReporterTo(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Connected announces a successful store connection.
func (r *Reporter) Connected(database string) {
	fmt.Fprintf(r.out, "connected to store, database %q\n", database)
}

// Pending announces how many responses remain to be processed and resets the
// progress counters for the new run.
func (r *Reporter) Pending(count int) {
	r.total = count
	r.handled = 0
	fmt.Fprintf(r.out, "pending responses: %d\n", count)
}

// BatchStarted announces the start of a batch.
func (r *Reporter) BatchStarted(number, total, size int) {
	fmt.Fprintf(r.out, "batch %d/%d (%d items)\n", number, total, size)
}

// ItemSucceeded reports one successfully processed response.
func (r *Reporter) ItemSucceeded(id string) {
	r.handled++
	fmt.Fprintf(r.out, "  [%d/%d %3.0f%%] ok       %s\n", r.handled, r.total, r.percent(), id)
}

// ItemFailed reports one response that could not be processed.
func (r *Reporter) ItemFailed(id string, err error) {
	r.handled++
	fmt.Fprintf(r.out, "  [%d/%d %3.0f%%] failed   %s: %v\n", r.handled, r.total, r.percent(), id, err)
}

// Summary prints the final run totals.
func (r *Reporter) Summary(result domain.RunResult) {
	fmt.Fprintf(r.out, "done: %d succeeded, %d failed, %d total\n",
		result.Succeeded, result.Failed, result.Total())
}

func (r *Reporter) percent() float64 {
	if r.total == 0 {
		return 100
	}
	return float64(r.handled) / float64(r.total) * 100
}
