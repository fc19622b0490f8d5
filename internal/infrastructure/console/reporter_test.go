package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"InsightsFeeder/internal/domain"
)

func TestReporterProgressLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewReporterTo(&buf)

	r.Connected("insights")
	r.Pending(2)
	r.BatchStarted(1, 1, 2)
	r.ItemSucceeded("r1")
	r.ItemFailed("r2", errors.New("assistant api 500"))
	r.Summary(domain.RunResult{Succeeded: 1, Failed: 1})

	out := buf.String()
	for _, want := range []string{
		`connected to store, database "insights"`,
		"pending responses: 2",
		"batch 1/1 (2 items)",
		"[1/2  50%] ok       r1",
		"[2/2 100%] failed   r2: assistant api 500",
		"done: 1 succeeded, 1 failed, 2 total",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReporterResetsBetweenRuns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewReporterTo(&buf)

	r.Pending(1)
	r.ItemSucceeded("r1")

	buf.Reset()
	r.Pending(4)
	r.ItemSucceeded("r9")

	if !strings.Contains(buf.String(), "[1/4  25%] ok       r9") {
		t.Fatalf("counters should reset on Pending:\n%s", buf.String())
	}
}
