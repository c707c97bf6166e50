package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/typeforge/derive/internal/errors"
)

// DiagnosticReporter prints derivation failures, one diagnostic per
// independent failure, each traceable to the schema parameter and the real
// declaration it was attempting to satisfy.
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// SetOutput redirects the reporter, for tests.
func (r *DiagnosticReporter) SetOutput(w io.Writer) {
	r.out = w
}

// Report prints every diagnostic carried by the error.
func (r *DiagnosticReporter) Report(ifaceName string, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(r.out, "ERROR: derivation failed for %s\n", ifaceName)

	if agg, ok := err.(*errors.Aggregate); ok {
		for _, e := range agg.Errors {
			r.reportOne(e)
		}
		return
	}
	if de, ok := err.(errors.DeriveError); ok {
		r.reportOne(de)
		return
	}
	fmt.Fprintf(r.out, "  %s\n", err.Error())
}

func (r *DiagnosticReporter) reportOne(e errors.DeriveError) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(r.out, "  [%s] ", e.ErrorCode())
	fmt.Fprintf(r.out, "%s\n", e.Error())

	for _, hint := range e.Suggestions() {
		fmt.Fprintf(r.out, "      hint: %s\n", hint)
	}
	if r.verbose {
		for k, v := range e.Context() {
			fmt.Fprintf(r.out, "      %s: %v\n", k, v)
		}
	}
}
