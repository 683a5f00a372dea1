// Package diagnostics renders certificate verification outcomes as
// colorized, structured reports and maps them to the verifier's exit-code
// table. Built around the same fatih/color bold/dim vocabulary a compiler
// diagnostic renderer would use, but specialised to a single end-of-run
// verdict plus a list of failed knowledge items rather than per-position
// source errors.
package diagnostics

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"proofverify/internal/certificate"
)

// ExitCode is the process exit status the driver maps every outcome to.
type ExitCode int

const (
	ExitValid              ExitCode = 0
	ExitInternalError      ExitCode = 1
	ExitCertificateInvalid ExitCode = 2
	ExitTaskMissing        ExitCode = 3
	ExitCertificateMissing ExitCode = 4
	ExitParsingError       ExitCode = 5
	ExitResourceExhausted  ExitCode = 6
	ExitTimeout            ExitCode = 7
)

// Reporter writes verification outcomes to w.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a reporter writing to w (typically os.Stderr). Every
// report, including the --stats Summary line, goes to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// ReportParseError renders a fatal certificate- or task-parsing failure.
func (r *Reporter) ReportParseError(err error) ExitCode {
	bold := color.New(color.Bold, color.FgRed).SprintFunc()
	fmt.Fprintf(r.w, "%s: %s\n", bold("parsing error"), err)
	return ExitParsingError
}

// ReportMissingFile renders a missing task or certificate file. kind is "task" or "certificate".
func (r *Reporter) ReportMissingFile(kind, path string) ExitCode {
	bold := color.New(color.Bold, color.FgRed).SprintFunc()
	fmt.Fprintf(r.w, "%s: %s file %q does not exist\n", bold("error"), kind, path)
	if kind == "task" {
		return ExitTaskMissing
	}
	return ExitCertificateMissing
}

// ReportInternalError renders an internal failure not attributable to the
// certificate itself (malformed index arithmetic, an invariant the driver
// never expected to see broken).
func (r *Reporter) ReportInternalError(err error) ExitCode {
	bold := color.New(color.Bold, color.FgRed).SprintFunc()
	fmt.Fprintf(r.w, "%s: %s\n", bold("internal error"), err)
	return ExitInternalError
}

// ReportTimeout renders a --timeout expiry.
func (r *Reporter) ReportTimeout(d time.Duration) ExitCode {
	bold := color.New(color.Bold, color.FgRed).SprintFunc()
	fmt.Fprintf(r.w, "%s: verification did not finish within %s\n", bold("timeout"), d)
	return ExitTimeout
}

// ReportResourceExhaustion renders a memory-budget failure.
func (r *Reporter) ReportResourceExhaustion(err error) ExitCode {
	bold := color.New(color.Bold, color.FgRed).SprintFunc()
	fmt.Fprintf(r.w, "%s: %s\n", bold("resource exhaustion"), err)
	return ExitResourceExhausted
}

// ReportResult renders a completed replay: a proof (exit 0) if every
// knowledge item verified and the certificate concluded Unsolvable, or a
// listing of the knowledge items whose rule premises failed (exit 2)
// otherwise. The certificate having read to its end without a fatal error
// does not by itself mean the proof is valid.
func (r *Reporter) ReportResult(res *certificate.Result) ExitCode {
	green := color.New(color.Bold, color.FgGreen).SprintFunc()
	red := color.New(color.Bold, color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if res.Proven && len(res.Findings) == 0 {
		fmt.Fprintf(r.w, "%s: task is unsolvable (%d knowledge items verified)\n", green("valid"), res.ItemsProcessed)
		return ExitValid
	}

	if !res.Proven {
		fmt.Fprintf(r.w, "%s: certificate never concludes Unsolvable\n", red("invalid"))
	} else {
		fmt.Fprintf(r.w, "%s: certificate concludes Unsolvable, but %d item(s) failed\n", red("invalid"), len(res.Findings))
	}
	for _, f := range res.Findings {
		fmt.Fprintf(r.w, "  %s knowledge item %d: rule %q's premises do not hold\n", dim("-"), f.KnowledgeIndex, f.Tag)
	}
	return ExitCertificateInvalid
}

// Summary prints a one-line run report (elapsed wall time, items processed,
// final verdict), gated behind the CLI's --stats flag.
func (r *Reporter) Summary(res *certificate.Result, elapsed time.Duration) {
	dim := color.New(color.Faint).SprintFunc()
	verdict := "unsolvable"
	if !res.Proven {
		verdict = "not proven"
	}
	fmt.Fprintf(r.w, "%s %d knowledge items, %s elapsed, verdict: %s\n", dim("stats:"), res.ItemsProcessed, elapsed, verdict)
}
