// Package main is the verify CLI: checks an unsolvability certificate
// against a task file and exits with a status code describing the outcome.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"proofverify/internal/certificate"
	"proofverify/internal/certificate/grammar"
	"proofverify/internal/diagnostics"
	"proofverify/internal/task"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	timeoutSeconds := fs.Float64("timeout", 0, "abort and exit 7 if verification exceeds this many seconds (0 disables)")
	discardFormulas := fs.Bool("discard_formulas", false, "drop each set expression's concrete payload once its last consulting knowledge item has been replayed")
	stats := fs.Bool("stats", false, "print a one-line run summary after the verdict")
	if err := fs.Parse(args); err != nil {
		return int(diagnostics.ExitInternalError)
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: verify [--timeout=seconds] [--discard_formulas] [--stats] <task-file> <certificate-file>")
		return int(diagnostics.ExitInternalError)
	}
	taskPath, certPath := fs.Arg(0), fs.Arg(1)
	reporter := diagnostics.NewReporter(os.Stderr)

	tsk, code, ok := loadTask(reporter, taskPath)
	if !ok {
		return int(code)
	}

	if _, err := os.Stat(certPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return int(reporter.ReportMissingFile("certificate", certPath))
		}
		return int(reporter.ReportInternalError(err))
	}
	lines, err := certificate.ParseFile(certPath)
	if err != nil {
		return int(reporter.ReportParseError(err))
	}

	driver := certificate.NewDriver(tsk, filepath.Dir(certPath))
	start := time.Now()
	res, err := runWithTimeout(driver, lines, *discardFormulas, *timeoutSeconds)
	if err != nil {
		if errors.Is(err, errTimeout) {
			return int(reporter.ReportTimeout(timeoutDuration(*timeoutSeconds)))
		}
		if errors.Is(err, certificate.ErrResourceExhausted) {
			return int(reporter.ReportResourceExhaustion(err))
		}
		return int(reporter.ReportInternalError(err))
	}

	code = reporter.ReportResult(res)
	if *stats {
		reporter.Summary(res, time.Since(start))
	}
	return int(code)
}

func loadTask(reporter *diagnostics.Reporter, path string) (*task.Task, diagnostics.ExitCode, bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, reporter.ReportMissingFile("task", path), false
		}
		return nil, reporter.ReportInternalError(err), false
	}
	tsk, err := task.Parse(string(src))
	if err != nil {
		return nil, reporter.ReportParseError(err), false
	}
	return tsk, diagnostics.ExitValid, true
}

var errTimeout = errors.New("verify: timed out")

func timeoutDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// runWithTimeout replays the certificate on its own goroutine so a
// --timeout can abandon waiting without the driver itself needing a
// context.Context plumbed through every store (the task is bounded,
// append-only work with no blocking I/O to cancel mid-flight).
func runWithTimeout(d *certificate.Driver, lines []*grammar.Line, discardFormulas bool, timeoutSeconds float64) (*certificate.Result, error) {
	type outcome struct {
		res *certificate.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := d.Run(lines, discardFormulas)
		done <- outcome{res, err}
	}()

	if timeoutSeconds <= 0 {
		out := <-done
		return out.res, out.err
	}
	select {
	case out := <-done:
		return out.res, out.err
	case <-time.After(timeoutDuration(timeoutSeconds)):
		return nil, errTimeout
	}
}
