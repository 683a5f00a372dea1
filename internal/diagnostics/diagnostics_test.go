package diagnostics

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"proofverify/internal/certificate"
)

func TestReportResultValid(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	code := r.ReportResult(&certificate.Result{Proven: true, ItemsProcessed: 3})
	require.Equal(t, ExitValid, code)
	require.Contains(t, buf.String(), "3 knowledge items verified")
}

func TestReportResultInvalidWithFindings(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	res := &certificate.Result{
		Proven:         false,
		ItemsProcessed: 2,
		Findings:       []certificate.Finding{{KnowledgeIndex: 1, Tag: "ed"}},
	}
	code := r.ReportResult(res)
	require.Equal(t, ExitCertificateInvalid, code)
	out := buf.String()
	require.Contains(t, out, "never concludes Unsolvable")
	require.Contains(t, out, "knowledge item 1")
	require.Contains(t, out, `"ed"`)
}

func TestReportMissingFileDistinguishesKind(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	require.Equal(t, ExitTaskMissing, r.ReportMissingFile("task", "t.task"))
	require.Equal(t, ExitCertificateMissing, r.ReportMissingFile("certificate", "c.cert"))
}

func TestReportParseErrorAndInternalError(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	require.Equal(t, ExitParsingError, r.ReportParseError(errors.New("bad token")))
	require.Equal(t, ExitInternalError, r.ReportInternalError(errors.New("index out of range")))
}

func TestSummaryReportsVerdict(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Summary(&certificate.Result{Proven: true, ItemsProcessed: 5}, 12*time.Millisecond)
	require.Contains(t, buf.String(), "5 knowledge items")
	require.Contains(t, buf.String(), "verdict: unsolvable")
}
