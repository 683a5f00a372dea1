package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"proofverify/internal/certificate"
	"proofverify/internal/task"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	tsk, err := task.New([]string{"p"}, []bool{true}, []int{1}, nil)
	require.NoError(t, err)
	lines, err := certificate.ParseLines("t", []string{
		"e 0 c e",
		"k 0 d 0 ed",
	})
	require.NoError(t, err)
	return &session{driver: certificate.NewDriver(tsk, "."), lines: lines}
}

func TestReplStepThenInfo(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer
	start(strings.NewReader("step\ninfo\nquit\n"), &out, s)

	text := out.String()
	require.Contains(t, text, "line 1: ok")
	require.Contains(t, text, "cursor: 1/2")
}

func TestReplRunReachesEndOfCertificate(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer
	start(strings.NewReader("run\nquit\n"), &out, s)

	text := out.String()
	require.Contains(t, text, "end of certificate: proven=false, items=1")
}

func TestReplUnknownCommand(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer
	start(strings.NewReader("bogus\nquit\n"), &out, s)
	require.Contains(t, out.String(), "unrecognised command")
}
