// Package main is verify-repl, an interactive step-through debugger for a
// certificate replay: load a task and certificate, then step through its
// declarations one at a time inspecting the knowledge base as it grows.
// A bufio.Scanner-over-stdin prompt loop driving proofverify/internal/certificate's
// Driver.ApplyLine one line at a time.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"proofverify/internal/certificate"
	"proofverify/internal/certificate/grammar"
	"proofverify/internal/task"
)

const prompt = "verify> "

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: verify-repl <task-file> <certificate-file>")
		os.Exit(1)
	}
	taskPath, certPath := os.Args[1], os.Args[2]

	taskSrc, err := os.ReadFile(taskPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read task file: %s\n", err)
		os.Exit(1)
	}
	tsk, err := task.Parse(string(taskSrc))
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot parse task file: %s\n", err)
		os.Exit(1)
	}

	lines, err := certificate.ParseFile(certPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot parse certificate: %s\n", err)
		os.Exit(1)
	}

	driver := certificate.NewDriver(tsk, filepath.Dir(certPath))
	session := &session{driver: driver, lines: lines}
	fmt.Printf("loaded %d facts, %d actions, %d certificate declarations\n", tsk.NumFacts(), tsk.NumActions(), len(lines))
	start(os.Stdin, os.Stdout, session)
}

type session struct {
	driver *certificate.Driver
	lines  []*grammar.Line
	cursor int
}

func start(in io.Reader, out io.Writer, s *session) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "step", "s":
			s.step(out, 1)
		case "run", "r":
			s.step(out, len(s.lines)-s.cursor)
		case "info", "i":
			s.info(out)
		case "quit", "q", "exit":
			return
		case "help", "h":
			fmt.Fprintln(out, "commands: step (s), run (r), info (i), quit (q)")
		default:
			fmt.Fprintf(out, "unrecognised command %q; try \"help\"\n", fields[0])
		}
	}
}

// step replays up to n declarations from the cursor, stopping early at the
// end of the certificate or the first line that raises a fatal error.
func (s *session) step(out io.Writer, n int) {
	for i := 0; i < n && s.cursor < len(s.lines); i++ {
		ln := s.lines[s.cursor]
		finding, err := s.driver.ApplyLine(ln)
		if err != nil {
			fmt.Fprintf(out, "line %d: fatal error: %s\n", s.cursor+1, err)
			return
		}
		if finding != nil {
			fmt.Fprintf(out, "line %d: knowledge item %d failed (rule %q)\n", s.cursor+1, finding.KnowledgeIndex, finding.Tag)
		} else {
			fmt.Fprintf(out, "line %d: ok\n", s.cursor+1)
		}
		s.cursor++
	}
	if s.cursor == len(s.lines) {
		fmt.Fprintf(out, "end of certificate: proven=%v, items=%d\n", s.driver.KB.Proven(), s.driver.KB.Len())
	}
}

func (s *session) info(out io.Writer) {
	fmt.Fprintf(out, "cursor: %d/%d declarations replayed\n", s.cursor, len(s.lines))
	fmt.Fprintf(out, "knowledge items so far: %d, proven: %v\n", s.driver.KB.Len(), s.driver.KB.Proven())
}
