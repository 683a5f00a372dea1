// Package certificate parses and replays an unsolvability certificate
// against a loaded task. The grammar is parsed one
// physical line at a time (internal/certificate/grammar), then Driver.Run
// drives the already-complete setstore/actionstore/kb/rules stack.
package certificate

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"

	"proofverify/internal/certificate/grammar"
)

// lineParser is built once and reused for every line of every certificate
// (participle parsers are safe for concurrent, repeated use), the same
// participle.Build call shape the top-level Kanso parser uses
// (grammar/parser.go).
var lineParser = participle.MustBuild[grammar.Line](
	participle.Lexer(grammar.Lexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseError wraps a line-level parse failure with the certificate line
// number it occurred on, independent of whatever column participle itself
// reports within that single-line parse.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile reads path and parses every non-blank line into a grammar.Line,
// skipping pure-comment and blank lines entirely (they carry no semantic
// content for the driver to replay).
func ParseFile(path string) ([]*grammar.Line, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("certificate: %w", err)
	}
	return ParseLines(path, strings.Split(string(raw), "\n"))
}

// ParseLines parses each physical line independently; lines are numbered
// from 1 to match the file's own line numbers in diagnostics.
func ParseLines(path string, lines []string) ([]*grammar.Line, error) {
	out := make([]*grammar.Line, 0, len(lines))
	for i, text := range lines {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		line, err := lineParser.ParseString(path, text)
		if err != nil {
			return nil, &ParseError{Path: path, Line: i + 1, Err: err}
		}
		if line.Comment != nil {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}
