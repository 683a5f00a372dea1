// Package grammar is the participle struct-tag grammar for one certificate
// line. Modelled on the top-level Kanso
// grammar (grammar/grammar.go, grammar/lexer.go): a stateful-lexer token
// set plus tagged Go structs, the same style used throughout that package.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenises a single certificate line. Unlike the top-level Kanso
// lexer there is only ever one lexical mode here, so a stateful lexer buys
// nothing; this is the same token shape (Ident/Int/Punctuation/Whitespace)
// specialised with a Comment token for "#" lines, a String token for quoted
// BDD dump-file paths and a Hex token for explicit-encoding models, and
// without any operator rules the certificate format never uses.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `#[^\n]*`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Hex", `0x[0-9a-fA-F]+`, nil},
		{"Int", `-?[0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Punctuation", `[:]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
