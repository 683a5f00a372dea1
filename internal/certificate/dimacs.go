package certificate

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"proofverify/internal/formalism/cnf2"
	"proofverify/internal/formalism/horn"
)

// DIMACS-style clause decoding for the Horn and 2-CNF basic-set
// declarations: a flat run of signed 1-based variable literals, each
// clause terminated by a literal 0, mirroring the convention DIMACS CNF
// files use for clause bodies.

// ErrResourceExhausted marks a declaration whose declared size exceeds
// maxExplicitVars before any allocation is attempted, giving resource
// exhaustion a concrete, checkable trigger instead of relying on an
// uncatchable OS-level OOM kill.
var ErrResourceExhausted = errors.New("certificate: declared size exceeds the configured resource budget")

// maxExplicitVars bounds an Explicit expression's declared variable subset:
// each model is a bitvector over it, so an adversarial or malformed
// declaration could otherwise request an unbounded allocation per model.
const maxExplicitVars = 1 << 20

func litVar(lit int) int {
	if lit < 0 {
		return -lit - 1
	}
	return lit - 1
}

// parseHornClauses splits lits into nClauses Horn clauses. Each clause may
// carry any number of negative literals plus at most one positive literal;
// a second positive literal in the same clause is a format error (the
// clause is not Horn-shaped).
func parseHornClauses(nClauses int, lits []int) ([]horn.Clause, error) {
	var clauses []horn.Clause
	var neg []int
	pos := horn.NoPositive
	for _, lit := range lits {
		if lit == 0 {
			clauses = append(clauses, horn.Clause{Neg: neg, Pos: pos})
			neg = nil
			pos = horn.NoPositive
			continue
		}
		v := litVar(lit)
		if lit < 0 {
			neg = append(neg, v)
			continue
		}
		if pos != horn.NoPositive {
			return nil, fmt.Errorf("certificate: horn clause has more than one positive literal")
		}
		pos = v
	}
	if len(clauses) != nClauses {
		return nil, fmt.Errorf("certificate: declared %d horn clauses, found %d", nClauses, len(clauses))
	}
	return clauses, nil
}

// parseCNF2Clauses splits lits into nClauses 2-CNF clauses of 1 or 2
// literals each, terminated by 0; a lone literal becomes the degenerate
// unit clause (lit OR lit) cnf2.Formula already expects.
func parseCNF2Clauses(nClauses int, lits []int) ([]cnf2.Clause2, error) {
	var clauses []cnf2.Clause2
	var cur []cnf2.Literal2
	for _, lit := range lits {
		if lit == 0 {
			switch len(cur) {
			case 1:
				clauses = append(clauses, cnf2.Clause2{A: cur[0], B: cur[0]})
			case 2:
				clauses = append(clauses, cnf2.Clause2{A: cur[0], B: cur[1]})
			default:
				return nil, fmt.Errorf("certificate: 2-cnf clause must have 1 or 2 literals, got %d", len(cur))
			}
			cur = nil
			continue
		}
		cur = append(cur, cnf2.Literal2{Var: litVar(lit), Neg: lit < 0})
	}
	if len(clauses) != nClauses {
		return nil, fmt.Errorf("certificate: declared %d 2-cnf clauses, found %d", nClauses, len(clauses))
	}
	return clauses, nil
}

// parseExplicitModels decodes each hex token into a little-endian bitmask
// of length nvars, in the same order as the expression's declared variable
// subset. math/big does the hex-to-bit decoding; no pack
// library parses bitvector literals, and this is a small enough leaf
// utility that reaching for one would be its own dependency for a five-line
// job.
func parseExplicitModels(nvars int, hexes []string) ([][]bool, error) {
	if nvars > maxExplicitVars {
		return nil, fmt.Errorf("%w: explicit expression declares %d variables", ErrResourceExhausted, nvars)
	}
	out := make([][]bool, 0, len(hexes))
	for _, h := range hexes {
		bits, err := hexToBits(h, nvars)
		if err != nil {
			return nil, err
		}
		out = append(out, bits)
	}
	return out, nil
}

func hexToBits(hex string, nvars int) ([]bool, error) {
	digits := strings.TrimPrefix(hex, "0x")
	val := new(big.Int)
	if _, ok := val.SetString(digits, 16); !ok {
		return nil, fmt.Errorf("certificate: invalid hex model %q", hex)
	}
	bits := make([]bool, nvars)
	for i := 0; i < nvars; i++ {
		bits[i] = val.Bit(i) == 1
	}
	return bits, nil
}
