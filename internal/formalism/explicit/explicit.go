// Package explicit implements the Explicit set-formula encoding: a state set
// is the finite set of total assignments over a declared variable subset,
// stored as a hash set of bitvectors so containment is O(1) amortised
//.
package explicit

import (
	"fmt"

	"proofverify/internal/formalism"
)

// Formula is a basic set expression in the Explicit encoding.
type Formula struct {
	vars   []int // ascending task fact indices, the declared subset
	models map[string]struct{}
}

// New builds an explicit formula from its declared variable subset and the
// list of models, each a bitvector of len(vars) in the same order as vars.
func New(vars []int, models [][]bool) (*Formula, error) {
	f := &Formula{vars: append([]int(nil), vars...), models: make(map[string]struct{}, len(models))}
	for _, m := range models {
		if len(m) != len(vars) {
			return nil, fmt.Errorf("explicit: model has %d bits, want %d", len(m), len(vars))
		}
		f.models[key(m)] = struct{}{}
	}
	return f, nil
}

func key(bits []bool) string {
	buf := make([]byte, len(bits))
	for i, b := range bits {
		if b {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

func (f *Formula) Kind() formalism.Kind { return formalism.Explicit }
func (f *Formula) VarOrder() []int      { return f.vars }

func (f *Formula) Capabilities() formalism.Capabilities {
	return formalism.Capabilities{ModelEnumeration: true, ModelCount: true}
}

// Contains projects assign onto f.vars and probes the model hash set.
func (f *Formula) Contains(assign formalism.Assignment) bool {
	bits := make([]bool, len(f.vars))
	for i, v := range f.vars {
		bits[i] = assign[v]
	}
	_, ok := f.models[key(bits)]
	return ok
}

// Models returns every stored assignment, in f.vars order.
func (f *Formula) Models() [][]bool {
	out := make([][]bool, 0, len(f.models))
	for k := range f.models {
		bits := make([]bool, len(k))
		for i, c := range k {
			bits[i] = c == '1'
		}
		out = append(out, bits)
	}
	return out
}

// ModelCount reports |models| without enumerating them into slices.
func (f *Formula) ModelCount() int { return len(f.models) }

// Subset decides B1 for a conjunction/disjunction purely over Explicit
// literals via formalism.BruteForceSubset: it enumerates every total
// assignment over the union of all literals' declared variables (binary-
// counter order, formalism.EnumerateAssignments) and probes each against
// every left conjunct and the right disjunction. The enumeration is not
// restricted to the stored models of any left literal, so its cost is
// exponential in the number of distinct variables involved.
func Subset(left, right []formalism.Literal) bool {
	return formalism.BruteForceSubset(left, right)
}
