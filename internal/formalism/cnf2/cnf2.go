// Package cnf2 implements the 2-CNF set-formula encoding: a conjunction of
// clauses with at most two literals, decided via an implication graph and
// its strongly connected components. A variable forced to a single value
// is represented as a degenerate clause (lit OR lit), so no special-cased
// unit-clause path is needed anywhere in this package.
package cnf2

import (
	"fmt"

	"proofverify/internal/formalism"
)

// Literal2 is a literal of variable Var, negated iff Neg.
type Literal2 struct {
	Var int
	Neg bool
}

// Clause2 is the disjunction A OR B. A unit constraint on a single literal
// l is written as Clause2{A: l, B: l}.
type Clause2 struct {
	A, B Literal2
}

// Formula is a basic set expression in the 2-CNF encoding.
type Formula struct {
	n       int
	Clauses []Clause2

	sccComputed bool
	unsat       bool
	scc         []int // node -> component id, valid iff sccComputed
}

// New builds a 2-CNF formula over n variables from raw clauses. Satisfiability
// is computed lazily on first use (Unsat, Contains, Subset).
func New(n int, clauses []Clause2) *Formula {
	return &Formula{n: n, Clauses: append([]Clause2(nil), clauses...)}
}

// nodeTrue returns the implication-graph node representing "literal l holds".
func nodeTrue(l Literal2) int {
	if l.Neg {
		return 2*l.Var + 1
	}
	return 2 * l.Var
}

func nodeFalse(l Literal2) int { return nodeTrue(l) ^ 1 }

// tarjanSCC computes strongly connected components of the implication graph
// over 2*n nodes (two per variable: value-true and value-false).
func tarjanSCC(n int, edges map[int][]int) []int {
	numNodes := 2 * n
	index := make([]int, numNodes)
	low := make([]int, numNodes)
	onStack := make([]bool, numNodes)
	comp := make([]int, numNodes)
	for i := range index {
		index[i] = -1
		comp[i] = -1
	}
	var stack []int
	counter := 0
	compCount := 0

	var strongconnect func(v int)
	strongconnect = func(v int) {
		index[v] = counter
		low[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range edges[v] {
			if index[w] == -1 {
				strongconnect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] {
				if index[w] < low[v] {
					low[v] = index[w]
				}
			}
		}

		if low[v] == index[v] {
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp[w] = compCount
				if w == v {
					break
				}
			}
			compCount++
		}
	}

	for v := 0; v < numNodes; v++ {
		if index[v] == -1 {
			strongconnect(v)
		}
	}
	return comp
}

func (f *Formula) computeSCC() {
	if f.sccComputed {
		return
	}
	edges := make(map[int][]int)
	for _, c := range f.Clauses {
		edges[nodeFalse(c.A)] = append(edges[nodeFalse(c.A)], nodeTrue(c.B))
		edges[nodeFalse(c.B)] = append(edges[nodeFalse(c.B)], nodeTrue(c.A))
	}
	f.scc = tarjanSCC(f.n, edges)
	f.unsat = false
	for v := 0; v < f.n; v++ {
		if f.scc[2*v] == f.scc[2*v+1] {
			f.unsat = true
			break
		}
	}
	f.sccComputed = true
}

// Unsat reports whether the formula's clause set is unsatisfiable, i.e. some
// variable and its negation end up in the same implication-graph component.
func (f *Formula) Unsat() bool {
	f.computeSCC()
	return f.unsat
}

func (f *Formula) Kind() formalism.Kind { return formalism.CNF2 }

func (f *Formula) VarOrder() []int {
	out := make([]int, f.n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (f *Formula) Capabilities() formalism.Capabilities {
	return formalism.Capabilities{ClausalEntailment: true}
}

func litHolds(l Literal2, assign formalism.Assignment) bool {
	v := assign[l.Var]
	if l.Neg {
		return !v
	}
	return v
}

// Contains evaluates a concrete assignment directly against the clause set.
func (f *Formula) Contains(assign formalism.Assignment) bool {
	if f.Unsat() {
		return false
	}
	for _, c := range f.Clauses {
		if !litHolds(c.A, assign) && !litHolds(c.B, assign) {
			return false
		}
	}
	return true
}

// Shift renumbers every variable v -> v+offset, used to move a formula onto
// primed variables when building progression/regression checks.
func (f *Formula) Shift(offset int) *Formula {
	shift := func(l Literal2) Literal2 { return Literal2{Var: l.Var + offset, Neg: l.Neg} }
	out := &Formula{n: f.n + offset}
	for _, c := range f.Clauses {
		out.Clauses = append(out.Clauses, Clause2{A: shift(c.A), B: shift(c.B)})
	}
	return out
}

// merge conjoins several 2-CNF formulas (conjunctions of clauses are closed
// under union of their clause sets).
func merge(formulas ...*Formula) *Formula {
	n := 0
	var clauses []Clause2
	for _, f := range formulas {
		if f.n > n {
			n = f.n
		}
		clauses = append(clauses, f.Clauses...)
	}
	return New(n, clauses)
}

// falsifyingAssignments enumerates, for each clause of f, the single
// assignment that falsifies exactly that clause (both literals false) —
// the negation of a 2-CNF formula is the disjunction of its clauses'
// negations. A formula with no clauses at all (the empty, vacuously true
// formula) has no way to be falsified.
func falsifyingAssignments(f *Formula) []map[int]bool {
	if f.Unsat() {
		return []map[int]bool{{}}
	}
	var out []map[int]bool
	for _, c := range f.Clauses {
		assign := map[int]bool{}
		conflict := false
		set := func(l Literal2) {
			val := l.Neg // literal false <=> var == l.Neg
			if existing, ok := assign[l.Var]; ok && existing != val {
				conflict = true
				return
			}
			assign[l.Var] = val
		}
		set(c.A)
		set(c.B)
		if !conflict {
			out = append(out, assign)
		}
	}
	return out
}

// satisfiableUnder checks whether f conjoined with a partial assignment
// (encoded as degenerate unit clauses) is satisfiable.
func satisfiableUnder(f *Formula, restriction map[int]bool) bool {
	clauses := append([]Clause2(nil), f.Clauses...)
	for v, val := range restriction {
		lit := Literal2{Var: v, Neg: !val}
		clauses = append(clauses, Clause2{A: lit, B: lit})
	}
	return !New(f.n, clauses).Unsat()
}

func cartesian(obligations [][]map[int]bool, acc map[int]bool, visit func(map[int]bool) bool) bool {
	if len(obligations) == 0 {
		return visit(acc)
	}
	for _, alt := range obligations[0] {
		merged := make(map[int]bool, len(acc)+len(alt))
		conflict := false
		for k, v := range acc {
			merged[k] = v
		}
		for k, v := range alt {
			if existing, ok := merged[k]; ok && existing != v {
				conflict = true
				break
			}
			merged[k] = v
		}
		if conflict {
			continue
		}
		if !cartesian(obligations[1:], merged, visit) {
			return false
		}
	}
	return true
}

// Subset decides B1 for literals entirely in the 2-CNF encoding, by the same
// Cartesian falsification-obligation construction as the Horn encoding uses
//: positive literals accumulate into a conjunction, negated
// literals each contribute a disjunctive falsification obligation, and
// inclusion holds iff every combination of obligations is jointly
// unsatisfiable with the accumulated conjunction.
func Subset(left, right []formalism.Literal) (bool, error) {
	var positive []*Formula
	var obligations [][]map[int]bool
	collect := func(l formalism.Literal) error {
		cf, ok := l.Set.(*Formula)
		if !ok {
			return fmt.Errorf("cnf2.Subset: literal is not a 2-CNF formula")
		}
		if l.Negated {
			obligations = append(obligations, falsifyingAssignments(cf))
		} else {
			positive = append(positive, cf)
		}
		return nil
	}
	for _, l := range left {
		if err := collect(l); err != nil {
			return false, err
		}
	}
	for _, l := range right {
		if err := collect(formalism.Literal{Set: l.Set, Negated: !l.Negated}); err != nil {
			return false, err
		}
	}
	if len(positive) == 0 {
		positive = append(positive, New(0, nil))
	}
	phi := merge(positive...)
	if phi.Unsat() {
		return true, nil
	}
	if len(obligations) == 0 {
		return false, nil
	}
	ok := true
	cartesian(obligations, map[int]bool{}, func(choice map[int]bool) bool {
		if satisfiableUnder(phi, choice) {
			ok = false
			return false
		}
		return true
	})
	return ok, nil
}
