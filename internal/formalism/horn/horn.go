// Package horn implements the Horn set-formula encoding: a conjunction of
// Horn clauses (negative-literal list, optional positive literal) over the
// task's |F| variables, simplified by unit propagation at construction
//.
package horn

import (
	"fmt"

	"proofverify/internal/formalism"
)

// Clause is (negs -> pos); pos == NoPositive means the clause is
// negs -> false, i.e. a "goal clause" forbidding all negs from holding
// simultaneously.
type Clause struct {
	Neg []int
	Pos int
}

const NoPositive = -1

// Formula is a basic set expression in the Horn encoding, already simplified.
type Formula struct {
	n           int
	ForcedTrue  []int
	ForcedFalse []int
	Clauses     []Clause // remaining non-unit clauses after simplification
	Unsat       bool
}

// New builds a Horn formula over n variables from raw clauses (which may
// include units) and simplifies it by unit propagation.
func New(n int, clauses []Clause) *Formula {
	f := &Formula{n: n}
	var nonUnit []Clause
	for _, c := range clauses {
		switch {
		case len(c.Neg) == 0 && c.Pos != NoPositive:
			f.ForcedTrue = append(f.ForcedTrue, c.Pos)
		case len(c.Neg) == 1 && c.Pos == NoPositive:
			f.ForcedFalse = append(f.ForcedFalse, c.Neg[0])
		case len(c.Neg) == 0 && c.Pos == NoPositive:
			f.Unsat = true
		default:
			nonUnit = append(nonUnit, Clause{Neg: append([]int(nil), c.Neg...), Pos: c.Pos})
		}
	}
	f.Clauses = nonUnit
	f.simplify()
	return f
}

// simplify performs unit propagation to a fixed point, folding forced
// values into the clause set and detecting unsatisfiability. Idempotent: simplifying an already-simplified formula is a
// no-op.
func (f *Formula) simplify() {
	if f.Unsat {
		f.Clauses = nil
		return
	}
	trueVal := make(map[int]bool)
	falseVal := make(map[int]bool)
	queue := append([]int(nil), f.ForcedTrue...)
	for _, v := range queue {
		trueVal[v] = true
	}
	queueFalse := append([]int(nil), f.ForcedFalse...)
	for _, v := range queueFalse {
		falseVal[v] = true
	}
	for v := range trueVal {
		if falseVal[v] {
			f.Unsat, f.Clauses = true, nil
			return
		}
	}
	pending := append(append([]pendingAssign(nil), toPending(queue, true)...), toPending(queueFalse, false)...)

	clauses := append([]Clause(nil), f.Clauses...)
	active := make([]bool, len(clauses))
	for i := range active {
		active[i] = true
	}

	for len(pending) > 0 {
		p := pending[0]
		pending = pending[1:]
		for i, c := range clauses {
			if !active[i] {
				continue
			}
			if p.value {
				// var forced true: if it's a negative literal of clause, drop it;
				// if it's the positive literal, the clause is satisfied.
				if c.Pos == p.v {
					active[i] = false
					continue
				}
				if containsInt(c.Neg, p.v) {
					c.Neg = removeInt(c.Neg, p.v)
					clauses[i] = c
				}
			} else {
				// var forced false: if it's a negative literal, the clause is
				// satisfied; if it's the positive literal, it can no longer be
				// reached that way, so the clause becomes a pure goal clause.
				if containsInt(c.Neg, p.v) {
					active[i] = false
					continue
				}
				if c.Pos == p.v {
					c.Pos = NoPositive
					clauses[i] = c
				}
			}
			if !active[i] {
				continue
			}
			if len(clauses[i].Neg) == 0 && clauses[i].Pos == NoPositive {
				f.Unsat = true
				f.Clauses = nil
				return
			}
			if len(clauses[i].Neg) == 0 && clauses[i].Pos != NoPositive {
				v := clauses[i].Pos
				if falseVal[v] {
					f.Unsat, f.Clauses = true, nil
					return
				}
				if !trueVal[v] {
					trueVal[v] = true
					pending = append(pending, pendingAssign{v, true})
					f.ForcedTrue = append(f.ForcedTrue, v)
				}
				active[i] = false
			} else if len(clauses[i].Neg) == 1 && clauses[i].Pos == NoPositive {
				v := clauses[i].Neg[0]
				if trueVal[v] {
					f.Unsat, f.Clauses = true, nil
					return
				}
				if !falseVal[v] {
					falseVal[v] = true
					pending = append(pending, pendingAssign{v, false})
					f.ForcedFalse = append(f.ForcedFalse, v)
				}
				active[i] = false
			}
		}
	}

	// compact surviving clauses
	out := make([]Clause, 0, len(clauses))
	for i, c := range clauses {
		if active[i] {
			out = append(out, c)
		}
	}
	f.Clauses = out
}

type pendingAssign struct {
	v     int
	value bool
}

func toPending(vars []int, value bool) []pendingAssign {
	out := make([]pendingAssign, len(vars))
	for i, v := range vars {
		out[i] = pendingAssign{v, value}
	}
	return out
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func removeInt(xs []int, x int) []int {
	out := make([]int, 0, len(xs))
	for _, v := range xs {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}

func (f *Formula) Kind() formalism.Kind { return formalism.Horn }

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

// Contains evaluates a concrete assignment against the simplified clause
// set directly (used by property tests and by B4 when Horn is the
// enumeration-incapable side being probed from an enumerable side).
func (f *Formula) Contains(assign formalism.Assignment) bool {
	if f.Unsat {
		return false
	}
	for _, v := range f.ForcedTrue {
		if !assign[v] {
			return false
		}
	}
	for _, v := range f.ForcedFalse {
		if assign[v] {
			return false
		}
	}
	for _, c := range f.Clauses {
		allNegTrue := true
		for _, v := range c.Neg {
			if !assign[v] {
				allNegTrue = false
				break
			}
		}
		if !allNegTrue {
			continue
		}
		if c.Pos == NoPositive || !assign[c.Pos] {
			return false
		}
	}
	return true
}

// Shift renumbers every variable v -> v+offset, used to move a formula onto
// primed variables when building progression/regression checks (spec
// §4.4.2's "unit propagation over shifted copies").
func (f *Formula) Shift(offset int) *Formula {
	shifted := &Formula{n: f.n + offset, Unsat: f.Unsat}
	for _, v := range f.ForcedTrue {
		shifted.ForcedTrue = append(shifted.ForcedTrue, v+offset)
	}
	for _, v := range f.ForcedFalse {
		shifted.ForcedFalse = append(shifted.ForcedFalse, v+offset)
	}
	for _, c := range f.Clauses {
		nc := Clause{Pos: NoPositive}
		if c.Pos != NoPositive {
			nc.Pos = c.Pos + offset
		}
		for _, v := range c.Neg {
			nc.Neg = append(nc.Neg, v+offset)
		}
		shifted.Clauses = append(shifted.Clauses, nc)
	}
	return shifted
}

// merge conjoins several Horn formulas by taking the union of their clause
// sets (definite Horn clause sets are closed under conjunction).
func merge(formulas ...*Formula) *Formula {
	var clauses []Clause
	for _, f := range formulas {
		for _, v := range f.ForcedTrue {
			clauses = append(clauses, Clause{Pos: v})
		}
		for _, v := range f.ForcedFalse {
			clauses = append(clauses, Clause{Neg: []int{v}, Pos: NoPositive})
		}
		clauses = append(clauses, f.Clauses...)
		if f.Unsat {
			clauses = append(clauses, Clause{Pos: NoPositive})
		}
	}
	n := 0
	for _, f := range formulas {
		if f.n > n {
			n = f.n
		}
	}
	return New(n, clauses)
}

// falsifyingAssignments enumerates one partial assignment per clause of f
// (including its forced_true/forced_false as synthetic unit clauses) that
// falsifies exactly that clause — the negation of a Horn formula is the
// disjunction of its clauses' negations. If f is already unsatisfiable, its
// negation is a tautology, represented as a single empty (unconstrained)
// alternative.
func falsifyingAssignments(f *Formula) []map[int]bool {
	if f.Unsat {
		return []map[int]bool{{}}
	}
	var out []map[int]bool
	for _, v := range f.ForcedTrue {
		out = append(out, map[int]bool{v: false})
	}
	for _, v := range f.ForcedFalse {
		out = append(out, map[int]bool{v: true})
	}
	for _, c := range f.Clauses {
		assign := map[int]bool{}
		conflict := false
		for _, v := range c.Neg {
			if existing, ok := assign[v]; ok && existing != true {
				conflict = true
			}
			assign[v] = true
		}
		if c.Pos != NoPositive {
			if existing, ok := assign[c.Pos]; ok && existing != false {
				conflict = true
			}
			assign[c.Pos] = false
		}
		if !conflict {
			out = append(out, assign)
		}
	}
	return out
}

// satisfiableUnder checks whether f conjoined with a partial assignment is
// satisfiable, via unit propagation seeded from the partial assignment
//.
func satisfiableUnder(f *Formula, restriction map[int]bool) bool {
	if f.Unsat {
		return false
	}
	var clauses []Clause
	for _, v := range f.ForcedTrue {
		clauses = append(clauses, Clause{Pos: v})
	}
	for _, v := range f.ForcedFalse {
		clauses = append(clauses, Clause{Neg: []int{v}, Pos: NoPositive})
	}
	clauses = append(clauses, f.Clauses...)
	for v, val := range restriction {
		if val {
			clauses = append(clauses, Clause{Pos: v})
		} else {
			clauses = append(clauses, Clause{Neg: []int{v}, Pos: NoPositive})
		}
	}
	return !New(f.n, clauses).Unsat
}

// Subset decides B1 for literals entirely in the Horn encoding: it builds
// the conjunction φ of every positive (non-negated) literal, collects a
// disjunctive falsification obligation for every negated literal (OR over
// that formula's clauses), and declares the inclusion to hold iff every
// combination across the Cartesian product of obligations (one choice per
// negated literal) is unsatisfiable in conjunction with φ.
func Subset(left, right []formalism.Literal) (bool, error) {
	var positive []*Formula
	var obligations [][]map[int]bool
	collect := func(l formalism.Literal) error {
		hf, ok := l.Set.(*Formula)
		if !ok {
			return fmt.Errorf("horn.Subset: literal is not a Horn formula")
		}
		if l.Negated {
			obligations = append(obligations, falsifyingAssignments(hf))
		} else {
			positive = append(positive, hf)
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
	if phi.Unsat {
		return true, nil
	}
	if len(obligations) == 0 {
		return false, nil // phi is satisfiable and there is nothing to falsify: a witness exists
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
