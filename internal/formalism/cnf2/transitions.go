package cnf2

import (
	"fmt"

	"proofverify/internal/formalism"
	"proofverify/internal/task"
)

// ActionRelation builds the 2-CNF encoding of one action's transition
// relation over 2n variables: unprimed 0..n-1 for the source state, primed
// n..2n-1 for the successor. Every constraint here is a unit or a
// biconditional, both expressible as (possibly degenerate) binary clauses.
func ActionRelation(n int, act *task.Action) *Formula {
	var clauses []Clause2
	unit := func(l Literal2) { clauses = append(clauses, Clause2{A: l, B: l}) }
	for _, p := range act.Pre {
		unit(Literal2{Var: p})
	}
	for v, e := range act.Effects {
		switch e {
		case task.Add:
			unit(Literal2{Var: n + v})
		case task.Delete:
			unit(Literal2{Var: n + v, Neg: true})
		default:
			// frame: v <-> v', i.e. (!v OR v') AND (v OR !v')
			clauses = append(clauses,
				Clause2{A: Literal2{Var: v, Neg: true}, B: Literal2{Var: n + v}},
				Clause2{A: Literal2{Var: v}, B: Literal2{Var: n + v, Neg: true}},
			)
		}
	}
	return New(2*n, clauses)
}

func asCNF2(l formalism.Literal) (*Formula, bool, error) {
	cf, ok := l.Set.(*Formula)
	if !ok {
		return nil, false, fmt.Errorf("cnf2: literal is not a 2-CNF formula")
	}
	return cf, l.Negated, nil
}

// SubsetProgression decides B2, identically structured to the Horn
// encoding's: for every action, source AND relation_a AND left'(primed) AND
// NOT right'(primed) must be unsatisfiable.
func SubsetProgression(n int, x []*Formula, left, right []formalism.Literal, tsk *task.Task, actionIDs []int) (bool, error) {
	return subsetTransition(n, x, left, right, tsk, actionIDs, false)
}

// SubsetRegression decides B3, via the converse (swapped) transition relation.
func SubsetRegression(n int, x []*Formula, left, right []formalism.Literal, tsk *task.Task, actionIDs []int) (bool, error) {
	return subsetTransition(n, x, left, right, tsk, actionIDs, true)
}

func subsetTransition(n int, x []*Formula, left, right []formalism.Literal, tsk *task.Task, actionIDs []int, regression bool) (bool, error) {
	for _, a := range actionIDs {
		if err := tsk.CheckActionIndex(a); err != nil {
			return false, err
		}
		rel := ActionRelation(n, tsk.Action(a))
		if regression {
			rel = swapPrimedUnprimed(rel, n)
		}

		var positive []*Formula
		positive = append(positive, x...)
		positive = append(positive, rel)
		var obligations [][]map[int]bool
		for _, l := range left {
			cf, negated, err := asCNF2(l)
			if err != nil {
				return false, err
			}
			shifted := cf.Shift(n)
			if negated {
				obligations = append(obligations, falsifyingAssignments(shifted))
			} else {
				positive = append(positive, shifted)
			}
		}
		for _, l := range right {
			cf, negated, err := asCNF2(l)
			if err != nil {
				return false, err
			}
			shifted := cf.Shift(n)
			if negated {
				positive = append(positive, shifted)
			} else {
				obligations = append(obligations, falsifyingAssignments(shifted))
			}
		}

		phi := merge(positive...)
		if phi.Unsat() {
			continue
		}
		if len(obligations) == 0 {
			return false, nil
		}
		sat := false
		cartesian(obligations, map[int]bool{}, func(choice map[int]bool) bool {
			if satisfiableUnder(phi, choice) {
				sat = true
				return false
			}
			return true
		})
		if sat {
			return false, nil
		}
	}
	return true, nil
}

// swapPrimedUnprimed exchanges the unprimed [0,n) and primed [n,2n) ranges of
// a relation formula, turning a forward transition relation into its
// converse for regression.
func swapPrimedUnprimed(rel *Formula, n int) *Formula {
	swap := func(v int) int {
		if v < n {
			return v + n
		}
		return v - n
	}
	swapLit := func(l Literal2) Literal2 { return Literal2{Var: swap(l.Var), Neg: l.Neg} }
	out := &Formula{n: rel.n}
	for _, c := range rel.Clauses {
		out.Clauses = append(out.Clauses, Clause2{A: swapLit(c.A), B: swapLit(c.B)})
	}
	return out
}
