package horn

import (
	"fmt"

	"proofverify/internal/formalism"
	"proofverify/internal/task"
)

// ActionRelation builds the Horn encoding of one action's transition
// relation over 2n variables: unprimed 0..n-1 for the source state, primed
// n..2n-1 for the successor.
//
//   - precondition v: unit clause forcing v true
//   - add effect v:   unit clause forcing v' (= n+v) true
//   - delete effect v: unit clause forcing v' false
//   - frame v (no effect): the biconditional v <-> v', encoded as the two
//     Horn clauses v -> v' and v' -> v
func ActionRelation(n int, act *task.Action) *Formula {
	var clauses []Clause
	for _, p := range act.Pre {
		clauses = append(clauses, Clause{Pos: p})
	}
	for v, e := range act.Effects {
		switch e {
		case task.Add:
			clauses = append(clauses, Clause{Pos: n + v})
		case task.Delete:
			clauses = append(clauses, Clause{Neg: []int{n + v}, Pos: NoPositive})
		default:
			clauses = append(clauses, Clause{Neg: []int{v}, Pos: n + v})
			clauses = append(clauses, Clause{Neg: []int{n + v}, Pos: v})
		}
	}
	return New(2*n, clauses)
}

// SubsetProgression decides B2: (intersection of x) progressed through every
// action in the task's action set `actionIDs`, intersected with the
// (unprimed) literals in left, is a subset of the (unprimed) literals in
// right — i.e. for every action a in actionIDs, the set
//
//	source(x) AND transition_a(unprimed,primed) AND left'(primed) AND NOT right'(primed)
//
// must be unsatisfiable, where left'/right' are left/right shifted onto
// primed variables.
func SubsetProgression(n int, x []*Formula, left, right []formalism.Literal, tsk *task.Task, actionIDs []int) (bool, error) {
	return subsetTransition(n, x, left, right, tsk, actionIDs, false)
}

// SubsetRegression decides B3, symmetric to SubsetProgression: the relation
// is traversed backwards, so the action relation is built the same way but
// the "source" side is the primed copy and the "target" the unprimed one.
func SubsetRegression(n int, x []*Formula, left, right []formalism.Literal, tsk *task.Task, actionIDs []int) (bool, error) {
	return subsetTransition(n, x, left, right, tsk, actionIDs, true)
}

func asHorn(l formalism.Literal) (*Formula, bool, error) {
	hf, ok := l.Set.(*Formula)
	if !ok {
		return nil, false, fmt.Errorf("horn: literal is not a Horn formula")
	}
	return hf, l.Negated, nil
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
			hf, negated, err := asHorn(l)
			if err != nil {
				return false, err
			}
			shifted := hf.Shift(n)
			if negated {
				obligations = append(obligations, falsifyingAssignments(shifted))
			} else {
				positive = append(positive, shifted)
			}
		}
		for _, l := range right {
			hf, negated, err := asHorn(l)
			if err != nil {
				return false, err
			}
			shifted := hf.Shift(n)
			if negated {
				positive = append(positive, shifted)
			} else {
				obligations = append(obligations, falsifyingAssignments(shifted))
			}
		}

		phi := merge(positive...)
		if phi.Unsat {
			continue // this action contributes no witness against the claim
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

// swapPrimedUnprimed exchanges the unprimed [0,n) and primed [n,2n) ranges
// of a relation formula, turning a forward transition relation into its
// converse for regression.
func swapPrimedUnprimed(rel *Formula, n int) *Formula {
	swap := func(v int) int {
		if v < n {
			return v + n
		}
		return v - n
	}
	out := &Formula{n: rel.n, Unsat: rel.Unsat}
	for _, v := range rel.ForcedTrue {
		out.ForcedTrue = append(out.ForcedTrue, swap(v))
	}
	for _, v := range rel.ForcedFalse {
		out.ForcedFalse = append(out.ForcedFalse, swap(v))
	}
	for _, c := range rel.Clauses {
		nc := Clause{Pos: NoPositive}
		if c.Pos != NoPositive {
			nc.Pos = swap(c.Pos)
		}
		for _, v := range c.Neg {
			nc.Neg = append(nc.Neg, swap(v))
		}
		out.Clauses = append(out.Clauses, nc)
	}
	return out
}
