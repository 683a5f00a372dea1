package explicit

import (
	"fmt"

	"proofverify/internal/formalism"
	"proofverify/internal/task"
)

func toAssignment(state []bool) formalism.Assignment {
	assign := make(formalism.Assignment, len(state))
	for v, b := range state {
		assign[v] = b
	}
	return assign
}

func apply(act *task.Action, s []bool) ([]bool, bool) {
	for _, p := range act.Pre {
		if !s[p] {
			return nil, false
		}
	}
	succ := append([]bool(nil), s...)
	for v, e := range act.Effects {
		switch e {
		case task.Add:
			succ[v] = true
		case task.Delete:
			succ[v] = false
		}
	}
	return succ, true
}

// intersectModels enumerates every total assignment over n facts that
// belongs to every formula in x (the empty list of basic sets is the
// universal set, per B2/B3's "⋂X" over zero sets).
func intersectModels(x []*Formula, n int) [][]bool {
	var out [][]bool
	total := 1 << uint(n)
	for mask := 0; mask < total; mask++ {
		s := make([]bool, n)
		for v := 0; v < n; v++ {
			s[v] = mask&(1<<uint(v)) != 0
		}
		all := true
		for _, f := range x {
			if !f.Contains(toAssignment(s)) {
				all = false
				break
			}
		}
		if all {
			out = append(out, s)
		}
	}
	return out
}

func checkFullVars(x []*Formula, n int) error {
	for _, f := range x {
		if len(f.vars) != n {
			return fmt.Errorf("explicit: progression/regression requires basic sets declared over the full fact set")
		}
	}
	return nil
}

// SubsetProgression decides B2 over Explicit sets by direct state-space
// simulation: every model of ⋂X is progressed through every action in
// actionIDs, and the resulting successor (if it also satisfies ⋂L) must
// satisfy ⋃L′.
func SubsetProgression(x []*Formula, left, right []formalism.Literal, tsk *task.Task, actionIDs []int) (bool, error) {
	n := tsk.NumFacts()
	if err := checkFullVars(x, n); err != nil {
		return false, err
	}
	src := intersectModels(x, n)
	for _, a := range actionIDs {
		if err := tsk.CheckActionIndex(a); err != nil {
			return false, err
		}
		act := tsk.Action(a)
		for _, s := range src {
			succ, ok := apply(act, s)
			if !ok {
				continue
			}
			assign := toAssignment(succ)
			if !allSatisfyExplicit(left, assign) {
				continue
			}
			if !anySatisfyExplicit(right, assign) {
				return false, nil
			}
		}
	}
	return true, nil
}

// SubsetRegression decides B3 symmetrically: every candidate predecessor
// state is enumerated, and kept only if some action maps it into ⋂X.
func SubsetRegression(x []*Formula, left, right []formalism.Literal, tsk *task.Task, actionIDs []int) (bool, error) {
	n := tsk.NumFacts()
	if err := checkFullVars(x, n); err != nil {
		return false, err
	}
	targets := intersectModels(x, n)
	targetSet := make(map[string]struct{}, len(targets))
	for _, m := range targets {
		targetSet[key(m)] = struct{}{}
	}
	total := 1 << uint(n)
	for _, a := range actionIDs {
		if err := tsk.CheckActionIndex(a); err != nil {
			return false, err
		}
		act := tsk.Action(a)
		for mask := 0; mask < total; mask++ {
			s := make([]bool, n)
			for v := 0; v < n; v++ {
				s[v] = mask&(1<<uint(v)) != 0
			}
			succ, ok := apply(act, s)
			if !ok {
				continue
			}
			if _, inTarget := targetSet[key(succ)]; !inTarget {
				continue
			}
			assign := toAssignment(s)
			if !allSatisfyExplicit(left, assign) {
				continue
			}
			if !anySatisfyExplicit(right, assign) {
				return false, nil
			}
		}
	}
	return true, nil
}

func allSatisfyExplicit(lits []formalism.Literal, assign formalism.Assignment) bool {
	for _, l := range lits {
		if !l.Satisfies(assign) {
			return false
		}
	}
	return true
}

func anySatisfyExplicit(lits []formalism.Literal, assign formalism.Assignment) bool {
	if len(lits) == 0 {
		return false
	}
	for _, l := range lits {
		if l.Satisfies(assign) {
			return true
		}
	}
	return false
}
