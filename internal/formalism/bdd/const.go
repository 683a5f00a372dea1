package bdd

import "proofverify/internal/task"

// Empty builds the BDD encoding of the EMPTY constant: the False terminal.
func Empty(mgr *Manager, numFacts int) *Formula {
	return New(mgr, False, numFacts)
}

// InitFormula builds the BDD encoding of the INIT constant: the cube fixing
// every fact to its initial value.
func InitFormula(mgr *Manager, tsk *task.Task) *Formula {
	assign := make(map[int]bool, tsk.NumFacts())
	for v, val := range tsk.Initial() {
		assign[UnprimedVar(v)] = val
	}
	return New(mgr, mgr.Cube(assign), tsk.NumFacts())
}

// GoalFormula builds the BDD encoding of the GOAL constant: the cube fixing
// only the facts the goal partial assignment constrains.
func GoalFormula(mgr *Manager, tsk *task.Task) *Formula {
	assign := make(map[int]bool)
	for v, want := range tsk.Goal() {
		if want != -1 {
			assign[UnprimedVar(v)] = want == 1
		}
	}
	return New(mgr, mgr.Cube(assign), tsk.NumFacts())
}
