package cnf2

import "proofverify/internal/task"

// Empty builds the unsatisfiable 2-CNF formula over n variables (a variable
// forced both true and false), representing the EMPTY constant.
func Empty(n int) *Formula {
	return New(n, []Clause2{unit(Literal2{Var: 0}), unit(Literal2{Var: 0, Neg: true})})
}

func unit(l Literal2) Clause2 { return Clause2{A: l, B: l} }

// InitFormula builds the 2-CNF encoding of the INIT constant: every fact
// forced to its initial cube value via a degenerate unit clause.
func InitFormula(tsk *task.Task) *Formula {
	n := tsk.NumFacts()
	initial := tsk.Initial()
	clauses := make([]Clause2, 0, n)
	for v, val := range initial {
		clauses = append(clauses, unit(Literal2{Var: v, Neg: !val}))
	}
	return New(n, clauses)
}

// GoalFormula builds the 2-CNF encoding of the GOAL constant: only
// goal-constrained facts are forced.
func GoalFormula(tsk *task.Task) *Formula {
	n := tsk.NumFacts()
	goal := tsk.Goal()
	var clauses []Clause2
	for v, want := range goal {
		switch want {
		case 1:
			clauses = append(clauses, unit(Literal2{Var: v}))
		case 0:
			clauses = append(clauses, unit(Literal2{Var: v, Neg: true}))
		}
	}
	return New(n, clauses)
}
