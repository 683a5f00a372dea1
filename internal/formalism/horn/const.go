package horn

import "proofverify/internal/task"

// Empty builds the canonical unsatisfiable Horn formula over n variables,
// representing the EMPTY constant").
func Empty(n int) *Formula {
	return New(n, []Clause{{Pos: NoPositive}})
}

// InitFormula builds the Horn encoding of the INIT constant: every fact
// forced to its initial cube value.
func InitFormula(tsk *task.Task) *Formula {
	n := tsk.NumFacts()
	initial := tsk.Initial()
	clauses := make([]Clause, 0, n)
	for v, val := range initial {
		if val {
			clauses = append(clauses, Clause{Pos: v})
		} else {
			clauses = append(clauses, Clause{Neg: []int{v}, Pos: NoPositive})
		}
	}
	return New(n, clauses)
}

// GoalFormula builds the Horn encoding of the GOAL constant: only facts the
// goal cube actually constrains are forced; unconstrained facts are free.
func GoalFormula(tsk *task.Task) *Formula {
	n := tsk.NumFacts()
	goal := tsk.Goal()
	var clauses []Clause
	for v, want := range goal {
		switch want {
		case 1:
			clauses = append(clauses, Clause{Pos: v})
		case 0:
			clauses = append(clauses, Clause{Neg: []int{v}, Pos: NoPositive})
		}
	}
	return New(n, clauses)
}
