package explicit

import "proofverify/internal/task"

func fullVarOrder(n int) []int {
	vars := make([]int, n)
	for i := range vars {
		vars[i] = i
	}
	return vars
}

// Empty builds the Explicit encoding of the EMPTY constant: zero models over
// the full fact set.
func Empty(n int) *Formula {
	f, _ := New(fullVarOrder(n), nil)
	return f
}

// InitFormula builds the Explicit encoding of the INIT constant: a single
// model, the initial cube itself.
func InitFormula(tsk *task.Task) *Formula {
	f, _ := New(fullVarOrder(tsk.NumFacts()), [][]bool{append([]bool(nil), tsk.Initial()...)})
	return f
}

// GoalFormula builds the Explicit encoding of the GOAL constant, declared
// over only the facts the goal cube actually constrains, enumerating the
// single model of their fixed values.
func GoalFormula(tsk *task.Task) *Formula {
	var vars []int
	var bits []bool
	for v, want := range tsk.Goal() {
		if want != -1 {
			vars = append(vars, v)
			bits = append(bits, want == 1)
		}
	}
	f, _ := New(vars, [][]bool{bits})
	return f
}
