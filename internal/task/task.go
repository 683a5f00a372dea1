// Package task holds the immutable propositional planning task.
package task

import "fmt"

// Effect is the per-fact change an action applies to a state.
type Effect int

const (
	NoChange Effect = 0
	Add      Effect = 1
	Delete   Effect = -1
)

// Action is one operator of the task: a precondition over facts and a
// per-fact effect. Facts absent from Pre are unconstrained; facts with
// Effects[v] == NoChange are left untouched (the "frame" case).
type Action struct {
	Name    string
	Pre     []int // fact indices required true
	Effects []Effect
}

// Adds returns the fact indices this action asserts true.
func (a *Action) Adds() []int {
	var out []int
	for v, e := range a.Effects {
		if e == Add {
			out = append(out, v)
		}
	}
	return out
}

// Deletes returns the fact indices this action asserts false.
func (a *Action) Deletes() []int {
	var out []int
	for v, e := range a.Effects {
		if e == Delete {
			out = append(out, v)
		}
	}
	return out
}

// Task is the immutable propositional planning task: facts, actions,
// initial state and goal. Constructed once by New (which Parse calls) and
// never mutated.
type Task struct {
	factNames []string
	actions   []*Action
	initial   []bool // total assignment, indexed by fact
	goal      []int  // partial assignment, -1 = unconstrained
}

// New builds a task from already-validated components. Indices in every
// action's Pre/Effects must already be bounds-checked against len(facts).
func New(facts []string, initial []bool, goal []int, actions []*Action) (*Task, error) {
	n := len(facts)
	if len(initial) != n {
		return nil, fmt.Errorf("task: initial state has %d entries, want %d", len(initial), n)
	}
	if len(goal) != n {
		return nil, fmt.Errorf("task: goal cube has %d entries, want %d", len(goal), n)
	}
	for _, a := range actions {
		if len(a.Effects) != n {
			return nil, fmt.Errorf("task: action %q has %d effect entries, want %d", a.Name, len(a.Effects), n)
		}
		for _, p := range a.Pre {
			if p < 0 || p >= n {
				return nil, fmt.Errorf("task: action %q precondition references out-of-range fact %d", a.Name, p)
			}
		}
	}
	return &Task{factNames: facts, actions: actions, initial: initial, goal: goal}, nil
}

func (t *Task) NumFacts() int   { return len(t.factNames) }
func (t *Task) NumActions() int { return len(t.actions) }

func (t *Task) FactName(i int) string { return t.factNames[i] }

// Action returns action i. Panics if out of range; callers must bounds-check
// against NumActions first.
func (t *Task) Action(i int) *Action { return t.actions[i] }

// Initial returns the initial state as a total assignment (a cube with no
// unconstrained entries).
func (t *Task) Initial() []bool { return t.initial }

// Goal returns the goal partial assignment; entry -1 means unconstrained.
func (t *Task) Goal() []int { return t.goal }

// Satisfies reports whether the total assignment state extends the goal cube.
func (t *Task) Satisfies(state []bool) bool {
	for v, want := range t.goal {
		if want == -1 {
			continue
		}
		got := 0
		if state[v] {
			got = 1
		}
		if got != want {
			return false
		}
	}
	return true
}

// CheckFactIndex bounds-checks a fact index.
func (t *Task) CheckFactIndex(i int) error {
	if i < 0 || i >= len(t.factNames) {
		return fmt.Errorf("task: fact index %d out of range [0,%d)", i, len(t.factNames))
	}
	return nil
}

// CheckActionIndex bounds-checks an action index.
func (t *Task) CheckActionIndex(i int) error {
	if i < 0 || i >= len(t.actions) {
		return fmt.Errorf("task: action index %d out of range [0,%d)", i, len(t.actions))
	}
	return nil
}
