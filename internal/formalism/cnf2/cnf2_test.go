package cnf2

import (
	"testing"

	"github.com/stretchr/testify/require"

	"proofverify/internal/formalism"
	"proofverify/internal/task"
)

func unit(v int, neg bool) Clause2 {
	l := Literal2{Var: v, Neg: neg}
	return Clause2{A: l, B: l}
}

func TestUnsatDetectsContradiction(t *testing.T) {
	// p, !p
	f := New(1, []Clause2{unit(0, false), unit(0, true)})
	require.True(t, f.Unsat())
}

func TestUnsatDetectsImplicationCycle(t *testing.T) {
	// p -> q, q -> !p, p -> !q  forces a contradiction when combined with p.
	f := New(2, []Clause2{
		{A: Literal2{Var: 0, Neg: true}, B: Literal2{Var: 1}}, // !p OR q  (p -> q)
		{A: Literal2{Var: 1, Neg: true}, B: Literal2{Var: 0, Neg: true}}, // !q OR !p (q -> !p)
		unit(0, false),
	})
	require.True(t, f.Unsat())
}

func TestSatisfiableIsNotUnsat(t *testing.T) {
	f := New(2, []Clause2{
		{A: Literal2{Var: 0}, B: Literal2{Var: 1}},
	})
	require.False(t, f.Unsat())
}

func TestContains(t *testing.T) {
	f := New(2, []Clause2{{A: Literal2{Var: 0}, B: Literal2{Var: 1}}})
	require.True(t, f.Contains(formalism.Assignment{0: true, 1: false}))
	require.False(t, f.Contains(formalism.Assignment{0: false, 1: false}))
}

func TestSubsetReflexive(t *testing.T) {
	f := New(1, []Clause2{unit(0, false)})
	ok, err := Subset([]formalism.Literal{{Set: f}}, []formalism.Literal{{Set: f}})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSubsetDetectsViolation(t *testing.T) {
	left := New(2, []Clause2{unit(0, false)})
	right := New(2, []Clause2{unit(1, false)})
	ok, err := Subset([]formalism.Literal{{Set: left}}, []formalism.Literal{{Set: right}})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSubsetEmptyLeftIsVacuouslyTrue(t *testing.T) {
	unsatF := New(1, []Clause2{unit(0, false), unit(0, true)})
	ok, err := Subset([]formalism.Literal{{Set: unsatF}}, nil)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestActionRelationProgression(t *testing.T) {
	tk, err := task.New([]string{"p"}, []bool{false}, []int{-1}, []*task.Action{
		{Name: "add-p", Effects: []task.Effect{task.Add}},
	})
	require.NoError(t, err)

	all := New(1, nil)
	target := New(1, []Clause2{unit(0, false)})
	ok, err := SubsetProgression(1, []*Formula{all}, nil,
		[]formalism.Literal{{Set: target}}, tk, []int{0})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestActionRelationProgressionViolation(t *testing.T) {
	tk, err := task.New([]string{"p"}, []bool{false}, []int{-1}, []*task.Action{
		{Name: "noop", Effects: []task.Effect{task.NoChange}},
	})
	require.NoError(t, err)

	all := New(1, nil)
	target := New(1, []Clause2{unit(0, false)})
	ok, err := SubsetProgression(1, []*Formula{all}, nil,
		[]formalism.Literal{{Set: target}}, tk, []int{0})
	require.NoError(t, err)
	require.False(t, ok)
}
