package bdd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"proofverify/internal/formalism"
	"proofverify/internal/task"
)

func TestManagerBasicApply(t *testing.T) {
	m := NewManager()
	p := m.Var(UnprimedVar(0))
	q := m.Var(UnprimedVar(1))

	and := m.And(p, q)
	require.True(t, m.Eval(and, func(v int) bool { return true }))
	require.False(t, m.Eval(and, func(v int) bool { return v != UnprimedVar(1) }))

	or := m.Or(p, q)
	require.True(t, m.Eval(or, func(v int) bool { return v == UnprimedVar(0) }))

	require.Equal(t, False, m.And(p, m.Not(p)))
	require.Equal(t, True, m.Or(p, m.Not(p)))
}

func TestManagerLeq(t *testing.T) {
	m := NewManager()
	p := m.Var(UnprimedVar(0))
	q := m.Var(UnprimedVar(1))
	and := m.And(p, q)

	require.True(t, m.Leq(and, p))
	require.False(t, m.Leq(p, and))
}

func TestSwapPrimedUnprimedIsInvolution(t *testing.T) {
	m := NewManager()
	rel := m.And(m.Var(UnprimedVar(0)), m.Not(m.Var(PrimedVar(0))))
	once := m.SwapPrimedUnprimed(rel, 1)
	twice := m.SwapPrimedUnprimed(once, 1)
	require.Equal(t, rel, twice)
	require.NotEqual(t, rel, once)
}

func TestMinterms(t *testing.T) {
	m := NewManager()
	p, q := m.Var(UnprimedVar(0)), m.Var(UnprimedVar(1))
	or := m.Or(p, q)
	models := m.Minterms(or, []int{UnprimedVar(0), UnprimedVar(1)})
	require.Len(t, models, 3)
}

func TestFormulaSubsetReflexive(t *testing.T) {
	m := NewManager()
	f := New(m, m.Var(UnprimedVar(0)), 1)
	ok, err := Subset(m, []formalism.Literal{{Set: f}}, []formalism.Literal{{Set: f}})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFormulaSubsetDetectsViolation(t *testing.T) {
	m := NewManager()
	left := New(m, m.Var(UnprimedVar(0)), 2)
	right := New(m, m.Var(UnprimedVar(1)), 2)
	ok, err := Subset(m, []formalism.Literal{{Set: left}}, []formalism.Literal{{Set: right}})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFormulaSubsetRejectsMismatchedManagers(t *testing.T) {
	m1, m2 := NewManager(), NewManager()
	left := New(m1, m1.Var(UnprimedVar(0)), 1)
	right := New(m2, m2.Var(UnprimedVar(0)), 1)
	_, err := Subset(m1, []formalism.Literal{{Set: left}}, []formalism.Literal{{Set: right}})
	require.Error(t, err)
}

func TestFormulaContains(t *testing.T) {
	m := NewManager()
	f := New(m, m.Var(UnprimedVar(0)), 1)
	require.True(t, f.Contains(formalism.Assignment{0: true}))
	require.False(t, f.Contains(formalism.Assignment{0: false}))
}

func TestActionRelationProgression(t *testing.T) {
	tk, err := task.New([]string{"p"}, []bool{false}, []int{-1}, []*task.Action{
		{Name: "add-p", Effects: []task.Effect{task.Add}},
	})
	require.NoError(t, err)

	m := NewManager()
	all := New(m, True, 1)
	target := New(m, m.Var(UnprimedVar(0)), 1)

	ok, err := SubsetProgression(m, 1, []*Formula{all}, nil,
		[]formalism.Literal{{Set: target}}, tk, []int{0})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestActionRelationProgressionViolation(t *testing.T) {
	tk, err := task.New([]string{"p"}, []bool{false}, []int{-1}, []*task.Action{
		{Name: "noop", Effects: []task.Effect{task.NoChange}},
	})
	require.NoError(t, err)

	m := NewManager()
	all := New(m, True, 1)
	target := New(m, m.Var(UnprimedVar(0)), 1)

	ok, err := SubsetProgression(m, 1, []*Formula{all}, nil,
		[]formalism.Literal{{Set: target}}, tk, []int{0})
	require.NoError(t, err)
	require.False(t, ok)
}
