package explicit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"proofverify/internal/formalism"
	"proofverify/internal/task"
)

func TestContainsAndModelCount(t *testing.T) {
	f, err := New([]int{0, 1}, [][]bool{{true, false}, {false, true}})
	require.NoError(t, err)
	require.Equal(t, 2, f.ModelCount())
	require.True(t, f.Contains(formalism.Assignment{0: true, 1: false}))
	require.False(t, f.Contains(formalism.Assignment{0: true, 1: true}))
}

func TestNewRejectsWrongWidthModel(t *testing.T) {
	_, err := New([]int{0, 1}, [][]bool{{true}})
	require.Error(t, err)
}

func TestSubsetReflexive(t *testing.T) {
	f, err := New([]int{0}, [][]bool{{true}})
	require.NoError(t, err)
	ok := Subset([]formalism.Literal{{Set: f}}, []formalism.Literal{{Set: f}})
	require.True(t, ok)
}

func TestSubsetDetectsViolation(t *testing.T) {
	left, err := New([]int{0}, [][]bool{{true}, {false}})
	require.NoError(t, err)
	right, err := New([]int{0}, [][]bool{{true}})
	require.NoError(t, err)
	ok := Subset([]formalism.Literal{{Set: left}}, []formalism.Literal{{Set: right}})
	require.False(t, ok)
}

func TestProgression(t *testing.T) {
	tk, err := task.New([]string{"p"}, []bool{false}, []int{-1}, []*task.Action{
		{Name: "add-p", Effects: []task.Effect{task.Add}},
	})
	require.NoError(t, err)

	all, err := New([]int{0}, [][]bool{{true}, {false}})
	require.NoError(t, err)
	target, err := New([]int{0}, [][]bool{{true}})
	require.NoError(t, err)

	ok, err := SubsetProgression([]*Formula{all}, nil,
		[]formalism.Literal{{Set: target}}, tk, []int{0})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestProgressionViolation(t *testing.T) {
	tk, err := task.New([]string{"p"}, []bool{false}, []int{-1}, []*task.Action{
		{Name: "noop", Effects: []task.Effect{task.NoChange}},
	})
	require.NoError(t, err)

	all, err := New([]int{0}, [][]bool{{true}, {false}})
	require.NoError(t, err)
	target, err := New([]int{0}, [][]bool{{true}})
	require.NoError(t, err)

	ok, err := SubsetProgression([]*Formula{all}, nil,
		[]formalism.Literal{{Set: target}}, tk, []int{0})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestConstants(t *testing.T) {
	tk, err := task.New([]string{"p", "q"}, []bool{true, false}, []int{1, -1}, nil)
	require.NoError(t, err)

	empty := Empty(2)
	require.Equal(t, 0, empty.ModelCount())

	init := InitFormula(tk)
	require.True(t, init.Contains(formalism.Assignment{0: true, 1: false}))
	require.False(t, init.Contains(formalism.Assignment{0: false, 1: false}))

	goal := GoalFormula(tk)
	require.Equal(t, []int{0}, goal.VarOrder())
	require.True(t, goal.Contains(formalism.Assignment{0: true}))
}
