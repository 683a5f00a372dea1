package horn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"proofverify/internal/formalism"
	"proofverify/internal/task"
)

func TestSimplifyDetectsUnsat(t *testing.T) {
	// p, !p
	f := New(1, []Clause{{Pos: 0}, {Neg: []int{0}, Pos: NoPositive}})
	require.True(t, f.Unsat)
}

func TestSimplifyPropagatesUnit(t *testing.T) {
	// p, p -> q  =>  q forced true
	f := New(2, []Clause{{Pos: 0}, {Neg: []int{0}, Pos: 1}})
	require.False(t, f.Unsat)
	require.Contains(t, f.ForcedTrue, 0)
	require.Contains(t, f.ForcedTrue, 1)
	require.Empty(t, f.Clauses)
}

func TestSimplifyIdempotent(t *testing.T) {
	f := New(2, []Clause{{Pos: 0}, {Neg: []int{0}, Pos: 1}})
	before := append([]Clause{}, f.Clauses...)
	f.simplify()
	require.Equal(t, before, f.Clauses)
}

func TestSubsetReflexive(t *testing.T) {
	f := New(1, []Clause{{Pos: 0}})
	ok, err := Subset(
		[]formalism.Literal{{Set: f}},
		[]formalism.Literal{{Set: f}},
	)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSubsetDetectsViolation(t *testing.T) {
	// left: p forced true. right: q forced true. p does not imply q.
	left := New(2, []Clause{{Pos: 0}})
	right := New(2, []Clause{{Pos: 1}})
	ok, err := Subset(
		[]formalism.Literal{{Set: left}},
		[]formalism.Literal{{Set: right}},
	)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSubsetEmptyLeftIsVacuouslyTrue(t *testing.T) {
	unsatF := New(1, []Clause{{Pos: 0}, {Neg: []int{0}, Pos: NoPositive}})
	ok, err := Subset(
		[]formalism.Literal{{Set: unsatF}},
		nil,
	)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestActionRelationProgression(t *testing.T) {
	// one fact p, action adds p unconditionally.
	tk, err := task.New([]string{"p"}, []bool{false}, []int{-1}, []*task.Action{
		{Name: "add-p", Effects: []task.Effect{task.Add}},
	})
	require.NoError(t, err)

	// source X = everything (no constraint): forced-true nothing => vacuous formula.
	all := New(1, nil)
	// claim: progression of all through action 0 lands inside {p=true}.
	target := New(1, []Clause{{Pos: 0}})
	ok, err := SubsetProgression(1, []*Formula{all}, nil,
		[]formalism.Literal{{Set: target}}, tk, []int{0})
	require.NoError(t, err)
	require.True(t, ok)
}
