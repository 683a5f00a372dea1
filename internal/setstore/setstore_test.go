package setstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"proofverify/internal/formalism"
	"proofverify/internal/formalism/horn"
	"proofverify/internal/task"
)

func testTask(t *testing.T) *task.Task {
	t.Helper()
	tk, err := task.New([]string{"p", "q"}, []bool{true, false}, []int{1, -1}, nil)
	require.NoError(t, err)
	return tk
}

func TestAddBasicRejectsNonMonotonicIndex(t *testing.T) {
	s := New(testTask(t))
	require.Error(t, s.AddBasic(1, horn.New(2, nil)))
}

func TestCompoundRejectsForwardReference(t *testing.T) {
	s := New(testTask(t))
	require.NoError(t, s.AddConstant(0, ConstEmpty))
	require.Error(t, s.AddNegation(1, 5))
}

func TestShapeAccessors(t *testing.T) {
	s := New(testTask(t))
	require.NoError(t, s.AddConstant(0, ConstEmpty))
	require.NoError(t, s.AddConstant(1, ConstGoal))
	require.NoError(t, s.AddUnion(2, 0, 1))
	require.NoError(t, s.AddNegation(3, 2))

	l, r, ok := s.AsUnion(2)
	require.True(t, ok)
	require.Equal(t, 0, l)
	require.Equal(t, 1, r)

	sub, ok := s.AsNegation(3)
	require.True(t, ok)
	require.Equal(t, 2, sub)

	_, _, ok = s.AsUnion(3)
	require.False(t, ok)
}

func TestLiteralMaterializesConstantAndCaches(t *testing.T) {
	s := New(testTask(t))
	require.NoError(t, s.AddConstant(0, ConstInit))

	lit, err := s.Literal(0, false, formalism.Horn)
	require.NoError(t, err)
	require.True(t, lit.Set.Contains(formalism.Assignment{0: true, 1: false}))

	again, err := s.Literal(0, false, formalism.Horn)
	require.NoError(t, err)
	require.Same(t, lit.Set, again.Set, "constant materialisation must be cached per formalism")
}

func TestLiteralRejectsFormalismMismatch(t *testing.T) {
	s := New(testTask(t))
	require.NoError(t, s.AddBasic(0, horn.New(2, nil)))
	_, err := s.Literal(0, false, formalism.BDD)
	require.Error(t, err)
}

func TestDiscardClosurePropagatesThroughCompounds(t *testing.T) {
	s := New(testTask(t))
	require.NoError(t, s.AddBasic(0, horn.New(2, []horn.Clause{{Pos: 0}})))
	require.NoError(t, s.AddBasic(1, horn.New(2, []horn.Clause{{Pos: 1}})))
	require.NoError(t, s.AddUnion(2, 0, 1))

	// A basic statement at knowledge index 5 is recorded as consulting the
	// compound union directly; the closure must push last_use down to both
	// of its basic operands.
	s.RecordConsult(5, 2)
	s.Finalize()
	require.Equal(t, 5, s.LastUse(0))
	require.Equal(t, 5, s.LastUse(1))
	require.Equal(t, 5, s.LastUse(2))

	s.MaybeDiscard([]int{2}, 5)
	require.True(t, s.Discarded(0))
	require.True(t, s.Discarded(1))
	require.True(t, s.Discarded(2))

	_, err := s.Literal(0, false, formalism.Horn)
	require.Error(t, err)
}

func TestMaybeDiscardIsIdempotent(t *testing.T) {
	s := New(testTask(t))
	require.NoError(t, s.AddBasic(0, horn.New(2, nil)))
	s.RecordConsult(3, 0)
	s.Finalize()
	s.MaybeDiscard([]int{0}, 3)
	require.NotPanics(t, func() { s.MaybeDiscard([]int{0}, 3) })
}
