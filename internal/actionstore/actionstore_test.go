package actionstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"proofverify/internal/task"
)

func testTask(t *testing.T, numActions int) *task.Task {
	t.Helper()
	actions := make([]*task.Action, numActions)
	for i := range actions {
		actions[i] = &task.Action{Name: "a", Effects: []task.Effect{task.NoChange}}
	}
	tk, err := task.New([]string{"p"}, []bool{false}, []int{-1}, actions)
	require.NoError(t, err)
	return tk
}

func TestAddBasicAndContains(t *testing.T) {
	s := New(testTask(t, 3))
	require.NoError(t, s.AddBasic(0, []int{0, 2}))
	ok, err := s.Contains(0, 2)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.Contains(0, 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAddBasicRejectsOutOfRangeAction(t *testing.T) {
	s := New(testTask(t, 2))
	require.Error(t, s.AddBasic(0, []int{5}))
}

func TestAddUnionRejectsForwardReference(t *testing.T) {
	s := New(testTask(t, 3))
	require.NoError(t, s.AddBasic(0, []int{0}))
	require.Error(t, s.AddUnion(1, 0, 5))
}

func TestIsAllActionsDistinguishesConstant(t *testing.T) {
	s := New(testTask(t, 3))
	require.NoError(t, s.AddBasic(0, []int{0, 1, 2})) // enumerates every action
	require.NoError(t, s.AddAll(1))

	allConst, err := s.IsAllActions(1)
	require.NoError(t, err)
	require.True(t, allConst)

	enumerated, err := s.IsAllActions(0)
	require.NoError(t, err)
	require.False(t, enumerated, "a concrete enumeration equal to all actions is not the All constant")
}

func TestIsSubsetStructuralShortcutAgainstAll(t *testing.T) {
	s := New(testTask(t, 3))
	require.NoError(t, s.AddBasic(0, []int{0}))
	require.NoError(t, s.AddAll(1))
	ok, err := s.IsSubset(0, 1)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsSubsetByMaterialization(t *testing.T) {
	s := New(testTask(t, 3))
	require.NoError(t, s.AddBasic(0, []int{0}))
	require.NoError(t, s.AddBasic(1, []int{1}))
	require.NoError(t, s.AddUnion(2, 0, 1))
	ok, err := s.IsSubset(0, 2)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.IsSubset(2, 0)
	require.NoError(t, err)
	require.False(t, ok)
}
