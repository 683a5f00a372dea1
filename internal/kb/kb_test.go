package kb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSubsetAndDead(t *testing.T) {
	k := New()
	require.NoError(t, k.AddSubset(0, 1, 2))
	require.NoError(t, k.AddDead(1, 3))

	i, j, ok := k.AsSubset(0)
	require.True(t, ok)
	require.Equal(t, 1, i)
	require.Equal(t, 2, j)

	d, ok := k.AsDead(1)
	require.True(t, ok)
	require.Equal(t, 3, d)

	_, ok = k.AsDead(0)
	require.False(t, ok)
}

func TestAddRejectsNonMonotonicIndex(t *testing.T) {
	k := New()
	require.Error(t, k.AddSubset(1, 0, 0))
}

func TestAddFailedReservesSlotWithoutClaimingAnything(t *testing.T) {
	k := New()
	require.NoError(t, k.AddDead(0, 0))
	require.NoError(t, k.AddFailed(1))
	require.NoError(t, k.AddSubset(2, 0, 0))

	_, ok := k.AsDead(1)
	require.False(t, ok)
	_, _, ok = k.AsSubset(1)
	require.False(t, ok)
	require.Equal(t, 3, k.Len())
}

func TestUnsolvableMarksProven(t *testing.T) {
	k := New()
	require.NoError(t, k.AddDead(0, 0))
	require.False(t, k.Proven())
	require.NoError(t, k.AddUnsolvable(1))
	require.True(t, k.Proven())
	require.True(t, k.IsUnsolvable(1))
	require.False(t, k.IsUnsolvable(0))
}
