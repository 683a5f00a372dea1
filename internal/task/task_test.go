package task

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleTask = `
facts 1
p
initial 0
goal 1
actions 1
action add-p
pre 0
eff 1
endaction
`

func TestParseSample(t *testing.T) {
	tk, err := Parse(sampleTask)
	require.NoError(t, err)
	require.Equal(t, 1, tk.NumFacts())
	require.Equal(t, 1, tk.NumActions())
	require.Equal(t, []bool{false}, tk.Initial())
	require.Equal(t, []int{1}, tk.Goal())

	act := tk.Action(0)
	require.Equal(t, "add-p", act.Name)
	require.Empty(t, act.Pre)
	require.Equal(t, []Effect{Add}, act.Effects)
}

func TestSatisfies(t *testing.T) {
	tk, err := Parse(sampleTask)
	require.NoError(t, err)
	require.False(t, tk.Satisfies([]bool{false}))
	require.True(t, tk.Satisfies([]bool{true}))
}

func TestParseRejectsBadEffectValue(t *testing.T) {
	bad := `
facts 1
p
initial 0
goal -1
actions 1
action bogus
pre 0
eff 7
endaction
`
	_, err := Parse(bad)
	require.Error(t, err)
}

func TestParseRejectsOutOfRangePrecondition(t *testing.T) {
	bad := `
facts 1
p
initial 0
goal -1
actions 1
action bogus
pre 1 5
eff 0
endaction
`
	_, err := Parse(bad)
	require.Error(t, err)
}

func TestCheckIndexBounds(t *testing.T) {
	tk, err := Parse(sampleTask)
	require.NoError(t, err)
	require.NoError(t, tk.CheckFactIndex(0))
	require.Error(t, tk.CheckFactIndex(1))
	require.NoError(t, tk.CheckActionIndex(0))
	require.Error(t, tk.CheckActionIndex(1))
}
