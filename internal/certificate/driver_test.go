package certificate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"proofverify/internal/certificate/grammar"
	"proofverify/internal/task"
)

func oneFactTask(t *testing.T) *task.Task {
	t.Helper()
	tk, err := task.New([]string{"p"}, []bool{true}, []int{1}, nil)
	require.NoError(t, err)
	return tk
}

func mustParse(t *testing.T, lines []string) []*grammar.Line {
	t.Helper()
	parsed, err := ParseLines("t", lines)
	require.NoError(t, err)
	return parsed
}

func TestDriverRunsEDToDeadEmpty(t *testing.T) {
	d := NewDriver(oneFactTask(t), ".")
	lines := mustParse(t, []string{
		"e 0 c e",
		"k 0 d 0 ed",
	})
	res, err := d.Run(lines, false)
	require.NoError(t, err)
	require.False(t, res.Proven)
	require.Equal(t, 1, res.ItemsProcessed)
	require.Empty(t, res.Findings)
}

func TestDriverRecordsFindingButKeepsReadingAfterFailure(t *testing.T) {
	d := NewDriver(oneFactTask(t), ".")
	lines := mustParse(t, []string{
		"e 0 c i", // INIT, not EMPTY
		"k 0 d 0 ed",
		"e 1 c e", // EMPTY
		"k 1 d 1 ed",
	})
	res, err := d.Run(lines, false)
	require.NoError(t, err)
	require.Equal(t, 2, res.ItemsProcessed)
	require.Len(t, res.Findings, 1)
	require.Equal(t, 0, res.Findings[0].KnowledgeIndex)
	require.Equal(t, "ed", res.Findings[0].Tag)

	_, ok := d.KB.AsDead(0)
	require.False(t, ok)
	idx, ok := d.KB.AsDead(1)
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestDriverB1ReflexiveOverHornAndDiscard(t *testing.T) {
	d := NewDriver(oneFactTask(t), ".")
	lines := mustParse(t, []string{
		"e 0 h 1 1 0", // Horn clause: {1} -> true, single forced-true unit
		"k 0 s 0 0 b1",
	})
	res, err := d.Run(lines, true)
	require.NoError(t, err)
	require.Equal(t, 1, res.ItemsProcessed)
	require.Empty(t, res.Findings)
	i, j, ok := d.KB.AsSubset(0)
	require.True(t, ok)
	require.Equal(t, 0, i)
	require.Equal(t, 0, j)
	require.True(t, d.Sets.Discarded(0))
}

func TestDriverActionSetsAndB5(t *testing.T) {
	d := NewDriver(oneFactTask(t), ".")
	lines := mustParse(t, []string{
		"a 0 b",
		"a 1 all",
		"k 0 s 0 1 b5",
	})
	res, err := d.Run(lines, false)
	require.NoError(t, err)
	require.Equal(t, 1, res.ItemsProcessed)
	require.Empty(t, res.Findings)
}

func TestDriverApplyLineStepsOneDeclarationAtATime(t *testing.T) {
	d := NewDriver(oneFactTask(t), ".")
	lines := mustParse(t, []string{
		"e 0 c e",
		"k 0 d 0 ed",
	})
	finding, err := d.ApplyLine(lines[0])
	require.NoError(t, err)
	require.Nil(t, finding)
	require.Equal(t, 0, d.KB.Len())

	finding, err = d.ApplyLine(lines[1])
	require.NoError(t, err)
	require.Nil(t, finding)
	require.Equal(t, 1, d.KB.Len())
	require.True(t, d.KB.IsUnsolvable(0) == false)
}

func TestDriverRejectsOutOfOrderIndex(t *testing.T) {
	d := NewDriver(oneFactTask(t), ".")
	lines := mustParse(t, []string{
		"e 0 c e",
		"e 2 c e",
	})
	_, err := d.Run(lines, false)
	require.Error(t, err)
}
