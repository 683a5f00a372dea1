package certificate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLinesSkipsBlankAndComment(t *testing.T) {
	lines, err := ParseLines("t", []string{
		"",
		"# a comment",
		"e 0 c e",
		"   ",
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Expr)
	require.NotNil(t, lines[0].Expr.Const)
	require.Equal(t, 0, lines[0].Expr.Const.Index)
	require.Equal(t, "e", lines[0].Expr.Const.Which)
}

func TestParseLinesExprVariants(t *testing.T) {
	lines, err := ParseLines("t", []string{
		"e 0 c i",
		"e 1 n 0",
		"e 2 i 0 1",
		"e 3 u 0 1",
		"e 4 h 1 1 -2 0",
		"e 5 h2 1 1 -2 0",
		"e 6 x 2 0 1 : 0x1 0x2",
		"e 7 p 0 0",
		"e 8 r 0 0",
	})
	require.NoError(t, err)
	require.Len(t, lines, 9)

	require.Equal(t, "i", lines[0].Expr.Const.Which)
	require.Equal(t, 0, lines[1].Expr.Neg.Sub)
	require.Equal(t, []int{0, 1}, []int{lines[2].Expr.Inter.Left, lines[2].Expr.Inter.Right})
	require.Equal(t, []int{0, 1}, []int{lines[3].Expr.Un.Left, lines[3].Expr.Un.Right})
	require.Equal(t, 1, lines[4].Expr.Horn.NClauses)
	require.Equal(t, []int{1, -2, 0}, lines[4].Expr.Horn.Lits)
	require.Equal(t, []int{1, -2, 0}, lines[5].Expr.CNF2.Lits)
	require.Equal(t, []int{0, 1}, lines[6].Expr.Explicit.Vars)
	require.Equal(t, []string{"0x1", "0x2"}, lines[6].Expr.Explicit.Models)
	require.Equal(t, 0, lines[7].Expr.Prog.ActionSet)
	require.Equal(t, 0, lines[8].Expr.Regr.ActionSet)
}

func TestParseLinesActionAndKnowledgeVariants(t *testing.T) {
	lines, err := ParseLines("t", []string{
		"a 0 b 1 2 3",
		"a 1 u 0 0",
		"a 2 all",
		"k 0 s 0 0 b1",
		"k 1 d 0 ed",
		"k 2 u ci 1",
	})
	require.NoError(t, err)
	require.Len(t, lines, 6)

	require.Equal(t, []int{1, 2, 3}, lines[0].Action.Basic.IDs)
	require.NotNil(t, lines[1].Action.Union)
	require.NotNil(t, lines[2].Action.All)

	require.Equal(t, "b1", lines[3].Knowledge.Subset.Tag)
	require.Equal(t, "ed", lines[4].Knowledge.Dead.Tag)
	require.Equal(t, "ci", lines[5].Knowledge.Unsolv.Tag)
	require.Equal(t, 1, lines[5].Knowledge.Unsolv.Premise)
}

func TestParseLinesRejectsMalformedLine(t *testing.T) {
	_, err := ParseLines("t", []string{"e 0 zzz"})
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 1, pe.Line)
}
