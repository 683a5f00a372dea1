package bdd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDump(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.bdd")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileBuildsSingleVariableNode(t *testing.T) {
	// bdd "p" is the BDD for fact 0 being true.
	path := writeDump(t, `
order 0
bdd p
node 0 0 F T
root 0
end
`)
	mgr := NewManager()
	file, err := LoadFile(mgr, path)
	require.NoError(t, err)
	require.Equal(t, []int{0}, file.Order)

	f, err := file.Formula(mgr, "p", 1)
	require.NoError(t, err)
	require.True(t, f.Contains(map[int]bool{0: true}))
	require.False(t, f.Contains(map[int]bool{0: false}))
}

func TestLoadFileRejectsUnknownName(t *testing.T) {
	path := writeDump(t, "order 0\nbdd p\nnode 0 0 F T\nroot 0\nend\n")
	mgr := NewManager()
	file, err := LoadFile(mgr, path)
	require.NoError(t, err)

	_, err = file.Formula(mgr, "missing", 1)
	require.Error(t, err)
}

func TestLoadFileRejectsUnterminatedBlock(t *testing.T) {
	path := writeDump(t, "order 0\nbdd p\nnode 0 0 F T\n")
	mgr := NewManager()
	_, err := LoadFile(mgr, path)
	require.Error(t, err)
}

func TestLoadFileMultiNodeConjunction(t *testing.T) {
	// bdd "both" is fact0 AND fact1: node 0 on var 1 (T only when fact1
	// true), node 1 on var 0 gated through node 0.
	path := writeDump(t, `
order 0 1
bdd both
node 0 1 F T
node 1 0 F 0
root 1
end
`)
	mgr := NewManager()
	file, err := LoadFile(mgr, path)
	require.NoError(t, err)
	f, err := file.Formula(mgr, "both", 2)
	require.NoError(t, err)

	require.True(t, f.Contains(map[int]bool{0: true, 1: true}))
	require.False(t, f.Contains(map[int]bool{0: true, 1: false}))
	require.False(t, f.Contains(map[int]bool{0: false, 1: true}))
}
