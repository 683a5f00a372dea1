// Package bdd implements the reduced ordered binary decision diagram
// encoding, with interleaved unprimed/primed variable pairs (x0, x0', x1,
// x1', ...). Exposes the operation surface a set formalism needs —
// conjunction, disjunction, complement, cube construction, evaluation —
// with a Formula wrapping a manager-owned node.
package bdd

// ID identifies a node interned in a Manager. 0 and 1 are the constant
// terminals false/true.
type ID int32

const (
	False ID = 0
	True  ID = 1
)

type node struct {
	varIdx   int
	low, high ID
}

// Manager owns every live BDD node for one task; reference counting is
// replaced by simple interning (nodes are immutable and shared, never
// freed individually). The manager is the sole owner of BDD memory for
// a given certificate replay.
type Manager struct {
	nodes   []node
	index   map[node]ID
	andMemo map[[2]ID]ID
	orMemo  map[[2]ID]ID
	notMemo map[ID]ID
	varMemo map[int]ID
}

// NewManager creates an empty manager with only the two terminals interned.
func NewManager() *Manager {
	m := &Manager{
		index:   map[node]ID{},
		andMemo: map[[2]ID]ID{},
		orMemo:  map[[2]ID]ID{},
		notMemo: map[ID]ID{},
		varMemo: map[int]ID{},
	}
	m.nodes = append(m.nodes, node{varIdx: -1}) // False placeholder
	m.nodes = append(m.nodes, node{varIdx: -1}) // True placeholder
	return m
}

// UnprimedVar returns the manager's variable index for the unprimed copy of
// task fact v, consistent with the manager's interleaved variable order.
func UnprimedVar(v int) int { return 2 * v }

// PrimedVar returns the manager's variable index for the primed copy of
// task fact v.
func PrimedVar(v int) int { return 2*v + 1 }

// IsPrimed reports whether a manager variable index is a primed variable,
// and FactOf returns which task fact it copies.
func IsPrimed(varIdx int) bool { return varIdx%2 == 1 }
func FactOf(varIdx int) int    { return varIdx / 2 }

func (m *Manager) mk(varIdx int, low, high ID) ID {
	if low == high {
		return low
	}
	key := node{varIdx: varIdx, low: low, high: high}
	if id, ok := m.index[key]; ok {
		return id
	}
	id := ID(len(m.nodes))
	m.nodes = append(m.nodes, key)
	m.index[key] = id
	return id
}

// Var returns the node testing manager variable varIdx (true when set).
func (m *Manager) Var(varIdx int) ID {
	if id, ok := m.varMemo[varIdx]; ok {
		return id
	}
	id := m.mk(varIdx, False, True)
	m.varMemo[varIdx] = id
	return id
}

// Cube builds the conjunction of Var(v) (or Not(Var(v))) for every entry of
// assign, used to encode a total or partial assignment as a BDD.
func (m *Manager) Cube(assign map[int]bool) ID {
	result := True
	for v, val := range assign {
		lit := m.Var(v)
		if !val {
			lit = m.Not(lit)
		}
		result = m.And(result, lit)
	}
	return result
}

func (m *Manager) topVar(a, b ID) int {
	va, vb := m.nodes[a].varIdx, m.nodes[b].varIdx
	switch {
	case a <= True && b <= True:
		return -1
	case a <= True:
		return vb
	case b <= True:
		return va
	case va < vb:
		return va
	default:
		return vb
	}
}

func (m *Manager) child(a ID, v int, wantHigh bool) ID {
	if a <= True || m.nodes[a].varIdx != v {
		return a
	}
	if wantHigh {
		return m.nodes[a].high
	}
	return m.nodes[a].low
}

// And computes the conjunction of a and b via the standard recursive Apply
// algorithm, memoised per operand pair.
func (m *Manager) And(a, b ID) ID {
	if a == False || b == False {
		return False
	}
	if a == True {
		return b
	}
	if b == True || a == b {
		return a
	}
	key := [2]ID{a, b}
	if id, ok := m.andMemo[key]; ok {
		return id
	}
	v := m.topVar(a, b)
	lo := m.And(m.child(a, v, false), m.child(b, v, false))
	hi := m.And(m.child(a, v, true), m.child(b, v, true))
	id := m.mk(v, lo, hi)
	m.andMemo[key] = id
	return id
}

// Or computes the disjunction of a and b.
func (m *Manager) Or(a, b ID) ID {
	if a == True || b == True {
		return True
	}
	if a == False {
		return b
	}
	if b == False || a == b {
		return a
	}
	key := [2]ID{a, b}
	if id, ok := m.orMemo[key]; ok {
		return id
	}
	v := m.topVar(a, b)
	lo := m.Or(m.child(a, v, false), m.child(b, v, false))
	hi := m.Or(m.child(a, v, true), m.child(b, v, true))
	id := m.mk(v, lo, hi)
	m.orMemo[key] = id
	return id
}

// Not computes the complement of a.
func (m *Manager) Not(a ID) ID {
	if a == True {
		return False
	}
	if a == False {
		return True
	}
	if id, ok := m.notMemo[a]; ok {
		return id
	}
	nd := m.nodes[a]
	id := m.mk(nd.varIdx, m.Not(nd.low), m.Not(nd.high))
	m.notMemo[a] = id
	return id
}

// Leq decides whether a implies b, i.e. set(a) is a subset of set(b), via
// the standard BDD identity a <= b iff a AND (NOT b) == False.
func (m *Manager) Leq(a, b ID) bool {
	return m.And(a, m.Not(b)) == False
}

// Permute substitutes, for every node testing variable v with an entry in
// varMap, the variable varMap[v] in its place, via composition (not a
// structural swap) so it remains correct for any permutation regardless of
// whether it preserves the manager's variable order.
func (m *Manager) Permute(a ID, varMap map[int]int) ID {
	memo := map[ID]ID{}
	var rec func(ID) ID
	rec = func(id ID) ID {
		if id == False || id == True {
			return id
		}
		if v, ok := memo[id]; ok {
			return v
		}
		nd := m.nodes[id]
		lo := rec(nd.low)
		hi := rec(nd.high)
		newVar := nd.varIdx
		if nv, ok := varMap[nd.varIdx]; ok {
			newVar = nv
		}
		varNode := m.Var(newVar)
		result := m.Or(m.And(varNode, hi), m.And(m.Not(varNode), lo))
		memo[id] = result
		return result
	}
	return rec(a)
}

// SwapPrimedUnprimed permutes a onto the opposite priming for every
// variable: unprimed v <-> primed v. Used to turn a progression relation
// into a regression one and back.
func (m *Manager) SwapPrimedUnprimed(a ID, numFacts int) ID {
	varMap := make(map[int]int, 2*numFacts)
	for v := 0; v < numFacts; v++ {
		varMap[UnprimedVar(v)] = PrimedVar(v)
		varMap[PrimedVar(v)] = UnprimedVar(v)
	}
	return m.Permute(a, varMap)
}

// Minterms enumerates every satisfying total assignment over vars (given in
// manager-variable-index space), used for B4's model enumeration bridge and
// for small dumps/property tests. Exponential in len(vars); callers must
// only use it on small variable sets.
func (m *Manager) Minterms(a ID, vars []int) [][]bool {
	var out [][]bool
	assign := make([]bool, len(vars))
	var rec func(i int, node ID)
	rec = func(i int, node ID) {
		if node == False {
			return
		}
		if i == len(vars) {
			out = append(out, append([]bool(nil), assign...))
			return
		}
		v := vars[i]
		assign[i] = false
		rec(i+1, m.child(node, v, false))
		assign[i] = true
		rec(i+1, m.child(node, v, true))
	}
	rec(0, a)
	return out
}
