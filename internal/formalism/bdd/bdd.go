package bdd

import (
	"fmt"

	"proofverify/internal/formalism"
	"proofverify/internal/task"
)

// Eval walks the BDD from id, following value(varIdx) at each level, until
// it reaches a terminal. Used by Formula.Contains.
func (m *Manager) Eval(id ID, value func(varIdx int) bool) bool {
	for id != True && id != False {
		nd := m.nodes[id]
		if value(nd.varIdx) {
			id = nd.high
		} else {
			id = nd.low
		}
	}
	return id == True
}

// Formula is a basic set expression in the BDD encoding: a node owned by a
// shared Manager plus the unprimed fact variables it ranges over. All basic
// BDD set expressions in one certificate that are meant to be combined must
// share one Manager; mixing managers is a variable-order mismatch and must
// surface as a rule-level failure.
type Formula struct {
	Mgr      *Manager
	Node     ID
	numFacts int
}

// New wraps a manager node as a basic BDD formula over the task's first
// numFacts unprimed variables.
func New(mgr *Manager, node ID, numFacts int) *Formula {
	return &Formula{Mgr: mgr, Node: node, numFacts: numFacts}
}

func (f *Formula) Kind() formalism.Kind { return formalism.BDD }

func (f *Formula) VarOrder() []int {
	out := make([]int, f.numFacts)
	for i := range out {
		out[i] = i
	}
	return out
}

func (f *Formula) Capabilities() formalism.Capabilities {
	return formalism.Capabilities{ModelEnumeration: true}
}

func (f *Formula) Contains(assign formalism.Assignment) bool {
	return f.Mgr.Eval(f.Node, func(varIdx int) bool {
		return assign[FactOf(varIdx)]
	})
}

// Models enumerates every minterm over this formula's unprimed variables.
func (f *Formula) Models() [][]bool {
	vars := make([]int, f.numFacts)
	for v := 0; v < f.numFacts; v++ {
		vars[v] = UnprimedVar(v)
	}
	return f.Mgr.Minterms(f.Node, vars)
}

func shiftToPrimed(mgr *Manager, f *Formula) ID {
	varMap := make(map[int]int, f.numFacts)
	for v := 0; v < f.numFacts; v++ {
		varMap[UnprimedVar(v)] = PrimedVar(v)
	}
	return mgr.Permute(f.Node, varMap)
}

func conjunction(mgr *Manager, lits []formalism.Literal, primed bool) (ID, error) {
	result := True
	any := false
	for _, l := range lits {
		bf, ok := l.Set.(*Formula)
		if !ok {
			return 0, fmt.Errorf("bdd: literal is not a BDD formula")
		}
		if bf.Mgr != mgr {
			return 0, fmt.Errorf("bdd: literals reference BDDs from incompatible variable orders")
		}
		node := bf.Node
		if primed {
			node = shiftToPrimed(mgr, bf)
		}
		if l.Negated {
			node = mgr.Not(node)
		}
		result = mgr.And(result, node)
		any = true
	}
	if !any {
		return True, nil
	}
	return result, nil
}

func disjunction(mgr *Manager, lits []formalism.Literal, primed bool) (ID, error) {
	result := False
	for _, l := range lits {
		bf, ok := l.Set.(*Formula)
		if !ok {
			return 0, fmt.Errorf("bdd: literal is not a BDD formula")
		}
		if bf.Mgr != mgr {
			return 0, fmt.Errorf("bdd: literals reference BDDs from incompatible variable orders")
		}
		node := bf.Node
		if primed {
			node = shiftToPrimed(mgr, bf)
		}
		if l.Negated {
			node = mgr.Not(node)
		}
		result = mgr.Or(result, node)
	}
	return result, nil
}

// Subset decides B1: conjunction(left) <= disjunction(right), via the
// manager's Leq primitive").
func Subset(mgr *Manager, left, right []formalism.Literal) (bool, error) {
	l, err := conjunction(mgr, left, false)
	if err != nil {
		return false, err
	}
	r, err := disjunction(mgr, right, false)
	if err != nil {
		return false, err
	}
	return mgr.Leq(l, r), nil
}

// actionRelation builds the transition-relation BDD for one action: for
// each fact, the unprimed precondition literal (if required), and either
// the primed add/delete assertion or the unprimed<->primed frame axiom
//.
func actionRelation(mgr *Manager, numFacts int, act *task.Action) ID {
	rel := True
	for _, p := range act.Pre {
		rel = mgr.And(rel, mgr.Var(UnprimedVar(p)))
	}
	for v, e := range act.Effects {
		switch e {
		case task.Add:
			rel = mgr.And(rel, mgr.Var(PrimedVar(v)))
		case task.Delete:
			rel = mgr.And(rel, mgr.Not(mgr.Var(PrimedVar(v))))
		default:
			u, p := mgr.Var(UnprimedVar(v)), mgr.Var(PrimedVar(v))
			frame := mgr.Or(mgr.And(u, p), mgr.And(mgr.Not(u), mgr.Not(p)))
			rel = mgr.And(rel, frame)
		}
	}
	return rel
}

// SubsetProgression decides B2 over BDDs: for every action in actionIDs,
// source AND relation_a must imply the primed copy of (left => right), i.e.
// source AND relation_a AND NOT(left => right)' is unsatisfiable.
func SubsetProgression(mgr *Manager, numFacts int, x []*Formula, left, right []formalism.Literal, tsk *task.Task, actionIDs []int) (bool, error) {
	return subsetTransition(mgr, numFacts, x, left, right, tsk, actionIDs, false)
}

// SubsetRegression decides B3, symmetric to SubsetProgression via the
// swapped (converse) transition relation.
func SubsetRegression(mgr *Manager, numFacts int, x []*Formula, left, right []formalism.Literal, tsk *task.Task, actionIDs []int) (bool, error) {
	return subsetTransition(mgr, numFacts, x, left, right, tsk, actionIDs, true)
}

func subsetTransition(mgr *Manager, numFacts int, x []*Formula, left, right []formalism.Literal, tsk *task.Task, actionIDs []int, regression bool) (bool, error) {
	source := True
	for _, f := range x {
		if f.Mgr != mgr {
			return false, fmt.Errorf("bdd: source set references a BDD from an incompatible variable order")
		}
		source = mgr.And(source, f.Node)
	}
	leftP, err := conjunction(mgr, left, true)
	if err != nil {
		return false, err
	}
	rightP, err := disjunction(mgr, right, true)
	if err != nil {
		return false, err
	}
	for _, a := range actionIDs {
		if err := tsk.CheckActionIndex(a); err != nil {
			return false, err
		}
		rel := actionRelation(mgr, numFacts, tsk.Action(a))
		if regression {
			rel = mgr.SwapPrimedUnprimed(rel, numFacts)
		}
		witness := mgr.And(mgr.And(source, rel), mgr.And(leftP, mgr.Not(rightP)))
		if witness != False {
			return false, nil
		}
	}
	return true, nil
}
