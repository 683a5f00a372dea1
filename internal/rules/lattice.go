package rules

import "proofverify/internal/actionstore"

// Set-theoretic rules UR, UL, IR, IL, DI, SU, SI, ST, AT, AU, PT, PU (spec
// §4.5, §9): standard lattice identities over the set-expression store,
// decided purely structurally (same-index comparisons) plus, where named,
// a lookup of an already-proven Subset premise. No formalism engine is
// consulted. Full semantics are this package's own decision.

// ur: Subset(left, right) where right = Union(a, b), justified by a single
// premise Subset(left, a) or Subset(left, b) (union introduction on the
// right).
func (e *Engine) ur(left, right int, premises []int) (bool, error) {
	if len(premises) != 1 {
		return false, nil
	}
	a, b, ok := e.Sets.AsUnion(right)
	if !ok {
		return false, nil
	}
	pi, pj, ok := e.KB.AsSubset(premises[0])
	if !ok || pi != left {
		return false, nil
	}
	return pj == a || pj == b, nil
}

// ul: Subset(left, right) where left = Union(a, b), justified by two
// premises Subset(a, right) and Subset(b, right) (union elimination).
func (e *Engine) ul(left, right int, premises []int) (bool, error) {
	if len(premises) != 2 {
		return false, nil
	}
	a, b, ok := e.Sets.AsUnion(left)
	if !ok {
		return false, nil
	}
	i1, j1, ok1 := e.KB.AsSubset(premises[0])
	i2, j2, ok2 := e.KB.AsSubset(premises[1])
	if !ok1 || !ok2 || j1 != right || j2 != right {
		return false, nil
	}
	return (i1 == a && i2 == b) || (i1 == b && i2 == a), nil
}

// ir: Subset(left, right) where right = Intersection(a, b), justified by
// two premises Subset(left, a) and Subset(left, b) (intersection
// introduction).
func (e *Engine) ir(left, right int, premises []int) (bool, error) {
	if len(premises) != 2 {
		return false, nil
	}
	a, b, ok := e.Sets.AsIntersection(right)
	if !ok {
		return false, nil
	}
	i1, j1, ok1 := e.KB.AsSubset(premises[0])
	i2, j2, ok2 := e.KB.AsSubset(premises[1])
	if !ok1 || !ok2 || i1 != left || i2 != left {
		return false, nil
	}
	return (j1 == a && j2 == b) || (j1 == b && j2 == a), nil
}

// il: Subset(left, right) where left = Intersection(a, b), justified by a
// single premise Subset(a, right) or Subset(b, right) (intersection
// elimination).
func (e *Engine) il(left, right int, premises []int) (bool, error) {
	if len(premises) != 1 {
		return false, nil
	}
	a, b, ok := e.Sets.AsIntersection(left)
	if !ok {
		return false, nil
	}
	pi, pj, ok := e.KB.AsSubset(premises[0])
	if !ok || pj != right {
		return false, nil
	}
	return pi == a || pi == b, nil
}

// di: Subset(left, right) where left = Intersection(Union(a, b), c) and
// right = Union(Intersection(a, c), Intersection(b, c)) — the distributive
// lattice identity, true unconditionally (zero premises).
func (e *Engine) di(left, right int, premises []int) (bool, error) {
	if len(premises) != 0 {
		return false, nil
	}
	unionSide, c, ok := e.Sets.AsIntersection(left)
	if !ok {
		return false, nil
	}
	a, b, ok := e.Sets.AsUnion(unionSide)
	if !ok {
		return false, nil
	}
	ra, rb, ok := e.Sets.AsUnion(right)
	if !ok {
		return false, nil
	}
	matches := func(interIdx, wantOther int) bool {
		x, y, ok := e.Sets.AsIntersection(interIdx)
		if !ok {
			return false
		}
		return (x == wantOther && y == c) || (x == c && y == wantOther)
	}
	return (matches(ra, a) && matches(rb, b)) || (matches(ra, b) && matches(rb, a)), nil
}

// st: Subset(left, right), justified by two premises forming a transitive
// chain Subset(left, mid) and Subset(mid, right) for some shared mid.
func (e *Engine) st(left, right int, premises []int) (bool, error) {
	if len(premises) != 2 {
		return false, nil
	}
	i1, mid1, ok1 := e.KB.AsSubset(premises[0])
	mid2, j2, ok2 := e.KB.AsSubset(premises[1])
	if !ok1 || !ok2 {
		return false, nil
	}
	return i1 == left && j2 == right && mid1 == mid2, nil
}

// suPattern checks the shared shape of SU/SI: left = Compound(a, c), right
// = Compound(b, c) for the same c, justified by a premise Subset(a, b)
// (commuting the shared operand either side).
func suPattern(decompose func(int) (int, int, bool), left, right int, premises []int, kb func(int) (int, int, bool)) (bool, error) {
	if len(premises) != 1 {
		return false, nil
	}
	la, lc, ok := decompose(left)
	if !ok {
		return false, nil
	}
	ra, rc, ok := decompose(right)
	if !ok {
		return false, nil
	}
	i, j, ok := kb(premises[0])
	if !ok {
		return false, nil
	}
	if lc == rc && i == la && j == ra {
		return true, nil
	}
	if la == ra && i == lc && j == rc {
		return true, nil
	}
	return false, nil
}

// su: subset union-preservation: left = Union(a, c), right = Union(b, c),
// premise Subset(a, b).
func (e *Engine) su(left, right int, premises []int) (bool, error) {
	return suPattern(e.Sets.AsUnion, left, right, premises, e.KB.AsSubset)
}

// si: subset intersection-preservation: left = Intersection(a, c), right =
// Intersection(b, c), premise Subset(a, b).
func (e *Engine) si(left, right int, premises []int) (bool, error) {
	return suPattern(e.Sets.AsIntersection, left, right, premises, e.KB.AsSubset)
}

// transitionOperands reports a Progression/Regression expression's (sub,
// actionSet) pair, accepting whichever of the two shapes is present, and
// reports which one it was.
func (e *Engine) transitionOperands(index int) (sub, actionSet int, regression, ok bool) {
	if sub, actionSet, ok = e.Sets.AsProgression(index); ok {
		return sub, actionSet, false, true
	}
	if sub, actionSet, ok = e.Sets.AsRegression(index); ok {
		return sub, actionSet, true, true
	}
	return 0, 0, false, false
}

// at: action-set transitivity lifted through a transition with a fixed
// source: left = T(s, A1), right = T(s, A2) (T is Progression or
// Regression, the same on both sides), justified directly by the
// action-set store's own subset test on A1, A2 rather than by a kb premise
// (zero premises).
func (e *Engine) at(left, right int, premises []int) (bool, error) {
	if len(premises) != 0 {
		return false, nil
	}
	ls, la, lRegr, ok := e.transitionOperands(left)
	if !ok {
		return false, nil
	}
	rs, ra, rRegr, ok := e.transitionOperands(right)
	if !ok || ls != rs || lRegr != rRegr {
		return false, nil
	}
	return e.Actions.IsSubset(la, ra)
}

// au: a transition distributes over an action-set union with a fixed
// source: left = T(s, Union(A1, A2)), right = Union(T(s, A1), T(s, A2)),
// where the action-set union is itself checked structurally against the
// action-set store.
func (e *Engine) au(left, right int, premises []int) (bool, error) {
	if len(premises) != 0 {
		return false, nil
	}
	ls, lActionSet, lRegr, ok := e.transitionOperands(left)
	if !ok {
		return false, nil
	}
	ua, ub, ok := e.Sets.AsUnion(right)
	if !ok {
		return false, nil
	}
	uas, uaAction, uaRegr, ok := e.transitionOperands(ua)
	if !ok {
		return false, nil
	}
	ubs, ubAction, ubRegr, ok := e.transitionOperands(ub)
	if !ok {
		return false, nil
	}
	if uas != ls || ubs != ls || uaRegr != lRegr || ubRegr != lRegr {
		return false, nil
	}
	actionSet, err := e.Actions.Get(lActionSet)
	if err != nil || actionSet.Kind != actionstore.Union {
		return false, nil
	}
	return (actionSet.Left == uaAction && actionSet.Right == ubAction) ||
		(actionSet.Left == ubAction && actionSet.Right == uaAction), nil
}

// pt: a transition is monotone in its source set: left = T(s1, A), right =
// T(s2, A) (same A, same kind), justified by premise Subset(s1, s2).
func (e *Engine) pt(left, right int, premises []int) (bool, error) {
	if len(premises) != 1 {
		return false, nil
	}
	s1, la, lRegr, ok := e.transitionOperands(left)
	if !ok {
		return false, nil
	}
	s2, ra, rRegr, ok := e.transitionOperands(right)
	if !ok || la != ra || lRegr != rRegr {
		return false, nil
	}
	i, j, ok := e.KB.AsSubset(premises[0])
	return ok && i == s1 && j == s2, nil
}

// pu: a transition distributes over a source-set union with a fixed
// action set: left = T(Union(s1, s2), A), right = Union(T(s1, A), T(s2,
// A)) — true unconditionally (zero premises).
func (e *Engine) pu(left, right int, premises []int) (bool, error) {
	if len(premises) != 0 {
		return false, nil
	}
	unionSource, lAction, lRegr, ok := e.transitionOperands(left)
	if !ok {
		return false, nil
	}
	s1, s2, ok := e.Sets.AsUnion(unionSource)
	if !ok {
		return false, nil
	}
	ua, ub, ok := e.Sets.AsUnion(right)
	if !ok {
		return false, nil
	}
	uas, uaAction, uaRegr, ok := e.transitionOperands(ua)
	if !ok {
		return false, nil
	}
	ubs, ubAction, ubRegr, ok := e.transitionOperands(ub)
	if !ok {
		return false, nil
	}
	if uaAction != lAction || ubAction != lAction || uaRegr != lRegr || ubRegr != lRegr {
		return false, nil
	}
	return (uas == s1 && ubs == s2) || (uas == s2 && ubs == s1), nil
}
