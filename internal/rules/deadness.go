package rules

import "proofverify/internal/setstore"

// ---- Deadness rules ----

func (e *Engine) ed(set int) (bool, error) {
	return e.Sets.IsConstant(set, setstore.ConstEmpty)
}

func (e *Engine) ud(set int, premises []int) (bool, error) {
	if len(premises) != 2 {
		return false, nil
	}
	left, right, ok := e.Sets.AsUnion(set)
	if !ok {
		return false, nil
	}
	l, ok1 := e.KB.AsDead(premises[0])
	r, ok2 := e.KB.AsDead(premises[1])
	if !ok1 || !ok2 {
		return false, nil
	}
	return (l == left && r == right) || (l == right && r == left), nil
}

func (e *Engine) sd(set int, premises []int) (bool, error) {
	if len(premises) != 2 {
		return false, nil
	}
	i, x, ok := e.KB.AsSubset(premises[0])
	if !ok || i != set {
		return false, nil
	}
	deadX, ok := e.KB.AsDead(premises[1])
	return ok && deadX == x, nil
}

// unionOtherSide reports the operand of Union(a,b) that is not `one`, and
// whether `one` actually appears among the union's operands.
func unionOtherSide(a, b, one int) (other int, ok bool) {
	switch one {
	case a:
		return b, true
	case b:
		return a, true
	default:
		return 0, false
	}
}

// intersectionNamesGoal reports whether Intersection(a,b) is exactly the
// intersection of `target` with the GOAL constant, in either operand order.
func (e *Engine) intersectionNamesGoal(a, b, target int) bool {
	if a == target {
		isGoal, err := e.Sets.IsConstant(b, setstore.ConstGoal)
		return err == nil && isGoal
	}
	if b == target {
		isGoal, err := e.Sets.IsConstant(a, setstore.ConstGoal)
		return err == nil && isGoal
	}
	return false
}

// pg validates PG(i, p1, p2, p3): p1 = Subset(Progression(i,
// A_all), Union(i, s')); p2 = Dead(s'); p3 = Dead(Intersection(i, GOAL));
// A_all must be the all-actions constant.
func (e *Engine) pg(set int, premises []int) (bool, error) {
	if len(premises) != 3 {
		return false, nil
	}
	transIdx, unionIdx, ok := e.KB.AsSubset(premises[0])
	if !ok {
		return false, nil
	}
	tSub, tActionSet, ok := e.Sets.AsProgression(transIdx)
	if !ok || tSub != set {
		return false, nil
	}
	allActions, err := e.Actions.IsAllActions(tActionSet)
	if err != nil || !allActions {
		return false, nil
	}
	ua, ub, ok := e.Sets.AsUnion(unionIdx)
	if !ok {
		return false, nil
	}
	sPrime, ok := unionOtherSide(ua, ub, set)
	if !ok {
		return false, nil
	}
	deadSPrime, ok := e.KB.AsDead(premises[1])
	if !ok || deadSPrime != sPrime {
		return false, nil
	}
	interIdx, ok := e.KB.AsDead(premises[2])
	if !ok {
		return false, nil
	}
	ia, ib, ok := e.Sets.AsIntersection(interIdx)
	if !ok {
		return false, nil
	}
	return e.intersectionNamesGoal(ia, ib, set), nil
}

// rg validates RG(i, p1, p2, p3): set[i] = Negation(s); p1 =
// Subset(Regression(s, A_all), Union(s, s')); p2 = Dead(s'); p3 =
// Dead(Intersection(i, GOAL)) — the GOAL test names i itself, not s.
func (e *Engine) rg(set int, premises []int) (bool, error) {
	if len(premises) != 3 {
		return false, nil
	}
	s, ok := e.Sets.AsNegation(set)
	if !ok {
		return false, nil
	}
	transIdx, unionIdx, ok := e.KB.AsSubset(premises[0])
	if !ok {
		return false, nil
	}
	tSub, tActionSet, ok := e.Sets.AsRegression(transIdx)
	if !ok || tSub != s {
		return false, nil
	}
	allActions, err := e.Actions.IsAllActions(tActionSet)
	if err != nil || !allActions {
		return false, nil
	}
	ua, ub, ok := e.Sets.AsUnion(unionIdx)
	if !ok {
		return false, nil
	}
	sPrime, ok := unionOtherSide(ua, ub, s)
	if !ok {
		return false, nil
	}
	deadSPrime, ok := e.KB.AsDead(premises[1])
	if !ok || deadSPrime != sPrime {
		return false, nil
	}
	interIdx, ok := e.KB.AsDead(premises[2])
	if !ok {
		return false, nil
	}
	ia, ib, ok := e.Sets.AsIntersection(interIdx)
	if !ok {
		return false, nil
	}
	return e.intersectionNamesGoal(ia, ib, set), nil
}

// pi validates PI(i, p1, p2, p3): set[i] = Negation(s); p1 =
// Subset(Progression(s, A_all), Union(s, s')); p2 = Dead(s'); p3 =
// Subset(INIT, s).
func (e *Engine) pi(set int, premises []int) (bool, error) {
	return e.negatedTransitionDeadness(set, premises, false)
}

// ri validates RI(i, p1, p2, p3): the dual of PI via Regression.
func (e *Engine) ri(set int, premises []int) (bool, error) {
	return e.negatedTransitionDeadness(set, premises, true)
}

func (e *Engine) negatedTransitionDeadness(set int, premises []int, regression bool) (bool, error) {
	if len(premises) != 3 {
		return false, nil
	}
	s, ok := e.Sets.AsNegation(set)
	if !ok {
		return false, nil
	}
	transIdx, unionIdx, ok := e.KB.AsSubset(premises[0])
	if !ok {
		return false, nil
	}
	var tSub, tActionSet int
	if regression {
		tSub, tActionSet, ok = e.Sets.AsRegression(transIdx)
	} else {
		tSub, tActionSet, ok = e.Sets.AsProgression(transIdx)
	}
	if !ok || tSub != s {
		return false, nil
	}
	allActions, err := e.Actions.IsAllActions(tActionSet)
	if err != nil || !allActions {
		return false, nil
	}
	ua, ub, ok := e.Sets.AsUnion(unionIdx)
	if !ok {
		return false, nil
	}
	sPrime, ok := unionOtherSide(ua, ub, s)
	if !ok {
		return false, nil
	}
	deadSPrime, ok := e.KB.AsDead(premises[1])
	if !ok || deadSPrime != sPrime {
		return false, nil
	}
	initIdx, sIdx, ok := e.KB.AsSubset(premises[2])
	if !ok || sIdx != s {
		return false, nil
	}
	isInit, err := e.Sets.IsConstant(initIdx, setstore.ConstInit)
	return err == nil && isInit, nil
}

// ---- Conclusion rules ----

func (e *Engine) ci(premise int) (bool, error) {
	idx, ok := e.KB.AsDead(premise)
	if !ok {
		return false, nil
	}
	isInit, err := e.Sets.IsConstant(idx, setstore.ConstInit)
	return err == nil && isInit, nil
}

func (e *Engine) cg(premise int) (bool, error) {
	idx, ok := e.KB.AsDead(premise)
	if !ok {
		return false, nil
	}
	isGoal, err := e.Sets.IsConstant(idx, setstore.ConstGoal)
	return err == nil && isGoal, nil
}

// ---- PR/RP: progression/regression duality ----

// pr validates PR(l, r, p): if p = Subset(Progression(s, A), s') then
// Subset(Regression(¬s', A), ¬s) holds.
func (e *Engine) pr(left, right int, premises []int) (bool, error) {
	return e.transitionDuality(left, right, premises, false)
}

// rp validates RP(l, r, p): symmetric, starting from a Regression premise.
func (e *Engine) rp(left, right int, premises []int) (bool, error) {
	return e.transitionDuality(left, right, premises, true)
}

func (e *Engine) transitionDuality(left, right int, premises []int, premiseIsRegression bool) (bool, error) {
	if len(premises) != 1 {
		return false, nil
	}
	transIdx, sPrime, ok := e.KB.AsSubset(premises[0])
	if !ok {
		return false, nil
	}
	var s, actionSet int
	if premiseIsRegression {
		s, actionSet, ok = e.Sets.AsRegression(transIdx)
	} else {
		s, actionSet, ok = e.Sets.AsProgression(transIdx)
	}
	if !ok {
		return false, nil
	}
	var negSPrime, leftActionSet int
	if premiseIsRegression {
		negSPrime, leftActionSet, ok = e.Sets.AsProgression(left)
	} else {
		negSPrime, leftActionSet, ok = e.Sets.AsRegression(left)
	}
	if !ok || leftActionSet != actionSet {
		return false, nil
	}
	sub, ok := e.Sets.AsNegation(negSPrime)
	if !ok || sub != sPrime {
		return false, nil
	}
	rightSub, ok := e.Sets.AsNegation(right)
	return ok && rightSub == s, nil
}
