// Package rules is the verifier's rule engine: it validates one
// knowledge item's premises against the set-expression store, the
// action-set store and the knowledge base already accumulated, and on
// success appends the new item. One function per declaration kind, each
// reading already-resolved operands and rejecting on the first unmet
// precondition.
package rules

import (
	"fmt"

	"proofverify/internal/actionstore"
	"proofverify/internal/formalism"
	"proofverify/internal/formalism/bdd"
	"proofverify/internal/formalism/cnf2"
	"proofverify/internal/formalism/explicit"
	"proofverify/internal/formalism/horn"
	"proofverify/internal/kb"
	"proofverify/internal/setstore"
	"proofverify/internal/task"
)

// Engine validates and applies rule invocations for one certificate run.
type Engine struct {
	Task    *task.Task
	Sets    *setstore.Store
	Actions *actionstore.Store
	KB      *kb.KB
}

// New creates a rule engine over the given stores.
func New(tsk *task.Task, sets *setstore.Store, actions *actionstore.Store, knowledge *kb.KB) *Engine {
	return &Engine{Task: tsk, Sets: sets, Actions: actions, KB: knowledge}
}

// VerifySubset validates a `k <i> s <left> <right> <tag> [premises…]` item.
// On success it appends Subset(left, right) at knowledgeIndex. A false
// result (nil error) means the rule's premises were not met — the
// certificate is invalid. A non-nil error means the invocation itself is
// malformed (unknown tag, out-of-range operand, cross-formalism format
// mismatch) and is always fatal.
func (e *Engine) VerifySubset(knowledgeIndex, left, right int, tag string, premises []int) (bool, error) {
	ok, err := e.verifySubsetShape(left, right, tag, premises)
	if err != nil || !ok {
		return ok, err
	}
	if err := e.KB.AddSubset(knowledgeIndex, left, right); err != nil {
		return false, err
	}
	return true, nil
}

// VerifyDead validates a `k <i> d <set> <tag> [premises…]` item.
func (e *Engine) VerifyDead(knowledgeIndex, set int, tag string, premises []int) (bool, error) {
	ok, err := e.verifyDeadShape(set, tag, premises)
	if err != nil || !ok {
		return ok, err
	}
	if err := e.KB.AddDead(knowledgeIndex, set); err != nil {
		return false, err
	}
	return true, nil
}

// VerifyUnsolvable validates a `k <i> u <tag> <premise>` item.
func (e *Engine) VerifyUnsolvable(knowledgeIndex int, tag string, premise int) (bool, error) {
	ok, err := e.verifyUnsolvableShape(tag, premise)
	if err != nil || !ok {
		return ok, err
	}
	if err := e.KB.AddUnsolvable(knowledgeIndex); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) verifySubsetShape(left, right int, tag string, premises []int) (bool, error) {
	switch tag {
	case "b1":
		return e.b1(left, right)
	case "b2":
		return e.b2(left, right)
	case "b3":
		return e.b3(left, right)
	case "b4":
		return e.b4(left, right)
	case "b5":
		return e.Actions.IsSubset(left, right)
	case "ur":
		return e.ur(left, right, premises)
	case "ul":
		return e.ul(left, right, premises)
	case "ir":
		return e.ir(left, right, premises)
	case "il":
		return e.il(left, right, premises)
	case "di":
		return e.di(left, right, premises)
	case "st":
		return e.st(left, right, premises)
	case "su":
		return e.su(left, right, premises)
	case "si":
		return e.si(left, right, premises)
	case "at":
		return e.at(left, right, premises)
	case "au":
		return e.au(left, right, premises)
	case "pt":
		return e.pt(left, right, premises)
	case "pu":
		return e.pu(left, right, premises)
	case "pr":
		return e.pr(left, right, premises)
	case "rp":
		return e.rp(left, right, premises)
	default:
		return false, fmt.Errorf("rules: %q is not a subset-concluding rule tag", tag)
	}
}

func (e *Engine) verifyDeadShape(set int, tag string, premises []int) (bool, error) {
	switch tag {
	case "ed":
		return e.ed(set)
	case "ud":
		return e.ud(set, premises)
	case "sd":
		return e.sd(set, premises)
	case "pg":
		return e.pg(set, premises)
	case "pi":
		return e.pi(set, premises)
	case "rg":
		return e.rg(set, premises)
	case "ri":
		return e.ri(set, premises)
	default:
		return false, fmt.Errorf("rules: %q is not a deadness-concluding rule tag", tag)
	}
}

func (e *Engine) verifyUnsolvableShape(tag string, premise int) (bool, error) {
	switch tag {
	case "ci":
		return e.ci(premise)
	case "cg":
		return e.cg(premise)
	default:
		return false, fmt.Errorf("rules: %q is not an unsolvability-concluding rule tag", tag)
	}
}

// ---- B1-B5: basic statements ----

func (e *Engine) b1(left, right int) (bool, error) {
	leftLeaves, trans, ok, err := gatherConjuncts(e.Sets, left)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if trans != nil {
		return false, nil // b1's left operand contains a progression/regression; that's b2/b3's shape
	}
	rightLeaves, ok, err := gatherDisjuncts(e.Sets, right)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	combined := append(append([]rawLeaf{}, leftLeaves...), rightLeaves...)
	kind := pickKind(e.Sets, combined)
	leftLits, err := resolveLiterals(e.Sets, leftLeaves, kind)
	if err != nil {
		return false, err
	}
	rightLits, err := resolveLiterals(e.Sets, rightLeaves, kind)
	if err != nil {
		return false, err
	}
	return e.dispatchSubset(kind, leftLits, rightLits)
}

func (e *Engine) dispatchSubset(kind formalism.Kind, left, right []formalism.Literal) (bool, error) {
	switch kind {
	case formalism.Horn:
		return horn.Subset(left, right)
	case formalism.CNF2:
		return cnf2.Subset(left, right)
	case formalism.Explicit:
		return explicit.Subset(left, right), nil
	case formalism.BDD:
		return bdd.Subset(e.Sets.Manager(), left, right)
	default:
		return false, fmt.Errorf("rules: unknown formalism kind %v", kind)
	}
}

func (e *Engine) progressionOrRegression(left, right int, wantRegression bool) (bool, error) {
	leftLeaves, trans, ok, err := gatherConjuncts(e.Sets, left)
	if err != nil {
		return false, err
	}
	if !ok || trans == nil || trans.Regression != wantRegression {
		return false, nil
	}
	rightLeaves, ok, err := gatherDisjuncts(e.Sets, right)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	xLeaves, xTrans, ok, err := gatherConjuncts(e.Sets, trans.Sub)
	if err != nil {
		return false, err
	}
	if !ok || xTrans != nil {
		return false, nil
	}
	for _, lf := range xLeaves {
		if lf.Negated {
			return false, nil
		}
	}
	combined := append(append(append([]rawLeaf{}, xLeaves...), leftLeaves...), rightLeaves...)
	formalismKind := pickKind(e.Sets, combined)

	xSets := make([]formalism.Basic, 0, len(xLeaves))
	for _, lf := range xLeaves {
		b, err := e.Sets.BasicSetAt(lf.Index, formalismKind)
		if err != nil {
			return false, err
		}
		xSets = append(xSets, b)
	}
	leftLits, err := resolveLiterals(e.Sets, leftLeaves, formalismKind)
	if err != nil {
		return false, err
	}
	rightLits, err := resolveLiterals(e.Sets, rightLeaves, formalismKind)
	if err != nil {
		return false, err
	}
	actionSet, err := e.Actions.Materialize(trans.ActionSet)
	if err != nil {
		return false, err
	}
	actionIDs := sortedActionIDs(actionSet)
	n := e.Task.NumFacts()

	switch formalismKind {
	case formalism.Horn:
		hx := make([]*horn.Formula, len(xSets))
		for i, b := range xSets {
			hf, ok := b.(*horn.Formula)
			if !ok {
				return false, fmt.Errorf("rules: internal: expected a horn formula")
			}
			hx[i] = hf
		}
		if wantRegression {
			return horn.SubsetRegression(n, hx, leftLits, rightLits, e.Task, actionIDs)
		}
		return horn.SubsetProgression(n, hx, leftLits, rightLits, e.Task, actionIDs)
	case formalism.CNF2:
		cx := make([]*cnf2.Formula, len(xSets))
		for i, b := range xSets {
			cf, ok := b.(*cnf2.Formula)
			if !ok {
				return false, fmt.Errorf("rules: internal: expected a 2-cnf formula")
			}
			cx[i] = cf
		}
		if wantRegression {
			return cnf2.SubsetRegression(n, cx, leftLits, rightLits, e.Task, actionIDs)
		}
		return cnf2.SubsetProgression(n, cx, leftLits, rightLits, e.Task, actionIDs)
	case formalism.Explicit:
		ex := make([]*explicit.Formula, len(xSets))
		for i, b := range xSets {
			ef, ok := b.(*explicit.Formula)
			if !ok {
				return false, fmt.Errorf("rules: internal: expected an explicit formula")
			}
			ex[i] = ef
		}
		if wantRegression {
			return explicit.SubsetRegression(ex, leftLits, rightLits, e.Task, actionIDs)
		}
		return explicit.SubsetProgression(ex, leftLits, rightLits, e.Task, actionIDs)
	case formalism.BDD:
		bx := make([]*bdd.Formula, len(xSets))
		for i, b := range xSets {
			bf, ok := b.(*bdd.Formula)
			if !ok {
				return false, fmt.Errorf("rules: internal: expected a bdd formula")
			}
			bx[i] = bf
		}
		if wantRegression {
			return bdd.SubsetRegression(e.Sets.Manager(), n, bx, leftLits, rightLits, e.Task, actionIDs)
		}
		return bdd.SubsetProgression(e.Sets.Manager(), n, bx, leftLits, rightLits, e.Task, actionIDs)
	default:
		return false, fmt.Errorf("rules: unknown formalism kind %v", formalismKind)
	}
}

func (e *Engine) b2(left, right int) (bool, error) { return e.progressionOrRegression(left, right, false) }
func (e *Engine) b3(left, right int) (bool, error) { return e.progressionOrRegression(left, right, true) }

func (e *Engine) b4(left, right int) (bool, error) {
	leftLeaves, trans, ok, err := gatherConjuncts(e.Sets, left)
	if err != nil {
		return false, err
	}
	if !ok || trans != nil || len(leftLeaves) != 1 {
		return false, nil
	}
	rightLeaves, ok, err := gatherDisjuncts(e.Sets, right)
	if err != nil {
		return false, err
	}
	if !ok || len(rightLeaves) != 1 {
		return false, nil
	}
	le, re := leftLeaves[0], rightLeaves[0]
	leftLit, err := e.Sets.Literal(le.Index, le.Negated, naturalKind(e.Sets, le.Index))
	if err != nil {
		return false, err
	}
	rightLit, err := e.Sets.Literal(re.Index, re.Negated, naturalKind(e.Sets, re.Index))
	if err != nil {
		return false, err
	}
	if leftLit.Set.Kind() == rightLit.Set.Kind() {
		return false, fmt.Errorf("rules: b4 requires literals of two different formalisms (use b1)")
	}
	if !leftLit.Set.Capabilities().ModelEnumeration && !rightLit.Set.Capabilities().ModelEnumeration {
		return false, fmt.Errorf("rules: b4 found no supported enumeration bridge between %v and %v", leftLit.Set.Kind(), rightLit.Set.Kind())
	}
	return formalism.BruteForceSubset([]formalism.Literal{leftLit}, []formalism.Literal{rightLit}), nil
}

func allIndices(groups ...[]rawLeaf) []int {
	var out []int
	for _, g := range groups {
		for _, lf := range g {
			out = append(out, lf.Index)
		}
	}
	return out
}

// ConsultedOperands reports the set-expression indices a b1-b4 invocation
// with the given operands would directly read, so the certificate driver's
// discard pre-scan can call Store.RecordConsult before
// replaying the certificate for real.
func (e *Engine) ConsultedOperands(tag string, left, right int) []int {
	switch tag {
	case "b1", "b4":
		leftLeaves, _, ok, err := gatherConjuncts(e.Sets, left)
		if err != nil || !ok {
			return nil
		}
		rightLeaves, ok, err := gatherDisjuncts(e.Sets, right)
		if err != nil || !ok {
			return nil
		}
		return allIndices(leftLeaves, rightLeaves)
	case "b2", "b3":
		leftLeaves, trans, ok, err := gatherConjuncts(e.Sets, left)
		if err != nil || !ok {
			return nil
		}
		rightLeaves, ok, err := gatherDisjuncts(e.Sets, right)
		if err != nil || !ok {
			return nil
		}
		out := allIndices(leftLeaves, rightLeaves)
		if trans != nil {
			xLeaves, _, ok, err := gatherConjuncts(e.Sets, trans.Sub)
			if err == nil && ok {
				out = append(out, allIndices(xLeaves)...)
			}
		}
		return out
	default:
		return nil
	}
}

