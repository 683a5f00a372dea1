package rules

import (
	"proofverify/internal/formalism"
	"proofverify/internal/setstore"
)

// rawLeaf is an unresolved literal reference gathered while walking a
// conjunction/disjunction tree: the set-expression index plus whether the
// walk passed through exactly one Negation on the way to it.
type rawLeaf struct {
	Index   int
	Negated bool
}

// transitionLeaf records the single Progression/Regression operand a B2/B3
// conjunction is allowed to contain alongside its basic literals.
type transitionLeaf struct {
	Sub        int
	ActionSet  int
	Regression bool
}

func leafIsCompound(kind setstore.Kind) bool {
	switch kind {
	case setstore.Negation, setstore.Intersection, setstore.Union, setstore.Progression, setstore.Regression:
		return true
	default:
		return false
	}
}

// gatherConjuncts flattens an Intersection tree into its basic-literal
// leaves, tolerating at most one Progression/Regression leaf (the B2/B3
// transition operand). A false `ok` means index does not have a shape a
// conjunction-side operand may have. A non-nil err means the index
// itself does not resolve at all, which is an internal invariant failure
// the driver should never let happen and is always fatal.
func gatherConjuncts(store *setstore.Store, index int) (leaves []rawLeaf, trans *transitionLeaf, ok bool, err error) {
	e, err := store.Get(index)
	if err != nil {
		return nil, nil, false, err
	}
	switch e.Kind {
	case setstore.Intersection:
		left, right, _ := store.AsIntersection(index)
		leftLeaves, leftTrans, leftOK, err := gatherConjuncts(store, left)
		if err != nil {
			return nil, nil, false, err
		}
		if !leftOK {
			return nil, nil, false, nil
		}
		rightLeaves, rightTrans, rightOK, err := gatherConjuncts(store, right)
		if err != nil {
			return nil, nil, false, err
		}
		if !rightOK {
			return nil, nil, false, nil
		}
		if leftTrans != nil && rightTrans != nil {
			return nil, nil, false, nil
		}
		trans := leftTrans
		if trans == nil {
			trans = rightTrans
		}
		return append(leftLeaves, rightLeaves...), trans, true, nil
	case setstore.Negation:
		sub, _ := store.AsNegation(index)
		se, err := store.Get(sub)
		if err != nil {
			return nil, nil, false, err
		}
		if leafIsCompound(se.Kind) {
			return nil, nil, false, nil
		}
		return []rawLeaf{{Index: sub, Negated: true}}, nil, true, nil
	case setstore.Progression:
		sub, actionSet, _ := store.AsProgression(index)
		return nil, &transitionLeaf{Sub: sub, ActionSet: actionSet, Regression: false}, true, nil
	case setstore.Regression:
		sub, actionSet, _ := store.AsRegression(index)
		return nil, &transitionLeaf{Sub: sub, ActionSet: actionSet, Regression: true}, true, nil
	case setstore.Union:
		return nil, nil, false, nil
	default: // Basic or a constant
		return []rawLeaf{{Index: index, Negated: false}}, nil, true, nil
	}
}

// gatherDisjuncts flattens a Union tree into its basic-literal leaves, with
// the same fatal/non-fatal split as gatherConjuncts.
func gatherDisjuncts(store *setstore.Store, index int) (leaves []rawLeaf, ok bool, err error) {
	e, err := store.Get(index)
	if err != nil {
		return nil, false, err
	}
	switch e.Kind {
	case setstore.Union:
		left, right, _ := store.AsUnion(index)
		leftLeaves, leftOK, err := gatherDisjuncts(store, left)
		if err != nil {
			return nil, false, err
		}
		if !leftOK {
			return nil, false, nil
		}
		rightLeaves, rightOK, err := gatherDisjuncts(store, right)
		if err != nil {
			return nil, false, err
		}
		if !rightOK {
			return nil, false, nil
		}
		return append(leftLeaves, rightLeaves...), true, nil
	case setstore.Negation:
		sub, _ := store.AsNegation(index)
		se, err := store.Get(sub)
		if err != nil {
			return nil, false, err
		}
		if leafIsCompound(se.Kind) {
			return nil, false, nil
		}
		return []rawLeaf{{Index: sub, Negated: true}}, true, nil
	case setstore.Intersection, setstore.Progression, setstore.Regression:
		return nil, false, nil
	default: // Basic or a constant
		return []rawLeaf{{Index: index, Negated: false}}, true, nil
	}
}

// pickKind scans leaves for the first concrete Basic expression and returns
// its formalism; an all-constant leaf set defaults to Explicit, which
// represents EMPTY/INIT/GOAL trivially and is always available.
func pickKind(store *setstore.Store, leaves []rawLeaf) formalism.Kind {
	for _, lf := range leaves {
		e, err := store.Get(lf.Index)
		if err == nil && e.Kind == setstore.Basic && e.BasicSet != nil {
			return e.BasicSet.Kind()
		}
	}
	return formalism.Explicit
}

func naturalKind(store *setstore.Store, index int) formalism.Kind {
	e, err := store.Get(index)
	if err == nil && e.Kind == setstore.Basic && e.BasicSet != nil {
		return e.BasicSet.Kind()
	}
	return formalism.Explicit
}

func resolveLiterals(store *setstore.Store, leaves []rawLeaf, kind formalism.Kind) ([]formalism.Literal, error) {
	out := make([]formalism.Literal, 0, len(leaves))
	for _, lf := range leaves {
		lit, err := store.Literal(lf.Index, lf.Negated, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, lit)
	}
	return out, nil
}

func sortedActionIDs(ids map[int]bool) []int {
	out := make([]int, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
