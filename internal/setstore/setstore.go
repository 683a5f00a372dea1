// Package setstore is the append-only indexed store of set expressions:
// basic expressions (owned by one formalism engine) or compound
// expressions referencing strictly earlier indices. Ownership is
// index-based rather than pointer-based, so no expression can ever
// dangle or form a cycle.
package setstore

import (
	"fmt"

	"proofverify/internal/formalism"
	"proofverify/internal/formalism/bdd"
	"proofverify/internal/formalism/cnf2"
	"proofverify/internal/formalism/explicit"
	"proofverify/internal/formalism/horn"
	"proofverify/internal/task"
)

// Kind names a set expression's variant.
type Kind int

const (
	ConstEmpty Kind = iota
	ConstInit
	ConstGoal
	Basic
	Negation
	Intersection
	Union
	Progression
	Regression
)

func (k Kind) isConstant() bool { return k == ConstEmpty || k == ConstInit || k == ConstGoal }

// Expr is one set expression. Which fields are meaningful depends on Kind:
//
//   - ConstEmpty/ConstInit/ConstGoal: none (materialised on demand per formalism).
//   - Basic: BasicSet holds the formula.
//   - Negation: Left is the complemented operand.
//   - Intersection/Union: Left, Right are the two operands.
//   - Progression/Regression: Left is the state operand, ActionSet the
//     action-set store index.
type Expr struct {
	Kind      Kind
	BasicSet  formalism.Basic
	Left      int
	Right     int
	ActionSet int

	lastUse    int
	discarded  bool
	constCache map[formalism.Kind]formalism.Basic
}

func newExpr(kind Kind) *Expr {
	return &Expr{Kind: kind, Left: -1, Right: -1, ActionSet: -1, lastUse: -1}
}

// operands returns the direct set-expression indices this expr references
// (never includes ActionSet, which indexes the action store instead).
func (e *Expr) operands() []int {
	switch e.Kind {
	case Negation, Progression, Regression:
		return []int{e.Left}
	case Intersection, Union:
		return []int{e.Left, e.Right}
	default:
		return nil
	}
}

// Store is the append-only set-expression store for one task.
type Store struct {
	tsk   *task.Task
	mgr   *bdd.Manager
	exprs []*Expr
}

// New creates an empty store bound to tsk, with its own shared BDD manager
//.
func New(tsk *task.Task) *Store {
	return &Store{tsk: tsk, mgr: bdd.NewManager()}
}

// Manager returns the store's shared BDD manager.
func (s *Store) Manager() *bdd.Manager { return s.mgr }

func (s *Store) nextIndex() int { return len(s.exprs) }

func (s *Store) checkOperand(index, self int) error {
	if index < 0 || index >= self {
		return fmt.Errorf("setstore: operand %d is not strictly earlier than %d", index, self)
	}
	if index >= len(s.exprs) {
		return fmt.Errorf("setstore: operand %d does not exist", index)
	}
	return nil
}

// AddConstant appends one of the EMPTY/INIT/GOAL constants at index.
func (s *Store) AddConstant(index int, which Kind) error {
	if !which.isConstant() {
		return fmt.Errorf("setstore: %v is not a constant kind", which)
	}
	if index != s.nextIndex() {
		return fmt.Errorf("setstore: index %d is not the next free slot (%d)", index, s.nextIndex())
	}
	s.exprs = append(s.exprs, newExpr(which))
	return nil
}

// AddBasic appends a basic formula (owned by one formalism engine) at index.
func (s *Store) AddBasic(index int, formula formalism.Basic) error {
	if index != s.nextIndex() {
		return fmt.Errorf("setstore: index %d is not the next free slot (%d)", index, s.nextIndex())
	}
	e := newExpr(Basic)
	e.BasicSet = formula
	s.exprs = append(s.exprs, e)
	return nil
}

// AddNegation appends Negation(sub) at index.
func (s *Store) AddNegation(index, sub int) error {
	if index != s.nextIndex() {
		return fmt.Errorf("setstore: index %d is not the next free slot (%d)", index, s.nextIndex())
	}
	if err := s.checkOperand(sub, index); err != nil {
		return err
	}
	e := newExpr(Negation)
	e.Left = sub
	s.exprs = append(s.exprs, e)
	return nil
}

func (s *Store) addBinary(index int, kind Kind, left, right int) error {
	if index != s.nextIndex() {
		return fmt.Errorf("setstore: index %d is not the next free slot (%d)", index, s.nextIndex())
	}
	if err := s.checkOperand(left, index); err != nil {
		return err
	}
	if err := s.checkOperand(right, index); err != nil {
		return err
	}
	e := newExpr(kind)
	e.Left, e.Right = left, right
	s.exprs = append(s.exprs, e)
	return nil
}

// AddIntersection appends Intersection(left, right) at index.
func (s *Store) AddIntersection(index, left, right int) error {
	return s.addBinary(index, Intersection, left, right)
}

// AddUnion appends Union(left, right) at index.
func (s *Store) AddUnion(index, left, right int) error {
	return s.addBinary(index, Union, left, right)
}

func (s *Store) addTransition(index int, kind Kind, sub, actionSet int) error {
	if index != s.nextIndex() {
		return fmt.Errorf("setstore: index %d is not the next free slot (%d)", index, s.nextIndex())
	}
	if err := s.checkOperand(sub, index); err != nil {
		return err
	}
	if actionSet < 0 {
		return fmt.Errorf("setstore: invalid action-set index %d", actionSet)
	}
	e := newExpr(kind)
	e.Left = sub
	e.ActionSet = actionSet
	s.exprs = append(s.exprs, e)
	return nil
}

// AddProgression appends Progression(sub, actionSet) at index.
func (s *Store) AddProgression(index, sub, actionSet int) error {
	return s.addTransition(index, Progression, sub, actionSet)
}

// AddRegression appends Regression(sub, actionSet) at index.
func (s *Store) AddRegression(index, sub, actionSet int) error {
	return s.addTransition(index, Regression, sub, actionSet)
}

// Get returns the expression at index.
func (s *Store) Get(index int) (*Expr, error) {
	if index < 0 || index >= len(s.exprs) {
		return nil, fmt.Errorf("setstore: index %d out of range [0,%d)", index, len(s.exprs))
	}
	return s.exprs[index], nil
}

// IsConstant reports whether index is syntactically the named constant.
func (s *Store) IsConstant(index int, which Kind) (bool, error) {
	e, err := s.Get(index)
	if err != nil {
		return false, err
	}
	return e.Kind == which, nil
}

// AsNegation reports Negation's operand, if index has that shape.
func (s *Store) AsNegation(index int) (sub int, ok bool) {
	e, err := s.Get(index)
	if err != nil || e.Kind != Negation {
		return 0, false
	}
	return e.Left, true
}

// AsIntersection reports Intersection's operands, if index has that shape.
func (s *Store) AsIntersection(index int) (left, right int, ok bool) {
	e, err := s.Get(index)
	if err != nil || e.Kind != Intersection {
		return 0, 0, false
	}
	return e.Left, e.Right, true
}

// AsUnion reports Union's operands, if index has that shape.
func (s *Store) AsUnion(index int) (left, right int, ok bool) {
	e, err := s.Get(index)
	if err != nil || e.Kind != Union {
		return 0, 0, false
	}
	return e.Left, e.Right, true
}

// AsProgression reports Progression's operands, if index has that shape.
func (s *Store) AsProgression(index int) (sub, actionSet int, ok bool) {
	e, err := s.Get(index)
	if err != nil || e.Kind != Progression {
		return 0, 0, false
	}
	return e.Left, e.ActionSet, true
}

// AsRegression reports Regression's operands, if index has that shape.
func (s *Store) AsRegression(index int) (sub, actionSet int, ok bool) {
	e, err := s.Get(index)
	if err != nil || e.Kind != Regression {
		return 0, 0, false
	}
	return e.Left, e.ActionSet, true
}

func (s *Store) materializeConstant(e *Expr, kind formalism.Kind) (formalism.Basic, error) {
	if e.constCache == nil {
		e.constCache = make(map[formalism.Kind]formalism.Basic)
	}
	if f, ok := e.constCache[kind]; ok {
		return f, nil
	}
	var f formalism.Basic
	n := s.tsk.NumFacts()
	switch kind {
	case formalism.Horn:
		switch e.Kind {
		case ConstEmpty:
			f = horn.Empty(n)
		case ConstInit:
			f = horn.InitFormula(s.tsk)
		case ConstGoal:
			f = horn.GoalFormula(s.tsk)
		}
	case formalism.CNF2:
		switch e.Kind {
		case ConstEmpty:
			f = cnf2.Empty(n)
		case ConstInit:
			f = cnf2.InitFormula(s.tsk)
		case ConstGoal:
			f = cnf2.GoalFormula(s.tsk)
		}
	case formalism.Explicit:
		switch e.Kind {
		case ConstEmpty:
			f = explicit.Empty(n)
		case ConstInit:
			f = explicit.InitFormula(s.tsk)
		case ConstGoal:
			f = explicit.GoalFormula(s.tsk)
		}
	case formalism.BDD:
		switch e.Kind {
		case ConstEmpty:
			f = bdd.Empty(s.mgr, n)
		case ConstInit:
			f = bdd.InitFormula(s.mgr, s.tsk)
		case ConstGoal:
			f = bdd.GoalFormula(s.mgr, s.tsk)
		}
	default:
		return nil, fmt.Errorf("setstore: unknown formalism kind %v", kind)
	}
	e.constCache[kind] = f
	return f, nil
}

// Literal resolves index as a B1-B4 literal operand in the requested
// formalism: a Basic expression must already be of that formalism (a
// mismatch is a format-mismatch rule-level failure); a constant is
// materialised into that formalism on first use and cached, so each
// constant is built at most once per task regardless of how many
// expressions reference it. Compound expressions are never valid literals.
func (s *Store) Literal(index int, negated bool, kind formalism.Kind) (formalism.Literal, error) {
	e, err := s.Get(index)
	if err != nil {
		return formalism.Literal{}, err
	}
	switch {
	case e.Kind == Basic:
		if e.BasicSet == nil {
			return formalism.Literal{}, fmt.Errorf("setstore: expression %d's concrete payload was discarded", index)
		}
		if e.BasicSet.Kind() != kind {
			return formalism.Literal{}, fmt.Errorf("setstore: expression %d is %v, expected %v (format mismatch)", index, e.BasicSet.Kind(), kind)
		}
		return formalism.Literal{Set: e.BasicSet, Negated: negated}, nil
	case e.Kind.isConstant():
		f, err := s.materializeConstant(e, kind)
		if err != nil {
			return formalism.Literal{}, err
		}
		return formalism.Literal{Set: f, Negated: negated}, nil
	default:
		return formalism.Literal{}, fmt.Errorf("setstore: expression %d (kind %v) is not a valid basic literal", index, e.Kind)
	}
}

// BasicSetAt resolves index as an unnegated "X" operand of a B2/B3
// progression/regression call: it must already be a concrete Basic
// expression in the requested formalism (constants are valid X operands
// too, materialised the same way literals are).
func (s *Store) BasicSetAt(index int, kind formalism.Kind) (formalism.Basic, error) {
	lit, err := s.Literal(index, false, kind)
	if err != nil {
		return nil, err
	}
	return lit.Set, nil
}

// RecordConsult marks every index in exprIndices as directly consulted
// (its concrete payload read) by the B1-B4 basic statement at
// knowledgeIndex — the only rule family that triggers discard eligibility.
func (s *Store) RecordConsult(knowledgeIndex int, exprIndices ...int) {
	for _, idx := range exprIndices {
		if idx < 0 || idx >= len(s.exprs) {
			continue
		}
		if knowledgeIndex > s.exprs[idx].lastUse {
			s.exprs[idx].lastUse = knowledgeIndex
		}
	}
}

// Finalize computes the recursive last_use closure: a compound expression's
// direct consultation (e.g. a Progression consulted by B2, which must reach
// into every basic set nested inside it) extends the requirement down to
// every subexpression it references, transitively. Processing indices from
// highest to lowest guarantees each expression's own last_use is final
// before it is pushed down to its operands, since only higher-indexed
// expressions can reference a given index.
func (s *Store) Finalize() {
	for i := len(s.exprs) - 1; i >= 0; i-- {
		e := s.exprs[i]
		for _, op := range e.operands() {
			if e.lastUse > s.exprs[op].lastUse {
				s.exprs[op].lastUse = e.lastUse
			}
		}
	}
}

// MaybeDiscard drops the concrete payload of each expression in indices
// whose last_use equals currentKnowledgeIndex, recursing into its direct
// operands. Idempotent: an already-discarded expression is
// simply skipped.
func (s *Store) MaybeDiscard(indices []int, currentKnowledgeIndex int) {
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.exprs) {
			continue
		}
		e := s.exprs[idx]
		if e.discarded || e.lastUse != currentKnowledgeIndex {
			continue
		}
		e.discarded = true
		e.BasicSet = nil
		e.constCache = nil
		s.MaybeDiscard(e.operands(), currentKnowledgeIndex)
	}
}

// Discarded reports whether index's concrete payload has been dropped.
func (s *Store) Discarded(index int) bool {
	if index < 0 || index >= len(s.exprs) {
		return false
	}
	return s.exprs[index].discarded
}

// LastUse reports the last knowledge index at which index's concrete
// representation was consulted by a basic statement, or -1 if never.
func (s *Store) LastUse(index int) int {
	if index < 0 || index >= len(s.exprs) {
		return -1
	}
	return s.exprs[index].lastUse
}
