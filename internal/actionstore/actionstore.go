// Package actionstore is the append-only indexed store of action-set
// expressions: explicit enumeration, union, and the distinguished "all
// actions" constant, each addressed by its dense slot index rather than a
// pointer.
package actionstore

import (
	"fmt"

	"proofverify/internal/task"
)

// Kind names an action-set expression's variant.
type Kind int

const (
	Basic Kind = iota
	Union
	All
)

// Set is one action-set expression. Basic carries an explicit id set; Union
// carries two strictly-earlier operand indices; All carries neither.
type Set struct {
	Kind  Kind
	IDs   map[int]bool
	Left  int
	Right int
}

// Store is the append-only action-set store for one task.
type Store struct {
	tsk  *task.Task
	sets []*Set
}

// New creates an empty store bound to tsk, used to bounds-check action ids
// named in Basic sets and to materialise the All constant.
func New(tsk *task.Task) *Store {
	return &Store{tsk: tsk}
}

func (s *Store) nextIndex() int { return len(s.sets) }

// AddBasic appends an explicit action-id set at index, which must be the
// next free slot.
func (s *Store) AddBasic(index int, ids []int) error {
	if index != s.nextIndex() {
		return fmt.Errorf("actionstore: index %d is not the next free slot (%d)", index, s.nextIndex())
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		if err := s.tsk.CheckActionIndex(id); err != nil {
			return err
		}
		set[id] = true
	}
	s.sets = append(s.sets, &Set{Kind: Basic, IDs: set})
	return nil
}

// AddUnion appends Union(left, right) at index; both operands must already
// exist (strictly lower indices, enforced by the next-free-slot discipline).
func (s *Store) AddUnion(index, left, right int) error {
	if index != s.nextIndex() {
		return fmt.Errorf("actionstore: index %d is not the next free slot (%d)", index, s.nextIndex())
	}
	if left >= index || right >= index {
		return fmt.Errorf("actionstore: union at %d references a non-earlier operand (%d, %d)", index, left, right)
	}
	if _, err := s.Get(left); err != nil {
		return err
	}
	if _, err := s.Get(right); err != nil {
		return err
	}
	s.sets = append(s.sets, &Set{Kind: Union, Left: left, Right: right})
	return nil
}

// AddAll appends the distinguished "all actions" constant at index.
func (s *Store) AddAll(index int) error {
	if index != s.nextIndex() {
		return fmt.Errorf("actionstore: index %d is not the next free slot (%d)", index, s.nextIndex())
	}
	s.sets = append(s.sets, &Set{Kind: All})
	return nil
}

// Get returns the action-set expression at index.
func (s *Store) Get(index int) (*Set, error) {
	if index < 0 || index >= len(s.sets) {
		return nil, fmt.Errorf("actionstore: index %d out of range [0,%d)", index, len(s.sets))
	}
	return s.sets[index], nil
}

// IsAllActions reports whether index is syntactically the All constant — a
// concrete enumeration that happens to cover every action does not qualify
//.
func (s *Store) IsAllActions(index int) (bool, error) {
	set, err := s.Get(index)
	if err != nil {
		return false, err
	}
	return set.Kind == All, nil
}

// Contains reports whether actionID belongs to the action set at index.
func (s *Store) Contains(index int, actionID int) (bool, error) {
	set, err := s.Get(index)
	if err != nil {
		return false, err
	}
	switch set.Kind {
	case All:
		return s.tsk.CheckActionIndex(actionID) == nil, nil
	case Basic:
		return set.IDs[actionID], nil
	case Union:
		inLeft, err := s.Contains(set.Left, actionID)
		if err != nil {
			return false, err
		}
		if inLeft {
			return true, nil
		}
		return s.Contains(set.Right, actionID)
	default:
		return false, fmt.Errorf("actionstore: unknown kind %v", set.Kind)
	}
}

// Materialize expands an action-set expression into its concrete id set.
func (s *Store) Materialize(index int) (map[int]bool, error) {
	set, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	switch set.Kind {
	case All:
		out := make(map[int]bool, s.tsk.NumActions())
		for i := 0; i < s.tsk.NumActions(); i++ {
			out[i] = true
		}
		return out, nil
	case Basic:
		out := make(map[int]bool, len(set.IDs))
		for id := range set.IDs {
			out[id] = true
		}
		return out, nil
	case Union:
		left, err := s.Materialize(set.Left)
		if err != nil {
			return nil, err
		}
		right, err := s.Materialize(set.Right)
		if err != nil {
			return nil, err
		}
		out := make(map[int]bool, len(left)+len(right))
		for id := range left {
			out[id] = true
		}
		for id := range right {
			out[id] = true
		}
		return out, nil
	default:
		return nil, fmt.Errorf("actionstore: unknown kind %v", set.Kind)
	}
}

// IsSubset decides whether action set a is a subset of action set b. It
// first tries the cheap structural shortcuts (b is the All constant; a and
// b are the same index) before falling back to full materialisation.
func (s *Store) IsSubset(a, b int) (bool, error) {
	if a == b {
		if _, err := s.Get(a); err != nil {
			return false, err
		}
		return true, nil
	}
	bAll, err := s.IsAllActions(b)
	if err != nil {
		return false, err
	}
	if bAll {
		if _, err := s.Get(a); err != nil {
			return false, err
		}
		return true, nil
	}
	left, err := s.Materialize(a)
	if err != nil {
		return false, err
	}
	right, err := s.Materialize(b)
	if err != nil {
		return false, err
	}
	for id := range left {
		if !right[id] {
			return false, nil
		}
	}
	return true, nil
}
