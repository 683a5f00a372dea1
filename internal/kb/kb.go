// Package kb is the append-only indexed knowledge base: each
// entry claims Subset(i, j), Dead(i), or Unsolvable (or is a Failed
// placeholder that claims nothing), and once appended its
// semantic content never changes — rules may only read earlier entries.
// A dense append-only vector rather than a name-keyed map, since knowledge
// items are referenced by position, not by name.
package kb

import "fmt"

// Kind names a knowledge item's variant.
type Kind int

const (
	Subset Kind = iota
	Dead
	Unsolvable
	Failed
)

// Item is one knowledge item. For Subset, I and J are the set-expression
// indices of the claimed subset/superset. For Dead, I is the dead set's
// expression index. Unsolvable carries neither.
type Item struct {
	Kind Kind
	I, J int
}

// KB is the append-only knowledge base for one certificate.
type KB struct {
	items      []*Item
	unsolvable bool
}

// New creates an empty knowledge base.
func New() *KB { return &KB{} }

func (k *KB) nextIndex() int { return len(k.items) }

// AddSubset appends Subset(i, j) at index.
func (k *KB) AddSubset(index, i, j int) error {
	if index != k.nextIndex() {
		return fmt.Errorf("kb: index %d is not the next free slot (%d)", index, k.nextIndex())
	}
	k.items = append(k.items, &Item{Kind: Subset, I: i, J: j})
	return nil
}

// AddDead appends Dead(i) at index.
func (k *KB) AddDead(index, i int) error {
	if index != k.nextIndex() {
		return fmt.Errorf("kb: index %d is not the next free slot (%d)", index, k.nextIndex())
	}
	k.items = append(k.items, &Item{Kind: Dead, I: i})
	return nil
}

// AddUnsolvable appends Unsolvable at index and marks the certificate as
// having proven unsolvability.
func (k *KB) AddUnsolvable(index int) error {
	if index != k.nextIndex() {
		return fmt.Errorf("kb: index %d is not the next free slot (%d)", index, k.nextIndex())
	}
	k.items = append(k.items, &Item{Kind: Unsolvable})
	k.unsolvable = true
	return nil
}

// AddFailed appends a placeholder at index for a knowledge item whose rule
// premises did not hold.
// Reserving the slot keeps later items' indices aligned with the
// certificate's own dense numbering; the placeholder satisfies neither
// AsSubset nor AsDead, so anything downstream that cites it fails the same
// non-fatal way.
func (k *KB) AddFailed(index int) error {
	if index != k.nextIndex() {
		return fmt.Errorf("kb: index %d is not the next free slot (%d)", index, k.nextIndex())
	}
	k.items = append(k.items, &Item{Kind: Failed})
	return nil
}

// Get returns the knowledge item at index.
func (k *KB) Get(index int) (*Item, error) {
	if index < 0 || index >= len(k.items) {
		return nil, fmt.Errorf("kb: index %d out of range [0,%d)", index, len(k.items))
	}
	return k.items[index], nil
}

// AsSubset reports the operands of a Subset item, if index has that shape.
func (k *KB) AsSubset(index int) (i, j int, ok bool) {
	item, err := k.Get(index)
	if err != nil || item.Kind != Subset {
		return 0, 0, false
	}
	return item.I, item.J, true
}

// AsDead reports the operand of a Dead item, if index has that shape.
func (k *KB) AsDead(index int) (i int, ok bool) {
	item, err := k.Get(index)
	if err != nil || item.Kind != Dead {
		return 0, false
	}
	return item.I, true
}

// IsUnsolvable reports whether index is the Unsolvable item.
func (k *KB) IsUnsolvable(index int) bool {
	item, err := k.Get(index)
	return err == nil && item.Kind == Unsolvable
}

// Proven reports whether any Unsolvable item has been appended so far
//.
func (k *KB) Proven() bool { return k.unsolvable }

// Len returns the number of knowledge items appended so far.
func (k *KB) Len() int { return len(k.items) }
