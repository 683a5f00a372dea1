// Package formalism declares the shared vocabulary the four set-formula
// encodings (BDD, Horn, 2-CNF, Explicit) implement: a common Basic interface,
// a capability-flag struct so the B4 cross-formalism bridge can pick a
// feasible direction, and the Literal type used throughout B1-B3.
package formalism

// Kind names which encoding a Basic set formula is stored in.
type Kind int

const (
	BDD Kind = iota
	Horn
	CNF2
	Explicit
)

func (k Kind) String() string {
	switch k {
	case BDD:
		return "bdd"
	case Horn:
		return "horn"
	case CNF2:
		return "2cnf"
	case Explicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Capabilities advertises which primitive operations a concrete formula
// supports, so the B4 rule can choose a feasible enumeration direction
// instead of guessing.
type Capabilities struct {
	ModelEnumeration  bool // can list all satisfying assignments
	ClausalEntailment bool // can decide entailment without enumeration
	ModelCount        bool // can report |models| without enumerating them
}

// Assignment is a (possibly partial, possibly over-complete) mapping from
// task fact index to truth value. Every Basic.Contains call only reads the
// entries for its own VarOrder(), which lets B1/B4 probe formulas declared
// over different fact subsets against one shared assignment without first
// materialising a full-task-length state vector.
type Assignment map[int]bool

// Basic is implemented by every concrete basic-set formula (one per
// formalism package). Contains is defined over the formula's own declared
// variable subset (task fact indices via VarOrder); assign must carry an
// entry for every fact VarOrder() names.
type Basic interface {
	Kind() Kind
	VarOrder() []int // ascending task fact indices this formula ranges over
	Contains(assign Assignment) bool
	Capabilities() Capabilities
}

// Enumerable is implemented by formulas whose Capabilities().ModelEnumeration
// is true; Models returns every satisfying assignment over VarOrder(), in
// local-variable order (bit i corresponds to VarOrder()[i]).
type Enumerable interface {
	Basic
	Models() [][]bool
}

// Literal is a reference to a basic set expression, optionally negated, as
// used by B1-B3.
type Literal struct {
	Set     Basic
	Negated bool
}

// Satisfies reports whether assign satisfies the literal: assign must model
// Set, or must not if Negated.
func (l Literal) Satisfies(assign Assignment) bool {
	in := l.Set.Contains(assign)
	if l.Negated {
		return !in
	}
	return in
}

// Vars returns the union (sorted, deduplicated) of every variable any
// literal in lits ranges over. Used to build the shared assignment that
// B1/B4 enumerate over when literals reference different variable subsets.
func Vars(lits []Literal) []int {
	seen := map[int]bool{}
	for _, l := range lits {
		for _, v := range l.Set.VarOrder() {
			seen[v] = true
		}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sortInts(out)
	return out
}

// BruteForceSubset decides whether the conjunction of left literals is a
// subset of the disjunction of right literals by enumerating every
// assignment over their combined variables. This is the model-enumeration
// oracle: the Explicit engine uses it directly, and the
// property-testing harness uses it to check the other
// engines' answers against ground truth on small instances.
func BruteForceSubset(left, right []Literal) bool {
	vars := Vars(append(append([]Literal{}, left...), right...))
	ok := true
	EnumerateAssignments(vars, func(assign Assignment) bool {
		if !allSatisfy(left, assign) {
			return true // assignment isn't in left, doesn't constrain the claim
		}
		if !anySatisfy(right, assign) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func allSatisfy(lits []Literal, assign Assignment) bool {
	for _, l := range lits {
		if !l.Satisfies(assign) {
			return false
		}
	}
	return true
}

func anySatisfy(lits []Literal, assign Assignment) bool {
	if len(lits) == 0 {
		return false
	}
	for _, l := range lits {
		if l.Satisfies(assign) {
			return true
		}
	}
	return false
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// EnumerateAssignments calls visit with every total assignment over vars, in
// binary-counter order, stopping early if visit returns false. Used to
// bridge literals declared over mismatched variable subsets by enumerating
// the missing positions lazily.
func EnumerateAssignments(vars []int, visit func(Assignment) bool) {
	n := len(vars)
	assign := make(Assignment, n)
	total := 1 << uint(n)
	for mask := 0; mask < total; mask++ {
		for i, v := range vars {
			assign[v] = mask&(1<<uint(i)) != 0
		}
		if !visit(assign) {
			return
		}
	}
}

// SameKind reports whether every literal in the slice shares one formalism,
// a precondition for the single-formalism B1-B3 checks.
func SameKind(lits []Literal) (Kind, bool) {
	if len(lits) == 0 {
		return 0, false
	}
	k := lits[0].Set.Kind()
	for _, l := range lits[1:] {
		if l.Set.Kind() != k {
			return 0, false
		}
	}
	return k, true
}
