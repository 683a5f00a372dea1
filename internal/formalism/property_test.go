package formalism_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"proofverify/internal/formalism"
	"proofverify/internal/formalism/bdd"
	"proofverify/internal/formalism/cnf2"
	"proofverify/internal/formalism/horn"
)

// Soundness property: for every formalism, if the engine reports
// Subset(left, right)==true then the set-theoretic inclusion holds on the
// model level. These tests generate small random formula pairs (≤4
// variables, so brute-force enumeration is cheap) with a fixed seed for
// reproducibility, and check each engine's Subset answer against
// formalism.BruteForceSubset, the model-enumeration oracle.
const propertyVars = 4
const propertyTrials = 200

func randHornClause(r *rand.Rand, n int) horn.Clause {
	var neg []int
	for v := 0; v < n; v++ {
		if r.Intn(3) == 0 {
			neg = append(neg, v)
		}
	}
	pos := horn.NoPositive
	if r.Intn(2) == 0 {
		pos = r.Intn(n)
	}
	return horn.Clause{Neg: neg, Pos: pos}
}

func randHornFormula(r *rand.Rand, n int) *horn.Formula {
	clauses := make([]horn.Clause, 1+r.Intn(3))
	for i := range clauses {
		clauses[i] = randHornClause(r, n)
	}
	return horn.New(n, clauses)
}

func TestHornSubsetMatchesBruteForceOracle(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < propertyTrials; i++ {
		left := []formalism.Literal{{Set: randHornFormula(r, propertyVars), Negated: r.Intn(2) == 0}}
		right := []formalism.Literal{{Set: randHornFormula(r, propertyVars), Negated: r.Intn(2) == 0}}

		got, err := horn.Subset(left, right)
		require.NoError(t, err)
		want := formalism.BruteForceSubset(left, right)
		require.Equalf(t, want, got, "trial %d: horn.Subset disagreed with brute-force oracle", i)
	}
}

func randLiteral2(r *rand.Rand, n int) cnf2.Literal2 {
	return cnf2.Literal2{Var: r.Intn(n), Neg: r.Intn(2) == 0}
}

func randCNF2Formula(r *rand.Rand, n int) *cnf2.Formula {
	clauses := make([]cnf2.Clause2, 1+r.Intn(3))
	for i := range clauses {
		clauses[i] = cnf2.Clause2{A: randLiteral2(r, n), B: randLiteral2(r, n)}
	}
	return cnf2.New(n, clauses)
}

func TestCNF2SubsetMatchesBruteForceOracle(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < propertyTrials; i++ {
		left := []formalism.Literal{{Set: randCNF2Formula(r, propertyVars), Negated: r.Intn(2) == 0}}
		right := []formalism.Literal{{Set: randCNF2Formula(r, propertyVars), Negated: r.Intn(2) == 0}}

		got, err := cnf2.Subset(left, right)
		require.NoError(t, err)
		want := formalism.BruteForceSubset(left, right)
		require.Equalf(t, want, got, "trial %d: cnf2.Subset disagreed with brute-force oracle", i)
	}
}

// randBDDFormula builds a BDD over n variables as the disjunction of a
// random number of random cubes, exercising Manager.Cube/Or/And/Not/Var
// the same way internal/formalism/bdd/file.go's loader does.
func randBDDFormula(r *rand.Rand, mgr *bdd.Manager, n int) *bdd.Formula {
	node := bdd.False
	cubes := 1 + r.Intn(3)
	for c := 0; c < cubes; c++ {
		assign := make(map[int]bool, n)
		for v := 0; v < n; v++ {
			if r.Intn(2) == 0 {
				assign[bdd.UnprimedVar(v)] = r.Intn(2) == 0
			}
		}
		node = mgr.Or(node, mgr.Cube(assign))
	}
	return bdd.New(mgr, node, n)
}

func TestBDDSubsetMatchesBruteForceOracle(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	mgr := bdd.NewManager()
	for i := 0; i < propertyTrials; i++ {
		left := []formalism.Literal{{Set: randBDDFormula(r, mgr, propertyVars), Negated: r.Intn(2) == 0}}
		right := []formalism.Literal{{Set: randBDDFormula(r, mgr, propertyVars), Negated: r.Intn(2) == 0}}

		got, err := bdd.Subset(mgr, left, right)
		require.NoError(t, err)
		want := formalism.BruteForceSubset(left, right)
		require.Equalf(t, want, got, "trial %d: bdd.Subset disagreed with brute-force oracle", i)
	}
}
