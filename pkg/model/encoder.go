package model

import (
	"github.com/limaJavier/dnaword/pkg/sat"
)

// Encode builds the CNF instance whose models are the word sets satisfying the problem.
// Constraints are generated sequentially since auxiliary variables are allocated in a fixed order
func Encode(problem Problem) (sat.SAT, error) {
	if err := problem.validate(); err != nil {
		return sat.SAT{}, err
	}

	words := uint64(problem.Size)
	state := constraintState{indexer: newIndexer(words)}
	clauses := make([][]int64, 0, ExpectedClauses(problem))

	//** Nucleotide composition
	for word := range words {
		clauses = append(clauses, gcContentConstraints(state, word)...)
	}

	//** Pairwise distances, a word is compared against its own reverse-complement but never against itself
	for word1 := range words {
		for word2 := word1; word2 < words; word2++ {
			if word1 != word2 {
				clauses = append(clauses, distanceConstraints(state, word1, word2, false)...)
			}
			clauses = append(clauses, distanceConstraints(state, word1, word2, true)...)
		}
	}

	//** Symmetry breaking
	if problem.EnforceOrder {
		for word := uint64(0); word+1 < words; word++ {
			clauses = append(clauses, orderConstraints(state, word, word+1)...)
		}
	}

	return sat.SAT{
		Variables: state.indexer.Variables(),
		Clauses:   clauses,
	}, nil
}

// ExpectedVariables returns the number of variables Encode allocates for a valid problem
func ExpectedVariables(problem Problem) uint64 {
	size := uint64(problem.Size)
	variables := size*BitsPerWord + distanceComparisons(size)*WordLength
	if problem.EnforceOrder {
		variables += (size - 1) * BitsPerWord
	}
	return variables
}

// ExpectedClauses returns the number of clauses Encode generates for a valid problem
func ExpectedClauses(problem Problem) uint64 {
	size := uint64(problem.Size)
	k := WordLength - GCContent

	gcContent := uint64(binomial(WordLength, WordLength-k+1) + binomial(WordLength, k+1))
	distance := uint64(WordLength*4 + binomial(WordLength, MaxMatches+1))
	// Six clauses per bit but the first one lacks the chaining clause, the final unit clause makes up for it
	order := uint64(6 * BitsPerWord)

	clauses := size*gcContent + distanceComparisons(size)*distance
	if problem.EnforceOrder {
		clauses += (size - 1) * order
	}
	return clauses
}

// distanceComparisons counts the reverse-complement comparisons of every unordered pair (self-pairs included) plus the direct comparisons of distinct pairs
func distanceComparisons(size uint64) uint64 {
	return size*(size+1)/2 + size*(size-1)/2
}
