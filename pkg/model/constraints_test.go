package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCContentConstraints(t *testing.T) {
	state := constraintState{indexer: newIndexer(1)}
	clauses := gcContentConstraints(state, 0)

	assert.Len(t, clauses, 112)
	for _, word := range []string{"AAAACCCC", "ACGTACGT", "AAAAAAAA", "CCCCCCCA", "GGGGGGGG", "ATATGCGC", "ATATATGC"} {
		fixed := append(fixWords(t, state, word), clauses...)
		assert.Equal(t, gcCount(word) == GCContent, satisfiable(t, state.indexer.Variables(), fixed), word)
	}
}

func TestDistanceConstraintsDirect(t *testing.T) {
	scenarios := [][2]string{
		{"AAAACCCC", "AAAACCCC"}, // Identical
		{"AAAACCCC", "AAAAGGGG"}, // Four differences
		{"AAAACCCC", "AAAACGGG"}, // Three differences
		{"AAAACCCC", "TTTTGGGG"}, // Eight differences
		{"ACGTACGT", "ACGTTGCA"}, // Four differences
	}
	for range 30 {
		scenarios = append(scenarios, [2]string{randomWord(rand.IntN), randomWord(rand.IntN)})
	}

	for _, scenario := range scenarios {
		// Arrange
		state := constraintState{indexer: newIndexer(2)}
		clauses := fixWords(t, state, scenario[0], scenario[1])

		// Act
		clauses = append(clauses, distanceConstraints(state, 0, 1, false)...)

		// Assert
		expected := Hamming(scenario[0], scenario[1]) >= MinDistance
		assert.Equal(t, expected, satisfiable(t, state.indexer.Variables(), clauses), "%v", scenario)
	}
}

func TestDistanceConstraintsReverseComplement(t *testing.T) {
	scenarios := [][2]string{
		{"AAAACCCC", "GGGGTTTT"}, // word2 is the reverse-complement of word1
		{"AAAACCCC", "CCCCAAAA"},
		{"ACGTACGT", "AAAACCCC"},
		{"AACCGGTT", "ACGTACGT"},
	}
	for range 30 {
		scenarios = append(scenarios, [2]string{randomWord(rand.IntN), randomWord(rand.IntN)})
	}

	for _, scenario := range scenarios {
		// Arrange
		state := constraintState{indexer: newIndexer(2)}
		clauses := fixWords(t, state, scenario[0], scenario[1])

		// Act
		clauses = append(clauses, distanceConstraints(state, 0, 1, true)...)

		// Assert
		expected := Hamming(scenario[0], ReverseComplement(scenario[1])) >= MinDistance
		assert.Equal(t, expected, satisfiable(t, state.indexer.Variables(), clauses), "%v", scenario)
	}
}

func TestDistanceConstraintsSelfReverseComplement(t *testing.T) {
	words := []string{"AACCGGTT", "ACGTACGT", "AAAACCCC", "ACACACAC", "AGCTAGCT", "ATGCATGC"}
	for range 30 {
		words = append(words, randomWord(rand.IntN))
	}

	for _, word := range words {
		state := constraintState{indexer: newIndexer(1)}
		clauses := append(fixWords(t, state, word), distanceConstraints(state, 0, 0, true)...)

		expected := Hamming(word, ReverseComplement(word)) >= MinDistance
		assert.Equal(t, expected, satisfiable(t, state.indexer.Variables(), clauses), word)
	}
}

func TestDistanceConstraintsShape(t *testing.T) {
	state := constraintState{indexer: newIndexer(2)}
	before := state.indexer.Variables()

	clauses := distanceConstraints(state, 0, 1, true)

	assert.Equal(t, before+WordLength, state.indexer.Variables())
	assert.Len(t, clauses, WordLength*4+56)
	for _, clause := range clauses[:WordLength*4] {
		assert.Len(t, clause, 5)
		assert.Greater(t, clause[4], int64(before))
	}
}

func TestOrderConstraints(t *testing.T) {
	scenarios := [][2]string{
		{"CCCCAAAA", "CCCCTTTT"},
		{"CCCCTTTT", "CCCCAAAA"},
		{"AAAACCCC", "AAAACCCC"}, // Identical words never precede each other
		{"CAAAAAAA", "GAAAAAAA"},
		{"GAAAAAAA", "AAAAAAAA"},
		{"TTTTTTTG", "TTTTTTTT"},
		{"TTTTTTTT", "TTTTTTTG"},
	}
	for range 40 {
		scenarios = append(scenarios, [2]string{randomWord(rand.IntN), randomWord(rand.IntN)})
	}

	for _, scenario := range scenarios {
		// Arrange
		state := constraintState{indexer: newIndexer(2)}
		clauses := fixWords(t, state, scenario[0], scenario[1])

		// Act
		clauses = append(clauses, orderConstraints(state, 0, 1)...)

		// Assert
		expected := Precedes(scenario[0], scenario[1])
		assert.Equal(t, expected, satisfiable(t, state.indexer.Variables(), clauses), "%v", scenario)
	}
}

func TestOrderConstraintsShape(t *testing.T) {
	state := constraintState{indexer: newIndexer(2)}
	before := state.indexer.Variables()

	clauses := orderConstraints(state, 0, 1)

	assert.Equal(t, before+BitsPerWord, state.indexer.Variables())
	assert.Len(t, clauses, 6*BitsPerWord)
	assert.Equal(t, []int64{-int64(before + BitsPerWord)}, clauses[len(clauses)-1])
}
