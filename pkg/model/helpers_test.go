package model

import (
	"context"
	"testing"

	"github.com/limaJavier/dnaword/pkg/sat"
	"github.com/stretchr/testify/require"
)

// solutionFromWords assigns the base variables from the words' letter codes and every auxiliary variable to false
func solutionFromWords(t *testing.T, words []string, variables uint64) sat.SATSolution {
	t.Helper()
	indexer := newIndexer(uint64(len(words)))
	solution := make(sat.SATSolution, variables)
	for i := range variables {
		solution[i] = -int64(i + 1)
	}
	for word, letters := range words {
		require.Len(t, letters, WordLength)
		for position := range uint64(WordLength) {
			code, ok := CodeOf(letters[position])
			require.True(t, ok)
			for bit := range uint64(BitsPerLetter) {
				if code[bit] {
					variable := indexer.Index(uint64(word), position, bit)
					solution[variable-1] = int64(variable)
				}
			}
		}
	}
	return solution
}

// fixWords returns unit clauses pinning the base variables of the words to their letter codes
func fixWords(t *testing.T, state constraintState, words ...string) [][]int64 {
	t.Helper()
	clauses := make([][]int64, 0, len(words)*BitsPerWord)
	for word, letters := range words {
		for position := range uint64(WordLength) {
			code, ok := CodeOf(letters[position])
			require.True(t, ok)
			for bit := range uint64(BitsPerLetter) {
				clauses = append(clauses, []int64{negateIf(state.literal(uint64(word), position, bit), !code[bit])})
			}
		}
	}
	return clauses
}

// satisfiable solves the clauses in-process
func satisfiable(t *testing.T, variables uint64, clauses [][]int64) bool {
	t.Helper()
	solution, err := sat.NewGophersatSolver().Solve(context.Background(), sat.SAT{Variables: variables, Clauses: clauses})
	require.NoError(t, err)
	return solution != nil
}

// satisfies evaluates the clauses under a complete assignment
func satisfies(clauses [][]int64, assignment map[int64]bool) bool {
	for _, clause := range clauses {
		satisfied := false
		for _, literal := range clause {
			if literal > 0 && assignment[literal] || literal < 0 && !assignment[-literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// randomWord draws a word with exactly GCContent letters from {C, G}
func randomWord(random func(int) int) string {
	letters := make([]byte, WordLength)
	positions := make([]int, WordLength)
	for i := range positions {
		positions[i] = i
	}
	for i := len(positions) - 1; i > 0; i-- {
		j := random(i + 1)
		positions[i], positions[j] = positions[j], positions[i]
	}
	for i, position := range positions {
		if i < GCContent {
			letters[position] = "CG"[random(2)]
		} else {
			letters[position] = "AT"[random(2)]
		}
	}
	return string(letters)
}
