package model

import (
	"github.com/limaJavier/dnaword/pkg/sat"
	"github.com/pkg/errors"
)

var (
	ErrNoModel     = errors.New("no model available")
	ErrUndecodable = errors.New("model cannot be decoded")
)

// Decode reads the letters of every word from the base variables of the solution.
// An empty solution yields ErrNoModel; an unassigned or contradictory base variable yields ErrUndecodable
func Decode(solution sat.SATSolution, problem Problem) ([]string, error) {
	if err := problem.validate(); err != nil {
		return nil, err
	}
	if len(solution) == 0 {
		return nil, ErrNoModel
	}

	assignment, conflicting := solution.Assignment()
	if conflicting {
		return nil, errors.Wrap(ErrUndecodable, "a variable is assigned both values")
	}

	indexer := newIndexer(uint64(problem.Size))
	words := make([]string, 0, problem.Size)
	for word := range uint64(problem.Size) {
		letters := make([]byte, WordLength)
		for position := range uint64(WordLength) {
			var code Code
			for bit := range uint64(BitsPerLetter) {
				variable := indexer.Index(word, position, bit)
				value, ok := assignment[variable]
				if !ok {
					return nil, errors.Wrapf(ErrUndecodable, "variable %d (word %d, position %d) is unassigned", variable, word, position)
				}
				code[bit] = value
			}

			letter, ok := code.Letter()
			if !ok {
				return nil, errors.Wrapf(ErrUndecodable, "pattern %v of word %d at position %d is not a letter code", code, word, position)
			}
			letters[position] = letter
		}
		words = append(words, string(letters))
	}

	return words, nil
}

// DecodeOutput extracts the model from a solver's textual output and decodes it
func DecodeOutput(solverOutput string, problem Problem) ([]string, error) {
	solution, err := sat.ParseSolution(solverOutput)
	if err != nil {
		return nil, errors.Wrapf(ErrUndecodable, "%v", err)
	}
	return Decode(solution, problem)
}
