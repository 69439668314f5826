package model

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/limaJavier/dnaword/pkg/sat"
	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRoundTrip(t *testing.T) {
	for range 20 {
		// Arrange
		size := rand.IntN(10) + 1
		words := make([]string, size)
		for i := range words {
			words[i] = randomWord(rand.IntN)
		}
		problem := Problem{Size: size}
		solution := solutionFromWords(t, words, ExpectedVariables(problem))

		// Act
		decoded, err := Decode(solution, problem)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, words, decoded)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	g := gomega.NewWithT(t)
	problem := Problem{Size: 3}
	solution := solutionFromWords(t, []string{"ACGTACGT", "TTTTGGGG", "CACAGTGT"}, ExpectedVariables(problem))

	first, err := Decode(solution, problem)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	second, err := Decode(solution, problem)
	g.Expect(err).NotTo(gomega.HaveOccurred())

	g.Expect(first).To(gomega.Equal(second))
	g.Expect(first).To(gomega.HaveLen(problem.Size))
	for _, word := range first {
		g.Expect(word).To(gomega.MatchRegexp(`^[ACGT]{8}$`))
	}
}

func TestDecodeNoModel(t *testing.T) {
	words, err := Decode(nil, Problem{Size: 2})
	assert.ErrorIs(t, err, ErrNoModel)
	assert.Nil(t, words)

	words, err = Decode(sat.SATSolution{}, Problem{Size: 2})
	assert.ErrorIs(t, err, ErrNoModel)
	assert.Nil(t, words)
}

func TestDecodeUndecodable(t *testing.T) {
	problem := Problem{Size: 2}
	complete := solutionFromWords(t, []string{"ACGTACGT", "TTTTGGGG"}, ExpectedVariables(problem))

	t.Run("Truncated model", func(t *testing.T) {
		_, err := Decode(complete[:BitsPerWord+3], problem)
		assert.ErrorIs(t, err, ErrUndecodable)
		assert.NotErrorIs(t, err, ErrNoModel)
	})

	t.Run("Contradictory model", func(t *testing.T) {
		contradictory := append(sat.SATSolution{}, complete...)
		contradictory = append(contradictory, -contradictory[0])
		_, err := Decode(contradictory, problem)
		assert.ErrorIs(t, err, ErrUndecodable)
	})
}

func TestDecodeIgnoresLiteralOrder(t *testing.T) {
	problem := Problem{Size: 2}
	words := []string{"ACGTACGT", "TTTTGGGG"}
	solution := solutionFromWords(t, words, ExpectedVariables(problem))
	rand.Shuffle(len(solution), func(i, j int) { solution[i], solution[j] = solution[j], solution[i] })

	decoded, err := Decode(solution, problem)

	require.NoError(t, err)
	assert.Equal(t, words, decoded)
}

func TestDecodeOutput(t *testing.T) {
	problem := Problem{Size: 2}
	words := []string{"AAAACCCC", "GTGTACAC"}
	solution := solutionFromWords(t, words, ExpectedVariables(problem))

	t.Run("Value lines", func(t *testing.T) {
		// Arrange
		var builder strings.Builder
		builder.WriteString("c solver banner\ns SATISFIABLE\n")
		for start := 0; start < len(solution); start += 10 {
			builder.WriteString("v")
			for _, literal := range solution[start:min(start+10, len(solution))] {
				fmt.Fprintf(&builder, " %d", literal)
			}
			builder.WriteString("\n")
		}
		builder.WriteString("v 0\n")

		// Act
		decoded, err := DecodeOutput(builder.String(), problem)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, words, decoded)
	})

	t.Run("No value lines", func(t *testing.T) {
		decoded, err := DecodeOutput("s UNSATISFIABLE\n", problem)
		assert.ErrorIs(t, err, ErrNoModel)
		assert.Nil(t, decoded)

		decoded, err = DecodeOutput("", problem)
		assert.ErrorIs(t, err, ErrNoModel)
		assert.Nil(t, decoded)
	})

	t.Run("Garbage literal", func(t *testing.T) {
		_, err := DecodeOutput("v 1 -2 x 0\n", problem)
		assert.ErrorIs(t, err, ErrUndecodable)
	})
}
