package model

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrInvalidWord = errors.New("invalid word set")

// Validate checks a decoded word set against every constraint of the problem, independently of the CNF encoding
func Validate(words []string, problem Problem) error {
	if err := problem.validate(); err != nil {
		return err
	}
	if len(words) != problem.Size {
		return errors.Wrapf(ErrInvalidWord, "expected %d words, got %d", problem.Size, len(words))
	}

	for i, word := range words {
		if len(word) != WordLength {
			return errors.Wrapf(ErrInvalidWord, "word %d (%q) has length %d", i, word, len(word))
		}
		if lo.SomeBy([]byte(word), func(letter byte) bool {
			_, ok := CodeOf(letter)
			return !ok
		}) {
			return errors.Wrapf(ErrInvalidWord, "word %d (%q) has a letter outside {A, C, G, T}", i, word)
		}
		if gc := gcCount(word); gc != GCContent {
			return errors.Wrapf(ErrInvalidWord, "word %d (%q) has %d letters from {C, G}", i, word, gc)
		}
	}

	for i := range words {
		for j := i; j < len(words); j++ {
			if i != j && Hamming(words[i], words[j]) < MinDistance {
				return errors.Wrapf(ErrInvalidWord, "words %q and %q are too close", words[i], words[j])
			}
			if Hamming(words[i], ReverseComplement(words[j])) < MinDistance {
				return errors.Wrapf(ErrInvalidWord, "word %q is too close to the reverse-complement of %q", words[i], words[j])
			}
		}
	}

	if problem.EnforceOrder {
		for i := 0; i+1 < len(words); i++ {
			if !Precedes(words[i], words[i+1]) {
				return errors.Wrapf(ErrInvalidWord, "word %q does not precede %q", words[i], words[i+1])
			}
		}
	}

	return nil
}

// Hamming counts the positions where two equal-length words differ
func Hamming(word1, word2 string) int {
	distance := 0
	for i := range min(len(word1), len(word2)) {
		if word1[i] != word2[i] {
			distance++
		}
	}
	return distance + max(len(word1), len(word2)) - min(len(word1), len(word2))
}

// ReverseComplement reverses the word and complements every nucleotide. Letters outside {A, C, G, T} are kept as they are
func ReverseComplement(word string) string {
	result := make([]byte, len(word))
	for i := range len(word) {
		letter := word[len(word)-1-i]
		if complement, ok := ComplementLetter(letter); ok {
			letter = complement
		}
		result[i] = letter
	}
	return string(result)
}

// Precedes reports whether word1 comes strictly before word2 when both are read bit by bit through their letter codes
func Precedes(word1, word2 string) bool {
	for i := range min(len(word1), len(word2)) {
		code1, _ := CodeOf(word1[i])
		code2, _ := CodeOf(word2[i])
		for bit := range BitsPerLetter {
			if code1[bit] != code2[bit] {
				return code2[bit]
			}
		}
	}
	return len(word1) < len(word2)
}

func gcCount(word string) int {
	return lo.CountBy([]byte(word), func(letter byte) bool {
		return letter == 'C' || letter == 'G'
	})
}
