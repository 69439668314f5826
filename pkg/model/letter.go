package model

const (
	WordLength    = 8                          // Letters per word
	BitsPerLetter = 2                          // Boolean variables encoding a letter
	BitsPerWord   = WordLength * BitsPerLetter // Boolean variables encoding a word
	GCContent     = 4                          // Letters of every word drawn from {C, G}
	MinDistance   = 4                          // Minimum (reverse-complement) Hamming distance between words
	MaxMatches    = WordLength - MinDistance   // Maximum matching positions between two words
)

// Code is the 2-bit pattern of a letter. The first bit distinguishes {A, T} from {C, G}, the second bit is flipped by complementation
type Code [BitsPerLetter]bool

var letterCodes = [...]struct {
	letter byte
	code   Code
}{
	{'A', Code{true, false}},
	{'C', Code{false, false}},
	{'G', Code{false, true}},
	{'T', Code{true, true}},
}

// Complement returns the code of the complementary letter (A <-> T, C <-> G)
func (code Code) Complement() Code {
	return Code{code[0], !code[1]}
}

// Letter returns the letter whose code is the given one
func (code Code) Letter() (byte, bool) {
	for _, entry := range letterCodes {
		if entry.code == code {
			return entry.letter, true
		}
	}
	return 0, false
}

// CodeOf returns the code of the given letter, if it is one of A, C, G, T
func CodeOf(letter byte) (Code, bool) {
	for _, entry := range letterCodes {
		if entry.letter == letter {
			return entry.code, true
		}
	}
	return Code{}, false
}

// ComplementLetter returns the complementary nucleotide
func ComplementLetter(letter byte) (byte, bool) {
	code, ok := CodeOf(letter)
	if !ok {
		return 0, false
	}
	return code.Complement().Letter()
}
