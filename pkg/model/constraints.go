package model

type constraintState struct {
	indexer indexer
}

func (state constraintState) literal(word, position, bit uint64) int64 {
	return int64(state.indexer.Index(word, position, bit))
}

// negateIf returns the negated literal when negated holds
func negateIf(literal int64, negated bool) int64 {
	if negated {
		return -literal
	}
	return literal
}

// gcContentConstraints requires exactly GCContent letters of the word to be drawn from {C, G}, i.e. exactly WordLength-GCContent first bits to be true
func gcContentConstraints(state constraintState, word uint64) [][]int64 {
	firstBits := make([]int64, 0, WordLength)
	for position := range uint64(WordLength) {
		firstBits = append(firstBits, state.literal(word, position, 0))
	}
	return exactlyConstraints(firstBits, WordLength-GCContent)
}

// distanceConstraints allows at most MaxMatches matching positions between word1 and word2.
// When reverseComplement holds, position p of word1 is compared against the complement of position WordLength-1-p of word2
func distanceConstraints(state constraintState, word1, word2 uint64, reverseComplement bool) [][]int64 {
	clauses := make([][]int64, 0, WordLength*4+binomial(WordLength, MaxMatches+1))
	matches := make([]int64, 0, WordLength)

	for position := range uint64(WordLength) {
		match := int64(state.indexer.Allocate())
		matches = append(matches, match)

		otherPosition := position
		if reverseComplement {
			otherPosition = WordLength - 1 - position
		}
		u0, u1 := state.literal(word1, position, 0), state.literal(word1, position, 1)
		v0, v1 := state.literal(word2, otherPosition, 0), state.literal(word2, otherPosition, 1)

		// (u0 = b0, u1 = b1 XOR rc, v0 = b0, v1 = b1) => match
		for _, b0 := range []bool{true, false} {
			for _, b1 := range []bool{true, false} {
				clauses = append(clauses, []int64{
					negateIf(u0, b0),
					negateIf(u1, b1 != reverseComplement),
					negateIf(v0, b0),
					negateIf(v1, b1),
					match,
				})
			}
		}
	}

	// Distance needs only the upper bound on matches
	return append(clauses, atMostConstraints(matches, MaxMatches)...)
}

// orderConstraints requires word1 to precede word2 when both are read as BitsPerWord-bit numbers, most significant bit first
// (position 0 bit 0, position 0 bit 1, position 1 bit 0, ...).
// An "equal prefix" variable is chained along the bits: it holds exactly when the previous one holds and both words agree at the current bit
func orderConstraints(state constraintState, word1, word2 uint64) [][]int64 {
	clauses := make([][]int64, 0, 6*BitsPerWord)
	var previousEqual int64 // 0 while no bit has been compared

	for position := range uint64(WordLength) {
		for bit := range uint64(BitsPerLetter) {
			u, v := state.literal(word1, position, bit), state.literal(word2, position, bit)
			currentEqual := int64(state.indexer.Allocate())

			if previousEqual != 0 {
				clauses = append(clauses, []int64{-currentEqual, previousEqual})
			}

			// currentEqual => (u <=> v)
			clauses = append(clauses, []int64{-currentEqual, -u, v}, []int64{-currentEqual, u, -v})

			// (previousEqual and (u <=> v)) => currentEqual
			agree, disagree := []int64{-u, -v, currentEqual}, []int64{u, v, currentEqual}
			if previousEqual != 0 {
				agree, disagree = append(agree, -previousEqual), append(disagree, -previousEqual)
			}
			clauses = append(clauses, agree, disagree)

			// (u and not v) => not previousEqual
			clause := []int64{-u, v}
			if previousEqual != 0 {
				clause = append(clause, -previousEqual)
			}
			clauses = append(clauses, clause)

			previousEqual = currentEqual
		}
	}

	// The words cannot be identical
	return append(clauses, []int64{-previousEqual})
}
