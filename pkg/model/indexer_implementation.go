package model

import log "github.com/sirupsen/logrus"

type indexerImplementation struct {
	words     uint64
	variables uint64
}

func (indexer *indexerImplementation) Index(word, position, bit uint64) uint64 {
	if word >= indexer.words || position >= WordLength || bit >= BitsPerLetter {
		log.Panicf("base variable (%v, %v, %v) is out of range for %v words", word, position, bit, indexer.words)
	}
	return 1 + word*BitsPerWord + position*BitsPerLetter + bit
}

func (indexer *indexerImplementation) Attributes(index uint64) (word, position, bit uint64) {
	if index == 0 || index > indexer.words*BitsPerWord {
		log.Panicf("variable %v is not a base variable", index)
	}
	index = index - 1
	bit = index % BitsPerLetter
	index = index / BitsPerLetter

	position = index % WordLength
	word = index / WordLength

	return word, position, bit
}

func (indexer *indexerImplementation) Allocate() uint64 {
	indexer.variables++
	return indexer.variables
}

func (indexer *indexerImplementation) Variables() uint64 {
	return indexer.variables
}
