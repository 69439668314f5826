package model

// indexer interface is design to give a unique variable to every (word, position, bit) triple of the base encoding and vice versa,
// and to allocate auxiliary variables beyond the base range
type indexer interface {
	// Returns the variable encoding bit "bit" of the letter at "position" of "word"
	Index(word, position, bit uint64) uint64
	// Returns the (word, position, bit) triple encoded by a base variable
	Attributes(index uint64) (word, position, bit uint64)
	// Returns a fresh auxiliary variable, strictly greater than every variable issued so far
	Allocate() uint64
	// Returns the number of variables issued so far (base variables included)
	Variables() uint64
}

func newIndexer(words uint64) indexer {
	return &indexerImplementation{
		words:     words,
		variables: words * BitsPerWord,
	}
}
