package model

import (
	"context"

	"github.com/limaJavier/dnaword/pkg/sat"
)

type WordDesigner interface {
	// Returns nil words (and a nil error) when no word set satisfies the problem
	Build(
		ctx context.Context,
		problem Problem,
	) (words []string, variables uint64, clauses uint64, err error)

	// Same as Build but over an instance encoded beforehand (e.g. a DIMACS file written by a previous run)
	Solve(
		ctx context.Context,
		instance sat.SAT,
		problem Problem,
	) (words []string, err error)

	Verify(
		words []string,
		problem Problem,
	) bool
}
