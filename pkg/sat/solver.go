package sat

import (
	"context"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type SATSolver interface {
	Solve(ctx context.Context, instance SAT) (SATSolution, error) // Returns a solution of the SAT instance if satisfiable, else returns nil (these are valid outputs where error shall be nil)
}

var ErrUnknownSolver = errors.New("unknown solver")

var solvers = map[string]func(config Config) SATSolver{
	"gophersat":     func(Config) SATSolver { return NewGophersatSolver() },
	"gini":          func(Config) SATSolver { return NewGiniSolver() },
	"kissat":        NewKissatSolver,
	"cadical":       NewCadicalSolver,
	"cryptominisat": NewCryptominisatSolver,
	"minisat":       NewMinisatSolver,
	"glucosesimp":   NewGlucoseSimpSolver,
	"glucosesyrup":  NewGlucoseSyrupSolver,
}

// NewSolver returns the solver registered under name (case-insensitive)
func NewSolver(name string, config Config) (SATSolver, error) {
	constructor, ok := solvers[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSolver, "%q (allowed values are %v)", name, SolverNames())
	}
	return constructor(config), nil
}

// SolverNames lists every registered solver in lexicographic order
func SolverNames() []string {
	names := lo.Keys(solvers)
	slices.Sort(names)
	return names
}
