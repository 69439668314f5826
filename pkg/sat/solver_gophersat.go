package sat

import (
	"context"

	gophersat "github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type gophersatSolver struct{}

// NewGophersatSolver returns an in-process solver backed by gophersat.
// The context is only checked before the search starts, gophersat cannot be interrupted
func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (solver *gophersatSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cnf := lo.Map(instance.Clauses, func(clause []int64, _ int) []int {
		return lo.Map(clause, func(literal int64, _ int) int { return int(literal) })
	})

	log.Debugf("gophersat: solving %d variables, %d clauses", instance.Variables, len(instance.Clauses))
	s := gophersat.New(gophersat.ParseSlice(cnf))
	if s.Solve() != gophersat.Sat {
		return nil, nil
	}

	// Variables absent from every clause are not part of gophersat's model, they are left false
	model := s.Model()
	solution := make(SATSolution, instance.Variables)
	for i := range instance.Variables {
		literal := int64(i + 1)
		if i >= uint64(len(model)) || !model[i] {
			literal = -literal
		}
		solution[i] = literal
	}
	return solution, nil
}
