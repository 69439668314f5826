package sat

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	giniSatisfiable   = 1
	giniUnsatisfiable = -1
	giniPollInterval  = 10 * time.Millisecond
)

type giniSolver struct{}

// NewGiniSolver returns an in-process solver backed by gini. Cancelling the context stops the search
func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	g := gini.NewVc(int(instance.Variables), len(instance.Clauses))
	var maxVariable int64
	for _, clause := range instance.Clauses {
		for _, literal := range clause {
			g.Add(toGiniLit(literal))
			maxVariable = max(maxVariable, abs(literal))
		}
		g.Add(z.LitNull)
	}

	log.Debugf("gini: solving %d variables, %d clauses", instance.Variables, len(instance.Clauses))
	result, err := wait(ctx, g)
	if err != nil {
		return nil, err
	}
	switch result {
	case giniSatisfiable:
	case giniUnsatisfiable:
		return nil, nil
	default:
		return nil, errors.Errorf("gini finished without a verdict: %d", result)
	}

	// Variables absent from every clause are unknown to gini, they are left false
	solution := make(SATSolution, instance.Variables)
	for i := range instance.Variables {
		literal := int64(i + 1)
		if literal > maxVariable || !g.Value(z.Var(literal).Pos()) {
			literal = -literal
		}
		solution[i] = literal
	}
	return solution, nil
}

func toGiniLit(literal int64) z.Lit {
	if literal < 0 {
		return z.Var(-literal).Neg()
	}
	return z.Var(literal).Pos()
}

// wait polls the asynchronous search until it finishes or the context is done
func wait(ctx context.Context, g *gini.Gini) (int, error) {
	run := g.GoSolve()
	ticker := time.NewTicker(giniPollInterval)
	defer ticker.Stop()

	for {
		if result, done := run.Test(); done {
			return result, nil
		}
		select {
		case <-ctx.Done():
			run.Stop()
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}
