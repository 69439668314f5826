package model

import (
	"context"
	"io"

	"github.com/limaJavier/dnaword/pkg/sat"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type satWordDesigner struct {
	solver  sat.SATSolver
	formula io.Writer
}

type DesignerOption func(designer *satWordDesigner)

// WithFormulaOutput makes Build write every encoded instance, in the DIMACS format, into w before solving it
func WithFormulaOutput(w io.Writer) DesignerOption {
	return func(designer *satWordDesigner) {
		designer.formula = w
	}
}

func NewSATWordDesigner(solver sat.SATSolver, options ...DesignerOption) WordDesigner {
	designer := &satWordDesigner{
		solver: solver,
	}
	for _, option := range options {
		option(designer)
	}
	return designer
}

func (designer *satWordDesigner) Build(ctx context.Context, problem Problem) ([]string, uint64, uint64, error) {
	//** Build SAT instance
	satInstance, err := Encode(problem)
	if err != nil {
		return nil, 0, 0, err
	}
	variables, clauses := satInstance.Variables, uint64(len(satInstance.Clauses))

	if designer.formula != nil {
		if _, err := io.WriteString(designer.formula, satInstance.ToDIMACS()); err != nil {
			return nil, variables, clauses, errors.Wrap(err, "cannot write formula")
		}
	}

	//** Solve SAT instance and decode words
	words, err := designer.Solve(ctx, satInstance, problem)
	return words, variables, clauses, err
}

func (designer *satWordDesigner) Solve(ctx context.Context, instance sat.SAT, problem Problem) ([]string, error) {
	solution, err := designer.solver.Solve(ctx, instance)
	if err != nil {
		return nil, err
	} else if solution == nil { // Return nil if the SAT instance is not satisfiable
		return nil, nil
	}

	return Decode(solution, problem)
}

func (designer *satWordDesigner) Verify(words []string, problem Problem) bool {
	if err := Validate(words, problem); err != nil {
		log.Debugf("verification failed: %v", err)
		return false
	}
	return true
}
