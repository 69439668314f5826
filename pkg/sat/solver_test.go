package sat

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGophersat(t *testing.T) {
	solver := NewGophersatSolver()
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Known instances", func(t *testing.T) {
		knownExecution(t, solver)
	})
}

func TestGini(t *testing.T) {
	solver := NewGiniSolver()
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Known instances", func(t *testing.T) {
		knownExecution(t, solver)
	})
}

func TestExternalSolvers(t *testing.T) {
	for _, name := range []string{"kissat", "cadical", "cryptominisat", "minisat", "glucosesimp", "glucosesyrup"} {
		t.Run(name, func(t *testing.T) {
			solver, err := NewSolver(name, Config{})
			require.NoError(t, err)
			if _, err := exec.LookPath(solver.(*externalSolver).executable); err != nil {
				t.Skipf("%v is not installed", name)
			}
			randomExecution(t, solver)
			knownExecution(t, solver)
		})
	}
}

func TestExternalSolverMissingExecutable(t *testing.T) {
	solver := NewKissatSolver(Config{KissatPath: "/nonexistent/kissat"})

	solution, err := solver.Solve(context.Background(), SAT{Variables: 1, Clauses: [][]int64{{1}}})

	assert.Error(t, err)
	assert.Nil(t, solution)
}

func TestNewSolver(t *testing.T) {
	g := gomega.NewWithT(t)

	g.Expect(SolverNames()).To(gomega.ContainElements("gophersat", "gini", "kissat", "cadical"))
	g.Expect(SolverNames()).To(gomega.HaveLen(8))

	solver, err := NewSolver("GopherSAT", Config{})
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(solver).NotTo(gomega.BeNil())

	_, err = NewSolver("picosat", Config{})
	g.Expect(err).To(gomega.MatchError(ErrUnknownSolver))
}

func TestGophersatCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGophersatSolver().Solve(ctx, GenerateSATInstance(10, 10))
	assert.ErrorIs(t, err, context.Canceled)
}

func randomExecution(t *testing.T, solver SATSolver) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	unsatisfiableCount := 0
	for range 10 {
		//** Arrange
		instance := GenerateSATInstance(50, 150)

		//** Act
		solution, err := solver.Solve(ctx, instance)

		//** Assert
		require.NoError(t, err)
		if solution == nil {
			unsatisfiableCount++
			continue
		}
		assert.True(t, AssertSATSolution(instance, solution))
		assert.Len(t, solution, int(instance.Variables))
	}
	t.Logf("Unsatisfiable instances: %v", unsatisfiableCount)
}

func knownExecution(t *testing.T, solver SATSolver) {
	ctx := context.Background()

	// x1 and (not x1 or x2) and (not x2 or not x3), x4 never appears
	satisfiable := SAT{Variables: 4, Clauses: [][]int64{{1}, {-1, 2}, {-2, -3}}}
	solution, err := solver.Solve(ctx, satisfiable)
	require.NoError(t, err)
	require.NotNil(t, solution)
	assert.True(t, AssertSATSolution(satisfiable, solution))
	assignment, _ := solution.Assignment()
	assert.True(t, assignment[1])
	assert.True(t, assignment[2])
	assert.False(t, assignment[3])

	unsatisfiable := SAT{Variables: 2, Clauses: [][]int64{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}}}
	solution, err = solver.Solve(ctx, unsatisfiable)
	require.NoError(t, err)
	assert.Nil(t, solution)
}
