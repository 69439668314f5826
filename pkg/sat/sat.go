package sat

import (
	"fmt"
	"strings"
)

// SATSolution holds one signed literal per assigned variable; the sign gives the variable's truth value
type SATSolution []int64

// SAT is a CNF instance. Every literal's absolute value must be in [1, Variables]
type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

// ToDIMACS renders the instance in the DIMACS-CNF text format: a "p cnf" header followed by one zero-terminated clause per line
func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// Assignment turns a solution into a variable -> value lookup. Literals assigned twice with opposite signs are reported as conflicting
func (solution SATSolution) Assignment() (assignment map[uint64]bool, conflicting bool) {
	assignment = make(map[uint64]bool, len(solution))
	for _, literal := range solution {
		if literal == 0 {
			continue
		}
		variable, value := uint64(literal), true
		if literal < 0 {
			variable, value = uint64(-literal), false
		}
		if previous, ok := assignment[variable]; ok && previous != value {
			conflicting = true
		}
		assignment[variable] = value
	}
	return assignment, conflicting
}
