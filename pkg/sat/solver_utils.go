package sat

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	valueMarker           = 'v'
	unsatisfiableMarker   = "UNSATISFIABLE"
	satisfiableExitCode   = 10
	unsatisfiableExitCode = 20
)

var ErrInvalidLiteral = errors.New("invalid literal in solver output")

// ParseSolution collects the literals of every value line ("v ...") in the solver's output, in order, discarding the terminating zeros.
// An output without value lines yields an empty solution
func ParseSolution(solverOutput string) (SATSolution, error) {
	fields := lo.FlatMap(
		lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
			return isValueLine(line)
		}),
		func(line string, _ int) []string {
			return strings.Fields(line[1:])
		},
	)

	solution := make(SATSolution, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidLiteral, "%q", field)
		}
		if value != 0 {
			solution = append(solution, value)
		}
	}
	return solution, nil
}

// isValueLine matches the marker as a whole token, so lines such as "version 1.0" are not value lines
func isValueLine(line string) bool {
	if len(line) == 0 || line[0] != valueMarker {
		return false
	}
	return len(line) == 1 || unicode.IsSpace(rune(line[1]))
}

// Unsatisfiable reports whether the solver's output declares the instance unsatisfiable
func Unsatisfiable(solverOutput string) bool {
	return strings.Contains(solverOutput, unsatisfiableMarker)
}

// parseResultFile reads the minisat-style result file: a status line ("SAT", "UNSAT" or "INDET") followed by the model line
func parseResultFile(content string) (SATSolution, bool, error) {
	lines := lo.Filter(strings.Split(content, "\n"), func(line string, _ int) bool {
		return strings.TrimSpace(line) != ""
	})
	if len(lines) == 0 {
		return nil, false, errors.New("empty result file")
	}

	switch strings.TrimSpace(lines[0]) {
	case "UNSAT":
		return nil, false, nil
	case "SAT":
	default:
		return nil, false, errors.Errorf("unexpected result status %q", lines[0])
	}
	if len(lines) < 2 {
		return nil, false, errors.New("result file reports SAT but holds no model")
	}

	solution, err := ParseSolution("v " + lines[1])
	if err != nil {
		return nil, false, err
	}
	return solution, true, nil
}
