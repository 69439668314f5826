package sat

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrMalformedDIMACS = errors.New("malformed DIMACS")

// ParseDIMACS reads a DIMACS-CNF instance. Comment lines are skipped and clauses may span several lines, each one ending at its terminating zero
func ParseDIMACS(reader io.Reader) (SAT, error) {
	var (
		instance    SAT
		seenHeader  bool
		clauseCount int
		clause      []int64
		lineNumber  int
	)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty and comment lines
		if line == "" || strings.HasPrefix(line, "c") || strings.HasPrefix(line, "%") {
			continue
		}

		// Problem line
		if strings.HasPrefix(line, "p") {
			if seenHeader {
				return SAT{}, errors.Wrapf(ErrMalformedDIMACS, "line %d: duplicate problem line", lineNumber)
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return SAT{}, errors.Wrapf(ErrMalformedDIMACS, "line %d: expected 'p cnf <variables> <clauses>', got %q", lineNumber, line)
			}
			variables, err := strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				return SAT{}, errors.Wrapf(ErrMalformedDIMACS, "line %d: invalid variable count %q", lineNumber, fields[2])
			}
			clauses, err := strconv.Atoi(fields[3])
			if err != nil || clauses < 0 {
				return SAT{}, errors.Wrapf(ErrMalformedDIMACS, "line %d: invalid clause count %q", lineNumber, fields[3])
			}
			instance.Variables, clauseCount, seenHeader = variables, clauses, true
			instance.Clauses = make([][]int64, 0, clauses)
			continue
		}

		if !seenHeader {
			return SAT{}, errors.Wrapf(ErrMalformedDIMACS, "line %d: clause before problem line", lineNumber)
		}

		// Clause line
		for _, field := range strings.Fields(line) {
			literal, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return SAT{}, errors.Wrapf(ErrMalformedDIMACS, "line %d: invalid literal %q", lineNumber, field)
			}
			if literal == 0 {
				instance.Clauses = append(instance.Clauses, clause)
				clause = nil
				continue
			}
			if variable := abs(literal); uint64(variable) > instance.Variables {
				return SAT{}, errors.Wrapf(ErrMalformedDIMACS, "line %d: variable %d exceeds declared count %d", lineNumber, variable, instance.Variables)
			}
			clause = append(clause, literal)
		}
	}

	if err := scanner.Err(); err != nil {
		return SAT{}, errors.Wrap(err, "cannot read DIMACS")
	}
	if !seenHeader {
		return SAT{}, errors.Wrap(ErrMalformedDIMACS, "missing problem line")
	}
	if len(clause) > 0 {
		return SAT{}, errors.Wrap(ErrMalformedDIMACS, "last clause is not zero-terminated")
	}
	if len(instance.Clauses) != clauseCount {
		return SAT{}, errors.Wrapf(ErrMalformedDIMACS, "header declares %d clauses but %d were read", clauseCount, len(instance.Clauses))
	}

	return instance, nil
}

func abs(literal int64) int64 {
	if literal < 0 {
		return -literal
	}
	return literal
}
