package sat

import "math/rand/v2"

// GenerateSATInstance builds a random instance where every variable takes part in a clause with probability 1/2 and a random sign
func GenerateSATInstance(variables uint64, clauses int) SAT {
	satInstance := SAT{
		Variables: variables,
		Clauses:   make([][]int64, clauses),
	}

	for i := range clauses {
		satInstance.Clauses[i] = make([]int64, 0, variables)
		for j := range variables {
			if rand.Float32() < 0.5 {
				satInstance.Clauses[i] = append(satInstance.Clauses[i], randomSign()*(1+int64(j)))
			}
		}

		if len(satInstance.Clauses[i]) == 0 {
			satInstance.Clauses[i] = append(satInstance.Clauses[i], randomSign()*(1+rand.Int64N(int64(variables))))
		}
	}

	return satInstance
}

// AssertSATSolution checks that the solution is contradiction-free and satisfies every clause of the instance
func AssertSATSolution(satInstance SAT, satSolution SATSolution) bool {
	assignment, conflicting := satSolution.Assignment()
	if conflicting {
		return false
	}

	for _, clause := range satInstance.Clauses {
		satisfied := false
		for _, literal := range clause {
			value, ok := assignment[uint64(abs(literal))]
			if ok && value == (literal > 0) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	return true
}

func randomSign() int64 {
	if rand.Float32() < 0.5 {
		return -1
	}
	return 1
}
