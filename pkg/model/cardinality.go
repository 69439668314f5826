package model

import "github.com/samber/lo"

// atMostConstraints forbids any k+1 of the literals from being true at the same time
func atMostConstraints(literals []int64, k int) [][]int64 {
	return lo.Map(combinations(len(literals), k+1), func(combination []int, _ int) []int64 {
		return lo.Map(combination, func(i int, _ int) int64 { return -literals[i] })
	})
}

// atLeastConstraints forbids any n-k+1 of the literals from being false at the same time
func atLeastConstraints(literals []int64, k int) [][]int64 {
	return lo.Map(combinations(len(literals), len(literals)-k+1), func(combination []int, _ int) []int64 {
		return lo.Map(combination, func(i int, _ int) int64 { return literals[i] })
	})
}

// exactlyConstraints requires exactly k of the literals to be true (0 <= k <= len(literals))
func exactlyConstraints(literals []int64, k int) [][]int64 {
	return append(atLeastConstraints(literals, k), atMostConstraints(literals, k)...)
}
