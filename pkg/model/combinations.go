package model

import "slices"

// combinations returns every k-subset of {0, ..., n-1} as an increasing index slice, in lexicographic order.
// The enumeration is iterative: the rightmost index that can still move is advanced and the ones after it are reset
func combinations(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}

	result := make([][]int, 0, binomial(n, k))
	combination := make([]int, k)
	for i := range combination {
		combination[i] = i
	}

	for {
		result = append(result, slices.Clone(combination))

		i := k - 1
		for i >= 0 && combination[i] == n-k+i {
			i--
		}
		if i < 0 {
			return result
		}

		combination[i]++
		for j := i + 1; j < k; j++ {
			combination[j] = combination[j-1] + 1
		}
	}
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}
