// Package testutil generates randomized scraper inputs for tests.
package testutil

import "math/rand"

// PickWeighted picks an index at the given weights.
//
// Ex. PickWeighted(rndm, 2, 3, 5) outputs:
//   - `0` 20% of the time
//   - `1` 30% of the time
//   - `2` 50% of the time
func PickWeighted(rndm *rand.Rand, weights ...int) int {
	if len(weights) == 0 {
		panic("must have at least 1 weight")
	}

	sum := 0
	for _, weight := range weights {
		if weight <= 0 {
			panic("weights must be positive")
		}
		sum += weight
	}

	value := rndm.Intn(sum)
	threshold := 0
	for i, weight := range weights {
		threshold += weight
		if value < threshold {
			return i
		}
	}
	panic("unreachable")
}

// Letters generates a random lowercase string.
func Letters(rndm *rand.Rand, length int) string {
	str := make([]rune, length)
	for i := range str {
		str[i] = 'a' + rune(rndm.Intn(26))
	}
	return string(str)
}
