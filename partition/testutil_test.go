// Package partition_test provides shared helpers: an independent recursive
// tuple generator and a brute-force oracle used to cross-check the engine.
package partition_test

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/katalvlaran/lvpart/partition"
)

const (
	// epsTie is the tie tolerance used by the oracle; equals partition.DefaultEpsilon.
	epsTie = 1e-7

	// epsCmp is the tolerance for comparing variances computed by two summation orders.
	epsCmp = 1e-9

	// seedDet keeps random instances reproducible.
	seedDet = int64(42)
)

// allTuples lists every strictly increasing k-tuple over [0, n) in
// lexicographic order, recursively and independently of partition.Enumerator.
func allTuples(n, k int) [][]int {
	var (
		out [][]int
		cur = make([]int, 0, k)
		rec func(start int)
	)
	rec = func(start int) {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for v := start; v <= n-(k-len(cur)); v++ {
			cur = append(cur, v)
			rec(v + 1)
			cur = cur[:len(cur)-1]
		}
	}
	rec(0)

	return out
}

// oracle is the brute-force answer for one instance.
type oracle struct {
	min       float64 // true minimum variance
	first     []int   // first tuple (lexicographic) at the minimum
	atMin     int     // tuples within epsTie of min
	tuples    int     // total tuples scored
	firstSums []float64
}

// bruteForce rescans every tuple with direct summation.
func bruteForce(weights []float64, k int) oracle {
	o := oracle{min: math.Inf(1)}
	tuples := allTuples(len(weights)-1, k-1)
	vars := make([]float64, len(tuples))
	for i, cuts := range tuples {
		sums := partition.GroupSums(nil, weights, cuts)
		vars[i] = partition.SampleVariance(sums)
		if vars[i] < o.min {
			o.min = vars[i]
		}
	}
	for i, v := range vars {
		if math.Abs(v-o.min) < epsTie {
			if o.atMin == 0 {
				o.first = tuples[i]
				o.firstSums = partition.GroupSums(nil, weights, tuples[i])
			}
			o.atMin++
		}
	}
	o.tuples = len(tuples)

	return o
}

// randomInts returns n integer-valued weights in [0, hi).
func randomInts(rng *rand.Rand, n, hi int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(rng.Intn(hi))
	}

	return out
}

// letters returns n labels "l0", "l1", ...
func letters(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "l" + strconv.Itoa(i)
	}

	return out
}

// binomialU is C(n, k) computed naively for small inputs.
func binomialU(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	var c uint64 = 1
	for i := 0; i < k; i++ {
		c = c * uint64(n-i) / uint64(i+1)
	}

	return c
}
