package partition_test

import (
	"fmt"

	"github.com/katalvlaran/lvpart/partition"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleSolve
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Four equal weights split into two contiguous groups.
//	  weights = [4, 4, 4, 4], labels = [a, b, c, d], K = 2
//
// Candidates (cut after index 0, 1, 2):
//
//	[4 | 12] var 32, [8 | 8] var 0, [12 | 4] var 32
//
// Complexity: O(C(N-1,K-1)·K)
func ExampleSolve() {
	res, err := partition.Solve(
		[]float64{4, 4, 4, 4},
		[]string{"a", "b", "c", "d"},
		2,
	)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("combinations=%d ties=%v\n", res.CombinationsSearched, res.Ties)
	fmt.Printf("variance=%g\n", res.MinimumVariance)
	fmt.Printf("sums=%v\n", res.GroupSampleSizes)
	fmt.Printf("groups=%v\n", res.GroupMembership)
	// Output:
	// combinations=3 ties=false
	// variance=0
	// sums=[8 8]
	// groups=[[a b] [c d]]
}

// ExampleSolve_ties shows that the first tuple at the minimum is kept when a
// later tuple ties with it.
func ExampleSolve_ties() {
	res, err := partition.Solve([]float64{1, 2, 1}, []string{"a", "b", "c"}, 2)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("ties=%v cuts=%v groups=%v\n", res.Ties, res.Cuts, res.GroupMembership)
	// Output:
	// ties=true cuts=[0] groups=[[a] [b c]]
}

// ExampleSolve_errors distinguishes caller mistakes from internal failures.
func ExampleSolve_errors() {
	_, err := partition.Solve([]float64{1, 2}, []string{"a", "b"}, 3)
	fmt.Println(partition.IsInputError(err), partition.IsInternalError(err))

	_, err = partition.Solve([]float64{1, 2, 1}, []string{"a", "b", "c"}, 2,
		partition.WithSentinel(1))
	fmt.Println(partition.IsInputError(err), partition.IsInternalError(err))
	// Output:
	// true false
	// false true
}

// ExampleCount sizes a search before running it.
func ExampleCount() {
	total, err := partition.Count(19, 4) // N=20 items, K=5 groups
	fmt.Println(total, err)
	// Output:
	// 3876 <nil>
}
