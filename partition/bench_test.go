package partition_test

import (
	"testing"

	"github.com/katalvlaran/lvpart/builder"
	"github.com/katalvlaran/lvpart/partition"
)

// benchmarkSolve builds n uniform items once and solves them for k groups
// with opts. Setup is excluded from the timer.
func benchmarkSolve(b *testing.B, n, k int, opts ...partition.Option) {
	items, err := builder.BuildItems(n, seedDet, builder.WithUniformWeight(1, 100))
	if err != nil {
		b.Fatalf("BuildItems failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = partition.Solve(items.Weights, items.Labels, k, opts...); err != nil {
			b.Fatalf("Solve failed: %v", err)
		}
	}
}

// BenchmarkSolve_N20K4 scores C(19,3)=969 tuples.
func BenchmarkSolve_N20K4(b *testing.B) { benchmarkSolve(b, 20, 4) }

// BenchmarkSolve_N30K5 scores C(29,4)=23751 tuples.
func BenchmarkSolve_N30K5(b *testing.B) { benchmarkSolve(b, 30, 5) }

// BenchmarkSolve_N40K5_Parallel4 scores C(39,4)=82251 tuples on 4 workers.
func BenchmarkSolve_N40K5_Parallel4(b *testing.B) {
	benchmarkSolve(b, 40, 5, partition.WithWorkers(4))
}

// BenchmarkSolve_N40K5_Sequential is the single-worker baseline for the above.
func BenchmarkSolve_N40K5_Sequential(b *testing.B) { benchmarkSolve(b, 40, 5) }

// BenchmarkEnumerator_Next measures the successor step alone.
func BenchmarkEnumerator_Next(b *testing.B) {
	e, err := partition.NewEnumerator(39, 4)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !e.Next() {
			e.Reset()
		}
	}
}
