package dijkstra_test

import (
	"math/rand"
	"testing"

	"github.com/appliedgrg/bera-tools/costgrid"
	"github.com/appliedgrg/bera-tools/dijkstra"
	"gonum.org/v1/gonum/mat"
)

// randomGrid returns an n×n grid with costs in [1,10) and about 5 %
// impassable cells, from a fixed seed.
func randomGrid(b *testing.B, n int) *costgrid.Grid {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	data := make([]float64, n*n)
	for i := range data {
		data[i] = 1 + 9*rng.Float64()
		if rng.Intn(20) == 0 {
			data[i] = costgrid.Floor
		}
	}
	data[0], data[n*n-1] = 1, 1
	g, err := costgrid.New(mat.NewDense(n, n, data), costgrid.Floor)
	if err != nil {
		b.Fatalf("setup costgrid.New failed: %v", err)
	}
	return g
}

// BenchmarkShortest measures a corner-to-corner search on a 500×500 grid.
// Complexity: O(N log N)
func BenchmarkShortest(b *testing.B) {
	const n = 500
	g := randomGrid(b, n)
	dst := []costgrid.Cell{{Row: n - 1, Col: n - 1}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dijkstra.Shortest(g, costgrid.Cell{}, dst)
	}
}

// BenchmarkRoute measures the gonum strategy on a 200×200 grid; graph
// construction dominates.
func BenchmarkRoute(b *testing.B) {
	const n = 200
	g := randomGrid(b, n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dijkstra.Route(g, costgrid.Cell{}, costgrid.Cell{Row: n - 1, Col: n - 1})
	}
}

// BenchmarkAccumulate measures a full single-seed cost field on 500×500.
func BenchmarkAccumulate(b *testing.B) {
	g := randomGrid(b, 500)
	seeds := []costgrid.Cell{{Row: 250, Col: 250}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dijkstra.Accumulate(g, seeds)
	}
}
