package transport_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/transport/problem"
	"github.com/katalvlaran/transport/transport"
)

// benchSpec builds a deterministic m×n instance; inputs are prepared outside
// the timer.
func benchSpec(b *testing.B, m, n int) *problem.Spec {
	b.Helper()
	rng := rand.New(rand.NewSource(1))
	caps := make([]float64, m)
	var total float64
	for i := range caps {
		caps[i] = float64(10 + rng.Intn(90))
		total += caps[i]
	}
	dems := make([]float64, n)
	per := total / float64(n)
	for j := range dems {
		dems[j] = per
	}
	dems[n-1] = total - per*float64(n-1)
	costs := make([][]float64, m)
	for i := range costs {
		costs[i] = make([]float64, n)
		for j := range costs[i] {
			costs[i][j] = float64(1 + rng.Intn(100))
		}
	}
	return mustSpec(b, caps, dems, costs)
}

func BenchmarkSolve(b *testing.B) {
	for _, size := range [][2]int{{10, 10}, {30, 40}, {80, 100}} {
		spec := benchSpec(b, size[0], size[1])
		for _, init := range inits {
			b.Run(fmt.Sprintf("%dx%d/%s", size[0], size[1], init), func(b *testing.B) {
				opts := transport.DefaultOptions()
				opts.Init = init
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					out := transport.Solve(context.Background(), spec, opts)
					if !out.IsOptimal() {
						b.Fatalf("status %v: %s", out.Status, out.Reason)
					}
				}
			})
		}
	}
}
