package transport

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textbook 3×4 instance: optimal cost 2850, northwest start 4400.
var (
	tbSupply = []float64{300, 400, 500}
	tbDemand = []float64{250, 350, 400, 200}
	tbCost   = []float64{
		3, 1, 7, 4,
		2, 6, 5, 9,
		8, 3, 3, 2,
	}
)

func cellsOf(t *tableau) map[[2]int]float64 {
	out := make(map[[2]int]float64, len(t.cells))
	for _, k := range t.cells {
		out[[2]int{k / t.n, k % t.n}] = t.x[k]
	}
	return out
}

func TestInitialBasis_NorthwestDegenerate(t *testing.T) {
	tb := newTableau(2, 2, []float64{1, 2, 2, 1})
	initialBasis(tb, []float64{10, 10}, []float64{10, 10}, NorthwestCorner)

	require.Len(t, tb.cells, 3)
	assert.Equal(t, map[[2]int]float64{
		{0, 0}: 10,
		{1, 0}: 0,
		{1, 1}: 10,
	}, cellsOf(tb))
	assert.Equal(t, 1, tb.zeroBasics(1e-9))
	assert.Equal(t, 0, tb.completeBasis(), "a closed-line basis is already spanning")
	assert.True(t, tb.computeDuals())
}

func TestInitialBasis_LeastCostDegenerate(t *testing.T) {
	tb := newTableau(2, 2, []float64{1, 2, 2, 1})
	initialBasis(tb, []float64{10, 10}, []float64{10, 10}, LeastCost)

	assert.Equal(t, map[[2]int]float64{
		{0, 0}: 10,
		{1, 1}: 10,
		{1, 0}: 0,
	}, cellsOf(tb))
}

func TestInitialBasis_NorthwestTextbook(t *testing.T) {
	tb := newTableau(3, 4, append([]float64(nil), tbCost...))
	initialBasis(tb, tbSupply, tbDemand, NorthwestCorner)

	assert.Equal(t, map[[2]int]float64{
		{0, 0}: 250, {0, 1}: 50,
		{1, 1}: 300, {1, 2}: 100,
		{2, 2}: 300, {2, 3}: 200,
	}, cellsOf(tb))
	assert.Equal(t, 4400.0, tb.objective())
}

func TestInitialBasis_DoesNotMutateInputs(t *testing.T) {
	supply := []float64{20, 30}
	demand := []float64{25, 25}
	tb := newTableau(2, 2, []float64{4, 6, 8, 2})
	initialBasis(tb, supply, demand, Vogel)

	assert.Equal(t, []float64{20, 30}, supply)
	assert.Equal(t, []float64{25, 25}, demand)
}

func TestSelectVogel_PicksLargestPenalty(t *testing.T) {
	// row penalties 1, 5; column penalties 5, 5, 2: row 1 wins the tie and
	// its cheapest open cell is (1,2)
	st := &allocState{
		m: 2, n: 3,
		cost:     []float64{2, 3, 4, 7, 8, 2},
		rowOpen:  []bool{true, true},
		colOpen:  []bool{true, true, true},
		openRows: 2, openCols: 3,
	}
	i, j := selectVogel(st)
	assert.Equal(t, 1, i)
	assert.Equal(t, 2, j)

	// with column 2 closed the penalties are rows 1, 1 and columns 5, 5:
	// the first column wins the tie
	st.colOpen[2] = false
	st.openCols--
	i, j = selectVogel(st)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0, j)
}

func TestCompleteBasis_Forest(t *testing.T) {
	tb := newTableau(2, 3, make([]float64, 6))
	tb.addBasic(0, 5) // (0,0)
	tb.addBasic(5, 5) // (1,2)
	require.False(t, tb.computeDuals(), "two cells cannot span five nodes")

	added := tb.completeBasis()
	require.Equal(t, 2, added)
	require.Len(t, tb.cells, 4)
	// row-major scan: (0,1) joins {F0,W0} with W1, (0,2) then joins {F1,W2}
	assert.True(t, tb.basic[1])
	assert.True(t, tb.basic[2])
	assert.Zero(t, tb.x[1])
	assert.Zero(t, tb.x[2])
	assert.True(t, tb.computeDuals())
}

func TestCompleteBasis_Empty(t *testing.T) {
	tb := newTableau(3, 2, make([]float64, 6))
	require.Equal(t, 4, tb.completeBasis())
	assert.True(t, tb.computeDuals())
}

func TestPivot_TextbookFirstStep(t *testing.T) {
	tb := newTableau(3, 4, append([]float64(nil), tbCost...))
	initialBasis(tb, tbSupply, tbDemand, NorthwestCorner)
	require.True(t, tb.computeDuals())

	assert.Equal(t, []float64{0, 5, 3}, tb.u)
	assert.Equal(t, []float64{3, 1, 0, -1}, tb.v)

	enter, d := tb.price(MostNegative, 1e-9)
	require.Equal(t, 4, enter) // (1,0)
	assert.Equal(t, -6.0, d)

	first, _ := tb.price(FirstNegative, 1e-9)
	assert.Equal(t, 4, first)

	path := tb.cycle(enter)
	// (0,0) −, (0,1) +, (1,1) −
	require.Equal(t, []int{0, 1, 5}, path)

	res := tb.pivot(enter, path, 1e-9)
	assert.Equal(t, 250.0, res.theta)
	assert.Equal(t, 0, res.leave)
	assert.False(t, tb.basic[0])
	assert.True(t, tb.basic[4])
	assert.Len(t, tb.cells, 6)
	assert.Equal(t, 2900.0, tb.objective())
}

func TestPivot_TieLeavesLowestCell(t *testing.T) {
	// both "−" cells carry 10: the lower index leaves, the other stays basic
	// at zero
	tb := newTableau(2, 2, []float64{5, 1, 1, 5})
	tb.addBasic(0, 10)
	tb.addBasic(1, 0)
	tb.addBasic(3, 10)
	require.True(t, tb.computeDuals())
	enter, d := tb.price(MostNegative, 1e-9)
	require.Equal(t, 2, enter)
	require.Less(t, d, 0.0)

	path := tb.cycle(enter)
	require.Equal(t, []int{0, 1, 3}, path)
	res := tb.pivot(enter, path, 1e-9)
	assert.Equal(t, 10.0, res.theta)
	assert.Equal(t, 0, res.leave)
	assert.True(t, tb.basic[3])
	assert.Zero(t, tb.x[3])
	assert.Equal(t, 10.0, tb.x[1])
	assert.Equal(t, 10.0, tb.x[2])
}

func TestTrimExcess(t *testing.T) {
	q := []float64{5, 2, 1}
	trimExcess(q, 2.5)
	assert.Equal(t, []float64{5, 0.5, 0}, q)

	q = []float64{3}
	trimExcess(q, 0)
	assert.Equal(t, []float64{3}, q)
}

// randomBalanced returns supplies and demands with equal totals and a cost
// vector with integer entries.
func randomBalanced(rng *rand.Rand, m, n int) (supply, demand, cost []float64) {
	supply = make([]float64, m)
	demand = make([]float64, n)
	cost = make([]float64, m*n)
	var total float64
	for i := range supply {
		supply[i] = float64(1 + rng.Intn(50))
		total += supply[i]
	}
	left := total
	for j := 0; j < n-1; j++ {
		demand[j] = math.Floor(left * rng.Float64() / 2)
		left -= demand[j]
	}
	demand[n-1] = left
	for k := range cost {
		cost[k] = float64(rng.Intn(20))
	}
	return supply, demand, cost
}

// Every initial basis is a spanning tree, and iterating to optimality leaves
// complementary slackness: basic cells have zero reduced cost, others are ≥ 0.
func TestTableau_SpanningAndOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 60; trial++ {
		m, n := 1+rng.Intn(5), 1+rng.Intn(5)
		supply, demand, cost := randomBalanced(rng, m, n)
		for _, method := range []InitMethod{NorthwestCorner, LeastCost, Vogel} {
			tb := newTableau(m, n, append([]float64(nil), cost...))
			initialBasis(tb, supply, demand, method)
			tb.completeBasis()
			require.Len(t, tb.cells, m+n-1, "trial %d %v", trial, method)
			require.True(t, tb.computeDuals(), "trial %d %v", trial, method)

			for it := 0; ; it++ {
				require.Less(t, it, 1000)
				enter, _ := tb.price(MostNegative, 1e-9)
				if enter < 0 {
					break
				}
				path := tb.cycle(enter)
				require.NotNil(t, path)
				tb.pivot(enter, path, 1e-9)
				require.True(t, tb.computeDuals())
			}

			assert.GreaterOrEqual(t, tb.minReducedCost(), -1e-9)
			for _, k := range tb.cells {
				assert.InDelta(t, 0, tb.reducedCost(k), 1e-9)
				assert.GreaterOrEqual(t, tb.x[k], 0.0)
			}
		}
	}
}
