package transport

import "math"

// allocState tracks residual supplies/demands and which lines (rows and
// columns) are still open while the initial solution is built.
type allocState struct {
	m, n     int
	cost     []float64
	supply   []float64
	demand   []float64
	rowOpen  []bool
	colOpen  []bool
	openRows int
	openCols int
}

// selector picks the next cell (i, j) among open rows × open columns.
type selector func(st *allocState) (i, j int)

func selectorFor(method InitMethod) selector {
	switch method {
	case NorthwestCorner:
		return selectNorthwest
	case Vogel:
		return selectVogel
	default:
		return selectLeastCost
	}
}

// initialBasis fills t with an initial basic feasible solution.
//
// Every step allocates min(residual supply, residual demand) to the selected
// cell and closes exactly one line; the final step closes the last row and
// the last column together. That gives exactly m+n−1 allocations, and because
// each allocated cell is the last one placed in the line it closed, they form
// a spanning tree. When a supply and a demand run out at the same time only
// one line is closed and the other is later served by a zero-valued basic
// cell, which is how degenerate instances keep a non-singular basis.
//
// Complexity: O((m+n)·m·n) for LeastCost, O((m+n)·(m+n)) for Northwest,
// O((m+n)·m·n) for Vogel.
func initialBasis(t *tableau, supply, demand []float64, method InitMethod) {
	st := &allocState{
		m:        t.m,
		n:        t.n,
		cost:     t.cost,
		supply:   append([]float64(nil), supply...),
		demand:   append([]float64(nil), demand...),
		rowOpen:  make([]bool, t.m),
		colOpen:  make([]bool, t.n),
		openRows: t.m,
		openCols: t.n,
	}
	for i := range st.rowOpen {
		st.rowOpen[i] = true
	}
	for j := range st.colOpen {
		st.colOpen[j] = true
	}

	pick := selectorFor(method)
	for st.openRows > 0 && st.openCols > 0 {
		i, j := pick(st)
		q := math.Max(0, math.Min(st.supply[i], st.demand[j]))
		t.addBasic(i*t.n+j, q)
		st.supply[i] -= q
		st.demand[j] -= q

		switch {
		case st.openRows == 1 && st.openCols == 1:
			st.closeRow(i)
			st.closeCol(j)
		case st.openCols == 1:
			st.closeRow(i)
		case st.openRows == 1:
			st.closeCol(j)
		case st.supply[i] <= st.demand[j]:
			st.closeRow(i)
		default:
			st.closeCol(j)
		}
	}
}

func (st *allocState) closeRow(i int) {
	st.rowOpen[i] = false
	st.openRows--
}

func (st *allocState) closeCol(j int) {
	st.colOpen[j] = false
	st.openCols--
}

// selectNorthwest returns the top-left open cell.
func selectNorthwest(st *allocState) (int, int) {
	i, j := 0, 0
	for !st.rowOpen[i] {
		i++
	}
	for !st.colOpen[j] {
		j++
	}

	return i, j
}

// selectLeastCost returns the cheapest open cell; ties go to the lowest
// row, then the lowest column.
func selectLeastCost(st *allocState) (int, int) {
	bi, bj := -1, -1
	best := math.Inf(1)
	for i := 0; i < st.m; i++ {
		if !st.rowOpen[i] {
			continue
		}
		for j := 0; j < st.n; j++ {
			if st.colOpen[j] && st.cost[i*st.n+j] < best {
				best, bi, bj = st.cost[i*st.n+j], i, j
			}
		}
	}

	return bi, bj
}

// selectVogel implements Vogel's approximation. The penalty of an open line
// is the gap between its two cheapest open cells (the cheapest cost itself
// when only one cell is open). The line with the largest penalty wins, rows
// before columns and lower indices first on ties; the cheapest open cell of
// that line is returned.
func selectVogel(st *allocState) (int, int) {
	bestPenalty := -1.0
	line, isRow := -1, true

	for i := 0; i < st.m; i++ {
		if !st.rowOpen[i] {
			continue
		}
		if p := st.rowPenalty(i); p > bestPenalty {
			bestPenalty, line, isRow = p, i, true
		}
	}
	for j := 0; j < st.n; j++ {
		if !st.colOpen[j] {
			continue
		}
		if p := st.colPenalty(j); p > bestPenalty {
			bestPenalty, line, isRow = p, j, false
		}
	}

	if isRow {
		return line, st.cheapestInRow(line)
	}

	return st.cheapestInCol(line), line
}

func (st *allocState) rowPenalty(i int) float64 {
	first, second := math.Inf(1), math.Inf(1)
	for j := 0; j < st.n; j++ {
		if !st.colOpen[j] {
			continue
		}
		c := st.cost[i*st.n+j]
		if c < first {
			first, second = c, first
		} else if c < second {
			second = c
		}
	}
	if math.IsInf(second, 1) {
		return first
	}

	return second - first
}

func (st *allocState) colPenalty(j int) float64 {
	first, second := math.Inf(1), math.Inf(1)
	for i := 0; i < st.m; i++ {
		if !st.rowOpen[i] {
			continue
		}
		c := st.cost[i*st.n+j]
		if c < first {
			first, second = c, first
		} else if c < second {
			second = c
		}
	}
	if math.IsInf(second, 1) {
		return first
	}

	return second - first
}

func (st *allocState) cheapestInRow(i int) int {
	bj := -1
	best := math.Inf(1)
	for j := 0; j < st.n; j++ {
		if st.colOpen[j] && st.cost[i*st.n+j] < best {
			best, bj = st.cost[i*st.n+j], j
		}
	}

	return bj
}

func (st *allocState) cheapestInCol(j int) int {
	bi := -1
	best := math.Inf(1)
	for i := 0; i < st.m; i++ {
		if st.rowOpen[i] && st.cost[i*st.n+j] < best {
			best, bi = st.cost[i*st.n+j], i
		}
	}

	return bi
}
