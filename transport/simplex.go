package transport

import "math"

// computeDuals solves u_i + v_j = cost_ij over the basic cells with u_0 = 0
// by walking the basis tree from facility 0. It reports false when the basis
// does not span every node (the system would be singular).
//
// Complexity: O(m+n).
func (t *tableau) computeDuals() bool {
	t.rebuildAdjacency()
	t.u[0] = 0
	reached := t.walk(0, func(node, via int) {
		i, j := via/t.n, via%t.n
		if node >= t.m {
			t.v[j] = t.cost[via] - t.u[i]
		} else {
			t.u[i] = t.cost[via] - t.v[j]
		}
	})

	return reached == t.m+t.n
}

// reducedCost returns cost_ij − u_i − v_j.
func (t *tableau) reducedCost(k int) float64 {
	return t.cost[k] - t.u[k/t.n] - t.v[k%t.n]
}

// price scans non-basic cells in row-major order and returns the entering
// cell and its reduced cost, or −1 when every reduced cost is ≥ −tol
// (the current basis is optimal). Ties keep the lowest row, then column.
//
// Complexity: O(m·n).
func (t *tableau) price(rule Pricing, tol float64) (int, float64) {
	enter, best := -1, -tol
	for k := 0; k < t.m*t.n; k++ {
		if t.basic[k] {
			continue
		}
		d := t.reducedCost(k)
		if d >= best {
			continue
		}
		if rule == FirstNegative {
			return k, d
		}
		enter, best = k, d
	}
	if enter < 0 {
		return -1, 0
	}

	return enter, best
}

// minReducedCost returns the smallest reduced cost over non-basic cells
// (+Inf when every cell is basic). At optimality it is ≥ −tol; the solved
// log line reports it.
func (t *tableau) minReducedCost() float64 {
	best := math.Inf(1)
	for k := 0; k < t.m*t.n; k++ {
		if !t.basic[k] {
			best = math.Min(best, t.reducedCost(k))
		}
	}

	return best
}

// cycle returns the basic cells of the closed loop created by adding cell
// enter, ordered from the warehouse end: cycle[0], cycle[2], … receive −θ and
// cycle[1], cycle[3], … receive +θ. The entering cell itself (+θ) is not
// included. It returns nil when the basis does not connect the two endpoints.
//
// Complexity: O(m+n).
func (t *tableau) cycle(enter int) []int {
	i, j := enter/t.n, enter%t.n
	t.rebuildAdjacency()
	t.walk(i, nil)

	target := t.m + j
	if !t.seen[target] {
		return nil
	}
	var path []int
	for node := target; node != i; {
		k := t.parent[node]
		path = append(path, k)
		node = t.other(k, node)
	}

	return path
}

// pivotResult summarises one basis exchange.
type pivotResult struct {
	enter, leave int
	theta        float64
}

// pivot moves θ units around the cycle of enter and swaps the leaving cell
// out of the basis. θ is the smallest value among "−" cells; the leaving cell
// is the "−" cell within qtol of θ with the lowest (row, col). Other "−"
// cells that drop below zero through rounding are clamped to zero and stay
// basic.
func (t *tableau) pivot(enter int, path []int, qtol float64) pivotResult {
	theta := math.Inf(1)
	for idx := 0; idx < len(path); idx += 2 {
		theta = math.Min(theta, t.x[path[idx]])
	}
	leave := -1
	for idx := 0; idx < len(path); idx += 2 {
		k := path[idx]
		if t.x[k] <= theta+qtol && (leave < 0 || k < leave) {
			leave = k
		}
	}

	for idx, k := range path {
		if idx%2 == 0 {
			t.x[k] -= theta
			if t.x[k] < 0 {
				t.x[k] = 0
			}
		} else {
			t.x[k] += theta
		}
	}
	t.removeBasic(leave)
	t.addBasic(enter, theta)

	return pivotResult{enter: enter, leave: leave, theta: theta}
}
