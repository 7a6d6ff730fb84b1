package transport

// Node numbering of the bipartite supply/demand graph used throughout the
// solver: facility i is node i, warehouse j is node m+j. A basic cell
// k = i·n + j is the tree edge between nodes i and m+j.

// tableau is the per-solve mutable state. It is owned by exactly one solve
// call and never shared.
type tableau struct {
	m, n int
	cost []float64 // row-major unit costs, len m·n
	x    []float64 // current allocation, len m·n

	basic []bool // basic[k] marks basic cells
	cells []int  // basic cells, len m+n−1 once the basis is complete

	u, v []float64 // duals of facility and warehouse rows

	// scratch reused by every traversal
	adj    [][]int
	seen   []bool
	parent []int // tree edge (cell index) used to reach a node; −1 for the root
	queue  []int
}

func newTableau(m, n int, cost []float64) *tableau {
	nodes := m + n
	return &tableau{
		m:      m,
		n:      n,
		cost:   cost,
		x:      make([]float64, m*n),
		basic:  make([]bool, m*n),
		cells:  make([]int, 0, nodes-1),
		u:      make([]float64, m),
		v:      make([]float64, n),
		adj:    make([][]int, nodes),
		seen:   make([]bool, nodes),
		parent: make([]int, nodes),
		queue:  make([]int, 0, nodes),
	}
}

// addBasic marks cell k basic with value q.
func (t *tableau) addBasic(k int, q float64) {
	t.basic[k] = true
	t.x[k] = q
	t.cells = append(t.cells, k)
}

// removeBasic drops cell k from the basis and zeroes it.
func (t *tableau) removeBasic(k int) {
	t.basic[k] = false
	t.x[k] = 0
	for idx, c := range t.cells {
		if c == k {
			t.cells = append(t.cells[:idx], t.cells[idx+1:]...)
			return
		}
	}
}

// other returns the opposite endpoint of tree edge k seen from node.
func (t *tableau) other(k, node int) int {
	i, j := k/t.n, k%t.n
	if node == i {
		return t.m + j
	}

	return i
}

// rebuildAdjacency refreshes the adjacency lists from t.cells.
//
// Complexity: O(m+n).
func (t *tableau) rebuildAdjacency() {
	for node := range t.adj {
		t.adj[node] = t.adj[node][:0]
	}
	for _, k := range t.cells {
		i, j := k/t.n, k%t.n
		t.adj[i] = append(t.adj[i], k)
		t.adj[t.m+j] = append(t.adj[t.m+j], k)
	}
}

// walk runs a BFS over the basis tree from root, filling t.parent and t.seen,
// and calls visit(node, via) for every node reached through edge via.
// It returns the number of nodes reached (m+n for a spanning tree).
//
// Complexity: O(m+n).
func (t *tableau) walk(root int, visit func(node, via int)) int {
	for node := range t.seen {
		t.seen[node] = false
		t.parent[node] = -1
	}
	t.queue = append(t.queue[:0], root)
	t.seen[root] = true
	reached := 1
	for head := 0; head < len(t.queue); head++ {
		node := t.queue[head]
		for _, k := range t.adj[node] {
			next := t.other(k, node)
			if t.seen[next] {
				continue
			}
			t.seen[next] = true
			t.parent[next] = k
			reached++
			if visit != nil {
				visit(next, k)
			}
			t.queue = append(t.queue, next)
		}
	}

	return reached
}

// completeBasis tops the basis up to m+n−1 cells with zero-valued basic
// cells, scanning non-basic cells in row-major order and keeping each one that
// joins two different components (union-find). Every basis produced this way
// is a spanning tree of the bipartite graph, so the dual system stays
// non-singular. It returns the number of cells added.
//
// Complexity: O(m·n·α(m+n)).
func (t *tableau) completeBasis() int {
	nodes := t.m + t.n
	parent := make([]int, nodes)
	rank := make([]int, nodes)
	for node := range parent {
		parent[node] = node
	}
	find := func(a int) int {
		for parent[a] != a {
			parent[a] = parent[parent[a]]
			a = parent[a]
		}
		return a
	}
	union := func(a, b int) bool {
		ra, rb := find(a), find(b)
		if ra == rb {
			return false
		}
		if rank[ra] < rank[rb] {
			ra, rb = rb, ra
		}
		parent[rb] = ra
		if rank[ra] == rank[rb] {
			rank[ra]++
		}
		return true
	}

	for _, k := range t.cells {
		union(k/t.n, t.m+k%t.n)
	}

	added := 0
	for k := 0; k < t.m*t.n && len(t.cells) < nodes-1; k++ {
		if t.basic[k] {
			continue
		}
		if union(k/t.n, t.m+k%t.n) {
			t.addBasic(k, 0)
			added++
		}
	}

	return added
}

// zeroBasics counts basic cells whose value is within qtol of zero.
func (t *tableau) zeroBasics(qtol float64) int {
	cnt := 0
	for _, k := range t.cells {
		if t.x[k] <= qtol {
			cnt++
		}
	}

	return cnt
}

// objective returns Σ cost·x over basic cells (non-basic cells are zero).
func (t *tableau) objective() float64 {
	var z float64
	for _, k := range t.cells {
		z += t.cost[k] * t.x[k]
	}

	return z
}
