// Package lpform builds the standard-form linear program of a balanced
// transportation problem.
//
// Given a problem.Spec with m facilities and n warehouses, Build produces:
//
//	variables   x[i·n + j] ≥ 0, one per (facility, warehouse) pair (row-major)
//	objective   minimize Σ cost[i][j] · x[i][j]
//	supply rows Σ_j x[i][j] = capacity[i]          (rows 0 .. m−1)
//	demand rows Σ_i x[i][j] = demand[j]            (rows m .. m+n−1)
//
// The equality matrix is stored as a gonum *mat.Dense. Its rank is m+n−1 for a
// balanced instance; Program.Reduced drops the redundant last row for
// consumers that need full row rank.
//
// Build is a pure transformation: no I/O, no shared state, and it never
// re-validates what problem.New already guaranteed.
//
// The transportation solver in package transport reads the structure
// (costs, supplies, demands) back out of the Program rather than working on
// the dense A; Residual and Feasible use A to verify the plan it returns.
package lpform
