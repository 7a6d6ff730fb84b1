// Package transport solves balanced transportation problems with the
// transportation simplex (the MODI / u-v method).
//
// Pipeline:
//
//	problem.Spec ──CheckBalance──► lpform.Build ──► SolveProgram ──► Outcome
//
// Solve runs all of it; SolveProgram starts from an already built
// lpform.Program.
//
// Algorithm:
//
//   - Initial basic feasible solution by NorthwestCorner, LeastCost (default)
//     or Vogel. Every allocation closes exactly one line, so the m+n−1 basic
//     cells always form a spanning tree of the facility/warehouse graph;
//     simultaneous exhaustion of a supply and a demand shows up as a
//     zero-valued basic cell, never as an error.
//   - Duals u, v from a tree walk rooted at facility 0 (u₀ = 0); reduced cost
//     dᵢⱼ = cᵢⱼ − uᵢ − vⱼ. The basis is optimal once every dᵢⱼ ≥ −tol.
//   - Entering cell by Pricing (MostNegative or FirstNegative, ties to the
//     lowest row then column). The cycle is the tree path between the
//     entering cell's row and column; θ is the smallest "−" value and the
//     leaving cell is the lowest-indexed "−" cell at θ.
//   - The pivot loop is capped (Options.MaxIterations, or
//     max(IterationFactor·(m+n), MinIterationCap)); hitting the cap yields
//     Status Failed with ErrIterationLimit.
//
// Outcome never carries a half-built plan: Plan is set only for Optimal.
// Infeasible (supply/demand mismatch) and Failed keep the reason string and
// the underlying error for errors.Is.
//
// Every solve owns its working state, so concurrent calls on the same Spec or
// Program are safe. Cancellation is cooperative: ctx is checked before each
// pivot.
//
// Complexity: O(m·n) per pivot plus O((m+n)·m·n) for the initial basis;
// memory O(m·n).
package transport
