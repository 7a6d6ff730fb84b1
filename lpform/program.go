package lpform

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/transport/problem"
)

var (
	// ErrNilSpec is returned by Build when spec is nil.
	ErrNilSpec = errors.New("lpform: nil problem spec")

	// ErrDimensionMismatch is returned when a candidate solution vector does not
	// have one entry per variable.
	ErrDimensionMismatch = errors.New("lpform: dimension mismatch")
)

// Program is the standard-form equality LP of a transportation problem:
//
//	minimize   Cᵀx
//	subject to A·x = B
//	           Lower ≤ x ≤ Upper   (Lower = 0, Upper = +Inf)
//
// Variable k = i·n + j is the shipment from facility i to warehouse j.
// Rows 0..m−1 of A are the supply rows, rows m..m+n−1 the demand rows.
// A Program is never mutated after Build/Reduced return it.
type Program struct {
	C     []float64
	A     *mat.Dense
	B     []float64
	Lower []float64
	Upper []float64

	m, n    int
	supply  []float64
	demand  []float64
	reduced bool
}

// Build converts a validated spec into its standard-form LP.
//
// Build does not re-check the balance invariant; callers run
// spec.CheckBalance first (transport.Solve does). On an unbalanced spec the
// resulting Program is simply infeasible.
//
// Complexity: O(m·n·(m+n)) time and space for the dense A.
func Build(spec *problem.Spec) (*Program, error) {
	if spec == nil {
		return nil, ErrNilSpec
	}
	m, n := spec.Dims()
	costs := spec.Costs()
	vars := m * n
	rows := m + n

	p := &Program{
		C:      costs.RawCopy(),
		A:      mat.NewDense(rows, vars, nil),
		B:      make([]float64, 0, rows),
		Lower:  make([]float64, vars),
		Upper:  make([]float64, vars),
		m:      m,
		n:      n,
		supply: spec.Capacities(),
		demand: spec.Demands(),
	}

	// supply rows: Σ_j x[i][j] = capacity[i]
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			p.A.Set(i, i*n+j, 1)
		}
	}
	// demand rows: Σ_i x[i][j] = demand[j]
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			p.A.Set(m+j, i*n+j, 1)
		}
	}
	p.B = append(p.B, p.supply...)
	p.B = append(p.B, p.demand...)

	for k := range p.Upper {
		p.Upper[k] = math.Inf(1)
	}

	return p, nil
}

// Reduced returns a copy of the program without its last demand row.
//
// For a balanced problem the m+n equality rows have rank m+n−1: any one row is
// the difference of the sums of the others. Dense simplex codes need a full
// row rank A, so the redundant last row is dropped. The dropped constraint
// still holds for every x that satisfies the remaining rows.
//
// Calling Reduced on an already reduced program returns it unchanged.
func (p *Program) Reduced() *Program {
	if p.reduced {
		return p
	}
	rows, cols := p.A.Dims()
	a := mat.NewDense(rows-1, cols, nil)
	a.Copy(p.A.Slice(0, rows-1, 0, cols))

	return &Program{
		C:       append([]float64(nil), p.C...),
		A:       a,
		B:       append([]float64(nil), p.B[:rows-1]...),
		Lower:   append([]float64(nil), p.Lower...),
		Upper:   append([]float64(nil), p.Upper...),
		m:       p.m,
		n:       p.n,
		supply:  p.supply,
		demand:  p.demand,
		reduced: true,
	}
}

// IsReduced reports whether the redundant row has been dropped.
func (p *Program) IsReduced() bool { return p.reduced }

// Dims returns (facilities, warehouses).
func (p *Program) Dims() (m, n int) { return p.m, p.n }

// NumVars returns m·n.
func (p *Program) NumVars() int { return p.m * p.n }

// VarIndex maps a (facility, warehouse) pair to its variable index.
func (p *Program) VarIndex(i, j int) int { return i*p.n + j }

// Cell maps a variable index back to its (facility, warehouse) pair.
func (p *Program) Cell(k int) (i, j int) { return k / p.n, k % p.n }

// Cost returns the objective coefficient of x[i][j].
func (p *Program) Cost(i, j int) float64 { return p.C[i*p.n+j] }

// Supply returns the right-hand side of supply row i.
func (p *Program) Supply(i int) float64 { return p.supply[i] }

// Demand returns the right-hand side of demand row j. It is available even on
// a reduced program, where the row itself was dropped.
func (p *Program) Demand(j int) float64 { return p.demand[j] }

// Objective returns Cᵀx.
func (p *Program) Objective(x []float64) (float64, error) {
	if len(x) != len(p.C) {
		return 0, fmt.Errorf("objective: len(x)=%d, want %d: %w", len(x), len(p.C), ErrDimensionMismatch)
	}

	return floats.Dot(p.C, x), nil
}

// Residual returns max_r |(A·x − B)_r|.
//
// Complexity: O(rows·vars).
func (p *Program) Residual(x []float64) (float64, error) {
	if len(x) != len(p.C) {
		return 0, fmt.Errorf("residual: len(x)=%d, want %d: %w", len(x), len(p.C), ErrDimensionMismatch)
	}
	rows, _ := p.A.Dims()
	ax := mat.NewVecDense(rows, nil)
	ax.MulVec(p.A, mat.NewVecDense(len(x), append([]float64(nil), x...)))

	diff := make([]float64, rows)
	floats.SubTo(diff, ax.RawVector().Data, p.B)

	return floats.Norm(diff, math.Inf(1)), nil
}

// Feasible reports whether x satisfies every equality row and the lower
// bounds within tol, scaled by max(1, max|B|).
func (p *Program) Feasible(x []float64, tol float64) (bool, error) {
	res, err := p.Residual(x)
	if err != nil {
		return false, err
	}
	scale := 1.0
	if len(p.B) > 0 {
		scale = math.Max(scale, math.Max(floats.Max(p.B), -floats.Min(p.B)))
	}
	if res > tol*scale {
		return false, nil
	}
	for k, v := range x {
		if v < p.Lower[k]-tol*scale {
			return false, nil
		}
	}

	return true, nil
}
