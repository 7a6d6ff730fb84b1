package transport

import "github.com/katalvlaran/transport/matrix"

// Plan is an immutable shipment matrix: entry (i, j) is the number of units
// shipped from facility i to warehouse j.
type Plan struct {
	d *matrix.Dense
}

func newPlan(m, n int, x []float64) (*Plan, error) {
	d, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, err
	}
	for k, v := range x {
		if err = d.Set(k/n, k%n, v); err != nil {
			return nil, err
		}
	}

	return &Plan{d: d}, nil
}

// Dims returns (facilities, warehouses).
func (p *Plan) Dims() (m, n int) { return p.d.Shape() }

// At returns the shipment from facility i to warehouse j.
// Out-of-range indices return matrix.ErrOutOfRange.
func (p *Plan) At(i, j int) (float64, error) { return p.d.At(i, j) }

// Rows returns a copy of the plan as [][]float64.
func (p *Plan) Rows() [][]float64 { return p.d.ToRows() }

// Flat returns a copy of the plan in variable order (index i·n + j).
func (p *Plan) Flat() []float64 { return p.d.RawCopy() }

// Shipped returns Σ_j plan[i][j] for every facility.
func (p *Plan) Shipped() []float64 { return p.d.RowSums() }

// Received returns Σ_i plan[i][j] for every warehouse.
func (p *Plan) Received() []float64 { return p.d.ColSums() }

// Total returns the total number of units shipped.
func (p *Plan) Total() float64 {
	var s float64
	for _, v := range p.d.RowSums() {
		s += v
	}

	return s
}

func (p *Plan) String() string { return p.d.String() }
