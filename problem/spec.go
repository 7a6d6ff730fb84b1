package problem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/transport/matrix"
)

// Spec is a validated, immutable transportation problem: facilities,
// warehouses and the unit cost matrix indexed consistently with both lists
// (row i = Facilities()[i], column j = Warehouses()[j]).
//
// A Spec is safe for concurrent readers; every accessor returns a copy.
type Spec struct {
	facilities []Facility
	warehouses []Warehouse
	costs      *matrix.Dense
	balanceTol float64
}

// New validates its inputs and builds a Spec.
//
// The slices stand in for the ordered name→quantity mappings of the problem
// statement: their order fixes the row/column order of costs.
//
// Errors (matched with errors.Is):
//   - ErrNoFacilities, ErrNoWarehouses
//   - ErrEmptyName, ErrDuplicateName
//   - ErrNonFinite, ErrNegativeQuantity, ErrNegativeCost
//   - ErrMalformedCost (as *CostShapeError)
//
// Balance is deliberately not checked here; see CheckBalance.
//
// Complexity: O(m*n).
func New(facilities []Facility, warehouses []Warehouse, costs [][]float64, opts ...Option) (*Spec, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateAll(facilities, warehouses, costs); err != nil {
		return nil, err
	}

	cm, err := matrix.NewDenseFromRows(costs)
	if err != nil {
		// unreachable after validateAll, kept to surface matrix sentinels if the
		// two validators ever drift apart
		return nil, fmt.Errorf("%w: %w", ErrMalformedCost, err)
	}

	s := &Spec{
		facilities: append([]Facility(nil), facilities...),
		warehouses: append([]Warehouse(nil), warehouses...),
		costs:      cm,
		balanceTol: o.balanceTol,
	}

	return s, nil
}

// Dims returns (facilities, warehouses).
func (s *Spec) Dims() (m, n int) { return len(s.facilities), len(s.warehouses) }

// Facilities returns a copy of the facility list.
func (s *Spec) Facilities() []Facility { return append([]Facility(nil), s.facilities...) }

// Warehouses returns a copy of the warehouse list.
func (s *Spec) Warehouses() []Warehouse { return append([]Warehouse(nil), s.warehouses...) }

// FacilityNames returns facility names in row order.
func (s *Spec) FacilityNames() []string {
	out := make([]string, len(s.facilities))
	for i, f := range s.facilities {
		out[i] = f.Name
	}

	return out
}

// WarehouseNames returns warehouse names in column order.
func (s *Spec) WarehouseNames() []string {
	out := make([]string, len(s.warehouses))
	for j, w := range s.warehouses {
		out[j] = w.Name
	}

	return out
}

// Capacities returns facility capacities in row order.
func (s *Spec) Capacities() []float64 {
	out := make([]float64, len(s.facilities))
	for i, f := range s.facilities {
		out[i] = f.Capacity
	}

	return out
}

// Demands returns warehouse demands in column order.
func (s *Spec) Demands() []float64 {
	out := make([]float64, len(s.warehouses))
	for j, w := range s.warehouses {
		out[j] = w.Demand
	}

	return out
}

// Costs returns a copy of the cost matrix.
func (s *Spec) Costs() *matrix.Dense { return s.costs.Clone() }

// Cost returns the unit cost from facility i to warehouse j.
func (s *Spec) Cost(i, j int) (float64, error) { return s.costs.At(i, j) }

// TotalSupply returns Σ capacity.
func (s *Spec) TotalSupply() float64 { return floats.Sum(s.Capacities()) }

// TotalDemand returns Σ demand.
func (s *Spec) TotalDemand() float64 { return floats.Sum(s.Demands()) }

// BalanceTolerance returns the relative tolerance used by CheckBalance.
func (s *Spec) BalanceTolerance() float64 { return s.balanceTol }

// CheckBalance returns nil when the problem is balanced within tolerance:
//
//	|Σcap − Σdem| ≤ tol · max(1, Σcap, Σdem)
//
// and a *MismatchError (Is ErrSupplyDemandMismatch) otherwise.
//
// Complexity: O(m+n).
func (s *Spec) CheckBalance() error {
	supply, demand := s.TotalSupply(), s.TotalDemand()
	scale := math.Max(1, math.Max(supply, demand))
	if math.Abs(supply-demand) > s.balanceTol*scale {
		return &MismatchError{Supply: supply, Demand: demand}
	}

	return nil
}

// Balanced reports whether CheckBalance would succeed.
func (s *Spec) Balanced() bool { return s.CheckBalance() == nil }
