package problem

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every construction failure wraps exactly one of these.
var (
	// ErrMalformedCost is returned when the cost matrix does not have one row per
	// facility and one column per warehouse. See CostShapeError for details.
	ErrMalformedCost = errors.New("problem: malformed cost matrix")

	// ErrSupplyDemandMismatch is returned by CheckBalance when total capacity and
	// total demand differ beyond the balance tolerance. See MismatchError.
	ErrSupplyDemandMismatch = errors.New("problem: supply/demand mismatch")

	// ErrNoFacilities is returned when the facility list is empty.
	ErrNoFacilities = errors.New("problem: no facilities")

	// ErrNoWarehouses is returned when the warehouse list is empty.
	ErrNoWarehouses = errors.New("problem: no warehouses")

	// ErrEmptyName is returned when a facility or warehouse has an empty name.
	ErrEmptyName = errors.New("problem: empty name")

	// ErrDuplicateName is returned when two facilities (or two warehouses) share a name.
	ErrDuplicateName = errors.New("problem: duplicate name")

	// ErrNegativeQuantity is returned for a negative capacity or demand.
	ErrNegativeQuantity = errors.New("problem: negative quantity")

	// ErrNegativeCost is returned for a negative unit cost.
	ErrNegativeCost = errors.New("problem: negative cost")

	// ErrNonFinite is returned for NaN or ±Inf quantities and costs.
	ErrNonFinite = errors.New("problem: non-finite value")
)

// Facility is a supply node.
type Facility struct {
	Name     string
	Capacity float64
}

// Warehouse is a demand node.
type Warehouse struct {
	Name   string
	Demand float64
}

// CostShapeError describes a cost matrix whose shape disagrees with the
// facility/warehouse lists. Row is -1 when the number of rows is wrong;
// otherwise it is the index of the first row with the wrong length.
type CostShapeError struct {
	Row       int
	Got, Want int
}

func (e *CostShapeError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("problem: malformed cost matrix: %d rows, want %d (one per facility)", e.Got, e.Want)
	}

	return fmt.Sprintf("problem: malformed cost matrix: row %d has %d values, want %d (one per warehouse)", e.Row, e.Got, e.Want)
}

func (e *CostShapeError) Unwrap() error { return ErrMalformedCost }

// MismatchError reports unequal supply and demand totals.
type MismatchError struct {
	Supply, Demand float64
}

func (e *MismatchError) Error() string {
	return "problem: " + e.Reason()
}

// Reason is the user-facing explanation without the package prefix.
func (e *MismatchError) Reason() string {
	return fmt.Sprintf("supply/demand mismatch: total supply %g does not match total demand %g", e.Supply, e.Demand)
}

func (e *MismatchError) Unwrap() error { return ErrSupplyDemandMismatch }
