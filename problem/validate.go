// Package problem - validation helpers used by New.
//
// Stages (first failure wins):
//  1. non-empty node lists,
//  2. names (non-empty, unique per list),
//  3. quantities (finite, non-negative),
//  4. cost shape (rows = facilities, cols = warehouses),
//  5. cost values (finite, non-negative).
//
// Helpers are deterministic and side-effect free; they return wrapped
// sentinels from types.go and never panic.
package problem

import (
	"fmt"
	"math"
)

func validateAll(facilities []Facility, warehouses []Warehouse, costs [][]float64) error {
	if len(facilities) == 0 {
		return ErrNoFacilities
	}
	if len(warehouses) == 0 {
		return ErrNoWarehouses
	}

	names := make([]string, len(facilities))
	qty := make([]float64, len(facilities))
	for i, f := range facilities {
		names[i], qty[i] = f.Name, f.Capacity
	}
	if err := validateNodes("facility", names, qty); err != nil {
		return err
	}

	names = make([]string, len(warehouses))
	qty = make([]float64, len(warehouses))
	for j, w := range warehouses {
		names[j], qty[j] = w.Name, w.Demand
	}
	if err := validateNodes("warehouse", names, qty); err != nil {
		return err
	}

	if err := validateCostShape(costs, len(facilities), len(warehouses)); err != nil {
		return err
	}

	return validateCostValues(costs)
}

// validateNodes checks one side of the bipartite problem.
//
// Complexity: O(k) time, O(k) space for the uniqueness set.
func validateNodes(kind string, names []string, qty []float64) error {
	seen := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("%s %d: %w", kind, i, ErrEmptyName)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s %d %q (first at %d): %w", kind, i, name, prev, ErrDuplicateName)
		}
		seen[name] = i

		q := qty[i]
		if math.IsNaN(q) || math.IsInf(q, 0) {
			return fmt.Errorf("%s %q: %w", kind, name, ErrNonFinite)
		}
		if q < 0 {
			return fmt.Errorf("%s %q: %g: %w", kind, name, q, ErrNegativeQuantity)
		}
	}

	return nil
}

// validateCostShape enforces len(costs)==m and len(costs[i])==n for every row.
func validateCostShape(costs [][]float64, m, n int) error {
	if len(costs) != m {
		return &CostShapeError{Row: -1, Got: len(costs), Want: m}
	}
	for i, row := range costs {
		if len(row) != n {
			return &CostShapeError{Row: i, Got: len(row), Want: n}
		}
	}

	return nil
}

// validateCostValues rejects NaN/±Inf and negative unit costs.
//
// Complexity: O(m*n).
func validateCostValues(costs [][]float64) error {
	for i, row := range costs {
		for j, c := range row {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("cost[%d][%d]: %w", i, j, ErrNonFinite)
			}
			if c < 0 {
				return fmt.Errorf("cost[%d][%d]=%g: %w", i, j, c, ErrNegativeCost)
			}
		}
	}

	return nil
}
