// Package problem holds the validated input of a balanced transportation
// problem: an ordered list of facilities (supply nodes with capacities), an
// ordered list of warehouses (demand nodes with demands) and the unit cost
// matrix, row i / column j being the cost of shipping one unit from facility
// i to warehouse j.
//
// Construction (New) enforces every structural invariant up front:
//
//	– at least one facility and one warehouse,
//	– non-empty, unique names on each side,
//	– finite, non-negative capacities, demands and costs,
//	– len(costs) == len(facilities) and every row has len(warehouses) entries
//	  (ErrMalformedCost otherwise).
//
// The balance invariant Σcapacity = Σdemand is checked separately by
// Spec.CheckBalance so that callers can report an unbalanced instance as
// infeasible instead of a construction error. The comparison uses a relative
// tolerance (DefaultBalanceTolerance, override with WithBalanceTolerance);
// exact float equality would reject totals such as 0.1+0.2 vs 0.3.
//
// A Spec never changes after New returns, so one value may be shared by any
// number of concurrent solves.
package problem
