package problem

import "math"

// DefaultBalanceTolerance is the relative tolerance used by CheckBalance:
// |Σcap − Σdem| ≤ tol · max(1, Σcap, Σdem).
const DefaultBalanceTolerance = 1e-9

const panicBalanceTolInvalid = "problem: WithBalanceTolerance: tol must be finite, non-negative"

// Option mutates construction options.
// Constructors panic only on nonsensical values (programmer error).
type Option func(*options)

type options struct {
	balanceTol float64
}

func defaultOptions() options {
	return options{balanceTol: DefaultBalanceTolerance}
}

// WithBalanceTolerance overrides the relative tolerance used by CheckBalance.
// Zero demands exact equality of the float totals.
func WithBalanceTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicBalanceTolInvalid)
	}

	return func(o *options) { o.balanceTol = tol }
}
