package transport

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// Sentinel errors surfaced through Outcome.Err (or returned directly for
// programmer errors such as a nil program).
var (
	// ErrIterationLimit reports that the pivot loop hit its cap before reaching
	// optimality. A balanced, bounded transportation LP always has an optimum in
	// exact arithmetic, so this signals numerical cycling, not infeasibility.
	ErrIterationLimit = errors.New("transport: iteration limit exceeded")

	// ErrNumerical reports a broken internal invariant: a basis that does not
	// span every node, or a final plan that fails the feasibility check.
	ErrNumerical = errors.New("transport: numerical failure")

	// ErrNilProgram is reported when SolveProgram receives a nil program.
	ErrNilProgram = errors.New("transport: nil program")

	// ErrNilSpec is reported when Solve receives a nil spec.
	ErrNilSpec = errors.New("transport: nil problem spec")
)

// Status tags an Outcome.
type Status int

const (
	// Failed covers solver failures (iteration cap, numerical trouble,
	// cancellation). Zero value so an empty Outcome never reads as success.
	Failed Status = iota
	// Optimal means Plan and TotalCost hold an optimal solution.
	Optimal
	// Infeasible means the constraints cannot be met (supply/demand mismatch).
	Infeasible
	// Unbounded is defined for completeness; a balanced problem with x ≥ 0
	// cannot reach it.
	Unbounded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// InitMethod selects the heuristic that builds the initial basic feasible solution.
type InitMethod int

const (
	// LeastCost allocates to the cheapest remaining cell first.
	LeastCost InitMethod = iota
	// NorthwestCorner allocates from the top-left cell, ignoring costs.
	NorthwestCorner
	// Vogel uses Vogel's approximation: allocate in the line whose two
	// cheapest cells differ the most.
	Vogel
)

func (m InitMethod) String() string {
	switch m {
	case LeastCost:
		return "least-cost"
	case NorthwestCorner:
		return "northwest-corner"
	case Vogel:
		return "vogel"
	default:
		return fmt.Sprintf("init(%d)", int(m))
	}
}

// ParseInitMethod maps a name produced by InitMethod.String back to its value.
func ParseInitMethod(s string) (InitMethod, error) {
	switch s {
	case "least-cost", "leastcost", "lc":
		return LeastCost, nil
	case "northwest-corner", "northwest", "nw":
		return NorthwestCorner, nil
	case "vogel", "vam":
		return Vogel, nil
	default:
		return 0, fmt.Errorf("transport: unknown init method %q", s)
	}
}

// Pricing selects the entering cell among those with negative reduced cost.
type Pricing int

const (
	// MostNegative picks the most negative reduced cost (Dantzig's rule).
	MostNegative Pricing = iota
	// FirstNegative picks the first negative reduced cost in row-major order.
	FirstNegative
)

func (p Pricing) String() string {
	switch p {
	case MostNegative:
		return "most-negative"
	case FirstNegative:
		return "first-negative"
	default:
		return fmt.Sprintf("pricing(%d)", int(p))
	}
}

// ParsePricing maps a name produced by Pricing.String back to its value.
func ParsePricing(s string) (Pricing, error) {
	switch s {
	case "most-negative", "dantzig":
		return MostNegative, nil
	case "first-negative", "first":
		return FirstNegative, nil
	default:
		return 0, fmt.Errorf("transport: unknown pricing rule %q", s)
	}
}

// Defaults used by DefaultOptions.
const (
	DefaultEpsilon         = 1e-9
	DefaultIterationFactor = 10
	// MinIterationCap is the floor of the derived iteration cap, so tiny
	// problems with several degenerate pivots are not cut off early.
	MinIterationCap = 100
)

// Options configures a solve.
//   - Init: initial BFS heuristic (default LeastCost).
//   - Pricing: entering-cell rule (default MostNegative).
//   - Epsilon: relative tolerance; reduced costs are compared against
//     −Epsilon·max(1, max|cost|) and quantities against Epsilon·max(1, Σsupply).
//   - MaxIterations: explicit pivot cap; 0 derives
//     max(IterationFactor·(m+n), MinIterationCap).
//   - IterationFactor: multiplier for the derived cap.
//   - Logger: receives V(1) solve summaries and V(2) per-pivot traces.
type Options struct {
	Init            InitMethod
	Pricing         Pricing
	Epsilon         float64
	MaxIterations   int
	IterationFactor int
	Logger          logr.Logger
}

// DefaultOptions returns production-safe defaults with a discarding logger.
func DefaultOptions() Options {
	return Options{
		Init:            LeastCost,
		Pricing:         MostNegative,
		Epsilon:         DefaultEpsilon,
		IterationFactor: DefaultIterationFactor,
		Logger:          logr.Discard(),
	}
}

// Cell is one basic cell of the final basis.
type Cell struct {
	Row, Col int
	Value    float64
}

// Stats describes how a solve went.
type Stats struct {
	InitMethod       InitMethod
	InitialCost      float64
	Iterations       int
	DegeneratePivots int
	// ZeroBasics counts zero-valued basic cells in the initial basis
	// (the degeneracy handled without surfacing an error).
	ZeroBasics int
}

// Outcome is the tagged result of a solve.
//   - Optimal: Plan and TotalCost are set, Basis lists the m+n−1 basic cells.
//   - Infeasible: Reason explains the mismatch; Err wraps
//     problem.ErrSupplyDemandMismatch.
//   - Failed: Reason is Err.Error(); Err wraps ErrIterationLimit,
//     ErrNumerical or the context error.
type Outcome struct {
	Status    Status
	Plan      *Plan
	TotalCost float64
	Reason    string
	Err       error
	Stats     Stats
	Basis     []Cell
}

// IsOptimal reports Status == Optimal.
func (o Outcome) IsOptimal() bool { return o.Status == Optimal }

func failed(err error, stats Stats) Outcome {
	return Outcome{Status: Failed, Reason: err.Error(), Err: err, Stats: stats}
}
