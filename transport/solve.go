// Package transport - solve entry points.
//
// This file provides the canonical ways to run the transportation simplex:
//
//   - Solve: accept a *problem.Spec, reject unbalanced instances as
//     Infeasible, build the LP with lpform.Build, then delegate to SolveProgram.
//   - SolveProgram: accept an lpform.Program and run
//     Initializing → Iterating → {Optimal, Failed}.
//
// Neither function returns an error value: every failure is carried in the
// Outcome so the presentation boundary decides how to show it.
package transport

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/transport/internal/logging"
	"github.com/katalvlaran/transport/lpform"
	"github.com/katalvlaran/transport/problem"
)

// ErrInvalidOptions is reported for a negative or non-finite Epsilon, or a
// negative MaxIterations / IterationFactor.
var ErrInvalidOptions = errors.New("transport: invalid options")

type phase int

const (
	phaseInitializing phase = iota
	phaseIterating
	phaseOptimal
	phaseFailed
)

func (p phase) String() string {
	switch p {
	case phaseInitializing:
		return "initializing"
	case phaseIterating:
		return "iterating"
	case phaseOptimal:
		return "optimal"
	default:
		return "failed"
	}
}

// Solve runs the full pipeline on spec.
//
// Unbalanced input yields Status Infeasible with a Reason such as
// "supply/demand mismatch: total supply 50 does not match total demand 45";
// the LP is never built in that case. A spec accepted by CheckBalance is
// solved under the same tolerance: the surplus side is trimmed before the
// initial basis, so the plan may miss a capacity or demand by at most the
// accepted imbalance.
func Solve(ctx context.Context, spec *problem.Spec, opts Options) Outcome {
	if spec == nil {
		return failed(ErrNilSpec, Stats{InitMethod: opts.Init})
	}
	if err := spec.CheckBalance(); err != nil {
		return infeasible(err, opts.Init)
	}
	prog, err := lpform.Build(spec)
	if err != nil {
		return failed(err, Stats{InitMethod: opts.Init})
	}

	return solveProgram(ctx, prog, opts, spec.BalanceTolerance())
}

// SolveProgram runs the transportation simplex on a program built by
// lpform.Build (reduced or not; the structure is read from the program, not
// from its dense matrix).
//
// A program carries no balance tolerance of its own: supply and demand totals
// must agree within opts.Epsilon·max(1, Σsupply, Σdemand).
//
// Complexity: initial basis O((m+n)·m·n); each pivot O(m·n) for pricing plus
// O(m+n) for duals and the cycle.
func SolveProgram(ctx context.Context, prog *lpform.Program, opts Options) Outcome {
	return solveProgram(ctx, prog, opts, 0)
}

// solveProgram is SolveProgram with a relative balance tolerance already
// accepted upstream.
func solveProgram(ctx context.Context, prog *lpform.Program, opts Options, balanceTol float64) Outcome {
	if prog == nil {
		return failed(ErrNilProgram, Stats{InitMethod: opts.Init})
	}
	if err := validateOptions(opts); err != nil {
		return failed(err, Stats{InitMethod: opts.Init})
	}
	opts = normalizeOptions(opts)
	if ctx == nil {
		ctx = context.Background()
	}

	r := newRun(prog, opts)
	r.balanceTol = balanceTol

	return r.solve(ctx)
}

func validateOptions(opts Options) error {
	if math.IsNaN(opts.Epsilon) || math.IsInf(opts.Epsilon, 0) || opts.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon %g", ErrInvalidOptions, opts.Epsilon)
	}
	if opts.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations %d", ErrInvalidOptions, opts.MaxIterations)
	}
	if opts.IterationFactor < 0 {
		return fmt.Errorf("%w: iteration factor %d", ErrInvalidOptions, opts.IterationFactor)
	}
	switch opts.Init {
	case LeastCost, NorthwestCorner, Vogel:
	default:
		return fmt.Errorf("%w: %v", ErrInvalidOptions, opts.Init)
	}
	switch opts.Pricing {
	case MostNegative, FirstNegative:
	default:
		return fmt.Errorf("%w: %v", ErrInvalidOptions, opts.Pricing)
	}

	return nil
}

// normalizeOptions fills zero values with defaults.
func normalizeOptions(opts Options) Options {
	if opts.Epsilon == 0 {
		opts.Epsilon = DefaultEpsilon
	}
	if opts.IterationFactor == 0 {
		opts.IterationFactor = DefaultIterationFactor
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	return opts
}

// IterationCap returns the pivot limit used for an m×n problem.
func IterationCap(m, n int, opts Options) int {
	if opts.MaxIterations > 0 {
		return opts.MaxIterations
	}
	factor := opts.IterationFactor
	if factor <= 0 {
		factor = DefaultIterationFactor
	}

	return max(factor*(m+n), MinIterationCap)
}

func infeasible(err error, init InitMethod) Outcome {
	reason := err.Error()
	var mm *problem.MismatchError
	if errors.As(err, &mm) {
		reason = mm.Reason()
	}

	return Outcome{Status: Infeasible, Reason: reason, Err: err, Stats: Stats{InitMethod: init}}
}

// run is one solve: it owns its tableau and is discarded afterwards.
type run struct {
	prog  *lpform.Program
	opts  Options
	log   logr.Logger
	m, n  int
	ctol  float64 // reduced-cost tolerance
	qtol  float64 // quantity tolerance
	// balanceTol is the relative supply/demand imbalance accepted on entry;
	// imbalance is the absolute amount actually trimmed.
	balanceTol float64
	imbalance  float64
	phase      phase
	stats      Stats
}

func newRun(prog *lpform.Program, opts Options) *run {
	m, n := prog.Dims()
	maxCost := 0.0
	for _, c := range prog.C {
		maxCost = math.Max(maxCost, math.Abs(c))
	}
	var supply float64
	for i := 0; i < m; i++ {
		supply += prog.Supply(i)
	}

	return &run{
		prog:  prog,
		opts:  opts,
		log:   opts.Logger.WithValues("facilities", m, "warehouses", n, "init", opts.Init.String()),
		m:     m,
		n:     n,
		ctol:  opts.Epsilon * math.Max(1, maxCost),
		qtol:  opts.Epsilon * math.Max(1, supply),
		stats: Stats{InitMethod: opts.Init},
	}
}

func (r *run) fail(err error) Outcome {
	r.phase = phaseFailed
	r.log.V(logging.DEBUG).Info("solve failed", "phase", r.phase.String(), "iterations", r.stats.Iterations, "error", err.Error())

	return failed(err, r.stats)
}

func (r *run) solve(ctx context.Context) Outcome {
	r.phase = phaseInitializing

	supply := make([]float64, r.m)
	demand := make([]float64, r.n)
	var totalS, totalD float64
	for i := range supply {
		supply[i] = r.prog.Supply(i)
		totalS += supply[i]
	}
	for j := range demand {
		demand[j] = r.prog.Demand(j)
		totalD += demand[j]
	}
	gap := math.Abs(totalS - totalD)
	if gap > math.Max(r.opts.Epsilon, r.balanceTol)*math.Max(1, math.Max(totalS, totalD)) {
		return infeasible(&problem.MismatchError{Supply: totalS, Demand: totalD}, r.opts.Init)
	}
	if gap > 0 {
		if totalS > totalD {
			trimExcess(supply, gap)
		} else {
			trimExcess(demand, gap)
		}
		r.imbalance = gap
	}

	t := newTableau(r.m, r.n, append([]float64(nil), r.prog.C...))
	initialBasis(t, supply, demand, r.opts.Init)
	repaired := t.completeBasis()
	r.stats.ZeroBasics = t.zeroBasics(r.qtol)
	r.stats.InitialCost = t.objective()
	r.log.V(logging.DEBUG).Info("initial basis",
		"phase", r.phase.String(),
		"cost", r.stats.InitialCost,
		"basic", len(t.cells),
		"zeroBasics", r.stats.ZeroBasics,
		"repaired", repaired,
		"imbalance", r.imbalance)

	r.phase = phaseIterating
	limit := IterationCap(r.m, r.n, r.opts)
	for {
		if err := ctx.Err(); err != nil {
			return r.fail(fmt.Errorf("transport: interrupted after %d iterations: %w", r.stats.Iterations, err))
		}
		if !t.computeDuals() {
			return r.fail(fmt.Errorf("%w: basis does not span all %d nodes", ErrNumerical, r.m+r.n))
		}
		enter, d := t.price(r.opts.Pricing, r.ctol)
		if enter < 0 {
			break
		}
		if r.stats.Iterations >= limit {
			return r.fail(fmt.Errorf("%w: %d pivots without reaching optimality", ErrIterationLimit, limit))
		}
		path := t.cycle(enter)
		if path == nil {
			return r.fail(fmt.Errorf("%w: no cycle through cell (%d,%d)", ErrNumerical, enter/r.n, enter%r.n))
		}
		res := t.pivot(enter, path, r.qtol)
		r.stats.Iterations++
		if res.theta <= r.qtol {
			r.stats.DegeneratePivots++
		}
		r.log.V(logging.TRACE).Info("pivot",
			"iteration", r.stats.Iterations,
			"enter", cellLabel(res.enter, r.n),
			"leave", cellLabel(res.leave, r.n),
			"reducedCost", d,
			"theta", res.theta,
			"cycle", len(path)+1,
			"cost", t.objective())
	}

	return r.finish(t)
}

// finish snapshots the optimal basis, verifies it against the LP rows and
// assembles the Outcome.
func (r *run) finish(t *tableau) Outcome {
	x := make([]float64, len(t.x))
	for k, v := range t.x {
		if v > r.qtol {
			x[k] = v
		}
	}

	// rounding may accumulate over pivots; allow one epsilon per node on top
	// of the trimmed imbalance
	ok, err := r.prog.Feasible(x, r.opts.Epsilon*float64(r.m+r.n)+r.imbalance)
	if err != nil {
		return r.fail(err)
	}
	if !ok {
		res, _ := r.prog.Residual(x)
		return r.fail(fmt.Errorf("%w: final plan violates constraints (residual %g)", ErrNumerical, res))
	}

	total, err := r.prog.Objective(x)
	if err != nil {
		return r.fail(err)
	}
	plan, err := newPlan(r.m, r.n, x)
	if err != nil {
		return r.fail(err)
	}

	cells := append([]int(nil), t.cells...)
	sort.Ints(cells)
	basis := make([]Cell, len(cells))
	for idx, k := range cells {
		basis[idx] = Cell{Row: k / r.n, Col: k % r.n, Value: x[k]}
	}

	r.phase = phaseOptimal
	r.log.V(logging.DEBUG).Info("solved",
		"phase", r.phase.String(),
		"cost", total,
		"initialCost", r.stats.InitialCost,
		"iterations", r.stats.Iterations,
		"degeneratePivots", r.stats.DegeneratePivots,
		"minReducedCost", t.minReducedCost())

	return Outcome{
		Status:    Optimal,
		Plan:      plan,
		TotalCost: total,
		Stats:     r.stats,
		Basis:     basis,
	}
}

// trimExcess removes excess from q, last entries first, never driving an
// entry below zero.
func trimExcess(q []float64, excess float64) {
	for i := len(q) - 1; i >= 0 && excess > 0; i-- {
		take := math.Min(q[i], excess)
		q[i] -= take
		excess -= take
	}
}

func cellLabel(k, n int) string {
	return fmt.Sprintf("(%d,%d)", k/n, k%n)
}
