package cli

import (
	"github.com/spf13/pflag"

	"github.com/katalvlaran/transport/report"
	"github.com/katalvlaran/transport/transport"
)

// Setting keys; flags, env vars (TRANSPORT_<KEY>, dashes as underscores)
// and config file entries share them.
const (
	keyDebug         = "debug"
	keyInit          = "init"
	keyPricing       = "pricing"
	keyEpsilon       = "epsilon"
	keyMaxIterations = "max-iterations"
	keyFormat        = "format"
	keyWorkers       = "workers"
	keyMetrics       = "metrics"
	keyFile          = "file"
)

// addSolverFlags registers the flags every solving command shares.
func addSolverFlags(fs *pflag.FlagSet) {
	fs.String(keyInit, transport.LeastCost.String(), "initial basis: least-cost|northwest-corner|vogel")
	fs.String(keyPricing, transport.MostNegative.String(), "entering cell rule: most-negative|first-negative")
	fs.Float64(keyEpsilon, transport.DefaultEpsilon, "relative tolerance for reduced costs and quantities")
	fs.Int(keyMaxIterations, 0, "pivot cap (0 derives it from the problem size)")
	fs.String(keyFormat, report.Text.String(), "output format: text|table|json|yaml")
}

func (a *app) solverOptions() (transport.Options, error) {
	opts := transport.DefaultOptions()
	var err error
	if opts.Init, err = transport.ParseInitMethod(a.v.GetString(keyInit)); err != nil {
		return opts, err
	}
	if opts.Pricing, err = transport.ParsePricing(a.v.GetString(keyPricing)); err != nil {
		return opts, err
	}
	opts.Epsilon = a.v.GetFloat64(keyEpsilon)
	opts.MaxIterations = a.v.GetInt(keyMaxIterations)
	opts.Logger = a.log

	return opts, nil
}

func (a *app) format() (report.Format, error) {
	return report.ParseFormat(a.v.GetString(keyFormat))
}
