// Package metrics exposes solver outcomes as Prometheus collectors.
//
// A Recorder is registered once and shared by every solve; all methods are
// safe for concurrent use. A nil *Recorder records nothing.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/transport/transport"
)

const namespace = "transport"

// Recorder holds the solver collectors.
type Recorder struct {
	solves     *prometheus.CounterVec
	pivots     *prometheus.CounterVec
	degenerate prometheus.Counter
	duration   *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solves by final status and initial-basis method.",
		}, []string{"status", "init"}),
		pivots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pivots_total",
			Help:      "Simplex pivots performed, by initial-basis method.",
		}, []string{"init"}),
		degenerate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degenerate_pivots_total",
			Help:      "Pivots that moved zero units.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of a solve, by final status.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"status"}),
	}

	for _, c := range []prometheus.Collector{r.solves, r.pivots, r.degenerate, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	return r, nil
}

// Observe records one finished solve.
func (r *Recorder) Observe(out transport.Outcome, took time.Duration) {
	if r == nil {
		return
	}
	status := out.Status.String()
	init := out.Stats.InitMethod.String()

	r.solves.WithLabelValues(status, init).Inc()
	r.pivots.WithLabelValues(init).Add(float64(out.Stats.Iterations))
	r.degenerate.Add(float64(out.Stats.DegeneratePivots))
	r.duration.WithLabelValues(status).Observe(took.Seconds())
}

// WriteText gathers g and writes it in the Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
