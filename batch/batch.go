// Package batch solves many independent transportation problems in parallel.
//
// Each job is solved by its own transport.Solve call; jobs share nothing but
// the read-only options. Results keep the input order, and a job that fails
// (bad file, unbalanced input, iteration cap) never affects the others.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/transport/internal/logging"
	"github.com/katalvlaran/transport/metrics"
	"github.com/katalvlaran/transport/problem"
	"github.com/katalvlaran/transport/problemfile"
	"github.com/katalvlaran/transport/transport"
)

// ErrNoSpec is the failure reported for a job that has neither a spec nor a
// load error.
var ErrNoSpec = errors.New("batch: job has no problem spec")

// Job is one problem to solve. ID is generated when empty. Err, when set,
// marks a job whose input could not be loaded; it is reported as a Failed
// result without solving.
type Job struct {
	ID   string
	Name string
	Spec *problem.Spec
	Err  error
}

// Result pairs a job with its outcome.
type Result struct {
	ID       string
	Name     string
	Spec     *problem.Spec
	Outcome  transport.Outcome
	Duration time.Duration
}

// Config controls a Run.
//   - Workers: maximum concurrent solves (≤ 0 means GOMAXPROCS).
//   - Options: solver options applied to every job.
//   - Recorder: optional metrics sink.
//   - Logger: per-job summaries at V(logging.DEBUG).
type Config struct {
	Workers  int
	Options  transport.Options
	Recorder *metrics.Recorder
	Logger   logr.Logger
}

// JobsFromFiles loads one job per path. Files that fail to load still yield
// a job, carrying the load error.
func JobsFromFiles(paths []string) []Job {
	jobs := make([]Job, len(paths))
	for i, path := range paths {
		p, err := problemfile.Load(path)
		if err != nil {
			jobs[i] = Job{Name: path, Err: err}
			continue
		}
		jobs[i] = Job{Name: p.Name, Spec: p.Spec}
	}

	return jobs
}

// Run solves jobs with at most cfg.Workers running at once and returns one
// result per job, in input order. Once ctx is done no new solve starts; the
// remaining jobs are reported as Failed with the context error, which Run
// also returns.
func Run(ctx context.Context, jobs []Job, cfg Config) ([]Result, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	results := make([]Result, len(jobs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range jobs {
		job := jobs[i]
		if job.ID == "" {
			job.ID = uuid.NewString()
		}
		if ctx.Err() != nil {
			results[i] = skipped(job, ctx.Err())
			continue
		}
		g.Go(func() error {
			results[i] = solveOne(ctx, job, cfg, log)
			return nil
		})
	}
	_ = g.Wait()

	return results, ctx.Err()
}

func skipped(job Job, err error) Result {
	err = fmt.Errorf("batch: not started: %w", err)
	return Result{
		ID:      job.ID,
		Name:    job.Name,
		Spec:    job.Spec,
		Outcome: transport.Outcome{Status: transport.Failed, Reason: err.Error(), Err: err},
	}
}

func solveOne(ctx context.Context, job Job, cfg Config, log logr.Logger) Result {
	res := Result{ID: job.ID, Name: job.Name, Spec: job.Spec}
	switch {
	case job.Err != nil:
		res.Outcome = transport.Outcome{Status: transport.Failed, Reason: job.Err.Error(), Err: job.Err}
		log.V(logging.DEBUG).Info("job not loaded", "id", job.ID, "name", job.Name, "error", job.Err.Error())
		return res
	case job.Spec == nil:
		res.Outcome = transport.Outcome{Status: transport.Failed, Reason: ErrNoSpec.Error(), Err: ErrNoSpec}
		return res
	}

	opts := cfg.Options
	opts.Logger = log.WithValues("job", job.ID)
	start := time.Now()
	res.Outcome = transport.Solve(ctx, job.Spec, opts)
	res.Duration = time.Since(start)
	cfg.Recorder.Observe(res.Outcome, res.Duration)

	log.V(logging.DEBUG).Info("job done",
		"id", job.ID,
		"name", job.Name,
		"status", res.Outcome.Status.String(),
		"cost", res.Outcome.TotalCost,
		"duration", res.Duration)

	return res
}

// Summary counts results by status.
func Summary(results []Result) map[transport.Status]int {
	out := make(map[transport.Status]int)
	for _, r := range results {
		out[r.Outcome.Status]++
	}

	return out
}
