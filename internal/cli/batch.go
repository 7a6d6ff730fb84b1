package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/transport/batch"
	"github.com/katalvlaran/transport/metrics"
	"github.com/katalvlaran/transport/report"
	"github.com/katalvlaran/transport/transport"
)

func (a *app) batchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Solve several problem files in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.solverOptions()
			if err != nil {
				return err
			}
			format, err := a.format()
			if err != nil {
				return err
			}

			cfg := batch.Config{Workers: a.v.GetInt(keyWorkers), Options: opts, Logger: a.log}
			var reg *prometheus.Registry
			if a.v.GetBool(keyMetrics) {
				reg = prometheus.NewRegistry()
				if cfg.Recorder, err = metrics.NewRecorder(reg); err != nil {
					return err
				}
			}

			results, runErr := batch.Run(cmd.Context(), batch.JobsFromFiles(args), cfg)
			w := cmd.OutOrStdout()
			if err := writeBatch(w, results, format); err != nil {
				return err
			}
			if reg != nil {
				if err := metrics.WriteText(w, reg); err != nil {
					return err
				}
			}
			if runErr != nil {
				return runErr
			}
			if bad := len(results) - batch.Summary(results)[transport.Optimal]; bad > 0 {
				return fmt.Errorf("%d of %d problems: %w", bad, len(results), errNotOptimal)
			}
			return nil
		},
	}

	addSolverFlags(c.Flags())
	c.Flags().Int(keyWorkers, 0, "concurrent solves (0 uses GOMAXPROCS)")
	c.Flags().Bool(keyMetrics, false, "print Prometheus metrics after the results")
	return c
}

type batchEntry struct {
	ID string `json:"id"`
	report.Report
}

func writeBatch(w io.Writer, results []batch.Result, format report.Format) error {
	switch format {
	case report.JSON:
		entries := make([]batchEntry, len(results))
		for i, r := range results {
			rep, err := report.Build(r.Name, r.Spec, r.Outcome)
			if err != nil {
				return err
			}
			entries[i] = batchEntry{ID: r.ID, Report: rep}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case report.Text:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSTATUS\tCOST\tPIVOTS\tDETAIL")
		for _, r := range results {
			cost, detail := "-", r.Outcome.Reason
			if r.Outcome.IsOptimal() {
				cost, detail = fmt.Sprintf("%g", r.Outcome.TotalCost), r.ID
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.Name, r.Outcome.Status, cost, r.Outcome.Stats.Iterations, detail)
		}
		return tw.Flush()
	default:
		for _, r := range results {
			if err := report.WriteNamed(w, r.Name, r.Spec, r.Outcome, format); err != nil {
				return err
			}
		}
		return nil
	}
}
