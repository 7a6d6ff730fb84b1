package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/transport/problemfile"
	"github.com/katalvlaran/transport/report"
	"github.com/katalvlaran/transport/transport"
)

// errNotOptimal makes the process exit non-zero after the report for an
// infeasible or failed problem has been printed.
var errNotOptimal = errors.New("no optimal plan")

func (a *app) solveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "solve",
		Short: "Solve one problem file and print the optimal plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := a.solverOptions()
			if err != nil {
				return err
			}
			format, err := a.format()
			if err != nil {
				return err
			}
			p, err := problemfile.Load(a.v.GetString(keyFile))
			if err != nil {
				return err
			}

			out := transport.Solve(cmd.Context(), p.Spec, opts)
			if err := report.WriteNamed(cmd.OutOrStdout(), p.Name, p.Spec, out, format); err != nil {
				return err
			}
			if !out.IsOptimal() {
				return fmt.Errorf("%s: %w (%s)", p.Name, errNotOptimal, out.Status)
			}
			return nil
		},
	}

	c.Flags().StringP(keyFile, "f", "", "problem file (.yaml, .yml, .toml or .json)")
	addSolverFlags(c.Flags())
	_ = c.MarkFlagRequired(keyFile)
	return c
}
