package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/transport/problemfile"
)

func (a *app) checkCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "check",
		Short: "Validate a problem file and its supply/demand balance without solving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := problemfile.Load(a.v.GetString(keyFile))
			if err != nil {
				return err
			}
			if err := p.Spec.CheckBalance(); err != nil {
				return err
			}

			m, n := p.Spec.Dims()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d facilities, %d warehouses, %g units)\n", p.Name, m, n, p.Spec.TotalSupply())
			return nil
		},
	}

	c.Flags().StringP(keyFile, "f", "", "problem file (.yaml, .yml, .toml or .json)")
	_ = c.MarkFlagRequired(keyFile)
	return c
}
