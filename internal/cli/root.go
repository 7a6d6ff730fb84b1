// Package cli wires the transport commands: solve, check and batch.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/transport/internal/logging"
)

const envPrefix = "TRANSPORT"

// app is the state shared by the commands of one root command.
type app struct {
	v     *viper.Viper
	log   logr.Logger
	flush func()
}

// Execute runs the root command with ctx and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// NewRootCmd builds a fresh command tree. Settings come from flags, then
// TRANSPORT_* environment variables, then the --config file.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logr.Discard(), flush: func() {}}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	var configFile string
	cmd := &cobra.Command{
		Use:          "transport",
		Short:        "Solve balanced transportation problems",
		Long:         "Finds a minimum-cost shipment plan from facilities to warehouses with the transportation simplex.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if configFile != "" {
				a.v.SetConfigFile(configFile)
				if err := a.v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config %s: %w", configFile, err)
				}
			}
			return a.setupLogger()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.flush()
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file (yaml, toml or json)")
	cmd.PersistentFlags().Bool(keyDebug, false, "log solver progress (per-pivot traces) to stderr")

	cmd.AddCommand(a.solveCmd(), a.checkCmd(), a.batchCmd())
	return cmd
}

func (a *app) setupLogger() error {
	cfg := logging.Config{}
	if a.v.GetBool(keyDebug) {
		cfg = logging.Config{Development: true, Verbosity: logging.TRACE}
	}
	log, flush, err := logging.New(cfg)
	if err != nil {
		return err
	}
	a.log, a.flush = log, flush
	return nil
}
