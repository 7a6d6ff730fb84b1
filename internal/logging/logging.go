// Package logging builds the zap-backed logr.Logger shared by the CLI and
// passed into solver options. Library packages only see logr.Logger.
package logging

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V(...).
const (
	// DEBUG is per-solve detail: initial basis, final cost, failures.
	DEBUG = 1
	// TRACE is per-pivot detail.
	TRACE = 2
)

// Config selects the encoder and verbosity.
type Config struct {
	// Development switches to the human-readable console encoder.
	Development bool
	// Verbosity is the highest V level that is emitted (0, DEBUG or TRACE).
	Verbosity int
	// OutputPaths defaults to stderr.
	OutputPaths []string
}

// New returns a logger and a flush function to defer.
func New(cfg Config) (logr.Logger, func(), error) {
	if cfg.Verbosity < 0 {
		return logr.Discard(), func() {}, fmt.Errorf("logging: negative verbosity %d", cfg.Verbosity)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	// logr V(n) is zap level -n
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-cfg.Verbosity))
	zc.OutputPaths = []string{"stderr"}
	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}
	zc.DisableStacktrace = !cfg.Development

	z, err := zc.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("logging: build zap logger: %w", err)
	}

	return zapr.NewLogger(z), func() { _ = z.Sync() }, nil
}

// NewTestLogger returns a development logger that emits every level up to
// TRACE, for tests that want to see solver traces with -v.
func NewTestLogger() logr.Logger {
	l, _, err := New(Config{Development: true, Verbosity: TRACE})
	if err != nil {
		return logr.Discard()
	}

	return l
}
