// Package logging builds the zap loggers used by retagger.
//
// Diagnostics go to standard error so they never mix with the change
// report on standard output.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to standard error. Verbose enables
// debug output; otherwise only warnings and errors are logged.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	cfg.Level = zap.NewAtomicLevelAt(Level(verbose))

	return cfg.Build()
}

// Level returns the level New uses for the given verbosity.
func Level(verbose bool) zapcore.Level {
	if verbose {
		return zap.DebugLevel
	}
	return zap.WarnLevel
}
