// Package logging builds the zap loggers used across journal.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production logger, or a development one (console encoding,
// ISO8601 time, debug level) when env is "dev" or "development". A non-empty
// file sends all output there instead of stderr.
func New(env, file string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env == "dev" || env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	if file != "" {
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
	}
	return cfg.Build()
}

// ForTerminal is used while a full-screen program owns the terminal: it logs
// to file when one is configured and is silent otherwise.
func ForTerminal(env, file string) (*zap.Logger, error) {
	if file == "" {
		return zap.NewNop(), nil
	}
	return New(env, file)
}
