package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/buildplan/internal/log"
	"github.com/felixgeelhaar/buildplan/internal/metrics"
)

// setupObservability attaches a logger configured from flags and the
// environment to the command context and initializes metrics
func setupObservability(cmd *cobra.Command) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cc, cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(log.NewContext(ctx, logger))

	metrics.InitDefault()
	return nil
}

func newLogger(cc *CommandContext, cmd *cobra.Command) (*log.Logger, error) {
	level, err := log.ParseLevel(logLevel(cc))
	if err != nil {
		return nil, err
	}
	format, err := log.ParseFormat(logFormat(cc))
	if err != nil {
		return nil, err
	}

	cfg := log.DefaultConfig()
	cfg.Level = level
	cfg.Format = format
	cfg.Writer = cmd.ErrOrStderr()
	return log.New(cfg), nil
}

// logLevel prefers the flag, then BUILD_PLAN_LOG_LEVEL. The CLI logs at
// warn by default so stderr stays quiet on success.
func logLevel(cc *CommandContext) string {
	if cc.LogLevel != "" {
		return cc.LogLevel
	}
	if env := os.Getenv("BUILD_PLAN_LOG_LEVEL"); env != "" {
		return env
	}
	return "warn"
}

func logFormat(cc *CommandContext) string {
	if cc.LogFormat != "" {
		return cc.LogFormat
	}
	return os.Getenv("BUILD_PLAN_LOG_FORMAT")
}

// instrument times fn as one command execution and writes the metrics
// file when --metrics is set, whether fn failed or not
func instrument(cmd *cobra.Command, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.GetDefault().ObserveCommand(name, time.Since(start), err)

	path, _ := cmd.Flags().GetString("metrics")
	if path == "" {
		return err
	}
	if werr := metrics.WriteDefault(path); werr != nil {
		log.FromContext(cmd.Context()).Warn("failed to write metrics", "path", path, "error", werr)
		if err == nil {
			return fmt.Errorf("write metrics: %w", werr)
		}
	}
	return err
}
