package cmd

import (
	"github.com/spf13/cobra"
)

// CommandContext holds the persistent flags every command reads
type CommandContext struct {
	// Output control
	Format  string
	NoColor bool

	// Observability
	LogLevel    string
	LogFormat   string
	MetricsPath string
}

// NewCommandContext extracts command context from cobra.Command flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return nil, err
	}

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}

	logFormat, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, err
	}

	metricsPath, err := cmd.Flags().GetString("metrics")
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Format:      format,
		NoColor:     noColor,
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		MetricsPath: metricsPath,
	}, nil
}
