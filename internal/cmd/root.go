package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// buildOptions holds the flags of the root command
type buildOptions struct {
	configPath string
	depsPath   string
	dryRun     bool
	review     bool
	outPath    string
	lockPath   string
	repoDir    string
	timeout    time.Duration
}

// NewRootCommand builds the build-plan command tree
func NewRootCommand() *cobra.Command {
	opts := &buildOptions{}

	rootCmd := &cobra.Command{
		Use:   "build-plan",
		Short: "Resolve build settings and dependencies into an ordered build plan",
		Long: `build-plan reads a build settings file and a dependencies file, resolves
one version per library, assembles the build tasks of the applied plugins
into a dependency-ordered plan and validates the result.

Without --config and --deps the files are discovered in the working
directory and its parents: build-plan.{properties,yaml,yml,json,hcl} and
dependencies.{txt,yaml,yml,json}.`,
		Example: `  build-plan --config build-plan.properties --deps dependencies.txt
  build-plan --dry-run --format json
  build-plan --lock build-plan.lock --repo ~/.m2/repository
  build-plan --review`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupObservability(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return instrument(cmd, "build", func() error {
				return runBuild(cmd, opts)
			})
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "build settings file (.properties, .yaml, .json, .hcl)")
	flags.StringVar(&opts.depsPath, "deps", "", "dependencies file (.txt, .yaml, .json)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the plan without writing any file")
	flags.BoolVar(&opts.review, "review", false, "review the plan interactively before it is written")
	flags.StringVarP(&opts.outPath, "out", "o", "", "plan output file (default build-plan.json)")
	flags.StringVar(&opts.lockPath, "lock", "", "lock file to read selected versions from and write them to")
	flags.StringVar(&opts.repoDir, "repo", "", "local Maven-style repository directory")
	flags.DurationVar(&opts.timeout, "timeout", 0, "abort the run after this duration (0 means no limit)")

	persistent := rootCmd.PersistentFlags()
	persistent.StringP("format", "f", "text", "output format (text, json, yaml)")
	persistent.Bool("no-color", false, "disable colored output")
	persistent.String("log-level", "", "log level (debug, info, warn, error); default warn")
	persistent.String("log-format", "", "log format (text, json)")
	persistent.String("metrics", "", "write Prometheus metrics to this file after the run")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, so a signal handler can
// cancel a running pipeline
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
