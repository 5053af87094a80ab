package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/buildplan/internal/log"
	"github.com/felixgeelhaar/buildplan/internal/metrics"
	"github.com/felixgeelhaar/buildplan/internal/pipeline"
	"github.com/felixgeelhaar/buildplan/internal/plan"
	"github.com/felixgeelhaar/buildplan/internal/resolve"
	"github.com/felixgeelhaar/buildplan/internal/tui"
	"github.com/felixgeelhaar/buildplan/internal/ux"
)

func runBuild(cmd *cobra.Command, opts *buildOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	formatter, err := ux.NewFormatter(cc.Format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: cc.NoColor,
	})
	if err != nil {
		return err
	}

	defaults := ux.NewPathDefaults()
	configPath := opts.configPath
	if configPath == "" {
		if configPath, err = defaults.ConfigFile(); err != nil {
			return ux.EnhanceError(err)
		}
	}
	depsPath := opts.depsPath
	if depsPath == "" {
		if depsPath, err = defaults.DepsFile(); err != nil {
			return ux.EnhanceError(err)
		}
	}

	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	logger := log.FromContext(ctx)
	logger.Debug("running pipeline", "config", configPath, "deps", depsPath, "dry_run", opts.dryRun)

	result, err := pipeline.Run(ctx, pipeline.Options{
		ConfigPath: configPath,
		DepsPath:   depsPath,
		LockPath:   opts.lockPath,
		RepoDir:    opts.repoDir,
		Metrics:    metrics.GetDefault(),
	})
	if err != nil {
		return ux.EnhanceError(err)
	}

	view := ux.PlanView{Plan: result.Plan}
	if !opts.dryRun {
		if opts.review {
			review, err := tui.RunPlanReview(result.Plan)
			if err != nil {
				return err
			}
			if !review.Approved {
				return fmt.Errorf("%w: %s", tui.ErrPlanRejected, review.Reason)
			}
		}

		out := opts.outPath
		if out == "" {
			out = defaults.PlanFile()
		}
		if err := plan.SavePlan(result.Plan, out); err != nil {
			return err
		}
		if opts.lockPath != "" {
			if err := resolve.SaveLock(result.Lock, opts.lockPath); err != nil {
				return err
			}
		}
		view.Written = out
		logger.Info("plan written", "path", out)
	}

	return formatter.Format(view)
}
