// Package pipeline runs the four build-plan stages in order: config,
// resolve, plan and validate.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/buildplan/internal/config"
	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/log"
	"github.com/felixgeelhaar/buildplan/internal/metrics"
	"github.com/felixgeelhaar/buildplan/internal/plan"
	"github.com/felixgeelhaar/buildplan/internal/resolve"
	"github.com/felixgeelhaar/buildplan/internal/validate"
)

// Stage names as they appear in logs and metrics
const (
	StageConfig   = "config"
	StageResolve  = "resolve"
	StagePlan     = "plan"
	StageValidate = "validate"
)

// Options contains the inputs of one pipeline run
type Options struct {
	// ConfigPath is the build settings file
	ConfigPath string
	// DepsPath is the dependencies file
	DepsPath string
	// LockPath is an optional lock file. A missing file means no lock.
	LockPath string
	// RepoDir is an optional Maven-style repository directory consulted
	// next to the versions listed in the dependencies file
	RepoDir string
	// Schema defaults to config.DefaultSchema
	Schema *config.Schema
	// InvocationID overrides the generated plan invocation ID
	InvocationID string
	// Metrics records stage outcomes when set
	Metrics *metrics.Metrics
}

// Result contains the output of every stage
type Result struct {
	Config       *config.Config
	Dependencies []resolve.ResolvedDependency
	Plan         *plan.Plan
	// Lock pins the selected versions for the next run
	Lock *resolve.Lock
	// Duration is the total run time
	Duration time.Duration
}

// Run executes the pipeline. The first failing stage stops the run and its
// error is returned unchanged, so callers can map it to an exit code.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := log.FromContext(ctx)
	result := &Result{}

	schema := opts.Schema
	if schema == nil {
		schema = config.DefaultSchema()
	}

	err := stage(ctx, opts.Metrics, StageConfig, func(context.Context) error {
		cfg, err := config.LoadFile(opts.ConfigPath, schema)
		if err != nil {
			return err
		}
		result.Config = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, opts.Metrics, StageResolve, func(ctx context.Context) error {
		deps, err := resolveDependencies(ctx, opts)
		if err != nil {
			return err
		}
		result.Dependencies = deps
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, opts.Metrics, StagePlan, func(ctx context.Context) error {
		p, err := plan.Assemble(ctx, result.Config, result.Dependencies, plan.Options{
			InvocationID: opts.InvocationID,
		})
		if err != nil {
			return err
		}
		result.Plan = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, opts.Metrics, StageValidate, func(ctx context.Context) error {
		return validate.Validate(ctx, result.Plan)
	})
	if err != nil {
		return nil, err
	}

	result.Lock = resolve.NewLock(result.Dependencies)
	result.Duration = time.Since(start)

	if m := opts.Metrics; m != nil {
		m.PlanTaskCount.Observe(float64(len(result.Plan.Tasks)))
		m.PlanDependencyCount.Observe(float64(len(result.Dependencies)))
		for _, d := range result.Dependencies {
			m.ResolvedOrigins.WithLabelValues(string(d.Origin)).Inc()
		}
	}

	logger.Info("build plan ready",
		"tasks", len(result.Plan.Tasks),
		"dependencies", len(result.Dependencies),
		"fingerprint", result.Plan.Fingerprint,
		"duration", result.Duration,
	)
	return result, nil
}

// stage runs fn unless ctx is already done, then logs and records it
func stage(ctx context.Context, m *metrics.Metrics, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}

	logger := log.FromContext(ctx).WithStage(name)
	logger.Debug("stage started")

	start := time.Now()
	err := fn(ctx)
	d := time.Since(start)

	if m != nil {
		m.ObserveStage(name, d, err)
	}
	if err != nil {
		logger.WithError(err).Debug("stage failed", "duration", d)
		return err
	}
	logger.Debug("stage finished", "duration", d)
	return nil
}

func resolveDependencies(ctx context.Context, opts Options) ([]resolve.ResolvedDependency, error) {
	file, err := resolve.LoadFile(opts.DepsPath)
	if err != nil {
		return nil, err
	}

	repo := resolve.MultiRepository{file.StaticRepository()}
	if opts.RepoDir != "" {
		cached, err := resolve.NewCachingRepository(resolve.NewDirRepository(opts.RepoDir), 0)
		if err != nil {
			return nil, fmt.Errorf("create repository cache: %w", err)
		}
		repo = append(repo, cached)
	}

	var resolverOpts []resolve.Option
	if opts.LockPath != "" {
		lock, err := resolve.LoadLock(opts.LockPath)
		switch {
		case err == nil:
			resolverOpts = append(resolverOpts, resolve.WithLock(lock))
		case errors.Is(err, builderrors.ErrFileNotFound):
			log.FromContext(ctx).Debug("no lock file", "path", opts.LockPath)
		default:
			return nil, err
		}
	}

	return resolve.NewResolver(repo, resolverOpts...).Resolve(ctx, file.Dependencies)
}
