package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
)

// Metrics holds all Prometheus metrics for build-plan
type Metrics struct {
	// Command execution metrics
	CommandExecutions *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec

	// Pipeline stage metrics
	StageRuns     *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	StageErrors   *prometheus.CounterVec

	// Plan shape metrics
	PlanTaskCount       prometheus.Histogram
	PlanDependencyCount prometheus.Histogram

	// Resolution metrics
	ResolvedOrigins *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		CommandExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buildplan_command_executions_total",
				Help: "Total number of command executions",
			},
			[]string{"command", "success"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "buildplan_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),

		StageRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buildplan_stage_runs_total",
				Help: "Total number of pipeline stage runs",
			},
			[]string{"stage", "success"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "buildplan_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"stage"},
		),
		StageErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buildplan_stage_errors_total",
				Help: "Total number of pipeline stage errors by error code",
			},
			[]string{"stage", "error_code"},
		),

		PlanTaskCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "buildplan_plan_task_count",
				Help:    "Number of tasks in assembled plans",
				Buckets: []float64{1, 5, 10, 20, 50, 100, 200},
			},
		),
		PlanDependencyCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "buildplan_plan_dependency_count",
				Help:    "Number of resolved dependencies in assembled plans",
				Buckets: []float64{0, 5, 10, 20, 50, 100, 200},
			},
		),

		ResolvedOrigins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buildplan_resolved_dependencies_total",
				Help: "Total number of resolved dependencies by selection origin",
			},
			[]string{"origin"},
		),
	}
}

// ObserveStage records one stage run. Failed runs are counted by error
// code; errors without a code count as "unknown".
func (m *Metrics) ObserveStage(stage string, d time.Duration, err error) {
	m.StageRuns.WithLabelValues(stage, strconv.FormatBool(err == nil)).Inc()
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		m.StageErrors.WithLabelValues(stage, errorCode(err)).Inc()
	}
}

// ObserveCommand records one command execution
func (m *Metrics) ObserveCommand(command string, d time.Duration, err error) {
	m.CommandExecutions.WithLabelValues(command, strconv.FormatBool(err == nil)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}

func errorCode(err error) string {
	var be *builderrors.BuildError
	if errors.As(err, &be) {
		return string(be.Code)
	}
	return "unknown"
}
