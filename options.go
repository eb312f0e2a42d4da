package zoner

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/arloliu/zoner/internal/logging"
	"github.com/arloliu/zoner/internal/metrics"
)

// Option configures an Allocator with optional dependencies.
type Option func(*allocatorOptions)

// allocatorOptions holds optional Allocator configuration.
type allocatorOptions struct {
	strategy     AssignmentStrategy
	hooks        *Hooks
	metrics      MetricsCollector
	logger       Logger
	randomSource func(seed int64) RandomSource
	verifyResume bool
}

// WithStrategy sets the agent-to-cluster assignment strategy.
//
// The default is strategy.NewHungarian(), which returns the lexicographically
// smallest minimum-cost assignment.
//
// Parameters:
//   - strategy: AssignmentStrategy implementation
//
// Returns:
//   - Option: Functional option for NewAllocator
func WithStrategy(strategy AssignmentStrategy) Option {
	return func(o *allocatorOptions) {
		o.strategy = strategy
	}
}

// WithHooks sets lifecycle event hooks.
//
// Hooks run synchronously on the calling goroutine. A hook error is logged
// and never fails the lifecycle call.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// Example:
//
//	hooks := &zoner.Hooks{
//	    OnAllocated: func(ctx context.Context, category zoner.Category, assignment map[zoner.EntityID]int) error {
//	        return dispatch(category, assignment)
//	    },
//	}
//	alloc, err := zoner.NewAllocator(&cfg, world, zoner.FireBrigade, zoner.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *allocatorOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// Example:
//
//	alloc, err := zoner.NewAllocator(&cfg, world, zoner.FireBrigade,
//	    zoner.WithMetrics(zoner.NewPrometheusMetrics(prometheus.DefaultRegisterer)))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *allocatorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation, see NewZapLogger and NewSlogLogger
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// Example:
//
//	logger := zoner.NewZapLogger(zap.NewExample().Sugar())
//	alloc, err := zoner.NewAllocator(&cfg, world, zoner.FireBrigade, zoner.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *allocatorOptions) {
		o.logger = logger
	}
}

// WithRandomSource replaces the k-means++ random source factory.
//
// The factory is called with Config.Seed once per computation. The default
// builds a math/rand/v2 PCG generator.
//
// Parameters:
//   - factory: Function returning a fresh RandomSource for a seed
//
// Returns:
//   - Option: Functional option for NewAllocator
func WithRandomSource(factory func(seed int64) RandomSource) Option {
	return func(o *allocatorOptions) {
		o.randomSource = factory
	}
}

// WithResumeVerification makes Resume compare the stored site fingerprint
// with the current world model.
//
// A mismatch means the map changed since the snapshot was written. It is
// logged as a warning and counted in metrics; Resume still succeeds.
//
// Returns:
//   - Option: Functional option for NewAllocator
func WithResumeVerification() Option {
	return func(o *allocatorOptions) {
		o.verifyResume = true
	}
}

// NewPrometheusMetrics creates a Prometheus-backed MetricsCollector.
//
// Metrics are registered on first use under the "zoner" namespace.
//
// Parameters:
//   - reg: Prometheus registerer (prometheus.DefaultRegisterer if nil)
//
// Returns:
//   - MetricsCollector: Collector for WithMetrics
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsCollector {
	return metrics.NewPrometheus(reg, "")
}

// NewZapLogger adapts a zap.SugaredLogger to Logger.
//
// Calls are routed to the sugared logger's key-value methods (Infow, Warnw, ...).
// A nil logger discards all records.
func NewZapLogger(logger *zap.SugaredLogger) Logger {
	return logging.NewZap(logger)
}

// NewSlogLogger adapts a log/slog logger to Logger; nil selects slog.Default().
func NewSlogLogger(logger *slog.Logger) Logger {
	return logging.NewSlog(logger)
}
