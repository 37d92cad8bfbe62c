package spinpick

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	partitioner Partitioner
	random      RandomSource
	clock       Clock
	hooks       *Hooks
	metrics     MetricsCollector
	logger      Logger
}

// WithPartitioner sets the strategy used to precompute group membership.
//
// Parameters:
//   - p: Partitioner implementation (default strategy.NewBalanced())
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	engine, err := spinpick.NewEngine(&cfg, spinpick.WithPartitioner(strategy.NewRoundRobin()))
func WithPartitioner(p Partitioner) Option {
	return func(o *engineOptions) {
		o.partitioner = p
	}
}

// WithRandomSource sets the source used to pick the number of turns per spin.
//
// Parameters:
//   - r: RandomSource yielding floats in [0, 1) (default uses lukechampine.com/frand)
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2)) // deterministic spins
//	engine, err := spinpick.NewEngine(&cfg, spinpick.WithRandomSource(rng))
func WithRandomSource(r RandomSource) Option {
	return func(o *engineOptions) {
		o.random = r
	}
}

// WithClock sets the wall clock used to measure spin durations for metrics.
//
// Engine timing itself is driven only by Advance.
func WithClock(c Clock) Option {
	return func(o *engineOptions) {
		o.clock = c
	}
}

// WithHooks sets engine event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions; unset callbacks become no-ops
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	hooks := &spinpick.Hooks{
//	    OnFallback: func(ctx context.Context, e spinpick.Entry, group int) error {
//	        alert("entry %s was not in the precomputed assignment", e.Name)
//	        return nil
//	    },
//	}
//	engine, err := spinpick.NewEngine(&cfg, spinpick.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *engineOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	engine, err := spinpick.NewEngine(&cfg, spinpick.WithMetrics(spinpick.NewPrometheusMetrics(nil, cfg.Metrics.Namespace)))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation, e.g. from NewSlogLogger
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	logger := spinpick.NewSlogLogger(slog.Default())
//	engine, err := spinpick.NewEngine(&cfg, spinpick.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}
