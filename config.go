package spinpick

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MinGroupCount is the smallest group count an engine accepts.
const MinGroupCount = 2

// MetricsConfig configures the built-in Prometheus collector.
type MetricsConfig struct {
	// Namespace prefixes every exported metric name (default "spinpick").
	Namespace string `yaml:"namespace"`
}

// Config is the configuration for the Engine.
//
// All duration fields accept standard Go duration strings like "5s", "16ms".
//
// Timing Model:
//
//	RequestSpin ──► Spinning ──(SpinDuration)──► settle
//	    roster > 2: assign selected entry, back to Idle
//	    roster = 2: assign selected entry ──(PairRevealDelay)──► assign the other, Empty
//	    roster = 1: Settling ──(FinalRevealDelay)──► assign it, Empty
//
// All timings are measured in engine time, which only advances through
// Engine.Advance (driven by a Runner every FrameInterval in production).
type Config struct {
	// GroupCount is the number of groups entries are split into (>= 2).
	GroupCount int `yaml:"groupCount"`

	// MinScore is the lowest score an entry may carry. Lower scores are raised to it.
	MinScore int `yaml:"minScore"`

	// SpinDuration is how long one wheel spin takes to settle.
	SpinDuration time.Duration `yaml:"spinDuration"`

	// MinTurns and MaxTurns bound the full revolutions per spin, drawn uniformly
	// from [MinTurns, MaxTurns).
	MinTurns float64 `yaml:"minTurns"`
	MaxTurns float64 `yaml:"maxTurns"`

	// PairRevealDelay is the pause between assigning the selected entry of a
	// two-entry spin and assigning the remaining one.
	PairRevealDelay time.Duration `yaml:"pairRevealDelay"`

	// FinalRevealDelay is the pause before a lone remaining entry is assigned.
	FinalRevealDelay time.Duration `yaml:"finalRevealDelay"`

	// FrameInterval is the Runner tick period.
	FrameInterval time.Duration `yaml:"frameInterval"`

	// EventBufferSize is the channel capacity of each Subscribe channel.
	EventBufferSize int `yaml:"eventBufferSize"`

	// Metrics configures the Prometheus collector used by NewPrometheusMetrics.
	Metrics MetricsConfig `yaml:"metrics"`
}

// DefaultConfig returns a Config with the standard wheel timings.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		GroupCount:       2,
		MinScore:         1,
		SpinDuration:     5 * time.Second,
		MinTurns:         5,
		MaxTurns:         10,
		PairRevealDelay:  2 * time.Second,
		FinalRevealDelay: 1 * time.Second,
		FrameInterval:    16 * time.Millisecond,
		EventBufferSize:  16,
		Metrics: MetricsConfig{
			Namespace: "spinpick",
		},
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.GroupCount == 0 {
		cfg.GroupCount = defaults.GroupCount
	}
	if cfg.MinScore == 0 {
		cfg.MinScore = defaults.MinScore
	}
	if cfg.SpinDuration == 0 {
		cfg.SpinDuration = defaults.SpinDuration
	}
	if cfg.MinTurns == 0 {
		cfg.MinTurns = defaults.MinTurns
	}
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = max(defaults.MaxTurns, cfg.MinTurns)
	}
	if cfg.PairRevealDelay == 0 {
		cfg.PairRevealDelay = defaults.PairRevealDelay
	}
	if cfg.FinalRevealDelay == 0 {
		cfg.FinalRevealDelay = defaults.FinalRevealDelay
	}
	if cfg.FrameInterval == 0 {
		cfg.FrameInterval = defaults.FrameInterval
	}
	if cfg.EventBufferSize == 0 {
		cfg.EventBufferSize = defaults.EventBufferSize
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = defaults.Metrics.Namespace
	}
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - GroupCount >= 2
//   - MinScore >= 1
//   - SpinDuration > 0
//   - 0 < MinTurns <= MaxTurns
//   - PairRevealDelay >= 0 and FinalRevealDelay >= 0
//   - FrameInterval > 0
//   - EventBufferSize >= 1
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.GroupCount < MinGroupCount {
		return fmt.Errorf("GroupCount must be >= %d, got %d", MinGroupCount, cfg.GroupCount)
	}
	if cfg.MinScore < 1 {
		return fmt.Errorf("MinScore must be >= 1, got %d", cfg.MinScore)
	}
	if cfg.SpinDuration <= 0 {
		return fmt.Errorf("SpinDuration must be > 0, got %v", cfg.SpinDuration)
	}
	if cfg.MinTurns <= 0 {
		return fmt.Errorf("MinTurns must be > 0, got %v", cfg.MinTurns)
	}
	if cfg.MaxTurns < cfg.MinTurns {
		return fmt.Errorf("MaxTurns (%v) must be >= MinTurns (%v)", cfg.MaxTurns, cfg.MinTurns)
	}
	if cfg.PairRevealDelay < 0 {
		return fmt.Errorf("PairRevealDelay must be >= 0, got %v", cfg.PairRevealDelay)
	}
	if cfg.FinalRevealDelay < 0 {
		return fmt.Errorf("FinalRevealDelay must be >= 0, got %v", cfg.FinalRevealDelay)
	}
	if cfg.FrameInterval <= 0 {
		return fmt.Errorf("FrameInterval must be > 0, got %v", cfg.FrameInterval)
	}
	if cfg.EventBufferSize < 1 {
		return fmt.Errorf("EventBufferSize must be >= 1, got %d", cfg.EventBufferSize)
	}

	return nil
}

// ValidateWithWarnings logs warnings for values that are valid but unusual.
//
// This is called after Validate() in NewEngine() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.FrameInterval > 50*time.Millisecond {
		logger.Warn(
			"FrameInterval is long, wheel animation will look choppy",
			"frameInterval", cfg.FrameInterval,
			"recommended", "16ms to 33ms",
		)
	}
	if cfg.MaxTurns-cfg.MinTurns < 1 {
		logger.Warn(
			"turn range is narrower than one revolution, spin outcomes are barely random",
			"minTurns", cfg.MinTurns,
			"maxTurns", cfg.MaxTurns,
		)
	}
	if cfg.SpinDuration < 10*cfg.FrameInterval {
		logger.Warn(
			"SpinDuration covers fewer than ten frames",
			"spinDuration", cfg.SpinDuration,
			"frameInterval", cfg.FrameInterval,
		)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Timings are 25-50x faster than the defaults. Use DefaultConfig() for real games.
//
// Returns:
//   - Config: Configuration with fast timings for tests
//
// Example:
//
//	cfg := spinpick.TestConfig()
//	cfg.GroupCount = 3
//	engine, err := spinpick.NewEngine(&cfg)
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.SpinDuration = 100 * time.Millisecond    // 50x faster
	cfg.PairRevealDelay = 40 * time.Millisecond  // 50x faster
	cfg.FinalRevealDelay = 20 * time.Millisecond // 50x faster
	cfg.FrameInterval = 5 * time.Millisecond

	return cfg
}

// ParseConfig decodes a YAML document into a Config.
//
// Missing fields take their defaults, and the result is validated.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Config: Parsed configuration with defaults applied
//   - error: Parse error, or ErrInvalidConfig-wrapped validation error
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - Config: Loaded configuration with defaults applied
//   - error: Error if the file cannot be read, parsed or validated
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}
