package zoner

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/zoner/kmeans"
)

// StoreConfig configures the built-in persistence backends.
//
// The allocator itself only sees a Store; NewJetStream and NewDynamoDB build
// one of the store package backends from these values.
type StoreConfig struct {
	// Bucket is the NATS JetStream KV bucket name.
	Bucket string `yaml:"bucket"`

	// TTL expires persisted allocations (0 = no expiration).
	// Precomputed allocations are usually kept for the lifetime of a map.
	TTL time.Duration `yaml:"ttl"`

	// Table is the DynamoDB table name.
	Table string `yaml:"table"`
}

// Config is the configuration for the Allocator.
//
// All duration fields accept standard Go duration strings like "30s", "5m", "1h".
type Config struct {
	// Seed seeds the k-means++ random source.
	// Zero selects DefaultSeed; identical seeds and inputs always produce
	// identical allocations.
	Seed int64 `yaml:"seed"`

	// PrecomputeRounds is the number of Lloyd refinement rounds run by Precompute.
	// Recommended: 20.
	PrecomputeRounds int `yaml:"precomputeRounds"`

	// PrepareRounds is the number of Lloyd refinement rounds run by Prepare.
	// Recommended: 20.
	PrepareRounds int `yaml:"prepareRounds"`

	// SiteKinds restricts the map entities used as cluster sites.
	// Default: every built-in site kind.
	SiteKinds []SiteKind `yaml:"siteKinds"`

	// KeyPrefix namespaces persisted keys (e.g. "zoner.allocator" produces
	// "zoner.allocator.n.fire_brigade").
	KeyPrefix string `yaml:"keyPrefix"`

	// OperationTimeout bounds each lifecycle call, including world model
	// queries and store operations.
	// Recommended: 30 seconds.
	OperationTimeout time.Duration `yaml:"operationTimeout"`

	// Store controls the built-in persistence backends.
	Store StoreConfig `yaml:"store"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Seed:             kmeans.DefaultSeed,
		PrecomputeRounds: 20,
		PrepareRounds:    20,
		SiteKinds:        AllSiteKinds(),
		KeyPrefix:        "zoner.allocator",
		OperationTimeout: 30 * time.Second,
		Store: StoreConfig{
			Bucket: "zoner-allocations",
			TTL:    0, // No TTL - precomputed allocations outlive the process
			Table:  "zoner-allocations",
		},
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Seed == 0 {
		cfg.Seed = defaults.Seed
	}
	if cfg.PrecomputeRounds == 0 {
		cfg.PrecomputeRounds = defaults.PrecomputeRounds
	}
	if cfg.PrepareRounds == 0 {
		cfg.PrepareRounds = defaults.PrepareRounds
	}
	if len(cfg.SiteKinds) == 0 {
		cfg.SiteKinds = defaults.SiteKinds
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaults.KeyPrefix
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = defaults.OperationTimeout
	}
	if cfg.Store.Bucket == "" {
		cfg.Store.Bucket = defaults.Store.Bucket
	}
	if cfg.Store.Table == "" {
		cfg.Store.Table = defaults.Store.Table
	}
	// Note: Store.TTL of 0 is valid (no expiration), so we don't apply default
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - PrecomputeRounds > 0 and PrepareRounds > 0
//   - SiteKinds contains only known kinds
//   - KeyPrefix is non-empty dot-separated tokens of [A-Za-z0-9_-]
//   - OperationTimeout > 0
//   - Store.TTL >= 0
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.PrecomputeRounds <= 0 {
		return fmt.Errorf("PrecomputeRounds must be > 0, got %d", cfg.PrecomputeRounds)
	}
	if cfg.PrepareRounds <= 0 {
		return fmt.Errorf("PrepareRounds must be > 0, got %d", cfg.PrepareRounds)
	}

	if len(cfg.SiteKinds) == 0 {
		return errors.New("SiteKinds must name at least one site kind")
	}
	for _, kind := range cfg.SiteKinds {
		if !kind.Valid() {
			return fmt.Errorf("unknown site kind %q", kind)
		}
	}

	if err := validateKeyPrefix(cfg.KeyPrefix); err != nil {
		return err
	}

	if cfg.OperationTimeout <= 0 {
		return fmt.Errorf("OperationTimeout must be > 0, got %v", cfg.OperationTimeout)
	}
	if cfg.Store.TTL < 0 {
		return fmt.Errorf("Store.TTL must be >= 0, got %v", cfg.Store.TTL)
	}

	return nil
}

// validateKeyPrefix accepts tokens usable in both NATS KV keys and DynamoDB keys.
func validateKeyPrefix(prefix string) error {
	if prefix == "" {
		return errors.New("KeyPrefix must not be empty")
	}

	for _, token := range strings.Split(prefix, ".") {
		if token == "" {
			return fmt.Errorf("KeyPrefix %q has an empty token", prefix)
		}
		for _, r := range token {
			ok := r == '_' || r == '-' ||
				(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
			if !ok {
				return fmt.Errorf("KeyPrefix %q contains invalid character %q", prefix, r)
			}
		}
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for non-recommended values.
//
// This is called after Validate() in NewAllocator() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.PrecomputeRounds < 5 || cfg.PrepareRounds < 5 {
		logger.Warn(
			"very few Lloyd rounds, clusters may stay close to their seeds",
			"precomputeRounds", cfg.PrecomputeRounds,
			"prepareRounds", cfg.PrepareRounds,
			"recommended", 20,
		)
	}

	if cfg.OperationTimeout < time.Second {
		logger.Warn(
			"OperationTimeout is very short, large maps may not finish computing",
			"operationTimeout", cfg.OperationTimeout,
			"recommended", "30s or higher",
		)
	}

	if cfg.Store.TTL > 0 && cfg.Store.TTL < time.Hour {
		logger.Warn(
			"Store.TTL is short, precomputed allocations may expire before resume",
			"ttl", cfg.Store.TTL,
			"recommended", "0 (no expiration)",
		)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Use DefaultConfig() for production deployments.
//
// Returns:
//   - Config: Configuration with fewer rounds and a short timeout
//
// Example:
//
//	cfg := zoner.TestConfig()
//	cfg.KeyPrefix = "test.allocator"
//	alloc, err := zoner.NewAllocator(&cfg, world, zoner.FireBrigade)
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.PrecomputeRounds = 5
	cfg.PrepareRounds = 5
	cfg.OperationTimeout = 5 * time.Second

	return cfg
}

// LoadConfig reads a YAML configuration, applies defaults and validates it.
//
// Parameters:
//   - r: YAML source
//
// Returns:
//   - Config: Loaded configuration
//   - error: Decode or validation error (wraps ErrInvalidConfig)
//
// Example:
//
//	f, _ := os.Open("zoner.yaml")
//	defer f.Close()
//	cfg, err := zoner.LoadConfig(f)
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}
