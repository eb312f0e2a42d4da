package zoner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/zoner/internal/logging"
	"github.com/arloliu/zoner/kmeans"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, int64(kmeans.DefaultSeed), cfg.Seed)
	require.Equal(t, 20, cfg.PrecomputeRounds)
	require.Equal(t, 20, cfg.PrepareRounds)
	require.Equal(t, AllSiteKinds(), cfg.SiteKinds)
	require.Equal(t, "zoner.allocator", cfg.KeyPrefix)
	require.Equal(t, 30*time.Second, cfg.OperationTimeout)
	require.Equal(t, "zoner-allocations", cfg.Store.Bucket)
	require.Equal(t, "zoner-allocations", cfg.Store.Table)
	require.Zero(t, cfg.Store.TTL)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Run("applies defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("preserves custom values", func(t *testing.T) {
		cfg := Config{
			Seed:             42,
			PrecomputeRounds: 50,
			PrepareRounds:    10,
			SiteKinds:        []SiteKind{SiteRoad, SiteHydrant},
			KeyPrefix:        "sim.zones",
			OperationTimeout: time.Minute,
			Store: StoreConfig{
				Bucket: "zones",
				TTL:    24 * time.Hour,
				Table:  "zones-table",
			},
		}
		SetDefaults(&cfg)

		// All custom values should be preserved
		require.Equal(t, int64(42), cfg.Seed)
		require.Equal(t, 50, cfg.PrecomputeRounds)
		require.Equal(t, 10, cfg.PrepareRounds)
		require.Equal(t, []SiteKind{SiteRoad, SiteHydrant}, cfg.SiteKinds)
		require.Equal(t, "sim.zones", cfg.KeyPrefix)
		require.Equal(t, time.Minute, cfg.OperationTimeout)
		require.Equal(t, "zones", cfg.Store.Bucket)
		require.Equal(t, 24*time.Hour, cfg.Store.TTL)
		require.Equal(t, "zones-table", cfg.Store.Table)
	})

	t.Run("applies partial defaults", func(t *testing.T) {
		cfg := Config{
			PrepareRounds: 8,
			// Leave other fields empty
		}
		SetDefaults(&cfg)

		require.Equal(t, 8, cfg.PrepareRounds)
		require.Equal(t, 20, cfg.PrecomputeRounds)
		require.Equal(t, "zoner.allocator", cfg.KeyPrefix)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero precompute rounds", mutate: func(cfg *Config) { cfg.PrecomputeRounds = 0 }, wantErr: "PrecomputeRounds"},
		{name: "negative prepare rounds", mutate: func(cfg *Config) { cfg.PrepareRounds = -3 }, wantErr: "PrepareRounds"},
		{name: "no site kinds", mutate: func(cfg *Config) { cfg.SiteKinds = nil }, wantErr: "SiteKinds"},
		{name: "unknown site kind", mutate: func(cfg *Config) { cfg.SiteKinds = []SiteKind{"bridge"} }, wantErr: "bridge"},
		{name: "empty key prefix", mutate: func(cfg *Config) { cfg.KeyPrefix = "" }, wantErr: "KeyPrefix"},
		{name: "empty key prefix token", mutate: func(cfg *Config) { cfg.KeyPrefix = "zoner..allocator" }, wantErr: "empty token"},
		{name: "key prefix with space", mutate: func(cfg *Config) { cfg.KeyPrefix = "zoner alloc" }, wantErr: "invalid character"},
		{name: "key prefix with wildcard", mutate: func(cfg *Config) { cfg.KeyPrefix = "zoner.*" }, wantErr: "invalid character"},
		{name: "multi token key prefix", mutate: func(cfg *Config) { cfg.KeyPrefix = "sim_1.zones-A" }},
		{name: "zero timeout", mutate: func(cfg *Config) { cfg.OperationTimeout = 0 }, wantErr: "OperationTimeout"},
		{name: "negative ttl", mutate: func(cfg *Config) { cfg.Store.TTL = -time.Second }, wantErr: "Store.TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateWithWarnings(t *testing.T) {
	t.Run("defaults produce no warnings", func(t *testing.T) {
		logger := &warnRecorder{}
		cfg := DefaultConfig()
		cfg.ValidateWithWarnings(logger)

		require.Empty(t, logger.warnings)
	})

	t.Run("non-recommended values are reported", func(t *testing.T) {
		logger := &warnRecorder{}
		cfg := DefaultConfig()
		cfg.PrepareRounds = 2
		cfg.OperationTimeout = 200 * time.Millisecond
		cfg.Store.TTL = 10 * time.Minute
		cfg.ValidateWithWarnings(logger)

		require.Len(t, logger.warnings, 3)
	})

	t.Run("test logger accepts warnings", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PrecomputeRounds = 1
		cfg.ValidateWithWarnings(logging.NewTest(t))
	})
}

// TestConfig_YAML demonstrates that time.Duration works directly with YAML unmarshaling
func TestConfig_YAML(t *testing.T) {
	yamlConfig := `
seed: 7
precomputeRounds: 40
prepareRounds: 12
siteKinds: [road, refuge]
keyPrefix: sim.zones
operationTimeout: 1m
store:
  bucket: zones
  ttl: 48h
  table: zones-table
`

	var cfg Config
	err := yaml.Unmarshal([]byte(yamlConfig), &cfg)
	require.NoError(t, err)

	require.Equal(t, int64(7), cfg.Seed)
	require.Equal(t, 40, cfg.PrecomputeRounds)
	require.Equal(t, 12, cfg.PrepareRounds)
	require.Equal(t, []SiteKind{SiteRoad, SiteRefuge}, cfg.SiteKinds)
	require.Equal(t, "sim.zones", cfg.KeyPrefix)
	require.Equal(t, time.Minute, cfg.OperationTimeout)
	require.Equal(t, "zones", cfg.Store.Bucket)
	require.Equal(t, 48*time.Hour, cfg.Store.TTL)
	require.Equal(t, "zones-table", cfg.Store.Table)
}

func TestLoadConfig(t *testing.T) {
	t.Run("partial document gets defaults", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader("prepareRounds: 9\nsiteKinds: [building]\n"))
		require.NoError(t, err)

		require.Equal(t, 9, cfg.PrepareRounds)
		require.Equal(t, []SiteKind{SiteBuilding}, cfg.SiteKinds)
		require.Equal(t, 20, cfg.PrecomputeRounds)
		require.Equal(t, 30*time.Second, cfg.OperationTimeout)
	})

	t.Run("empty document yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("workerIdPrefix: worker\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("malformed duration", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("operationTimeout: soon\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("siteKinds: [bridge]\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Contains(t, err.Error(), "bridge")
	})
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	require.Equal(t, 5, cfg.PrecomputeRounds)
	require.Equal(t, 5, cfg.PrepareRounds)
	require.Equal(t, 5*time.Second, cfg.OperationTimeout)
	require.NoError(t, cfg.Validate())
}

type warnRecorder struct {
	logging.NopLogger
	warnings []string
}

func (r *warnRecorder) Warn(msg string, _ ...any) {
	r.warnings = append(r.warnings, msg)
}
