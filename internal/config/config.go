package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends for persisted selection state.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

const (
	defaultKeyPrefix    = "reposel"
	defaultTimeout      = 10 * time.Second
	defaultRetryElapsed = 30 * time.Second
	envPrefix           = "REPOSEL"
)

var (
	// ErrInvalidConfig indicates a configuration value failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrConfigNotFound indicates an explicitly requested config file is missing.
	ErrConfigNotFound = errors.New("config file not found")
)

// Config is the resolved reposel configuration.
type Config struct {
	// Endpoint is the GraphQL endpoint serving the workspace query.
	Endpoint string `mapstructure:"endpoint"`

	// WorkspaceFile is a YAML/JSON workspace snapshot used instead of Endpoint.
	WorkspaceFile string `mapstructure:"workspace_file"`

	// Storage selects the durable storage backend ("file" or "sqlite").
	Storage string `mapstructure:"storage"`

	// KeyPrefix prefixes every persisted storage key.
	KeyPrefix string `mapstructure:"key_prefix"`

	// Timeout bounds a single workspace query attempt.
	Timeout time.Duration `mapstructure:"timeout"`

	Retry RetryConfig `mapstructure:"retry"`
}

// RetryConfig bounds workspace query retries.
type RetryConfig struct {
	MaxElapsed time.Duration `mapstructure:"max_elapsed"`
}

// Load reads config.yaml at path and applies REPOSEL_* environment
// overrides, e.g. REPOSEL_ENDPOINT or REPOSEL_RETRY_MAX_ELAPSED. A missing
// file falls back to defaults unless required is set.
func Load(path string, required bool) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetDefault("storage", StorageFile)
	v.SetDefault("key_prefix", defaultKeyPrefix)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("retry.max_elapsed", defaultRetryElapsed)
	v.SetDefault("endpoint", "")
	v.SetDefault("workspace_file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// SetConfigFile on a missing path yields a plain *fs.PathError.
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		switch {
		case missing && required:
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		case !missing:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("%w: storage %q (valid values: file, sqlite)", ErrInvalidConfig, c.Storage)
	}
	if c.KeyPrefix == "" {
		return fmt.Errorf("%w: key_prefix must not be empty", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.KeyPrefix, `/\`) {
		return fmt.Errorf("%w: key_prefix must not contain path separators", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.Retry.MaxElapsed < 0 {
		return fmt.Errorf("%w: retry.max_elapsed must not be negative", ErrInvalidConfig)
	}
	return nil
}

// SourceDescriptor identifies the workspace the selection state belongs to.
// Selection state is scoped per workspace so two dashboards never share it.
// Snapshot files are identified by their absolute path.
func (c *Config) SourceDescriptor() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	path := filepath.Clean(c.WorkspaceFile)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file:" + path
}
