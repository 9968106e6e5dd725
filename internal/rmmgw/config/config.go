// Package config provides centralized configuration management for
// the gateway, grounded on the rest of the example pack's Viper-based
// config loader: deterministic precedence (flags > env > file >
// defaults), fail-fast on invalid values (spec.md §1: configuration
// loading is an external collaborator, but the loader itself is
// ambient scaffolding every server needs).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/usnistgov/rmm-go/internal/rmmgw/logging"
)

// Config holds all process configuration.
type Config struct {
	HTTP   HTTPConfig   `mapstructure:"http"`
	Health HealthConfig `mapstructure:"health"`
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
}

// HTTPConfig holds the main resource-router listener settings.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// HealthConfig holds the health/metrics listener settings.
type HealthConfig struct {
	Port int `mapstructure:"port"`
}

// LogConfig holds logger construction settings.
type LogConfig struct {
	Style string `mapstructure:"style"`
	Level string `mapstructure:"level"`
}

// StoreConfig selects and configures the CollectionStore backend.
type StoreConfig struct {
	// Kind is "memory" or "antfly".
	Kind          string        `mapstructure:"kind"`
	AntflyURL     string        `mapstructure:"antfly_url"`
	AntflyTimeout time.Duration `mapstructure:"antfly_timeout"`
}

// Default configuration values.
const (
	DefaultHTTPPort      = 8080
	DefaultHealthPort    = 8081
	DefaultLogStyle      = "terminal"
	DefaultLogLevel      = "info"
	DefaultStoreKind     = "memory"
	DefaultAntflyTimeout = 30 * time.Second
)

// EnvPrefix is the environment-variable namespace every setting is
// bound under (e.g. RMMGW_HTTP_PORT).
const EnvPrefix = "RMMGW"

// Load builds a Config using Viper with precedence: flags > env > file
// > defaults. It binds flags from cmd (and its parents).
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := bindFlagsRecursive(v, cmd); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", DefaultHTTPPort)
	v.SetDefault("health.port", DefaultHealthPort)
	v.SetDefault("log.style", DefaultLogStyle)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("store.kind", DefaultStoreKind)
	v.SetDefault("store.antfly_url", "")
	v.SetDefault("store.antfly_timeout", DefaultAntflyTimeout)
}

func bindFlagsRecursive(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return bindFlagsRecursive(v, cmd.Parent())
}

// Validate fails fast on configuration combinations that would only
// surface as a confusing runtime error later.
func (c Config) Validate() error {
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("http.port must be positive, got %d", c.HTTP.Port)
	}
	if c.Health.Port <= 0 {
		return fmt.Errorf("health.port must be positive, got %d", c.Health.Port)
	}
	if c.HTTP.Port == c.Health.Port {
		return fmt.Errorf("http.port and health.port must differ, both %d", c.HTTP.Port)
	}
	switch c.Store.Kind {
	case "memory", "antfly":
	default:
		return fmt.Errorf("store.kind must be memory or antfly, got %q", c.Store.Kind)
	}
	if c.Store.Kind == "antfly" && c.Store.AntflyURL == "" {
		return fmt.Errorf("store.antfly_url is required when store.kind is antfly")
	}
	return nil
}

// LoggingConfig adapts this Config's Log section into the shape
// logging.NewLogger expects.
func (c Config) LoggingConfig() *logging.Config {
	return &logging.Config{
		Style: logging.Style(c.Log.Style),
		Level: logging.Level(c.Log.Level),
	}
}
