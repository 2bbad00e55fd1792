// Package config loads application configuration from file, environment,
// and defaults, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Match MatchConfig `yaml:"match" mapstructure:"match"`
	Store StoreConfig `yaml:"store" mapstructure:"store"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// MatchConfig configures gated fuzzy matching and review scoring. The
// thresholds are policy, not constants: strict gated matching by
// default, tunable per deployment.
type MatchConfig struct {
	AcceptThreshold float64 `yaml:"accept_threshold" mapstructure:"accept_threshold"`
	MinMargin       float64 `yaml:"min_margin" mapstructure:"min_margin"`
	ReviewTopN      int     `yaml:"review_top_n" mapstructure:"review_top_n"`
}

// StoreConfig configures the optional SQLite audit store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ROSTERLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("match.accept_threshold", 0.92)
	v.SetDefault("match.min_margin", 0.04)
	v.SetDefault("match.review_top_n", 5)
	v.SetDefault("store.path", "rosterlink.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
