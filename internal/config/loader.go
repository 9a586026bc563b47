package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment.
// Priority (highest to lowest): env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("HEADLINER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("headliner")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".headliner"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default scalar values in viper. The source rule sets
// stay on the Config struct: a config file replaces them wholesale or not
// at all.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("fetcher.user_agent", cfg.Fetcher.UserAgent)
	v.SetDefault("fetcher.request_timeout", cfg.Fetcher.RequestTimeout)
	v.SetDefault("fetcher.max_attempts", cfg.Fetcher.MaxAttempts)
	v.SetDefault("fetcher.retry_delay", cfg.Fetcher.RetryDelay)
	v.SetDefault("fetcher.cooldown", cfg.Fetcher.Cooldown)
	v.SetDefault("fetcher.max_body_size", cfg.Fetcher.MaxBodySize)

	v.SetDefault("browser.enabled", cfg.Browser.Enabled)
	v.SetDefault("browser.max_load_more", cfg.Browser.MaxLoadMore)
	v.SetDefault("browser.load_more_wait", cfg.Browser.LoadMoreWait)

	v.SetDefault("dataset.backend", cfg.Dataset.Backend)
	v.SetDefault("dataset.original_path", cfg.Dataset.OriginalPath)
	v.SetDefault("dataset.integrated_path", cfg.Dataset.IntegratedPath)
	v.SetDefault("dataset.mongo.uri", cfg.Dataset.Mongo.URI)
	v.SetDefault("dataset.mongo.database", cfg.Dataset.Mongo.Database)
	v.SetDefault("dataset.mongo.collection", cfg.Dataset.Mongo.Collection)

	v.SetDefault("report.path", cfg.Report.Path)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}
