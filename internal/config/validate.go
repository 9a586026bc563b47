package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Fetcher.MaxAttempts < 1 {
		return fmt.Errorf("fetcher.max_attempts must be >= 1, got %d", cfg.Fetcher.MaxAttempts)
	}
	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.RetryDelay < 0 {
		return fmt.Errorf("fetcher.retry_delay must be >= 0")
	}
	if cfg.Fetcher.Cooldown < 0 {
		return fmt.Errorf("fetcher.cooldown must be >= 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}

	if len(cfg.Sources) != 2 {
		return fmt.Errorf("exactly 2 sources required for balanced sampling, got %d", len(cfg.Sources))
	}
	for i, src := range cfg.Sources {
		if src.Name == "" {
			return fmt.Errorf("sources[%d].name must not be empty", i)
		}
		if err := ValidateURL(src.URL); err != nil {
			return fmt.Errorf("sources[%d].url: %w", i, err)
		}
		if src.MinLength < 1 {
			return fmt.Errorf("sources[%d].min_length must be >= 1, got %d", i, src.MinLength)
		}
		if src.MaxLength <= src.MinLength {
			return fmt.Errorf("sources[%d].max_length must be > min_length", i)
		}
		if len(src.Rules) == 0 {
			return fmt.Errorf("sources[%d] has no selection rules", i)
		}
		for j, rule := range src.Rules {
			if rule.Type != "css" && rule.Type != "xpath" {
				return fmt.Errorf("sources[%d].rules[%d].type must be 'css' or 'xpath', got %q", i, j, rule.Type)
			}
			if rule.Selector == "" {
				return fmt.Errorf("sources[%d].rules[%d].selector must not be empty", i, j)
			}
		}
		if src.Paginated && src.LoadMoreSelector == "" {
			return fmt.Errorf("sources[%d] is paginated but has no load_more_selector", i)
		}
	}

	if cfg.Browser.MaxLoadMore < 0 {
		return fmt.Errorf("browser.max_load_more must be >= 0")
	}

	if cfg.Dataset.Backend != "csv" && cfg.Dataset.Backend != "mongo" {
		return fmt.Errorf("dataset.backend must be 'csv' or 'mongo', got %q", cfg.Dataset.Backend)
	}
	if cfg.Dataset.OriginalPath == "" {
		return fmt.Errorf("dataset.original_path must not be empty")
	}
	if cfg.Dataset.Backend == "csv" && cfg.Dataset.IntegratedPath == "" {
		return fmt.Errorf("dataset.integrated_path must not be empty")
	}
	if cfg.Report.Path == "" {
		return fmt.Errorf("report.path must not be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is valid for fetching.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
