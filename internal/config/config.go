package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for the headline collector.
type Config struct {
	Fetcher Fetcher        `mapstructure:"fetcher" yaml:"fetcher"`
	Browser Browser        `mapstructure:"browser" yaml:"browser"`
	Sources []Source       `mapstructure:"sources" yaml:"sources"`
	Dataset Dataset        `mapstructure:"dataset" yaml:"dataset"`
	Report  Report         `mapstructure:"report"  yaml:"report"`
	Logging Logging        `mapstructure:"logging" yaml:"logging"`
}

// Fetcher controls the HTTP fetch/retry behavior.
type Fetcher struct {
	UserAgent      string        `mapstructure:"user_agent"      yaml:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"    yaml:"max_attempts"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"     yaml:"retry_delay"`
	Cooldown       time.Duration `mapstructure:"cooldown"        yaml:"cooldown"`
	MaxBodySize    int64         `mapstructure:"max_body_size"   yaml:"max_body_size"`
}

// Browser controls the optional headless-browser pagination fallback.
type Browser struct {
	Enabled      bool          `mapstructure:"enabled"        yaml:"enabled"`
	MaxLoadMore  int           `mapstructure:"max_load_more"  yaml:"max_load_more"`
	LoadMoreWait time.Duration `mapstructure:"load_more_wait" yaml:"load_more_wait"`
}

// Source configures one news source: where to fetch and, as data rather than
// code, how to recognize a headline on that page.
type Source struct {
	Name             string   `mapstructure:"name"               yaml:"name"`
	URL              string   `mapstructure:"url"                yaml:"url"`
	Paginated        bool     `mapstructure:"paginated"          yaml:"paginated"`
	LoadMoreSelector string   `mapstructure:"load_more_selector" yaml:"load_more_selector"`
	MinLength        int      `mapstructure:"min_length"         yaml:"min_length"`
	MaxLength        int      `mapstructure:"max_length"         yaml:"max_length"`
	ExcludeKeywords  []string `mapstructure:"exclude_keywords"   yaml:"exclude_keywords"`
	Rules            []Rule   `mapstructure:"rules"              yaml:"rules"`
}

// Rule is a single candidate-selection rule. Rules run in listed order and
// their matches are unioned; a later, broader rule may add headlines a
// narrower one missed.
type Rule struct {
	Name     string `mapstructure:"name"     yaml:"name"`
	Type     string `mapstructure:"type"     yaml:"type"` // css, xpath
	Selector string `mapstructure:"selector" yaml:"selector"`

	// HrefAllow/HrefDeny apply only to rules whose candidates are anchors:
	// when HrefAllow is set, a candidate must link to a same-site article
	// path (relative, or containing an allow token) and must not contain
	// any deny token. Used for the broad link-fallback rules.
	HrefAllow []string `mapstructure:"href_allow" yaml:"href_allow"`
	HrefDeny  []string `mapstructure:"href_deny"  yaml:"href_deny"`
}

// Dataset controls the original and integrated dataset stores.
type Dataset struct {
	Backend        string `mapstructure:"backend"         yaml:"backend"` // csv, mongo
	OriginalPath   string `mapstructure:"original_path"   yaml:"original_path"`
	IntegratedPath string `mapstructure:"integrated_path" yaml:"integrated_path"`
	Mongo          Mongo  `mapstructure:"mongo"           yaml:"mongo"`
}

// Mongo configures the MongoDB integrated-store backend.
type Mongo struct {
	URI        string `mapstructure:"uri"        yaml:"uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// Report controls the run ledger.
type Report struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// Logging controls logging behavior.
type Logging struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults, including the
// built-in rule sets for the two default sources.
func DefaultConfig() *Config {
	return &Config{
		Fetcher: Fetcher{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			RequestTimeout: 15 * time.Second,
			MaxAttempts:    3,
			RetryDelay:     1 * time.Second,
			Cooldown:       2 * time.Second,
			MaxBodySize:    10 * 1024 * 1024, // 10MB
		},
		Browser: Browser{
			Enabled:      true,
			MaxLoadMore:  5,
			LoadMoreWait: 1500 * time.Millisecond,
		},
		Sources: []Source{
			FoxNewsSource(),
			NBCNewsSource(),
		},
		Dataset: Dataset{
			Backend:        "csv",
			OriginalPath:   "data/scraped_headlines_data.csv",
			IntegratedPath: "data/daily_updated_headlines_data.csv",
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   "headliner",
				Collection: "integrated",
			},
		},
		Report: Report{
			Path: "data/collection_report.csv",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}
