package termdict

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// EnvPrefix is prepended to every environment variable read by LoadConfig.
const EnvPrefix = "GOSUBSEQ_TERMDICT_"

// Search limits.
const (
	DefaultMaxStatesVisited = 10000
	DefaultMaxTermsMatched  = 1000
	DefaultTimeout          = 5 * time.Second
	DefaultConcurrency      = 4
	DefaultCheckInterval    = 128
)

// Config configures a Searcher.
type Config struct {
	// MaxStatesVisited bounds the dictionary nodes stepped through per search.
	MaxStatesVisited int `env:"MAX_STATES_VISITED"`

	// MaxTermsMatched bounds the terms returned per search.
	MaxTermsMatched int `env:"MAX_TERMS_MATCHED"`

	// Timeout bounds a single search. Zero or negative disables it.
	Timeout time.Duration `env:"TIMEOUT"`

	// Concurrency is the number of dictionaries SearchSegments walks at once.
	Concurrency int `env:"CONCURRENCY"`

	// CheckInterval amortizes context checks during a walk.
	CheckInterval int `env:"CHECK_INTERVAL"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStatesVisited: DefaultMaxStatesVisited,
		MaxTermsMatched:  DefaultMaxTermsMatched,
		Timeout:          DefaultTimeout,
		Concurrency:      DefaultConcurrency,
		CheckInterval:    DefaultCheckInterval,
	}
}

// LoadConfig returns DefaultConfig overlaid with GOSUBSEQ_TERMDICT_*
// environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errors.Wrap(err, "parse termdict config from environment")
	}
	return cfg.withDefaults(), nil
}

// withDefaults replaces non-positive limits with their defaults.
func (c Config) withDefaults() Config {
	if c.MaxStatesVisited <= 0 {
		c.MaxStatesVisited = DefaultMaxStatesVisited
	}
	if c.MaxTermsMatched <= 0 {
		c.MaxTermsMatched = DefaultMaxTermsMatched
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = DefaultCheckInterval
	}
	return c
}
