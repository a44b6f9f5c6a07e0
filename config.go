package shiftboard

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/calendario/shiftboard/internal/api"
	"github.com/calendario/shiftboard/types"
)

// EndpointConfig overrides the server route paths. Leave fields empty to use
// the standard calendario routes.
type EndpointConfig struct {
	// RecalculatePath is the shift-count recalculation endpoint.
	RecalculatePath string `yaml:"recalculatePath"`

	// CheckPath is the rule-violation check endpoint.
	CheckPath string `yaml:"checkPath"`

	// EventDropPath is the event move/copy commit endpoint.
	EventDropPath string `yaml:"eventDropPath"`

	// EventDetailsFormat is a printf format with one %d for the event id.
	EventDetailsFormat string `yaml:"eventDetailsFormat"`
}

// RetryConfig controls retrying of the idempotent server calls. The event
// drop commit is never retried regardless of these settings.
type RetryConfig struct {
	// Attempts is the number of retries beyond the first try.
	Attempts int `yaml:"attempts"`

	// Base is the initial backoff delay between retries.
	Base time.Duration `yaml:"base"`

	// Cap bounds the jittered backoff growth.
	Cap time.Duration `yaml:"cap"`
}

// Config is the configuration for a Board.
//
// All duration fields accept standard Go duration strings like "500ms", "2s".
type Config struct {
	// BaseURL is the scheme://host[:port] prefix of the calendario server.
	// Required.
	BaseURL string `yaml:"baseUrl"`

	// Month is the board's month key ("YYYY-MM"). Required; every snapshot
	// is scoped to it.
	Month string `yaml:"month"`

	// RequestTimeout bounds each individual HTTP request. Ignored when a
	// custom HTTP client is supplied via WithHTTPClient.
	RequestTimeout time.Duration `yaml:"requestTimeout"`

	// ViolationSubject is the publish subject for violation-change events.
	// Only used when a publisher is supplied via WithPublisher.
	ViolationSubject string `yaml:"violationSubject"`

	// Endpoints overrides the server route paths.
	Endpoints EndpointConfig `yaml:"endpoints"`

	// Retry controls retrying of the idempotent calls.
	Retry RetryConfig `yaml:"retry"`
}

// DefaultConfig returns a Config with sensible defaults. BaseURL and Month
// have no defaults and must still be set.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:   10 * time.Second,
		ViolationSubject: "calendario.violations",
		Retry: RetryConfig{
			Attempts: 2,
			Base:     200 * time.Millisecond,
			Cap:      2 * time.Second,
		},
	}
}

// SetDefaults fills in missing configuration values with production
// defaults. BaseURL and Month are left alone; Validate rejects them when
// missing.
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.ViolationSubject == "" {
		cfg.ViolationSubject = defaults.ViolationSubject
	}
	if cfg.Retry.Base == 0 {
		cfg.Retry.Base = defaults.Retry.Base
	}
	if cfg.Retry.Cap == 0 {
		cfg.Retry.Cap = defaults.Retry.Cap
	}
}

// Validate checks the configuration for hard errors.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("BaseURL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BaseURL (%q) must be an absolute URL", cfg.BaseURL)
	}

	if cfg.Month == "" {
		return fmt.Errorf("Month is required")
	}
	if !types.ValidMonthKey(cfg.Month) {
		return fmt.Errorf("Month (%q) must be a YYYY-MM month key", cfg.Month)
	}

	if cfg.Retry.Attempts < 0 {
		return fmt.Errorf("Retry.Attempts must be >= 0, got %d", cfg.Retry.Attempts)
	}
	if cfg.Retry.Cap < cfg.Retry.Base {
		return fmt.Errorf(
			"Retry.Cap (%v) must be >= Retry.Base (%v)",
			cfg.Retry.Cap, cfg.Retry.Base,
		)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("RequestTimeout must be > 0, got %v", cfg.RequestTimeout)
	}

	return nil
}

// ValidateWithWarnings logs warnings for legal but non-recommended values.
// Called after Validate in NewBoard to provide operator guidance.
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.Retry.Attempts > 5 {
		logger.Warn(
			"Retry.Attempts is high, failed syncs will stay pending for a long time",
			"attempts", cfg.Retry.Attempts,
			"recommended", "5 or fewer",
		)
	}

	if cfg.RequestTimeout < time.Second {
		logger.Warn(
			"RequestTimeout is very short, slow rule checks may be cut off",
			"timeout", cfg.RequestTimeout,
			"recommended", "1s or higher",
		)
	}
}

// yamlConfig mirrors Config for file decoding. Durations arrive as Go
// duration strings ("500ms", "2s") which yaml cannot decode into
// time.Duration on its own.
type yamlConfig struct {
	BaseURL          string         `yaml:"baseUrl"`
	Month            string         `yaml:"month"`
	RequestTimeout   string         `yaml:"requestTimeout"`
	ViolationSubject string         `yaml:"violationSubject"`
	Endpoints        EndpointConfig `yaml:"endpoints"`
	Retry            struct {
		Attempts int    `yaml:"attempts"`
		Base     string `yaml:"base"`
		Cap      string `yaml:"cap"`
	} `yaml:"retry"`
}

// LoadConfig reads a YAML configuration file and applies defaults. The
// result still needs Validate; NewBoard runs it.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var file yamlConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Config{
		BaseURL:          file.BaseURL,
		Month:            file.Month,
		ViolationSubject: file.ViolationSubject,
		Endpoints:        file.Endpoints,
		Retry:            RetryConfig{Attempts: file.Retry.Attempts},
	}
	if cfg.RequestTimeout, err = parseDuration("requestTimeout", file.RequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Retry.Base, err = parseDuration("retry.base", file.Retry.Base); err != nil {
		return Config{}, err
	}
	if cfg.Retry.Cap, err = parseDuration("retry.cap", file.Retry.Cap); err != nil {
		return Config{}, err
	}
	SetDefaults(&cfg)

	return cfg, nil
}

func parseDuration(field, raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}

	return d, nil
}

// TestConfig returns a configuration optimized for fast test execution.
// Retry backoff is 100x faster than production defaults.
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://localhost:0"
	cfg.Month = "2024-06"
	cfg.RequestTimeout = 2 * time.Second
	cfg.Retry.Base = 2 * time.Millisecond
	cfg.Retry.Cap = 20 * time.Millisecond

	return cfg
}

// apiConfig translates the public configuration into the client's.
func (cfg *Config) apiConfig() api.Config {
	return api.Config{
		BaseURL:            cfg.BaseURL,
		RecalculatePath:    cfg.Endpoints.RecalculatePath,
		CheckPath:          cfg.Endpoints.CheckPath,
		EventDropPath:      cfg.Endpoints.EventDropPath,
		EventDetailsFormat: cfg.Endpoints.EventDetailsFormat,
		RetryAttempts:      cfg.Retry.Attempts,
		RetryBase:          cfg.Retry.Base,
		RetryCap:           cfg.Retry.Cap,
	}
}
