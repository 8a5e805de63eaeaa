// Package common provides shared utilities for brokercheck
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for brokercheck
type Config struct {
	Environment string          `toml:"environment"`
	API         APIConfig       `toml:"api"`
	Web         WebConfig       `toml:"web"`
	Browser     BrowserConfig   `toml:"browser"`
	Events      EventsConfig    `toml:"events"`
	Reconcile   ReconcileConfig `toml:"reconcile"`
	Report      ReportConfig    `toml:"report"`
	Runner      RunnerConfig    `toml:"runner"`
	Logging     LoggingConfig   `toml:"logging"`
}

// APIConfig holds the backend REST API configuration
type APIConfig struct {
	SSOURL         string   `toml:"sso_url"`
	BaseURL        string   `toml:"base_url"`
	Username       string   `toml:"username"`
	Password       string   `toml:"password"`
	AccountID      string   `toml:"account_id"`
	LoginType      string   `toml:"login_type"`
	GrantType      string   `toml:"grant_type"`
	LoginFallbacks []string `toml:"login_fallbacks"` // extra auth paths tried once each against base_url
	RateLimit      int      `toml:"rate_limit"`
	Timeout        string   `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// WebConfig holds the web application configuration
type WebConfig struct {
	BaseURL       string `toml:"base_url"`
	Username      string `toml:"username"`
	Password      string `toml:"password"`
	MarkerTimeout string `toml:"marker_timeout"`
	IdleTimeout   string `toml:"idle_timeout"`
}

// GetMarkerTimeout returns how long to wait for a screen's marker element
func (c *WebConfig) GetMarkerTimeout() time.Duration {
	d, err := time.ParseDuration(c.MarkerTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetIdleTimeout returns how long to wait for the network to go idle
func (c *WebConfig) GetIdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.IdleTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// BrowserConfig selects and configures the browser driver
type BrowserConfig struct {
	Driver     string `toml:"driver"` // "rod" or "playwright"
	Headless   bool   `toml:"headless"`
	ControlURL string `toml:"control_url"` // attach to a running browser instead of launching one
	Bin        string `toml:"bin"`
}

// EventsConfig holds the market events (vietstock) configuration
type EventsConfig struct {
	BaseURL  string `toml:"base_url"`
	PageSize int    `toml:"page_size"`
	Timeout  string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EventsConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ReconcileConfig controls comparison behaviour
type ReconcileConfig struct {
	Mode     string `toml:"mode"`     // "enforce" or "observe"
	Timezone string `toml:"timezone"` // IANA name or fixed offset, e.g. "+07:00"
	MaxRows  int    `toml:"max_rows"`
}

// Enforce reports whether mismatches should fail a run
func (c *ReconcileConfig) Enforce() bool {
	return !strings.EqualFold(strings.TrimSpace(c.Mode), "observe")
}

// Location resolves the configured timezone, falling back to a fixed UTC+7 zone
func (c *ReconcileConfig) Location() *time.Location {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		return DefaultLocation
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}
	if t, err := time.Parse("-07:00", tz); err == nil {
		_, offset := t.Zone()
		return time.FixedZone(tz, offset)
	}
	return DefaultLocation
}

// DefaultLocation is Indochina Time. It has no DST, so a fixed zone avoids a tzdata dependency.
var DefaultLocation = time.FixedZone("ICT", 7*60*60)

// ReportConfig holds report output configuration
type ReportConfig struct {
	ResultsDir string `toml:"results_dir"`
	Chart      bool   `toml:"chart"`
	JSON       bool   `toml:"json"`
}

// RunnerConfig holds multi-screen run configuration
type RunnerConfig struct {
	Parallel int `toml:"parallel"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string   `toml:"level"`
	Format   string   `toml:"format"`
	Outputs  []string `toml:"outputs"`
	FilePath string   `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "test",
		API: APIConfig{
			SSOURL:    "https://derivativeapisso.navisoft.com.vn",
			BaseURL:   "https://derivativeapi.navisoft.com.vn",
			LoginType: "ALL",
			GrantType: "password",
			RateLimit: 5,
			Timeout:   "30s",
		},
		Web: WebConfig{
			BaseURL:       "http://localhost:3000",
			MarkerTimeout: "10s",
			IdleTimeout:   "15s",
		},
		Browser: BrowserConfig{
			Driver:   "rod",
			Headless: true,
		},
		Events: EventsConfig{
			BaseURL:  "https://finance.vietstock.vn",
			PageSize: 20,
			Timeout:  "30s",
		},
		Reconcile: ReconcileConfig{
			Mode:     "enforce",
			Timezone: "+07:00",
			MaxRows:  0,
		},
		Report: ReportConfig{
			ResultsDir: "results",
			Chart:      true,
			JSON:       true,
		},
		Runner: RunnerConfig{
			Parallel: 4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			Outputs: []string{"console"},
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("BROKERCHECK_ENV"); env != "" {
		config.Environment = env
	}

	// API
	if v := os.Getenv("BROKERCHECK_API_SSO_URL"); v != "" {
		config.API.SSOURL = v
	}
	if v := os.Getenv("BROKERCHECK_API_BASE_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv("BROKERCHECK_API_USERNAME"); v != "" {
		config.API.Username = v
	}
	if v := os.Getenv("BROKERCHECK_API_PASSWORD"); v != "" {
		config.API.Password = v
	}
	if v := os.Getenv("BROKERCHECK_ACCOUNT_ID"); v != "" {
		config.API.AccountID = v
	}

	// Web
	if v := os.Getenv("BROKERCHECK_WEB_BASE_URL"); v != "" {
		config.Web.BaseURL = v
	}
	if v := os.Getenv("BROKERCHECK_WEB_USERNAME"); v != "" {
		config.Web.Username = v
	}
	if v := os.Getenv("BROKERCHECK_WEB_PASSWORD"); v != "" {
		config.Web.Password = v
	}

	// Browser
	if v := os.Getenv("BROKERCHECK_BROWSER_DRIVER"); v != "" {
		config.Browser.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("BROKERCHECK_BROWSER_HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Browser.Headless = b
		}
	}
	if v := os.Getenv("BROKERCHECK_BROWSER_CONTROL_URL"); v != "" {
		config.Browser.ControlURL = v
	}

	if v := os.Getenv("BROKERCHECK_MODE"); v != "" {
		config.Reconcile.Mode = v
	}
	if v := os.Getenv("BROKERCHECK_RESULTS_DIR"); v != "" {
		config.Report.ResultsDir = v
	}
	if v := os.Getenv("BROKERCHECK_PARALLEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.Runner.Parallel = n
		}
	}
	if level := os.Getenv("BROKERCHECK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ValidateRequired returns the names of required settings that are still empty.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if c.API.Username == "" {
		missing = append(missing, "api.username")
	}
	if c.API.Password == "" {
		missing = append(missing, "api.password")
	}
	if c.API.AccountID == "" {
		missing = append(missing, "api.account_id")
	}
	if c.Web.Username == "" {
		missing = append(missing, "web.username")
	}
	if c.Web.Password == "" {
		missing = append(missing, "web.password")
	}
	return missing
}

// IsProduction returns true if running against a production environment
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
