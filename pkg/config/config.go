package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the follower fetcher
type Config struct {
	// Instagram session and request settings
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// ScrapFly anti-bot scrape API
	ScrapFly ScrapFlyConfig `yaml:"scrapfly" json:"scrapfly"`

	// Caps applied by the methods
	Limits LimitsConfig `yaml:"limits" json:"limits"`

	// Retry behaviour for upstream requests
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Request pacing
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Optional copy of every envelope on disk
	Output OutputConfig `yaml:"output" json:"output"`

	// Error reporting
	Reporting ReportingConfig `yaml:"reporting" json:"reporting"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// InstagramConfig holds Instagram-specific configuration
type InstagramConfig struct {
	SessionID string        `yaml:"session_id" json:"session_id" env:"IGFOLLOWERS_SESSION_ID"`
	CSRFToken string        `yaml:"csrf_token" json:"csrf_token" env:"IGFOLLOWERS_CSRF_TOKEN"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" env:"IGFOLLOWERS_USER_AGENT"`
	AppID     string        `yaml:"app_id" json:"app_id" env:"IGFOLLOWERS_APP_ID"`
	BaseURL   string        `yaml:"base_url" json:"base_url" env:"IGFOLLOWERS_BASE_URL"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" env:"IGFOLLOWERS_TIMEOUT"`
}

// ScrapFlyConfig holds the ScrapFly API settings
type ScrapFlyConfig struct {
	APIKey    string `yaml:"api_key" json:"api_key" env:"SCRAPFLY_KEY"`
	BaseURL   string `yaml:"base_url" json:"base_url" env:"IGFOLLOWERS_SCRAPFLY_URL"`
	Country   string `yaml:"country" json:"country" env:"IGFOLLOWERS_SCRAPFLY_COUNTRY"`
	ProxyPool string `yaml:"proxy_pool" json:"proxy_pool" env:"IGFOLLOWERS_SCRAPFLY_PROXY_POOL"`
	ASP       bool   `yaml:"asp" json:"asp"`
}

// LimitsConfig holds the result caps
type LimitsConfig struct {
	FollowerCap    int  `yaml:"follower_cap" json:"follower_cap" env:"IGFOLLOWERS_FOLLOWER_CAP"`
	PageCap        int  `yaml:"page_cap" json:"page_cap" env:"IGFOLLOWERS_PAGE_CAP"`
	PostsPerPage   int  `yaml:"posts_per_page" json:"posts_per_page" env:"IGFOLLOWERS_POSTS_PER_PAGE"`
	EnrichProfiles bool `yaml:"enrich_profiles" json:"enrich_profiles"`
}

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts" env:"IGFOLLOWERS_MAX_ATTEMPTS"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay"`
	Multiplier  float64       `yaml:"multiplier" json:"multiplier"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute" env:"IGFOLLOWERS_REQUESTS_PER_MINUTE"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory" env:"IGFOLLOWERS_OUTPUT_DIR"`
}

// ReportingConfig holds Sentry settings
type ReportingConfig struct {
	SentryDSN   string `yaml:"sentry_dsn" json:"sentry_dsn" env:"SENTRY_DSN"`
	Environment string `yaml:"environment" json:"environment" env:"IGFOLLOWERS_ENV"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" env:"IGFOLLOWERS_LOG_LEVEL"`
	File  string `yaml:"file" json:"file" env:"IGFOLLOWERS_LOG_FILE"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Instagram: InstagramConfig{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			AppID:     "936619743392459",
			BaseURL:   "https://www.instagram.com",
			Timeout:   30 * time.Second,
		},
		ScrapFly: ScrapFlyConfig{
			BaseURL:   "https://api.scrapfly.io",
			Country:   "US",
			ProxyPool: "public_residential_pool",
			ASP:       true,
		},
		Limits: LimitsConfig{
			FollowerCap:    50,
			PageCap:        3,
			PostsPerPage:   12,
			EnrichProfiles: true,
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			BaseDelay:   1 * time.Second,
			MaxDelay:    30 * time.Second,
			Multiplier:  2.0,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadFromEnv overlays environment variables onto the configuration.
// Fields whose variable is unset keep their current value.
func (c *Config) LoadFromEnv() error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	// Boolean switches are read by hand so an unset variable never resets them
	if v := os.Getenv("IGFOLLOWERS_ENRICH_PROFILES"); v != "" {
		c.Limits.EnrichProfiles = strings.ToLower(v) == "true"
	}
	if v := os.Getenv("IGFOLLOWERS_SCRAPFLY_ASP"); v != "" {
		c.ScrapFly.ASP = strings.ToLower(v) == "true"
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".igfollowers.yaml",
		".igfollowers.yml",
		filepath.Join(home, ".config", "igfollowers", "config.yaml"),
		filepath.Join(home, ".config", "igfollowers", "config.yml"),
		filepath.Join(home, ".igfollowers.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Instagram.BaseURL == "" {
		errs = append(errs, errors.New("instagram base URL is required"))
	}
	if c.Instagram.Timeout <= 0 {
		errs = append(errs, errors.New("instagram timeout must be positive"))
	}
	if c.ScrapFly.BaseURL == "" {
		errs = append(errs, errors.New("scrapfly base URL is required"))
	}

	if c.Limits.FollowerCap <= 0 {
		errs = append(errs, errors.New("follower cap must be positive"))
	}
	if c.Limits.PageCap <= 0 {
		errs = append(errs, errors.New("page cap must be positive"))
	}
	if c.Limits.PostsPerPage <= 0 || c.Limits.PostsPerPage > 50 {
		errs = append(errs, errors.New("posts per page must be between 1 and 50"))
	}

	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("retry max attempts must be at least 1"))
	}
	if c.Retry.Multiplier < 1 {
		errs = append(errs, errors.New("retry multiplier must be at least 1"))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Zero values mean the flag was not given. Session ids and API keys arrive
// as positional arguments and never pass through here.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if outputDir, ok := flags["output-dir"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if followerCap, ok := flags["follower-cap"].(int); ok && followerCap > 0 {
		c.Limits.FollowerCap = followerCap
	}
	if pageCap, ok := flags["page-cap"].(int); ok && pageCap > 0 {
		c.Limits.PageCap = pageCap
	}
	if maxAttempts, ok := flags["max-attempts"].(int); ok && maxAttempts > 0 {
		c.Retry.MaxAttempts = maxAttempts
	}
	if enrich, ok := flags["enrich"].(bool); ok {
		c.Limits.EnrichProfiles = enrich
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igfollowers.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// EnvDescription renders the supported environment variables for help output
func EnvDescription() string {
	help, err := cleanenv.GetDescription(DefaultConfig(), nil)
	if err != nil {
		return ""
	}
	return help
}

// Sanitized returns a copy with secrets masked, suitable for display
func (c *Config) Sanitized() *Config {
	cp := *c
	cp.Instagram.SessionID = mask(c.Instagram.SessionID)
	cp.Instagram.CSRFToken = mask(c.Instagram.CSRFToken)
	cp.ScrapFly.APIKey = mask(c.ScrapFly.APIKey)
	cp.Reporting.SentryDSN = mask(c.Reporting.SentryDSN)
	return &cp
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
