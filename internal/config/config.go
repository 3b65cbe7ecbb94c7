package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Timeouts bounds every navigation and selector wait of a crawl.
type Timeouts struct {
	Navigation   time.Duration // listing, wishlist and review tab loads
	CookieSettle time.Duration // pause after dismissing the cookie modal
	ReviewTab    time.Duration // first review block after opening the tab
	ReviewBlock  time.Duration // review block on each iteration and after a replayed click
	NextPage     time.Duration // next review batch after clicking "next"
	PagePoll     time.Duration // interval between checks for a changed review page
	FullText     time.Duration // full review text on a permalink page
	Detail       time.Duration // film detail page load
}

// Config represents the application configuration
type Config struct {
	Host            string
	Mode            string // profile or details
	MaxPages        int
	OutputDir       string
	Format          string // csv, json, markdown or html
	Headless        bool
	ProxyURL        string
	LogLevel        string
	FuzzyThreshold  float64
	DetailCacheSize int
	Summary         bool
	Timeouts        Timeouts
}

// Default returns the settings matching the AlloCiné site as observed.
func Default() *Config {
	return &Config{
		Host:            "https://www.allocine.fr",
		Mode:            "profile",
		MaxPages:        17,
		OutputDir:       ".",
		Format:          "csv",
		Headless:        true,
		LogLevel:        "info",
		FuzzyThreshold:  0,
		DetailCacheSize: 256,
		Timeouts: Timeouts{
			Navigation:   30 * time.Second,
			CookieSettle: 600 * time.Millisecond,
			ReviewTab:    8 * time.Second,
			ReviewBlock:  4 * time.Second,
			NextPage:     7 * time.Second,
			FullText:     2500 * time.Millisecond,
			PagePoll:     500 * time.Millisecond,
			Detail:       15 * time.Second,
		},
	}
}

// Load reads an optional .env file, then CINEPROFILE_* environment variables on
// top of the defaults. Command-line flags are applied by the caller afterwards.
func Load() *Config {
	_ = godotenv.Load()

	cfg := Default()
	cfg.Host = strings.TrimRight(getEnv("CINEPROFILE_HOST", cfg.Host), "/")
	cfg.Mode = getEnv("CINEPROFILE_MODE", cfg.Mode)
	cfg.MaxPages = getEnvInt("CINEPROFILE_MAX_PAGES", cfg.MaxPages)
	cfg.OutputDir = getEnv("CINEPROFILE_OUTPUT_DIR", cfg.OutputDir)
	cfg.Format = getEnv("CINEPROFILE_FORMAT", cfg.Format)
	cfg.Headless = !getEnvBool("CINEPROFILE_SHOWUI", !cfg.Headless)
	cfg.ProxyURL = getEnv("CINEPROFILE_PROXY", cfg.ProxyURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.FuzzyThreshold = getEnvFloat("CINEPROFILE_FUZZY_THRESHOLD", cfg.FuzzyThreshold)
	cfg.DetailCacheSize = getEnvInt("CINEPROFILE_DETAIL_CACHE_SIZE", cfg.DetailCacheSize)
	cfg.Timeouts.Navigation = getEnvDuration("CINEPROFILE_NAV_TIMEOUT", cfg.Timeouts.Navigation)
	cfg.Timeouts.Detail = getEnvDuration("CINEPROFILE_DETAIL_TIMEOUT", cfg.Timeouts.Detail)
	cfg.Timeouts.CookieSettle = getEnvDuration("CINEPROFILE_COOKIE_SETTLE", cfg.Timeouts.CookieSettle)
	return cfg
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Host)
	if err != nil {
		return fmt.Errorf("invalid host: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("host must include scheme and host, got %q", c.Host)
	}

	switch c.Mode {
	case "profile", "details":
	default:
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}

	switch c.Format {
	case "csv", "json", "markdown", "html":
	default:
		return fmt.Errorf("invalid output format: %s", c.Format)
	}

	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive")
	}
	if c.DetailCacheSize <= 0 {
		return fmt.Errorf("detail cache size must be positive")
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy threshold must be within [0, 1]")
	}
	if c.Timeouts.Navigation <= 0 || c.Timeouts.Detail <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.Timeouts.PagePoll <= 0 {
		return fmt.Errorf("page poll interval must be positive")
	}
	if c.Timeouts.CookieSettle < 0 {
		return fmt.Errorf("cookie settle delay cannot be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}
