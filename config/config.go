package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Browser   BrowserConfig   `yaml:"browser"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Storage   StorageConfig   `yaml:"storage"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig controls the curation API server.
type ServerConfig struct {
	Host string `yaml:"host"` // default: "0.0.0.0"
	Port int    `yaml:"port"` // default: 8080
	Mode string `yaml:"mode"` // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool `yaml:"headless"` // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool `yaml:"no_sandbox"` // default: true

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string `yaml:"browser_bin"`

	// Proxy is passed to the launcher as --proxy-server.
	Proxy string `yaml:"proxy"`

	// ControlURL connects to an already running browser instead of
	// launching one. Closing the session then only disconnects.
	ControlURL string `yaml:"control_url"`

	ViewportWidth  int `yaml:"viewport_width"`  // default: 1920
	ViewportHeight int `yaml:"viewport_height"` // default: 1080

	// AcceptLanguage is sent as an extra header on every request.
	AcceptLanguage string `yaml:"accept_language"` // default: "en-IN,en;q=0.9"
}

// ScraperConfig controls navigation, scrolling and extraction.
type ScraperConfig struct {
	// BaseURL is the storefront root the search starts from.
	BaseURL string `yaml:"base_url"` // default: "https://www.amazon.in/"

	// NavigationTimeout bounds the first page load. Must be >= 60s.
	NavigationTimeout time.Duration `yaml:"navigation_timeout"` // default: 90s

	// ElementTimeout bounds the search-input lookup.
	ElementTimeout time.Duration `yaml:"element_timeout"` // default: 10s

	// ResultsTimeout bounds the wait for the first result container.
	ResultsTimeout time.Duration `yaml:"results_timeout"` // default: 20s

	// TypeDelay is the pause between keystrokes. 0 inserts the term at once.
	TypeDelay time.Duration `yaml:"type_delay"` // default: 100ms

	ScrollStep     int           `yaml:"scroll_step"`     // default: 100 (px)
	ScrollInterval time.Duration `yaml:"scroll_interval"` // default: 100ms

	// ScrollMaxSteps stops the scroll loop on endless pages. 0 = unbounded.
	ScrollMaxSteps int `yaml:"scroll_max_steps"` // default: 2000

	// SettleMax caps the post-scroll wait for DOM quiescence.
	SettleMax time.Duration `yaml:"settle_max"` // default: 3s

	// SettleQuiet is how long the DOM must stay unchanged to count as settled.
	SettleQuiet time.Duration `yaml:"settle_quiet"` // default: 500ms

	// BlockedResourceTypes lists resource types to block.
	BlockedResourceTypes []string `yaml:"blocked_resource_types"` // default: ["Font", "Media"]

	// BlockAds blocks requests to known ad and tracking domains.
	BlockAds bool `yaml:"block_ads"` // default: true
}

// StorageConfig selects where the corpus and diagnostics live.
type StorageConfig struct {
	// Driver is "file", "sqlite" or "postgres".
	Driver string `yaml:"driver"` // default: "file"

	// Path is the JSON corpus file (file) or database file (sqlite).
	Path string `yaml:"path"` // default: "scraped_products.json"

	// DSN is the Postgres connection string.
	DSN string `yaml:"dsn"`

	// ScreenshotPath is overwritten on every failure or empty run.
	ScreenshotPath string `yaml:"screenshot_path"` // default: "error_screenshot.png"
}

// CatalogConfig points at the external catalog import endpoint.
type CatalogConfig struct {
	BaseURL    string        `yaml:"base_url"`    // default: "http://localhost:5000/api"
	ImportPath string        `yaml:"import_path"` // default: "/admin/import"
	AdminToken string        `yaml:"admin_token"`
	Owner      string        `yaml:"owner"`
	Timeout    time.Duration `yaml:"timeout"` // default: 15s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool `yaml:"enabled"` // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string `yaml:"api_keys"`
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 `yaml:"requests_per_second"` // default: 2

	// Burst is the maximum burst size per API key.
	Burst int `yaml:"burst"` // default: 5
}

// CacheConfig controls the run-outcome cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached runs.
	MaxEntries int `yaml:"max_entries"` // default: 100
}

// WebhookConfig enables run notifications.
type WebhookConfig struct {
	URL    string `yaml:"url"`
	Secret string `yaml:"secret"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // default: "info"
	Format string `yaml:"format"` // "json" or "text"; default: "json" ("text" for the CLI)
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080, Mode: "release"},
		Browser: BrowserConfig{
			Headless:       true,
			NoSandbox:      true,
			ViewportWidth:  1920,
			ViewportHeight: 1080,
			AcceptLanguage: "en-IN,en;q=0.9",
		},
		Scraper: ScraperConfig{
			BaseURL:              "https://www.amazon.in/",
			NavigationTimeout:    90 * time.Second,
			ElementTimeout:       10 * time.Second,
			ResultsTimeout:       20 * time.Second,
			TypeDelay:            100 * time.Millisecond,
			ScrollStep:           100,
			ScrollInterval:       100 * time.Millisecond,
			ScrollMaxSteps:       2000,
			SettleMax:            3 * time.Second,
			SettleQuiet:          500 * time.Millisecond,
			BlockedResourceTypes: []string{"Font", "Media"},
			BlockAds:             true,
		},
		Storage: StorageConfig{
			Driver:         "file",
			Path:           "scraped_products.json",
			ScreenshotPath: "error_screenshot.png",
		},
		Catalog: CatalogConfig{
			BaseURL:    "http://localhost:5000/api",
			ImportPath: "/admin/import",
			Timeout:    15 * time.Second,
		},
		Auth:      AuthConfig{Enabled: true},
		RateLimit: RateLimitConfig{RequestsPerSecond: 2, Burst: 5},
		Cache:     CacheConfig{MaxEntries: 100},
		Log:       LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads configuration from .env, the optional SCOUT_CONFIG_FILE and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFrom("")
}

// CLIDefaults returns Defaults adjusted for the interactive command, which
// logs human-readable text.
func CLIDefaults() *Config {
	cfg := Defaults()
	cfg.Log.Format = "text"
	return cfg
}

// LoadFrom is Load with an explicit YAML file. An empty path falls back to
// SCOUT_CONFIG_FILE.
func LoadFrom(path string) (*Config, error) {
	return LoadOnto(Defaults(), path)
}

// LoadOnto layers .env, the YAML file and the environment over cfg.
func LoadOnto(cfg *Config, path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("SCOUT_CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Host = envOr("SCOUT_HOST", c.Server.Host)
	c.Server.Port = envIntOr("SCOUT_PORT", c.Server.Port)
	c.Server.Mode = envOr("SCOUT_MODE", c.Server.Mode)

	c.Browser.Headless = envBoolOr("SCOUT_HEADLESS", c.Browser.Headless)
	c.Browser.NoSandbox = envBoolOr("SCOUT_NO_SANDBOX", c.Browser.NoSandbox)
	c.Browser.BrowserBin = envOr("SCOUT_BROWSER_BIN", c.Browser.BrowserBin)
	c.Browser.Proxy = envOr("SCOUT_PROXY", c.Browser.Proxy)
	c.Browser.ControlURL = envOr("SCOUT_CONTROL_URL", c.Browser.ControlURL)
	c.Browser.ViewportWidth = envIntOr("SCOUT_VIEWPORT_WIDTH", c.Browser.ViewportWidth)
	c.Browser.ViewportHeight = envIntOr("SCOUT_VIEWPORT_HEIGHT", c.Browser.ViewportHeight)
	c.Browser.AcceptLanguage = envOr("SCOUT_ACCEPT_LANGUAGE", c.Browser.AcceptLanguage)

	c.Scraper.BaseURL = envOr("SCOUT_BASE_URL", c.Scraper.BaseURL)
	c.Scraper.NavigationTimeout = envDurationOr("SCOUT_NAV_TIMEOUT", c.Scraper.NavigationTimeout)
	c.Scraper.ElementTimeout = envDurationOr("SCOUT_ELEMENT_TIMEOUT", c.Scraper.ElementTimeout)
	c.Scraper.ResultsTimeout = envDurationOr("SCOUT_RESULTS_TIMEOUT", c.Scraper.ResultsTimeout)
	c.Scraper.TypeDelay = envDurationOr("SCOUT_TYPE_DELAY", c.Scraper.TypeDelay)
	c.Scraper.ScrollStep = envIntOr("SCOUT_SCROLL_STEP", c.Scraper.ScrollStep)
	c.Scraper.ScrollInterval = envDurationOr("SCOUT_SCROLL_INTERVAL", c.Scraper.ScrollInterval)
	c.Scraper.ScrollMaxSteps = envIntOr("SCOUT_SCROLL_MAX_STEPS", c.Scraper.ScrollMaxSteps)
	c.Scraper.SettleMax = envDurationOr("SCOUT_SETTLE_MAX", c.Scraper.SettleMax)
	c.Scraper.SettleQuiet = envDurationOr("SCOUT_SETTLE_QUIET", c.Scraper.SettleQuiet)
	c.Scraper.BlockedResourceTypes = envSliceOr("SCOUT_BLOCKED_RESOURCES", c.Scraper.BlockedResourceTypes)
	c.Scraper.BlockAds = envBoolOr("SCOUT_BLOCK_ADS", c.Scraper.BlockAds)

	c.Storage.Driver = envOr("SCOUT_STORE", c.Storage.Driver)
	c.Storage.Path = envOr("SCOUT_OUTPUT_FILE", c.Storage.Path)
	c.Storage.DSN = envOr("SCOUT_DATABASE_URL", c.Storage.DSN)
	c.Storage.ScreenshotPath = envOr("SCOUT_SCREENSHOT_FILE", c.Storage.ScreenshotPath)

	c.Catalog.BaseURL = envOr("SCOUT_CATALOG_URL", c.Catalog.BaseURL)
	c.Catalog.ImportPath = envOr("SCOUT_CATALOG_IMPORT_PATH", c.Catalog.ImportPath)
	c.Catalog.AdminToken = envOr("SCOUT_CATALOG_TOKEN", c.Catalog.AdminToken)
	c.Catalog.Owner = envOr("SCOUT_CATALOG_OWNER", c.Catalog.Owner)
	c.Catalog.Timeout = envDurationOr("SCOUT_CATALOG_TIMEOUT", c.Catalog.Timeout)

	c.Auth.Enabled = envBoolOr("SCOUT_AUTH_ENABLED", c.Auth.Enabled)
	c.Auth.APIKeys = envSliceOr("SCOUT_API_KEYS", c.Auth.APIKeys)

	c.RateLimit.RequestsPerSecond = envFloatOr("SCOUT_RATE_RPS", c.RateLimit.RequestsPerSecond)
	c.RateLimit.Burst = envIntOr("SCOUT_RATE_BURST", c.RateLimit.Burst)

	c.Cache.MaxEntries = envIntOr("SCOUT_CACHE_MAX_ENTRIES", c.Cache.MaxEntries)

	c.Webhook.URL = envOr("SCOUT_WEBHOOK_URL", c.Webhook.URL)
	c.Webhook.Secret = envOr("SCOUT_WEBHOOK_SECRET", c.Webhook.Secret)

	c.Log.Level = envOr("SCOUT_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOr("SCOUT_LOG_FORMAT", c.Log.Format)
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Scraper.NavigationTimeout < 60*time.Second {
		return fmt.Errorf("config: navigation timeout %s is below the 60s minimum", c.Scraper.NavigationTimeout)
	}
	if c.Scraper.ScrollStep <= 0 || c.Scraper.ScrollInterval <= 0 {
		return fmt.Errorf("config: scroll step and interval must be positive")
	}
	if c.Scraper.ScrollMaxSteps < 0 {
		return fmt.Errorf("config: scroll max steps must not be negative")
	}
	if c.Browser.ViewportWidth <= 0 || c.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("config: viewport must be positive")
	}
	switch c.Storage.Driver {
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("config: storage path is required for driver %q", c.Storage.Driver)
		}
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("config: SCOUT_DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
