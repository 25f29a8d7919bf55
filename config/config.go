package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Toggle    ToggleConfig
	Extract   ExtractConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 4

	// Proxy is the proxy URL for all requests.
	Proxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Stealth injects anti-bot-detection JS before every navigation.
	Stealth bool // default: false
}

// ScraperConfig controls navigation and readiness.
type ScraperConfig struct {
	// NavigationTimeout bounds page navigation plus the readiness wait.
	NavigationTimeout time.Duration // default: 30s

	// ReadyPolicy decides when a navigation is complete enough to proceed.
	// "domstable": wait for the DOM to stop mutating (minimal parse).
	// "networkidle": wait for network quiescence.
	ReadyPolicy string // default: "domstable"

	// ContentTimeout bounds the wait for the Notion content root to appear
	// after navigation. Expiry is fatal for the request.
	ContentTimeout time.Duration // default: 10s
}

// ToggleConfig controls the collapsed-toggle expansion loop.
type ToggleConfig struct {
	// MaxIterations caps the expansion loop. Higher values trade latency
	// for completeness on deeply nested pages.
	MaxIterations int // default: 40

	// IterationDelay is the pause between iterations, giving Notion time
	// to render newly expanded content before the next query.
	IterationDelay time.Duration // default: 300ms
}

// ExtractConfig controls text extraction from the rendered page.
type ExtractConfig struct {
	// Mode selects where extraction runs.
	// "inpage": DOM snapshot evaluated inside the browser page.
	// "html": rendered HTML parsed out-of-page with goquery.
	Mode string // default: "inpage"

	// Dedupe suppresses blocks whose text exactly matches an already
	// emitted block. Note this also collapses legitimately repeated short
	// text (two "N/A" bullets emit once); that trade-off is accepted.
	Dedupe bool // default: true
}

// RateLimitConfig controls per-client rate limiting.
type RateLimitConfig struct {
	// Enabled toggles the rate limiting middleware.
	Enabled bool // default: false

	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per client IP.
	Burst int // default: 5
}

// CORSConfig is the permissive cross-origin header set attached to every
// response. Built once at startup and treated as immutable.
type CORSConfig struct {
	AllowOrigin  string // default: "*"
	AllowMethods string // default: "GET, POST, OPTIONS"
	AllowHeaders string // default: "Content-Type, Authorization"
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("NOTIONTEXT_HOST", "0.0.0.0"),
			Port: envIntOr("NOTIONTEXT_PORT", 8080),
			Mode: envOr("NOTIONTEXT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("NOTIONTEXT_HEADLESS", true),
			MaxPages:   envIntOr("NOTIONTEXT_MAX_PAGES", 4),
			Proxy:      os.Getenv("NOTIONTEXT_PROXY"),
			NoSandbox:  envBoolOr("NOTIONTEXT_NO_SANDBOX", false),
			BrowserBin: os.Getenv("NOTIONTEXT_BROWSER_BIN"),
			Stealth:    envBoolOr("NOTIONTEXT_STEALTH", false),
		},
		Scraper: ScraperConfig{
			NavigationTimeout: envDurationOr("NOTIONTEXT_NAV_TIMEOUT", 30*time.Second),
			ReadyPolicy:       envOr("NOTIONTEXT_READY_POLICY", "domstable"),
			ContentTimeout:    envDurationOr("NOTIONTEXT_CONTENT_TIMEOUT", 10*time.Second),
		},
		Toggle: ToggleConfig{
			MaxIterations:  envIntOr("NOTIONTEXT_TOGGLE_MAX_ITERATIONS", 40),
			IterationDelay: envDurationOr("NOTIONTEXT_TOGGLE_DELAY", 300*time.Millisecond),
		},
		Extract: ExtractConfig{
			Mode:   envOr("NOTIONTEXT_EXTRACT_MODE", "inpage"),
			Dedupe: envBoolOr("NOTIONTEXT_DEDUPE", true),
		},
		RateLimit: RateLimitConfig{
			Enabled:           envBoolOr("NOTIONTEXT_RATE_ENABLED", false),
			RequestsPerSecond: envFloatOr("NOTIONTEXT_RATE_RPS", 2.0),
			Burst:             envIntOr("NOTIONTEXT_RATE_BURST", 5),
		},
		CORS: CORSConfig{
			AllowOrigin:  envOr("NOTIONTEXT_CORS_ORIGIN", "*"),
			AllowMethods: envOr("NOTIONTEXT_CORS_METHODS", "GET, POST, OPTIONS"),
			AllowHeaders: envOr("NOTIONTEXT_CORS_HEADERS", "Content-Type, Authorization"),
		},
		Log: LogConfig{
			Level:  envOr("NOTIONTEXT_LOG_LEVEL", "info"),
			Format: envOr("NOTIONTEXT_LOG_FORMAT", "json"),
		},
	}
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
