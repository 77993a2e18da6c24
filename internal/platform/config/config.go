// Package config builds the application configuration once at process start.
// Business packages never read the environment; they receive the values they need
// through their constructors.
package config

import (
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Pricing strategies for the portfolio valuation.
const (
	PricingPlaceholder = "placeholder"
	PricingLive        = "live"
)

const (
	defaultPort             = "8080"
	defaultLogLevel         = "info"
	defaultFinnhubBaseURL   = "https://finnhub.io/api/v1"
	defaultFinnhubTimeout   = 10 * time.Second
	defaultFinnhubRate      = 60
	defaultQuoteCacheTTL    = 15 * time.Second
	defaultHistoryCacheTTL  = 5 * time.Minute
	defaultGeminiModel      = "gemini-2.5-flash"
	defaultPlaceholderPrice = 150.0
)

// Config holds all settings of the service.
type Config struct {
	Port     string
	LogLevel string
	// AppMode is the mode requested at start ("MOCK" or "REAL"); empty means
	// REAL when the environment is ready, MOCK otherwise.
	AppMode string

	Finnhub FinnhubConfig
	Ledger  LedgerConfig
	Redis   RedisConfig
	Gemini  GeminiConfig

	PortfolioPricing string
	PlaceholderPrice float64
}

// FinnhubConfig configures the remote quote provider.
type FinnhubConfig struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	RatePerMinute int
}

// LedgerConfig configures trade persistence.
type LedgerConfig struct {
	// Driver selects the remote ledger backend: "postgres", "sqlite" or empty (not wired).
	Driver string
	DSN    string
	// MockFile is an optional snapshot file for the mock-mode key/value store.
	MockFile string
}

// RedisConfig configures the market data cache.
type RedisConfig struct {
	Addr            string
	Password        string
	QuoteCacheTTL   time.Duration
	HistoryCacheTTL time.Duration
}

// GeminiConfig configures the insight generator.
type GeminiConfig struct {
	Enabled bool
	Model   string
}

// Load reads a .env file when present and builds the Config from the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			log.Println("[INFO] .env not found; using system environment variables")
		} else {
			log.Printf("[WARN] failed to load .env: %v", err)
		}
	}
	return FromLookup(os.Getenv)
}

// FromLookup builds the Config from an arbitrary variable lookup, applying defaults.
func FromLookup(getenv func(string) string) Config {
	cfg := Config{
		Port:     getenv("PORT"),
		LogLevel: getenv("LOG_LEVEL"),
		AppMode:  strings.ToUpper(strings.TrimSpace(getenv("APP_MODE"))),
		Finnhub: FinnhubConfig{
			APIKey:        strings.TrimSpace(getenv("FINNHUB_API_KEY")),
			BaseURL:       strings.TrimRight(getenv("FINNHUB_BASE_URL"), "/"),
			Timeout:       durationOr(getenv("FINNHUB_TIMEOUT"), defaultFinnhubTimeout),
			RatePerMinute: intOr(getenv("FINNHUB_RATE_PER_MINUTE"), defaultFinnhubRate),
		},
		Ledger: LedgerConfig{
			Driver:   strings.ToLower(strings.TrimSpace(getenv("LEDGER_DRIVER"))),
			DSN:      getenv("LEDGER_DSN"),
			MockFile: getenv("MOCK_LEDGER_FILE"),
		},
		Redis: RedisConfig{
			Addr:            getenv("REDIS_ADDR"),
			Password:        getenv("REDIS_PASSWORD"),
			QuoteCacheTTL:   durationOr(getenv("QUOTE_CACHE_TTL"), defaultQuoteCacheTTL),
			HistoryCacheTTL: durationOr(getenv("HISTORY_CACHE_TTL"), defaultHistoryCacheTTL),
		},
		Gemini: GeminiConfig{
			Enabled: boolOr(getenv("GEMINI_ENABLED"), false),
			Model:   getenv("GEMINI_MODEL"),
		},
		PortfolioPricing: strings.ToLower(strings.TrimSpace(getenv("PORTFOLIO_PRICING"))),
		PlaceholderPrice: floatOr(getenv("PLACEHOLDER_PRICE"), defaultPlaceholderPrice),
	}
	setDefaults(&cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Finnhub.BaseURL == "" {
		cfg.Finnhub.BaseURL = defaultFinnhubBaseURL
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = defaultGeminiModel
	}
	if cfg.PortfolioPricing != PricingLive {
		cfg.PortfolioPricing = PricingPlaceholder
	}
	if cfg.PlaceholderPrice <= 0 || math.IsNaN(cfg.PlaceholderPrice) || math.IsInf(cfg.PlaceholderPrice, 0) {
		cfg.PlaceholderPrice = defaultPlaceholderPrice
	}
}

// RealModeReady reports whether the credentials required by REAL mode are present.
func (c Config) RealModeReady() bool {
	return c.Finnhub.APIKey != ""
}

// RemoteLedgerConfigured reports whether a remote trade store is wired up.
func (c Config) RemoteLedgerConfigured() bool {
	return c.Ledger.Driver != "" && c.Ledger.DSN != ""
}

func durationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("[WARN] invalid duration %q, using %v", s, def)
		return def
	}
	return d
}

func intOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		log.Printf("[WARN] invalid integer %q, using %d", s, def)
		return def
	}
	return n
}

func floatOr(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		log.Printf("[WARN] invalid number %q, using %v", s, def)
		return def
	}
	return f
}

func boolOr(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
