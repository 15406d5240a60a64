package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	// DefaultUpstreamBaseURL is the article feed API the service proxies.
	DefaultUpstreamBaseURL = "https://fury.kabang.app/v2/kabang/new"
	// LocalSiteURL is used when SITE_URL is not configured.
	LocalSiteURL = "http://localhost:3000"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env" validate:"oneof=development production test"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`
	SiteURL         string        `json:"site_url" validate:"required,url"`

	// Upstream feed API
	UpstreamBaseURL string        `json:"upstream_base_url" validate:"required,url"`
	UpstreamTimeout time.Duration `json:"upstream_timeout"`
	PageSize        int           `json:"page_size" validate:"min=1,max=100"`

	// Redis configuration
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl"`
	CacheSize   int           `json:"cache_size" validate:"min=1"`

	// Sitemap
	SitemapChunkSize      int           `json:"sitemap_chunk_size"`
	SitemapMaxURLs        int           `json:"sitemap_max_urls"`
	SitemapMaxDays        int           `json:"sitemap_max_days"`
	SitemapMaxPagesPerDay int           `json:"sitemap_max_pages_per_day"`
	SitemapPageSize       int           `json:"sitemap_page_size" validate:"min=1,max=100"`
	SitemapCacheTTL       time.Duration `json:"sitemap_cache_ttl"`

	// CloudFlare R2 Configuration
	R2Endpoint  string `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey string `json:"r2_access_key"`
	R2SecretKey string `json:"r2_secret_key"`
	R2Bucket    string `json:"r2_bucket"`
	R2AccountID string `json:"r2_account_id"`

	// Storage
	StoragePath string `json:"storage_path"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey string `json:"admin_api_key"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// FromEnv builds a Config from the current environment without validating it.
func FromEnv() *Config {
	env := getEnv("APP_ENV", "development")

	return &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		SiteURL:         siteURL(getEnv("SITE_URL", ""), env),

		// Upstream feed API
		UpstreamBaseURL: strings.TrimRight(getEnv("UPSTREAM_BASE_URL", DefaultUpstreamBaseURL), "/"),
		UpstreamTimeout: getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		PageSize:        getEnvAsInt("PAGE_SIZE", 20),

		// Redis configuration
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "newsnexus:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 300*time.Second),
		CacheSize:   getEnvAsInt("CACHE_SIZE", 2048),

		// Sitemap
		SitemapChunkSize:      getEnvAsClampedInt("SITEMAP_CHUNK_SIZE", 1000, 100, 5000),
		SitemapMaxURLs:        getEnvAsClampedInt("SITEMAP_MAX_URLS", 10000, 200, 50000),
		SitemapMaxDays:        getEnvAsClampedInt("SITEMAP_MAX_DAYS", 365, 31, 3650),
		SitemapMaxPagesPerDay: getEnvAsClampedInt("SITEMAP_MAX_PAGES_PER_DAY", 20, 1, 200),
		SitemapPageSize:       getEnvAsInt("SITEMAP_PAGE_SIZE", 50),
		SitemapCacheTTL:       getEnvAsDuration("SITEMAP_CACHE_TTL", 0),

		// CloudFlare R2 Configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "newsnexus"),
		R2AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),

		// Storage
		StoragePath: getEnv("STORAGE_PATH", "./data"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// R2Enabled reports whether enough R2 settings are present to publish there.
func (c *Config) R2Enabled() bool {
	return c.R2EndpointURL() != "" && c.R2AccessKey != "" && c.R2SecretKey != ""
}

// R2EndpointURL returns R2_ENDPOINT, or the account's default R2 endpoint
// when only CLOUDFLARE_ACCOUNT_ID is set.
func (c *Config) R2EndpointURL() string {
	if c.R2Endpoint != "" {
		return c.R2Endpoint
	}
	if c.R2AccountID == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.R2AccountID)
}

func siteURL(configured, env string) string {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		if env != "production" {
			log.Printf("Warning: SITE_URL is not set, falling back to %s", LocalSiteURL)
		}
		return LocalSiteURL
	}
	return strings.TrimRight(configured, "/")
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

// getEnvAsClampedInt reads an integer setting, falling back on empty or
// non-integer values and clamping into [min, max].
func getEnvAsClampedInt(name string, defaultVal, min, max int) int {
	value := getEnvAsInt(name, defaultVal)
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
