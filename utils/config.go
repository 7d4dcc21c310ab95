package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// known delivery routes, in their default order
var knownRoutes = []string{"direct", "corsproxy", "allorigins"}

// Config holds all configuration for the application
type Config struct {
	App      AppConfig
	Reddit   RedditConfig
	Server   ServerConfig
	Database DatabaseConfig
	Report   ReportConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name    string
	Version string
}

// RedditConfig holds Reddit API access configuration
type RedditConfig struct {
	UserAgent      string
	BaseURL        string
	Routes         []string
	RequestTimeout int // seconds, per route attempt
	PageDelayMS    int
	SearchDelayMS  int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port                 int
	MaxRequestsPerMinute int
}

// DatabaseConfig holds item explorer storage configuration
type DatabaseConfig struct {
	Path string
}

// ReportConfig holds report rendering configuration
type ReportConfig struct {
	Timezone string
}

// RequestTimeoutDuration returns the per-attempt timeout
func (r RedditConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(r.RequestTimeout) * time.Second
}

// PageDelay returns the courtesy delay between listing pages
func (r RedditConfig) PageDelay() time.Duration {
	return time.Duration(r.PageDelayMS) * time.Millisecond
}

// SearchDelay returns the courtesy delay between search pages
func (r RedditConfig) SearchDelay() time.Duration {
	return time.Duration(r.SearchDelayMS) * time.Millisecond
}

// Location resolves the report time zone
func (r ReportConfig) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
}

// LoadConfig loads configuration from a .env file, falling back to the process environment
func LoadConfig(envPath string, log *logrus.Logger) (*Config, error) {
	if envPath == "" {
		envPath = ".env"
	}

	if err := godotenv.Load(envPath); err != nil {
		log.WithError(err).WithField("file", envPath).Warn("No .env file loaded, using process environment")
	}

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "RedditScope"),
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
		Reddit: RedditConfig{
			UserAgent:      getEnv("REDDIT_USER_AGENT", "redditscope/1.0"),
			BaseURL:        getEnv("REDDIT_BASE_URL", "https://www.reddit.com"),
			Routes:         parseList(getEnv("REDDIT_ROUTES", strings.Join(knownRoutes, ","))),
			RequestTimeout: getEnvAsInt("REDDIT_REQUEST_TIMEOUT", 9),
			PageDelayMS:    getEnvAsInt("REDDIT_PAGE_DELAY_MS", 120),
			SearchDelayMS:  getEnvAsInt("REDDIT_SEARCH_DELAY_MS", 150),
		},
		Server: ServerConfig{
			Port:                 getEnvAsInt("SERVER_PORT", 8080),
			MaxRequestsPerMinute: getEnvAsInt("SERVER_MAX_REQUESTS_PER_MINUTE", 30),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", ":memory:"),
		},
		Report: ReportConfig{
			Timezone: getEnv("REPORT_TIMEZONE", "Local"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	log.WithField("file", envPath).Info("Config loaded successfully")
	return config, nil
}

// parseList parses a comma-separated list, dropping blanks
func parseList(s string) []string {
	parts := strings.Split(s, ",")

	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, strings.ToLower(trimmed))
		}
	}

	return items
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if len(config.Reddit.Routes) == 0 {
		return fmt.Errorf("REDDIT_ROUTES must name at least one route")
	}
	for _, route := range config.Reddit.Routes {
		if !isKnownRoute(route) {
			return fmt.Errorf("REDDIT_ROUTES contains unknown route %q", route)
		}
	}
	if config.Reddit.RequestTimeout < 1 {
		return fmt.Errorf("REDDIT_REQUEST_TIMEOUT must be positive")
	}
	if config.Reddit.PageDelayMS < 0 || config.Reddit.SearchDelayMS < 0 {
		return fmt.Errorf("REDDIT_PAGE_DELAY_MS and REDDIT_SEARCH_DELAY_MS must not be negative")
	}
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if config.Server.MaxRequestsPerMinute < 1 {
		return fmt.Errorf("SERVER_MAX_REQUESTS_PER_MINUTE must be positive")
	}
	if config.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH must not be empty")
	}
	if _, err := config.Report.Location(); err != nil {
		return fmt.Errorf("REPORT_TIMEZONE is invalid: %w", err)
	}

	return nil
}

func isKnownRoute(name string) bool {
	for _, known := range knownRoutes {
		if name == known {
			return true
		}
	}
	return false
}
