// Package config loads client settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// State store backends.
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

var storeBackends = []string{StoreFile, StoreRedis, StorePostgres}

type Config struct {
	// Backend
	APIURL      string
	HTTPTimeout time.Duration

	// Session
	Production   bool
	BypassHeader string
	ProbeTimeout time.Duration

	// State store
	Store       string
	StateDir    string
	Passphrase  string
	RedisURL    string
	Prefix      string
	PostgresDSN string
	Profile     string

	// Presentation
	PageSize int

	// Observability
	LogLevel    string
	MetricsFile string
}

// LoadDotenv reads a .env file from the working directory when present.
func LoadDotenv() { _ = godotenv.Load() }

// Load reads the BK_* environment variables.
func Load() *Config {
	return &Config{
		APIURL:      getEnv("BK_API_URL", "http://localhost:8000/api"),
		HTTPTimeout: getEnvDuration("BK_HTTP_TIMEOUT", 30*time.Second),

		Production:   getEnvBool("BK_PRODUCTION", false),
		BypassHeader: getEnv("BK_DEV_BYPASS_HEADER", ""),
		ProbeTimeout: getEnvDuration("BK_PROBE_TIMEOUT", 2*time.Second),

		Store:       getEnv("BK_STORE", StoreFile),
		StateDir:    getEnv("BK_STATE_DIR", ""),
		Passphrase:  getEnv("BK_STATE_PASSPHRASE", ""),
		RedisURL:    getEnv("BK_REDIS_URL", "redis://localhost:6379/0"),
		Prefix:      getEnv("BK_REDIS_PREFIX", "budget-keeper:"),
		PostgresDSN: getEnv("BK_POSTGRES_DSN", ""),
		Profile:     getEnv("BK_PROFILE", "default"),

		PageSize: getEnvInt("BK_PAGE_SIZE", 20),

		LogLevel:    getEnv("BK_LOG_LEVEL", "warn"),
		MetricsFile: getEnv("BK_METRICS_FILE", ""),
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.APIURL); err != nil {
		problems = append(problems, fmt.Sprintf("invalid API URL '%s': %v", c.APIURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	}
	if c.HTTPTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid HTTP timeout %v: must be positive", c.HTTPTimeout))
	}
	if c.ProbeTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid probe timeout %v: must be positive", c.ProbeTimeout))
	}

	if !slices.Contains(storeBackends, c.Store) {
		problems = append(problems, fmt.Sprintf("invalid store '%s': must be one of %v", c.Store, storeBackends))
	}
	switch c.Store {
	case StoreRedis:
		if c.RedisURL == "" {
			problems = append(problems, "redis URL is required when using the redis store")
		}
	case StorePostgres:
		if c.PostgresDSN == "" {
			problems = append(problems, "postgres DSN is required when using the postgres store")
		}
	}
	if c.Passphrase != "" && c.Store != StoreFile {
		problems = append(problems, "state passphrase only applies to the file store")
	}

	if c.PageSize < 1 || c.PageSize > 1000 {
		problems = append(problems, fmt.Sprintf("invalid page size %d: must be between 1 and 1000", c.PageSize))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// BypassActive reports whether the dev auth bypass header will be sent.
func (c *Config) BypassActive() bool { return c.BypassHeader != "" && !c.Production }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
