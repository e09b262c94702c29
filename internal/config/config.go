package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve in minimal containers
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Reports
	Timezone string
	Location *time.Location // Resolved from Timezone; UTC when unknown
	// Export
	DefaultMarkdownProfile string
	ProfilesFile           string // Optional YAML file merged over the embedded profiles
	MaxRequestBytes        int64
	// Logging
	LogDir      string // Empty = stdout only
	LogMaxFiles int
	Debug       bool // DEBUG; enables debug-level logging
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tz := getEnv("TIMEZONE", "UTC")

	return &Config{
		Port:                   getEnv("PORT", "8080"),
		Environment:            env,
		CORSOrigins:            getEnv("CORS_ORIGINS", "http://localhost:3000"),
		Timezone:               tz,
		Location:               loadLocation(tz),
		DefaultMarkdownProfile: getEnv("DEFAULT_MARKDOWN_PROFILE", "default"),
		ProfilesFile:           getEnv("MARKDOWN_PROFILES_FILE", ""),
		MaxRequestBytes:        getEnvInt64("MAX_REQUEST_BYTES", DefaultMaxRequestBytes),
		LogDir:                 getEnv("LOG_DIR", ""),
		LogMaxFiles:            int(getEnvInt64("LOG_MAX_FILES", 10)),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// Validate reports configuration values that would prevent startup
func (c *Config) Validate() error {
	switch c.Environment {
	case "dev", "test", "prod":
	default:
		return fmt.Errorf("invalid ENVIRONMENT %q (want dev, test or prod)", c.Environment)
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("MAX_REQUEST_BYTES must be positive, got %d", c.MaxRequestBytes)
	}
	if c.LogMaxFiles < 1 {
		return fmt.Errorf("LOG_MAX_FILES must be at least 1, got %d", c.LogMaxFiles)
	}
	return nil
}

// AllowedOrigins splits CORS_ORIGINS into trimmed, non-empty origins
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: unknown TIMEZONE %q, using UTC\n", name)
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid %s %q, using %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}
