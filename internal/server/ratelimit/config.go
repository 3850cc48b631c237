package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one route. Path ending in "/" matches by prefix.
type Rule struct {
	Method string
	Path   string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration // refill period for Limit tokens
	Burst  int           // bucket size, Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled   bool
	Default   Rule
	Rules     []Rule
	Allowlist map[string]bool
	IdleTTL   time.Duration // buckets unused this long are dropped
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	aiLimit := getEnvInt("RATE_LIMIT_AI_PER_HOUR", 60)
	exportLimit := getEnvInt("RATE_LIMIT_EXPORT_PER_HOUR", 30)

	return &Config{
		Enabled: true,
		Default: Rule{
			Limit:  getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
			Window: getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		},
		Rules:     DefaultRules(aiLimit, exportLimit),
		Allowlist: parseList(os.Getenv("RATE_LIMIT_ALLOWLIST")),
		IdleTTL:   getEnvDuration("RATE_LIMIT_IDLE_TTL", time.Hour),
	}
}

// DefaultRules returns the per-route limits: AI calls and exports are metered per hour,
// document writes per minute, everything else falls back to the default rule.
func DefaultRules(aiPerHour, exportsPerHour int) []Rule {
	return []Rule{
		{Method: "POST", Path: "/ai/", Limit: aiPerHour, Window: time.Hour, Burst: 5},
		{Method: "POST", Path: "/export", Limit: exportsPerHour, Window: time.Hour, Burst: 3},
		{Method: "POST", Path: "/export/stream", Limit: exportsPerHour, Window: time.Hour, Burst: 3},

		{Method: "POST", Path: "/resume/edits", Limit: 600, Window: time.Minute, Burst: 60},
		{Method: "PUT", Path: "/resume", Limit: 60, Window: time.Minute, Burst: 10},
		{Method: "PUT", Path: "/preferences", Limit: 60, Window: time.Minute, Burst: 10},
		{Method: "DELETE", Path: "/preferences", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseList parses a comma-separated list of client ids into a set.
func parseList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result[item] = true
		}
	}
	return result
}
