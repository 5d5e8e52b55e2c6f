package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func GetEnvTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvTrimmedOrDefault(key, defaultValue string) string {
	v := strings.TrimSpace(os.Getenv(key))

	if v == "" {
		return defaultValue
	}

	return v
}

// GetFirstEnvTrimmed returns the first non-empty value among keys.
func GetFirstEnvTrimmed(keys ...string) string {
	for _, key := range keys {
		if v := GetEnvTrimmed(key); v != "" {
			return v
		}
	}
	return ""
}

// GetEnvIntOrDefault ignores unparsable and non-positive values.
func GetEnvIntOrDefault(key string, defaultValue int) int {
	raw := GetEnvTrimmed(key)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

// GetEnvDurationOrDefault accepts Go durations ("10s") or bare seconds ("10").
func GetEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := GetEnvTrimmed(key)
	if raw == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
