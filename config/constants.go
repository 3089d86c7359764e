package config

import (
	"os"
	"strconv"
	"time"
)

// Service constants with env var override support.
var (
	HTTPAddr         = stringEnv("HTTP_ADDR", ":9400")
	CacheTTL         = durationEnv("SEARCH_CACHE_TTL", 5*time.Minute)
	CacheMaxEntries  = intEnv("SEARCH_CACHE_MAX_ENTRIES", 256)
	MeiliTimeout     = durationEnv("MEILI_TIMEOUT", 15*time.Second)
	ProviderTimeout  = durationEnv("PROVIDER_TIMEOUT", 30*time.Second)
	StoreInitRetries = intEnv("STORE_INIT_RETRIES", 5)
)

func stringEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func intEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
