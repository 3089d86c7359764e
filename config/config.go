package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Engine defaults, used whenever configuration is absent or invalid.
const (
	DefaultFetchIntervalMinutes = 60
	DefaultRetentionDays        = 30
	DefaultResultLimit          = 10
	DefaultAgentID              = "default"
)

// DefaultTopicNames is the built-in topic set.
var DefaultTopicNames = []string{"world news", "technology", "science"}

type Config struct {
	Engine      EngineConfig
	Meilisearch MeilisearchConfig
	Provider    ProviderConfig
	HTTP        HTTPConfig
}

// EngineConfig holds the ingestion/retrieval settings. Malformed values
// fall back to defaults; the engine never fails to start over settings.
type EngineConfig struct {
	AgentID              string
	Topics               []string
	FetchIntervalMinutes int
	RetentionDays        int
	DefaultLimit         int
}

type MeilisearchConfig struct {
	Host    string
	APIKey  string
	Timeout time.Duration
}

type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
}

// IndexName derives the store namespace: agent identifier plus a dedicated
// table name, isolating this engine's data from other knowledge kinds.
func (c *EngineConfig) IndexName() string {
	return c.AgentID + "_news"
}

// Load reads configuration from the environment. Engine settings that fail
// validation are replaced by defaults and logged; only the substrate
// endpoints come back verbatim.
func Load() *Config {
	cfg := &Config{
		Engine: EngineConfig{
			AgentID:              getEnvOrDefault("AGENT_ID", DefaultAgentID),
			Topics:               loadTopics(),
			FetchIntervalMinutes: positiveIntEnv("NEWS_FETCH_INTERVAL_MINUTES", DefaultFetchIntervalMinutes),
			RetentionDays:        positiveIntEnv("NEWS_RETENTION_DAYS", DefaultRetentionDays),
			DefaultLimit:         positiveIntEnv("NEWS_DEFAULT_LIMIT", DefaultResultLimit),
		},
		Meilisearch: MeilisearchConfig{
			Host:    getEnvOrDefault("MEILISEARCH_HOST", "http://localhost:7700"),
			APIKey:  getEnvOrDefault("MEILISEARCH_API_KEY", ""),
			Timeout: 15 * time.Second,
		},
		Provider: ProviderConfig{
			BaseURL: getEnvOrDefault("SEARCH_API_URL", "https://api.tavily.com"),
			APIKey:  getEnvOrDefault("SEARCH_API_KEY", ""),
			Timeout: 30 * time.Second,
		},
		HTTP: HTTPConfig{
			Addr:              HTTPAddr,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	slog.Info("Configuration loaded",
		"agent_id", cfg.Engine.AgentID,
		"topics", cfg.Engine.Topics,
		"fetch_interval_minutes", cfg.Engine.FetchIntervalMinutes,
		"retention_days", cfg.Engine.RetentionDays,
		"meilisearch_host", cfg.Meilisearch.Host,
	)

	return cfg
}

func loadTopics() []string {
	raw := os.Getenv("NEWS_TOPICS")
	if raw == "" {
		return DefaultTopicNames
	}

	parts := strings.Split(raw, ",")
	topics := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			topics = append(topics, p)
		}
	}
	if len(topics) == 0 {
		slog.Warn("NEWS_TOPICS contained no usable topics, using defaults", "raw", raw)
		return DefaultTopicNames
	}
	return topics
}

func positiveIntEnv(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid configuration value, using default",
			"key", key,
			"value", v,
			"default", defaultVal,
		)
		return defaultVal
	}
	return n
}

func getEnvOrDefault(key, defaultValue string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ConnectionInfo summarizes the substrate endpoints for startup logs.
func (c *Config) ConnectionInfo() string {
	return fmt.Sprintf("meilisearch=%s provider=%s", c.Meilisearch.Host, c.Provider.BaseURL)
}
