package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

var engineEnvVars = []string{
	"AGENT_ID",
	"NEWS_TOPICS",
	"NEWS_FETCH_INTERVAL_MINUTES",
	"NEWS_RETENTION_DAYS",
	"NEWS_DEFAULT_LIMIT",
	"MEILISEARCH_HOST",
	"MEILISEARCH_API_KEY",
	"MEILISEARCH_API_KEY_FILE",
	"SEARCH_API_URL",
	"SEARCH_API_KEY",
}

func clearEnv() {
	for _, k := range engineEnvVars {
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv()
	defer clearEnv()

	cfg := Load()

	assert.Equal(t, DefaultAgentID, cfg.Engine.AgentID)
	assert.Equal(t, DefaultTopicNames, cfg.Engine.Topics)
	assert.Equal(t, DefaultFetchIntervalMinutes, cfg.Engine.FetchIntervalMinutes)
	assert.Equal(t, DefaultRetentionDays, cfg.Engine.RetentionDays)
	assert.Equal(t, DefaultResultLimit, cfg.Engine.DefaultLimit)
	assert.Equal(t, "http://localhost:7700", cfg.Meilisearch.Host)
	assert.Equal(t, "https://api.tavily.com", cfg.Provider.BaseURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv()
	defer clearEnv()

	os.Setenv("AGENT_ID", "newsbot")
	os.Setenv("NEWS_TOPICS", "climate, space ,finance")
	os.Setenv("NEWS_FETCH_INTERVAL_MINUTES", "15")
	os.Setenv("NEWS_RETENTION_DAYS", "7")
	os.Setenv("MEILISEARCH_HOST", "http://meili:7700")

	cfg := Load()

	assert.Equal(t, "newsbot", cfg.Engine.AgentID)
	assert.Equal(t, []string{"climate", "space", "finance"}, cfg.Engine.Topics)
	assert.Equal(t, 15, cfg.Engine.FetchIntervalMinutes)
	assert.Equal(t, 7, cfg.Engine.RetentionDays)
	assert.Equal(t, "http://meili:7700", cfg.Meilisearch.Host)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "non-numeric interval",
			envVars: map[string]string{"NEWS_FETCH_INTERVAL_MINUTES": "soon"},
		},
		{
			name:    "negative retention",
			envVars: map[string]string{"NEWS_RETENTION_DAYS": "-3"},
		},
		{
			name:    "zero limit",
			envVars: map[string]string{"NEWS_DEFAULT_LIMIT": "0"},
		},
		{
			name:    "blank topic list",
			envVars: map[string]string{"NEWS_TOPICS": " , , "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv()
			defer clearEnv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			// Load never fails; bad values fall back to defaults.
			cfg := Load()

			assert.Equal(t, DefaultFetchIntervalMinutes, cfg.Engine.FetchIntervalMinutes)
			assert.Equal(t, DefaultRetentionDays, cfg.Engine.RetentionDays)
			assert.Equal(t, DefaultResultLimit, cfg.Engine.DefaultLimit)
			assert.Equal(t, DefaultTopicNames, cfg.Engine.Topics)
		})
	}
}

func TestLoad_SecretFromFile(t *testing.T) {
	clearEnv()
	defer clearEnv()

	secretFile := filepath.Join(t.TempDir(), "meili_key")
	if err := os.WriteFile(secretFile, []byte("s3cret\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	os.Setenv("MEILISEARCH_API_KEY_FILE", secretFile)

	cfg := Load()

	assert.Equal(t, "s3cret", cfg.Meilisearch.APIKey)
}

func TestEngineConfig_IndexName(t *testing.T) {
	tests := []struct {
		agentID string
		want    string
	}{
		{"default", "default_news"},
		{"newsbot", "newsbot_news"},
	}

	for _, tt := range tests {
		t.Run(tt.agentID, func(t *testing.T) {
			cfg := EngineConfig{AgentID: tt.agentID}
			assert.Equal(t, tt.want, cfg.IndexName())
		})
	}
}

func TestConnectionInfo(t *testing.T) {
	cfg := &Config{
		Meilisearch: MeilisearchConfig{Host: "http://meili:7700"},
		Provider:    ProviderConfig{BaseURL: "https://api.tavily.com"},
	}
	assert.Contains(t, cfg.ConnectionInfo(), "http://meili:7700")
	assert.Contains(t, cfg.ConnectionInfo(), "https://api.tavily.com")
}
