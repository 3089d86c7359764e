package domain

import (
	"fmt"
	"strings"
)

// TopicConfig is one configured fetch subject. Built at engine start,
// immutable afterwards.
type TopicConfig struct {
	Name            string
	IntervalMinutes int
}

// DefaultFetchIntervalMinutes is applied when configuration is absent or
// fails validation.
const DefaultFetchIntervalMinutes = 60

// DefaultTopics returns the built-in topic set used when no valid topic
// configuration is supplied.
func DefaultTopics() []TopicConfig {
	return []TopicConfig{
		{Name: "world news", IntervalMinutes: DefaultFetchIntervalMinutes},
		{Name: "technology", IntervalMinutes: DefaultFetchIntervalMinutes},
		{Name: "science", IntervalMinutes: DefaultFetchIntervalMinutes},
	}
}

// NewTopicConfigs builds the topic set from raw configuration values.
// Any validation failure is returned so the caller can fall back to
// DefaultTopics; partial configurations are never used.
func NewTopicConfigs(names []string, intervalMinutes int) ([]TopicConfig, error) {
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("fetch interval must be positive, got %d", intervalMinutes)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("topic list cannot be empty")
	}

	configs := make([]TopicConfig, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("topic name cannot be empty")
		}
		configs = append(configs, TopicConfig{Name: name, IntervalMinutes: intervalMinutes})
	}

	return configs, nil
}
