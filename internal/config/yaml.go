package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlConfig mirrors the YAML profile shape
type yamlConfig struct {
	DeviceID               string `yaml:"device_id"`
	AgentURL               string `yaml:"agent_url"`
	CaptureToolPath        string `yaml:"capture_tool_path"`
	PreferredScreenshotter string `yaml:"preferred_screenshotter"`
	RetryCount             *int   `yaml:"retry_count"`
	RetryIntervalMs        *int   `yaml:"retry_interval_ms"`
	MaxWidth               int    `yaml:"max_width"`
	LogLevel               string `yaml:"log_level"`
}

// LoadFromYAML loads configuration from a YAML profile
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	cfg.DeviceID = raw.DeviceID
	if raw.AgentURL != "" {
		cfg.AgentURL = raw.AgentURL
	}
	cfg.CaptureToolPath = raw.CaptureToolPath
	if raw.RetryCount != nil {
		cfg.RetryCount = *raw.RetryCount
	}
	if raw.RetryIntervalMs != nil {
		cfg.RetryIntervalMs = *raw.RetryIntervalMs
	}
	cfg.MaxWidth = raw.MaxWidth
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}

	if err := parsePreferred(cfg, raw.PreferredScreenshotter); err != nil {
		return nil, err
	}

	return cfg, nil
}
