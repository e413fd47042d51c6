package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// LoadFromINI loads configuration from a Settings.ini file
func LoadFromINI(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg := Default()

	capture := file.Section("Capture")
	cfg.DeviceID = capture.Key("DeviceID").MustString("")
	cfg.AgentURL = capture.Key("AgentURL").MustString(cfg.AgentURL)
	cfg.CaptureToolPath = capture.Key("CaptureToolPath").MustString("")
	cfg.RetryCount = capture.Key("RetryCount").MustInt(cfg.RetryCount)
	cfg.RetryIntervalMs = capture.Key("RetryIntervalMs").MustInt(cfg.RetryIntervalMs)
	cfg.MaxWidth = capture.Key("MaxWidth").MustInt(0)

	if err := parsePreferred(cfg, capture.Key("PreferredScreenshotter").MustString("")); err != nil {
		return nil, err
	}

	cfg.LogLevel = file.Section("Logging").Key("Level").MustString(cfg.LogLevel)

	return cfg, nil
}
