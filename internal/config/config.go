package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nightglass/devicecap/internal/screenshot"
)

// Config holds everything the capture pipeline reads at startup.
// PreferredScreenshotter is parsed into a CaptureSource once, here, so an
// unrecognized value fails the load instead of surfacing mid-capture.
type Config struct {
	DeviceID               string
	AgentURL               string
	CaptureToolPath        string
	PreferredScreenshotter *screenshot.CaptureSource
	RetryCount             int
	RetryIntervalMs        int
	MaxWidth               int
	LogLevel               string
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		AgentURL:        "http://127.0.0.1:8100",
		RetryCount:      2,
		RetryIntervalMs: 1000,
		LogLevel:        "info",
	}
}

// Load reads a configuration file, dispatching on extension:
// Settings.ini style files via the INI loader, .yaml/.yml profiles via
// the YAML loader.
func Load(path string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		return LoadFromINI(path)
	case ".yaml", ".yml":
		return LoadFromYAML(path)
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// parsePreferred applies the fail-fast source parse to a raw config value
func parsePreferred(cfg *Config, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	source, err := screenshot.ParseSource(raw)
	if err != nil {
		return fmt.Errorf("invalid PreferredScreenshotter: %w", err)
	}
	cfg.PreferredScreenshotter = &source
	return nil
}
