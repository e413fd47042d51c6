package simdevice

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// Runner executes an external process and returns its combined output
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("command %s failed: %w, output: %s", name, err, output)
	}
	return output, nil
}

// Device describes one simulator instance known to simctl
type Device struct {
	UDID    string `json:"udid"`
	Name    string `json:"name"`
	State   string `json:"state"`
	Runtime string `json:"-"`
}

// simctlList mirrors the `simctl list devices -j` output shape
type simctlList struct {
	Devices map[string][]Device `json:"devices"`
}

// SimctlManager implements DeviceManager on top of `xcrun simctl`
type SimctlManager struct {
	runner  Runner
	tempDir string
}

// NewSimctlManager creates a simctl-backed device manager. A nil runner
// uses os/exec.
func NewSimctlManager(runner Runner) *SimctlManager {
	if runner == nil {
		runner = execRunner{}
	}
	return &SimctlManager{
		runner:  runner,
		tempDir: os.TempDir(),
	}
}

// SetTempDir overrides the directory used for transient screenshot files
func (m *SimctlManager) SetTempDir(dir string) *SimctlManager {
	m.tempDir = dir
	return m
}

// ListDevices discovers simulator instances from simctl's JSON output
func (m *SimctlManager) ListDevices() ([]Device, error) {
	output, err := m.runner.Run("xcrun", "simctl", "list", "devices", "-j")
	if err != nil {
		return nil, fmt.Errorf("failed to list simulators: %w", err)
	}

	var list simctlList
	if err := json.Unmarshal(output, &list); err != nil {
		return nil, fmt.Errorf("failed to parse simctl device list: %w", err)
	}

	var devices []Device
	for runtime, group := range list.Devices {
		for _, d := range group {
			d.Runtime = runtime
			devices = append(devices, d)
		}
	}
	return devices, nil
}

// IsSimulator reports whether deviceID names a known simulator instance
func (m *SimctlManager) IsSimulator(deviceID string) (bool, error) {
	devices, err := m.ListDevices()
	if err != nil {
		return false, err
	}
	for _, d := range devices {
		if d.UDID == deviceID {
			return true, nil
		}
	}
	return false, nil
}

// SimulatorScreenshot captures the simulator screen through
// `xcrun simctl io <udid> screenshot` and returns it base64-encoded.
// The intermediate file is removed on every exit path.
func (m *SimctlManager) SimulatorScreenshot(deviceID string) (string, error) {
	tempPath := filepath.Join(m.tempDir,
		fmt.Sprintf("simshot-%s-%s.png", deviceID, uuid.NewString()))
	defer os.Remove(tempPath)

	if _, err := m.runner.Run("xcrun", "simctl", "io", deviceID, "screenshot", tempPath); err != nil {
		return "", fmt.Errorf("simulator screenshot failed for %s: %w", deviceID, err)
	}

	data, err := os.ReadFile(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to read simulator screenshot: %w", err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}
