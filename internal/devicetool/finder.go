package devicetool

import (
	"os"
	"os/exec"
	"path/filepath"
)

// ToolName is the native capture utility invoked for physical devices
const ToolName = "idevicescreenshot"

const installGuidance = "install libimobiledevice (e.g. 'brew install libimobiledevice') and make sure " +
	ToolName + " is on PATH, or set CaptureToolPath in Settings.ini"

// FindTool attempts to locate the capture utility executable
func FindTool(preferredPath string) (string, error) {
	// Try preferred path first
	if preferredPath != "" {
		toolPath := preferredPath
		if info, err := os.Stat(toolPath); err == nil && !info.IsDir() {
			return toolPath, nil
		}
		// A directory means "look for the tool inside it"
		toolPath = filepath.Join(preferredPath, ToolName)
		if _, err := os.Stat(toolPath); err == nil {
			return toolPath, nil
		}
	}

	// Try common install locations
	commonPaths := []string{
		"/usr/local/bin/" + ToolName,
		"/opt/homebrew/bin/" + ToolName,
		"/usr/bin/" + ToolName,
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	// Fall back to PATH lookup
	if toolPath, err := exec.LookPath(ToolName); err == nil {
		return toolPath, nil
	}

	return "", &ToolNotFoundError{Tool: ToolName, Guidance: installGuidance}
}
