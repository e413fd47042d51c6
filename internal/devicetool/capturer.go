package devicetool

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nightglass/devicecap/internal/imaging"
)

// Runner executes an external process and returns its combined output
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands through os/exec
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("command %s failed: %w, output: %s", name, err, output)
	}
	return output, nil
}

// Capturer invokes the native capture utility against a physical device.
// The mutex guards toolPath and tempDir: lazy resolution in Available
// may write toolPath while concurrent acquisitions for other devices
// read it.
type Capturer struct {
	mu       sync.Mutex
	toolPath string
	runner   Runner
	tempDir  string
}

// NewCapturer creates a capturer for the utility at toolPath. An empty
// toolPath defers tool lookup to the first Available call.
func NewCapturer(toolPath string, runner Runner) *Capturer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Capturer{
		toolPath: toolPath,
		runner:   runner,
		tempDir:  os.TempDir(),
	}
}

// SetTempDir overrides the directory used for transient screenshot files
func (c *Capturer) SetTempDir(dir string) *Capturer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tempDir = dir
	return c
}

// Available verifies the capture utility can be located, resolving it
// from the filesystem when no explicit path was configured
func (c *Capturer) Available() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.toolPath == "" {
		toolPath, err := FindTool("")
		if err != nil {
			return err
		}
		c.toolPath = toolPath
		return nil
	}

	if _, err := os.Stat(c.toolPath); err != nil {
		return &ToolNotFoundError{Tool: c.toolPath, Guidance: installGuidance}
	}
	return nil
}

// Capture invokes the utility as `<tool> -u <deviceID> <outputPath>` and
// reads the resulting file into memory. The temp file is removed on every
// exit path; cleanup can never replace an in-flight error.
func (c *Capturer) Capture(deviceID string) (imaging.Image, error) {
	c.mu.Lock()
	toolPath := c.toolPath
	tempDir := c.tempDir
	c.mu.Unlock()

	tempPath := filepath.Join(tempDir,
		fmt.Sprintf("devicecap-%s-%s.png", sanitizeID(deviceID), uuid.NewString()))
	defer os.Remove(tempPath)

	if _, err := c.runner.Run(toolPath, "-u", deviceID, tempPath); err != nil {
		return imaging.Image{}, &CaptureToolError{DeviceID: deviceID, Err: err}
	}

	data, err := os.ReadFile(tempPath)
	if err != nil {
		return imaging.Image{}, &CaptureToolError{DeviceID: deviceID,
			Err: fmt.Errorf("failed to read capture output: %w", err)}
	}

	return imaging.Image{PNG: data}, nil
}

// sanitizeID strips path separators so device ids stay safe inside a
// temp-file name
func sanitizeID(deviceID string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, deviceID)
}
