package devicetool

import "fmt"

// ToolNotFoundError indicates the native capture utility is not installed
// or not on PATH. Guidance carries remediation instructions for the user.
type ToolNotFoundError struct {
	Tool     string
	Guidance string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Tool, e.Guidance)
}

// CaptureToolError wraps a failure of the external capture process with
// the device it was invoked against.
type CaptureToolError struct {
	DeviceID string
	Err      error
}

func (e *CaptureToolError) Error() string {
	return fmt.Sprintf("external screenshot capture failed for device %s: %v", e.DeviceID, e.Err)
}

func (e *CaptureToolError) Unwrap() error {
	return e.Err
}
