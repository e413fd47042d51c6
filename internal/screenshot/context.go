package screenshot

import (
	"fmt"
	"strings"

	"github.com/nightglass/devicecap/internal/devicetool"
)

// CaptureSource identifies one of the screenshot mechanisms the
// acquisition policy can draw from
type CaptureSource int

const (
	SourceLiveStream CaptureSource = iota
	SourceExternalTool
	SourceAgentProxy
	SourceSimulatorAPI
)

func (s CaptureSource) String() string {
	switch s {
	case SourceLiveStream:
		return "live-stream"
	case SourceExternalTool:
		return "external-tool"
	case SourceAgentProxy:
		return "agent-proxy"
	case SourceSimulatorAPI:
		return "simulator-api"
	default:
		return fmt.Sprintf("capture-source(%d)", int(s))
	}
}

// ParseSource resolves the configured preferred-screenshotter value into
// a CaptureSource. The only recognized value is the external tool's name,
// matched case-insensitively. Parsing happens once at configuration-load
// time so unrecognized values fail fast instead of being re-compared on
// every capture.
func ParseSource(s string) (CaptureSource, error) {
	if strings.EqualFold(s, devicetool.ToolName) {
		return SourceExternalTool, nil
	}
	return 0, fmt.Errorf("unrecognized screenshotter %q (supported: %s)", s, devicetool.ToolName)
}

// DeviceClass distinguishes simulators from physical devices
type DeviceClass int

const (
	ClassSimulator DeviceClass = iota
	ClassPhysical
)

func (c DeviceClass) String() string {
	if c == ClassSimulator {
		return "simulator"
	}
	return "physical"
}

// Orientation is the device screen orientation
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// ParseOrientation maps an agent-reported orientation string onto
// Portrait or Landscape. Anything that is not a landscape variant counts
// as portrait.
func ParseOrientation(s string) Orientation {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s)), "LANDSCAPE") {
		return Landscape
	}
	return Portrait
}

// DeviceContext is the immutable per-call input to the acquisition
// pipeline. Preferred, when set, is the already-parsed configured
// screenshotter override.
type DeviceContext struct {
	DeviceID    string
	Class       DeviceClass
	Orientation Orientation
	Preferred   *CaptureSource
}

// PrefersExternalTool reports whether the caller explicitly configured
// the external capture tool
func (d DeviceContext) PrefersExternalTool() bool {
	return d.Preferred != nil && *d.Preferred == SourceExternalTool
}
