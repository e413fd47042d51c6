package simdevice

import (
	"github.com/nightglass/devicecap/internal/imaging"
)

// DeviceManager is the device-management layer consulted for simulator
// screenshots
type DeviceManager interface {
	SimulatorScreenshot(deviceID string) (string, error)
	IsSimulator(deviceID string) (bool, error)
}

// Capture requests a screenshot through the device-management layer.
// Errors propagate unmodified; whether to retry is the caller's decision.
func Capture(mgr DeviceManager, deviceID string) (imaging.Image, error) {
	payload, err := mgr.SimulatorScreenshot(deviceID)
	if err != nil {
		return imaging.Image{}, err
	}
	return imaging.FromBase64(payload)
}

// Screenshotter adapts a DeviceManager to the acquisition pipeline's
// simulator-capture contract
type Screenshotter struct {
	Mgr DeviceManager
}

func (s Screenshotter) Capture(deviceID string) (imaging.Image, error) {
	return Capture(s.Mgr, deviceID)
}
