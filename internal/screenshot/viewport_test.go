package screenshot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightglass/devicecap/internal/imaging"
)

// fakeMetrics counts lookups so the zero-status-bar short path can be
// verified
type fakeMetrics struct {
	statusBarHeight float64
	pixelRatio      float64
	windowWidth     int
	windowHeight    int

	statusBarCalls  int
	pixelRatioCalls int
	windowCalls     int
}

func (m *fakeMetrics) StatusBarHeight() (float64, error) {
	m.statusBarCalls++
	return m.statusBarHeight, nil
}

func (m *fakeMetrics) PixelRatio() (float64, error) {
	m.pixelRatioCalls++
	return m.pixelRatio, nil
}

func (m *fakeMetrics) WindowSize() (int, int, error) {
	m.windowCalls++
	return m.windowWidth, m.windowHeight, nil
}

func viewportAcquirer(img imaging.Image) *Acquirer {
	return NewAcquirer(&fakeStream{}, agentReturning(img), &fakeTool{}, &fakeSim{}, fastOptions(), quietLogger())
}

func TestViewportZeroStatusBarShortCircuits(t *testing.T) {
	full := testImage(t, 8, 8)
	metrics := &fakeMetrics{statusBarHeight: 0}

	cropper := NewCropper(viewportAcquirer(full), metrics)

	img, err := cropper.CaptureViewport(context.Background(), DeviceContext{DeviceID: "dev-1", Class: ClassPhysical})
	require.NoError(t, err)
	assert.Equal(t, full.PNG, img.PNG, "a zero status bar returns the unmodified full screenshot")

	assert.Equal(t, 1, metrics.statusBarCalls)
	assert.Equal(t, 0, metrics.pixelRatioCalls, "short path must skip the pixel-ratio lookup")
	assert.Equal(t, 0, metrics.windowCalls, "short path must skip the window-size lookup")
}

func TestViewportCrop(t *testing.T) {
	// statusBarHeight=20pt at 2x on a 400x800pt window over an 800x1600
	// screenshot crops {left:0, top:40, width:800, height:1560}.
	full := testImage(t, 800, 1600)
	metrics := &fakeMetrics{
		statusBarHeight: 20,
		pixelRatio:      2,
		windowWidth:     400,
		windowHeight:    800,
	}

	cropper := NewCropper(viewportAcquirer(full), metrics)

	img, err := cropper.CaptureViewport(context.Background(), DeviceContext{DeviceID: "dev-1", Class: ClassPhysical})
	require.NoError(t, err)

	w, h := dimensions(t, img)
	assert.Equal(t, 800, w)
	assert.Equal(t, 1560, h)
}

func TestViewportCropOutOfBounds(t *testing.T) {
	// Window metrics claim more screen than the screenshot holds.
	full := testImage(t, 100, 100)
	metrics := &fakeMetrics{
		statusBarHeight: 20,
		pixelRatio:      2,
		windowWidth:     400,
		windowHeight:    800,
	}

	cropper := NewCropper(viewportAcquirer(full), metrics)

	_, err := cropper.CaptureViewport(context.Background(), DeviceContext{DeviceID: "dev-1", Class: ClassPhysical})

	var regionErr *imaging.InvalidRegionError
	require.ErrorAs(t, err, &regionErr)
}

func TestViewportAcquireErrorPropagates(t *testing.T) {
	simErr := errors.New("simulator runtime unavailable")
	acquirer := NewAcquirer(&fakeStream{}, agentFailing(), &fakeTool{}, &fakeSim{err: simErr}, fastOptions(), quietLogger())
	metrics := &fakeMetrics{statusBarHeight: 20, pixelRatio: 2, windowWidth: 10, windowHeight: 10}

	cropper := NewCropper(acquirer, metrics)

	_, err := cropper.CaptureViewport(context.Background(), DeviceContext{DeviceID: "sim-1", Class: ClassSimulator})
	require.ErrorIs(t, err, simErr)
}
