package screenshot

import (
	"context"
	"math"

	"github.com/nightglass/devicecap/internal/imaging"
)

// Metrics supplies the device measurements needed to isolate the
// viewport. StatusBarHeight is in unscaled points.
type Metrics interface {
	StatusBarHeight() (float64, error)
	PixelRatio() (float64, error)
	WindowSize() (width, height int, err error)
}

// Cropper composes full-screen acquisition with device metrics to return
// a viewport-only image (screen content minus system chrome)
type Cropper struct {
	acquirer *Acquirer
	metrics  Metrics
}

// NewCropper builds a viewport cropper over an acquirer
func NewCropper(acquirer *Acquirer, metrics Metrics) *Cropper {
	return &Cropper{acquirer: acquirer, metrics: metrics}
}

// CaptureViewport returns the current screenshot cropped to the
// viewport. A zero status-bar height short-circuits: the full screenshot
// comes back unmodified and no further metric lookups happen.
func (c *Cropper) CaptureViewport(ctx context.Context, dev DeviceContext) (imaging.Image, error) {
	statusBarHeight, err := c.metrics.StatusBarHeight()
	if err != nil {
		return imaging.Image{}, err
	}

	img, err := c.acquirer.Acquire(ctx, dev)
	if err != nil {
		return imaging.Image{}, err
	}

	if statusBarHeight == 0 {
		return img, nil
	}

	ratio, err := c.metrics.PixelRatio()
	if err != nil {
		return imaging.Image{}, err
	}
	windowWidth, windowHeight, err := c.metrics.WindowSize()
	if err != nil {
		return imaging.Image{}, err
	}

	barPixels := int(math.Round(statusBarHeight * ratio))
	rect := imaging.Rectangle{
		Left:   0,
		Top:    barPixels,
		Width:  int(float64(windowWidth) * ratio),
		Height: int(float64(windowHeight)*ratio) - barPixels,
	}

	return imaging.Crop(img, rect)
}
