package stream

import (
	"fmt"

	"github.com/nightglass/devicecap/internal/imaging"
)

// Feed is a live video frame source. LastChunkBase64 reports absence as
// false, not as an error; a feed that has not produced a frame yet is
// still healthy.
type Feed interface {
	IsActive() bool
	LastChunkBase64() (string, bool)
}

// Capture reads the most recent frame from an already-running live feed
type Capture struct {
	feed Feed
}

// NewCapture wraps a live feed. A nil feed behaves as an inactive one.
func NewCapture(feed Feed) *Capture {
	return &Capture{feed: feed}
}

// Active reports whether a live feed is currently running
func (c *Capture) Active() bool {
	return c.feed != nil && c.feed.IsActive()
}

// LastFrame performs a non-blocking read of the most recent buffered
// frame. The second return value is false when no frame has arrived yet.
func (c *Capture) LastFrame() (imaging.Image, bool, error) {
	if c.feed == nil {
		return imaging.Image{}, false, nil
	}

	chunk, ok := c.feed.LastChunkBase64()
	if !ok {
		return imaging.Image{}, false, nil
	}

	img, err := imaging.FromBase64(chunk)
	if err != nil {
		return imaging.Image{}, false, fmt.Errorf("malformed stream frame: %w", err)
	}
	return img, true, nil
}
