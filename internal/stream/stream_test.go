package stream

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightglass/devicecap/internal/imaging"
)

func testFrame(t *testing.T) imaging.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return imaging.Image{PNG: buf.Bytes()}
}

func TestBufferLifecycle(t *testing.T) {
	buffer := NewBuffer()

	assert.False(t, buffer.IsActive())
	_, ok := buffer.LastChunkBase64()
	assert.False(t, ok, "a fresh buffer holds no frame")

	buffer.Activate()
	assert.True(t, buffer.IsActive())
	_, ok = buffer.LastChunkBase64()
	assert.False(t, ok, "activation alone does not produce a frame")

	frame := testFrame(t)
	buffer.Push(frame)
	chunk, ok := buffer.LastChunkBase64()
	require.True(t, ok)
	assert.Equal(t, frame.Base64(), chunk)

	buffer.Deactivate()
	assert.False(t, buffer.IsActive())
	_, ok = buffer.LastChunkBase64()
	assert.False(t, ok, "deactivation drops the buffered frame")
}

func TestLastFrameAbsentIsNotAnError(t *testing.T) {
	buffer := NewBuffer()
	buffer.Activate()

	capture := NewCapture(buffer)

	_, ok, err := capture.LastFrame()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastFrameReturnsNewestFrame(t *testing.T) {
	buffer := NewBuffer()
	buffer.Activate()

	first := testFrame(t)
	buffer.Push(first)
	second := testFrame(t)
	buffer.Push(second)

	capture := NewCapture(buffer)
	frame, ok, err := capture.LastFrame()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second.PNG, frame.PNG)
}

func TestLastFrameMalformedChunk(t *testing.T) {
	capture := NewCapture(badFeed{})

	_, _, err := capture.LastFrame()
	require.Error(t, err)
}

type badFeed struct{}

func (badFeed) IsActive() bool                  { return true }
func (badFeed) LastChunkBase64() (string, bool) { return "%%% not base64 %%%", true }

func TestNilFeedIsInactive(t *testing.T) {
	capture := NewCapture(nil)

	assert.False(t, capture.Active())

	_, ok, err := capture.LastFrame()
	require.NoError(t, err)
	assert.False(t, ok)
}
