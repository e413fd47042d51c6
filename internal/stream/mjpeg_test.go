package stream

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegFrame(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)), nil))
	return buf.Bytes()
}

// mjpegHandler serves one JPEG part and then holds the connection open
// until the client goes away, like a live camera feed.
func mjpegHandler(t *testing.T, frame []byte) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		writer := multipart.NewWriter(w)
		require.NoError(t, writer.SetBoundary("frame"))
		w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+writer.Boundary())

		part, err := writer.CreatePart(textproto.MIMEHeader{"Content-Type": {"image/jpeg"}})
		require.NoError(t, err)
		_, err = part.Write(frame)
		require.NoError(t, err)
		w.(http.Flusher).Flush()

		<-r.Context().Done()
	}
}

func TestConsumerBuffersStreamFrames(t *testing.T) {
	frame := jpegFrame(t, 3, 2)
	server := httptest.NewServer(mjpegHandler(t, frame))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	buffer := NewBuffer()
	consumer := NewConsumer(server.URL, buffer)
	require.NoError(t, consumer.Start(ctx))

	assert.True(t, buffer.IsActive(), "buffer activates when the stream connects")

	capture := NewCapture(buffer)
	require.Eventually(t, func() bool {
		_, ok, err := capture.LastFrame()
		return err == nil && ok
	}, 2*time.Second, 10*time.Millisecond, "a frame should arrive from the stream")

	img, ok, err := capture.LastFrame()
	require.NoError(t, err)
	require.True(t, ok)
	raster, err := img.Decode()
	require.NoError(t, err)
	assert.Equal(t, 3, raster.Bounds().Dx())
	assert.Equal(t, 2, raster.Bounds().Dy())
}

func TestConsumerDeactivatesBufferWhenStreamEnds(t *testing.T) {
	frame := jpegFrame(t, 2, 2)
	server := httptest.NewServer(mjpegHandler(t, frame))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	buffer := NewBuffer()
	consumer := NewConsumer(server.URL, buffer)
	require.NoError(t, consumer.Start(ctx))

	cancel()
	require.Eventually(t, func() bool {
		return !buffer.IsActive()
	}, 2*time.Second, 10*time.Millisecond, "losing the stream deactivates the buffer")
	_, ok := buffer.LastChunkBase64()
	assert.False(t, ok, "deactivation drops the buffered frame")
}

func TestConsumerRejectsNonMultipartStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("not a stream"))
	}))
	defer server.Close()

	buffer := NewBuffer()
	consumer := NewConsumer(server.URL, buffer)

	err := consumer.Start(context.Background())
	require.Error(t, err)
	assert.False(t, buffer.IsActive(), "a failed connect leaves the buffer inactive")
}
