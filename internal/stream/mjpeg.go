package stream

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/nightglass/devicecap/internal/imaging"
)

// Consumer reads an MJPEG multipart stream and keeps the newest frame in
// a Buffer so the acquisition pipeline can treat it as a live feed.
type Consumer struct {
	url    string
	client *http.Client
	buffer *Buffer
}

// NewConsumer creates a consumer feeding buffer from the stream at url
func NewConsumer(url string, buffer *Buffer) *Consumer {
	return &Consumer{
		url:    url,
		client: http.DefaultClient,
		buffer: buffer,
	}
}

// Start connects to the stream and begins buffering frames in the
// background. The buffer is activated on connect and deactivated when
// the stream ends or ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build stream request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to stream: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		resp.Body.Close()
		return fmt.Errorf("stream at %s is not multipart MJPEG (content type %q)", c.url, contentType)
	}

	c.buffer.Activate()
	go c.consume(resp.Body, params["boundary"])
	return nil
}

func (c *Consumer) consume(body io.ReadCloser, boundary string) {
	defer body.Close()
	defer c.buffer.Deactivate()

	reader := multipart.NewReader(body, boundary)
	for {
		part, err := reader.NextPart()
		if err != nil {
			return
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return
		}
		frame, err := decodeFrame(data)
		if err != nil {
			// Torn or partial frame; keep the previous one.
			continue
		}
		c.buffer.Push(frame)
	}
}

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// decodeFrame converts one stream part into the pipeline's PNG encoding
func decodeFrame(data []byte) (imaging.Image, error) {
	if bytes.HasPrefix(data, pngMagic) {
		return imaging.Image{PNG: data}, nil
	}
	raster, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return imaging.Image{}, err
	}
	return imaging.FromRaster(raster)
}
