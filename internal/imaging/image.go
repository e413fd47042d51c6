package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

// Image is an encoded PNG buffer, the unit exchanged between every
// capture source and transform in the pipeline.
type Image struct {
	PNG []byte
}

// FromBase64 decodes a base64 PNG payload into an Image
func FromBase64(s string) (Image, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return Image{PNG: data}, nil
}

// FromRaster encodes a decoded raster into a PNG Image
func FromRaster(img image.Image) (Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Image{}, &ImageProcessingError{Op: "encode", Err: err}
	}
	return Image{PNG: buf.Bytes()}, nil
}

// Base64 returns the image as a base64 PNG string for the transport boundary
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.PNG)
}

// Empty reports whether the image holds no data
func (i Image) Empty() bool {
	return len(i.PNG) == 0
}

// Decode returns the raster content of the image
func (i Image) Decode() (image.Image, error) {
	raster, err := png.Decode(bytes.NewReader(i.PNG))
	if err != nil {
		return nil, &ImageProcessingError{Op: "decode", Err: err}
	}
	return raster, nil
}
