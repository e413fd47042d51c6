package imaging

import "fmt"

// ImageProcessingError indicates an image buffer could not be decoded
// or re-encoded
type ImageProcessingError struct {
	Op  string
	Err error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("image %s failed: %v", e.Op, e.Err)
}

func (e *ImageProcessingError) Unwrap() error {
	return e.Err
}

// InvalidRegionError indicates a crop rectangle that falls outside the
// bounds of the source image
type InvalidRegionError struct {
	Region Rectangle
	Width  int
	Height int
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("crop region (left=%d top=%d width=%d height=%d) is outside image bounds %dx%d",
		e.Region.Left, e.Region.Top, e.Region.Width, e.Region.Height, e.Width, e.Height)
}
