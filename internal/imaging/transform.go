package imaging

import (
	"image"

	"github.com/nfnt/resize"
)

// Rectangle describes a crop region in pixel units of the source image
type Rectangle struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Rotate90 rotates the raster content 90 degrees clockwise and re-encodes.
// The output dimensions are the input dimensions swapped.
func Rotate90(img Image) (Image, error) {
	raster, err := img.Decode()
	if err != nil {
		return Image{}, err
	}

	bounds := raster.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rotated := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rotated.Set(h-1-y, x, raster.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}

	return FromRaster(rotated)
}

// Crop returns the sub-image at r, re-encoded as PNG. The rectangle must
// lie fully inside the source image.
func Crop(img Image, r Rectangle) (Image, error) {
	raster, err := img.Decode()
	if err != nil {
		return Image{}, err
	}

	bounds := raster.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if r.Left < 0 || r.Top < 0 || r.Width < 0 || r.Height < 0 ||
		r.Left+r.Width > w || r.Top+r.Height > h {
		return Image{}, &InvalidRegionError{Region: r, Width: w, Height: h}
	}

	cropped := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			cropped.Set(x, y, raster.At(bounds.Min.X+r.Left+x, bounds.Min.Y+r.Top+y))
		}
	}

	return FromRaster(cropped)
}

// ScaleToWidth downscales the image to maxWidth preserving aspect ratio.
// Images already within maxWidth (or a non-positive maxWidth) pass through
// unchanged.
func ScaleToWidth(img Image, maxWidth int) (Image, error) {
	if maxWidth <= 0 {
		return img, nil
	}

	raster, err := img.Decode()
	if err != nil {
		return Image{}, err
	}

	if raster.Bounds().Dx() <= maxWidth {
		return img, nil
	}

	scaled := resize.Resize(uint(maxWidth), 0, raster, resize.Lanczos3)
	return FromRaster(scaled)
}
