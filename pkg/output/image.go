// Package output writes rendered pixels to files and remote storage.
package output

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

// Image is an in-memory pixel sink backed by an RGBA buffer
type Image struct {
	rgba *image.RGBA
}

// NewImage allocates a width x height image
func NewImage(width, height int) *Image {
	return &Image{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// SetRGB writes an opaque pixel
func (img *Image) SetRGB(x, y int, r, g, b uint8) {
	img.rgba.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
}

// RGBAt returns the color channels at (x, y)
func (img *Image) RGBAt(x, y int) (r, g, b uint8) {
	c := img.rgba.RGBAAt(x, y)
	return c.R, c.G, c.B
}

// Width returns the image width in pixels
func (img *Image) Width() int { return img.rgba.Bounds().Dx() }

// Height returns the image height in pixels
func (img *Image) Height() int { return img.rgba.Bounds().Dy() }

// Image returns the underlying buffer
func (img *Image) Image() *image.RGBA {
	return img.rgba
}

// Save writes the image to path, choosing the format from the file extension
func (img *Image) Save(path string) error {
	if err := imaging.Save(img.rgba, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Encode writes the image to w in the format implied by filename
func (img *Image) Encode(w io.Writer, filename string) error {
	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	if err := imaging.Encode(w, img.rgba, format); err != nil {
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return nil
}
