package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// PixelSink receives finished 8-bit pixels. The renderer writes each pixel
// exactly once, possibly from several goroutines, never the same pixel twice.
type PixelSink interface {
	SetRGB(x, y int, r, g, b uint8)
}

// QuantizeChannel maps a display-encoded channel to 8 bits with floor(255.99*c).
// Values outside [0, 1] are clamped and NaN maps to 0.
func QuantizeChannel(c float64) uint8 {
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(math.Floor(255.99 * c))
}

// ColorToRGB gamma-corrects a linear color (gamma 2, a component-wise square
// root) and quantizes it
func ColorToRGB(linear core.Vec3) (r, g, b uint8) {
	encoded := linear.GammaCorrect(2.0)
	return QuantizeChannel(encoded.X), QuantizeChannel(encoded.Y), QuantizeChannel(encoded.Z)
}

// RGBASink adapts an *image.RGBA to PixelSink
type RGBASink struct {
	Image *image.RGBA
}

// NewRGBASink allocates an opaque RGBA image of the given size
func NewRGBASink(width, height int) *RGBASink {
	return &RGBASink{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// SetRGB writes an opaque pixel
func (s *RGBASink) SetRGB(x, y int, r, g, b uint8) {
	s.Image.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
}
