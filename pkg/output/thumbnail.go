package output

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Thumbnail scales img to the given width, preserving its aspect ratio
func Thumbnail(img image.Image, width uint) image.Image {
	return resize.Resize(width, 0, img, resize.Bilinear)
}

// SaveThumbnail writes a width-pixel-wide thumbnail of the image to path
func (img *Image) SaveThumbnail(path string, width uint) error {
	if width == 0 {
		return fmt.Errorf("thumbnail %s: width must be positive", path)
	}
	if err := imaging.Save(Thumbnail(img.rgba, width), path); err != nil {
		return fmt.Errorf("failed to save thumbnail %s: %w", path, err)
	}
	return nil
}
