package images

import (
	"image"

	"github.com/disintegration/imaging"
)

// FitHeight scales img to the requested height preserving aspect ratio.
// Images already at the requested height are returned as is.
func FitHeight(img image.Image, height int) image.Image {
	if img == nil || height <= 0 || img.Bounds().Dy() == height {
		return img
	}
	return imaging.Resize(img, 0, height, imaging.CatmullRom)
}
