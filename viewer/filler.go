package viewer

import (
	_ "embed"
	"fmt"
	"image"

	imgutil "mstand/utils/images"
)

//go:embed filler.svg
var defaultFillerSVG []byte

// FillerImage prepares the image shown on the empty right-hand side of the
// last spread when a title has an odd page count. data overrides the built in
// blank staff page, either as a raster image or an SVG rasterized at the
// requested height.
func FillerImage(data []byte, height int) (image.Image, error) {
	if len(data) == 0 {
		return imgutil.RasterizeSVGToImage(defaultFillerSVG, 0, height)
	}
	if img, _, err := imgutil.Decode(data); err == nil {
		return imgutil.FitHeight(img, height), nil
	}
	img, err := imgutil.RasterizeSVGToImage(data, 0, height)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare filler image: %w", err)
	}
	return img, nil
}
