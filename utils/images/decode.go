// Package images keeps image helpers shared by the importer and the viewer.
package images

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes image data in any of the registered formats and reports the
// format name. Scanner output comes in anything from png to webp, so all
// decoders are registered here once.
func Decode(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

// DecodeFile decodes image file in any of the registered formats.
func DecodeFile(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return Decode(data)
}
