package ingest

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"mstand/config"
	imgutil "mstand/utils/images"
)

// passThroughExts are source formats stored verbatim - the viewer decodes
// them natively and transcoding scans only loses quality.
var passThroughExts = map[string]bool{
	"png":  true,
	"jpg":  true,
	"gif":  true,
}

// pageName builds the canonical numbered page file name, 1-based.
func pageName(seq int, ext string) string {
	return fmt.Sprintf("page-%04d%s", seq, ext)
}

// nextPageSeq returns the sequence number for the next appended page.
// Numbering continues after the highest numbered page present, not after the
// page count - rescanned titles may have gaps left by hand-deleted pages and
// reusing a surviving number would overwrite its image.
func nextPageSeq(pages []string) int {
	next := len(pages)
	for _, name := range pages {
		num, ok := strings.CutPrefix(strings.TrimSuffix(name, filepath.Ext(name)), "page-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(num); err == nil && n > next {
			next = n
		}
	}
	return next + 1
}

// writePage stores a single page image into dir under sequence number seq.
// File type is sniffed from content, extensions are never trusted. Formats
// the viewer cannot be expected to keep supporting (bmp, tiff, webp) are
// transcoded to the configured page format.
func writePage(data []byte, dir string, seq int, cfg *config.ImportConfig, log *zap.Logger) (string, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return "", fmt.Errorf("unable to detect image type: %w", err)
	}

	if passThroughExts[kind.Extension] {
		name := pageName(seq, "."+kind.Extension)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return "", fmt.Errorf("unable to write page file: %w", err)
		}
		return name, nil
	}

	img, format, err := imgutil.Decode(data)
	if err != nil {
		return "", fmt.Errorf("unsupported image data (%s): %w", kind.Extension, err)
	}
	log.Debug("Transcoding page image", zap.String("from", format), zap.Stringer("to", cfg.PageFormat))

	name := pageName(seq, cfg.PageFormat.Ext())
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("unable to create page file: %w", err)
	}
	defer out.Close()

	switch cfg.PageFormat {
	case config.PageFmtPng:
		err = png.Encode(out, img)
	case config.PageFmtJpeg:
		var encoded []byte
		if encoded, err = imgutil.EncodeJPEGWithDPI(img, cfg.JPEGQuality, cfg.Density); err == nil {
			_, err = out.Write(encoded)
		}
	default:
		// this should never happen
		panic("unsupported page format requested")
	}
	if err != nil {
		return "", fmt.Errorf("unable to encode page file: %w", err)
	}
	return name, out.Close()
}

// isImageData reports whether data starts like a supported raster image.
func isImageData(data []byte) bool {
	return filetype.IsImage(data)
}
