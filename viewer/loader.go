package viewer

import (
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"mstand/library"
	imgutil "mstand/utils/images"
)

// Loader reads page images for a single title and scales them to the screen
// height. Only the pages of the current spread stay decoded, scanned pages at
// print density are far too large to keep a whole title in memory on the
// kiosk.
type Loader struct {
	lib    *library.Library
	rec    library.Record
	height int
	filler image.Image
	log    *zap.Logger

	cache map[int]image.Image
}

func NewLoader(lib *library.Library, rec library.Record, height int, filler image.Image, log *zap.Logger) *Loader {
	return &Loader{
		lib:    lib,
		rec:    rec,
		height: height,
		filler: filler,
		log:    log,
		cache:  make(map[int]image.Image, 2),
	}
}

func (l *Loader) Record() library.Record {
	return l.rec
}

func (l *Loader) page(i int) (image.Image, error) {
	if i < 0 {
		return l.filler, nil
	}
	if img, ok := l.cache[i]; ok {
		return img, nil
	}

	path := l.lib.PagePath(l.rec, i)

	start := time.Now()
	img, format, err := imgutil.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load page %d of %q: %w", i+1, l.rec.Title, err)
	}
	img = imgutil.FitHeight(img, l.height)
	l.log.Debug("Page loaded",
		zap.Int("page", i+1),
		zap.String("format", format),
		zap.Duration("elapsed", time.Since(start)))
	return img, nil
}

// Pages returns the two images of the spread, the right one being the filler
// when the spread has no real right page.
func (l *Loader) Pages(s *Spread) (left, right image.Image, err error) {
	if left, err = l.page(s.Left()); err != nil {
		return nil, nil, err
	}
	if right, err = l.page(s.Right()); err != nil {
		return nil, nil, err
	}

	next := make(map[int]image.Image, 2)
	if i := s.Left(); i >= 0 {
		next[i] = left
	}
	if i := s.Right(); i >= 0 {
		next[i] = right
	}
	l.cache = next
	return left, right, nil
}
