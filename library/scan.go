package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// pageExts lists page image extensions the viewer can show.
var pageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsPageFile reports whether name looks like a page image.
func IsPageFile(name string) bool {
	return pageExts[strings.ToLower(filepath.Ext(name))]
}

// ScanPages lists page image files in dir in natural name order, so that
// page-2 sorts before page-10 the way scanner software numbers them.
func ScanPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read title directory: %w", err)
	}

	var pages []string
	for _, e := range entries {
		if e.IsDir() || !IsPageFile(e.Name()) {
			continue
		}
		pages = append(pages, e.Name())
	}
	sort.Sort(natural.StringSlice(pages))
	return pages, nil
}

// scanFlat rebuilds the record list from per-directory metadata files.
// Directories without meta.txt are reported and skipped.
func scanFlat(root string, log *zap.Logger) ([]Record, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("unable to read library root: %w", err)
	}

	var recs []Record
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())

		title, notes, err := ReadMeta(dir)
		if err != nil {
			log.Debug("Skipping directory without usable metadata", zap.String("dir", e.Name()), zap.Error(err))
			continue
		}
		pages, err := ScanPages(dir)
		if err != nil {
			log.Warn("Skipping unreadable title directory", zap.String("dir", e.Name()), zap.Error(err))
			continue
		}

		rec := Record{
			ID:    StableID(e.Name()),
			Title: title,
			Notes: notes,
			Dir:   e.Name(),
			Pages: pages,
		}
		if fi, err := e.Info(); err == nil {
			rec.Added = fi.ModTime()
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
