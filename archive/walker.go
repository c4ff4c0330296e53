// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. The file argument is the zip.File structure for file in archive which
// satisfies match condition. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk walks all files in the archive which satisfy match condition, calling
// walkFn for each item. Scanner software numbers pages in file names, so
// entries are visited in natural name order rather than in archive order.
// Entries with path traversal components ("..") or absolute paths are
// rejected to prevent Zip Slip attacks.
func Walk(archive, pattern string, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	files := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && underDir(name, pattern) {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return natural.Less(files[i].FileHeader.Name, files[j].FileHeader.Name)
	})

	for _, f := range files {
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// underDir reports whether entry name lives under the directory named by
// pattern. Matching is segment aware, "scans" covers "scans/page1.png" but
// not "scans2/page1.png".
func underDir(name, pattern string) bool {
	if len(pattern) == 0 || name == pattern {
		return true
	}
	if !strings.HasSuffix(pattern, "/") {
		pattern += "/"
	}
	return strings.HasPrefix(name, pattern)
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
