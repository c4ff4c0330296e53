// Package library maintains the on-disk sheet music library: one directory
// per title with numbered page images, plus a flat index of metadata records.
package library

import (
	"time"

	"github.com/google/uuid"
)

// Record describes a single title in the library. Pages hold base names of
// page image files inside Dir, in reading order. Dir is always relative to
// the library root.
type Record struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Notes string    `json:"notes,omitempty"`
	Dir   string    `json:"dir"`
	Pages []string  `json:"pages"`
	Added time.Time `json:"added"`
}

// nsLibrary is the UUID namespace for records recovered from per-directory
// metadata. Directory name is the only stable identity in flat mode and
// hashing it keeps IDs identical between loads.
var nsLibrary = uuid.MustParse("8a6d1c2e-64cf-4a1b-9f0e-52b7a0f3d9c4")

// NewID returns identifier for a freshly imported title.
func NewID() string {
	return uuid.NewString()
}

// StableID returns identifier derived from the directory name.
func StableID(dir string) string {
	return uuid.NewSHA1(nsLibrary, []byte(dir)).String()
}
