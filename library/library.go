package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mstand/config"
)

// Library is the in-memory view over the library root. All mutations go
// straight to disk: the kiosk may lose power at any moment and memory-only
// state would be lost.
type Library struct {
	root   string
	format config.IndexFmt
	log    *zap.Logger

	recs []Record
	byID map[string]int
}

// Open loads the library at root creating the root directory when missing.
func Open(root string, format config.IndexFmt, log *zap.Logger) (*Library, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("unable to create library root: %w", err)
	}

	l := &Library{
		root:   root,
		format: format,
		log:    log,
	}

	var (
		recs []Record
		err  error
	)
	switch format {
	case config.IndexFmtJsonl:
		recs, err = loadIndex(root, log)
	case config.IndexFmtFlat:
		recs, err = scanFlat(root, log)
	default:
		// this should never happen
		panic("unsupported index format requested")
	}
	if err != nil {
		return nil, err
	}

	l.recs = recs
	l.byID = make(map[string]int, len(recs))
	for i := range recs {
		l.byID[recs[i].ID] = i
	}
	return l, nil
}

func (l *Library) Root() string {
	return l.root
}

// List returns records ordered by title the way a human expects them on the
// kiosk menu.
func (l *Library) List() []Record {
	out := make([]Record, len(l.recs))
	copy(out, l.recs)
	sort.Slice(out, func(i, j int) bool {
		return natural.Less(strings.ToLower(out[i].Title), strings.ToLower(out[j].Title))
	})
	return out
}

func (l *Library) Get(id string) (Record, bool) {
	if i, ok := l.byID[id]; ok {
		return l.recs[i], true
	}
	return Record{}, false
}

// Find looks the record up by ID first and falls back to case-insensitive
// title match.
func (l *Library) Find(key string) (Record, bool) {
	if rec, ok := l.Get(key); ok {
		return rec, true
	}
	for i := range l.recs {
		if strings.EqualFold(l.recs[i].Title, key) {
			return l.recs[i], true
		}
	}
	return Record{}, false
}

// HasTitle reports whether a record with the given title already exists.
func (l *Library) HasTitle(title string) bool {
	for i := range l.recs {
		if strings.EqualFold(l.recs[i].Title, title) {
			return true
		}
	}
	return false
}

// DirPath returns absolute path of the record directory.
func (l *Library) DirPath(rec Record) string {
	return filepath.Join(l.root, rec.Dir)
}

// PagePath returns absolute path of a single page image.
func (l *Library) PagePath(rec Record, i int) string {
	return filepath.Join(l.root, rec.Dir, rec.Pages[i])
}

// NewDir builds a directory name for the title and creates the directory.
// Name collisions get numeric suffixes, so two editions of the same piece can
// coexist.
func (l *Library) NewDir(title string, transliterate bool) (string, error) {
	var base string
	if transliterate {
		base = slug.Make(title)
	} else {
		base = config.CleanFileName(title)
	}
	if base == "" {
		base = "untitled"
	}

	name := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(l.root, name)); err != nil {
			if !os.IsNotExist(err) {
				return "", fmt.Errorf("unable to check title directory: %w", err)
			}
			break
		}
		name = fmt.Sprintf("%s-%d", base, n)
	}

	if err := os.Mkdir(filepath.Join(l.root, name), 0755); err != nil {
		return "", fmt.Errorf("unable to create title directory: %w", err)
	}
	return name, nil
}

// Add registers a new record. Per-directory metadata is written always, the
// jsonl index only in jsonl mode - in flat mode meta.txt is the single source
// of truth.
func (l *Library) Add(rec Record) error {
	if err := WriteMeta(l.DirPath(rec), rec.Title, rec.Notes); err != nil {
		return err
	}
	if l.format == config.IndexFmtJsonl {
		if err := appendIndex(l.root, rec); err != nil {
			return err
		}
	}
	l.byID[rec.ID] = len(l.recs)
	l.recs = append(l.recs, rec)
	return nil
}

// Update replaces an existing record in place. In jsonl mode the whole index
// is rewritten - the append-only fast path is reserved for imports.
func (l *Library) Update(rec Record) error {
	i, ok := l.byID[rec.ID]
	if !ok {
		return fmt.Errorf("record not found: %s", rec.ID)
	}
	l.recs[i] = rec

	if err := WriteMeta(l.DirPath(rec), rec.Title, rec.Notes); err != nil {
		return err
	}
	if l.format == config.IndexFmtJsonl {
		return saveIndex(l.root, l.recs)
	}
	return nil
}

// Remove drops the record from the index, optionally purging the title
// directory with all page images.
func (l *Library) Remove(id string, purge bool) (err error) {
	i, ok := l.byID[id]
	if !ok {
		return fmt.Errorf("record not found: %s", id)
	}
	rec := l.recs[i]

	l.recs = append(l.recs[:i], l.recs[i+1:]...)
	delete(l.byID, id)
	for j := i; j < len(l.recs); j++ {
		l.byID[l.recs[j].ID] = j
	}

	if l.format == config.IndexFmtJsonl {
		err = saveIndex(l.root, l.recs)
	}
	if purge {
		if er := os.RemoveAll(l.DirPath(rec)); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to remove title directory: %w", er))
		}
	} else if l.format == config.IndexFmtFlat {
		// without purge flat directory would resurface on the next load
		if er := os.Remove(filepath.Join(l.DirPath(rec), MetaFileName)); er != nil && !os.IsNotExist(er) {
			err = multierr.Append(err, fmt.Errorf("unable to remove metadata: %w", er))
		}
	}
	return err
}

// Rescan rebuilds the page list of a record from the directory contents.
func (l *Library) Rescan(id string) (Record, error) {
	i, ok := l.byID[id]
	if !ok {
		return Record{}, fmt.Errorf("record not found: %s", id)
	}
	pages, err := ScanPages(l.DirPath(l.recs[i]))
	if err != nil {
		return Record{}, err
	}
	l.recs[i].Pages = pages
	if l.format == config.IndexFmtJsonl {
		if err := saveIndex(l.root, l.recs); err != nil {
			return Record{}, err
		}
	}
	return l.recs[i], nil
}
