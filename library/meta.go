package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MetaFileName is the per-directory plain text metadata file: title on the
// first line, free form notes after one blank line. Kept next to page images
// so a title directory stays self describing even when the jsonl index is
// lost.
const MetaFileName = "meta.txt"

// FormatMeta renders title and notes in the metadata file layout.
func FormatMeta(title, notes string) []byte {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(title))
	sb.WriteByte('\n')
	if notes = strings.TrimSpace(notes); len(notes) > 0 {
		sb.WriteByte('\n')
		sb.WriteString(notes)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// WriteMeta stores title and notes into dir.
func WriteMeta(dir, title, notes string) error {
	if err := os.WriteFile(filepath.Join(dir, MetaFileName), FormatMeta(title, notes), 0644); err != nil {
		return fmt.Errorf("unable to write metadata: %w", err)
	}
	return nil
}

// ReadMeta loads title and notes from dir.
func ReadMeta(dir string) (title, notes string, err error) {
	data, err := os.ReadFile(filepath.Join(dir, MetaFileName))
	if err != nil {
		return "", "", err
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	title, notes, _ = strings.Cut(text, "\n")
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", errors.New("metadata has no title line")
	}
	return title, strings.TrimSpace(notes), nil
}
