package library

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// IndexFileName is the flat append-mostly index kept in the library root.
// One JSON object per line, never a database.
const IndexFileName = "index.jsonl"

// loadIndex reads all records from the jsonl index. Lines that do not parse
// are skipped with a warning: the index is append-mostly and a torn last
// write must not take the whole library down.
func loadIndex(root string, log *zap.Logger) ([]Record, error) {
	f, err := os.Open(filepath.Join(root, IndexFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to open library index: %w", err)
	}
	defer f.Close()

	var recs []Record

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			log.Warn("Skipping malformed index line", zap.Int("line", line), zap.Error(err))
			continue
		}
		if rec.ID == "" || rec.Dir == "" {
			log.Warn("Skipping incomplete index record", zap.Int("line", line), zap.String("title", rec.Title))
			continue
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read library index: %w", err)
	}
	return recs, nil
}

// appendIndex adds a single record to the end of the index file.
func appendIndex(root string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("unable to marshal index record: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(root, IndexFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("unable to open library index: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("unable to append index record: %w", err)
	}
	return f.Close()
}

// saveIndex rewrites the whole index file. Used after record removal or
// update, goes through a temporary file to keep the previous index intact on
// failure.
func saveIndex(root string, recs []Record) error {
	tmp, err := os.CreateTemp(root, IndexFileName+".*")
	if err != nil {
		return fmt.Errorf("unable to create temporary index: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			tmp.Close()
			return fmt.Errorf("unable to marshal index record: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			tmp.Close()
			return fmt.Errorf("unable to write index record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to flush index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to finalize index: %w", err)
	}
	return os.Rename(tmp.Name(), filepath.Join(root, IndexFileName))
}
