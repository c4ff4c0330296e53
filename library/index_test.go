package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestIndexRoundTrip(t *testing.T) {
	root := t.TempDir()

	recs := []Record{
		{ID: NewID(), Title: "One", Dir: "one", Pages: []string{"page-0001.png"}, Added: time.Now()},
		{ID: NewID(), Title: "Two", Dir: "two", Added: time.Now()},
	}
	for _, rec := range recs {
		if err := appendIndex(root, rec); err != nil {
			t.Fatal(err)
		}
	}

	loaded, err := loadIndex(root, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d records, want 2", len(loaded))
	}
	if loaded[0].ID != recs[0].ID || loaded[1].Title != "Two" {
		t.Errorf("unexpected records: %+v", loaded)
	}
}

func TestLoadIndexMissingFile(t *testing.T) {
	recs, err := loadIndex(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("missing index should not be an error: %v", err)
	}
	if recs != nil {
		t.Errorf("expected no records, got %+v", recs)
	}
}

func TestLoadIndexSkipsBadLines(t *testing.T) {
	root := t.TempDir()

	good := Record{ID: NewID(), Title: "Good", Dir: "good"}
	if err := appendIndex(root, good); err != nil {
		t.Fatal(err)
	}

	f, err := os.OpenFile(filepath.Join(root, IndexFileName), os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		t.Fatal(err)
	}
	// torn write, unparsable line and a record missing required fields
	if _, err := f.WriteString("{\"id\":\"torn\n<<garbage>>\n{\"title\":\"no id or dir\"}\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	loaded, err := loadIndex(root, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].ID != good.ID {
		t.Errorf("unexpected records: %+v", loaded)
	}
}

func TestSaveIndexRewrites(t *testing.T) {
	root := t.TempDir()

	for i := 0; i < 3; i++ {
		if err := appendIndex(root, Record{ID: NewID(), Title: "t", Dir: "d"}); err != nil {
			t.Fatal(err)
		}
	}

	keep := Record{ID: NewID(), Title: "Keeper", Dir: "keeper"}
	if err := saveIndex(root, []Record{keep}); err != nil {
		t.Fatal(err)
	}

	loaded, err := loadIndex(root, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].ID != keep.ID {
		t.Errorf("unexpected records after rewrite: %+v", loaded)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	dir := t.TempDir()

	if err := WriteMeta(dir, "  Title with spaces  ", "First line.\nSecond line.\n"); err != nil {
		t.Fatal(err)
	}

	title, notes, err := ReadMeta(dir)
	if err != nil {
		t.Fatal(err)
	}
	if title != "Title with spaces" {
		t.Errorf("unexpected title: %q", title)
	}
	if notes != "First line.\nSecond line." {
		t.Errorf("unexpected notes: %q", notes)
	}
}

func TestReadMetaErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, _, err := ReadMeta(t.TempDir()); err == nil {
			t.Error("expected error for missing metadata")
		}
	})

	t.Run("empty title", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, MetaFileName), []byte("\n\nnotes only\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := ReadMeta(dir); err == nil {
			t.Error("expected error for metadata without title")
		}
	})
}

func TestScanPages(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"page-10.png", "page-2.jpg", "page-1.png", "meta.txt", "thumbs.db"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "extras.png"), 0755); err != nil {
		t.Fatal(err)
	}

	pages, err := ScanPages(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"page-1.png", "page-2.jpg", "page-10.png"}
	if len(pages) != len(want) {
		t.Fatalf("unexpected pages: %v", pages)
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Fatalf("unexpected page order: %v", pages)
		}
	}
}

func TestStableID(t *testing.T) {
	if StableID("dir-a") != StableID("dir-a") {
		t.Error("StableID must be deterministic")
	}
	if StableID("dir-a") == StableID("dir-b") {
		t.Error("StableID must differ between directories")
	}
}
