package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func makeZip(t *testing.T, names ...string) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}

	w := zip.NewWriter(zipFile)
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte("content of " + name)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	w.Close()
	zipFile.Close()
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t,
		"scans/page2.png",
		"scans/page10.png",
		"scans/page1.png",
		"cover.jpg",
	)

	t.Run("natural order within prefix", func(t *testing.T) {
		var visited []string
		err := Walk(zipPath, "scans/", func(archive string, file *zip.File) error {
			if archive != zipPath {
				t.Errorf("archive = %s, want %s", archive, zipPath)
			}
			visited = append(visited, file.Name)
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}

		want := []string{"scans/page1.png", "scans/page2.png", "scans/page10.png"}
		if len(visited) != len(want) {
			t.Fatalf("visited %d files, want %d", len(visited), len(want))
		}
		for i := range want {
			if visited[i] != want[i] {
				t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
			}
		}
	})

	t.Run("bare directory name matches whole segments only", func(t *testing.T) {
		zipPath := makeZip(t,
			"scans/page1.png",
			"scans2/page1.png",
			"scans.bak/page1.png",
		)
		var visited []string
		err := Walk(zipPath, "scans", func(archive string, file *zip.File) error {
			visited = append(visited, file.Name)
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if len(visited) != 1 || visited[0] != "scans/page1.png" {
			t.Errorf("visited %v, want only scans/page1.png", visited)
		}
	})

	t.Run("empty prefix visits everything", func(t *testing.T) {
		var visited int
		err := Walk(zipPath, "", func(archive string, file *zip.File) error {
			visited++
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if visited != 4 {
			t.Errorf("visited %d files, want 4", visited)
		}
	})

	t.Run("no matching prefix", func(t *testing.T) {
		var visited int
		err := Walk(zipPath, "nonexistent/", func(archive string, file *zip.File) error {
			visited++
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if visited != 0 {
			t.Errorf("visited %d files, want 0", visited)
		}
	})

	t.Run("walkFn error stops the walk", func(t *testing.T) {
		stopErr := errors.New("stop walking")
		var visited int
		err := Walk(zipPath, "scans/", func(archive string, file *zip.File) error {
			visited++
			if visited == 2 {
				return stopErr
			}
			return nil
		})
		if err != stopErr {
			t.Errorf("Walk() error = %v, want %v", err, stopErr)
		}
		if visited != 2 {
			t.Errorf("visited %d files, want 2 (early termination)", visited)
		}
	})
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		err := Walk("/nonexistent/file.zip", "", func(archive string, file *zip.File) error {
			return nil
		})
		if err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid zip: %v", err)
		}

		err := Walk(invalidZip, "", func(archive string, file *zip.File) error {
			return nil
		})
		if err == nil {
			t.Error("Expected error for invalid zip file")
		}
	})
}

func TestWalk_SkipsDirectories(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}

	w := zip.NewWriter(zipFile)
	dirHeader := &zip.FileHeader{Name: "mydir/"}
	dirHeader.SetMode(os.ModeDir | 0755)
	if _, err := w.CreateHeader(dirHeader); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	fw, err := w.Create("mydir/file.txt")
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	fw.Write([]byte("content"))
	w.Close()
	zipFile.Close()

	var visited []string
	err = Walk(zipPath, "mydir/", func(archive string, file *zip.File) error {
		visited = append(visited, file.Name)
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}

	if len(visited) != 1 || visited[0] != "mydir/file.txt" {
		t.Errorf("visited %v, want only mydir/file.txt", visited)
	}
}

func TestWalk_UnsafePaths(t *testing.T) {
	for _, name := range []string{"../escape.png", "a/../../escape.png"} {
		t.Run(name, func(t *testing.T) {
			zipPath := filepath.Join(t.TempDir(), "test.zip")
			zipFile, err := os.Create(zipPath)
			if err != nil {
				t.Fatalf("Failed to create zip file: %v", err)
			}
			w := zip.NewWriter(zipFile)
			fw, err := w.CreateHeader(&zip.FileHeader{Name: name})
			if err != nil {
				t.Fatalf("Failed to create entry: %v", err)
			}
			fw.Write([]byte("content"))
			w.Close()
			zipFile.Close()

			err = Walk(zipPath, "", func(archive string, file *zip.File) error {
				t.Errorf("walkFn called for unsafe entry %s", file.Name)
				return nil
			})
			if err == nil {
				t.Error("Expected error for unsafe entry path")
			}
		})
	}
}
