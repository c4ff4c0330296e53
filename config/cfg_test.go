package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}

	if cfg.Import.Density < 72 {
		t.Errorf("Default density = %d, want at least 72", cfg.Import.Density)
	}

	if cfg.Viewer.ScreenWidth < 320 || cfg.Viewer.ScreenHeight < 240 {
		t.Errorf("Default screen size = %dx%d, too small", cfg.Viewer.ScreenWidth, cfg.Viewer.ScreenHeight)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
library:
  root: ` + filepath.ToSlash(filepath.Join(tmpDir, "lib")) + `
  index_format: flat
  transliterate_names: false
  summary_sentences: 2
import:
  density: 600
  page_format: jpeg
  jpeg_quality_level: 90
viewer:
  screen_width: 1920
  screen_height: 1080
  fullscreen: false
export:
  name_template: '{{.Title}}-{{.Date}}'
  fix_zip: true
logging:
  console:
    level: normal
  file:
    level: debug
    destination: /tmp/test.log
    mode: append
reporting:
  destination: /tmp/test-report.zip
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Library.IndexFormat != IndexFmtFlat {
		t.Errorf("IndexFormat = %d, want IndexFmtFlat", cfg.Library.IndexFormat)
	}

	if cfg.Library.SummarySentences != 2 {
		t.Errorf("SummarySentences = %d, want 2", cfg.Library.SummarySentences)
	}

	if cfg.Import.Density != 600 {
		t.Errorf("Density = %d, want 600", cfg.Import.Density)
	}

	if cfg.Import.PageFormat != PageFmtJpeg {
		t.Errorf("PageFormat = %d, want PageFmtJpeg", cfg.Import.PageFormat)
	}

	if cfg.Import.JPEGQuality != 90 {
		t.Errorf("JPEGQuality = %d, want 90", cfg.Import.JPEGQuality)
	}

	if cfg.Viewer.Fullscreen {
		t.Error("Expected Fullscreen to be false")
	}

	if !cfg.Export.FixZip {
		t.Error("Expected FixZip to be true")
	}

	// name template must not be expanded by the configuration template engine
	if cfg.Export.NameTemplate != "{{.Title}}-{{.Date}}" {
		t.Errorf("NameTemplate = %q, template expansion should be deferred", cfg.Export.NameTemplate)
	}
}

func TestLoadConfiguration_UnknownField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("version: 1\nno_such_section:\n  value: 1\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected error for unknown configuration field")
	}
}

func TestLoadConfiguration_BadValues(t *testing.T) {
	tmpDir := t.TempDir()

	for _, tc := range []struct {
		name    string
		content string
	}{
		{"bad version", "version: 7\n"},
		{"density too low", "import:\n  density: 10\n"},
		{"bad page format", "import:\n  page_format: tiff\n"},
		{"bad index format", "library:\n  index_format: database\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, strings.ReplaceAll(tc.name, " ", "-")+".yaml")
			if err := os.WriteFile(configPath, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "index_format") {
		t.Error("Prepared configuration is missing expected fields")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	again, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("dumped configuration does not load back: %v", err)
	}
	if again.Import.PageFormat != cfg.Import.PageFormat {
		t.Errorf("PageFormat = %d, want %d", again.Import.PageFormat, cfg.Import.PageFormat)
	}
}
