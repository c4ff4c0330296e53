package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	LibraryConfig struct {
		Root               string   `yaml:"root" sanitize:"path_clean" validate:"required"`
		IndexFormat        IndexFmt `yaml:"index_format" validate:"gte=0"`
		TransliterateNames bool     `yaml:"transliterate_names"`
		SummarySentences   int      `yaml:"summary_sentences" validate:"min=0,max=10"`
	}

	ImportConfig struct {
		ConvertPath  string  `yaml:"convert_path" validate:"required"`
		IdentifyPath string  `yaml:"identify_path" validate:"required"`
		Density      int     `yaml:"density" validate:"min=72,max=1200"`
		PageFormat   PageFmt `yaml:"page_format" validate:"gte=0"`
		JPEGQuality  int     `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		ToolTimeout  int     `yaml:"tool_timeout_sec" validate:"min=1,max=3600"`
	}

	ViewerConfig struct {
		ScreenWidth     int    `yaml:"screen_width" validate:"min=320"`
		ScreenHeight    int    `yaml:"screen_height" validate:"min=240"`
		Fullscreen      bool   `yaml:"fullscreen"`
		FillerImagePath string `yaml:"filler_image_path,omitempty" sanitize:"assure_file_access" validate:"omitempty,filepath"`
	}

	ExportConfig struct {
		NameTemplate string `yaml:"name_template"`
		FixZip       bool   `yaml:"fix_zip"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Library   LibraryConfig  `yaml:"library"`
		Import    ImportConfig   `yaml:"import"`
		Viewer    ViewerConfig   `yaml:"viewer"`
		Export    ExportConfig   `yaml:"export"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

type TemplateFieldName string

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	ExportNameTemplateFieldName TemplateFieldName = "name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(ExportNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
