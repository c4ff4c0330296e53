package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"

	"mstand/config"
	"mstand/library"
)

// Values is a struct that holds variables we make available for template
// expansion.
type Values struct {
	Context string
	Title   string
	ID      string
	Dir     string
	Date    string
	Pages   int
}

// OutputName expands the configured name template for the record. An empty
// template falls back to the slugified title.
func OutputName(rec library.Record, field string) (string, error) {
	if len(field) == 0 {
		name := slug.Make(rec.Title)
		if len(name) == 0 {
			name = rec.ID
		}
		return name + ".zip", nil
	}

	tmpl, err := template.New(string(config.ExportNameTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", config.ExportNameTemplateFieldName, err)
	}

	values := Values{
		Context: string(config.ExportNameTemplateFieldName),
		Title:   rec.Title,
		ID:      rec.ID,
		Dir:     rec.Dir,
		Date:    rec.Added.Format("2006-01-02"),
		Pages:   len(rec.Pages),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}

	name := strings.TrimSpace(buf.String())
	if len(name) == 0 {
		return "", errors.New("name template expanded to an empty name")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".zip") {
		name += ".zip"
	}
	return name, nil
}
