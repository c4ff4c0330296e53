// Package bundle produces portable zip archives of library titles so a piece
// can be moved between kiosks or backed up.
package bundle

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"

	"mstand/config"
	"mstand/library"
	"mstand/state"
)

const ManifestFileName = "manifest.xml"

// Generate writes the record bundle to outputPath: manifest, metadata and all
// page images in reading order.
func Generate(ctx context.Context, lib *library.Library, rec library.Record, outputPath string, cfg *config.ExportConfig, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	if _, err := os.Stat(outputPath); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputPath)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputPath))
		if err = os.Remove(outputPath); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	log.Info("Generating bundle", zap.String("title", rec.Title), zap.String("output", outputPath))

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".bundle-*.zip")
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	defer tmp.Close()

	zw := zip.NewWriter(tmp)
	defer zw.Close()

	if err := writeManifest(zw, rec); err != nil {
		return fmt.Errorf("unable to write manifest: %w", err)
	}

	w, err := zw.Create(library.MetaFileName)
	if err != nil {
		return fmt.Errorf("unable to write metadata: %w", err)
	}
	if _, err := w.Write(library.FormatMeta(rec.Title, rec.Notes)); err != nil {
		return fmt.Errorf("unable to write metadata: %w", err)
	}

	for i, page := range rec.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writePage(zw, lib.PagePath(rec, i), page); err != nil {
			return fmt.Errorf("unable to write page %s: %w", page, err)
		}
	}

	// make sure buffers are flushed before continuing
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}

	if cfg.FixZip {
		return copyZipWithoutDataDescriptors(tmpName, outputPath)
	}
	return copyFile(tmpName, outputPath)
}

func writeManifest(zw *zip.Writer, rec library.Record) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("bundle")
	root.CreateAttr("version", "1")
	root.CreateElement("id").SetText(rec.ID)
	root.CreateElement("title").SetText(rec.Title)
	if len(rec.Notes) > 0 {
		root.CreateElement("notes").SetText(rec.Notes)
	}
	if !rec.Added.IsZero() {
		root.CreateElement("added").SetText(rec.Added.Format(time.RFC3339))
	}

	pages := root.CreateElement("pages")
	pages.CreateAttr("count", strconv.Itoa(len(rec.Pages)))
	for _, page := range rec.Pages {
		pages.CreateElement("page").CreateAttr("file", page)
	}

	doc.Indent(2)
	w, err := zw.Create(ManifestFileName)
	if err != nil {
		return err
	}
	_, err = doc.WriteTo(w)
	return err
}

func writePage(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}

// copyZipWithoutDataDescriptors rewrites the archive entry by entry dropping
// data descriptors. Some sheet music readers refuse streamed archives.
func copyZipWithoutDataDescriptors(from, to string) error {

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {

	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destinationFile.Close()

	if _, err = io.Copy(destinationFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err = destinationFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}
