package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"mstand/config"
	"mstand/library"
	"mstand/state"
)

// RunImport implements the "import" subcommand. SOURCE may be a PDF, a zip
// archive of scanned pages, a directory of images or a single image file.
func RunImport(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("import")

	if cmd.NArg() != 1 {
		return errors.New("expecting single source file or directory argument")
	}
	src := cmd.Args().Get(0)

	env.Overwrite, env.Append = cmd.Bool("overwrite"), cmd.Bool("append")
	if env.Overwrite && env.Append {
		return errors.New("overwrite and append cannot be combined")
	}

	if cps := cmd.String("force-zip-cp"); len(cps) > 0 {
		if enc, err := ianaindex.IANA.Encoding(cps); err == nil && enc != nil {
			env.CodePage = enc
		} else {
			log.Warn("Unknown character set specification. Ignoring", zap.String("charset", cps))
		}
	}

	defer func(start time.Time) {
		log.Debug("Import finished", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("unable to access source: %w", err)
	}

	title := cmd.String("title")
	if len(title) == 0 {
		base := filepath.Base(src)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	notes := cmd.String("notes")

	lib, err := library.Open(env.Cfg.Library.Root, env.Cfg.Library.IndexFormat, log)
	if err != nil {
		return fmt.Errorf("unable to open library: %w", err)
	}

	var (
		rec   library.Record
		seq   = 1
		fresh = true
	)
	if old, ok := lib.Find(title); ok {
		switch {
		case env.Append:
			fresh = false
			rec = old
			existing, err := library.ScanPages(lib.DirPath(rec))
			if err != nil {
				return err
			}
			seq = nextPageSeq(existing)
			if len(notes) > 0 {
				rec.Notes = notes
			}
			log.Info("Appending to existing title", zap.String("title", title), zap.Int("pages", len(existing)))
		case env.Overwrite:
			if err := lib.Remove(old.ID, true); err != nil {
				return fmt.Errorf("unable to overwrite %q: %w", title, err)
			}
			log.Info("Replacing existing title", zap.String("title", title))
		default:
			return fmt.Errorf("title %q already exists, use --ow to replace or --append to add pages", title)
		}
	}

	if fresh {
		dir, err := lib.NewDir(title, env.Cfg.Library.TransliterateNames)
		if err != nil {
			return err
		}
		rec = library.Record{
			ID:    library.NewID(),
			Title: title,
			Notes: notes,
			Dir:   dir,
			Added: time.Now(),
		}
	}
	dir := lib.DirPath(rec)

	count, err := importSource(ctx, src, fi, cmd.String("zip-dir"), dir, seq, env, log)
	if err == nil && count == 0 {
		err = fmt.Errorf("no pages found in %q", src)
	}
	if err != nil {
		if fresh {
			// do not leave empty title directories behind
			if er := os.RemoveAll(dir); er != nil {
				log.Warn("Unable to clean up title directory", zap.String("dir", dir), zap.Error(er))
			}
		}
		return err
	}

	pages, err := library.ScanPages(dir)
	if err != nil {
		return err
	}
	rec.Pages = pages

	if fresh {
		err = lib.Add(rec)
	} else {
		err = lib.Update(rec)
	}
	if err != nil {
		return fmt.Errorf("unable to index %q: %w", title, err)
	}

	log.Info("Title imported",
		zap.String("title", rec.Title),
		zap.String("id", rec.ID),
		zap.String("dir", rec.Dir),
		zap.Int("new", count),
		zap.Int("pages", len(rec.Pages)))
	return nil
}

// importSource dispatches on the actual source content, never on the file
// extension. Returns the number of pages written.
func importSource(ctx context.Context, src string, fi os.FileInfo, pathIn, dir string, seq int, env *state.LocalEnv, log *zap.Logger) (int, error) {
	cfg := &env.Cfg.Import

	if fi.IsDir() {
		return importDir(ctx, src, dir, seq, cfg, log)
	}

	kind, err := filetype.MatchFile(src)
	if err != nil {
		return 0, fmt.Errorf("unable to detect source type: %w", err)
	}
	switch kind.Extension {
	case "pdf":
		return importPDF(ctx, src, dir, seq, cfg, log)
	case "zip":
		return importArchive(ctx, src, pathIn, dir, seq, cfg, log)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return 0, fmt.Errorf("unable to read source: %w", err)
	}
	if !isImageData(data) {
		return 0, fmt.Errorf("unsupported source type (%s): %s", kind.Extension, src)
	}
	if _, err := writePage(data, dir, seq, cfg, log); err != nil {
		return 0, err
	}
	return 1, nil
}

// importPDF rasterizes every document page with the external converter.
func importPDF(ctx context.Context, pdf, dir string, seq int, cfg *config.ImportConfig, log *zap.Logger) (int, error) {
	tools := NewTools(cfg, log)

	n, err := tools.PageCount(ctx, pdf)
	if err != nil {
		return 0, err
	}
	log.Info("Rasterizing document", zap.String("source", pdf), zap.Int("pages", n), zap.Int("density", cfg.Density))

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		dst := filepath.Join(dir, pageName(seq+i, cfg.PageFormat.Ext()))
		if err := tools.RasterizePage(ctx, pdf, i, dst); err != nil {
			return i, err
		}
		log.Debug("Page rasterized", zap.Int("page", i+1), zap.String("to", filepath.Base(dst)))
	}
	return n, nil
}

// importDir copies image files from a directory in natural name order.
func importDir(ctx context.Context, src, dir string, seq int, cfg *config.ImportConfig, log *zap.Logger) (int, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, fmt.Errorf("unable to read source directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(names))

	count := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		data, err := os.ReadFile(filepath.Join(src, name))
		if err != nil {
			return count, fmt.Errorf("unable to read %q: %w", name, err)
		}
		if !isImageData(data) {
			log.Debug("Skipping file, not recognized as image", zap.String("file", name))
			continue
		}
		written, err := writePage(data, dir, seq+count, cfg, log)
		if err != nil {
			return count, fmt.Errorf("unable to store %q: %w", name, err)
		}
		log.Debug("Page imported", zap.String("from", name), zap.String("to", written))
		count++
	}
	return count, nil
}
