package ingest

import (
	stdzip "archive/zip"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"mstand/archive"
	"mstand/config"
	"mstand/state"
)

// importArchive walks image entries of a zip archive in natural name order
// writing them out as numbered pages. pathIn narrows the walk to a directory
// inside the archive. Returns the number of pages written.
func importArchive(ctx context.Context, src, pathIn, dir string, seq int, cfg *config.ImportConfig, log *zap.Logger) (int, error) {
	cp := state.EnvFromContext(ctx).CodePage

	count := 0
	err := archive.Walk(src, pathIn, func(arc string, f *stdzip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := f.FileHeader.Name
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(name); err == nil {
				name = n
			} else {
				cn, _ := ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", cn), zap.String("path", name), zap.Error(err))
			}
		}

		r, err := f.Open()
		if err != nil {
			log.Warn("Skipping unreadable file in archive", zap.String("archive", arc), zap.String("file", name), zap.Error(err))
			return nil
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			log.Warn("Skipping unreadable file in archive", zap.String("archive", arc), zap.String("file", name), zap.Error(err))
			return nil
		}
		if !isImageData(data) {
			log.Debug("Skipping file, not recognized as image", zap.String("archive", arc), zap.String("file", name))
			return nil
		}

		written, err := writePage(data, dir, seq+count, cfg, log)
		if err != nil {
			return fmt.Errorf("unable to store %q from archive: %w", name, err)
		}
		log.Debug("Page imported from archive", zap.String("from", name), zap.String("to", written))
		count++
		return nil
	})
	return count, err
}
