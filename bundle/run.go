package bundle

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mstand/library"
	"mstand/state"
)

// RunExport implements the "export" subcommand. Accepts any number of record
// IDs or titles, keeps going on individual failures.
func RunExport(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("export")

	if cmd.NArg() == 0 {
		return errors.New("no titles to export have been specified")
	}

	env.Overwrite = cmd.Bool("overwrite")
	outDir := cmd.String("to")

	lib, err := library.Open(env.Cfg.Library.Root, env.Cfg.Library.IndexFormat, log)
	if err != nil {
		return fmt.Errorf("unable to open library: %w", err)
	}

	defer func(start time.Time) {
		log.Debug("Export finished", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var errs error
	for _, key := range cmd.Args().Slice() {
		rec, ok := lib.Find(key)
		if !ok {
			log.Warn("Title not found, nothing to export", zap.String("key", key))
			continue
		}

		name, err := OutputName(rec, env.Cfg.Export.NameTemplate)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to name bundle for %q: %w", rec.Title, err))
			continue
		}

		out := filepath.Join(outDir, name)
		if err := Generate(ctx, lib, rec, out, &env.Cfg.Export, log); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to export %q: %w", rec.Title, err))
			continue
		}
		log.Info("Title exported", zap.String("title", rec.Title), zap.String("output", out))
	}
	return errs
}
