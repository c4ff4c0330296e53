package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mstand/state"
)

// RunList implements the "list" subcommand.
func RunList(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("list")

	lib, err := Open(env.Cfg.Library.Root, env.Cfg.Library.IndexFormat, log)
	if err != nil {
		return fmt.Errorf("unable to open library: %w", err)
	}

	recs := lib.List()
	if len(recs) == 0 {
		log.Info("Library is empty", zap.String("root", lib.Root()))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPAGES\tNOTES")
	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			rec.ID, rec.Title, len(rec.Pages),
			Summary(rec.Notes, env.Cfg.Library.SummarySentences, log))
	}
	return w.Flush()
}

// RunRemove implements the "remove" subcommand. Accepts any number of record
// IDs or titles, keeps going on individual failures.
func RunRemove(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("remove")

	if cmd.NArg() == 0 {
		return errors.New("no titles to remove have been specified")
	}

	lib, err := Open(env.Cfg.Library.Root, env.Cfg.Library.IndexFormat, log)
	if err != nil {
		return fmt.Errorf("unable to open library: %w", err)
	}

	purge := cmd.Bool("purge")

	var errs error
	for _, key := range cmd.Args().Slice() {
		rec, ok := lib.Find(key)
		if !ok {
			log.Warn("Title not found, nothing to remove", zap.String("key", key))
			continue
		}
		if err := lib.Remove(rec.ID, purge); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to remove %q: %w", rec.Title, err))
			continue
		}
		log.Info("Title removed", zap.String("title", rec.Title), zap.String("id", rec.ID), zap.Bool("purged", purge))
	}
	return errs
}

// RunRescan implements the "rescan" subcommand rebuilding page lists from
// directory contents after manual touch ups on the device.
func RunRescan(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("rescan")

	lib, err := Open(env.Cfg.Library.Root, env.Cfg.Library.IndexFormat, log)
	if err != nil {
		return fmt.Errorf("unable to open library: %w", err)
	}

	keys := cmd.Args().Slice()
	if len(keys) == 0 {
		for _, rec := range lib.List() {
			keys = append(keys, rec.ID)
		}
	}

	var errs error
	for _, key := range keys {
		rec, ok := lib.Find(key)
		if !ok {
			log.Warn("Title not found, nothing to rescan", zap.String("key", key))
			continue
		}
		updated, err := lib.Rescan(rec.ID)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to rescan %q: %w", rec.Title, err))
			continue
		}
		log.Info("Title rescanned", zap.String("title", updated.Title), zap.Int("pages", len(updated.Pages)))
	}
	return errs
}
