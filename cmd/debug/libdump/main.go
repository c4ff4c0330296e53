// libdump writes a library index snapshot into a standalone SQLite database
// so it can be inspected and queried offline with standard tooling. The kiosk
// itself never reads these databases, the on-disk index stays authoritative.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"mstand/config"
	"mstand/library"
)

const schema = `
CREATE TABLE scores (
	id    TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	notes TEXT,
	dir   TEXT NOT NULL,
	added TEXT
);
CREATE TABLE pages (
	score_id TEXT NOT NULL REFERENCES scores(id),
	seq      INTEGER NOT NULL,
	file     TEXT NOT NULL,
	bytes    INTEGER,
	PRIMARY KEY (score_id, seq)
);
`

func main() {
	flat := flag.Bool("flat", false, "treat library as flat directories with metadata files instead of jsonl index")
	overwrite := flag.Bool("overwrite", false, "overwrite existing output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: libdump [-flat] [-overwrite] <library-root> [out.sqlite]\n\n")
		fmt.Fprintf(os.Stderr, "Dumps the library index into a SQLite database for offline inspection.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	defer func(startedAt time.Time) {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", time.Since(startedAt))
	}(time.Now())

	root := flag.Arg(0)
	outPath := flag.Arg(1)
	if len(outPath) == 0 {
		outPath = filepath.Base(filepath.Clean(root)) + ".sqlite"
	}

	if _, err := os.Stat(outPath); err == nil {
		if !*overwrite {
			fmt.Fprintf(os.Stderr, "output already exists: %s (use -overwrite)\n", outPath)
			os.Exit(1)
		}
		if err := os.Remove(outPath); err != nil {
			fmt.Fprintf(os.Stderr, "remove %s: %v\n", outPath, err)
			os.Exit(1)
		}
	}

	format := config.IndexFmtJsonl
	if *flat {
		format = config.IndexFmtFlat
	}

	lib, err := library.Open(root, format, zap.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open library %s: %v\n", root, err)
		os.Exit(1)
	}

	conn, err := sqlite.OpenConn(outPath, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", outPath, err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		fmt.Fprintf(os.Stderr, "create schema: %v\n", err)
		os.Exit(1)
	}

	scores, pages := 0, 0
	for _, rec := range lib.List() {
		added := ""
		if !rec.Added.IsZero() {
			added = rec.Added.Format(time.RFC3339)
		}
		err := sqlitex.Execute(conn, `INSERT INTO scores (id, title, notes, dir, added) VALUES (?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{rec.ID, rec.Title, rec.Notes, rec.Dir, added}})
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert score %s: %v\n", rec.ID, err)
			os.Exit(1)
		}
		scores++

		for i, page := range rec.Pages {
			var size int64
			if fi, err := os.Stat(lib.PagePath(rec, i)); err == nil {
				size = fi.Size()
			}
			err := sqlitex.Execute(conn, `INSERT INTO pages (score_id, seq, file, bytes) VALUES (?, ?, ?, ?)`,
				&sqlitex.ExecOptions{Args: []any{rec.ID, i + 1, page, size}})
			if err != nil {
				fmt.Fprintf(os.Stderr, "insert page %s/%s: %v\n", rec.ID, page, err)
				os.Exit(1)
			}
			pages++
		}
	}

	fmt.Fprintf(os.Stderr, "wrote %d score(s) and %d page(s) to %s\n", scores, pages, outPath)
}
