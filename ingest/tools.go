package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"mstand/config"
)

// Tools wraps the external ImageMagick pair used to rasterize PDF pages.
// Everything runs synchronously with a per-invocation timeout: the kiosk has
// nothing better to do during import anyway.
type Tools struct {
	convert  string
	identify string
	density  int
	quality  int
	timeout  time.Duration
	log      *zap.Logger
}

func NewTools(cfg *config.ImportConfig, log *zap.Logger) *Tools {
	return &Tools{
		convert:  cfg.ConvertPath,
		identify: cfg.IdentifyPath,
		density:  cfg.Density,
		quality:  cfg.JPEGQuality,
		timeout:  time.Duration(cfg.ToolTimeout) * time.Second,
		log:      log,
	}
}

// run executes a single external tool invocation capturing stderr for error
// reporting.
func (t *Tools) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	t.log.Debug("Running external tool", zap.String("tool", name), zap.Strings("args", args))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	t.log.Debug("External tool finished", zap.String("tool", name), zap.Duration("elapsed", time.Since(start)), zap.Error(err))

	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); len(msg) > 0 {
			return nil, fmt.Errorf("%s failed: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// PageCount asks identify how many pages the PDF has. identify prints the
// frame count once per frame, only the first line matters.
func (t *Tools) PageCount(ctx context.Context, pdf string) (int, error) {
	out, err := t.run(ctx, t.identify, "-format", "%n\n", pdf)
	if err != nil {
		return 0, fmt.Errorf("unable to identify %q: %w", pdf, err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("unexpected identify output %q: %w", line, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("document has no pages: %s", pdf)
	}
	return n, nil
}

// RasterizePage renders a single zero-based PDF page into dst. Pages are
// rendered one by one so an interrupt aborts between pages, not after the
// whole document.
func (t *Tools) RasterizePage(ctx context.Context, pdf string, page int, dst string) error {
	args := []string{
		"-density", strconv.Itoa(t.density),
		fmt.Sprintf("%s[%d]", pdf, page),
		"-background", "white",
		"-alpha", "remove",
	}
	if strings.HasSuffix(strings.ToLower(dst), ".jpg") {
		args = append(args, "-quality", strconv.Itoa(t.quality))
	}
	args = append(args, dst)

	if _, err := t.run(ctx, t.convert, args...); err != nil {
		return fmt.Errorf("unable to rasterize page %d of %q: %w", page+1, pdf, err)
	}
	return nil
}
