package library

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSummary(t *testing.T) {
	notes := "First sentence here. Second one follows. And a third for good measure."

	t.Run("disabled", func(t *testing.T) {
		if got := Summary(notes, 0, zap.NewNop()); got != notes {
			t.Errorf("Summary with n=0 must return notes unchanged, got %q", got)
		}
	})

	t.Run("one sentence", func(t *testing.T) {
		got := Summary(notes, 1, zap.NewNop())
		if !strings.HasPrefix(got, "First sentence here.") {
			t.Errorf("unexpected summary: %q", got)
		}
		if !strings.HasSuffix(got, "…") {
			t.Errorf("shortened summary should carry ellipsis: %q", got)
		}
		if strings.Contains(got, "Second") {
			t.Errorf("summary leaked extra sentences: %q", got)
		}
	})

	t.Run("fewer sentences than requested", func(t *testing.T) {
		if got := Summary("Just one.", 3, zap.NewNop()); got != "Just one." {
			t.Errorf("short notes must come back whole, got %q", got)
		}
	})

	t.Run("whitespace folding", func(t *testing.T) {
		if got := Summary("spread\n\tover   lines", 0, zap.NewNop()); got != "spread over lines" {
			t.Errorf("unexpected folding: %q", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := Summary("", 2, zap.NewNop()); got != "" {
			t.Errorf("empty notes produced %q", got)
		}
	})
}
