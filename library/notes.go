package library

import (
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
)

var newTokenizer = sync.OnceValues(func() (*sentences.DefaultSentenceTokenizer, error) {
	return english.NewSentenceTokenizer(nil)
})

// Summary shortens notes for listings to the first n sentences. n <= 0
// returns notes unchanged. Tokenizer model is English but punkt boundaries
// work acceptably for the mostly western-European texts on title pages.
func Summary(notes string, n int, log *zap.Logger) string {
	notes = strings.Join(strings.Fields(notes), " ")
	if n <= 0 || notes == "" {
		return notes
	}

	tokenizer, err := newTokenizer()
	if err != nil {
		log.Warn("Unable to load sentence tokenizer, using full notes", zap.Error(err))
		return notes
	}

	ss := tokenizer.Tokenize(notes)
	if len(ss) <= n {
		return notes
	}

	var sb strings.Builder
	for _, s := range ss[:n] {
		sb.WriteString(s.Text)
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return notes
	}
	return out + " …"
}
