package summarize

import (
	"context"

	"github.com/hyperifyio/pagebrief/internal/extract"
	"github.com/hyperifyio/pagebrief/internal/rank"
	"github.com/hyperifyio/pagebrief/internal/tokenize"
)

// Extractive summarizes by ranking the article's own sentences and keeping
// the best ones verbatim. It is always available and never fails: thin input
// degrades to a shorter summary, empty input to an empty one.
type Extractive struct {
	// Stopwords overrides the built-in stopword set when non-nil.
	Stopwords map[string]struct{}
	// Rank tunes the score iteration; the zero value selects the defaults.
	Rank rank.Options
}

func (e Extractive) Summarize(_ context.Context, art extract.Article, budget Budget) (Summary, error) {
	sentences := tokenize.Split(art.Paragraphs, tokenize.Options{Stopwords: e.Stopwords})
	ranked := rank.Sentences(sentences, e.Rank)
	return FromRanked(ranked, budget), nil
}
