// Package summarize turns an extracted article into a short summary. Two
// interchangeable strategies implement the Summarizer capability: Extractive
// keeps the highest-ranked sentences of the article verbatim, Neural asks an
// OpenAI-compatible model for an abstractive summary.
package summarize

import (
	"context"

	"github.com/hyperifyio/pagebrief/internal/extract"
	"github.com/hyperifyio/pagebrief/internal/tokenize"
)

// Method names reported alongside a Summary.
const (
	MethodExtractive = "extractive"
	MethodNeural     = "neural"
)

// DefaultMaxSentences bounds a summary when the caller sets no budget.
const DefaultMaxSentences = 4

// Budget bounds summary size. MaxSentences limits the sentence count and
// MaxWords caps total words; zero disables an axis. With both zero the
// selector falls back to DefaultMaxSentences.
type Budget struct {
	MaxSentences int
	MaxWords     int
}

// Pick is one selected sentence together with the rank score that earned
// its place.
type Pick struct {
	tokenize.Sentence
	Score float64
}

// Summary is the terminal pipeline output. Extractive summaries carry their
// selected sentences in reading order; abstractive ones only the text.
type Summary struct {
	Sentences []Pick
	Text      string
	Method    string
}

// Summarizer is the capability shared by both strategies, letting the caller
// swap one for the other after a single availability probe.
type Summarizer interface {
	Summarize(ctx context.Context, art extract.Article, budget Budget) (Summary, error)
}
