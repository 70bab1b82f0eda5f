package summarize

import (
	"fmt"

	"github.com/hyperifyio/pagebrief/internal/tokenize"
)

// Validate checks an extractive summary against its source sentences: every
// selected sentence must appear verbatim in the source, ordinals must be
// strictly increasing, and the count must respect the budget. Abstractive
// summaries carry no sentence list and pass trivially.
func Validate(s Summary, source []tokenize.Sentence, b Budget) error {
	if len(s.Sentences) > len(source) {
		return fmt.Errorf("summary has %d sentences but the source only %d", len(s.Sentences), len(source))
	}
	if b.MaxSentences > 0 && len(s.Sentences) > b.MaxSentences {
		return fmt.Errorf("summary has %d sentences, budget allows %d", len(s.Sentences), b.MaxSentences)
	}
	byOrdinal := make(map[int]string, len(source))
	for _, src := range source {
		byOrdinal[src.Ordinal] = src.Text
	}
	last := -1
	for _, sel := range s.Sentences {
		text, ok := byOrdinal[sel.Ordinal]
		if !ok {
			return fmt.Errorf("sentence ordinal %d is not part of the source", sel.Ordinal)
		}
		if text != sel.Text {
			return fmt.Errorf("sentence %d differs from the source text", sel.Ordinal)
		}
		if sel.Ordinal <= last {
			return fmt.Errorf("sentence order broken at ordinal %d", sel.Ordinal)
		}
		last = sel.Ordinal
	}
	return nil
}
