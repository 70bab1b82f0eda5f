package summarize

import (
	"sort"
	"strings"

	"github.com/hyperifyio/pagebrief/internal/rank"
)

// FromRanked applies the budget to ranked sentences and reassembles the
// survivors in original reading order, so the summary reads like the source
// rather than like a score listing. Input order does not matter; sentences
// are re-sorted by score with ties resolved to the earlier ordinal. An empty
// input yields an empty extractive Summary, not an error.
func FromRanked(ranked []rank.Ranked, budget Budget) Summary {
	if budget.MaxSentences <= 0 && budget.MaxWords <= 0 {
		budget.MaxSentences = DefaultMaxSentences
	}
	sorted := make([]rank.Ranked, len(ranked))
	copy(sorted, ranked)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Sentence.Ordinal < sorted[j].Sentence.Ordinal
	})

	var picked []rank.Ranked
	words := 0
	for _, r := range sorted {
		if budget.MaxSentences > 0 && len(picked) >= budget.MaxSentences {
			break
		}
		n := countWords(r.Sentence.Text)
		// The first sentence is admitted even when it alone exceeds the word
		// ceiling; a budget that returns nothing helps nobody.
		if budget.MaxWords > 0 && words+n > budget.MaxWords && len(picked) > 0 {
			break
		}
		picked = append(picked, r)
		words += n
	}
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].Sentence.Ordinal < picked[j].Sentence.Ordinal
	})

	out := Summary{Method: MethodExtractive}
	texts := make([]string, 0, len(picked))
	for _, r := range picked {
		out.Sentences = append(out.Sentences, Pick{Sentence: r.Sentence, Score: r.Score})
		texts = append(texts, r.Sentence.Text)
	}
	out.Text = strings.Join(texts, " ")
	return out
}

func countWords(s string) int {
	return len(strings.Fields(s))
}
