package summarize

import (
	"reflect"
	"testing"

	"github.com/hyperifyio/pagebrief/internal/rank"
	"github.com/hyperifyio/pagebrief/internal/tokenize"
)

func ranked(ordinal int, text string, score float64) rank.Ranked {
	return rank.Ranked{
		Sentence: tokenize.Sentence{Text: text, Ordinal: ordinal},
		Score:    score,
	}
}

func TestFromRanked_ReassemblesInReadingOrder(t *testing.T) {
	in := []rank.Ranked{
		ranked(3, "Third wins big.", 0.9),
		ranked(1, "First wins too.", 0.8),
		ranked(2, "Second loses.", 0.1),
	}
	got := FromRanked(in, Budget{MaxSentences: 2})
	if got.Method != MethodExtractive {
		t.Fatalf("method = %q", got.Method)
	}
	ords := ordinalsOf(got)
	if !reflect.DeepEqual(ords, []int{1, 3}) {
		t.Fatalf("expected ordinals [1 3], got %v", ords)
	}
	if got.Text != "First wins too. Third wins big." {
		t.Fatalf("text = %q", got.Text)
	}
	if got.Sentences[0].Score != 0.8 || got.Sentences[1].Score != 0.9 {
		t.Fatalf("rank scores not carried through: %+v", got.Sentences)
	}
}

func TestFromRanked_DefaultBudget(t *testing.T) {
	var in []rank.Ranked
	for i := 0; i < 10; i++ {
		in = append(in, ranked(i, "Sentence goes here.", float64(10-i)))
	}
	got := FromRanked(in, Budget{})
	if len(got.Sentences) != DefaultMaxSentences {
		t.Fatalf("expected %d sentences under default budget, got %d", DefaultMaxSentences, len(got.Sentences))
	}
}

func TestFromRanked_TieBreaksToEarlierOrdinal(t *testing.T) {
	in := []rank.Ranked{
		ranked(5, "Later twin.", 0.5),
		ranked(2, "Earlier twin.", 0.5),
	}
	got := FromRanked(in, Budget{MaxSentences: 1})
	if len(got.Sentences) != 1 || got.Sentences[0].Ordinal != 2 {
		t.Fatalf("expected the earlier ordinal to win the tie, got %+v", got.Sentences)
	}
}

func TestFromRanked_WordCeiling(t *testing.T) {
	in := []rank.Ranked{
		ranked(0, "one two three four five", 0.9),
		ranked(1, "six seven eight", 0.8),
		ranked(2, "nine ten", 0.7),
	}
	got := FromRanked(in, Budget{MaxWords: 8})
	ords := ordinalsOf(got)
	if !reflect.DeepEqual(ords, []int{0, 1}) {
		t.Fatalf("expected the first two sentences within 8 words, got %v", ords)
	}
}

func TestFromRanked_FirstSentenceExceedsWordCeiling(t *testing.T) {
	in := []rank.Ranked{
		ranked(0, "this single sentence runs well past the tiny ceiling", 0.9),
		ranked(1, "short one", 0.8),
	}
	got := FromRanked(in, Budget{MaxWords: 3})
	if len(got.Sentences) != 1 || got.Sentences[0].Ordinal != 0 {
		t.Fatalf("the top sentence must survive an undersized word budget, got %+v", got.Sentences)
	}
}

func TestFromRanked_EmptyInput(t *testing.T) {
	got := FromRanked(nil, Budget{MaxSentences: 3})
	if got.Text != "" || len(got.Sentences) != 0 {
		t.Fatalf("expected empty summary, got %+v", got)
	}
	if got.Method != MethodExtractive {
		t.Fatalf("method = %q", got.Method)
	}
}

func TestFromRanked_DoesNotMutateInput(t *testing.T) {
	in := []rank.Ranked{
		ranked(2, "Second.", 0.1),
		ranked(1, "First.", 0.9),
	}
	FromRanked(in, Budget{MaxSentences: 1})
	if in[0].Sentence.Ordinal != 2 || in[1].Sentence.Ordinal != 1 {
		t.Fatal("input slice was reordered")
	}
}

func ordinalsOf(s Summary) []int {
	out := make([]int, 0, len(s.Sentences))
	for _, sent := range s.Sentences {
		out = append(out, sent.Ordinal)
	}
	return out
}
