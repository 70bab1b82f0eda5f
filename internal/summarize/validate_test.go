package summarize

import (
	"testing"

	"github.com/hyperifyio/pagebrief/internal/tokenize"
)

func validateSource() []tokenize.Sentence {
	return []tokenize.Sentence{
		{Text: "First sentence here.", Ordinal: 0},
		{Text: "Second sentence here.", Ordinal: 1},
		{Text: "Third sentence here.", Ordinal: 2},
	}
}

func picks(ss ...tokenize.Sentence) []Pick {
	out := make([]Pick, 0, len(ss))
	for _, s := range ss {
		out = append(out, Pick{Sentence: s})
	}
	return out
}

func TestValidate_AcceptsFaithfulSummary(t *testing.T) {
	src := validateSource()
	sum := Summary{
		Sentences: picks(src[0], src[2]),
		Method:    MethodExtractive,
	}
	if err := Validate(sum, src, Budget{MaxSentences: 2}); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestValidate_AbstractivePassesTrivially(t *testing.T) {
	sum := Summary{Text: "Model wrote this from scratch.", Method: MethodNeural}
	if err := Validate(sum, validateSource(), Budget{MaxSentences: 1}); err != nil {
		t.Fatalf("summary without sentence claims must pass: %v", err)
	}
}

func TestValidate_RejectsTamperedText(t *testing.T) {
	src := validateSource()
	tampered := src[0]
	tampered.Text = "First sentence reworded."
	sum := Summary{Sentences: picks(tampered)}
	if err := Validate(sum, src, Budget{}); err == nil {
		t.Fatal("expected rejection of non-verbatim text")
	}
}

func TestValidate_RejectsOutOfOrder(t *testing.T) {
	src := validateSource()
	sum := Summary{Sentences: picks(src[2], src[0])}
	if err := Validate(sum, src, Budget{}); err == nil {
		t.Fatal("expected rejection of broken reading order")
	}
}

func TestValidate_RejectsOverBudget(t *testing.T) {
	src := validateSource()
	sum := Summary{Sentences: picks(src...)}
	if err := Validate(sum, src, Budget{MaxSentences: 2}); err == nil {
		t.Fatal("expected rejection when sentence count exceeds budget")
	}
}

func TestValidate_RejectsForeignOrdinal(t *testing.T) {
	src := validateSource()
	sum := Summary{Sentences: picks(tokenize.Sentence{Text: "Phantom sentence.", Ordinal: 9})}
	if err := Validate(sum, src, Budget{}); err == nil {
		t.Fatal("expected rejection of an ordinal missing from the source")
	}
}

func TestValidate_RejectsMoreThanSource(t *testing.T) {
	src := validateSource()
	sum := Summary{Sentences: picks(src[0], src[1], src[2], src[2])}
	if err := Validate(sum, src, Budget{}); err == nil {
		t.Fatal("expected rejection when summary outgrows its source")
	}
}
