package summarize

import (
	"context"
	"strings"
	"testing"

	"github.com/hyperifyio/pagebrief/internal/extract"
	"github.com/hyperifyio/pagebrief/internal/tokenize"
)

const foxParagraph = "The quick brown fox jumps over the lazy dog. It was a sunny day in the forest. The fox was very quick and clever. Many animals watched the fox run."

func TestExtractive_SelectsVerbatimSubset(t *testing.T) {
	art := extract.Article{Paragraphs: []string{foxParagraph}}
	sum, err := Extractive{}.Summarize(context.Background(), art, Budget{MaxSentences: 2})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.Method != MethodExtractive {
		t.Fatalf("method = %q", sum.Method)
	}
	if len(sum.Sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sum.Sentences))
	}
	source := tokenize.Split(art.Paragraphs, tokenize.Options{})
	if err := Validate(sum, source, Budget{MaxSentences: 2}); err != nil {
		t.Fatalf("summary failed validation: %v", err)
	}
	if !strings.Contains(foxParagraph, sum.Sentences[0].Text) {
		t.Fatalf("selected sentence not verbatim from the article: %q", sum.Sentences[0].Text)
	}
}

func TestExtractive_SingleSentence(t *testing.T) {
	art := extract.Article{Paragraphs: []string{"The quick brown fox jumps over the lazy dog."}}
	sum, err := Extractive{}.Summarize(context.Background(), art, Budget{MaxSentences: 3})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(sum.Sentences) != 1 {
		t.Fatalf("expected the lone sentence back, got %d", len(sum.Sentences))
	}
	if sum.Text != "The quick brown fox jumps over the lazy dog." {
		t.Fatalf("text = %q", sum.Text)
	}
}

func TestExtractive_EmptyArticle(t *testing.T) {
	sum, err := Extractive{}.Summarize(context.Background(), extract.Article{}, Budget{})
	if err != nil {
		t.Fatalf("empty input must not error: %v", err)
	}
	if sum.Text != "" || len(sum.Sentences) != 0 {
		t.Fatalf("expected empty summary, got %+v", sum)
	}
}

func TestExtractive_DefaultBudgetCap(t *testing.T) {
	paras := []string{
		"Alpha beta gamma delta run together daily. Beta gamma delta keep running onward. Gamma delta epsilon follow close behind.",
		"Delta epsilon zeta arrive much later. Epsilon zeta eta close out the story. Zeta eta theta never even show up.",
	}
	sum, err := Extractive{}.Summarize(context.Background(), extract.Article{Paragraphs: paras}, Budget{})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(sum.Sentences) == 0 || len(sum.Sentences) > DefaultMaxSentences {
		t.Fatalf("expected 1..%d sentences, got %d", DefaultMaxSentences, len(sum.Sentences))
	}
	for i := 1; i < len(sum.Sentences); i++ {
		if sum.Sentences[i].Ordinal <= sum.Sentences[i-1].Ordinal {
			t.Fatalf("sentences out of reading order: %v", ordinalsOf(sum))
		}
	}
}

func TestExtractive_Deterministic(t *testing.T) {
	art := extract.Article{Paragraphs: []string{foxParagraph}}
	a, _ := Extractive{}.Summarize(context.Background(), art, Budget{MaxSentences: 2})
	b, _ := Extractive{}.Summarize(context.Background(), art, Budget{MaxSentences: 2})
	if a.Text != b.Text {
		t.Fatalf("same input produced different summaries:\n%q\n%q", a.Text, b.Text)
	}
}
