package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleDocument() Document {
	return Document{
		URL:       "https://news.example.com/fox",
		Domain:    "news.example.com",
		Title:     "Fox Watch",
		FetchedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Method:    "extractive",
		Summary:   "The quick brown fox jumps over the lazy dog. Many animals watched the fox run.",
		Article:   "The quick brown fox jumps over the lazy dog.\n\nMany animals watched the fox run.",
		Sentences: []Sentence{
			{Ordinal: 0, Text: "The quick brown fox jumps over the lazy dog.", Score: 0.31},
			{Ordinal: 3, Text: "Many animals watched the fox run.", Score: 0.27},
		},
		ContentMarkdown: "The quick brown fox jumps over the lazy dog.",
	}
}

func TestSummaryMarkdown_Layout(t *testing.T) {
	md := SummaryMarkdown(sampleDocument())
	for _, want := range []string{
		"# Fox Watch",
		"- Source: https://news.example.com/fox",
		"- Method: extractive",
		"- Fetched: 2026-03-14T09:26:53Z",
		"## Summary",
		"## Article",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("summary.md missing %q:\n%s", want, md)
		}
	}
	if strings.Index(md, "## Summary") > strings.Index(md, "## Article") {
		t.Fatal("summary must precede the article body")
	}
}

func TestSummaryMarkdown_UntitledFallback(t *testing.T) {
	md := SummaryMarkdown(Document{Summary: "Something short."})
	if !strings.HasPrefix(md, "# Untitled page") {
		t.Fatalf("expected fallback title, got:\n%s", md)
	}
}

func TestContentMarkdown(t *testing.T) {
	md, err := ContentMarkdown(`<article><p>Hello <strong>world</strong>, see <a href="https://example.com">the site</a>.</p></article>`)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(md, "**world**") {
		t.Fatalf("emphasis lost: %q", md)
	}
	if !strings.Contains(md, "https://example.com") {
		t.Fatalf("link lost: %q", md)
	}
}

func TestContentMarkdown_EmptyInput(t *testing.T) {
	md, err := ContentMarkdown("   ")
	if err != nil || md != "" {
		t.Fatalf("expected empty passthrough, got %q err=%v", md, err)
	}
}

func TestBundle_WritesArtifacts(t *testing.T) {
	root := t.TempDir()
	dir, err := Bundle(root, sampleDocument(), true)
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	if filepath.Base(dir) != "fox-watch" {
		t.Fatalf("bundle dir = %q", dir)
	}
	for _, name := range []string{"summary.md", "result.json", "summary.pdf", "SHA256SUMS"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}

	pdfHead := make([]byte, 5)
	f, err := os.Open(filepath.Join(dir, "summary.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.Read(pdfHead); err != nil {
		t.Fatal(err)
	}
	if string(pdfHead) != "%PDF-" {
		t.Fatalf("summary.pdf does not look like a PDF: %q", pdfHead)
	}

	sums, err := os.ReadFile(filepath.Join(dir, "SHA256SUMS"))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"summary.md", "result.json", "summary.pdf"} {
		if !strings.Contains(string(sums), name) {
			t.Fatalf("SHA256SUMS missing %s:\n%s", name, sums)
		}
	}
}

func TestBundle_ResultJSONRoundTrip(t *testing.T) {
	root := t.TempDir()
	want := sampleDocument()
	dir, err := Bundle(root, want, false)
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "result.json"))
	if err != nil {
		t.Fatal(err)
	}
	var got Document
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("result.json is not valid JSON: %v", err)
	}
	if got.URL != want.URL || got.Method != want.Method || got.Title != want.Title {
		t.Fatalf("result.json round trip mismatch: %+v", got)
	}
	if len(got.Sentences) != 2 || got.Sentences[1].Score != 0.27 {
		t.Fatalf("sentence scores lost: %+v", got.Sentences)
	}
	if !got.FetchedAt.Equal(want.FetchedAt) {
		t.Fatalf("fetched_at = %v, want %v", got.FetchedAt, want.FetchedAt)
	}
}

func TestBundle_NoPDFWhenDisabled(t *testing.T) {
	dir, err := Bundle(t.TempDir(), sampleDocument(), false)
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "summary.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected no PDF, stat err = %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Fox Watch":          "fox-watch",
		"  Hello,   World! ": "hello-world",
		"---":                "page",
		"":                   "page",
		"Ünïcode Tîtle":      "n-code-t-tle",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
