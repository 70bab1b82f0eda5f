// Package render writes pipeline results to disk as Markdown, JSON and PDF
// artifacts.
package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Sentence is one summary sentence with the rank score that selected it.
type Sentence struct {
	Ordinal int     `json:"ordinal"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
}

// Document is the rendered view of one processed page; it is also the
// result.json schema.
type Document struct {
	URL             string     `json:"url"`
	Domain          string     `json:"domain,omitempty"`
	Title           string     `json:"title"`
	FetchedAt       time.Time  `json:"fetched_at"`
	Method          string     `json:"method"`
	Summary         string     `json:"summary"`
	Article         string     `json:"article"`
	Sentences       []Sentence `json:"sentences,omitempty"`
	ContentMarkdown string     `json:"content_markdown,omitempty"`
}

// Bundle writes the document's artifacts under root/slug(title)/ and returns
// the bundle directory: summary.md, result.json, optionally summary.pdf, and
// a SHA256SUMS manifest over the lot.
func Bundle(root string, doc Document, withPDF bool) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", fmt.Errorf("empty artifacts root")
	}
	dir := filepath.Join(root, slugify(doc.Title))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir bundle dir: %w", err)
	}

	md := SummaryMarkdown(doc)
	if err := os.WriteFile(filepath.Join(dir, "summary.md"), []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write summary.md: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, "result.json"), doc); err != nil {
		return "", err
	}
	if withPDF {
		if err := WritePDF(md, filepath.Join(dir, "summary.pdf")); err != nil {
			return "", fmt.Errorf("write summary.pdf: %w", err)
		}
	}
	if err := writeSHA256SUMS(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	re := regexp.MustCompile(`[^a-z0-9]+`)
	s = re.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "page"
	}
	return s
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeSHA256SUMS(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, e := range entries {
		if e.IsDir() || e.Name() == "SHA256SUMS" {
			continue
		}
		p := filepath.Join(dir, e.Name())
		sum, err := sha256File(p)
		if err != nil {
			return err
		}
		b.WriteString(sum)
		b.WriteString("  ")
		b.WriteString(e.Name())
		b.WriteString("\n")
	}
	return os.WriteFile(filepath.Join(dir, "SHA256SUMS"), []byte(b.String()), 0o644)
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
