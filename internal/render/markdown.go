package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// SummaryMarkdown lays the document out as a small report: front matter
// list, then the summary, then the full article body.
func SummaryMarkdown(doc Document) string {
	var sb strings.Builder
	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = "Untitled page"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if doc.URL != "" {
		fmt.Fprintf(&sb, "- Source: %s\n", doc.URL)
	}
	if doc.Method != "" {
		fmt.Fprintf(&sb, "- Method: %s\n", doc.Method)
	}
	if !doc.FetchedAt.IsZero() {
		fmt.Fprintf(&sb, "- Fetched: %s\n", doc.FetchedAt.UTC().Format("2006-01-02T15:04:05Z"))
	}
	sb.WriteString("\n## Summary\n\n")
	sb.WriteString(strings.TrimSpace(doc.Summary))
	sb.WriteString("\n")
	if strings.TrimSpace(doc.Article) != "" {
		sb.WriteString("\n## Article\n\n")
		sb.WriteString(strings.TrimSpace(doc.Article))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ContentMarkdown converts the extracted content block's HTML to Markdown,
// preserving links and emphasis the flattened paragraphs lose.
func ContentMarkdown(contentHTML string) (string, error) {
	if strings.TrimSpace(contentHTML) == "" {
		return "", nil
	}
	md, err := htmltomarkdown.ConvertString(contentHTML)
	if err != nil {
		return "", fmt.Errorf("converting content to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
