// Package extract locates the main readable content of a web page. It
// prunes boilerplate regions, scores the remaining blocks by text density
// and picks the densest container as the article body.
package extract

import (
	"bytes"
	"errors"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// ErrNoContent is returned when the markup parses but holds no sufficiently
// dense text, for example a page made of navigation chrome only.
var ErrNoContent = errors.New("no extractable content")

// Document is the raw input to extraction. URL is used for diagnostics and
// title fallback only; it is never fetched here.
type Document struct {
	URL  string
	HTML []byte
}

// Article is the extracted readable content of a page. Paragraphs preserve
// original reading order and are never empty after trimming.
type Article struct {
	URL        string
	Title      string
	Paragraphs []string
	// ContentHTML is the winning block's markup after pruning, kept so
	// renderers can derive richer output than the flattened paragraphs.
	ContentHTML string
}

// Text returns the article body as a single string with blank lines between
// paragraphs.
func (a Article) Text() string {
	return strings.Join(a.Paragraphs, "\n\n")
}

// Options holds the extraction tuning knobs. The zero value selects the
// defaults; the constants are heuristic starting points, not a contract.
type Options struct {
	// TagPenalty weights markup overhead in the density score. Defaults to 1.
	TagPenalty float64
	// ChildWeight is the fraction of each direct child's score a container
	// inherits, favoring blocks made of several dense paragraphs over a
	// single dense leaf. Defaults to 0.2.
	ChildWeight float64
	// MinParagraphChars drops shorter paragraphs as presumed captions or
	// labels. Defaults to 20.
	MinParagraphChars int
	// MinArticleChars is the minimum total body length below which
	// extraction fails with ErrNoContent. Defaults to 100.
	MinArticleChars int
	// MaxArticleChars stops paragraph collection once the body reaches this
	// size, bounding pathological pages. Defaults to 20000.
	MaxArticleChars int
	// DenyTags lists extra element selectors to prune before scoring.
	DenyTags []string
	// DenyMarkers lists extra class/id substrings that mark boilerplate.
	DenyMarkers []string
}

// DefaultOptions returns the extraction defaults.
func DefaultOptions() Options {
	return Options{
		TagPenalty:        1,
		ChildWeight:       0.2,
		MinParagraphChars: 20,
		MinArticleChars:   100,
		MaxArticleChars:   20000,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TagPenalty == 0 {
		o.TagPenalty = d.TagPenalty
	}
	if o.ChildWeight == 0 {
		o.ChildWeight = d.ChildWeight
	}
	if o.MinParagraphChars == 0 {
		o.MinParagraphChars = d.MinParagraphChars
	}
	if o.MinArticleChars == 0 {
		o.MinArticleChars = d.MinArticleChars
	}
	if o.MaxArticleChars == 0 {
		o.MaxArticleChars = d.MaxArticleChars
	}
	return o
}

// FromHTML extracts the main article from doc. Empty or whitespace-only
// markup is a degenerate success returning an empty Article; non-empty
// markup without dense content fails with ErrNoContent. Extraction is
// deterministic: identical markup yields identical output.
func FromHTML(doc Document, opts Options) (Article, error) {
	opts = opts.withDefaults()
	if len(bytes.TrimSpace(doc.HTML)) == 0 {
		return Article{URL: doc.URL}, nil
	}
	root, err := html.Parse(bytes.NewReader(doc.HTML))
	if err != nil || root == nil {
		return Article{}, ErrNoContent
	}
	prune(root, opts)

	order := preorder(root)
	scores := scoreTree(order, opts)
	best, bestIdx := bestCandidate(order, scores)
	if best == nil {
		return Article{}, ErrNoContent
	}

	paragraphs, blockTitle := collectParagraphs(best, opts)
	title := blockTitle
	if title == "" {
		title = titleBefore(order, bestIdx)
	}
	if title == "" {
		title = titleTag(order)
	}
	if title == "" {
		title = hostOf(doc.URL)
	}

	if len(paragraphs) == 0 || totalChars(paragraphs) < opts.MinArticleChars {
		return Article{}, ErrNoContent
	}
	return Article{URL: doc.URL, Title: title, Paragraphs: paragraphs, ContentHTML: renderHTML(best)}, nil
}

func renderHTML(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// noiseSelectors are pruned wholesale before scoring. Tags cover script and
// style payloads, chrome regions and form controls; the role selectors catch
// pages that mark landmarks on generic elements.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"form", "button", "input", "select", "textarea",
	"iframe", "svg", "canvas", "video", "audio",
	"[role=navigation]", "[role=banner]", "[role=contentinfo]",
	"[role=complementary]", "[role=search]", "[role=dialog]",
}

// noiseMarkers flag boilerplate by class/id substring, case-insensitively.
var noiseMarkers = []string{
	"nav", "menu", "sidebar", "footer", "comment", "breadcrumb",
	"banner", "cookie", "consent", "promo", "sponsor", "advert",
	"social", "share", "related", "recommend", "newsletter",
	"subscribe", "popup", "modal", "masthead", "pagination",
}

// noiseTokens are matched as whole class/id tokens only; as substrings they
// would also hit words like "read" or "shadow".
var noiseTokens = []string{"ad", "ads"}

func prune(root *html.Node, opts Options) {
	doc := goquery.NewDocumentFromNode(root)
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	for _, sel := range opts.DenyTags {
		doc.Find(sel).Remove()
	}

	markers := noiseMarkers
	if len(opts.DenyMarkers) > 0 {
		markers = append(append([]string{}, noiseMarkers...), opts.DenyMarkers...)
	}
	var doomed []*html.Node
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type == html.ElementNode && hasNoiseMarker(n, markers) {
			doomed = append(doomed, n)
			continue
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

func hasNoiseMarker(n *html.Node, markers []string) bool {
	// The root and body frequently carry theme classes like "nav-fixed";
	// pruning them would drop the whole page.
	if n.Data == "html" || n.Data == "body" {
		return false
	}
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" && key != "role" {
			continue
		}
		val := strings.ToLower(attr.Val)
		for _, m := range markers {
			if strings.Contains(val, m) {
				return true
			}
		}
		for _, tok := range strings.FieldsFunc(val, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			for _, t := range noiseTokens {
				if tok == t {
					return true
				}
			}
		}
	}
	return false
}

// preorder returns every node in document order. Traversal uses an explicit
// stack so deeply nested markup cannot exhaust the call stack.
func preorder(root *html.Node) []*html.Node {
	var order []*html.Node
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, n)
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return order
}

type nodeStats struct {
	text  int // runes of trimmed text in the subtree
	link  int // runes of text under anchors
	tags  int // element descendants
	score float64
}

// scoreTree computes the density score of every element. Walking the
// preorder slice backwards visits children before parents, so each node
// aggregates finished child stats. A block's own density is
// text/(1+linkText+tags*penalty); its score adds a fraction of each direct
// child's score.
func scoreTree(order []*html.Node, opts Options) map[*html.Node]*nodeStats {
	stats := make(map[*html.Node]*nodeStats, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n.Type != html.ElementNode {
			continue
		}
		st := &nodeStats{}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if t := strings.TrimSpace(c.Data); t != "" {
					st.text += utf8.RuneCountInString(collapseSpaces(t))
				}
			case html.ElementNode:
				cs := stats[c]
				st.text += cs.text
				st.tags += cs.tags + 1
				if c.Data == "a" {
					st.link += cs.text
				} else {
					st.link += cs.link
				}
			}
		}
		if isBlockTag(n.Data) {
			st.score = float64(st.text) / (1 + float64(st.link) + float64(st.tags)*opts.TagPenalty)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				st.score += opts.ChildWeight * stats[c].score
			}
		}
		stats[n] = st
	}
	return stats
}

// candidateTags are the containers eligible to be the main content block.
// Leaf blocks like <p> score but never win on their own, so a container
// keeps its sibling paragraphs together.
var candidateTags = map[string]bool{
	"article": true,
	"main":    true,
	"section": true,
	"div":     true,
	"body":    true,
}

// bestCandidate picks the candidate with the maximum score. Scanning in
// document order and replacing only on a strictly higher score makes ties
// resolve to the earliest position, keeping extraction deterministic.
func bestCandidate(order []*html.Node, stats map[*html.Node]*nodeStats) (*html.Node, int) {
	var best *html.Node
	bestIdx := -1
	bestScore := 0.0
	for i, n := range order {
		if n.Type != html.ElementNode || !candidateTags[n.Data] {
			continue
		}
		if st := stats[n]; best == nil || st.score > bestScore {
			best, bestIdx, bestScore = n, i, st.score
		}
	}
	return best, bestIdx
}

func isBlockTag(name string) bool {
	switch name {
	case "p", "div", "section", "article", "main", "body",
		"blockquote", "pre", "li", "ul", "ol", "dl", "dd", "dt",
		"table", "td", "th", "figure", "figcaption",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// paragraphTags collect their whole subtree text as one paragraph.
func isParagraphTag(name string) bool {
	switch name {
	case "p", "li", "blockquote":
		return true
	}
	return false
}

// collectParagraphs walks the chosen block in document order and returns its
// paragraph texts plus the first heading found inside, used as the title.
// Paragraph-like nodes contribute their whole text; container nodes
// contribute their direct inline text so bare text under a <div> is kept.
func collectParagraphs(block *html.Node, opts Options) ([]string, string) {
	var paragraphs []string
	var title string
	total := 0
	push := func(text string) bool {
		text = cleanText(text)
		r := utf8.RuneCountInString(text)
		if r < opts.MinParagraphChars {
			return true
		}
		if total+r > opts.MaxArticleChars {
			if total == 0 {
				paragraphs = append(paragraphs, truncateRunes(text, opts.MaxArticleChars))
				total = opts.MaxArticleChars
			}
			return false
		}
		paragraphs = append(paragraphs, text)
		total += r
		return true
	}

	stack := []*html.Node{block}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type != html.ElementNode {
			continue
		}
		switch {
		case isParagraphTag(n.Data):
			if !push(flatText(n)) {
				return paragraphs, title
			}
			continue // subtree consumed
		case n.Data == "h1" || n.Data == "h2":
			if title == "" {
				title = cleanText(flatText(n))
			}
			continue
		case n == block || candidateTags[n.Data]:
			if !push(inlineText(n)) {
				return paragraphs, title
			}
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return paragraphs, title
}

// flatText returns all text in the subtree, fragments joined by spaces.
func flatText(n *html.Node) string {
	var parts []string
	stack := []*html.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.TextNode {
			if t := strings.TrimSpace(cur.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return strings.Join(parts, " ")
}

// inlineText returns the text of n's direct inline content, leaving block
// children to their own visits.
func inlineText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := strings.TrimSpace(c.Data); t != "" {
				parts = append(parts, t)
			}
		case html.ElementNode:
			if !isBlockTag(c.Data) {
				if t := flatText(c); t != "" {
					parts = append(parts, t)
				}
			}
		}
	}
	return strings.Join(parts, " ")
}

func titleBefore(order []*html.Node, bestIdx int) string {
	for i := 0; i < bestIdx && i < len(order); i++ {
		n := order[i]
		if n.Type == html.ElementNode && (n.Data == "h1" || n.Data == "h2") {
			return cleanText(flatText(n))
		}
	}
	return ""
}

func titleTag(order []*html.Node) string {
	for _, n := range order {
		if n.Type == html.ElementNode && n.Data == "title" {
			return cleanText(flatText(n))
		}
	}
	return ""
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

// cleanText collapses whitespace runs, trims and applies NFC so visually
// identical pages extract to byte-identical articles.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(collapseSpaces(s)))
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}

func totalChars(paragraphs []string) int {
	n := 0
	for _, p := range paragraphs {
		n += utf8.RuneCountInString(p)
	}
	return n
}
