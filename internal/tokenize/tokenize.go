package tokenize

import (
	"regexp"
	"strings"
	"unicode"
)

// Sentence is one sentence of an article body. Ordinal is the zero-based
// position across the whole body and defines original reading order. Tokens
// holds the normalized word set (lowercased, stopwords removed, deduplicated
// in first-occurrence order) used for similarity scoring.
type Sentence struct {
	Text    string
	Ordinal int
	Tokens  []string
}

// Options configures tokenization. A nil Stopwords map selects the built-in
// English set.
type Options struct {
	Stopwords map[string]struct{}
}

var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Split segments the paragraphs of an article body into sentences with
// running ordinals and derived token sets. Empty or whitespace-only input
// yields an empty slice.
func Split(paragraphs []string, opts Options) []Sentence {
	stop := opts.Stopwords
	if stop == nil {
		stop = DefaultStopwords()
	}
	var out []Sentence
	ordinal := 0
	for _, p := range paragraphs {
		for _, text := range SplitText(p) {
			out = append(out, Sentence{
				Text:    text,
				Ordinal: ordinal,
				Tokens:  Tokens(text, stop),
			})
			ordinal++
		}
	}
	return out
}

// SplitText splits a block of text into sentence strings. A sentence ends at
// '.', '!' or '?' followed by whitespace and an upper-case letter or opening
// quote, or at end of text. Common abbreviations ("Mr.", "e.g."), single
// initials ("J. Smith") and decimal points do not terminate a sentence. The
// heuristic is approximate by design; it does not attempt a full grammar.
func SplitText(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if r == '.' && (isAbbreviation(runes, i) || isDecimalPoint(runes, i)) {
			continue
		}
		// Keep closing quotes and brackets with the sentence they end.
		end := i + 1
		for end < len(runes) && isClosingMark(runes[end]) {
			end++
		}
		if end >= len(runes) {
			appendSentence(&out, runes[start:end])
			start = end
			break
		}
		if !unicode.IsSpace(runes[end]) {
			continue
		}
		next := end
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next >= len(runes) {
			appendSentence(&out, runes[start:end])
			start = next
			break
		}
		if unicode.IsUpper(runes[next]) || isOpeningQuote(runes[next]) {
			appendSentence(&out, runes[start:end])
			start = next
			i = next - 1
		}
	}
	if start < len(runes) {
		appendSentence(&out, runes[start:])
	}
	return out
}

// Tokens lowercases text, splits it on non-alphanumeric boundaries, drops
// stopwords and returns the remaining distinct tokens in first-occurrence
// order.
func Tokens(text string, stopwords map[string]struct{}) []string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	var out []string
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, skip := stopwords[w]; skip {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func appendSentence(out *[]string, runes []rune) {
	s := strings.TrimSpace(string(runes))
	if s != "" {
		*out = append(*out, s)
	}
}

// abbreviations that end with a period and rarely terminate a sentence.
var abbreviations = func() map[string]struct{} {
	words := strings.Fields(`
		mr. mrs. ms. dr. prof. sr. jr. st. rd. ave. blvd.
		vs. etc. e.g. i.e. cf. al. ca. approx. dept. est. fig. figs.
		inc. ltd. co. corp. no. nos. vol. vols. pp. pg. ed. eds. repr.
		jan. feb. mar. apr. jun. jul. aug. sep. sept. oct. nov. dec.
		mon. tue. wed. thu. fri. sat. sun. u.s. u.k. u.n.`)
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// isAbbreviation reports whether the period at index i ends a known
// abbreviation or a single capital initial.
func isAbbreviation(runes []rune, i int) bool {
	start := i
	for start > 0 && (unicode.IsLetter(runes[start-1]) || runes[start-1] == '.') {
		start--
	}
	if start == i {
		return false
	}
	word := strings.ToLower(string(runes[start : i+1]))
	if _, ok := abbreviations[word]; ok {
		return true
	}
	// A single letter before the period reads as an initial, e.g. "J. Smith".
	if i >= 1 && unicode.IsUpper(runes[i-1]) {
		if i < 2 || !unicode.IsLetter(runes[i-2]) {
			return true
		}
	}
	return false
}

// isDecimalPoint reports whether the period at index i sits between digits,
// as in "3.14".
func isDecimalPoint(runes []rune, i int) bool {
	return i > 0 && i+1 < len(runes) &&
		unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1])
}

func isClosingMark(r rune) bool {
	switch r {
	case '"', '\'', '”', '’', ')', ']':
		return true
	}
	return false
}

func isOpeningQuote(r rune) bool {
	switch r {
	case '"', '\'', '“', '‘':
		return true
	}
	return false
}
