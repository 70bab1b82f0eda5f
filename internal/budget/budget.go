// Package budget estimates token costs for OpenAI-compatible models so the
// abstractive summarizer can size its prompt to the model context window.
package budget

import (
	"math"
	"strings"
)

// EstimateTokensFromChars converts a character count into an estimated token
// count using a conservative heuristic (~4 chars per token in English). The
// result is always at least 1 when chars > 0.
func EstimateTokensFromChars(charCount int) int {
	if charCount <= 0 {
		return 0
	}
	return int(math.Ceil(float64(charCount) / 4.0))
}

// EstimateTokens returns the estimated token count of a string.
func EstimateTokens(s string) int {
	return EstimateTokensFromChars(len(s))
}

// ModelContextTokens returns an estimated maximum context window for a given
// model name. Unknown models fall back to a conservative default.
func ModelContextTokens(modelName string) int {
	name := strings.ToLower(strings.TrimSpace(modelName))
	if name == "" {
		return 8192
	}
	if v, ok := knownModelMax[name]; ok {
		return v
	}
	// Size suffixes common in local backend model names.
	switch {
	case strings.HasSuffix(name, "1m"):
		return 1_000_000
	case strings.HasSuffix(name, "512k"):
		return 512_000
	case strings.HasSuffix(name, "200k"):
		return 200_000
	case strings.HasSuffix(name, "128k"):
		return 128_000
	case strings.Contains(name, "-mini"):
		return 128_000
	}
	return 8192
}

// RemainingContext computes the input token budget left for a model given a
// reservation for output generation and the tokens already committed to the
// prompt. The result is never negative.
func RemainingContext(modelName string, reservedForOutput int, promptTokens int) int {
	maxCtx := ModelContextTokens(modelName)
	if reservedForOutput < 0 {
		reservedForOutput = 0
	}
	remaining := maxCtx - reservedForOutput - promptTokens
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HeadroomTokens returns a safety margin subtracted from the model context so
// prompt sizing survives tokenizer and message framing overheads: the larger
// of 5% of the context or 512 tokens.
func HeadroomTokens(modelName string) int {
	max := ModelContextTokens(modelName)
	dyn := int(math.Ceil(float64(max) * 0.05))
	if dyn < 512 {
		return 512
	}
	return dyn
}

// RemainingContextWithHeadroom computes remaining tokens after accounting for
// output reservation and the headroom margin for the given model.
func RemainingContextWithHeadroom(modelName string, reservedForOutput int, promptTokens int) int {
	return RemainingContext(modelName, reservedForOutput+HeadroomTokens(modelName), promptTokens)
}

// knownModelMax holds rough context sizes for common model identifiers.
// Best-effort; it does not need to be exhaustive.
var knownModelMax = map[string]int{
	"gpt-4o":             128_000,
	"gpt-4o-mini":        128_000,
	"gpt-4-turbo":        128_000,
	"gpt-4-0125-preview": 128_000,
	"gpt-3.5-turbo":      16_384,

	"claude-3-5-sonnet": 200_000,
	"claude-3-opus":     200_000,
	"claude-3-haiku":    200_000,

	"llama-3":   8_192,
	"llama-3.1": 128_000,

	// Conservative defaults for OpenAI-compatible local backends.
	"openai/gpt-oss-20b": 4_096,
	"gpt-oss-20b":        4_096,
}
