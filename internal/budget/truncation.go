package budget

// TruncateToTokens returns a prefix of s that fits the given token budget
// under the chars-per-token heuristic, never splitting a UTF-8 rune. A zero
// or negative budget returns the empty string.
func TruncateToTokens(s string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	maxBytes := maxTokens * 4
	if maxBytes >= len(s) {
		return s
	}
	// Walk rune boundaries and stop at the last one within the limit.
	idx := 0
	for i := range s {
		if i > maxBytes {
			break
		}
		idx = i
	}
	return s[:idx]
}
