package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/pagebrief/internal/budget"
	"github.com/hyperifyio/pagebrief/internal/cache"
	"github.com/hyperifyio/pagebrief/internal/extract"
	"github.com/hyperifyio/pagebrief/internal/llm"
)

// ErrModelUnavailable means no usable model client is configured; callers
// fall back to Extractive.
var ErrModelUnavailable = errors.New("model unavailable")

// ErrEmptyCompletion means the model answered without usable summary text.
var ErrEmptyCompletion = errors.New("empty completion")

const neuralSystemPrompt = "You are a precise summarizer. Summarize the provided article faithfully and do not add facts that are not in it. Return only the summary text, with no preamble, headings or quotes."

// Neural asks an OpenAI-compatible chat model for an abstractive summary.
// Uses the llm.Client provider interface for backend independence.
type Neural struct {
	Client llm.Client
	Model  string
	// Cache, when set, stores completions keyed by model and prompt digest
	// so identical requests are answered without a model call.
	Cache *cache.SummaryCache
	// ReservedOutputTokens is held back from the model context for the
	// completion. Defaults to 256.
	ReservedOutputTokens int
}

func (n *Neural) Summarize(ctx context.Context, art extract.Article, b Budget) (Summary, error) {
	if strings.TrimSpace(art.Text()) == "" {
		return Summary{Method: MethodNeural}, nil
	}
	if n == nil || n.Client == nil || strings.TrimSpace(n.Model) == "" {
		return Summary{}, ErrModelUnavailable
	}

	user := n.userMessage(art, b)
	key := cache.KeyFrom(n.Model, neuralSystemPrompt+"\n\n"+user)
	if n.Cache != nil {
		if text, ok, _ := n.Cache.Get(ctx, key); ok && strings.TrimSpace(text) != "" {
			return Summary{Text: text, Method: MethodNeural}, nil
		}
	}

	req := openai.ChatCompletionRequest{
		Model: n.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: neuralSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
		N:           1,
	}
	resp, err := n.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		// One short, fixed backoff keeps the retry deterministic in tests
		// and bounded in CLI runs; the context deadline still applies.
		sleep(100)
		resp, err = n.Client.CreateChatCompletion(ctx, req)
		if err != nil {
			return Summary{}, fmt.Errorf("summary call (after retry): %w", err)
		}
	}
	if len(resp.Choices) == 0 {
		return Summary{}, ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Summary{}, ErrEmptyCompletion
	}
	if n.Cache != nil {
		_ = n.Cache.Save(ctx, key, text)
	}
	return Summary{Text: text, Method: MethodNeural}, nil
}

// userMessage builds the prompt, truncating the article body so the request
// fits the model context with room reserved for the completion.
func (n *Neural) userMessage(art extract.Article, b Budget) string {
	var sb strings.Builder
	sb.WriteString("Summarize the article below in at most ")
	switch {
	case b.MaxWords > 0:
		fmt.Fprintf(&sb, "%d words.", b.MaxWords)
	case b.MaxSentences > 0:
		fmt.Fprintf(&sb, "%d sentences.", b.MaxSentences)
	default:
		fmt.Fprintf(&sb, "%d sentences.", DefaultMaxSentences)
	}
	if t := strings.TrimSpace(art.Title); t != "" {
		sb.WriteString("\n\nTitle: ")
		sb.WriteString(t)
	}
	sb.WriteString("\n\nArticle:\n\n")

	reserved := n.ReservedOutputTokens
	if reserved <= 0 {
		reserved = 256
	}
	scaffold := budget.EstimateTokens(neuralSystemPrompt) + budget.EstimateTokens(sb.String())
	avail := budget.RemainingContextWithHeadroom(n.Model, reserved, scaffold)
	sb.WriteString(budget.TruncateToTokens(art.Text(), avail))
	return sb.String()
}

// sleepFunc lets tests replace the retry backoff with a no-op.
var sleepFunc func(ms int)

func sleep(ms int) {
	if sleepFunc != nil {
		sleepFunc(ms)
		return
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
