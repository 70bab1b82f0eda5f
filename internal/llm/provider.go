// Package llm abstracts the OpenAI-compatible chat backend behind small
// interfaces so the summarizer does not care whether it talks to a hosted
// API or a local server.
package llm

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface the abstractive summarizer needs to call
// a chat model. Any OpenAI-compatible backend can be adapted to it.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ModelLister is an optional capability for listing available models.
// Providers that do not support it can omit it; callers detect availability
// with a type assertion.
type ModelLister interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// OpenAIProvider adapts *openai.Client to the Client/ModelLister interfaces.
type OpenAIProvider struct {
	Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}

func (p *OpenAIProvider) ListModels(ctx context.Context) (openai.ModelsList, error) {
	return p.Inner.ListModels(ctx)
}

// Probe asks the backend for its model list and returns how many models it
// reports. A failed probe means the abstractive path should not be offered;
// callers decide whether that is a warning or an error.
func Probe(ctx context.Context, c Client, timeout time.Duration) (int, error) {
	lister, ok := c.(ModelLister)
	if !ok {
		return 0, errors.New("backend cannot list models")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	models, err := lister.ListModels(ctx)
	if err != nil {
		return 0, err
	}
	return len(models.Models), nil
}
