// Package app wires the fetch, extract and summarize stages behind one
// facade shared by the CLI and the HTTP API, and owns runtime configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/pagebrief/internal/cache"
	"github.com/hyperifyio/pagebrief/internal/extract"
	"github.com/hyperifyio/pagebrief/internal/fetch"
	"github.com/hyperifyio/pagebrief/internal/llm"
	"github.com/hyperifyio/pagebrief/internal/rank"
	"github.com/hyperifyio/pagebrief/internal/render"
	"github.com/hyperifyio/pagebrief/internal/summarize"
)

// App is the assembled pipeline.
type App struct {
	cfg          Config
	fetcher      *fetch.Client
	httpCache    *cache.HTTPCache
	summaryCache *cache.SummaryCache
	extractor    extract.Extractor
	extractive   summarize.Extractive
	neural       *summarize.Neural
	neuralOK     bool
}

// Result couples an extracted article with its summary.
type Result struct {
	Article   extract.Article
	Summary   summarize.Summary
	FetchedAt time.Time
}

// ProcessOptions selects the strategy and budget for one run. Zero budget
// fields fall back to the configured defaults.
type ProcessOptions struct {
	PreferNeural bool
	MaxSentences int
	MaxWords     int
}

// FetchError wraps a fetch-stage failure so callers can map it distinctly
// from extraction and summarization failures.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch page: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// New assembles the pipeline from cfg. When a model is configured its
// backend is probed once; a failed probe downgrades to extractive
// summaries rather than failing startup.
func New(ctx context.Context, cfg Config) (*App, error) {
	a := &App{cfg: cfg}

	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			_ = cache.ClearDir(cfg.CacheDir)
		}
		if cfg.CacheMaxAge > 0 {
			// Housekeeping is best-effort; never fail startup over it.
			_, _ = cache.PurgeHTTPCacheByAge(cfg.CacheDir, cfg.CacheMaxAge)
			_, _ = cache.PurgeSummaryCacheByAge(cfg.CacheDir, cfg.CacheMaxAge)
		}
		a.httpCache = &cache.HTTPCache{Dir: cfg.CacheDir}
		a.summaryCache = &cache.SummaryCache{Dir: cfg.CacheDir}
	}

	a.fetcher = &fetch.Client{
		HTTPClient:        newHTTPClient(0),
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       2,
		PerRequestTimeout: cfg.FetchTimeout,
		RedirectMaxHops:   cfg.RedirectMaxHops,
		Cache:             a.httpCache,
		BypassCache:       cfg.CacheMaxAge == 0 && cfg.CacheClear, // bypass when user forces clear
	}

	a.extractor = extract.DensityExtractor{Options: a.extractOptions()}
	a.extractive = summarize.Extractive{
		Rank: rank.Options{
			Damping:       cfg.Damping,
			Tolerance:     cfg.Tolerance,
			MaxIterations: cfg.MaxIterations,
		},
	}

	if cfg.LLMModel != "" {
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = cfg.LLMBaseURL
		}
		transportCfg.HTTPClient = newHTTPClient(2 * time.Minute)
		provider := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}
		a.neural = &summarize.Neural{Client: provider, Model: cfg.LLMModel, Cache: a.summaryCache}

		count, err := llm.Probe(ctx, provider, 5*time.Second)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("model probe failed; extractive summaries only")
		case count == 0:
			log.Warn().Msg("backend lists zero models; keeping the abstractive path")
			a.neuralOK = true
		default:
			log.Info().Int("count", count).Str("model", cfg.LLMModel).Msg("models available")
			a.neuralOK = true
		}
	}

	return a, nil
}

func (a *App) Close() {
	// nothing yet
}

// NeuralAvailable reports whether the abstractive path survived the
// startup probe.
func (a *App) NeuralAvailable() bool {
	return a != nil && a.neural != nil && a.neuralOK
}

// ProcessURL fetches a page and runs the pipeline on it. Fetch failures are
// returned as *FetchError so callers can map them separately from extraction
// failures.
func (a *App) ProcessURL(ctx context.Context, pageURL string, opts ProcessOptions) (Result, error) {
	log.Debug().Str("url", pageURL).Msg("fetching page")
	body, _, err := a.fetcher.Get(ctx, pageURL)
	if err != nil {
		return Result{}, &FetchError{Err: err}
	}
	return a.Process(ctx, extract.Document{URL: pageURL, HTML: body}, opts)
}

// Process runs extraction and summarization over already-loaded markup.
// The abstractive path is used when preferred and available; its failures
// downgrade to an extractive summary with a warning.
func (a *App) Process(ctx context.Context, doc extract.Document, opts ProcessOptions) (Result, error) {
	art, err := a.extractor.Extract(doc)
	if err != nil {
		return Result{}, fmt.Errorf("extract article: %w", err)
	}
	budget := summarize.Budget{MaxSentences: a.cfg.MaxSentences, MaxWords: a.cfg.MaxWords}
	if opts.MaxSentences > 0 {
		budget.MaxSentences = opts.MaxSentences
	}
	if opts.MaxWords > 0 {
		budget.MaxWords = opts.MaxWords
	}
	sum, err := a.summarize(ctx, art, budget, opts.PreferNeural)
	if err != nil {
		return Result{}, fmt.Errorf("summarize article: %w", err)
	}
	log.Debug().
		Str("title", art.Title).
		Int("paragraphs", len(art.Paragraphs)).
		Str("method", sum.Method).
		Msg("page processed")
	return Result{Article: art, Summary: sum, FetchedAt: time.Now().UTC()}, nil
}

func (a *App) summarize(ctx context.Context, art extract.Article, budget summarize.Budget, preferNeural bool) (summarize.Summary, error) {
	if preferNeural && a.NeuralAvailable() {
		sum, err := a.neural.Summarize(ctx, art, budget)
		if err == nil {
			return sum, nil
		}
		log.Warn().Err(err).Msg("abstractive summary failed; falling back to extractive")
	}
	return a.extractive.Summarize(ctx, art, budget)
}

func (a *App) extractOptions() extract.Options {
	opts := extract.DefaultOptions()
	cfg := a.cfg
	if cfg.TagPenalty > 0 {
		opts.TagPenalty = cfg.TagPenalty
	}
	if cfg.ChildWeight > 0 {
		opts.ChildWeight = cfg.ChildWeight
	}
	if cfg.MinParagraphChars > 0 {
		opts.MinParagraphChars = cfg.MinParagraphChars
	}
	if cfg.MinArticleChars > 0 {
		opts.MinArticleChars = cfg.MinArticleChars
	}
	if cfg.MaxArticleChars > 0 {
		opts.MaxArticleChars = cfg.MaxArticleChars
	}
	if len(cfg.DenyTags) > 0 {
		opts.DenyTags = append([]string{}, cfg.DenyTags...)
	}
	if len(cfg.DenyMarkers) > 0 {
		opts.DenyMarkers = append([]string{}, cfg.DenyMarkers...)
	}
	return opts
}

// Run executes one CLI invocation: resolve the input, process it and write
// the artifact bundle.
func (a *App) Run(ctx context.Context) error {
	var res Result
	var err error
	opts := ProcessOptions{PreferNeural: a.cfg.PreferNeural}
	switch {
	case a.cfg.URL != "":
		res, err = a.ProcessURL(ctx, a.cfg.URL, opts)
	default:
		var html []byte
		html, err = readInput(a.cfg.InputPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		res, err = a.Process(ctx, extract.Document{URL: a.cfg.SourceURL, HTML: html}, opts)
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("title", res.Article.Title).
		Str("method", res.Summary.Method).
		Int("sentences", len(res.Summary.Sentences)).
		Msg("page summarized")

	dir, err := render.Bundle(a.cfg.OutDir, res.Document(), a.cfg.EnablePDF)
	if err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}
	log.Info().Str("dir", dir).Msg("artifacts written")
	return nil
}

// Document projects the result into the artifact and API schema.
func (r Result) Document() render.Document {
	doc := render.Document{
		URL:       r.Article.URL,
		Domain:    domainOf(r.Article.URL),
		Title:     r.Article.Title,
		FetchedAt: r.FetchedAt,
		Method:    r.Summary.Method,
		Summary:   r.Summary.Text,
		Article:   r.Article.Text(),
	}
	for _, p := range r.Summary.Sentences {
		doc.Sentences = append(doc.Sentences, render.Sentence{Ordinal: p.Ordinal, Text: p.Text, Score: p.Score})
	}
	if md, err := render.ContentMarkdown(r.Article.ContentHTML); err == nil {
		doc.ContentMarkdown = md
	}
	return doc
}

func domainOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
