package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagebrief/internal/app"
	"github.com/hyperifyio/pagebrief/internal/extract"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// .env is optional; explicit environment always wins over the file.
	_ = godotenv.Load()

	var (
		cfg        app.Config
		configPath string
		denyTags   string
		denyMarks  string
	)

	flag.StringVar(&cfg.URL, "url", "", "Page URL to fetch and summarize")
	flag.StringVar(&cfg.InputPath, "input", "", "Path to a local HTML file, or '-' for stdin (skips fetching)")
	flag.StringVar(&cfg.SourceURL, "source", "", "Original URL of -input markup, used for titles and links only")
	flag.StringVar(&cfg.OutDir, "out", app.DefaultOutDir, "Directory to write the artifact bundle into")
	flag.BoolVar(&cfg.EnablePDF, "pdf", false, "Also render the summary as PDF")
	flag.StringVar(&configPath, "config", os.Getenv("PAGEBRIEF_CONFIG"), "Path to a YAML or JSON config file")

	flag.Float64Var(&cfg.TagPenalty, "extract.tagPenalty", 0, "Markup-overhead weight in the density score (0 = default)")
	flag.Float64Var(&cfg.ChildWeight, "extract.childWeight", 0, "Fraction of child scores a container inherits (0 = default)")
	flag.IntVar(&cfg.MinParagraphChars, "extract.minParagraphChars", 0, "Drop paragraphs shorter than this many characters (0 = default)")
	flag.IntVar(&cfg.MinArticleChars, "extract.minArticleChars", 0, "Fail extraction below this total body length (0 = default)")
	flag.IntVar(&cfg.MaxArticleChars, "extract.maxArticleChars", 0, "Stop collecting body text past this length (0 = default)")
	flag.StringVar(&denyTags, "extract.denyTags", "", "Comma-separated extra selectors to prune before scoring")
	flag.StringVar(&denyMarks, "extract.denyMarkers", "", "Comma-separated extra class/id substrings treated as boilerplate")

	flag.Float64Var(&cfg.Damping, "rank.damping", 0, "Damping factor of the score iteration (0 = default 0.85)")
	flag.Float64Var(&cfg.Tolerance, "rank.tolerance", 0, "Convergence threshold of the score iteration (0 = default 1e-4)")
	flag.IntVar(&cfg.MaxIterations, "rank.maxIterations", 0, "Iteration cap of the score iteration (0 = default 100)")

	flag.IntVar(&cfg.MaxSentences, "max.sentences", app.DefaultMaxSentences, "Maximum summary sentences")
	flag.IntVar(&cfg.MaxWords, "max.words", 0, "Maximum summary words (0 disables)")
	flag.BoolVar(&cfg.PreferNeural, "neural", true, "Prefer the abstractive model when one is configured and reachable")

	flag.StringVar(&cfg.UserAgent, "fetch.ua", "", "Custom User-Agent for page fetches")
	flag.DurationVar(&cfg.FetchTimeout, "fetch.timeout", app.DefaultFetchTimeout, "Per-request fetch timeout")
	flag.IntVar(&cfg.RedirectMaxHops, "fetch.maxRedirects", 0, "Redirect cap for page fetches (0 = default 5)")

	flag.StringVar(&cfg.LLMBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&cfg.LLMModel, "llm.model", "", "Model name; empty disables the abstractive path")
	flag.StringVar(&cfg.LLMAPIKey, "llm.key", "", "API key for the OpenAI-compatible server")

	flag.StringVar(&cfg.CacheDir, "cache.dir", app.DefaultCacheDir, "Cache directory path; empty disables caching")
	flag.DurationVar(&cfg.CacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	flag.BoolVar(&cfg.CacheClear, "cache.clear", false, "Clear the cache directory before the run")

	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg.DenyTags = splitList(denyTags)
	cfg.DenyMarkers = splitList(denyMarks)

	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.ValidateConfig(cfg, false); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Pages without extractable content exit 2 so scripts can tell
		// "nothing to summarize" apart from operational failures.
		if errors.Is(err, extract.ErrNoContent) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
