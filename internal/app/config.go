package app

import (
	"errors"
	"strings"
	"time"
)

// Defaults shared between flag registration and the config file overlay so
// both can tell "left at default" apart from "explicitly set".
const (
	DefaultOutDir       = "out"
	DefaultListenAddr   = ":5000"
	DefaultCacheDir     = ".pagebrief-cache"
	DefaultMaxSentences = 4
	DefaultFetchTimeout = 10 * time.Second
)

// Config holds runtime configuration for the application.
type Config struct {
	// Input selection: exactly one of URL or InputPath ("-" for stdin).
	// SourceURL optionally accompanies InputPath for titles and links.
	URL       string
	InputPath string
	SourceURL string

	// Artifacts
	OutDir    string
	EnablePDF bool

	// Extraction
	TagPenalty        float64
	ChildWeight       float64
	MinParagraphChars int
	MinArticleChars   int
	MaxArticleChars   int
	DenyTags          []string
	DenyMarkers       []string

	// Ranking
	Damping       float64
	Tolerance     float64
	MaxIterations int

	// Summary budget and strategy
	MaxSentences int
	MaxWords     int
	PreferNeural bool

	// Fetch
	UserAgent       string
	FetchTimeout    time.Duration
	RedirectMaxHops int

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Cache
	CacheDir    string
	CacheMaxAge time.Duration
	CacheClear  bool

	// Server
	ListenAddr string

	// Behavior
	Verbose bool
}

// ValidateConfig performs minimal schema validation for required settings.
// Serving mode passes serve=true; the CLI requires an input, the daemon does
// not.
func ValidateConfig(cfg Config, serve bool) error {
	if !serve {
		url := strings.TrimSpace(cfg.URL)
		input := strings.TrimSpace(cfg.InputPath)
		if url == "" && input == "" {
			return errors.New("config: either -url or -input is required")
		}
		if url != "" && input != "" {
			return errors.New("config: -url and -input are mutually exclusive")
		}
	}
	if serve && strings.TrimSpace(cfg.ListenAddr) == "" {
		return errors.New("config: listen address is required")
	}
	if cfg.MaxSentences < 0 || cfg.MaxWords < 0 {
		return errors.New("config: negative summary budgets are not allowed")
	}
	if cfg.MinParagraphChars < 0 || cfg.MinArticleChars < 0 || cfg.MaxArticleChars < 0 {
		return errors.New("config: negative extraction limits are not allowed")
	}
	return nil
}
