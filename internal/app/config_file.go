package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to flags and env.
type FileConfig struct {
	URL    string `yaml:"url" json:"url"`
	Input  string `yaml:"input" json:"input"`
	Source string `yaml:"source" json:"source"`
	Out    string `yaml:"out" json:"out"`
	PDF    bool   `yaml:"pdf" json:"pdf"`

	Extract struct {
		TagPenalty        float64  `yaml:"tagPenalty" json:"tagPenalty"`
		ChildWeight       float64  `yaml:"childWeight" json:"childWeight"`
		MinParagraphChars int      `yaml:"minParagraphChars" json:"minParagraphChars"`
		MinArticleChars   int      `yaml:"minArticleChars" json:"minArticleChars"`
		MaxArticleChars   int      `yaml:"maxArticleChars" json:"maxArticleChars"`
		DenyTags          []string `yaml:"denyTags" json:"denyTags"`
		DenyMarkers       []string `yaml:"denyMarkers" json:"denyMarkers"`
	} `yaml:"extract" json:"extract"`

	Rank struct {
		Damping       float64 `yaml:"damping" json:"damping"`
		Tolerance     float64 `yaml:"tolerance" json:"tolerance"`
		MaxIterations int     `yaml:"maxIterations" json:"maxIterations"`
	} `yaml:"rank" json:"rank"`

	Summary struct {
		MaxSentences int   `yaml:"maxSentences" json:"maxSentences"`
		MaxWords     int   `yaml:"maxWords" json:"maxWords"`
		PreferNeural *bool `yaml:"preferNeural" json:"preferNeural"`
	} `yaml:"summary" json:"summary"`

	Fetch struct {
		UA string `yaml:"ua" json:"ua"`
		// Timeout is a duration string like "10s".
		Timeout         string `yaml:"timeout" json:"timeout"`
		RedirectMaxHops int    `yaml:"redirectMaxHops" json:"redirectMaxHops"`
	} `yaml:"fetch" json:"fetch"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Cache struct {
		Dir string `yaml:"dir" json:"dir"`
		// MaxAge is a duration string like "24h".
		MaxAge string `yaml:"maxAge" json:"maxAge"`
		Clear  bool   `yaml:"clear" json:"clear"`
	} `yaml:"cache" json:"cache"`

	Listen  string `yaml:"listen" json:"listen"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields still
// at their flag defaults. Flags should already have been parsed; this lets
// the file supply values while explicit flags keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}

	if cfg.URL == "" && fc.URL != "" {
		cfg.URL = fc.URL
	}
	if cfg.InputPath == "" && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if cfg.SourceURL == "" && fc.Source != "" {
		cfg.SourceURL = fc.Source
	}
	if (cfg.OutDir == "" || cfg.OutDir == DefaultOutDir) && fc.Out != "" {
		cfg.OutDir = fc.Out
	}
	if !cfg.EnablePDF && fc.PDF {
		cfg.EnablePDF = true
	}

	if cfg.TagPenalty == 0 && fc.Extract.TagPenalty > 0 {
		cfg.TagPenalty = fc.Extract.TagPenalty
	}
	if cfg.ChildWeight == 0 && fc.Extract.ChildWeight > 0 {
		cfg.ChildWeight = fc.Extract.ChildWeight
	}
	if cfg.MinParagraphChars == 0 && fc.Extract.MinParagraphChars > 0 {
		cfg.MinParagraphChars = fc.Extract.MinParagraphChars
	}
	if cfg.MinArticleChars == 0 && fc.Extract.MinArticleChars > 0 {
		cfg.MinArticleChars = fc.Extract.MinArticleChars
	}
	if cfg.MaxArticleChars == 0 && fc.Extract.MaxArticleChars > 0 {
		cfg.MaxArticleChars = fc.Extract.MaxArticleChars
	}
	if len(cfg.DenyTags) == 0 && len(fc.Extract.DenyTags) > 0 {
		cfg.DenyTags = append([]string{}, fc.Extract.DenyTags...)
	}
	if len(cfg.DenyMarkers) == 0 && len(fc.Extract.DenyMarkers) > 0 {
		cfg.DenyMarkers = append([]string{}, fc.Extract.DenyMarkers...)
	}

	if cfg.Damping == 0 && fc.Rank.Damping > 0 {
		cfg.Damping = fc.Rank.Damping
	}
	if cfg.Tolerance == 0 && fc.Rank.Tolerance > 0 {
		cfg.Tolerance = fc.Rank.Tolerance
	}
	if cfg.MaxIterations == 0 && fc.Rank.MaxIterations > 0 {
		cfg.MaxIterations = fc.Rank.MaxIterations
	}

	if (cfg.MaxSentences == 0 || cfg.MaxSentences == DefaultMaxSentences) && fc.Summary.MaxSentences > 0 {
		cfg.MaxSentences = fc.Summary.MaxSentences
	}
	if cfg.MaxWords == 0 && fc.Summary.MaxWords > 0 {
		cfg.MaxWords = fc.Summary.MaxWords
	}
	if fc.Summary.PreferNeural != nil {
		cfg.PreferNeural = *fc.Summary.PreferNeural
	}

	if cfg.UserAgent == "" && fc.Fetch.UA != "" {
		cfg.UserAgent = fc.Fetch.UA
	}
	if cfg.FetchTimeout == 0 || cfg.FetchTimeout == DefaultFetchTimeout {
		if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil && d > 0 {
			cfg.FetchTimeout = d
		}
	}
	if cfg.RedirectMaxHops == 0 && fc.Fetch.RedirectMaxHops > 0 {
		cfg.RedirectMaxHops = fc.Fetch.RedirectMaxHops
	}

	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}

	if (cfg.CacheDir == "" || cfg.CacheDir == DefaultCacheDir) && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 {
		if d, err := time.ParseDuration(fc.Cache.MaxAge); err == nil && d > 0 {
			cfg.CacheMaxAge = d
		}
	}
	if !cfg.CacheClear && fc.Cache.Clear {
		cfg.CacheClear = true
	}

	if (cfg.ListenAddr == "" || cfg.ListenAddr == DefaultListenAddr) && fc.Listen != "" {
		cfg.ListenAddr = fc.Listen
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
