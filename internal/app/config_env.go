package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values (flags or config file) take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}

	if cfg.CacheDir == "" || cfg.CacheDir == DefaultCacheDir {
		if v := os.Getenv("CACHE_DIR"); v != "" {
			cfg.CacheDir = v
		}
	}
	if cfg.OutDir == "" || cfg.OutDir == DefaultOutDir {
		if v := os.Getenv("OUT_DIR"); v != "" {
			cfg.OutDir = v
		}
	}
	if cfg.ListenAddr == "" || cfg.ListenAddr == DefaultListenAddr {
		if v := os.Getenv("LISTEN_ADDR"); v != "" {
			cfg.ListenAddr = v
		}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("FETCH_UA")
	}

	// Optional durations
	if cfg.CacheMaxAge == 0 {
		if s := os.Getenv("CACHE_MAX_AGE"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.CacheMaxAge = d
			}
		}
	}
	if cfg.FetchTimeout == 0 || cfg.FetchTimeout == DefaultFetchTimeout {
		if s := os.Getenv("FETCH_TIMEOUT"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.FetchTimeout = d
			}
		}
	}

	// Optional counts
	if cfg.MaxSentences == 0 || cfg.MaxSentences == DefaultMaxSentences {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("MAX_SENTENCES"))); err == nil && n > 0 {
			cfg.MaxSentences = n
		}
	}
	if cfg.MaxWords == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("MAX_WORDS"))); err == nil && n > 0 {
			cfg.MaxWords = n
		}
	}

	// Booleans only switch on; flags stay authoritative for switching off.
	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.EnablePDF, "ENABLE_PDF")
}
