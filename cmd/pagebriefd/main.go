package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagebrief/internal/api"
	"github.com/hyperifyio/pagebrief/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	_ = godotenv.Load()

	var (
		cfg        app.Config
		configPath string
	)

	flag.StringVar(&cfg.ListenAddr, "listen", app.DefaultListenAddr, "Address to serve the API on")
	flag.StringVar(&configPath, "config", os.Getenv("PAGEBRIEF_CONFIG"), "Path to a YAML or JSON config file")
	flag.IntVar(&cfg.MaxSentences, "max.sentences", app.DefaultMaxSentences, "Default maximum summary sentences")
	flag.IntVar(&cfg.MaxWords, "max.words", 0, "Default maximum summary words (0 disables)")
	flag.StringVar(&cfg.UserAgent, "fetch.ua", "", "Custom User-Agent for page fetches")
	flag.DurationVar(&cfg.FetchTimeout, "fetch.timeout", app.DefaultFetchTimeout, "Per-request fetch timeout")
	flag.StringVar(&cfg.LLMBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&cfg.LLMModel, "llm.model", "", "Model name; empty disables the abstractive path")
	flag.StringVar(&cfg.LLMAPIKey, "llm.key", "", "API key for the OpenAI-compatible server")
	flag.StringVar(&cfg.CacheDir, "cache.dir", app.DefaultCacheDir, "Cache directory path; empty disables caching")
	flag.DurationVar(&cfg.CacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge; 0 disables")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.Parse()

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

	if err := app.ValidateConfig(cfg, true); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("init app")
		os.Exit(1)
	}
	defer a.Close()

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, api.NewHandler(a))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		// No write timeout: a slow page plus a slow model can legitimately
		// take a while; the fetch and completion calls carry their own.
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.ListenAddr).
			Bool("neural", a.NeuralAvailable()).
			Str("version", app.BuildVersion).
			Msg("pagebriefd listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown incomplete")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			os.Exit(1)
		}
	}
}
