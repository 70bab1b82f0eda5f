// Package api exposes the pipeline over HTTP. One endpoint does the work;
// status codes separate caller mistakes (400), pages without extractable
// content (422) and upstream fetch failures (502).
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagebrief/internal/app"
	"github.com/hyperifyio/pagebrief/internal/extract"
)

// maxRequestBytes caps the request body; summarize requests are tiny.
const maxRequestBytes = 1 << 20

type Handler struct {
	app *app.App
}

func NewHandler(a *app.App) *Handler {
	return &Handler{app: a}
}

func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req SummarizeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	if u, err := url.Parse(rawURL); err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		writeError(w, http.StatusBadRequest, "url must be absolute http or https")
		return
	}
	if req.MaxSentences < 0 || req.MaxWords < 0 {
		writeError(w, http.StatusBadRequest, "summary budgets must not be negative")
		return
	}

	opts := app.ProcessOptions{
		PreferNeural: h.app.NeuralAvailable(),
		MaxSentences: req.MaxSentences,
		MaxWords:     req.MaxWords,
	}
	if req.PreferNeural != nil {
		opts.PreferNeural = *req.PreferNeural && h.app.NeuralAvailable()
	}

	res, err := h.app.ProcessURL(r.Context(), rawURL, opts)
	if err != nil {
		var fe *app.FetchError
		switch {
		case errors.As(err, &fe):
			log.Warn().Err(err).Str("url", rawURL).Msg("upstream fetch failed")
			writeError(w, http.StatusBadGateway, "failed to fetch the page")
		case errors.Is(err, extract.ErrNoContent):
			writeError(w, http.StatusUnprocessableEntity, "no extractable content on the page")
		default:
			log.Error().Err(err).Str("url", rawURL).Msg("summarize failed")
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	// Whitespace-only markup extracts to an empty article; that is still a
	// page with nothing to summarize as far as the caller is concerned.
	if len(res.Article.Paragraphs) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no extractable content on the page")
		return
	}

	resp := SummarizeResponse{
		URL:     rawURL,
		Title:   res.Article.Title,
		Article: res.Article.Text(),
		Summary: res.Summary.Text,
		Method:  res.Summary.Method,
	}
	for _, p := range res.Summary.Sentences {
		resp.Sentences = append(resp.Sentences, Sentence{Ordinal: p.Ordinal, Text: p.Text, Score: p.Score})
	}
	log.Info().
		Str("url", rawURL).
		Str("method", resp.Method).
		Int("sentences", len(resp.Sentences)).
		Msg("page summarized")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: app.BuildVersion,
		Commit:  app.BuildCommit,
		Neural:  h.app.NeuralAvailable(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, ErrorResponse{Error: reason})
}
