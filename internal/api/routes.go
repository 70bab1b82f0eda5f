package api

import "net/http"

// RegisterRoutes mounts the API on mux. Method-qualified patterns make the
// mux answer 405 for wrong methods on its own.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/summarize", h.HandleSummarize)
	mux.HandleFunc("GET /healthz", h.HandleHealthz)
}
