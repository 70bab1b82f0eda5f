package api

// SummarizeRequest is the POST /api/summarize body. PreferNeural defaults to
// whatever the server probe decided; setting it false forces the extractive
// path even when a model is available.
type SummarizeRequest struct {
	URL          string `json:"url"`
	PreferNeural *bool  `json:"preferNeural,omitempty"`
	MaxSentences int    `json:"maxSentences,omitempty"`
	MaxWords     int    `json:"maxWords,omitempty"`
}

// SummarizeResponse is the success payload. Method reports which summarizer
// produced the text; Sentences is present for extractive summaries only.
type SummarizeResponse struct {
	URL       string     `json:"url"`
	Title     string     `json:"title"`
	Article   string     `json:"article"`
	Summary   string     `json:"summary"`
	Method    string     `json:"method"`
	Sentences []Sentence `json:"sentences,omitempty"`
}

// Sentence is one selected summary sentence with its rank score.
type Sentence struct {
	Ordinal int     `json:"ordinal"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
}

// ErrorResponse carries the single human-readable reason for a failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the GET /healthz payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Neural  bool   `json:"neural"`
}
