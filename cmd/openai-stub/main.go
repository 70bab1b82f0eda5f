// openai-stub is a minimal OpenAI-compatible server used to exercise the
// abstractive path in development and integration tests without a real model.
// It lists one model and answers summary requests with the first sentences of
// the submitted article.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		sys, user := "", ""
		if len(req.Messages) > 0 {
			sys = req.Messages[0].Content
		}
		if len(req.Messages) >= 2 {
			user = req.Messages[len(req.Messages)-1].Content
		}
		if !strings.Contains(sys, "summarizer") {
			http.Error(w, "unexpected system prompt", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": stubSummary(user)}},
			},
		})
	})

	log.Printf("openai-stub listening on %s (model=%s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

// stubSummary returns the first two sentences of the article section of the
// prompt, which is deterministic and plausibly summary-shaped.
func stubSummary(user string) string {
	body := user
	if _, after, ok := strings.Cut(user, "Article:"); ok {
		body = after
	}
	body = strings.Join(strings.Fields(body), " ")
	var out []string
	for _, part := range strings.SplitAfter(body, ". ") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "The article has no content."
	}
	return strings.Join(out, " ")
}
