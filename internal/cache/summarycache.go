package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// SummaryCache stores model-produced summaries keyed by model name and
// prompt digest, so re-running the same page against the same model answers
// from disk instead of the backend.
type SummaryCache struct {
	Dir string
}

type summaryEntry struct {
	Summary string    `json:"summary"`
	SavedAt time.Time `json:"saved_at"`
}

// KeyFrom builds a cache key from a model name and a prompt.
func KeyFrom(model string, prompt string) string {
	h := sha256.Sum256([]byte(model + "\n\n" + prompt))
	return hex.EncodeToString(h[:])
}

func (c *SummaryCache) ensureDir() error {
	if c == nil || c.Dir == "" {
		return errors.New("cache dir not configured")
	}
	return os.MkdirAll(c.Dir, 0o755)
}

func (c *SummaryCache) pathFor(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// Get returns the cached summary text for key if present. A hit refreshes
// the file mtime so age-based purging keeps warm entries.
func (c *SummaryCache) Get(_ context.Context, key string) (string, bool, error) {
	if err := c.ensureDir(); err != nil {
		return "", false, err
	}
	p := c.pathFor(key)
	b, err := os.ReadFile(p)
	if err != nil {
		return "", false, nil
	}
	var e summaryEntry
	if err := json.Unmarshal(b, &e); err != nil || e.Summary == "" {
		return "", false, nil
	}
	now := time.Now()
	_ = os.Chtimes(p, now, now)
	return e.Summary, true, nil
}

// Save writes a summary under key.
func (c *SummaryCache) Save(_ context.Context, key string, summary string) error {
	if err := c.ensureDir(); err != nil {
		return err
	}
	b, err := json.Marshal(summaryEntry{Summary: summary, SavedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return os.WriteFile(c.pathFor(key), b, 0o644)
}
