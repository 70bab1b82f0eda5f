// Package rank scores sentences by mutual similarity using a damped power
// iteration over the sentence graph. Sentences that share vocabulary with
// many other sentences rank highest; the result drives extractive summary
// selection.
package rank

import (
	"math"
	"sort"

	"github.com/hyperifyio/pagebrief/internal/tokenize"
)

// Options tunes the power iteration. Zero values select the defaults.
type Options struct {
	// Damping is the probability of following a graph edge rather than
	// teleporting. Defaults to 0.85.
	Damping float64
	// Tolerance stops the iteration once the largest per-sentence score
	// change drops below it. Defaults to 1e-4.
	Tolerance float64
	// MaxIterations caps the iteration count; the scores reached at the cap
	// are used as-is. Defaults to 100.
	MaxIterations int
}

func (o Options) withDefaults() Options {
	if o.Damping == 0 {
		o.Damping = 0.85
	}
	if o.Tolerance == 0 {
		o.Tolerance = 1e-4
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = 100
	}
	return o
}

// Ranked pairs a sentence with its converged centrality score.
type Ranked struct {
	Sentence tokenize.Sentence
	Score    float64
}

// Sentences ranks the given sentences and returns them ordered by descending
// score, ties broken by original position. Empty input yields nil.
func Sentences(sents []tokenize.Sentence, opts Options) []Ranked {
	if len(sents) == 0 {
		return nil
	}
	opts = opts.withDefaults()
	weights := buildWeights(sents)
	scores := powerIterate(weights, opts)
	out := make([]Ranked, len(sents))
	for i, s := range sents {
		out[i] = Ranked{Sentence: s, Score: scores[i]}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return out[a].Sentence.Ordinal < out[b].Sentence.Ordinal
	})
	return out
}

// Similarity measures token overlap between two sentences, normalized by the
// log of their set sizes so long sentences do not dominate. It returns 0 when
// either set is empty and is symmetric in its arguments.
func Similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	common := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			common++
		}
	}
	if common == 0 {
		return 0
	}
	return float64(common) / (math.Log(1+float64(len(a))) + math.Log(1+float64(len(b))))
}

// buildWeights fills the symmetric edge-weight matrix. The diagonal stays
// zero: a sentence never votes for itself.
func buildWeights(sents []tokenize.Sentence) [][]float64 {
	n := len(sents)
	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := Similarity(sents[i].Tokens, sents[j].Tokens)
			weights[i][j] = w
			weights[j][i] = w
		}
	}
	return weights
}

func powerIterate(weights [][]float64, opts Options) []float64 {
	n := len(weights)
	outSum := make([]float64, n)
	for j := range weights {
		for _, w := range weights[j] {
			outSum[j] += w
		}
	}
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}
	base := (1 - opts.Damping) / float64(n)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		next := make([]float64, n)
		var delta float64
		for i := 0; i < n; i++ {
			// A sentence with no edges takes no part in the walk and keeps
			// its share; a lone sentence therefore scores exactly 1.
			if outSum[i] == 0 {
				next[i] = scores[i]
				continue
			}
			var sum float64
			for j := 0; j < n; j++ {
				if w := weights[j][i]; w != 0 {
					sum += w / outSum[j] * scores[j]
				}
			}
			next[i] = base + opts.Damping*sum
			if d := math.Abs(next[i] - scores[i]); d > delta {
				delta = d
			}
		}
		scores = next
		if delta < opts.Tolerance {
			break
		}
	}
	return scores
}
