package extract

// Extractor is a minimal interface over content extraction so callers can
// swap readability tactics without changing the pipeline.
type Extractor interface {
	// Extract converts a raw page into an Article. Implementations must be
	// deterministic and free of side effects.
	Extract(doc Document) (Article, error)
}

// DensityExtractor extracts with the density heuristic in FromHTML using a
// fixed set of options.
type DensityExtractor struct {
	Options Options
}

func (e DensityExtractor) Extract(doc Document) (Article, error) {
	return FromHTML(doc, e.Options)
}
