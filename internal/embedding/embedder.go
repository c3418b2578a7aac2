package embedding

// Embedder converts normalized text into a numeric vector representation.
// Implementations require a preparation phase over the document set before
// Embed is called.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Factory builds a fresh, unprepared Embedder. Matching with per-call IDF
// needs one per query.
type Factory func() Embedder
