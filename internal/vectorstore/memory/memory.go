package memory

import (
	"errors"
	"sync"

	"novabot/internal/domain"
)

// ErrEmpty is returned by Best when the store holds no vectors.
var ErrEmpty = errors.New("vector store is empty")

// Storage is a simple in-memory vector store using brute-force cosine similarity.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	entries   []domain.QAEntry
}

func NewStorage() *Storage { return &Storage{} }

// Init resets the store for vectors of the given dimension. A zero dimension
// is valid when the vocabulary is empty.
func (s *Storage) Init(dimension int) error {
	if dimension < 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.entries = nil
	return nil
}

func (s *Storage) Upsert(entries []domain.QAEntry, vectors [][]float64) error {
	if len(entries) != len(vectors) {
		return errors.New("entries and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.entries = append(s.entries, entries...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Best returns the entry whose vector is most similar to vector. Vectors are
// assumed L2-normalized, so the dot product is the cosine. The scan keeps the
// first index on ties, so an all-zero score list selects index 0.
func (s *Storage) Best(vector []float64) (domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.vectors) == 0 {
		return domain.Match{}, ErrEmpty
	}
	best, bestScore := 0, dot(s.vectors[0], vector)
	for i := 1; i < len(s.vectors); i++ {
		if score := dot(s.vectors[i], vector); score > bestScore {
			best, bestScore = i, score
		}
	}
	return domain.Match{Index: best, Score: bestScore, Entry: s.entries[best]}, nil
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.entries = nil
	return nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
