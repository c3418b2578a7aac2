package vectorstore

import "novabot/internal/domain"

// Storage holds corpus question vectors and finds the closest one to a query.
type Storage interface {
	Init(dimension int) error
	Upsert(entries []domain.QAEntry, vectors [][]float64) error
	Best(vector []float64) (domain.Match, error)
	Clear() error
}
