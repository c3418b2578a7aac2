package matcher

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"novabot/internal/domain"
)

// BatchResult is the outcome of one query in MatchAll.
type BatchResult struct {
	Query string
	Match domain.Match
	Err   error
}

// MatchAll answers queries concurrently on a worker pool. Results keep the
// order of queries. Each query computes its own vectors; only the corpus is
// shared. Queries not yet submitted when ctx is done report ctx.Err().
func (m *Matcher) MatchAll(ctx context.Context, queries []string, corpus domain.Corpus) ([]BatchResult, error) {
	if corpus.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	results := make([]BatchResult, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(min(m.workers, len(queries)))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, q := range queries {
		results[i].Query = q
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		wg.Add(1)
		i, q := i, q
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i].Match, results[i].Err = m.Best(q, corpus)
		}); err != nil {
			wg.Done()
			results[i].Err = err
		}
	}
	wg.Wait()

	m.logger.Debug("batch matched", "queries", len(queries), "workers", m.workers)
	return results, nil
}
