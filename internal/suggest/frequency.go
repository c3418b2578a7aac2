// Package suggest picks representative FAQ questions to offer as starter
// prompts.
package suggest

import (
	"math"
	"sort"

	"novabot/internal/domain"
	"novabot/internal/textnorm"
)

// DefaultCount is the number of suggestions returned when n is not positive.
const DefaultCount = 4

// FrequencySuggester ranks questions by how many corpus-frequent terms they
// carry (stop words filtered).
type FrequencySuggester struct {
	stopwords textnorm.StopWords
}

// NewFrequencySuggester creates a frequency-based question ranker.
func NewFrequencySuggester(stop textnorm.StopWords) *FrequencySuggester {
	if stop == nil {
		stop = textnorm.EnglishStopWords()
	}
	return &FrequencySuggester{stopwords: stop}
}

// Suggest returns up to n questions of corpus, in corpus order.
func (s *FrequencySuggester) Suggest(corpus domain.Corpus, n int) []string {
	if n <= 0 {
		n = DefaultCount
	}
	questions := corpus.Questions()
	if len(questions) == 0 {
		return nil
	}

	tokens := make([][]string, len(questions))
	freq := map[string]float64{}
	for i, q := range questions {
		tokens[i] = textnorm.Tokenize(textnorm.Normalize(q), s.stopwords)
		for _, tok := range tokens[i] {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		maxF = math.Max(maxF, v)
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(questions))
	for i, toks := range tokens {
		score := 0.0
		for _, tok := range toks {
			score += freq[tok]
		}
		// long questions would otherwise win on term count alone
		if l := float64(len(toks)); l > 0 {
			score /= math.Sqrt(l)
		}
		scores[i] = pair{i, score}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	n = min(n, len(scores))

	selected := make([]int, n)
	for i := range n {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, n)
	for i, idx := range selected {
		out[i] = questions[idx]
	}
	return out
}
