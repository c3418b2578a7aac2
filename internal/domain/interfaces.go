package domain

import (
	"encoding/hex"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// QAEntry is a single question and answer pair of the FAQ corpus.
type QAEntry struct {
	Question string
	Answer   string
}

// Valid reports whether both the question and the answer carry text.
func (e QAEntry) Valid() bool {
	return strings.TrimSpace(e.Question) != "" && strings.TrimSpace(e.Answer) != ""
}

// Corpus is an ordered, read-only collection of QA entries.
// Entry i's question always pairs with entry i's answer.
type Corpus struct {
	entries     []QAEntry
	fingerprint string
}

// NewCorpus builds a corpus from entries in order, dropping any entry with an
// empty question or answer.
func NewCorpus(entries []QAEntry) Corpus {
	kept := make([]QAEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Valid() {
			continue
		}
		kept = append(kept, e)
	}
	return Corpus{entries: kept, fingerprint: fingerprint(kept)}
}

// Len returns the number of entries.
func (c Corpus) Len() int { return len(c.entries) }

// Entry returns the entry at index i.
func (c Corpus) Entry(i int) QAEntry { return c.entries[i] }

// Entries returns a copy of all entries.
func (c Corpus) Entries() []QAEntry {
	out := make([]QAEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Questions returns the questions in corpus order.
func (c Corpus) Questions() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Question
	}
	return out
}

// Fingerprint identifies the corpus content. Equal corpora share a fingerprint.
func (c Corpus) Fingerprint() string {
	if c.fingerprint == "" {
		return fingerprint(c.entries)
	}
	return c.fingerprint
}

func fingerprint(entries []QAEntry) string {
	h, _ := blake2b.New(8, nil)
	for _, e := range entries {
		h.Write([]byte(e.Question))
		h.Write([]byte{0})
		h.Write([]byte(e.Answer))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Match is the outcome of matching one query against a corpus.
type Match struct {
	Index int
	Score float64
	Entry QAEntry
}
