// Package textnorm turns corpus questions and user queries into a canonical
// comparable form and splits that form into terms.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and removes every character that is not an ASCII
// letter, ASCII digit or whitespace. Whitespace, including Unicode spaces such
// as U+00A0, is kept as is.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize splits text on runs of whitespace and drops stop words.
// The input is expected to be normalized already.
func Tokenize(text string, stop StopWords) []string {
	raw := strings.Fields(strings.ToLower(text))
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if stop.Contains(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
