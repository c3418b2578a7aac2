package corpus

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"novabot/internal/domain"
)

const (
	questionMarker = "Q:"
	answerMarker   = "A:"
)

// categoryMarkers open the decorative section lines of the NovaBank dataset.
var categoryMarkers = []string{"🏦", "💸", "💳", "📄", "🏠", "🛡", "📊"}

type parseState int

const (
	seekingQuestion parseState = iota
	accumulatingAnswer
)

// parser is a line-oriented state machine over the corpus text format.
// Paragraphs are separated by blank lines and yield at most one entry.
type parser struct {
	state    parseState
	question string
	answer   []string
	entries  []domain.QAEntry
}

// Parse turns source text into a corpus. Paragraphs without both a question
// and an answer are skipped. Parsing stops at a line longer than
// maxLineBytes; entries completed before it are kept.
func Parse(text string) domain.Corpus {
	c, err := ParseReader(strings.NewReader(text))
	if err != nil {
		slog.Default().Warn("corpus text truncated", "err", err, "entries", c.Len())
	}
	return c
}

const maxLineBytes = 1024 * 1024

// ParseReader parses corpus text from r. On a read error it returns the
// entries completed so far together with the error.
func ParseReader(r io.Reader) (domain.Corpus, error) {
	p := &parser{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		p.line(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return domain.NewCorpus(p.entries), fmt.Errorf("read corpus: %w", err)
	}
	p.endParagraph()
	return domain.NewCorpus(p.entries), nil
}

func (p *parser) line(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		p.endParagraph()
		return
	}
	if text, ok := cutMarker(line, questionMarker); ok {
		p.question = text
		p.state = accumulatingAnswer
		return
	}
	if p.state == seekingQuestion || isSectionHeader(line) {
		return
	}
	if text, ok := cutMarker(line, answerMarker); ok {
		line = text
	}
	if line != "" {
		p.answer = append(p.answer, line)
	}
}

func (p *parser) endParagraph() {
	if p.state == accumulatingAnswer && p.question != "" && len(p.answer) > 0 {
		p.entries = append(p.entries, domain.QAEntry{
			Question: p.question,
			Answer:   strings.Join(p.answer, " "),
		})
	}
	p.state = seekingQuestion
	p.question = ""
	p.answer = nil
}

func cutMarker(line, marker string) (string, bool) {
	rest, ok := strings.CutPrefix(line, marker)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// isSectionHeader matches category lines such as "🏦 GENERAL BANK OVERVIEW".
// Any other line inside an answer is a continuation.
func isSectionHeader(line string) bool {
	for _, m := range categoryMarkers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}
