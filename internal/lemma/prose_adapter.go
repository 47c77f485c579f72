package lemma

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseAdapter implements Tokenizer and Lemmatizer on top of
// github.com/jdkato/prose/v2, the teacher's own NLP tokenizer dependency
// (see pkg/graph/processors/nlp.go). prose tokenizes and POS-tags but does
// not lemmatize; the lemmatization half here is a small suffix-stripping
// heuristic, clearly not a claim of parity with a real morphological
// analyzer — it exists only so the facade has a usable default.
type ProseAdapter struct{}

// NewProseAdapter constructs the default tokenizer/lemmatizer adapter.
func NewProseAdapter() *ProseAdapter { return &ProseAdapter{} }

// Tokenize implements Tokenizer using prose.NewDocument + doc.Tokens().
func (p *ProseAdapter) Tokenize(text string) ([]Word, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}
	words := make([]Word, 0, len(doc.Tokens()))
	cursor := 0
	for _, tok := range doc.Tokens() {
		idx := strings.Index(text[cursor:], tok.Text)
		if idx < 0 {
			// Token text was normalized by prose (e.g. smart quotes); fall
			// back to appending with no reliable offset rather than failing
			// the whole document.
			words = append(words, Word{Surface: tok.Text, Start: cursor, End: cursor, POSTag: tok.Tag})
			continue
		}
		start := cursor + idx
		end := start + len(tok.Text)
		words = append(words, Word{Surface: tok.Text, Start: start, End: end, POSTag: tok.Tag})
		cursor = end
	}
	return words, nil
}

var lemmaSuffixRules = []struct {
	suffix      string
	strip       int
	replacement string
}{
	{"ies", 3, "y"},
	{"ied", 3, "y"},
	{"ying", 4, "ie"},
	{"ing", 3, ""},
	{"ves", 3, "fe"},
	{"sses", 2, ""},
	{"es", 2, ""},
	{"ed", 2, ""},
	{"s", 1, ""},
}

// Lemmatize applies a small closed suffix-stripping table. An unchanged
// surface (already a base form) is reported with confidence 0.99; a
// transformed one with 0.7, reflecting the heuristic's lower reliability.
func (p *ProseAdapter) Lemmatize(surface string) (string, float64) {
	lower := strings.ToLower(surface)
	if len(lower) < 4 {
		return lower, 0.99
	}
	for _, rule := range lemmaSuffixRules {
		if strings.HasSuffix(lower, rule.suffix) && len(lower) > rule.strip+2 {
			base := lower[:len(lower)-rule.strip] + rule.replacement
			return base, 0.7
		}
	}
	return lower, 0.99
}
