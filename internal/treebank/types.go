// Package treebank implements the dependency-pattern engine: CoNLL-U
// parsing, canonical argument-pattern indexing, and pattern synthesis for
// lemmas the loaded corpus never observed.
package treebank

import "github.com/lexicoord/semcore/internal/engine"

// Token is one CoNLL-U line.
type Token struct {
	ID      int
	Form    string
	Lemma   string
	UPos    engine.UPos
	XPos    string
	Feats   engine.MorphFeatures
	Head    int // 0 means the token is the sentence root
	DepRel  engine.DepRel
	Deps    string
	Misc    string
}

// Sentence is one parsed CoNLL-U block.
type Sentence struct {
	ID     string // from the "# sent_id =" comment, if present
	Text   string // from the "# text =" comment, if present
	Tokens []Token
}

// Dependent pairs a governing token's argument slot with its filler head.
type Dependent struct {
	DepRel engine.DepRel
	Head   string // lemma of the dependent token
	Rank   int
}

// Pattern is one observed argument structure for a lemma: the canonically
// ordered list of argument relations it was seen taking, with how often.
type Pattern struct {
	Lemma      string
	UPos       engine.UPos
	Relations  []string // canonical deprel order, e.g. ["nsubj", "obj"]
	Dependents []Dependent
	Frequency  int
}

// SemanticSignature is the composite key the pattern index is queried by.
// Fields are blanked in a fixed priority order (see Variants) when
// an exact-signature lookup misses.
type SemanticSignature struct {
	Lemma         string
	UPos          engine.UPos
	VerbClassID   string
	FrameID       string
	SynsetOffset  string
}

// TreebankAnalysis is the output of analyzing one word (optionally with a
// signature) against the loaded pattern index.
type TreebankAnalysis struct {
	Lemma       string
	Patterns    []Pattern
	Synthesized bool

	// FromCache reports whether Patterns[0] came from an adaptive-cache hit
	// rather than fresh synthesis, per §4.5.6.
	FromCache bool
	// ProcessingTimeUs is PerformAnalysis's own wall-clock cost in
	// microseconds, per §4.5.6 (distinct from the substrate's end-to-end
	// AnalyzeDuration, which also covers cache-probe and confidence scoring).
	ProcessingTimeUs int64
}
