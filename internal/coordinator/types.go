// Package coordinator fans a single word or a batch of words out across the
// four lexical engines in parallel, merges their confidences, and
// deduplicates repeated (lemma, POS) pairs within a batch.
package coordinator

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/lexicoord/semcore/internal/engine"
	"github.com/lexicoord/semcore/internal/framenet"
	"github.com/lexicoord/semcore/internal/treebank"
	"github.com/lexicoord/semcore/internal/verbnet"
	"github.com/lexicoord/semcore/internal/wordnet"
)

// WordAnalysis is one word's combined result across every engine consulted
// for it.
type WordAnalysis struct {
	Lemma   string
	POS     engine.UPos
	Guessed bool // true when POS was not supplied and was suffix-guessed

	Verbnet  *verbnet.VerbnetAnalysis
	Framenet *framenet.FramenetAnalysis
	Wordnet  *wordnet.WordnetAnalysis
	Treebank *treebank.TreebankAnalysis

	Sources    mapset.Set[string]
	Confidence float64
}

// multiEngineBonusFactor is the multiplier applied once when two or more
// engines contributed to a word's analysis, decided in favor of rewarding
// cross-engine agreement over any single engine's raw confidence.
const multiEngineBonusFactor = 1.05

// mergeConfidence takes the maximum of the per-engine confidences (the
// source that pinned down a sense most strongly wins) and applies the
// cross-engine agreement bonus when two or more engines contributed,
// clamped to [0, 1].
func mergeConfidence(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	if len(values) >= 2 {
		max *= multiEngineBonusFactor
	}
	if max > 1 {
		max = 1
	}
	return max
}

// compositeKey is the batch-dedup key: a (lemma, pos) pair.
func compositeKey(lemma string, pos engine.UPos) string {
	return lemma + "\x1f" + pos.String()
}
