package treebank

import (
	"sort"

	"github.com/lexicoord/semcore/internal/engine"
)

// BuildIndex scans sentences and aggregates one Pattern per (lemma, upos)
// pair observed as a governor of at least one argument relation.
func BuildIndex(sentences []Sentence) map[string]*Pattern {
	index := make(map[string]*Pattern)
	for _, sent := range sentences {
		byID := make(map[int]Token, len(sent.Tokens))
		for _, t := range sent.Tokens {
			byID[t.ID] = t
		}
		for _, gov := range sent.Tokens {
			var deps []Dependent
			for _, t := range sent.Tokens {
				if t.Head != gov.ID {
					continue
				}
				rank, ok := t.DepRel.IsArgument()
				if !ok {
					continue
				}
				deps = append(deps, Dependent{DepRel: t.DepRel, Head: t.Lemma, Rank: rank})
			}
			if len(deps) == 0 {
				continue
			}
			sortDependentsCanonically(deps)

			key := PatternKey(gov.Lemma, gov.UPos)
			p, ok := index[key]
			if !ok {
				p = &Pattern{Lemma: gov.Lemma, UPos: gov.UPos}
				index[key] = p
			}
			p.Frequency++
			rels := relNames(deps)
			if len(p.Relations) == 0 || len(rels) > len(p.Relations) {
				p.Relations = rels
				p.Dependents = deps
			}
		}
	}
	return index
}

// PatternKey is the index's internal map key for a (lemma, upos) pair. It is
// deliberately the same key space as SemanticSignature.key() with only
// Lemma and UPos set, so a corpus-built index and a live query's fallback
// variants address the same cache entries.
func PatternKey(lemma string, upos engine.UPos) string {
	return SemanticSignature{Lemma: lemma, UPos: upos}.key()
}

func relNames(deps []Dependent) []string {
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = d.DepRel.String()
	}
	return out
}

// sortDependentsCanonically orders by canonical rank (subjects < direct
// objects < indirect objects < obliques < clausal complements), then
// alphabetically within a rank, per §4.5.2.
func sortDependentsCanonically(deps []Dependent) {
	sort.SliceStable(deps, func(i, j int) bool {
		if deps[i].Rank != deps[j].Rank {
			return deps[i].Rank < deps[j].Rank
		}
		return deps[i].DepRel.String() < deps[j].DepRel.String()
	})
}
