package treebank

import "github.com/lexicoord/semcore/internal/engine"

// ThetaGridSource supplies a verb class's theta-role grid for a lemma, used
// as the synthesizer's first-choice source.
type ThetaGridSource interface {
	ThetaGridFor(lemma string) (roles []engine.ThetaRole, ok bool)
}

// FrameValenceSource supplies a frame's core-element count for a lemma, used
// as the synthesizer's second-choice source.
type FrameValenceSource interface {
	CoreElementCountFor(lemma string) (count int, ok bool)
}

// thetaRoleToDepRel approximates the canonical surface realization of a
// theta role as a dependency relation, for synthesizing a plausible pattern
// shape when no corpus observation exists.
var thetaRoleToDepRel = map[engine.ThetaRole]string{
	engine.ThetaAgent:       "nsubj",
	engine.ThetaExperiencer: "nsubj",
	engine.ThetaPatient:     "obj",
	engine.ThetaTheme:       "obj",
	engine.ThetaRecipient:   "iobj",
	engine.ThetaBenefactive: "obl",
	engine.ThetaInstrument:  "obl",
	engine.ThetaLocation:    "obl",
	engine.ThetaSource:      "obl",
	engine.ThetaGoal:        "obl",
}

// Synthesize produces a fallback Pattern for a lemma the corpus never
// observed, per §4.5.5's priority order: a verb class's theta grid, then a
// frame's valence structure, then a bare minimal subject+object default. The
// first source that yields anything wins.
func Synthesize(lemma string, upos engine.UPos, theta ThetaGridSource, frame FrameValenceSource) Pattern {
	if theta != nil {
		if roles, ok := theta.ThetaGridFor(lemma); ok && len(roles) > 0 {
			rels := dedupeStrings(mapRoles(roles))
			return Pattern{
				Lemma:     lemma,
				UPos:      upos,
				Relations: rels,
				Frequency: 0,
			}
		}
	}
	if frame != nil {
		if n, ok := frame.CoreElementCountFor(lemma); ok && n > 0 {
			rels := []string{"nsubj"}
			if n > 1 {
				rels = append(rels, "obj")
			}
			return Pattern{Lemma: lemma, UPos: upos, Relations: rels, Frequency: 0}
		}
	}
	return Pattern{Lemma: lemma, UPos: upos, Relations: []string{"nsubj", "obj"}, Frequency: 0}
}

func mapRoles(roles []engine.ThetaRole) []string {
	var out []string
	for _, r := range roles {
		if rel, ok := thetaRoleToDepRel[r]; ok {
			out = append(out, rel)
		}
	}
	if len(out) == 0 {
		return []string{"nsubj", "obj"}
	}
	return out
}

// CalculateSynthesisConfidence implements §4.5.5's formula: a base of 0.4,
// +0.2 when the synthesis drew on a verb class's theta grid or a frame's
// valence rather than the bare default (no count of class members or
// annotated lexical units is checked), +0.1 to +0.15 for a richer argument structure (more than two
// relations), +0.15 when the querying signature carried a non-lemma field
// (verb class id, frame id, or synset offset — meaning the caller narrowed
// the query beyond the bare word), capped at 0.95.
func CalculateSynthesisConfidence(relationCount int, highFrequencySource bool, signatureHasNonLemmaField bool) float64 {
	conf := 0.4
	if highFrequencySource {
		conf += 0.2
	}
	switch {
	case relationCount >= 4:
		conf += 0.15
	case relationCount == 3:
		conf += 0.1
	}
	if signatureHasNonLemmaField {
		conf += 0.15
	}
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}
