package coordinator

import (
	"strings"

	"github.com/lexicoord/semcore/internal/engine"
)

// guessThreshold is the minimum confidence a suffix rule must report before
// the guessed POS is trusted enough to skip checking the remaining
// candidates. Only guessPOS reads it; the wordnet engine's own POS scan does
// not use the suffix guess.
const guessThreshold = 0.7

type suffixRule struct {
	suffix     string
	pos        engine.UPos
	confidence float64
}

// suffixRules lists a longer suffix before any shorter suffix it ends with
// (e.g. "-ation" before "-tion", "-ously" before "-ly"), so the more specific
// rule is tried first.
var suffixRules = []suffixRule{
	{"ization", engine.UPosNoun, 0.9},
	{"ation", engine.UPosNoun, 0.85},
	{"ement", engine.UPosNoun, 0.8},
	{"ness", engine.UPosNoun, 0.85},
	{"ment", engine.UPosNoun, 0.75},
	{"tion", engine.UPosNoun, 0.8},
	{"sion", engine.UPosNoun, 0.8},
	{"ity", engine.UPosNoun, 0.75},
	{"ance", engine.UPosNoun, 0.7},
	{"ence", engine.UPosNoun, 0.7},
	{"ship", engine.UPosNoun, 0.75},
	{"hood", engine.UPosNoun, 0.75},
	{"ously", engine.UPosAdv, 0.85},
	{"ally", engine.UPosAdv, 0.8},
	{"ly", engine.UPosAdv, 0.7},
	{"ize", engine.UPosVerb, 0.7},
	{"ise", engine.UPosVerb, 0.7},
	{"ify", engine.UPosVerb, 0.75},
	{"ating", engine.UPosVerb, 0.75},
	{"ing", engine.UPosVerb, 0.65},
	{"ed", engine.UPosVerb, 0.6},
	{"ious", engine.UPosAdj, 0.75},
	{"eous", engine.UPosAdj, 0.75},
	{"ful", engine.UPosAdj, 0.75},
	{"ous", engine.UPosAdj, 0.7},
	{"ive", engine.UPosAdj, 0.7},
	{"able", engine.UPosAdj, 0.7},
	{"ible", engine.UPosAdj, 0.7},
	{"al", engine.UPosAdj, 0.6},
	{"ic", engine.UPosAdj, 0.6},
}

// guessPOS applies the closed suffix-rule table to lemma, returning the
// highest-confidence match. Words matching nothing default to UPosNoun at
// low confidence, the open-class fallback.
func guessPOS(lemma string) (engine.UPos, float64) {
	lower := strings.ToLower(lemma)
	bestPOS := engine.UPosNoun
	bestConf := 0.3
	for _, r := range suffixRules {
		if strings.HasSuffix(lower, r.suffix) && r.confidence > bestConf {
			bestPOS = r.pos
			bestConf = r.confidence
			if bestConf >= guessThreshold {
				break
			}
		}
	}
	return bestPOS, bestConf
}
