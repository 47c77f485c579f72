package engine

import (
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// PartOfSpeech is the closed set of word classes the synonym-graph database
// indexes by. Surface POS tags from an external tokenizer are a superset;
// ToPartOfSpeech maps them down deterministically.
type PartOfSpeech int

const (
	POSUnknown PartOfSpeech = iota
	POSNoun
	POSVerb
	POSAdjective
	POSAdverb
	POSAdjectiveSatellite
)

func (p PartOfSpeech) String() string {
	switch p {
	case POSNoun:
		return "Noun"
	case POSVerb:
		return "Verb"
	case POSAdjective:
		return "Adjective"
	case POSAdverb:
		return "Adverb"
	case POSAdjectiveSatellite:
		return "AdjectiveSatellite"
	default:
		return "Unknown"
	}
}

// AllWordnetPOS is the fixed iteration order used when a synonym-graph query
// has no known POS and must try every sense type.
var AllWordnetPOS = []PartOfSpeech{POSNoun, POSVerb, POSAdjective, POSAdverb}

// UPos is the 17-value Universal Dependencies coarse part-of-speech tagset
// carried on every CoNLL-U token.
type UPos int

const (
	UPosX UPos = iota
	UPosAdj
	UPosAdp
	UPosAdv
	UPosAux
	UPosCconj
	UPosDet
	UPosIntj
	UPosNoun
	UPosNum
	UPosPart
	UPosPron
	UPosPropn
	UPosPunct
	UPosSconj
	UPosSym
	UPosVerb
)

var uposFromString = map[string]UPos{
	"ADJ": UPosAdj, "ADP": UPosAdp, "ADV": UPosAdv, "AUX": UPosAux,
	"CCONJ": UPosCconj, "DET": UPosDet, "INTJ": UPosIntj, "NOUN": UPosNoun,
	"NUM": UPosNum, "PART": UPosPart, "PRON": UPosPron, "PROPN": UPosPropn,
	"PUNCT": UPosPunct, "SCONJ": UPosSconj, "SYM": UPosSym, "VERB": UPosVerb,
	"X": UPosX,
}

// ParseUPos maps a raw CoNLL-U upos field to the closed enum, defaulting to X.
func ParseUPos(s string) UPos {
	if v, ok := uposFromString[strings.ToUpper(s)]; ok {
		return v
	}
	return UPosX
}

var uposToString = func() map[UPos]string {
	m := make(map[UPos]string, len(uposFromString))
	for s, u := range uposFromString {
		m[u] = s
	}
	return m
}()

// String returns the upper-case Universal Dependencies tag, e.g. "VERB".
func (u UPos) String() string {
	if s, ok := uposToString[u]; ok {
		return s
	}
	return "X"
}

// IsContentPOS reports whether upos is a POS the frame engine should be
// queried for: verbs, auxiliaries, nouns, proper nouns and adjectives.
func (u UPos) IsContentPOS() bool {
	switch u {
	case UPosVerb, UPosAux, UPosNoun, UPosPropn, UPosAdj:
		return true
	default:
		return false
	}
}

// IsVerbLike reports whether upos should still drive the verb-class engine.
func (u UPos) IsVerbLike() bool {
	return u == UPosVerb || u == UPosAux
}

// ToWordnetPOS maps a surface UPos to the closed synonym-graph POS set, or
// POSUnknown (treated as "no wordnet query") for function words.
func (u UPos) ToWordnetPOS() (PartOfSpeech, bool) {
	switch u {
	case UPosNoun, UPosPropn:
		return POSNoun, true
	case UPosVerb, UPosAux:
		return POSVerb, true
	case UPosAdj:
		return POSAdjective, true
	case UPosAdv:
		return POSAdverb, true
	default:
		return POSUnknown, false
	}
}

// ThetaRole is the closed, exactly-19-value inventory of semantic roles a
// predicate may assign to an argument. An unknown role string is a parse
// error, never silently coerced.
type ThetaRole int

const (
	ThetaAgent ThetaRole = iota
	ThetaPatient
	ThetaTheme
	ThetaExperiencer
	ThetaRecipient
	ThetaBenefactive
	ThetaInstrument
	ThetaComitative
	ThetaLocation
	ThetaSource
	ThetaGoal
	ThetaDirection
	ThetaTemporal
	ThetaFrequency
	ThetaMeasure
	ThetaCause
	ThetaManner
	ThetaControlledSubject
	ThetaStimulus
)

var thetaRoleNames = map[string]ThetaRole{
	"agent": ThetaAgent, "patient": ThetaPatient, "theme": ThetaTheme,
	"experiencer": ThetaExperiencer, "recipient": ThetaRecipient,
	"benefactive": ThetaBenefactive, "instrument": ThetaInstrument,
	"comitative": ThetaComitative, "location": ThetaLocation, "source": ThetaSource,
	"goal": ThetaGoal, "direction": ThetaDirection, "temporal": ThetaTemporal,
	"frequency": ThetaFrequency, "measure": ThetaMeasure, "cause": ThetaCause,
	"manner": ThetaManner, "controlledsubject": ThetaControlledSubject,
	"stimulus": ThetaStimulus,
}

var thetaRoleStrings = func() map[ThetaRole]string {
	m := make(map[ThetaRole]string, len(thetaRoleNames))
	for s, r := range thetaRoleNames {
		m[r] = s
	}
	return m
}()

// ParseThetaRole parses the closed theta-role inventory; an unrecognized
// value is a ParseError, per §3.3's invariant.
func ParseThetaRole(s string) (ThetaRole, error) {
	if r, ok := thetaRoleNames[strings.ToLower(s)]; ok {
		return r, nil
	}
	return 0, Parse("verbnet", Location{}, errUnknownThetaRole(s))
}

func (r ThetaRole) String() string {
	if s, ok := thetaRoleStrings[r]; ok {
		return s
	}
	return "unknown"
}

// IsCoreArgument reports whether role_type is one of the canonical core
// arguments (Agent, Patient, Theme, Experiencer, Recipient).
func (r ThetaRole) IsCoreArgument() bool {
	switch r {
	case ThetaAgent, ThetaPatient, ThetaTheme, ThetaExperiencer, ThetaRecipient:
		return true
	default:
		return false
	}
}

type thetaRoleErr string

func (e thetaRoleErr) Error() string { return "unknown theta role: " + string(e) }

func errUnknownThetaRole(s string) error { return thetaRoleErr(s) }

// MorphFeatures is the Universal-Dependencies-style feature bundle carried on
// every token, surfaced read-only on the facade's per-token output.
type MorphFeatures struct {
	Person        string
	Number        string
	Gender        string
	Animacy       string
	Case          string
	Definiteness  string
	Tense         string
	Aspect        string
	Mood          string
	Voice         string
	Degree        string
	VerbForm      string
	RawFeatures   string
}

// ParseMorphFeatures splits a CoNLL-U feats field ("Case=Nom|Number=Sing")
// into the closed MorphFeatures fields, keeping anything unrecognized in
// RawFeatures.
func ParseMorphFeatures(feats string) MorphFeatures {
	m := MorphFeatures{RawFeatures: feats}
	if feats == "" || feats == "_" {
		return m
	}
	for _, pair := range strings.Split(feats, "|") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "Person":
			m.Person = kv[1]
		case "Number":
			m.Number = kv[1]
		case "Gender":
			m.Gender = kv[1]
		case "Animacy":
			m.Animacy = kv[1]
		case "Case":
			m.Case = kv[1]
		case "Definite":
			m.Definiteness = kv[1]
		case "Tense":
			m.Tense = kv[1]
		case "Aspect":
			m.Aspect = kv[1]
		case "Mood":
			m.Mood = kv[1]
		case "Voice":
			m.Voice = kv[1]
		case "Degree":
			m.Degree = kv[1]
		case "VerbForm":
			m.VerbForm = kv[1]
		}
	}
	return m
}

// DepRel is the Universal Dependencies relation label, a closed set with an
// Other catch-all for anything this list does not name explicitly.
type DepRel struct {
	known string // empty when Other holds the value
	other string
}

var knownDepRels = map[string]bool{
	"nsubj": true, "nsubj:pass": true, "obj": true, "iobj": true, "obl": true,
	"obl:tmod": true, "obl:agent": true, "xcomp": true, "ccomp": true,
	"csubj": true, "csubj:pass": true, "advcl": true, "advmod": true,
	"amod": true, "acl": true, "acl:relcl": true, "appos": true, "aux": true,
	"aux:pass": true, "case": true, "cc": true, "cc:preconj": true, "clf": true,
	"compound": true, "conj": true, "cop": true, "dep": true, "det": true,
	"discourse": true, "dislocated": true, "expl": true, "fixed": true,
	"flat": true, "goeswith": true, "list": true, "mark": true, "nmod": true,
	"nummod": true, "orphan": true, "parataxis": true, "punct": true,
	"reparandum": true, "root": true, "vocative": true,
}

// ParseDepRel lower-cases s and classifies it; unrecognized labels are kept
// verbatim under Other, per the design note permitting a catch-all only for
// dependency relations.
func ParseDepRel(s string) DepRel {
	l := strings.ToLower(s)
	if knownDepRels[l] {
		return DepRel{known: l}
	}
	return DepRel{other: l}
}

// String returns the UD relation label, known or otherwise.
func (d DepRel) String() string {
	if d.known != "" {
		return d.known
	}
	return d.other
}

// IsRoot reports whether this relation is the sentence-root marker.
func (d DepRel) IsRoot() bool { return d.known == "root" }

// EncodeMsgpack implements msgpack.CustomEncoder so DepRel's unexported
// fields survive a binary cache round-trip: it is encoded as its plain
// relation-label string and reparsed with ParseDepRel on decode.
func (d DepRel) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(d.String())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (d *DepRel) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	*d = ParseDepRel(s)
	return nil
}

// argRelRank is the canonical deprel-rank used by the pattern indexer:
// subjects < direct objects < indirect objects < obliques < clausal
// complements, then alphabetical within rank (§4.5.2).
var argRelRank = map[string]int{
	"nsubj": 0, "nsubj:pass": 0,
	"obj": 1,
	"iobj": 2,
	"obl": 3, "obl:tmod": 3, "obl:agent": 3,
	"xcomp": 4, "ccomp": 4,
}

// IsArgument reports whether this relation contributes to a dependency
// pattern, and returns its canonical rank for ordering.
func (d DepRel) IsArgument() (rank int, ok bool) {
	r, ok := argRelRank[d.String()]
	return r, ok
}
