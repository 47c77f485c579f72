package facade

import "github.com/lexicoord/semcore/internal/engine"

// pennToUPos maps the Penn Treebank tags prose.v2 emits to the closed UD
// upos enum, following the published Universal Dependencies Penn-to-UD
// mapping table.
var pennToUPos = map[string]engine.UPos{
	"CC": engine.UPosCconj, "CD": engine.UPosNum, "DT": engine.UPosDet,
	"EX": engine.UPosPron, "FW": engine.UPosX, "IN": engine.UPosAdp,
	"JJ": engine.UPosAdj, "JJR": engine.UPosAdj, "JJS": engine.UPosAdj,
	"LS": engine.UPosX, "MD": engine.UPosAux, "NN": engine.UPosNoun,
	"NNS": engine.UPosNoun, "NNP": engine.UPosPropn, "NNPS": engine.UPosPropn,
	"PDT": engine.UPosDet, "POS": engine.UPosPart, "PRP": engine.UPosPron,
	"PRP$": engine.UPosPron, "RB": engine.UPosAdv, "RBR": engine.UPosAdv,
	"RBS": engine.UPosAdv, "RP": engine.UPosPart, "SYM": engine.UPosSym,
	"TO": engine.UPosPart, "UH": engine.UPosIntj, "VB": engine.UPosVerb,
	"VBD": engine.UPosVerb, "VBG": engine.UPosVerb, "VBN": engine.UPosVerb,
	"VBP": engine.UPosVerb, "VBZ": engine.UPosVerb, "WDT": engine.UPosDet,
	"WP": engine.UPosPron, "WP$": engine.UPosPron, "WRB": engine.UPosAdv,
	".": engine.UPosPunct, ",": engine.UPosPunct, ":": engine.UPosPunct,
	"``": engine.UPosPunct, "''": engine.UPosPunct,
}

// PennToUPos maps a Penn Treebank tag to the closed UD upos set, defaulting
// to UPosX for anything unrecognized.
func PennToUPos(tag string) engine.UPos {
	if u, ok := pennToUPos[tag]; ok {
		return u
	}
	return engine.UPosX
}

// pennToMorph carries the morphology a bare Penn Treebank tag already
// encodes (a CoNLL-U feats string would carry the rest, but the facade's
// tokenizer collaborator only hands back a surface POS tag).
var pennToMorph = map[string]engine.MorphFeatures{
	"VBZ": {Tense: "Pres", Number: "Sing", Person: "3", VerbForm: "Fin"},
	"VBP": {Tense: "Pres", VerbForm: "Fin"},
	"VBD": {Tense: "Past", VerbForm: "Fin"},
	"VBG": {VerbForm: "Ger"},
	"VBN": {VerbForm: "Part", Tense: "Past"},
	"NNS": {Number: "Plur"},
	"NNPS": {Number: "Plur"},
	"NN":  {Number: "Sing"},
	"NNP": {Number: "Sing"},
	"JJR": {Degree: "Cmp"},
	"JJS": {Degree: "Sup"},
	"RBR": {Degree: "Cmp"},
	"RBS": {Degree: "Sup"},
}

// PennToMorphFeatures returns the morphology snapshot a Penn Treebank tag
// implies, per §3.8's MorphFeatures surfacing on SemanticToken.Morphology.
// Most tags carry no morphological information beyond their POS category,
// so an unrecognized or morphology-neutral tag returns the zero value.
func PennToMorphFeatures(tag string) engine.MorphFeatures {
	return pennToMorph[tag]
}
