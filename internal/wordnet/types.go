// Package wordnet implements the synonym/sense engine: synset lookup,
// pointer relations, and exceptional (irregular) base-form resolution.
package wordnet

import "github.com/lexicoord/semcore/internal/engine"

// PointerRelation is one typed relation a synset or word carries to another
// synset or word, e.g. hypernym, hyponym, antonym.
type PointerRelation struct {
	Symbol        string
	TargetOffset  string
	TargetPOS     engine.PartOfSpeech
	SourceIndex   int // 0 means the whole synset; else 1-based word index
	TargetIndex   int
}

// Synset is one sense shared by a set of synonymous words.
type Synset struct {
	Offset   string
	LexFile  string
	POS      engine.PartOfSpeech
	Words    []string
	Pointers []PointerRelation
	Gloss    string
}

// IndexEntry is one lemma's entry in a part-of-speech index, listing every
// synset the lemma participates in, ordered by decreasing frequency of use.
type IndexEntry struct {
	Lemma        string
	POS          engine.PartOfSpeech
	SynsetCount  int
	PointerTypes []string
	TagSenseCnt  int
	SynsetOffsets []string
}

// Exception maps one irregular inflected form back to its base form(s), e.g.
// "went" -> ["go"].
type Exception struct {
	Inflected string
	Bases     []string
}

// SenseEntry pairs a word with the specific synset it names, the unit of
// result WordnetAnalysis reports.
type SenseEntry struct {
	Synset     Synset
	SenseIndex int // 1-based position of the queried word within the synset
}

// WordnetAnalysis is the output of analyzing one (lemma, pos-hint) pair
// against the loaded synset database.
type WordnetAnalysis struct {
	Lemma     string
	BaseForms []string
	Senses    []SenseEntry
}
