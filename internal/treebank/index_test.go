package treebank

import (
	"strings"
	"testing"
)

func TestBuildIndexCanonicalOrderAndFrequency(t *testing.T) {
	sentences, errs := ParseCoNLLU(strings.NewReader(sampleSentence+sampleSentence), "test")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	index := BuildIndex(sentences)
	p, ok := index[PatternKey("chase", sentences[0].Tokens[2].UPos)]
	if !ok {
		t.Fatal("expected a pattern for chase/VERB")
	}
	if p.Frequency != 2 {
		t.Fatalf("expected frequency 2 from two identical sentences, got %d", p.Frequency)
	}
	if len(p.Relations) != 2 || p.Relations[0] != "nsubj" || p.Relations[1] != "obj" {
		t.Fatalf("expected canonical [nsubj obj] order, got %v", p.Relations)
	}
}

func TestSemanticSignatureVariantsFallbackOrder(t *testing.T) {
	sig := SemanticSignature{Lemma: "chase", VerbClassID: "51.1", FrameID: "139", SynsetOffset: "00001"}
	variants := sig.Variants()
	if len(variants) < 2 {
		t.Fatalf("expected multiple fallback variants, got %d", len(variants))
	}
	last := variants[len(variants)-1]
	bare := SemanticSignature{Lemma: "chase"}
	if last != bare.key() {
		t.Fatalf("expected the final fallback to be the bare-lemma key, got %q want %q", last, bare.key())
	}
}
