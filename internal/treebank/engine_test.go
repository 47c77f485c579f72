package treebank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lexicoord/semcore/internal/engine"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sample.conllu"), []byte(sampleSentence), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	e, err := New(Config{CorpusPath: dir, MinFrequency: 1, Base: engine.DefaultConfig()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestAnalyzeWordFindsCorpusPattern(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.AnalyzeWord("chase", engine.UPosVerb)
	if err != nil {
		t.Fatalf("AnalyzeWord() error = %v", err)
	}
	if len(r.Data.Patterns) != 1 || r.Data.Synthesized {
		t.Fatalf("expected a corpus pattern, not synthesized: %+v", r.Data)
	}
	if r.Data.Patterns[0].Relations[0] != "nsubj" {
		t.Fatalf("unexpected pattern: %+v", r.Data.Patterns[0])
	}
}

func TestAnalyzeWordSynthesizesForUnseenLemma(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.AnalyzeWord("zzznever", engine.UPosVerb)
	if err != nil {
		t.Fatalf("AnalyzeWord() error = %v", err)
	}
	if !r.Data.Synthesized {
		t.Fatalf("expected synthesis for a never-seen lemma: %+v", r.Data)
	}
	if r.Confidence <= 0 || r.Confidence > 0.95 {
		t.Fatalf("expected synthesis confidence in (0, 0.95], got %v", r.Confidence)
	}
}

func TestAnalyzeWithContextFallsBackThroughSignatureVariants(t *testing.T) {
	e := newTestEngine(t)
	sig := SemanticSignature{Lemma: "chase", UPos: engine.UPosVerb, VerbClassID: "51.1"}
	r, err := e.AnalyzeWithContext(sig)
	if err != nil {
		t.Fatalf("AnalyzeWithContext() error = %v", err)
	}
	if len(r.Data.Patterns) != 1 || r.Data.Synthesized {
		t.Fatalf("expected the lemma+UPOS fallback to find the corpus pattern, got %+v", r.Data)
	}
}

func TestFrequencyInvariant(t *testing.T) {
	e := newTestEngine(t)
	r, _ := e.AnalyzeWord("chase", engine.UPosVerb)
	if r.Data.Patterns[0].Frequency < 1 {
		t.Fatalf("expected frequency >= min_frequency (1), got %d", r.Data.Patterns[0].Frequency)
	}
}

func TestSynthesizedPatternIsCachedForSecondLookup(t *testing.T) {
	e := newTestEngine(t)
	sig := SemanticSignature{Lemma: "zzznever", UPos: engine.UPosVerb}

	first, err := e.PerformAnalysis(sig)
	if err != nil {
		t.Fatalf("PerformAnalysis() error = %v", err)
	}
	if !first.Synthesized || first.FromCache {
		t.Fatalf("expected a fresh synthesis on first lookup, got %+v", first)
	}

	second, err := e.PerformAnalysis(sig)
	if err != nil {
		t.Fatalf("PerformAnalysis() error = %v", err)
	}
	if !second.FromCache || second.Synthesized {
		t.Fatalf("expected the second lookup to hit the cached synthesis, got %+v", second)
	}
}
