package wordnet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lexicoord/semcore/internal/engine"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "data.noun", `00001740 03 n 01 entity 0 00 | that which is perceived`+"\n")
	writeFile(t, dir, "index.noun", `entity n 1 0 1 1 00001740`+"\n")
	writeFile(t, dir, "data.verb", `00002000 03 v 01 go 0 00 | move from one place to another`+"\n")
	writeFile(t, dir, "index.verb", `go v 1 0 1 1 00002000`+"\n")
	writeFile(t, dir, "verb.exc", "went go\n")

	e, err := New(Config{DataPath: dir, Mode: Lenient, Base: engine.DefaultConfig()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestAnalyzeUnambiguousSenseHighConfidence(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.Analyze(Query{Lemma: "entity", POS: engine.POSNoun})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(r.Data.Senses) != 1 {
		t.Fatalf("expected 1 sense, got %d", len(r.Data.Senses))
	}
	if r.Confidence != 0.95 {
		t.Fatalf("expected confidence 0.95 for a single sense, got %v", r.Confidence)
	}
}

func TestAnalyzeNoMatchZeroConfidence(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.Analyze(Query{Lemma: "zzznomatch", POS: engine.POSNoun})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.Confidence != 0 {
		t.Fatalf("expected zero confidence for no match, got %v", r.Confidence)
	}
	if len(r.Data.Senses) != 0 {
		t.Fatalf("expected no senses")
	}
}

func TestBaseFormsResolvesIrregular(t *testing.T) {
	e := newTestEngine(t)
	bases := e.BaseForms("went", engine.POSVerb)
	if len(bases) != 1 || bases[0] != "go" {
		t.Fatalf("BaseForms(went) = %v, want [go]", bases)
	}
}

func TestBaseFormsFallsBackToSurface(t *testing.T) {
	e := newTestEngine(t)
	bases := e.BaseForms("dogs", engine.POSNoun)
	if len(bases) != 1 || bases[0] != "dogs" {
		t.Fatalf("BaseForms(dogs) = %v, want [dogs] (unchanged, no exception entry)", bases)
	}
}

func TestAnalyzeIrregularFormResolvesThroughException(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.Analyze(Query{Lemma: "went", POS: engine.POSVerb})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(r.Data.Senses) != 1 {
		t.Fatalf("expected the exception to resolve to go's one sense, got %d", len(r.Data.Senses))
	}
}

func TestCacheKeyIsPOSAware(t *testing.T) {
	e := newTestEngine(t)
	k1 := e.CacheKey(Query{Lemma: "go", POS: engine.POSVerb})
	k2 := e.CacheKey(Query{Lemma: "go", POS: engine.POSNoun})
	if k1 == k2 {
		t.Fatalf("expected distinct cache keys for distinct POS hints, got %q twice", k1)
	}
}
