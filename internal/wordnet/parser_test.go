package wordnet

import (
	"strings"
	"testing"
)

func TestParseSynsetLine(t *testing.T) {
	line := `00001740 03 n 02 entity 0 physical_thing 0 01 @ 00002137 n 0000 | that which is perceived or known or inferred`
	synsets, err := ParseData(strings.NewReader(line), "test", Strict)
	if err != nil {
		t.Fatalf("ParseData() error = %v", err)
	}
	if len(synsets) != 1 {
		t.Fatalf("expected 1 synset, got %d", len(synsets))
	}
	ss := synsets[0]
	if ss.Offset != "00001740" || ss.POS.String() != "Noun" {
		t.Fatalf("unexpected synset: %+v", ss)
	}
	if len(ss.Words) != 2 || ss.Words[0] != "entity" || ss.Words[1] != "physical thing" {
		t.Fatalf("unexpected words: %+v", ss.Words)
	}
	if len(ss.Pointers) != 1 || ss.Pointers[0].Symbol != "@" || ss.Pointers[0].TargetOffset != "00002137" {
		t.Fatalf("unexpected pointers: %+v", ss.Pointers)
	}
	if !strings.Contains(ss.Gloss, "perceived") {
		t.Fatalf("unexpected gloss: %q", ss.Gloss)
	}
}

func TestDecodeSourceTarget(t *testing.T) {
	s, tgt := decodeSourceTarget("0203")
	if s != 2 || tgt != 3 {
		t.Fatalf("decodeSourceTarget() = (%d,%d), want (2,3)", s, tgt)
	}
	s, tgt = decodeSourceTarget("0000")
	if s != 0 || tgt != 0 {
		t.Fatalf("decodeSourceTarget(0000) = (%d,%d), want (0,0)", s, tgt)
	}
}

func TestParseIndexLine(t *testing.T) {
	line := `entity n 1 0 1 1 00001740`
	entries, err := ParseIndex(strings.NewReader(line), "test", Strict)
	if err != nil {
		t.Fatalf("ParseIndex() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Lemma != "entity" || e.SynsetCount != 1 || len(e.SynsetOffsets) != 1 || e.SynsetOffsets[0] != "00001740" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestParseIndexLineMismatchedCountIsError(t *testing.T) {
	line := `entity n 2 0 1 1 00001740` // claims 2 synsets but only lists 1
	_, err := ParseIndex(strings.NewReader(line), "test", Strict)
	if err == nil {
		t.Fatal("expected error for synset count mismatch")
	}
}

func TestParseExceptions(t *testing.T) {
	data := "went go\nmice mouse\n"
	excs, err := ParseExceptions(strings.NewReader(data), "test", Strict)
	if err != nil {
		t.Fatalf("ParseExceptions() error = %v", err)
	}
	if len(excs) != 2 || excs[0].Inflected != "went" || excs[0].Bases[0] != "go" {
		t.Fatalf("unexpected exceptions: %+v", excs)
	}
}

func TestParseDataLenientSkipsMalformedLines(t *testing.T) {
	data := "not a valid synset line\n" +
		`00001740 03 n 01 entity 0 00 | root concept` + "\n"
	synsets, err := ParseData(strings.NewReader(data), "test", Lenient)
	if err != nil {
		t.Fatalf("ParseData() error = %v", err)
	}
	if len(synsets) != 1 {
		t.Fatalf("expected lenient mode to keep the one valid line, got %d", len(synsets))
	}
}

func TestParseDataStrictAbortsOnMalformedLine(t *testing.T) {
	data := "garbage\n"
	_, err := ParseData(strings.NewReader(data), "test", Strict)
	if err == nil {
		t.Fatal("expected strict mode to error on malformed line")
	}
}
