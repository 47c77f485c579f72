package coordinator

import (
	"testing"

	"github.com/lexicoord/semcore/internal/engine"
)

func TestGuessPOSSuffixRules(t *testing.T) {
	cases := []struct {
		word string
		want engine.UPos
	}{
		{"organization", engine.UPosNoun},
		{"happiness", engine.UPosNoun},
		{"quickly", engine.UPosAdv},
		{"running", engine.UPosVerb},
		{"beautiful", engine.UPosAdj},
	}
	for _, tc := range cases {
		got, conf := guessPOS(tc.word)
		if got != tc.want {
			t.Errorf("guessPOS(%q) = %v, want %v", tc.word, got, tc.want)
		}
		if conf <= 0 || conf > 1 {
			t.Errorf("guessPOS(%q) confidence = %v, want in (0,1]", tc.word, conf)
		}
	}
}

func TestGuessPOSUnmatchedDefaultsToNounLowConfidence(t *testing.T) {
	pos, conf := guessPOS("xyzzy")
	if pos != engine.UPosNoun {
		t.Fatalf("expected default POS Noun, got %v", pos)
	}
	if conf >= guessThreshold {
		t.Fatalf("expected low confidence for an unmatched word, got %v", conf)
	}
}
