package treebank

import (
	"strings"
	"testing"
)

const sampleSentence = `# sent_id = 1
# text = The dog chased the cat.
1	The	the	DET	_	_	2	det	_	_
2	dog	dog	NOUN	_	_	3	nsubj	_	_
3	chased	chase	VERB	_	_	0	root	_	_
4	the	the	DET	_	_	5	det	_	_
5	cat	cat	NOUN	_	_	3	obj	_	_
6	.	.	PUNCT	_	_	3	punct	_	_

`

func TestParseCoNLLUValidSentence(t *testing.T) {
	sentences, errs := ParseCoNLLU(strings.NewReader(sampleSentence), "test")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(sentences))
	}
	s := sentences[0]
	if s.ID != "1" || s.Text != "The dog chased the cat." {
		t.Fatalf("unexpected sentence metadata: %+v", s)
	}
	if len(s.Tokens) != 6 {
		t.Fatalf("expected 6 tokens, got %d", len(s.Tokens))
	}
	if s.Tokens[2].Lemma != "chase" || !s.Tokens[2].DepRel.IsRoot() {
		t.Fatalf("unexpected root token: %+v", s.Tokens[2])
	}
}

func TestParseCoNLLUMultipleRootsDropsSentence(t *testing.T) {
	bad := `1	a	a	NOUN	_	_	0	root	_	_
2	b	b	NOUN	_	_	0	root	_	_
`
	sentences, errs := ParseCoNLLU(strings.NewReader(bad), "test")
	if len(sentences) != 0 {
		t.Fatalf("expected the sentence to be dropped, got %d", len(sentences))
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(errs), errs)
	}
}

func TestParseCoNLLUNonContiguousIDsDropsSentence(t *testing.T) {
	bad := `1	a	a	NOUN	_	_	0	root	_	_
3	b	b	NOUN	_	_	1	obj	_	_
`
	sentences, errs := ParseCoNLLU(strings.NewReader(bad), "test")
	if len(sentences) != 0 {
		t.Fatalf("expected the sentence to be dropped, got %d", len(sentences))
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d", len(errs))
	}
}

func TestParseCoNLLUContinuesAfterDroppedSentence(t *testing.T) {
	doc := `1	a	a	NOUN	_	_	0	root	_	_
2	b	b	NOUN	_	_	0	root	_	_

` + sampleSentence
	sentences, errs := ParseCoNLLU(strings.NewReader(doc), "test")
	if len(sentences) != 1 {
		t.Fatalf("expected the well-formed sentence to survive, got %d", len(sentences))
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error from the dropped sentence, got %d", len(errs))
	}
}

func TestParseCoNLLUSkipsMultiwordTokenLines(t *testing.T) {
	doc := `1-2	don't	_	_	_	_	_	_	_	_
1	do	do	VERB	_	_	0	root	_	_
2	not	not	PART	_	_	1	advmod	_	_
`
	sentences, errs := ParseCoNLLU(strings.NewReader(doc), "test")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(sentences) != 1 || len(sentences[0].Tokens) != 2 {
		t.Fatalf("expected the multiword line to be skipped, leaving 2 tokens, got %+v", sentences)
	}
}
