package treebank

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lexicoord/semcore/internal/engine"
)

// ParseCoNLLUFile parses a .conllu file into its sentences.
func ParseCoNLLUFile(path string) ([]Sentence, []error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, []error{engine.DataLoad("TreebankEngine", err)}
	}
	defer f.Close()
	return ParseCoNLLU(f, path)
}

// ParseCoNLLU reads a CoNLL-U stream from r. A malformed line drops only its
// enclosing sentence; the file continues parsing the rest (§8's robustness
// invariant). Every dropped sentence contributes one error to the returned
// slice.
func ParseCoNLLU(r io.Reader, sourceName string) ([]Sentence, []error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sentences []Sentence
	var errs []error

	var cur Sentence
	var curTokens []Token
	lineNo := 0
	broken := false
	var breakErr error

	flush := func() {
		if len(curTokens) == 0 {
			cur = Sentence{}
			broken = false
			return
		}
		if broken {
			errs = append(errs, engine.Parse("TreebankEngine", engine.Location{File: sourceName, Line: lineNo}, breakErr))
		} else if verr := validateSentence(curTokens); verr != nil {
			errs = append(errs, engine.Parse("TreebankEngine", engine.Location{File: sourceName, Line: lineNo}, verr))
		} else {
			cur.Tokens = curTokens
			sentences = append(sentences, cur)
		}
		cur = Sentence{}
		curTokens = nil
		broken = false
		breakErr = nil
	}

	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "#") {
			parseCommentLine(line, &cur)
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 10 {
			if !broken {
				broken = true
				breakErr = errStr("expected 10 tab-separated fields, got " + strconv.Itoa(len(fields)))
			}
			continue
		}
		// Multiword-token and empty-node lines (ids "1-2", "1.1") are not
		// regular tokens; they're skipped rather than counted in the
		// contiguous id range.
		if strings.ContainsAny(fields[0], "-.") {
			continue
		}
		id, iderr := strconv.Atoi(fields[0])
		if iderr != nil {
			if !broken {
				broken = true
				breakErr = errStr("non-numeric token id: " + fields[0])
			}
			continue
		}
		head := 0
		if fields[6] != "_" {
			h, herr := strconv.Atoi(fields[6])
			if herr != nil {
				if !broken {
					broken = true
					breakErr = errStr("non-numeric head: " + fields[6])
				}
				continue
			}
			head = h
		}
		tok := Token{
			ID:     id,
			Form:   fields[1],
			Lemma:  fields[2],
			UPos:   engine.ParseUPos(fields[3]),
			XPos:   fields[4],
			Feats:  engine.ParseMorphFeatures(fields[5]),
			Head:   head,
			DepRel: engine.ParseDepRel(fields[7]),
			Deps:   fields[8],
			Misc:   fields[9],
		}
		curTokens = append(curTokens, tok)
	}
	flush()

	if err := sc.Err(); err != nil {
		errs = append(errs, engine.Parse("TreebankEngine", engine.Location{File: sourceName, Line: lineNo}, err))
	}
	return sentences, errs
}

func parseCommentLine(line string, cur *Sentence) {
	body := strings.TrimPrefix(line, "#")
	body = strings.TrimSpace(body)
	if idx := strings.Index(body, "="); idx >= 0 {
		key := strings.TrimSpace(body[:idx])
		val := strings.TrimSpace(body[idx+1:])
		switch key {
		case "sent_id":
			cur.ID = val
		case "text":
			cur.Text = val
		}
	}
}

// validateSentence enforces §8's token-id range/single-root invariant: token
// ids form the contiguous range 1..N, and exactly one token has head 0.
func validateSentence(tokens []Token) error {
	roots := 0
	seen := make(map[int]bool, len(tokens))
	for _, t := range tokens {
		seen[t.ID] = true
		if t.Head == 0 {
			roots++
		}
	}
	for i := 1; i <= len(tokens); i++ {
		if !seen[i] {
			return errStr("token ids are not a contiguous 1..N range")
		}
	}
	if roots != 1 {
		return errStr("sentence does not have exactly one root token")
	}
	return nil
}

type strErr string

func (e strErr) Error() string { return string(e) }
func errStr(s string) error    { return strErr(s) }
