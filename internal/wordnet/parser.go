package wordnet

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lexicoord/semcore/internal/engine"
)

// Mode controls how the parser reacts to a malformed line.
type Mode int

const (
	// Lenient skips a malformed line and continues with the rest of the file.
	Lenient Mode = iota
	// Strict aborts the whole file on the first malformed line.
	Strict
)

var ssTypeToPOS = map[string]engine.PartOfSpeech{
	"n": engine.POSNoun,
	"v": engine.POSVerb,
	"a": engine.POSAdjective,
	"s": engine.POSAdjectiveSatellite,
	"r": engine.POSAdverb,
}

// ParseDataFile parses a WordNet data.<pos> file (e.g. data.noun) into its
// synsets.
func ParseDataFile(path string, mode Mode) ([]Synset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, engine.DataLoad("WordnetEngine", err)
	}
	defer f.Close()
	return ParseData(f, path, mode)
}

// ParseData reads a data.<pos> stream from r.
func ParseData(r io.Reader, sourceName string, mode Mode) ([]Synset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var out []Synset
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "  ") {
			continue // blank or license-header comment line
		}
		ss, perr := parseSynsetLine(line)
		if perr != nil {
			if mode == Strict {
				return nil, engine.Parse("WordnetEngine", engine.Location{File: sourceName, Line: lineNo}, perr)
			}
			continue
		}
		out = append(out, ss)
	}
	if err := sc.Err(); err != nil {
		return nil, engine.Parse("WordnetEngine", engine.Location{File: sourceName, Line: lineNo}, err)
	}
	return out, nil
}

func parseSynsetLine(line string) (Synset, error) {
	dataPart := line
	gloss := ""
	if idx := strings.Index(line, " | "); idx >= 0 {
		dataPart = line[:idx]
		gloss = strings.TrimSpace(line[idx+3:])
	}
	fields := strings.Fields(dataPart)
	if len(fields) < 4 {
		return Synset{}, errStr("synset line too short")
	}
	ss := Synset{Offset: fields[0], LexFile: fields[1], Gloss: gloss}
	ssType := fields[2]
	pos, ok := ssTypeToPOS[ssType]
	if !ok {
		return Synset{}, errStr("unknown synset type: " + ssType)
	}
	ss.POS = pos

	wCnt, err := strconv.ParseInt(fields[3], 16, 64)
	if err != nil {
		return Synset{}, errStr("bad w_cnt: " + fields[3])
	}
	i := 4
	for n := int64(0); n < wCnt; n++ {
		if i+1 >= len(fields) {
			return Synset{}, errStr("truncated word list")
		}
		ss.Words = append(ss.Words, normalizeWordnetWord(fields[i]))
		i += 2 // skip lex_id
	}
	if i >= len(fields) {
		return Synset{}, errStr("missing p_cnt")
	}
	pCnt, err := strconv.Atoi(fields[i])
	if err != nil {
		return Synset{}, errStr("bad p_cnt: " + fields[i])
	}
	i++
	for n := 0; n < pCnt; n++ {
		if i+3 >= len(fields) {
			return Synset{}, errStr("truncated pointer list")
		}
		symbol := fields[i]
		targetOffset := fields[i+1]
		targetPOS := ssTypeToPOS[fields[i+2]]
		srcIdx, tgtIdx := decodeSourceTarget(fields[i+3])
		ss.Pointers = append(ss.Pointers, PointerRelation{
			Symbol:       symbol,
			TargetOffset: targetOffset,
			TargetPOS:    targetPOS,
			SourceIndex:  srcIdx,
			TargetIndex:  tgtIdx,
		})
		i += 4
	}
	return ss, nil
}

// decodeSourceTarget decodes WordNet's four-hex-digit source/target field:
// the first two hex digits are the source word index within the current
// synset, the last two the target word index within the target synset; 00
// in either half means "whole synset".
func decodeSourceTarget(field string) (source, target int) {
	if len(field) != 4 {
		return 0, 0
	}
	s, serr := strconv.ParseInt(field[:2], 16, 32)
	t, terr := strconv.ParseInt(field[2:], 16, 32)
	if serr != nil || terr != nil {
		return 0, 0
	}
	return int(s), int(t)
}

// normalizeWordnetWord undoes WordNet's underscore-for-space and
// parenthesized-marker conventions in multi-word lemma entries.
func normalizeWordnetWord(w string) string {
	w = strings.ReplaceAll(w, "_", " ")
	if idx := strings.Index(w, "("); idx > 0 {
		w = strings.TrimSpace(w[:idx])
	}
	return w
}

// ParseIndexFile parses a WordNet index.<pos> file into its entries.
func ParseIndexFile(path string, mode Mode) ([]IndexEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, engine.DataLoad("WordnetEngine", err)
	}
	defer f.Close()
	return ParseIndex(f, path, mode)
}

// ParseIndex reads an index.<pos> stream from r.
func ParseIndex(r io.Reader, sourceName string, mode Mode) ([]IndexEntry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var out []IndexEntry
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "  ") {
			continue
		}
		entry, perr := parseIndexLine(line)
		if perr != nil {
			if mode == Strict {
				return nil, engine.Parse("WordnetEngine", engine.Location{File: sourceName, Line: lineNo}, perr)
			}
			continue
		}
		out = append(out, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, engine.Parse("WordnetEngine", engine.Location{File: sourceName, Line: lineNo}, err)
	}
	return out, nil
}

func parseIndexLine(line string) (IndexEntry, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return IndexEntry{}, errStr("index line too short")
	}
	entry := IndexEntry{Lemma: strings.ReplaceAll(fields[0], "_", " ")}
	pos, ok := ssTypeToPOS[fields[1]]
	if !ok {
		return IndexEntry{}, errStr("unknown index pos: " + fields[1])
	}
	entry.POS = pos

	synsetCnt, err := strconv.Atoi(fields[2])
	if err != nil {
		return IndexEntry{}, errStr("bad synset_cnt")
	}
	entry.SynsetCount = synsetCnt

	pCnt, err := strconv.Atoi(fields[3])
	if err != nil {
		return IndexEntry{}, errStr("bad p_cnt")
	}
	i := 4
	for n := 0; n < pCnt; n++ {
		if i >= len(fields) {
			return IndexEntry{}, errStr("truncated pointer symbol list")
		}
		entry.PointerTypes = append(entry.PointerTypes, fields[i])
		i++
	}
	// sense_cnt (redundant with synset_cnt) then tagsense_cnt
	if i+1 >= len(fields) {
		return IndexEntry{}, errStr("missing sense_cnt/tagsense_cnt")
	}
	i++ // skip redundant sense_cnt
	tagSenseCnt, err := strconv.Atoi(fields[i])
	if err != nil {
		return IndexEntry{}, errStr("bad tagsense_cnt")
	}
	entry.TagSenseCnt = tagSenseCnt
	i++
	for ; i < len(fields); i++ {
		entry.SynsetOffsets = append(entry.SynsetOffsets, fields[i])
	}
	if len(entry.SynsetOffsets) != synsetCnt {
		return IndexEntry{}, errStr("synset_offset count mismatch")
	}
	return entry, nil
}

// ParseExceptionFile parses a WordNet <pos>.exc file into its entries.
func ParseExceptionFile(path string, mode Mode) ([]Exception, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, engine.DataLoad("WordnetEngine", err)
	}
	defer f.Close()
	return ParseExceptions(f, path, mode)
}

// ParseExceptions reads a <pos>.exc stream from r.
func ParseExceptions(r io.Reader, sourceName string, mode Mode) ([]Exception, error) {
	sc := bufio.NewScanner(r)
	var out []Exception
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			if mode == Strict {
				return nil, engine.Parse("WordnetEngine", engine.Location{File: sourceName, Line: lineNo}, errStr("exception line needs at least 2 fields"))
			}
			continue
		}
		out = append(out, Exception{Inflected: fields[0], Bases: fields[1:]})
	}
	if err := sc.Err(); err != nil {
		return nil, engine.Parse("WordnetEngine", engine.Location{File: sourceName, Line: lineNo}, err)
	}
	return out, nil
}

type strErr string

func (e strErr) Error() string { return string(e) }
func errStr(s string) error    { return strErr(s) }
