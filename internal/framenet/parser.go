package framenet

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lexicoord/semcore/internal/engine"
)

var markupTags = []string{"def-root", "/def-root", "fen", "/fen", "ex", "/ex", "t", "/t", "fex", "/fex"}

// CleanDefinition strips the embedded FrameNet markup tags and decodes the
// standard XML entities, per §3.4's invariant.
func CleanDefinition(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '<' {
			end := strings.IndexByte(s[i:], '>')
			if end < 0 {
				b.WriteByte(s[i])
				i++
				continue
			}
			tag := s[i+1 : i+end]
			// strip attributes from e.g. `fex name="Agent"`
			if sp := strings.IndexByte(tag, ' '); sp >= 0 {
				tag = tag[:sp]
			}
			if containsTag(tag) {
				i += end + 1
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	out := b.String()
	replacer := strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&", "&quot;", `"`, "&apos;", "'")
	return strings.TrimSpace(replacer.Replace(out))
}

func containsTag(tag string) bool {
	for _, t := range markupTags {
		if t == tag {
			return true
		}
	}
	return false
}

// ParseFrameFile parses one <frame> XML document.
func ParseFrameFile(path string) (FrameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return FrameRecord{}, engine.DataLoad("FramenetEngine", err)
	}
	defer f.Close()
	return ParseFrame(f, path)
}

// ParseFrame reads a <frame> document from r.
func ParseFrame(r io.Reader, sourceName string) (FrameRecord, error) {
	xs := engine.NewXMLStream(r)
	root, err := xs.NextElement()
	if err != nil {
		return FrameRecord{}, engine.Parse("FramenetEngine", engine.Location{File: sourceName}, err)
	}
	if root.Name != "frame" {
		return FrameRecord{}, engine.Parse("FramenetEngine", engine.Location{File: sourceName},
			errStr("not a frame document: "+root.Name))
	}
	fr := FrameRecord{ID: root.Attrs["ID"], Name: root.Attrs["name"], CreatedBy: root.Attrs["cBy"], CreatedDate: root.Attrs["cDate"]}
	if fr.ID == "" {
		return FrameRecord{}, engine.Parse("FramenetEngine", engine.Location{File: sourceName}, errStr("frame missing ID attribute"))
	}
	var cur strings.Builder
	inDef := false
	for {
		tok, terr := xs.RawToken()
		if terr == io.EOF {
			break
		}
		if terr != nil {
			return FrameRecord{}, engine.Parse("FramenetEngine", engine.Location{File: sourceName}, terr)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			switch t.Name.Local {
			case "definition":
				fr.Definition = CleanDefinition(cur.String())
				cur.Reset()
				inDef = false
			case "frame":
				return fr, nil
			}
		case xml.CharData:
			if inDef {
				cur.Write(t)
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "definition":
				inDef = true
				cur.Reset()
			case "FE":
				fr.Elements = append(fr.Elements, parseFrameElement(xs, t))
			case "frameRelation":
				relKind := attr(t, "type")
				parseFrameRelationTargets(xs, relKind, &fr)
			default:
				xs.SkipToClose(t.Name.Local)
			}
		}
	}
	return fr, nil
}

func parseFrameElement(xs *engine.XMLStream, start xml.StartElement) FrameElement {
	fe := FrameElement{
		ID:          attr(start, "ID"),
		Name:        attr(start, "name"),
		Abbrev:      attr(start, "abbrev"),
		CoreTypeVal: parseCoreType(attr(start, "coreType")),
		BgColor:     attr(start, "bgColor"),
		FgColor:     attr(start, "fgColor"),
	}
	var cur strings.Builder
	inDef := false
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return fe
		}
		switch t := tok.(type) {
		case xml.EndElement:
			switch t.Name.Local {
			case "definition":
				fe.Definition = CleanDefinition(cur.String())
				cur.Reset()
				inDef = false
			case "FE":
				return fe
			}
		case xml.CharData:
			if inDef {
				cur.Write(t)
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "definition":
				inDef = true
				cur.Reset()
			case "semType":
				fe.SemanticTypes = append(fe.SemanticTypes, attr(t, "name"))
			default:
				xs.SkipToClose(t.Name.Local)
			}
		}
	}
}

func parseFrameRelationTargets(xs *engine.XMLStream, relKind string, fr *FrameRecord) {
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "frameRelation" {
				return
			}
		case xml.StartElement:
			if t.Name.Local == "relatedFrame" {
				// value carried as char data
				var b strings.Builder
				for {
					inner, ierr := xs.RawToken()
					if ierr != nil {
						return
					}
					if cd, ok := inner.(xml.CharData); ok {
						b.Write(cd)
					}
					if ee, ok := inner.(xml.EndElement); ok && ee.Name.Local == "relatedFrame" {
						break
					}
				}
				fr.Relations = append(fr.Relations, FrameRelation{Kind: relKind, Target: strings.TrimSpace(b.String())})
			}
		}
	}
}

// ParseLUFile parses one <lexUnit> XML document.
func ParseLUFile(path string) (LexicalUnit, error) {
	f, err := os.Open(path)
	if err != nil {
		return LexicalUnit{}, engine.DataLoad("FramenetEngine", err)
	}
	defer f.Close()
	return ParseLU(f, path)
}

// ParseLU reads a <lexUnit> document from r.
func ParseLU(r io.Reader, sourceName string) (LexicalUnit, error) {
	xs := engine.NewXMLStream(r)
	root, err := xs.NextElement()
	if err != nil {
		return LexicalUnit{}, engine.Parse("FramenetEngine", engine.Location{File: sourceName}, err)
	}
	if root.Name != "lexUnit" {
		return LexicalUnit{}, engine.Parse("FramenetEngine", engine.Location{File: sourceName},
			errStr("not a lexUnit document: "+root.Name))
	}
	lu := LexicalUnit{
		ID:        root.Attrs["ID"],
		Name:      root.Attrs["name"],
		POS:       root.Attrs["POS"],
		Status:    root.Attrs["status"],
		FrameID:   root.Attrs["frameID"],
		FrameName: root.Attrs["frame"],
	}
	if n, perr := strconv.Atoi(root.Attrs["totalAnnotated"]); perr == nil {
		lu.TotalAnnotated = n
	}
	if lu.ID == "" {
		return LexicalUnit{}, engine.Parse("FramenetEngine", engine.Location{File: sourceName}, errStr("lexUnit missing ID attribute"))
	}
	var cur strings.Builder
	inDef := false
	for {
		tok, terr := xs.RawToken()
		if terr == io.EOF {
			break
		}
		if terr != nil {
			return LexicalUnit{}, engine.Parse("FramenetEngine", engine.Location{File: sourceName}, terr)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			switch t.Name.Local {
			case "definition":
				lu.Definition = CleanDefinition(cur.String())
				cur.Reset()
				inDef = false
			case "lexUnit":
				return lu, nil
			}
		case xml.CharData:
			if inDef {
				cur.Write(t)
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "definition":
				inDef = true
				cur.Reset()
			case "lexeme":
				lu.Lexemes = append(lu.Lexemes, Lexeme{Name: attr(t, "name"), POS: attr(t, "POS")})
			case "valences":
				lu.Valences = parseValences(xs)
			default:
				xs.SkipToClose(t.Name.Local)
			}
		}
	}
	return lu, nil
}

func parseValences(xs *engine.XMLStream) []ValencePattern {
	var out []ValencePattern
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return out
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "valences" {
				return out
			}
		case xml.StartElement:
			if t.Name.Local == "FE" {
				vp := ValencePattern{FEName: attr(t, "name")}
				if n, perr := strconv.Atoi(attr(t, "total")); perr == nil {
					vp.Total = n
				}
				vp.Realizations = parseRealizations(xs)
				out = append(out, vp)
			} else {
				xs.SkipToClose(t.Name.Local)
			}
		}
	}
}

func parseRealizations(xs *engine.XMLStream) []Realization {
	var out []Realization
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return out
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "FE" {
				return out
			}
		case xml.StartElement:
			if t.Name.Local == "pattern" {
				r := Realization{}
				if n, perr := strconv.Atoi(attr(t, "total")); perr == nil {
					r.Count = n
				}
				r.GrammaticalFunction = attr(t, "gf")
				r.PhraseType = attr(t, "pt")
				out = append(out, r)
				xs.SkipToClose("pattern")
			} else {
				xs.SkipToClose(t.Name.Local)
			}
		}
	}
}

// WalkDatabase walks a FrameNet directory, per §4.3's build algorithm: two
// subdirectories frame/ and lu/ if present, else a flat mix of both kinds.
func WalkDatabase(root string) (frames []FrameRecord, lus []LexicalUnit, errs []error) {
	frameDir := filepath.Join(root, "frame")
	luDir := filepath.Join(root, "lu")
	if dirExists(frameDir) && dirExists(luDir) {
		frames, errs = walkFrames(frameDir, errs)
		lus, errs = walkLUs(luDir, errs)
		return
	}
	// Flat mix: try frame, then lexical unit.
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() || !strings.HasSuffix(path, ".xml") {
			return nil
		}
		if fr, ferr := ParseFrameFile(path); ferr == nil {
			frames = append(frames, fr)
			return nil
		}
		if lu, luerr := ParseLUFile(path); luerr == nil {
			lus = append(lus, lu)
			return nil
		}
		errs = append(errs, engine.Parse("FramenetEngine", engine.Location{File: path}, errStr("neither a frame nor a lexUnit")))
		return nil
	})
	return
}

func walkFrames(dir string, errs []error) ([]FrameRecord, []error) {
	var out []FrameRecord
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() || !strings.HasSuffix(path, ".xml") {
			return nil
		}
		fr, ferr := ParseFrameFile(path)
		if ferr != nil {
			errs = append(errs, ferr)
			return nil
		}
		out = append(out, fr)
		return nil
	})
	return out, errs
}

func walkLUs(dir string, errs []error) ([]LexicalUnit, []error) {
	var out []LexicalUnit
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() || !strings.HasSuffix(path, ".xml") {
			return nil
		}
		lu, luerr := ParseLUFile(path)
		if luerr != nil {
			errs = append(errs, luerr)
			return nil
		}
		out = append(out, lu)
		return nil
	})
	return out, errs
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

type strErr string

func (e strErr) Error() string { return string(e) }
func errStr(s string) error    { return strErr(s) }
