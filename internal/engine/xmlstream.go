package engine

import (
	"encoding/xml"
	"io"
)

// XMLStream is a pull-model walker over an XML document. Each engine's
// parser drives it as a hand-written state machine over the element names
// relevant to its own source format; XMLStream itself knows nothing about
// any particular schema.
type XMLStream struct {
	dec *xml.Decoder
}

// NewXMLStream wraps r in a pull-model XML walker.
func NewXMLStream(r io.Reader) *XMLStream {
	d := xml.NewDecoder(r)
	d.Strict = false
	return &XMLStream{dec: d}
}

// Element is a start-tag with its attributes flattened into a map, the shape
// every engine parser consumes.
type Element struct {
	Name  string
	Attrs map[string]string
}

// NextElement advances to the next element start, matching any of names if
// provided, or any start element when names is empty. It returns io.EOF when
// the stream is exhausted.
func (x *XMLStream) NextElement(names ...string) (Element, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	for {
		tok, err := x.dec.Token()
		if err != nil {
			return Element{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if len(want) > 0 && !want[se.Name.Local] {
			continue
		}
		attrs := make(map[string]string, len(se.Attr))
		for _, a := range se.Attr {
			attrs[a.Name.Local] = a.Value
		}
		return Element{Name: se.Name.Local, Attrs: attrs}, nil
	}
}

// CharData reads character data immediately following the current position,
// up to (not including) the next element boundary.
func (x *XMLStream) CharData() (string, error) {
	var buf []byte
	for {
		tok, err := x.dec.Token()
		if err != nil {
			return string(buf), err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf = append(buf, t...)
		case xml.StartElement, xml.EndElement:
			// Rewind is not supported by encoding/xml; callers that need
			// the boundary token back should use SkipToClose/NextElement
			// from here instead of CharData when mixed content is expected.
			return string(buf), nil
		}
	}
}

// SkipToClose consumes tokens until the matching end element for name is
// found, discarding everything in between (used when an engine recognizes
// a wrapper element it does not need to parse in detail).
func (x *XMLStream) SkipToClose(name string) error {
	depth := 1
	for depth > 0 {
		tok, err := x.dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == name {
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == name {
				depth--
			}
		}
	}
	return nil
}

// RawToken exposes the underlying decoder for engines whose state machines
// need finer control than NextElement/CharData/SkipToClose provide.
func (x *XMLStream) RawToken() (xml.Token, error) {
	return x.dec.Token()
}
