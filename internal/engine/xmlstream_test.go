package engine

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

func TestNextElementFindsFirstMatchingName(t *testing.T) {
	xs := NewXMLStream(strings.NewReader(`<ROOT a="1"><CHILD b="2"/></ROOT>`))
	el, err := xs.NextElement("CHILD")
	if err != nil {
		t.Fatalf("NextElement() error = %v", err)
	}
	if el.Name != "CHILD" || el.Attrs["b"] != "2" {
		t.Fatalf("unexpected element: %+v", el)
	}
}

func TestNextElementWithNoNamesReturnsAnyStart(t *testing.T) {
	xs := NewXMLStream(strings.NewReader(`<ROOT id="x"/>`))
	el, err := xs.NextElement()
	if err != nil {
		t.Fatalf("NextElement() error = %v", err)
	}
	if el.Name != "ROOT" || el.Attrs["id"] != "x" {
		t.Fatalf("unexpected element: %+v", el)
	}
}

func TestCharDataReadsUpToNextElement(t *testing.T) {
	xs := NewXMLStream(strings.NewReader(`<ROOT>hello<CHILD/></ROOT>`))
	if _, err := xs.NextElement("ROOT"); err != nil {
		t.Fatalf("NextElement() error = %v", err)
	}
	text, err := xs.CharData()
	if err != nil {
		t.Fatalf("CharData() error = %v", err)
	}
	if text != "hello" {
		t.Fatalf("expected %q, got %q", "hello", text)
	}
}

func TestSkipToCloseConsumesNestedSubtree(t *testing.T) {
	xs := NewXMLStream(strings.NewReader(`<ROOT><SKIPME><INNER/><INNER/></SKIPME><AFTER/></ROOT>`))
	if _, err := xs.NextElement("SKIPME"); err != nil {
		t.Fatalf("NextElement() error = %v", err)
	}
	if err := xs.SkipToClose("SKIPME"); err != nil {
		t.Fatalf("SkipToClose() error = %v", err)
	}
	el, err := xs.NextElement()
	if err != nil {
		t.Fatalf("NextElement() error = %v", err)
	}
	if el.Name != "AFTER" {
		t.Fatalf("expected to land on AFTER, got %+v", el)
	}
}

func TestRawTokenExposesUnderlyingDecoder(t *testing.T) {
	xs := NewXMLStream(strings.NewReader(`<ROOT/>`))
	tok, err := xs.RawToken()
	if err != nil {
		t.Fatalf("RawToken() error = %v", err)
	}
	se, ok := tok.(xml.StartElement)
	if !ok || se.Name.Local != "ROOT" {
		t.Fatalf("expected a ROOT start element, got %#v", tok)
	}
}

func TestNextElementReturnsEOFAtEndOfStream(t *testing.T) {
	xs := NewXMLStream(strings.NewReader(`<ROOT/>`))
	if _, err := xs.NextElement(); err != nil {
		t.Fatalf("NextElement() error = %v", err)
	}
	if _, err := xs.NextElement(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
