package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parse(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestReadable_Indents(t *testing.T) {
	doc := parse(t, `<!DOCTYPE html><html><head><title>T</title></head><body><div><p>hi</p></div></body></html>`)
	out, err := Readable(doc)
	if err != nil {
		t.Fatalf("readable: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>\n") {
		t.Fatalf("missing doctype: %s", out)
	}
	if !strings.Contains(out, "\n    <div>\n      <p>\n        hi\n") {
		t.Fatalf("expected nested indentation: %s", out)
	}
}

func TestReadable_Reparseable(t *testing.T) {
	doc := parse(t, `<html><head></head><body><div class="a"><img src="x.png"/></div></body></html>`)
	out, err := Readable(doc)
	if err != nil {
		t.Fatalf("readable: %v", err)
	}
	again, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if again.Find("div.a img").Length() != 1 {
		t.Fatalf("structure lost across render/reparse: %s", out)
	}
}

func TestMinified_RemovesCommentsExceptMarkers(t *testing.T) {
	doc := parse(t, `<body><!-- HEADER --><!-- note --><p>hi</p></body>`)
	out, err := Minified(doc)
	if err != nil {
		t.Fatalf("minified: %v", err)
	}
	if !strings.Contains(out, "<!-- HEADER -->") {
		t.Fatalf("structural comment removed: %s", out)
	}
	if strings.Contains(out, "note") {
		t.Fatalf("ordinary comment survived: %s", out)
	}
}

func TestMinified_CollapsesWhitespace(t *testing.T) {
	doc := parse(t, "<body>\n  <div>\n    <p>two  spaces   here</p>\n  </div>\n</body>")
	out, err := Minified(doc)
	if err != nil {
		t.Fatalf("minified: %v", err)
	}
	if strings.Contains(out, "\n") {
		t.Fatalf("newlines must be removed: %q", out)
	}
	if strings.Contains(out, "> <") || strings.Contains(out, ">  <") {
		t.Fatalf("inter-tag whitespace must collapse: %q", out)
	}
	if strings.Contains(out, "two  spaces") {
		t.Fatalf("space runs must collapse: %q", out)
	}
	if !strings.Contains(out, "two spaces here") {
		t.Fatalf("text content mangled: %q", out)
	}
}

func TestMinified_StripsRedundantTypeAttributes(t *testing.T) {
	doc := parse(t, `<head><style type="text/css">p{}</style></head><body><script type="text/javascript" src="a.js"></script></body>`)
	out, err := Minified(doc)
	if err != nil {
		t.Fatalf("minified: %v", err)
	}
	if strings.Contains(out, "text/javascript") || strings.Contains(out, "text/css") {
		t.Fatalf("default type attributes must be stripped: %q", out)
	}
}
