package head

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func rebuildHead(t *testing.T, src string) string {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	Rebuild(doc)
	out, err := doc.Find("head").Html()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func TestRebuild_PreservesExistingValues(t *testing.T) {
	out := rebuildHead(t, `<html><head>
		<meta name="generator" content="cms"/>
		<title>My Page</title>
		<meta name="viewport" content="width=600"/>
		<meta name="description" content="about us"/>
		<script src="app.js"></script>
	</head><body></body></html>`)

	if !strings.Contains(out, "<title>My Page</title>") {
		t.Fatalf("title not preserved: %s", out)
	}
	if !strings.Contains(out, `content="width=600"`) {
		t.Fatalf("viewport not preserved: %s", out)
	}
	if !strings.Contains(out, `content="about us"`) {
		t.Fatalf("description not preserved: %s", out)
	}
	if strings.Contains(out, "generator") || strings.Contains(out, "app.js") {
		t.Fatalf("unlisted head content must be discarded: %s", out)
	}
}

func TestRebuild_DefaultsAndOrder(t *testing.T) {
	out := rebuildHead(t, `<html><head></head><body></body></html>`)

	charset := strings.Index(out, `charset="utf-8"`)
	title := strings.Index(out, "<title>Projeto</title>")
	viewport := strings.Index(out, `name="viewport"`)
	link := strings.Index(out, `href="styles/styles.css"`)
	if charset < 0 || title < 0 || viewport < 0 || link < 0 {
		t.Fatalf("missing rebuilt element: %s", out)
	}
	if !(charset < title && title < viewport && viewport < link) {
		t.Fatalf("elements out of order: %s", out)
	}
	if !strings.Contains(out, "width=device-width, initial-scale=1.0") {
		t.Fatalf("default viewport missing: %s", out)
	}
}

func TestRebuild_DescriptionNeverSynthesized(t *testing.T) {
	out := rebuildHead(t, `<html><head><title>T</title></head><body></body></html>`)
	if strings.Contains(out, `name="description"`) {
		t.Fatalf("description must not be synthesized: %s", out)
	}
}

func TestRebuild_EmptyTitleGetsPlaceholder(t *testing.T) {
	out := rebuildHead(t, `<html><head><title>  </title></head><body></body></html>`)
	if !strings.Contains(out, "<title>Projeto</title>") {
		t.Fatalf("empty title must fall back to placeholder: %s", out)
	}
}
