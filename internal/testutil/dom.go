package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// Text returns the trimmed text of the first node matching the selector,
// failing the test when nothing matches.
func Text(t testing.TB, doc *goquery.Document, selector string) string {
	t.Helper()

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		t.Fatalf("no node matches %q", selector)
	}
	return strings.TrimSpace(sel.First().Text())
}
