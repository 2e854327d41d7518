package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scrape"
	"golang.org/x/net/html"
)

// DateChain extracts the publication date as a raw string. No calendar
// validation or reformatting is applied.
var DateChain = Chain{DateFromTimeElement, DateFromPublishedMeta, DateFromText}

const monthNames = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`

// datePatterns are tried in order against the page text.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d{1,2}\s+` + monthNames + `\s+\d{4}`),
	regexp.MustCompile(`(?i)` + monthNames + `\s+\d{1,2},\s+\d{4}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
}

// DateFromTimeElement uses the first <time> element: its datetime attribute
// if present, else its text.
func DateFromTimeElement(doc *goquery.Document) (string, bool) {
	sel := doc.Find("time").First()
	if sel.Length() == 0 {
		return "", false
	}
	if v, ok := sel.Attr("datetime"); ok {
		if date := scrape.Normalize(v); date != "" {
			return date, true
		}
	}
	date := scrape.Normalize(sel.Text())
	return date, date != ""
}

// DateFromPublishedMeta uses <meta property="article:published_time">.
func DateFromPublishedMeta(doc *goquery.Document) (string, bool) {
	return metaProperty(doc, "article:published_time")
}

// DateFromText scans the whole page text for the first date-like substring.
// Patterns are tried in priority order, not by position in the text.
func DateFromText(doc *goquery.Document) (string, bool) {
	text := pageText(doc)
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

// pageText joins every text node of the page with a space so that text from
// adjacent elements never runs together.
func pageText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return scrape.Normalize(b.String())
}

func metaProperty(doc *goquery.Document, property string) (string, bool) {
	var value string
	doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		p, _ := sel.Attr("property")
		if p != property {
			return true
		}
		content, _ := sel.Attr("content")
		value = scrape.Normalize(content)
		return value == ""
	})
	return value, value != ""
}
