package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scrape"
)

// BodyChain extracts the main article text.
var BodyChain = Chain{BodyFromContainer, BodyFromParagraphs, BodyFromLongestParagraph}

const (
	// minParagraphLength is the shortest paragraph, in characters, kept in a body.
	minParagraphLength = 20

	// minLoneParagraphLength is the shortest paragraph accepted as the whole body.
	minLoneParagraphLength = 200

	paragraphSeparator = "\n\n"
)

var containerPattern = regexp.MustCompile(`(?i)article|post|content|entry`)

// containers returns the candidate article containers in document order:
// <article>, <main>, and any element whose class or role attribute mentions
// article, post, content or entry.
func containers(doc *goquery.Document) *goquery.Selection {
	return doc.Find("*").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		switch goquery.NodeName(sel) {
		case "article", "main":
			return true
		}
		if classMatches(sel, containerPattern) {
			return true
		}
		role, ok := sel.Attr("role")
		return ok && containerPattern.MatchString(role)
	})
}

// paragraphs returns the normalized text of every <p> in sel longer than
// minParagraphLength.
func paragraphs(sel *goquery.Selection) []string {
	var kept []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := scrape.Normalize(p.Text())
		if runeLen(text) > minParagraphLength {
			kept = append(kept, text)
		}
	})
	return kept
}

// BodyFromContainer uses the first container holding at least one
// qualifying paragraph.
func BodyFromContainer(doc *goquery.Document) (string, bool) {
	var body string
	containers(doc).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if kept := paragraphs(sel); len(kept) > 0 {
			body = strings.Join(kept, paragraphSeparator)
			return false
		}
		return true
	})
	return body, body != ""
}

// BodyFromParagraphs joins every qualifying paragraph on the page. It only
// applies when the page has no container at all.
func BodyFromParagraphs(doc *goquery.Document) (string, bool) {
	if containers(doc).Length() > 0 {
		return "", false
	}
	kept := paragraphs(doc.Selection)
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, paragraphSeparator), true
}

// BodyFromLongestParagraph returns the single longest paragraph if it is
// longer than minLoneParagraphLength. Ties go to the earliest paragraph.
func BodyFromLongestParagraph(doc *goquery.Document) (string, bool) {
	var longest string
	var longestLen int
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := scrape.Normalize(p.Text())
		if n := runeLen(text); n > longestLen {
			longest, longestLen = text, n
		}
	})
	if longestLen <= minLoneParagraphLength {
		return "", false
	}
	return longest, true
}
