package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scrape"
)

// maxTagLength is the longest tag text, in characters, that is kept.
const maxTagLength = 30

var (
	tagClass    = regexp.MustCompile(`(?i)tag|category|topic`)
	tagElements = map[string]bool{"a": true, "span": true, "li": true}
)

// Tags collects the text of every a, span or li whose class mentions a tag,
// category or topic. Order follows the document and duplicates are kept.
func Tags(doc *goquery.Document) []string {
	tags := []string{}
	eachElement(doc, tagElements, func(sel *goquery.Selection) bool {
		if !classMatches(sel, tagClass) {
			return true
		}
		text := scrape.Normalize(sel.Text())
		if text != "" && runeLen(text) <= maxTagLength {
			tags = append(tags, text)
		}
		return true
	})
	return tags
}
