package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scrape"
)

// AuthorChain extracts the byline.
var AuthorChain = Chain{AuthorFromByline, AuthorFromMeta}

// maxAuthorLength is the longest byline, in characters, that is kept.
const maxAuthorLength = 100

var (
	bylineClass = regexp.MustCompile(`(?i)author|byline`)
	bylineTags  = map[string]bool{"a": true, "span": true, "div": true}
)

// AuthorFromByline returns the text of the first a, span or div whose class
// mentions author or byline. Bylines longer than maxAuthorLength are skipped.
func AuthorFromByline(doc *goquery.Document) (string, bool) {
	var author string
	eachElement(doc, bylineTags, func(sel *goquery.Selection) bool {
		if !classMatches(sel, bylineClass) {
			return true
		}
		text := scrape.Normalize(sel.Text())
		if text == "" || runeLen(text) > maxAuthorLength {
			return true
		}
		author = text
		return false
	})
	return author, author != ""
}

// AuthorFromMeta uses <meta property="article:author">.
func AuthorFromMeta(doc *goquery.Document) (string, bool) {
	return metaProperty(doc, "article:author")
}
