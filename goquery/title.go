package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scrape"
)

// TitleChain extracts the page title.
var TitleChain = Chain{TitleFromElement}

// TitleFromElement returns the normalized text of the first <title>.
func TitleFromElement(doc *goquery.Document) (string, bool) {
	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return "", false
	}
	title := scrape.Normalize(sel.Text())
	return title, title != ""
}

// DescriptionChain extracts the page summary.
var DescriptionChain = Chain{DescriptionFromMeta}

// DescriptionFromMeta returns the content of the first <meta name="description">.
func DescriptionFromMeta(doc *goquery.Document) (string, bool) {
	var desc string
	doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		name, _ := sel.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "description") {
			return true
		}
		content, _ := sel.Attr("content")
		desc = scrape.Normalize(content)
		return false
	})
	return desc, desc != ""
}
