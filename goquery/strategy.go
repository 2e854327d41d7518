// Package goquery implements the field extractors and the document
// assembler on top of the goquery HTML library.
package goquery

import (
	"bytes"
	"regexp"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scrape"
	"golang.org/x/net/html"
)

// Strategy extracts one field from a parsed page. It reports false when
// the page offers nothing for the strategy to use.
type Strategy func(doc *goquery.Document) (string, bool)

// Chain is an ordered list of strategies. The first one that succeeds wins.
type Chain []Strategy

// Extract evaluates the chain and returns the first non-empty result.
func (c Chain) Extract(doc *goquery.Document) (string, bool) {
	for _, s := range c {
		if v, ok := s(doc); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Parse builds a goquery document from raw HTML bytes.
func Parse(body []byte) (*goquery.Document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, scrape.Errorf(scrape.EPARSE, "parse HTML: %v", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// eachElement calls fn for every element whose tag is in tags, in document
// order, until fn returns false.
func eachElement(doc *goquery.Document, tags map[string]bool, fn func(sel *goquery.Selection) bool) {
	doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !tags[goquery.NodeName(sel)] {
			return true
		}
		return fn(sel)
	})
}

// classMatches reports whether the element's class attribute matches re.
func classMatches(sel *goquery.Selection, re *regexp.Regexp) bool {
	class, ok := sel.Attr("class")
	return ok && class != "" && re.MatchString(class)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
