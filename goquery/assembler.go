package goquery

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scrape"
)

var _ scrape.Assembler = (*Assembler)(nil)

// languageSampleWords is the number of main content words fed to the
// language detector.
const languageSampleWords = 100

// Assembler runs the extractor chains over a page and builds the Document.
// The zero value is ready to use.
type Assembler struct {
	// BodyFallback is consulted when BodyChain finds no main content.
	BodyFallback scrape.BodyExtractor

	// Language, if set, fills Document.Language.
	Language scrape.LanguageDetector

	// Now returns the fetch timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Assemble parses body and extracts every field. Parsing failures, including
// panics from malformed input, yield a StatusParseError document.
func (a *Assembler) Assemble(url string, body []byte, contentType string) (doc *scrape.Document) {
	doc = &scrape.Document{
		URL:         url,
		Domain:      scrape.DomainOf(url),
		FetchedAt:   a.now(),
		ContentType: contentType,
		Tags:        []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			clearFields(doc)
			doc.Status = scrape.StatusParseError
			doc.ErrorDetail = fmt.Sprintf("parse HTML: %v", r)
		}
	}()

	page, err := Parse(body)
	if err != nil {
		doc.Status = scrape.StatusParseError
		doc.ErrorDetail = scrape.ErrorMessage(err)
		return doc
	}

	doc.Title, _ = TitleChain.Extract(page)
	doc.MetaDescription, _ = DescriptionChain.Extract(page)
	doc.PublicationDate, _ = DateChain.Extract(page)
	doc.Author, _ = AuthorChain.Extract(page)
	doc.MainContent = a.mainContent(page, body, url)
	doc.Tags = Tags(page)
	doc.Language = a.language(doc)
	doc.Status = scrape.StatusOK
	return doc
}

func (a *Assembler) mainContent(page *goquery.Document, body []byte, url string) string {
	if text, ok := BodyChain.Extract(page); ok {
		return text
	}
	if a.BodyFallback == nil {
		return ""
	}
	text, err := a.BodyFallback.ExtractBody(body, url)
	if err != nil {
		return ""
	}
	return scrape.Normalize(text)
}

func (a *Assembler) language(doc *scrape.Document) string {
	if a.Language == nil {
		return ""
	}
	words := strings.Fields(doc.MainContent)
	if len(words) > languageSampleWords {
		words = words[:languageSampleWords]
	}
	sample := scrape.Normalize(doc.Title + " " + doc.MetaDescription + " " + strings.Join(words, " "))
	if sample == "" {
		return ""
	}
	return a.Language.DetectLanguage(sample)
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func clearFields(doc *scrape.Document) {
	doc.Title = ""
	doc.MetaDescription = ""
	doc.MainContent = ""
	doc.PublicationDate = ""
	doc.Author = ""
	doc.Tags = []string{}
	doc.Language = ""
}
