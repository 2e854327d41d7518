package mock

import "github.com/fwojciec/scrape"

var _ scrape.Assembler = (*Assembler)(nil)

// Assembler is a mock implementation of scrape.Assembler.
type Assembler struct {
	AssembleFn func(url string, body []byte, contentType string) *scrape.Document
}

func (a *Assembler) Assemble(url string, body []byte, contentType string) *scrape.Document {
	return a.AssembleFn(url, body, contentType)
}

var _ scrape.BodyExtractor = (*BodyExtractor)(nil)

// BodyExtractor is a mock implementation of scrape.BodyExtractor.
type BodyExtractor struct {
	ExtractBodyFn func(html []byte, pageURL string) (string, error)
}

func (e *BodyExtractor) ExtractBody(html []byte, pageURL string) (string, error) {
	return e.ExtractBodyFn(html, pageURL)
}

var _ scrape.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of scrape.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) string
}

func (d *LanguageDetector) DetectLanguage(text string) string {
	return d.DetectLanguageFn(text)
}
