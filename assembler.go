package scrape

// Assembler turns a fetched page into a Document.
type Assembler interface {
	// Assemble parses body and runs every field extractor against it.
	// It never fails: unparseable input yields a StatusParseError document
	// and missing fields are left empty.
	Assemble(url string, body []byte, contentType string) *Document
}

// BodyExtractor is a last-resort main content extractor used when the
// heuristic chain finds nothing.
type BodyExtractor interface {
	ExtractBody(html []byte, pageURL string) (string, error)
}

// LanguageDetector identifies the language of a text sample.
type LanguageDetector interface {
	// DetectLanguage returns an ISO 639-3 code, or an empty string when
	// the language cannot be determined reliably.
	DetectLanguage(text string) string
}
