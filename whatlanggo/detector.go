// Package whatlanggo provides language detection backed by whatlanggo.
package whatlanggo

import (
	"github.com/abadojack/whatlanggo"
	"github.com/fwojciec/scrape"
)

// Ensure Detector implements scrape.LanguageDetector at compile time.
var _ scrape.LanguageDetector = (*Detector)(nil)

// Detector identifies the language of a text sample.
type Detector struct {
	// AllowUnreliable keeps low-confidence guesses instead of discarding them.
	AllowUnreliable bool
}

// NewDetector creates a Detector that only reports reliable results.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectLanguage returns the ISO 639-3 code of text, or an empty string.
func (d *Detector) DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if info.Lang < 0 {
		return ""
	}
	if !d.AllowUnreliable && !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6393()
}
