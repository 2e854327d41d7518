package goquery_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/goquery"
	"github.com/fwojciec/scrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
	<title>Acme Corp opens new plant</title>
	<meta name="description" content="Acme Corp expands manufacturing.">
	<meta property="article:author" content="Meta Writer">
</head>
<body>
	<nav><a href="/">Home</a></nav>
	<article>
		<span class="byline">Jane Doe</span>
		<time datetime="2024-02-01">February 1, 2024</time>
		<p>Acme Corp announced a new plant on Monday in Ohio.</p>
		<p>Ok.</p>
		<p>The facility will employ three hundred workers by 2025.</p>
		<ul><li class="tag">Manufacturing</li><li class="tag">Ohio</li></ul>
	</article>
</body>
</html>`

func fixedClock() time.Time {
	return time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)
}

func TestAssembler_Assemble(t *testing.T) {
	t.Parallel()

	t.Run("extracts every field", func(t *testing.T) {
		t.Parallel()

		a := &goquery.Assembler{Now: fixedClock}
		doc := a.Assemble("https://news.example.com/acme", []byte(articlePage), "text/html; charset=utf-8")

		require.NotNil(t, doc)
		assert.Equal(t, scrape.StatusOK, doc.Status)
		assert.Equal(t, "https://news.example.com/acme", doc.URL)
		assert.Equal(t, "news.example.com", doc.Domain)
		assert.Equal(t, fixedClock(), doc.FetchedAt)
		assert.Equal(t, "text/html; charset=utf-8", doc.ContentType)
		assert.Equal(t, "Acme Corp opens new plant", doc.Title)
		assert.Equal(t, "Acme Corp expands manufacturing.", doc.MetaDescription)
		assert.Equal(t, "2024-02-01", doc.PublicationDate)
		assert.Equal(t, "Jane Doe", doc.Author)
		assert.Equal(t, "Acme Corp announced a new plant on Monday in Ohio.\n\nThe facility will employ three hundred workers by 2025.", doc.MainContent)
		assert.Equal(t, []string{"Manufacturing", "Ohio"}, doc.Tags)
		assert.Empty(t, doc.Language)
		assert.Empty(t, doc.ErrorDetail)
	})

	t.Run("succeeds on an empty page", func(t *testing.T) {
		t.Parallel()

		doc := (&goquery.Assembler{}).Assemble("https://example.com", nil, "text/html")

		assert.Equal(t, scrape.StatusOK, doc.Status)
		assert.Empty(t, doc.Title)
		assert.Empty(t, doc.MainContent)
		assert.Empty(t, doc.PublicationDate)
		assert.Empty(t, doc.Author)
		assert.NotNil(t, doc.Tags)
		assert.Empty(t, doc.Tags)
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><title>Broken</title><body><div class="content"><p>Unclosed paragraph that keeps going on<p>Another one here that is long`
		doc := (&goquery.Assembler{}).Assemble("https://example.com", []byte(html), "text/html")

		assert.Equal(t, scrape.StatusOK, doc.Status)
		assert.NotEmpty(t, doc.MainContent)
	})

	t.Run("uses body fallback when heuristics find nothing", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		a := &goquery.Assembler{
			BodyFallback: &mock.BodyExtractor{
				ExtractBodyFn: func(_ []byte, pageURL string) (string, error) {
					gotURL = pageURL
					return "  Readable\n text ", nil
				},
			},
		}
		doc := a.Assemble("https://example.com/x", []byte(`<div>no paragraphs</div>`), "text/html")

		assert.Equal(t, "https://example.com/x", gotURL)
		assert.Equal(t, "Readable text", doc.MainContent)
	})

	t.Run("skips body fallback when heuristics succeed", func(t *testing.T) {
		t.Parallel()

		a := &goquery.Assembler{
			BodyFallback: &mock.BodyExtractor{
				ExtractBodyFn: func([]byte, string) (string, error) {
					t.Fatal("fallback should not be called")
					return "", nil
				},
			},
		}
		doc := a.Assemble("https://example.com", []byte(articlePage), "text/html")

		assert.Contains(t, doc.MainContent, "Acme Corp announced")
	})

	t.Run("detects language from title description and leading words", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("alpha ", 150)
		html := `<title>Title</title><meta name="description" content="Desc"><article><p>` + body + `</p></article>`

		var sample string
		a := &goquery.Assembler{
			Language: &mock.LanguageDetector{
				DetectLanguageFn: func(text string) string {
					sample = text
					return "eng"
				},
			},
		}
		doc := a.Assemble("https://example.com", []byte(html), "text/html")

		assert.Equal(t, "eng", doc.Language)
		assert.True(t, strings.HasPrefix(sample, "Title Desc alpha"))
		assert.Len(t, strings.Fields(sample), 102)
	})

	t.Run("skips language detection for empty pages", func(t *testing.T) {
		t.Parallel()

		a := &goquery.Assembler{
			Language: &mock.LanguageDetector{
				DetectLanguageFn: func(string) string {
					t.Fatal("detector should not be called")
					return ""
				},
			},
		}
		doc := a.Assemble("https://example.com", []byte("<div></div>"), "text/html")

		assert.Empty(t, doc.Language)
	})

	t.Run("reports panics as parse errors", func(t *testing.T) {
		t.Parallel()

		a := &goquery.Assembler{
			Language: &mock.LanguageDetector{
				DetectLanguageFn: func(string) string { panic("boom") },
			},
		}
		doc := a.Assemble("https://example.com", []byte(articlePage), "text/html")

		assert.Equal(t, scrape.StatusParseError, doc.Status)
		assert.Contains(t, doc.ErrorDetail, "boom")
		assert.Empty(t, doc.Title)
		assert.Equal(t, "https://example.com", doc.URL)
	})
}
