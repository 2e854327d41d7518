package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/batch"
	main "github.com/fwojciec/scrape/cmd/scrape"
	"github.com/fwojciec/scrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCmd_Run(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	newDriver := func(fetched *[]string) *batch.Driver {
		return &batch.Driver{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*scrape.FetchResult, error) {
					*fetched = append(*fetched, url)
					if url == "https://example.com/broken" {
						return nil, scrape.Errorf(scrape.EFETCH, "HTTP 500")
					}
					return &scrape.FetchResult{Body: []byte("<html></html>"), ContentType: "text/html", StatusCode: 200}, nil
				},
			},
			Assembler: &mock.Assembler{
				AssembleFn: func(url string, _ []byte, contentType string) *scrape.Document {
					return &scrape.Document{URL: url, ContentType: contentType, Status: scrape.StatusOK, Tags: []string{}, FetchedAt: fixedTime}
				},
			},
			Now: func() time.Time { return fixedTime },
		}
	}

	candidates := []*scrape.Candidate{
		{SourceID: "s1", URL: "https://example.com/old", CompanyName: "Acme"},
		{SourceID: "s2", URL: "https://example.com/new", CompanyName: "Acme"},
		{SourceID: "s3", URL: "https://example.com/broken", CompanyName: "Globex"},
	}

	t.Run("skips candidates that already have a document", func(t *testing.T) {
		t.Parallel()

		var filter scrape.CandidateFilter
		var fetched []string
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Candidates: &mock.CandidateService{
				FindCandidatesFn: func(_ context.Context, f scrape.CandidateFilter) ([]*scrape.Candidate, error) {
					filter = f
					return candidates, nil
				},
			},
			Documents: &mock.DocumentService{
				ListSourceIDsFn: func(_ context.Context) ([]string, error) {
					return []string{"s1"}, nil
				},
				FindDocumentsFn: func(_ context.Context, f scrape.DocumentFilter) ([]*scrape.Document, error) {
					require.NotNil(t, f.SourceID)
					if *f.SourceID == "s1" {
						return []*scrape.Document{{ID: "d1", SourceID: "s1"}}, nil
					}
					return nil, nil
				},
			},
			Driver: newDriver(&fetched),
		}

		err := (&main.RunCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, scrape.DefaultRelevanceCategories(), filter.Categories)
		assert.Equal(t, []string{"https://example.com/new", "https://example.com/broken"}, fetched)
		assert.Contains(t, stdout.String(), "Processed 2 URLs, skipped 1: ok=1 non_html=0 fetch_error=1 parse_error=0")
		assert.Contains(t, stderr.String(), "fetch_error https://example.com/broken: HTTP 500")
	})

	t.Run("rescrape processes every candidate", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Candidates: &mock.CandidateService{
				FindCandidatesFn: func(_ context.Context, _ scrape.CandidateFilter) ([]*scrape.Candidate, error) {
					return candidates, nil
				},
			},
			Documents: &mock.DocumentService{
				ListSourceIDsFn: func(_ context.Context) ([]string, error) {
					t.Fatal("ListSourceIDs should not be called with --rescrape")
					return nil, nil
				},
			},
			Driver: newDriver(&fetched),
		}

		err := (&main.RunCmd{Rescrape: true}).Run(deps)

		require.NoError(t, err)
		assert.Len(t, fetched, 3)
	})

	t.Run("passes category and company filters", func(t *testing.T) {
		t.Parallel()

		var filter scrape.CandidateFilter
		var fetched []string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Candidates: &mock.CandidateService{
				FindCandidatesFn: func(_ context.Context, f scrape.CandidateFilter) ([]*scrape.Candidate, error) {
					filter = f
					return nil, nil
				},
			},
			Documents: &mock.DocumentService{
				ListSourceIDsFn: func(_ context.Context) ([]string, error) { return nil, nil },
			},
			Driver: newDriver(&fetched),
		}

		err := (&main.RunCmd{Category: []string{"highly_relevant"}, Company: "Acme"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"highly_relevant"}, filter.Categories)
		require.NotNil(t, filter.CompanyName)
		assert.Equal(t, "Acme", *filter.CompanyName)
		assert.Empty(t, fetched)
		assert.Contains(t, stdout.String(), "Nothing to scrape")
	})

	t.Run("returns error when candidates cannot be loaded", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Candidates: &mock.CandidateService{
				FindCandidatesFn: func(_ context.Context, _ scrape.CandidateFilter) ([]*scrape.Candidate, error) {
					return nil, errors.New("disk I/O error")
				},
			},
			Driver: newDriver(&fetched),
		}

		err := (&main.RunCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reports partial results when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var fetched []string
		driver := newDriver(&fetched)
		driver.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*scrape.FetchResult, error) {
				fetched = append(fetched, url)
				cancel()
				return &scrape.FetchResult{Body: []byte("<html></html>"), ContentType: "text/html", StatusCode: 200}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Candidates: &mock.CandidateService{
				FindCandidatesFn: func(_ context.Context, _ scrape.CandidateFilter) ([]*scrape.Candidate, error) {
					return candidates, nil
				},
			},
			Driver: driver,
		}

		err := (&main.RunCmd{Rescrape: true}).Run(deps)

		require.ErrorIs(t, err, context.Canceled)
		assert.Len(t, fetched, 1)
		assert.Contains(t, stdout.String(), "Processed")
	})
}
