// Package batch drives extraction over a list of candidate URLs.
// It coordinates fetching, assembly, and hand-off of each record to storage.
package batch

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/scrape"
	"golang.org/x/sync/errgroup"
)

// Driver produces one Document per candidate with a non-empty URL, in
// input order. A failure on one candidate never stops the batch.
type Driver struct {
	Fetcher   scrape.Fetcher
	Assembler scrape.Assembler

	// Documents, if set, receives every record in input order.
	Documents scrape.DocumentWriter

	// RateLimiter spaces requests per domain when Concurrency > 1.
	// Defaults to NewDomainLimiter(Delay).
	RateLimiter scrape.DomainLimiter

	// Delay is the pause between consecutive requests. With Concurrency > 1
	// it becomes the minimum interval between requests to one domain.
	Delay time.Duration

	// Concurrency is the number of domains processed in parallel.
	// Values below 2 select strictly sequential processing.
	Concurrency int

	// RetryDelays are waited between fetch attempts. Empty means one attempt.
	RetryDelays []time.Duration

	// Log, if set, receives retry notices.
	Log LogFunc

	// Now returns the timestamp for records that never reach the assembler.
	Now func() time.Time
}

// Result holds the outcome of a batch run.
type Result struct {
	Documents  []*scrape.Document
	Counts     map[scrape.Status]int
	SaveFailed int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Document  *scrape.Document
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// indexedDocument carries a record with its input position.
type indexedDocument struct {
	position int
	doc      *scrape.Document
}

// Run processes candidates and returns the records produced. Candidates with
// an empty URL are skipped. If ctx is canceled, Run stops between candidates
// and returns the records emitted so far together with the context error.
func (d *Driver) Run(ctx context.Context, candidates []*scrape.Candidate, progress ProgressFunc) (*Result, error) {
	work := make([]*scrape.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c != nil && strings.TrimSpace(c.URL) != "" {
			work = append(work, c)
		}
	}

	result := &Result{
		Documents: make([]*scrape.Document, 0, len(work)),
		Counts:    make(map[scrape.Status]int),
	}
	total := len(work)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	emit := func(doc *scrape.Document) {
		result.Documents = append(result.Documents, doc)
		result.Counts[doc.Status]++

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: len(result.Documents),
			Total:     total,
			Document:  doc,
		}
		if doc.Status != scrape.StatusOK {
			event.Type = ProgressFailed
		}
		if d.Documents != nil {
			if err := d.Documents.CreateDocument(ctx, doc); err != nil {
				result.SaveFailed++
				event.Type = ProgressFailed
				event.Error = err
			}
		}
		if progress != nil {
			progress(event)
		}
	}

	var err error
	if d.Concurrency > 1 {
		err = d.runConcurrent(ctx, work, emit)
	} else {
		err = d.runSequential(ctx, work, emit)
	}
	if err != nil {
		return result, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return result, nil
}

// runSequential processes candidates one at a time, waiting Delay between
// requests.
func (d *Driver) runSequential(ctx context.Context, work []*scrape.Candidate, emit func(*scrape.Document)) error {
	for i, c := range work {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			if err := sleep(ctx, d.Delay); err != nil {
				return err
			}
		}

		doc := d.process(ctx, c)
		if err := ctx.Err(); err != nil {
			return err
		}
		emit(doc)
	}
	return nil
}

// runConcurrent processes distinct domains in parallel. Candidates sharing
// a domain stay on one worker, so one domain never sees concurrent requests.
// Records are re-sequenced before emit so storage sees input order.
func (d *Driver) runConcurrent(ctx context.Context, work []*scrape.Candidate, emit func(*scrape.Document)) error {
	limiter := d.RateLimiter
	if limiter == nil {
		limiter = NewDomainLimiter(d.Delay)
	}

	resultCh := make(chan indexedDocument, len(work))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.Concurrency)

	var groupErr error
	go func() {
		for _, positions := range groupByDomain(work) {
			positions := positions
			g.Go(func() error {
				for _, pos := range positions {
					c := work[pos]
					if err := limiter.Wait(gctx, scrape.DomainOf(c.URL)); err != nil {
						return err
					}
					doc := d.process(gctx, c)
					if err := gctx.Err(); err != nil {
						return err
					}
					resultCh <- indexedDocument{position: pos, doc: doc}
				}
				return nil
			})
		}
		groupErr = g.Wait()
		close(resultCh)
	}()

	pending := make(map[int]*scrape.Document)
	next := 0
	for r := range resultCh {
		pending[r.position] = r.doc
		for {
			doc, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			emit(doc)
			next++
		}
	}

	if groupErr != nil {
		return groupErr
	}
	return ctx.Err()
}

// groupByDomain returns candidate positions grouped by domain. Groups are
// ordered by first appearance and positions keep input order.
func groupByDomain(work []*scrape.Candidate) [][]int {
	index := make(map[string]int)
	var groups [][]int
	for pos, c := range work {
		domain := scrape.DomainOf(c.URL)
		i, ok := index[domain]
		if !ok {
			i = len(groups)
			index[domain] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], pos)
	}
	return groups
}

// process fetches and assembles a single candidate. It always returns a
// record.
func (d *Driver) process(ctx context.Context, c *scrape.Candidate) *scrape.Document {
	fetched, err := FetchWithRetryDelays(ctx, c.URL, d.Fetcher.Fetch, d.Log, d.RetryDelays)
	if err != nil {
		return d.failedDocument(c, scrape.StatusFetchError, "", errorDetail(err))
	}

	if !fetched.IsHTML() {
		detail := scrape.Errorf(scrape.ENONHTML, "not HTML content: %s", fetched.ContentType)
		doc := d.failedDocument(c, scrape.StatusNonHTML, fetched.ContentType, detail.Message)
		if fetched.Domain != "" {
			doc.Domain = fetched.Domain
		}
		return doc
	}

	doc := d.Assembler.Assemble(c.URL, fetched.Body, fetched.ContentType)
	doc.SourceID = c.SourceID
	doc.CompanyName = c.CompanyName
	if fetched.Domain != "" {
		doc.Domain = fetched.Domain
	}
	return doc
}

func (d *Driver) failedDocument(c *scrape.Candidate, status scrape.Status, contentType, detail string) *scrape.Document {
	return &scrape.Document{
		SourceID:    c.SourceID,
		CompanyName: c.CompanyName,
		URL:         c.URL,
		Domain:      scrape.DomainOf(c.URL),
		FetchedAt:   d.now(),
		ContentType: contentType,
		Tags:        []string{},
		Status:      status,
		ErrorDetail: detail,
	}
}

func (d *Driver) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// errorDetail describes err for a record's ErrorDetail.
func errorDetail(err error) string {
	var e *scrape.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
