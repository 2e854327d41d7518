package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/batch"
	"github.com/fwojciec/scrape/bloom"
)

// seenFalsePositiveRate is the Bloom filter error rate for already-scraped
// source IDs. Positives are confirmed against the store.
const seenFalsePositiveRate = 0.01

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	if deps.Driver == nil {
		return scrape.Errorf(scrape.EINTERNAL, "batch driver not configured")
	}

	filter := scrape.CandidateFilter{Categories: c.Category}
	if len(filter.Categories) == 0 {
		filter.Categories = scrape.DefaultRelevanceCategories()
	}
	if c.Company != "" {
		filter.CompanyName = &c.Company
	}

	candidates, err := deps.Candidates.FindCandidates(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}

	skipped := 0
	if !c.Rescrape {
		candidates, skipped, err = unscraped(deps.Ctx, deps.Documents, candidates)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
			return err
		}
	}

	if deps.Logger != nil {
		for _, g := range groupByCompany(candidates) {
			deps.Logger.Info("scraping company", "company", g.name, "urls", len(g.candidates))
		}
	}

	if len(candidates) == 0 {
		fmt.Fprintf(deps.Stdout, "Nothing to scrape (%d already scraped)\n", skipped)
		return nil
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Scraping %d URLs\n", event.Total)
		case batch.ProgressFailed:
			doc := event.Document
			if event.Error != nil {
				fmt.Fprintf(deps.Stderr, "  save %s: %v\n", batch.TruncateURL(doc.URL, 80), event.Error)
			} else {
				fmt.Fprintf(deps.Stderr, "  %s %s: %s\n", doc.Status, batch.TruncateURL(doc.URL, 80), doc.ErrorDetail)
			}
		}
	}

	result, err := deps.Driver.Run(deps.Ctx, candidates, progress)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "  Processed %d URLs, skipped %d: %s\n",
			len(result.Documents), skipped, batch.FormatCounts(result.Counts))
		if result.SaveFailed > 0 {
			fmt.Fprintf(deps.Stderr, "  %d documents could not be saved\n", result.SaveFailed)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: run interrupted: %v\n", err)
		return err
	}

	return nil
}

// unscraped drops candidates whose source ID already has a stored document.
func unscraped(ctx context.Context, docs scrape.DocumentService, candidates []*scrape.Candidate) ([]*scrape.Candidate, int, error) {
	ids, err := docs.ListSourceIDs(ctx)
	if err != nil {
		return nil, 0, err
	}
	seen := bloom.NewFilterFrom(ids, seenFalsePositiveRate)

	kept := make([]*scrape.Candidate, 0, len(candidates))
	skipped := 0
	for _, cand := range candidates {
		if cand.SourceID != "" && seen.MayContain(cand.SourceID) {
			id := cand.SourceID
			existing, err := docs.FindDocuments(ctx, scrape.DocumentFilter{SourceID: &id, Limit: 1})
			if err != nil {
				return nil, 0, err
			}
			if len(existing) > 0 {
				skipped++
				continue
			}
		}
		kept = append(kept, cand)
	}
	return kept, skipped, nil
}

type companyGroup struct {
	name       string
	candidates []*scrape.Candidate
}

// groupByCompany groups candidates by company name in order of first appearance.
func groupByCompany(candidates []*scrape.Candidate) []companyGroup {
	var groups []companyGroup
	index := make(map[string]int)
	for _, cand := range candidates {
		i, ok := index[cand.CompanyName]
		if !ok {
			i = len(groups)
			index[cand.CompanyName] = i
			groups = append(groups, companyGroup{name: cand.CompanyName})
		}
		groups[i].candidates = append(groups[i].candidates, cand)
	}
	return groups
}
