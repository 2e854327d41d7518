package main

import (
	"fmt"

	"github.com/fwojciec/scrape"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := scrape.DocumentFilter{Limit: c.Limit}
	if c.Status != "" {
		status := scrape.Status(c.Status)
		if !status.Valid() {
			fmt.Fprintf(deps.Stderr, "error: unknown status %q\n", c.Status)
			return scrape.Errorf(scrape.EINVALID, "unknown status %q", c.Status)
		}
		filter.Status = &status
	}
	if c.Domain != "" {
		filter.Domain = &c.Domain
	}
	if c.Source != "" {
		filter.SourceID = &c.Source
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'scrape run' to scrape candidates.")
		return nil
	}

	for _, doc := range docs {
		title := doc.Title
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-11s  %s  %s\n", doc.ID, doc.Status, doc.URL, title)
	}

	return nil
}
