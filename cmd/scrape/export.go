package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	status := scrape.StatusOK
	docs, err := deps.Documents.FindDocuments(deps.Ctx, scrape.DocumentFilter{Status: &status})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}

	exporter := fs.NewExporter(c.Dir, c.Name)
	if err := exporter.Abort(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: clear stale export: %v\n", err)
		return err
	}
	for _, doc := range docs {
		if err := exporter.CreateDocument(deps.Ctx, doc); err != nil {
			_ = exporter.Abort()
			fmt.Fprintf(deps.Stderr, "error: export %s: %s\n", doc.URL, scrape.ErrorMessage(err))
			return err
		}
	}

	if err := exporter.Commit(); err != nil {
		_ = exporter.Abort()
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", len(docs), filepath.Join(c.Dir, c.Name))
	return nil
}
