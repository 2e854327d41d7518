package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/scrape"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
