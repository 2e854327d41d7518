package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/scrape"
	"gopkg.in/yaml.v3"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var candidates []*scrape.Candidate
	if err := yaml.Unmarshal(data, &candidates); err != nil {
		fmt.Fprintf(deps.Stderr, "error: invalid candidate file %q: %v\n", c.File, err)
		return scrape.Errorf(scrape.EINVALID, "invalid candidate file: %v", err)
	}

	for i, cand := range candidates {
		if cand == nil {
			continue
		}
		if err := deps.Candidates.CreateCandidate(deps.Ctx, cand); err != nil {
			fmt.Fprintf(deps.Stderr, "error: candidate %d: %s\n", i+1, scrape.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Imported %d candidates\n", len(candidates))
	return nil
}
