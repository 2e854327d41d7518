package scrape

import (
	"context"
	"time"
)

// Relevance categories assigned upstream by the search stage.
const (
	RelevanceHighlyRelevant = "highly_relevant"
	RelevanceRelevant       = "relevant"
)

// DefaultRelevanceCategories returns the categories whose candidates are scraped.
func DefaultRelevanceCategories() []string {
	return []string{RelevanceHighlyRelevant, RelevanceRelevant}
}

// Candidate is one URL slated for content extraction, linked back to the
// search result it came from.
type Candidate struct {
	SourceID          string    `json:"sourceId" yaml:"sourceId"`
	URL               string    `json:"url" yaml:"url"`
	CompanyName       string    `json:"companyName" yaml:"companyName"`
	RelevanceCategory string    `json:"relevanceCategory" yaml:"relevanceCategory"`
	CreatedAt         time.Time `json:"createdAt" yaml:"-"`
}

// Validate returns an error if the candidate cannot be stored.
// An empty URL is allowed; such candidates are skipped at extraction time.
func (c *Candidate) Validate() error {
	if c.SourceID == "" {
		return Errorf(EINVALID, "candidate source ID required")
	}
	return nil
}

// CandidateService represents the store of candidate URLs.
type CandidateService interface {
	// CreateCandidate stores a candidate, replacing one with the same source ID.
	CreateCandidate(ctx context.Context, c *Candidate) error

	// FindCandidates retrieves candidates matching the filter in insertion order.
	FindCandidates(ctx context.Context, filter CandidateFilter) ([]*Candidate, error)
}

// CandidateFilter represents a filter for FindCandidates.
type CandidateFilter struct {
	// Categories restricts results to these relevance categories. Empty means all.
	Categories  []string `json:"categories"`
	CompanyName *string  `json:"companyName"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
