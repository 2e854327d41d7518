package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/scrape"
)

// Compile-time interface verification.
var _ scrape.CandidateService = (*CandidateService)(nil)

// CandidateService implements scrape.CandidateService using SQLite.
type CandidateService struct {
	db *DB
}

// NewCandidateService creates a new CandidateService.
func NewCandidateService(db *DB) *CandidateService {
	return &CandidateService{db: db}
}

// CreateCandidate stores a candidate. An existing candidate with the same
// source ID is updated in place and keeps its original position.
func (s *CandidateService) CreateCandidate(ctx context.Context, c *scrape.Candidate) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidates (source_id, url, company_name, relevance_category, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			url = excluded.url,
			company_name = excluded.company_name,
			relevance_category = excluded.relevance_category
	`, c.SourceID, c.URL, c.CompanyName, c.RelevanceCategory, formatTime(c.CreatedAt))

	return err
}

// FindCandidates retrieves candidates matching the filter in insertion order.
func (s *CandidateService) FindCandidates(ctx context.Context, filter scrape.CandidateFilter) ([]*scrape.Candidate, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT source_id, url, company_name, relevance_category, created_at FROM candidates WHERE 1=1")

	if len(filter.Categories) > 0 {
		query.WriteString(" AND relevance_category IN (" + placeholders(len(filter.Categories)) + ")")
		for _, c := range filter.Categories {
			args = append(args, c)
		}
	}
	if filter.CompanyName != nil {
		query.WriteString(" AND company_name = ?")
		args = append(args, *filter.CompanyName)
	}

	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []*scrape.Candidate
	for rows.Next() {
		var c scrape.Candidate
		var createdAt string

		if err := rows.Scan(&c.SourceID, &c.URL, &c.CompanyName, &c.RelevanceCategory, &createdAt); err != nil {
			return nil, err
		}

		var err error
		if c.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		candidates = append(candidates, &c)
	}

	return candidates, rows.Err()
}
