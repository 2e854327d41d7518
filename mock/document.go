package mock

import (
	"context"

	"github.com/fwojciec/scrape"
)

var _ scrape.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of scrape.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *scrape.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*scrape.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter scrape.DocumentFilter) ([]*scrape.Document, error)
	ListSourceIDsFn    func(ctx context.Context) ([]string, error)
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *scrape.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*scrape.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter scrape.DocumentFilter) ([]*scrape.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) ListSourceIDs(ctx context.Context) ([]string, error) {
	return s.ListSourceIDsFn(ctx)
}

var _ scrape.CandidateService = (*CandidateService)(nil)

// CandidateService is a mock implementation of scrape.CandidateService.
type CandidateService struct {
	CreateCandidateFn func(ctx context.Context, c *scrape.Candidate) error
	FindCandidatesFn  func(ctx context.Context, filter scrape.CandidateFilter) ([]*scrape.Candidate, error)
}

func (s *CandidateService) CreateCandidate(ctx context.Context, c *scrape.Candidate) error {
	return s.CreateCandidateFn(ctx, c)
}

func (s *CandidateService) FindCandidates(ctx context.Context, filter scrape.CandidateFilter) ([]*scrape.Candidate, error) {
	return s.FindCandidatesFn(ctx, filter)
}
