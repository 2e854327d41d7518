package scrape

import (
	"context"
	"net/url"
	"time"
)

// Status is the outcome of one extraction attempt.
type Status string

// Status values for Document.
const (
	StatusOK         Status = "ok"
	StatusNonHTML    Status = "non_html"
	StatusFetchError Status = "fetch_error"
	StatusParseError Status = "parse_error"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOK, StatusNonHTML, StatusFetchError, StatusParseError:
		return true
	}
	return false
}

// Document is the structured record extracted from one candidate URL.
// Optional fields (PublicationDate, Author, ErrorDetail) are empty when absent.
type Document struct {
	ID          string `json:"id"`
	SourceID    string `json:"sourceId"`
	CompanyName string `json:"companyName"`

	URL         string    `json:"url"`
	Domain      string    `json:"domain"`
	FetchedAt   time.Time `json:"fetchedAt"`
	ContentType string    `json:"contentType"`

	Title           string   `json:"title"`
	MetaDescription string   `json:"metaDescription"`
	MainContent     string   `json:"mainContent"`
	PublicationDate string   `json:"publicationDate,omitempty"`
	Author          string   `json:"author,omitempty"`
	Tags            []string `json:"tags"`
	Language        string   `json:"language,omitempty"`
	ContentHash     string   `json:"contentHash"`

	Status      Status `json:"status"`
	ErrorDetail string `json:"errorDetail,omitempty"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if !d.Status.Valid() {
		return Errorf(EINVALID, "document status %q invalid", d.Status)
	}
	return nil
}

// DomainOf returns the authority component of rawURL, or an empty string
// if the URL cannot be parsed.
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// DocumentWriter writes documents to storage.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// DocumentService represents a service for managing extracted documents.
type DocumentService interface {
	// CreateDocument stores a new document. It assigns the ID and content hash.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter in storage order.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// ListSourceIDs returns the source ID of every stored document.
	ListSourceIDs(ctx context.Context) ([]string, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID       *string `json:"id"`
	SourceID *string `json:"sourceId"`
	Status   *Status `json:"status"`
	Domain   *string `json:"domain"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
