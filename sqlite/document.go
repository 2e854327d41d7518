package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/scrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ scrape.DocumentService = (*DocumentService)(nil)

const documentColumns = `id, source_id, company_name, url, domain, fetched_at, content_type,
	title, meta_description, main_content, publication_date, author, tags, language,
	content_hash, status, error_detail`

// DocumentService implements scrape.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateDocument stores a new document. It assigns the ID and content hash,
// and sets FetchedAt if the caller left it zero.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *scrape.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}
	doc.ContentHash = hashContent(doc.MainContent)
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	tags, err := json.Marshal(doc.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourceID, doc.CompanyName, doc.URL, doc.Domain, formatTime(doc.FetchedAt),
		doc.ContentType, doc.Title, doc.MetaDescription, doc.MainContent, doc.PublicationDate,
		doc.Author, string(tags), doc.Language, doc.ContentHash, string(doc.Status), doc.ErrorDetail)

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*scrape.Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, scrape.Errorf(scrape.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter in insertion order.
func (s *DocumentService) FindDocuments(ctx context.Context, filter scrape.DocumentFilter) ([]*scrape.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceID != nil {
		query.WriteString(" AND source_id = ?")
		args = append(args, *filter.SourceID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}

	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*scrape.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// ListSourceIDs returns the distinct source IDs of stored documents.
func (s *DocumentService) ListSourceIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT source_id FROM documents WHERE source_id != '' ORDER BY source_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*scrape.Document, error) {
	var doc scrape.Document
	var fetchedAt, tags, status string

	if err := row.Scan(&doc.ID, &doc.SourceID, &doc.CompanyName, &doc.URL, &doc.Domain, &fetchedAt,
		&doc.ContentType, &doc.Title, &doc.MetaDescription, &doc.MainContent, &doc.PublicationDate,
		&doc.Author, &tags, &doc.Language, &doc.ContentHash, &status, &doc.ErrorDetail); err != nil {
		return nil, err
	}

	var err error
	if doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &doc.Tags); err != nil {
		return nil, fmt.Errorf("failed to parse tags: %w", err)
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	doc.Status = scrape.Status(status)

	return &doc, nil
}
