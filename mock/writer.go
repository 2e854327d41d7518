package mock

import (
	"context"

	"github.com/fwojciec/scrape"
)

var _ scrape.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of scrape.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *scrape.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *scrape.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
