package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scrape"
)

// Ensure LoggingDocumentWriter implements scrape.DocumentWriter.
var _ scrape.DocumentWriter = (*LoggingDocumentWriter)(nil)

// LoggingDocumentWriter wraps a DocumentWriter and logs every stored record.
type LoggingDocumentWriter struct {
	next   scrape.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next scrape.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// CreateDocument logs the record outcome and delegates to the wrapped writer.
func (w *LoggingDocumentWriter) CreateDocument(ctx context.Context, doc *scrape.Document) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil || doc.Status != scrape.StatusOK {
			level = slog.LevelWarn
		}
		w.logger.Log(ctx, level, "document",
			"url", doc.URL,
			"company", doc.CompanyName,
			"status", doc.Status,
			"title", doc.Title,
			"bytes", len(doc.MainContent),
			"error_detail", doc.ErrorDetail,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.CreateDocument(ctx, doc)
}
