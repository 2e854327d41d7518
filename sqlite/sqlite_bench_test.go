package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkDocumentInserts measures storing one batch record at a time,
// the way the batch driver hands records to storage.
func BenchmarkDocumentInserts(b *testing.B) {
	b.Run("memory", func(b *testing.B) {
		benchmarkDocumentInserts(b, ":memory:")
	})

	b.Run("wal_file", func(b *testing.B) {
		benchmarkDocumentInserts(b, filepath.Join(b.TempDir(), "bench.db"))
	})
}

func benchmarkDocumentInserts(b *testing.B, path string) {
	b.Helper()

	db := sqlite.NewDB(path)
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	svc := sqlite.NewDocumentService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		doc := &scrape.Document{
			SourceID:    fmt.Sprintf("sr-%d", i),
			CompanyName: "Acme",
			URL:         fmt.Sprintf("https://news.example.com/article/%d", i),
			Domain:      "news.example.com",
			ContentType: "text/html",
			Title:       fmt.Sprintf("Article %d", i),
			MainContent: fmt.Sprintf("Article %d reports on Acme Corp results with enough text to be realistic.", i),
			Tags:        []string{"business", "earnings"},
			Status:      scrape.StatusOK,
		}
		if err := svc.CreateDocument(ctx, doc); err != nil {
			b.Fatal(err)
		}
	}
}
