// Package fs exports extracted documents as markdown files.
package fs

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/scrape"
	"gopkg.in/yaml.v3"
)

// Ensure Exporter implements scrape.DocumentWriter at compile time.
var _ scrape.DocumentWriter = (*Exporter)(nil)

// Exporter writes documents as markdown files with atomic update semantics.
// Files are written to a temporary directory, then moved into place on Commit.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates a new Exporter.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		name:    name,
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// CreateDocument writes doc into the temporary directory.
func (e *Exporter) CreateDocument(ctx context.Context, doc *scrape.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := DocumentPath(doc)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(e.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the output directory with everything written so far.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.finalDir())
}

// Abort discards everything written so far.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// DocumentPath returns the file path of doc relative to the export root:
// the domain followed by the URL path, e.g.
// https://news.example.com/tech/acme → news.example.com/tech/acme.md.
// URLs with a query string get a hash suffix so they do not collide.
func DocumentPath(doc *scrape.Document) (string, error) {
	u, err := url.Parse(doc.URL)
	if err != nil {
		return "", scrape.Errorf(scrape.EINVALID, "invalid document URL: %v", err)
	}

	domain := doc.Domain
	if domain == "" {
		domain = u.Host
	}
	if domain == "" {
		domain = "unknown"
	}
	domain = strings.ReplaceAll(domain, ":", "_")

	p := strings.TrimPrefix(u.Path, "/")
	switch {
	case p == "":
		p = "index"
	case strings.HasSuffix(p, "/"):
		p += "index"
	}
	if u.RawQuery != "" {
		p += "-" + shortHash(u.RawQuery)
	}

	rel := filepath.Clean(filepath.Join(domain, filepath.FromSlash(p)+".md"))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || !strings.HasPrefix(rel, domain+string(filepath.Separator)) {
		return "", scrape.Errorf(scrape.EINVALID, "path traversal in %s", doc.URL)
	}
	return rel, nil
}

// frontMatter is the YAML header of an exported document.
type frontMatter struct {
	Source      string   `yaml:"source"`
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Company     string   `yaml:"company,omitempty"`
	Author      string   `yaml:"author,omitempty"`
	Published   string   `yaml:"published,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Language    string   `yaml:"language,omitempty"`
	Fetched     string   `yaml:"fetched"`
	Status      string   `yaml:"status"`
}

// FormatDocument renders doc as markdown with YAML front matter.
func FormatDocument(doc *scrape.Document) (string, error) {
	fm := frontMatter{
		Source:      doc.URL,
		Title:       doc.Title,
		Description: doc.MetaDescription,
		Company:     doc.CompanyName,
		Author:      doc.Author,
		Published:   doc.PublicationDate,
		Tags:        doc.Tags,
		Language:    doc.Language,
		Fetched:     doc.FetchedAt.UTC().Format("2006-01-02"),
		Status:      string(doc.Status),
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(doc.MainContent)
	b.WriteString("\n")
	return b.String(), nil
}

func shortHash(s string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(s))
	return hex.EncodeToString(b[:4])
}
