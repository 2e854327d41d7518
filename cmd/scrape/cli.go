package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/batch"
	scrapehttp "github.com/fwojciec/scrape/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Candidates scrape.CandidateService
	Documents  scrape.DocumentService
	Driver     *batch.Driver
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string           `name:"db" env:"SCRAPE_DB" default:"${db}" help:"SQLite database path"`
	Config  kong.ConfigFlag  `name:"config" help:"YAML file with flag defaults"`
	Verbose bool             `short:"v" help:"Log debug output"`
	LogFile string           `name:"log-file" help:"Also write JSON logs to this rotated file"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Import ImportCmd `cmd:"" help:"Import candidate URLs from a YAML file"`
	Run    RunCmd    `cmd:"" help:"Scrape relevant candidates and store the documents"`
	List   ListCmd   `cmd:"" help:"List stored documents"`
	Show   ShowCmd   `cmd:"" help:"Print one stored document as JSON"`
	Export ExportCmd `cmd:"" help:"Export ok documents as markdown files"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML file with a list of candidates"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Delay          time.Duration `default:"3s" help:"Pause between requests (per domain when concurrent)"`
	Timeout        time.Duration `default:"15s" help:"Per-request timeout"`
	UserAgent      string        `name:"user-agent" default:"${user_agent}" help:"User-Agent header"`
	Concurrency    int           `short:"c" default:"1" help:"Domains processed in parallel"`
	Retries        int           `default:"0" help:"Extra attempts after a fetch error"`
	Category       []string      `short:"C" help:"Relevance categories to scrape (repeatable)"`
	Company        string        `help:"Only scrape candidates of this company"`
	Rescrape       bool          `help:"Scrape candidates that already have a document"`
	Readability    bool          `help:"Fall back to readability when no main content is found"`
	DetectLanguage bool          `name:"detect-language" default:"true" negatable:"" help:"Detect document language"`
	MetricsAddr    string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address"`
}

// Validate rejects batch settings the driver cannot run with.
func (c *RunCmd) Validate() error {
	switch {
	case c.Delay < 0:
		return scrape.Errorf(scrape.EINVALID, "--delay must not be negative")
	case c.Timeout <= 0:
		return scrape.Errorf(scrape.EINVALID, "--timeout must be positive")
	case c.Concurrency < 0:
		return scrape.Errorf(scrape.EINVALID, "--concurrency must not be negative")
	case c.Retries < 0:
		return scrape.Errorf(scrape.EINVALID, "--retries must not be negative")
	}
	return nil
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Status string `short:"s" help:"Only documents with this status (ok, non_html, fetch_error, parse_error)"`
	Domain string `help:"Only documents from this domain"`
	Source string `help:"Only documents for this source ID"`
	Limit  int    `short:"n" help:"Maximum number of documents"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Document ID"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir  string `arg:"" help:"Base directory for the export"`
	Name string `default:"documents" help:"Name of the export directory"`
}

// parserVars holds interpolation values for CLI defaults.
func parserVars(dbPath string) kong.Vars {
	return kong.Vars{
		"db":         dbPath,
		"user_agent": scrapehttp.DefaultUserAgent,
		"version":    version,
	}
}

var version = "dev"
