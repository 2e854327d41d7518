package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/batch"
	"github.com/fwojciec/scrape/goquery"
	scrapehttp "github.com/fwojciec/scrape/http"
	"github.com/fwojciec/scrape/prometheus"
	"github.com/fwojciec/scrape/readability"
	scrapeslog "github.com/fwojciec/scrape/slog"
	"github.com/fwojciec/scrape/sqlite"
	"github.com/fwojciec/scrape/whatlanggo"
	prom "github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	CandidateService scrape.CandidateService
	DocumentService  scrape.DocumentService

	// Fetcher overrides the HTTP fetcher used by the run command.
	Fetcher scrape.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scrape"),
		kong.Description("Extract structured documents from candidate web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(LoadConfig),
		parserVars(m.DBPath),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(stderr, cli.Verbose, cli.LogFile)
	defer closeLog()
	deps.Logger = logger

	m.DBPath = cli.DB
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SCRAPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.CandidateService = sqlite.NewCandidateService(m.DB)
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.Candidates = m.CandidateService
	deps.Documents = m.DocumentService

	if kongCtx.Command() == "run" {
		reg := prom.NewRegistry()
		metrics := prometheus.NewMetrics(reg)

		if cli.Run.MetricsAddr != "" {
			srv := &http.Server{
				Addr:              cli.Run.MetricsAddr,
				Handler:           metricsMux(reg),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("metrics server", "addr", cli.Run.MetricsAddr, "err", err)
				}
			}()
			defer srv.Close()
		}

		deps.Driver = m.newDriver(&cli.Run, logger, metrics)
	}

	return kongCtx.Run(deps)
}

// newDriver wires the fetch, assembly and storage pipeline for the run command.
func (m *Main) newDriver(c *RunCmd, logger *slog.Logger, metrics *prometheus.Metrics) *batch.Driver {
	var fetcher scrape.Fetcher = m.Fetcher
	if fetcher == nil {
		fetcher = scrapehttp.NewFetcher(
			scrapehttp.WithTimeout(c.Timeout),
			scrapehttp.WithUserAgent(c.UserAgent),
		)
	}
	fetcher = scrapeslog.NewLoggingFetcher(fetcher, logger)
	fetcher = prometheus.NewFetcher(fetcher, metrics)

	assembler := &goquery.Assembler{}
	if c.DetectLanguage {
		assembler.Language = whatlanggo.NewDetector()
	}
	if c.Readability {
		assembler.BodyFallback = readability.NewExtractor()
	}

	var documents scrape.DocumentWriter = m.DocumentService
	documents = scrapeslog.NewLoggingDocumentWriter(documents, logger)
	documents = prometheus.NewDocumentWriter(documents, metrics)

	retryDelays := make([]time.Duration, c.Retries)
	for i := range retryDelays {
		retryDelays[i] = time.Second << i
	}

	return &batch.Driver{
		Fetcher:     fetcher,
		Assembler:   assembler,
		Documents:   documents,
		RateLimiter: batch.NewDomainLimiter(c.Delay),
		Delay:       c.Delay,
		Concurrency: c.Concurrency,
		RetryDelays: retryDelays,
		Log: func(format string, args ...any) {
			logger.Info(fmt.Sprintf(format, args...))
		},
	}
}

func metricsMux(reg *prom.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.Handler(reg))
	return mux
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "scrape.db"
	}
	dir := filepath.Join(home, ".scrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "scrape.db")
}
