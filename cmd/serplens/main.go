package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/fwojciec/serplens"
	"github.com/fwojciec/serplens/crawl"
	"github.com/fwojciec/serplens/csv"
	"github.com/fwojciec/serplens/fuzzy"
	serphttp "github.com/fwojciec/serplens/http"
	serpslog "github.com/fwojciec/serplens/slog"
	"github.com/fwojciec/serplens/sqlite"
	"github.com/fwojciec/serplens/xlsx"
)

func main() {
	ctx := context.Background()

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

	// RunService for end-to-end testing.
	RunService serplens.RunService
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
		kong.Name("serplens"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'serplens --help' to see available commands")
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

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SERPLENS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RunService = sqlite.NewRunService(m.DB)
	deps.DB = m.DB
	deps.Runs = m.RunService
	deps.Reports = xlsx.NewReportWriter()

	if cmd == "analyze" {
		apiKey := os.Getenv("SERPAPI_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "SERPAPI_KEY environment variable not set. Get an API key at https://serpapi.com")
			return fmt.Errorf("SERPAPI_KEY not set. Get a key at https://serpapi.com")
		}

		var serp serplens.SERPService = serphttp.NewSERPClient(apiKey)
		var fetcher serplens.Fetcher = serphttp.NewFetcher()
		if cli.Analyze.Verbose {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			serp = serpslog.NewLoggingSERPService(serp, logger)
			fetcher = serpslog.NewLoggingFetcher(fetcher, logger)
		}
		defer fetcher.Close()

		var authority serplens.AuthorityProvider
		if cli.Analyze.Ahrefs != "" {
			provider, err := csv.NewProviderFromFile(cli.Analyze.Ahrefs)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Pass an Ahrefs batch analysis CSV export with --ahrefs")
				return fmt.Errorf("failed to load authority data: %w", err)
			}
			authority = provider
		}

		deps.Runner = &crawl.Runner{
			SERP:        serp,
			Fetcher:     fetcher,
			Extractor:   nil, // set per run once the config is known
			Authority:   authority,
			Grouper:     fuzzy.NewGrouper(),
			RateLimiter: crawl.NewDomainLimiter(cli.Analyze.Rate),
			Concurrency: cli.Analyze.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("SERPLENS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "serplens.db"
	}
	dir := filepath.Join(home, ".serplens")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "serplens.db")
}
