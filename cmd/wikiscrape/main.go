package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikiscrape"
	"github.com/fwojciec/wikiscrape/goquery"
	"github.com/fwojciec/wikiscrape/scrape"
	wsslog "github.com/fwojciec/wikiscrape/slog"
	"github.com/fwojciec/wikiscrape/sqlite"
	"github.com/fwojciec/wikiscrape/tls"
	"github.com/fwojciec/wikiscrape/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database, opened only by commands that need it.
	DB *sqlite.DB

	// Fetcher replaces the TLS transport when set.
	Fetcher wikiscrape.Fetcher

	// Now stamps run directories and documents.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Now:    time.Now,
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
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikiscrape"),
		kong.Description("Scrape encyclopedia articles into JSON and Markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wikiscrape --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := yaml.LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cmd == "list" || (cmd == "scrape" && cli.Scrape.DB) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WIKISCRAPE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Articles = wsslog.NewLoggingArticleService(sqlite.NewArticleService(m.DB), logger)
	}

	if cmd == "scrape" || cmd == "search" {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher = tls.NewTransport(
				tls.WithTimeout(cfg.Transport.Timeout),
				tls.WithMaxRedirects(cfg.Transport.MaxRedirects),
				tls.WithUserAgent(cfg.Transport.UserAgent),
				tls.WithAcceptLanguage(cfg.Site.AcceptLanguage),
			)
		}
		fetcher = wsslog.NewLoggingFetcher(fetcher, logger)

		deps.Searcher = wsslog.NewLoggingSearcher(scrape.NewResolver(fetcher, cfg.Site), logger)

		delay := cfg.Scrape.Delay
		if cli.Scrape.Delay > 0 {
			delay = cli.Scrape.Delay
		}
		retryDelays := cfg.Scrape.RetryDelays
		if cli.Scrape.Retries > 0 {
			retryDelays = scrape.DefaultRetryDelays(cli.Scrape.Retries)
		}

		deps.Scraper = &scrape.Scraper{
			Fetcher: fetcher,
			Extractor: goquery.NewExtractor(cfg.Site,
				goquery.WithMaxLinks(cfg.Extract.MaxLinks),
				goquery.WithMaxImages(cfg.Extract.MaxImages),
				goquery.WithMinImageSize(cfg.Extract.MinImageSize),
			),
			RateLimiter: scrape.NewDomainLimiter(delay),
			RetryDelays: retryDelays,
			Logger: func(format string, args ...any) {
				fmt.Fprintf(stderr, format+"\n", args...)
			},
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("WIKISCRAPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "wikiscrape.db"
	}
	dir := filepath.Join(home, ".wikiscrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "wikiscrape.db")
}
