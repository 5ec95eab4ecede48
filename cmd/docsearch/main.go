package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/gemini"
	"github.com/fwojciec/docsearch/index"
	"github.com/fwojciec/docsearch/search"
	docslog "github.com/fwojciec/docsearch/slog"
	"github.com/fwojciec/docsearch/sqlite"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// A .env in the working directory is a convenience, not a requirement.
	_ = godotenv.Load()

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
	PageService    docsearch.PageService
	SectionService docsearch.SectionService
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
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsearch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCSEARCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.PageService = sqlite.NewPageService(m.DB)
	m.SectionService = sqlite.NewSectionService(m.DB)
	deps.DB = m.DB
	deps.Pages = m.PageService
	deps.Sections = m.SectionService

	// The index, search, and serve commands call the embedding API.
	if cmd == "index" || cmd == "search" || cmd == "serve" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		embedder, err := gemini.NewEmbedder(client)
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}
		deps.Embedder = docslog.NewLoggingEmbedder(embedder, logger)
	}

	if cmd == "index" {
		deps.Indexer = &index.Indexer{
			Walker:      fs.NewWalker(),
			Pages:       deps.Pages,
			Sections:    deps.Sections,
			Embedder:    deps.Embedder,
			Logger:      logger,
			Limiter:     rate.NewLimiter(rate.Limit(cli.Index.RPS), 1),
			Concurrency: cli.Index.Concurrency,
		}
	}

	if cmd == "search" || cmd == "serve" {
		deps.Searcher = docslog.NewLoggingSearcher(
			search.NewService(deps.Embedder, deps.Sections), logger)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("DOCSEARCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docsearch.db"
	}
	dir := filepath.Join(home, ".docsearch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docsearch.db")
}
