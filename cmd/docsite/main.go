package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/anthropic"
	"github.com/fwojciec/docsite/cache"
	"github.com/fwojciec/docsite/chat"
	"github.com/fwojciec/docsite/fs"
	"github.com/fwojciec/docsite/gemini"
	"github.com/fwojciec/docsite/goquery"
	"github.com/fwojciec/docsite/htmltomarkdown"
	"github.com/fwojciec/docsite/openai"
	"github.com/fwojciec/docsite/readability"
	dsslog "github.com/fwojciec/docsite/slog"
	"github.com/fwojciec/docsite/sqlite"
	"github.com/fwojciec/docsite/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// tokenizerModel is used for corpus token counting; the local tokenizer
// only knows a subset of Gemini models.
const tokenizerModel = "gemini-2.5-flash"

// Main represents the program.
type Main struct {
	// Database path used when neither flag nor config file sets one.
	DBPath string

	// Getenv looks up provider API keys. Defaults to os.Getenv.
	Getenv func(string) string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Getenv: os.Getenv,
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
		kong.Name("docsite"),
		kong.Description("Search and chat over a documentation content directory."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsite --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	file, err := LoadConfigFile(cli.Config)
	if err != nil {
		return err
	}
	settings := cli.Resolve(file, m.Getenv)

	deps.Config = settings.Config
	deps.SiteURL = settings.SiteURL
	deps.Provider = settings.ProviderLabel()
	deps.Logger = newLogger(stderr, cli.Verbose, cmd == "tui")

	extractor, err := newExtractor(settings.Extractor)
	if err != nil {
		return err
	}
	builder := fs.NewIndexBuilder(settings.Config.BasePath,
		fs.WithConverter(htmltomarkdown.NewConverter()),
		fs.WithExtractor(extractor),
	)
	deps.Builder = dsslog.NewLoggingIndexBuilder(builder, deps.Logger)

	var documents *sqlite.DocumentService
	if needsDB(cmd, cli) {
		m.DB = sqlite.NewDB(cmp.Or(settings.DB, m.DBPath))
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCSITE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cmp.Or(settings.DB, m.DBPath), err)
		}
		defer m.Close()

		documents = sqlite.NewDocumentService(m.DB)
		deps.Documents = documents
		deps.Transcripts = sqlite.NewTranscriptService(m.DB)
	}

	// Search and chat read either the content directory or the snapshot
	// stored by "build --db", through one shared cache.
	var source docsite.IndexFetcher = builder
	if cli.FromDB {
		source = documents
	}
	index := cache.NewIndexCache(dsslog.NewLoggingIndexFetcher(source, deps.Logger))
	deps.Index = index

	if needsChat(cmd, cli) {
		chatter, err := m.newChatter(ctx, settings, index, deps.Logger)
		switch {
		case err == nil:
			deps.Chatter = chatter
		case cmd == "ask":
			fmt.Fprintf(stderr, "error: %s\n", docsite.ErrorMessage(err))
			return err
		default:
			deps.Logger.Warn("chat disabled", "err", docsite.ErrorMessage(err))
		}
	}

	return kongCtx.Run(deps)
}

func needsDB(cmd string, cli *CLI) bool {
	if cli.FromDB {
		return true
	}
	switch cmd {
	case "build":
		return cli.Build.DB
	case "ask", "serve", "history", "docs", "delete":
		return true
	case "tui":
		return cli.TUI.Remote == ""
	}
	return false
}

func needsChat(cmd string, cli *CLI) bool {
	switch cmd {
	case "ask", "serve", "mcp":
		return true
	case "tui":
		return cli.TUI.Remote == ""
	}
	return false
}

// newLogger writes text logs to w. The interactive surface owns the
// terminal, so it stays silent unless verbose.
func newLogger(w io.Writer, verbose, interactive bool) *slog.Logger {
	if interactive && !verbose {
		return slog.New(slog.DiscardHandler)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newExtractor(name string) (docsite.Extractor, error) {
	switch name {
	case "goquery":
		return goquery.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	}
	return nil, docsite.Errorf(docsite.EINVALID, "unknown extractor %q", name)
}

// newChatter wires the configured provider into a chat orchestrator
// grounded in the documents loaded by corpus.
func (m *Main) newChatter(ctx context.Context, s Settings, corpus docsite.CorpusLoader, logger *slog.Logger) (docsite.Chatter, error) {
	gen, err := newGenerator(ctx, s.Provider)
	if err != nil {
		return nil, err
	}

	var opts []chat.Option
	if s.SystemPrompt != "" {
		opts = append(opts, chat.WithSystemPrompt(s.SystemPrompt))
	}
	if s.MaxCorpusTokens > 0 {
		counter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		opts = append(opts, chat.WithTokenBudget(counter, s.MaxCorpusTokens, chat.DefaultTopK))
	}

	return chat.NewOrchestrator(
		corpus,
		dsslog.NewLoggingGenerator(gen, s.ProviderLabel(), logger),
		s.Config.ContentPath,
		opts...,
	), nil
}

func newGenerator(ctx context.Context, p docsite.ModelProvider) (docsite.Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.APIKey == "" {
		return nil, docsite.Errorf(docsite.EINVALID, "%s not set", apiKeyEnv[p.Type])
	}

	switch p.Type {
	case docsite.ProviderAnthropic:
		return anthropic.NewGenerator(anthropic.Config{APIKey: p.APIKey, BaseURL: p.BaseURL, Model: p.ModelName()})
	case docsite.ProviderOpenAI:
		return openai.NewGenerator(openai.Config{APIKey: p.APIKey, BaseURL: p.BaseURL, Model: p.ModelName()})
	case docsite.ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  p.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewGenerator(client, p.ModelName()), nil
	default:
		return openai.NewGenerator(openai.Config{
			APIKey:  p.APIKey,
			BaseURL: cmp.Or(p.BaseURL, openai.GroqBaseURL),
			Model:   p.ModelName(),
		})
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "docsite.db"
	}
	dir := filepath.Join(home, ".docsite")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docsite.db")
}
