package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docsite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config   docsite.Config
	Provider string
	SiteURL  string

	Builder     docsite.IndexBuilder
	Index       docsite.IndexFetcher
	Documents   docsite.DocumentService
	Transcripts docsite.TranscriptService

	// Chatter is nil when no model provider is configured.
	Chatter docsite.Chatter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" env:"DOCSITE_CONFIG" help:"YAML configuration file"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	BasePath    string `name:"base-path" env:"DOCSITE_BASE_PATH" help:"URL prefix of document pages (default /docs)"`
	ContentPath string `name:"content" env:"DOCSITE_CONTENT_PATH" help:"Documentation source directory (default content/docs)"`
	DB          string `name:"db-path" env:"DOCSITE_DB" help:"SQLite database path"`
	FromDB      bool   `name:"from-db" env:"DOCSITE_FROM_DB" help:"Read the index snapshot stored by build --db instead of the content directory"`
	Extractor   string `enum:",goquery,readability,trafilatura" default:"" env:"DOCSITE_EXTRACTOR" help:"Main-content extractor for HTML pages (goquery, readability, trafilatura)"`

	Provider string `enum:",groq,anthropic,openai,gemini" default:"" env:"DOCSITE_PROVIDER" help:"Model provider for chat (default groq)"`
	Model    string `env:"DOCSITE_MODEL" help:"Model name (default depends on provider)"`

	Build   BuildCmd   `cmd:"" help:"Build the search index from the content directory"`
	Search  SearchCmd  `cmd:"" help:"Search the documentation"`
	Ask     AskCmd     `cmd:"" help:"Ask a question answered from the documentation"`
	Serve   ServeCmd   `cmd:"" help:"Serve the search index and chat endpoints over HTTP"`
	TUI     TUICmd     `cmd:"" name:"tui" help:"Open the interactive search surface"`
	MCP     MCPCmd     `cmd:"" name:"mcp" help:"Run an MCP server exposing search and chat tools"`
	Docs    DocsCmd    `cmd:"" help:"List documents stored for the content directory"`
	Delete  DeleteCmd  `cmd:"" help:"Delete the stored index snapshot for the content directory"`
	History HistoryCmd `cmd:"" help:"List recent chat transcripts"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Out string `short:"o" type:"path" help:"Write the index as JSON to this file"`
	DB  bool   `help:"Store the index snapshot in the database"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search query"`
	Limit int    `short:"n" default:"10" help:"Maximum number of results"`
	Index string `type:"path" help:"Search a JSON index written by build --out instead of the content directory"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the documentation"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string  `default:":8080" env:"DOCSITE_ADDR" help:"Listen address"`
	SiteURL string  `name:"site-url" env:"DOCSITE_SITE_URL" help:"Public origin used in the sitemap"`
	Rate    float64 `default:"0.5" help:"Chat requests per second allowed per client"`
	Burst   int     `default:"5" help:"Chat request burst allowed per client"`
}

// TUICmd is the "tui" subcommand.
type TUICmd struct {
	Remote string `env:"DOCSITE_REMOTE" help:"Base URL of a running docsite server to search instead of local content"`
}

// MCPCmd is the "mcp" subcommand.
type MCPCmd struct {
	HTTP string `name:"http" help:"Serve streamable HTTP on this address instead of stdio"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Full   bool `help:"Print full document content as sent to the model"`
	Limit  int  `short:"n" help:"Maximum number of documents to list"`
	Offset int  `help:"Number of documents to skip"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Force bool `short:"f" help:"Confirm deletion"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int `short:"n" default:"10" help:"Number of transcripts to show"`
}
