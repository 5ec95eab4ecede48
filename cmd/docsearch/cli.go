package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/index"
	"github.com/fwojciec/docsearch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Pages    docsearch.PageService
	Sections docsearch.SectionService
	Embedder docsearch.Embedder
	Indexer  *index.Indexer
	Searcher docsearch.Searcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Index  IndexCmd  `cmd:"" help:"Index a documentation directory"`
	Search SearchCmd `cmd:"" help:"Search the indexed documentation"`
	Serve  ServeCmd  `cmd:"" help:"Serve the search API over HTTP"`
	List   ListCmd   `cmd:"" help:"List indexed pages"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Dir         string  `arg:"" help:"Documentation root directory"`
	Refresh     bool    `short:"r" help:"Re-index every document regardless of checksums"`
	Concurrency int     `short:"c" default:"1" help:"Documents processed at once"`
	RPS         float64 `name:"rps" default:"5" help:"Embedding requests per second"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Natural language query"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}
