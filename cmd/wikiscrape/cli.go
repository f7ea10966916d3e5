package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/wikiscrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time

	Searcher wikiscrape.Searcher
	Scraper  wikiscrape.ArticleScraper

	// Articles is set when the command uses the database.
	Articles wikiscrape.ArticleService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log every request to stderr"`
	Config  string `short:"c" env:"WIKISCRAPE_CONFIG" help:"YAML configuration file"`

	Scrape ScrapeCmd `cmd:"" default:"withargs" help:"Scrape articles from URLs or a keyword search (default)"`
	Search SearchCmd `cmd:"" help:"Print the article URLs a keyword search resolves to"`
	List   ListCmd   `cmd:"" help:"List articles stored in the database"`
}

// ScrapeCmd is the "scrape" subcommand. Without a source it asks for one
// on stdin.
type ScrapeCmd struct {
	File    string        `short:"f" help:"File listing article URLs, one per line"`
	URLs    string        `short:"u" name:"urls" help:"Comma-separated article URLs"`
	Keyword string        `short:"k" help:"Search keyword; scrapes the top results"`
	Number  int           `short:"n" default:"5" help:"Number of search results to scrape"`
	Output  string        `short:"o" default:"resultats" help:"Output directory"`
	DB      bool          `name:"db" help:"Also save articles to the database"`
	Retries int           `help:"Retries per failed fetch (overrides the configuration)"`
	Delay   time.Duration `help:"Pause between requests to the same host (overrides the configuration)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search keyword"`
	Number int    `short:"n" default:"5" help:"Maximum number of results"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Title  string `short:"t" help:"Only articles whose title contains this text"`
	Limit  int    `short:"l" default:"20" help:"Maximum number of articles"`
	Offset int    `help:"Number of articles to skip"`
}
