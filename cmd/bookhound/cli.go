package main

import (
	"context"
	"io"
	"log/slog"

	"bookhound/aggregate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Registry   *aggregate.Registry
	Aggregator *aggregate.Aggregator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve     ServeCmd     `cmd:"" help:"Serve the REST API"`
	Libraries LibrariesCmd `cmd:"" help:"List every searchable library"`
	Search    SearchCmd    `cmd:"" help:"Search the catalogs for a keyword"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Bind string `default:":8080" env:"BOOKHOUND_BIND" help:"Address to listen on"`
}

// LibrariesCmd is the "libraries" subcommand.
type LibrariesCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Keyword    string   `arg:"" help:"Search keyword"`
	LibraryIDs []string `name:"library-ids" short:"l" help:"Library IDs to search (repeatable; defaults to all)"`
	Export     string   `type:"path" help:"Write collected results to a JSON file"`
}
