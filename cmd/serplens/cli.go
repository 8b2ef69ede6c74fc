package main

import (
	"context"
	"io"

	"github.com/fwojciec/serplens"
	"github.com/fwojciec/serplens/crawl"
	"github.com/fwojciec/serplens/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Runs    serplens.RunService
	Runner  *crawl.Runner
	Reports serplens.ReportWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Analyze AnalyzeCmd `cmd:"" help:"Run a competitive analysis for a procedure"`
	List    ListCmd    `cmd:"" help:"List saved analysis runs"`
	Show    ShowCmd    `cmd:"" help:"Show the results of a saved run"`
	Export  ExportCmd  `cmd:"" help:"Export a saved run to an Excel workbook"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved run"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Config      string  `arg:"" help:"Path to the analysis config YAML"`
	Ahrefs      string  `short:"a" help:"Path to an Ahrefs batch analysis CSV export"`
	Output      string  `short:"o" help:"Write the Excel workbook to this path after the run"`
	Concurrency int     `short:"c" default:"5" help:"Concurrent fetch limit"`
	Rate        float64 `short:"r" default:"1.0" help:"Requests per second per domain"`
	Verbose     bool    `short:"v" help:"Log fetch and search activity"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Procedure string `short:"p" help:"Only show runs for this procedure"`
	Limit     int    `short:"n" default:"20" help:"Maximum number of runs to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Run ID"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID     string `arg:"" help:"Run ID"`
	Output string `short:"o" help:"Workbook path (defaults to a name derived from the run)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}
