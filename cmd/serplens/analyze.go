package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/fwojciec/serplens"
	"github.com/fwojciec/serplens/crawl"
	"github.com/fwojciec/serplens/goquery"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	if deps.Runner.Extractor == nil {
		deps.Runner.Extractor = goquery.NewExtractor(cfg.WithDefaults())
	}
	if c.Concurrency > 0 {
		deps.Runner.Concurrency = c.Concurrency
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Analyzing %d pages\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.URL)
		}
	}

	run, err := deps.Runner.Run(deps.Ctx, cfg, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", serplens.ErrorMessage(err))
		return err
	}

	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", serplens.ErrorMessage(err))
		return err
	}

	printRunSummary(deps, run)

	if c.Output != "" {
		if err := deps.Reports.Write(run, c.Output); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", serplens.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Output)
	}

	return nil
}

// loadConfig reads and parses the analysis config YAML.
func loadConfig(path string) (serplens.Config, error) {
	var cfg serplens.Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return cfg, nil
}

// printRunSummary writes the terminal summary after a completed run.
func printRunSummary(deps *Dependencies, run *serplens.Run) {
	fmt.Fprintf(deps.Stdout, "Saved run %s: %d pages, %d scraped OK\n",
		run.ID, len(run.Pages), run.ScrapedOK())

	counts := run.TypeCounts()
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", t, counts[serplens.PageType(t)])
	}

	for _, p := range run.Pages {
		fmt.Fprintf(deps.Stdout, "  %-14s %-20s score %.1f  %s\n",
			p.Label(), p.Type, p.RichnessScore, p.Diagnosis)
	}
}
