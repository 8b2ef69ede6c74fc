package main

import (
	"fmt"

	"github.com/fwojciec/serplens"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := serplens.RunFilter{Limit: c.Limit}
	if c.Procedure != "" {
		filter.Procedure = &c.Procedure
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", serplens.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'serplens analyze' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d pages\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Procedure, len(r.Pages))
	}

	return nil
}
