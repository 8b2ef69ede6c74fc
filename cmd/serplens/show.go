package main

import (
	"fmt"

	"github.com/fwojciec/serplens"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if serplens.ErrorCode(err) == serplens.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'serplens list' to see saved runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", serplens.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", run.ID, run.Procedure, run.CreatedAt.Format("2006-01-02 15:04"))
	printRunSummary(deps, run)

	if run.Analysis == nil {
		return nil
	}

	if len(run.Analysis.Differentiators) > 0 {
		fmt.Fprintln(deps.Stdout, "Top-rank differentiators:")
		for _, d := range run.Analysis.Differentiators {
			fmt.Fprintf(deps.Stdout, "  %s: %s\n", d.Element, d.Summary)
		}
	}
	if len(run.Analysis.GapOpportunities) > 0 {
		fmt.Fprintln(deps.Stdout, "Gap opportunities:")
		for _, g := range run.Analysis.GapOpportunities {
			fmt.Fprintf(deps.Stdout, "  %s\n", g)
		}
	}
	if len(run.Analysis.ConsensusOrder) > 0 {
		fmt.Fprintln(deps.Stdout, "Consensus section order:")
		for i, s := range run.Analysis.ConsensusOrder {
			fmt.Fprintf(deps.Stdout, "  %d. %s\n", i+1, s)
		}
	}

	return nil
}
