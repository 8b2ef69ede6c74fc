package main

import (
	"fmt"

	"github.com/fwojciec/serplens"
	"github.com/fwojciec/serplens/xlsx"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if serplens.ErrorCode(err) == serplens.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'serplens list' to see saved runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", serplens.ErrorMessage(err))
		}
		return err
	}

	path := c.Output
	if path == "" {
		path = xlsx.ReportFilename(run)
	}

	if err := deps.Reports.Write(run, path); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", serplens.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
