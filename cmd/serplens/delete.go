package main

import (
	"fmt"

	"github.com/fwojciec/serplens"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return serplens.Errorf(serplens.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		if serplens.ErrorCode(err) == serplens.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'serplens list' to see saved runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", serplens.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %q\n", c.ID)
	return nil
}
