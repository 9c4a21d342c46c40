package main

import (
	"fmt"

	"github.com/jfsagro-glitch/lessonsync"
)

// Run executes the restore command.
func (c *RestoreCmd) Run(deps *Dependencies) error {
	restored, err := deps.Store.Restore(deps.Ctx, c.Ref)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonsync.ErrorMessage(err))
		return err
	}

	if !restored {
		if c.Ref != "" {
			fmt.Fprintf(deps.Stdout, "Backup %q not found. Use 'lessonsync backups' to list available backups.\n", c.Ref)
		} else {
			fmt.Fprintln(deps.Stdout, "No backups available.")
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Restored %s\n", deps.Store.Path())
	return nil
}
