package main

import (
	"fmt"
	"time"

	"github.com/jfsagro-glitch/lessonsync"
)

// Run executes the backups command.
func (c *BackupsCmd) Run(deps *Dependencies) error {
	backups, err := deps.Store.Backups()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonsync.ErrorMessage(err))
		return err
	}

	if len(backups) == 0 {
		fmt.Fprintln(deps.Stdout, "No backups found.")
		return nil
	}

	for _, b := range backups {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", b.CreatedAt.UTC().Format(time.RFC3339), b.Name)
	}
	return nil
}
