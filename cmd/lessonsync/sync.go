package main

import (
	"fmt"

	"github.com/jfsagro-glitch/lessonsync"
)

// maxPrintedWarnings bounds warning output; the full list is in the logs.
const maxPrintedWarnings = 5

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	var (
		res *lessonsync.SyncResult
		err error
	)
	if c.Folder {
		res, err = deps.Syncer.SyncFolder(deps.Ctx)
	} else {
		res, err = deps.Syncer.SyncNow(deps.Ctx)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonsync.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Synced %d days to %s\n", res.DaysSynced, res.DatasetPath)
	fmt.Fprintf(deps.Stdout, "Media downloaded: %d\n", res.MediaDownloaded)
	fmt.Fprintf(deps.Stdout, "Dataset hash: %s\n", res.DatasetHash)

	if len(res.Warnings) > 0 {
		fmt.Fprintf(deps.Stderr, "%d warnings:\n%s", len(res.Warnings),
			lessonsync.FormatWarnings(res.Warnings, maxPrintedWarnings))
	}
	return nil
}
