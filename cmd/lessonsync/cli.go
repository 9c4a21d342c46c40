package main

import (
	"context"
	"io"

	"github.com/jfsagro-glitch/lessonsync"
	"github.com/jfsagro-glitch/lessonsync/compile"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config Config
	Syncer *compile.Syncer
	Store  lessonsync.DatasetStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Sync    SyncCmd    `cmd:"" help:"Compile the course source and publish the dataset"`
	Restore RestoreCmd `cmd:"" help:"Restore the dataset from a backup"`
	Backups BackupsCmd `cmd:"" help:"List available dataset backups"`
	Days    DaysCmd    `cmd:"" help:"Show days in the published dataset"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Folder bool `short:"f" help:"Compile from the per-day folder tree instead of the master document"`
}

// RestoreCmd is the "restore" subcommand.
type RestoreCmd struct {
	Ref string `arg:"" optional:"" help:"Backup file name; most recent when omitted"`
}

// BackupsCmd is the "backups" subcommand.
type BackupsCmd struct{}

// DaysCmd is the "days" subcommand.
type DaysCmd struct{}
