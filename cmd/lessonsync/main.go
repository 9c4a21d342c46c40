package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jfsagro-glitch/lessonsync"
	"github.com/jfsagro-glitch/lessonsync/compile"
	"github.com/jfsagro-glitch/lessonsync/drive"
	"github.com/jfsagro-glitch/lessonsync/fs"
	lessonslog "github.com/jfsagro-glitch/lessonsync/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string

	// Services for end-to-end testing. When set they replace the
	// implementations Run would build from configuration.
	Fetcher lessonsync.Fetcher
	Store   lessonsync.DatasetStore
	Media   lessonsync.MediaStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lessonsync"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lessonsync --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set LESSONSYNC_CONFIG to use a different config path")
		return err
	}
	deps.Config = cfg

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	store := m.Store
	if store == nil {
		store = fs.NewDatasetStore(cfg.DatasetPath)
	}
	deps.Store = lessonslog.NewLoggingDatasetStore(store, logger)

	// The sync command is the only one that talks to the provider.
	if cmd == "sync" {
		fetcher := m.Fetcher
		if fetcher == nil {
			creds, err := cfg.Credentials()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Point credentials_file at a service account key with read access to the course")
				return err
			}
			svc, err := drive.NewService(ctx, creds)
			if err != nil {
				return err
			}
			fetcher = drive.NewFetcher(svc, drive.WithQPS(cfg.QPS))
		}

		media := m.Media
		if media == nil {
			media = fs.NewMediaStore(cfg.MediaDir)
		}

		deps.Syncer = &compile.Syncer{
			Fetcher:      lessonslog.NewLoggingFetcher(fetcher, logger),
			Store:        deps.Store,
			Media:        media,
			DocID:        cfg.DocID,
			RootFolderID: cfg.RootFolderID,
			MediaPrefix:  cfg.MediaPrefix,
			MaxPostLen:   cfg.MaxPostLen,
		}
	}

	return kongCtx.Run(deps)
}

func defaultConfigPath() string {
	if path := os.Getenv("LESSONSYNC_CONFIG"); path != "" {
		return path
	}
	return "lessonsync.yaml"
}
