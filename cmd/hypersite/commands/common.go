package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command grammar and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"hypersite.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the site from the content tree"`
	Init    InitCmd    `cmd:"" help:"Scaffold a new site with configuration, content and assets"`
	History HistoryCmd `cmd:"" help:"Show recent builds from the local build ledger"`
}

// AfterApply runs after flag parsing; sets up logging once for all commands.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
