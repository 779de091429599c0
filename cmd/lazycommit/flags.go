// Package main provides CLI flag definitions for lazycommit.
package main

import (
	"fmt"

	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "message",
			Aliases: []string{"m"},
			Usage:   "Commit message, skips the message screen",
		},
		&urfavecli.StringFlag{
			Name:    "prefix",
			Aliases: []string{"p"},
			Usage:   "Commit prefix, skips prefix selection",
		},
		&urfavecli.StringFlag{
			Name:    "story",
			Aliases: []string{"S"},
			Usage:   "Story number for the ticket reference",
		},
		&urfavecli.StringFlag{
			Name:    "extensions",
			Aliases: []string{"e"},
			Usage:   "Stage files with these extensions before review (comma separated)",
		},
		&urfavecli.StringFlag{
			Name:    "directory",
			Aliases: []string{"d"},
			Usage:   "Stage files under this directory before review",
		},
		&urfavecli.BoolFlag{
			Name:  "no-push",
			Usage: "Do not push after committing",
		},
		&urfavecli.BoolFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Create a branch instead of committing",
		},
		&urfavecli.StringFlag{
			Name:  "branch-prefix",
			Usage: "Branch prefix, with --branch-name creates the branch without the TUI",
		},
		&urfavecli.StringFlag{
			Name:  "branch-name",
			Usage: "Branch name, with --branch-prefix creates the branch without the TUI",
		},
		&urfavecli.BoolFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Search and switch branches (optional query argument)",
		},
		&urfavecli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.BoolFlag{
			Name:  "debug",
			Usage: "Write a debug log to the state directory",
		},
	}
}

// completeGlobalFlags provides basic completion for global flags.
func completeGlobalFlags(c *urfavecli.Context) {
	// Complete subcommands if no args yet
	if c.NArg() == 0 {
		for _, cmd := range c.App.Commands {
			fmt.Println(cmd.Name)
		}
	}
}
