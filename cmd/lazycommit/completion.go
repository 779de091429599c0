package main

import (
	"fmt"
	"os"

	"github.com/chmouel/lazycommit/internal/completion"
	urfavecli "github.com/urfave/cli/v2"
)

// completionCommand returns the completion subcommand definition.
func completionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion scripts",
		ArgsUsage: "<bash|zsh|fish>",
		Action:    handleCompletion,
	}
}

// handleCompletion handles the completion subcommand.
func handleCompletion(c *urfavecli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: lazycommit completion <bash|zsh|fish>")
	}

	shell := c.Args().First()
	switch shell {
	case "bash":
		_, _ = os.Stdout.WriteString(completion.Bash(c.App.Name))
	case "zsh":
		_, _ = os.Stdout.WriteString(completion.Zsh(c.App.Name))
	case "fish":
		_, _ = os.Stdout.WriteString(completion.Fish(c.App.Name))
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
	return nil
}
