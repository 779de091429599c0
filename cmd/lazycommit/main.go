// Package main is the entry point for the lazycommit application.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazycommit/internal/app"
	"github.com/chmouel/lazycommit/internal/buildinfo"
	"github.com/chmouel/lazycommit/internal/cli"
	"github.com/chmouel/lazycommit/internal/compose"
	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/git"
	"github.com/chmouel/lazycommit/internal/log"
	"github.com/chmouel/lazycommit/internal/models"
	urfavecli "github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// repoReader is the repository surface sessionOptions needs.
type repoReader interface {
	CurrentBranch(ctx context.Context) (string, error)
	StageGlobs(ctx context.Context, dir string, extensions []string) error
	ChangedFiles(ctx context.Context) ([]models.ChangedFile, error)
}

var _ repoReader = (*git.Service)(nil)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// isTerminal reports whether stdout is attached to a terminal.
// Overridable in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()
	urfavecli.VersionPrinter = printVersion

	cliApp := &urfavecli.App{
		Name:                 "lazycommit",
		Usage:                "A TUI assistant for conventional commits and branches",
		Version:              buildinfo.Version(),
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			completionCommand(),
		},

		Action: run,

		BashComplete: completeGlobalFlags,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run is the default action: it resolves configuration and flags, then
// either creates a branch directly or launches the TUI session.
func run(c *urfavecli.Context) error {
	// Set up debug logging before loading config so config problems land
	// in the log too.
	if c.Bool("debug") {
		if err := log.SetFile(log.DefaultPath()); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
		}
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// Without --debug the config decides; an empty path discards
	// whatever was buffered.
	if !c.Bool("debug") {
		if err := log.SetFile(cfg.DebugLog); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", cfg.DebugLog, err)
		}
	}
	defer func() { _ = log.Close() }()

	svc := git.NewService(".", func(message string, isError bool) {
		if isError {
			fmt.Fprintln(os.Stderr, message)
		}
	}, nil)

	ctx := context.Background()
	if err := svc.EnsureRepository(ctx); err != nil {
		return err
	}

	// Repo-local lc.* git settings sit between the config file and flags.
	if err := config.ApplyGitOverrides(cfg, svc.Workdir()); err != nil {
		log.Printf("git config overrides: %v", err)
	}

	if themeName := c.String("theme"); themeName != "" {
		normalized := config.NormalizeThemeName(themeName)
		if normalized == "" {
			return fmt.Errorf("unknown theme %q", themeName)
		}
		cfg.Theme = normalized
	}
	if c.Bool("no-push") {
		cfg.AutoPush = false
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	story := strings.TrimSpace(c.String("story"))
	if !compose.IsStoryNumber(story) {
		return fmt.Errorf("--story must be digits only, got %q", story)
	}

	// Both branch flags together create the branch without the TUI.
	if c.String("branch-prefix") != "" && c.String("branch-name") != "" {
		_, err := cli.CreateBranch(ctx, svc, cfg, c.String("branch-prefix"), story, c.String("branch-name"), false)
		return err
	}
	if c.String("branch-name") != "" {
		return fmt.Errorf("--branch-name requires --branch-prefix")
	}

	if !isTerminal() {
		return fmt.Errorf("lazycommit needs an interactive terminal (use --branch-prefix with --branch-name for scripted branch creation)")
	}

	opts, err := sessionOptions(ctx, c, svc, story)
	if err != nil {
		return err
	}
	if opts == nil {
		return nil
	}

	model := app.NewModel(cfg, svc, *opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	model.Close()
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	if code := cli.ReportResult(model.Result(), os.Stdout, os.Stderr); code != 0 {
		return urfavecli.Exit("", code)
	}
	return nil
}

// sessionOptions resolves the session mode and its inputs from flags
// and repository state. A nil result with nil error means there is
// nothing to do.
func sessionOptions(ctx context.Context, c *urfavecli.Context, svc repoReader, story string) (*app.Options, error) {
	switch {
	case c.Bool("search"):
		return &app.Options{
			Mode:    app.ModeSearch,
			Presets: app.Presets{SearchQuery: c.Args().First()},
		}, nil

	case c.Bool("branch"):
		// The current branch only feeds the story prefill, so a
		// detached HEAD is not an error here.
		branch, err := svc.CurrentBranch(ctx)
		if err != nil {
			log.Printf("current branch: %v", err)
			branch = ""
		}
		return &app.Options{
			Mode:   app.ModeBranch,
			Branch: branch,
			Presets: app.Presets{
				Prefix: c.String("branch-prefix"),
				Story:  story,
			},
		}, nil

	default:
		if c.String("extensions") != "" || c.String("directory") != "" {
			if err := svc.StageGlobs(ctx, c.String("directory"), splitList(c.String("extensions"))); err != nil {
				return nil, fmt.Errorf("stage files: %w", err)
			}
		}
		files, err := svc.ChangedFiles(ctx)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			fmt.Println("No changes to commit.")
			return nil, nil
		}
		branch, err := svc.CurrentBranch(ctx)
		if err != nil {
			log.Printf("current branch: %v", err)
			branch = ""
		}
		return &app.Options{
			Mode:   app.ModeCommit,
			Files:  files,
			Branch: branch,
			Presets: app.Presets{
				Prefix:  c.String("prefix"),
				Story:   story,
				Message: c.String("message"),
			},
		}, nil
	}
}

// splitList splits a comma separated flag value, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// printVersion prints version information.
func printVersion(_ *urfavecli.Context) {
	fmt.Printf("lazycommit version %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s\n",
		buildinfo.Version(), buildinfo.Commit(), buildinfo.Date(), buildinfo.BuiltBy())
}
