// Package cli implements the non-interactive command paths: direct
// branch creation and the result reporting that runs after the TUI
// exits.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chmouel/lazycommit/internal/compose"
	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/git"
)

type gitService interface {
	CreateBranch(ctx context.Context, name string) error
}

var _ gitService = (*git.Service)(nil)

// CreateBranch composes a conventional branch name from the given parts
// and creates it. This is the --branch-prefix/--branch-name path that
// runs without any TUI.
func CreateBranch(ctx context.Context, gitSvc gitService, cfg *config.AppConfig, prefix, story, name string, silent bool) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		return "", fmt.Errorf("branch prefix must not be empty")
	}

	story = strings.TrimSpace(story)
	if !compose.IsStoryNumber(story) {
		return "", fmt.Errorf("story must be digits only, got %q", story)
	}

	segment := compose.SanitizeBranchSegment(name)
	if segment == "" {
		return "", fmt.Errorf("branch name %q has no usable characters", name)
	}

	branch := compose.BranchName(prefix, cfg.StoryPrefix, story, segment)

	if !silent {
		fmt.Fprintf(os.Stderr, "Creating branch %s...\n", branch)
	}

	if err := gitSvc.CreateBranch(ctx, branch); err != nil {
		return "", fmt.Errorf("create branch %s: %w", branch, err)
	}

	// Output only the branch name to stdout
	fmt.Println(branch)

	return branch, nil
}
