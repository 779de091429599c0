package main

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/chmouel/lazycommit/internal/app"
	"github.com/chmouel/lazycommit/internal/models"
	urfavecli "github.com/urfave/cli/v2"
)

// fakeRepo implements repoReader with canned state and records staging
// requests.
type fakeRepo struct {
	branch     string
	branchErr  error
	files      []models.ChangedFile
	stagedDir  string
	stagedExts []string
}

func (f *fakeRepo) CurrentBranch(_ context.Context) (string, error) {
	return f.branch, f.branchErr
}

func (f *fakeRepo) StageGlobs(_ context.Context, dir string, extensions []string) error {
	f.stagedDir = dir
	f.stagedExts = extensions
	return nil
}

func (f *fakeRepo) ChangedFiles(_ context.Context) ([]models.ChangedFile, error) {
	return f.files, nil
}

// resolveOptions runs sessionOptions through a throwaway app so flag
// parsing works exactly as it does in production.
func resolveOptions(t *testing.T, repo *fakeRepo, args []string) (*app.Options, error) {
	t.Helper()

	var opts *app.Options
	var optsErr error
	testApp := &urfavecli.App{
		Name:  "lazycommit",
		Flags: globalFlags(),
		Action: func(c *urfavecli.Context) error {
			opts, optsErr = sessionOptions(context.Background(), c, repo, c.String("story"))
			return nil
		},
	}
	if err := testApp.Run(args); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return opts, optsErr
}

func TestGlobalFlagParsing(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
		prefix  string
		story   string
		noPush  bool
		branch  bool
		search  bool
	}{
		{
			name: "defaults",
			args: []string{"lazycommit"},
		},
		{
			name:    "commit presets",
			args:    []string{"lazycommit", "-m", "add login", "-p", "feat:", "-S", "123"},
			message: "add login",
			prefix:  "feat:",
			story:   "123",
		},
		{
			name:   "no push",
			args:   []string{"lazycommit", "--no-push"},
			noPush: true,
		},
		{
			name:   "branch mode",
			args:   []string{"lazycommit", "-b"},
			branch: true,
		},
		{
			name:   "search mode",
			args:   []string{"lazycommit", "-s"},
			search: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var message, prefix, story string
			var noPush, branch, search bool

			testApp := &urfavecli.App{
				Name:  "lazycommit",
				Flags: globalFlags(),
				Action: func(c *urfavecli.Context) error {
					message = c.String("message")
					prefix = c.String("prefix")
					story = c.String("story")
					noPush = c.Bool("no-push")
					branch = c.Bool("branch")
					search = c.Bool("search")
					return nil
				},
			}

			if err := testApp.Run(tt.args); err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}

			if message != tt.message {
				t.Errorf("message = %q, want %q", message, tt.message)
			}
			if prefix != tt.prefix {
				t.Errorf("prefix = %q, want %q", prefix, tt.prefix)
			}
			if story != tt.story {
				t.Errorf("story = %q, want %q", story, tt.story)
			}
			if noPush != tt.noPush {
				t.Errorf("noPush = %v, want %v", noPush, tt.noPush)
			}
			if branch != tt.branch {
				t.Errorf("branch = %v, want %v", branch, tt.branch)
			}
			if search != tt.search {
				t.Errorf("search = %v, want %v", search, tt.search)
			}
		})
	}
}

func TestSessionOptionsCommitMode(t *testing.T) {
	repo := &fakeRepo{
		branch: "feat/JIRA-123/login",
		files: []models.ChangedFile{
			{Path: "internal/session.go", Kind: models.ChangeModified},
		},
	}

	opts, err := resolveOptions(t, repo, []string{"lazycommit", "-p", "feat:", "-m", "add login"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts == nil {
		t.Fatal("expected options, got nil")
	}
	if opts.Mode != app.ModeCommit {
		t.Errorf("mode = %v, want ModeCommit", opts.Mode)
	}
	if opts.Branch != "feat/JIRA-123/login" {
		t.Errorf("branch = %q", opts.Branch)
	}
	if len(opts.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(opts.Files))
	}
	if opts.Presets.Prefix != "feat:" || opts.Presets.Message != "add login" {
		t.Errorf("presets = %+v", opts.Presets)
	}
}

func TestSessionOptionsNoChanges(t *testing.T) {
	repo := &fakeRepo{branch: "main"}

	opts, err := resolveOptions(t, repo, []string{"lazycommit"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts != nil {
		t.Fatalf("expected nil options for a clean tree, got %+v", opts)
	}
}

func TestSessionOptionsStagesGlobsBeforeListing(t *testing.T) {
	repo := &fakeRepo{
		branch: "main",
		files:  []models.ChangedFile{{Path: "a.go", Kind: models.ChangeModified}},
	}

	_, err := resolveOptions(t, repo, []string{"lazycommit", "-e", "go, md", "-d", "internal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.stagedDir != "internal" {
		t.Errorf("staged dir = %q, want %q", repo.stagedDir, "internal")
	}
	if !reflect.DeepEqual(repo.stagedExts, []string{"go", "md"}) {
		t.Errorf("staged extensions = %v, want [go md]", repo.stagedExts)
	}
}

func TestSessionOptionsBranchMode(t *testing.T) {
	repo := &fakeRepo{branch: "feat/JIRA-7/login"}

	opts, err := resolveOptions(t, repo, []string{"lazycommit", "-b", "--branch-prefix", "fix", "-S", "42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Mode != app.ModeBranch {
		t.Errorf("mode = %v, want ModeBranch", opts.Mode)
	}
	if opts.Branch != "feat/JIRA-7/login" {
		t.Errorf("branch = %q", opts.Branch)
	}
	if opts.Presets.Prefix != "fix" || opts.Presets.Story != "42" {
		t.Errorf("presets = %+v", opts.Presets)
	}
}

func TestSessionOptionsBranchModeDetachedHead(t *testing.T) {
	repo := &fakeRepo{branchErr: fmt.Errorf("detached HEAD")}

	opts, err := resolveOptions(t, repo, []string{"lazycommit", "-b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Branch != "" {
		t.Errorf("branch = %q, want empty on detached HEAD", opts.Branch)
	}
}

func TestSessionOptionsSearchMode(t *testing.T) {
	repo := &fakeRepo{}

	opts, err := resolveOptions(t, repo, []string{"lazycommit", "-s", "login"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Mode != app.ModeSearch {
		t.Errorf("mode = %v, want ModeSearch", opts.Mode)
	}
	if opts.Presets.SearchQuery != "login" {
		t.Errorf("search query = %q, want %q", opts.Presets.SearchQuery, "login")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"go", []string{"go"}},
		{"go,md", []string{"go", "md"}},
		{" go , md ", []string{"go", "md"}},
		{"go,,md,", []string{"go", "md"}},
	}

	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHandleCompletionValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{
			name:        "missing shell",
			args:        []string{"lazycommit", "completion"},
			expectError: true,
		},
		{
			name:        "unsupported shell",
			args:        []string{"lazycommit", "completion", "powershell"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testApp := &urfavecli.App{
				Name:     "lazycommit",
				Commands: []*urfavecli.Command{completionCommand()},
			}

			err := testApp.Run(tt.args)
			if tt.expectError && err == nil {
				t.Error("expected validation error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
