package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/chmouel/lazycommit/internal/log"
	"github.com/chmouel/lazycommit/internal/models"
)

// LookupPath resolves a binary on PATH. Overridable in tests.
var LookupPath = exec.LookPath

// NotifyFn surfaces a message to the user interface.
type NotifyFn func(message string, isError bool)

// NotifyOnceFn surfaces a message only once per key.
type NotifyOnceFn func(key, message string, isError bool)

// Service runs git commands for a single repository.
type Service struct {
	notify     NotifyFn
	notifyOnce NotifyOnceFn
	workdir    string
}

// NewService creates a git service rooted at workdir. The notify
// callbacks may be nil.
func NewService(workdir string, notify NotifyFn, notifyOnce NotifyOnceFn) *Service {
	if notify == nil {
		notify = func(string, bool) {}
	}
	if notifyOnce == nil {
		notifyOnce = func(string, string, bool) {}
	}
	return &Service{
		notify:     notify,
		notifyOnce: notifyOnce,
		workdir:    workdir,
	}
}

// Workdir returns the directory commands run in.
func (s *Service) Workdir() string {
	return s.workdir
}

func prepareAllowedCommand(ctx context.Context, cwd string, args ...string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	if args[0] != "git" {
		return nil, fmt.Errorf("command not allowed: %s", args[0])
	}
	path, err := LookupPath(args[0])
	if err != nil {
		return nil, fmt.Errorf("binary not found: %s", args[0])
	}
	cmd := exec.CommandContext(ctx, path, args[1:]...) // #nosec G204 -- binary restricted to git, path from LookPath
	cmd.Dir = cwd
	return cmd, nil
}

func (s *Service) run(ctx context.Context, args []string, okReturncodes []int) (string, error) {
	cwd := s.workdir
	cmd, err := prepareAllowedCommand(ctx, cwd, args...)
	if err != nil {
		return "", err
	}
	log.Printf("run: %s (cwd=%s)", strings.Join(args, " "), cwd)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			for _, okCode := range okReturncodes {
				if code == okCode {
					log.Printf("ok: %s (rc=%d)", strings.Join(args, " "), code)
					return string(out), nil
				}
			}
		}
		log.Printf("error: %s: %v: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
		return string(out), fmt.Errorf("%s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	log.Printf("ok: %s", strings.Join(args, " "))
	return string(out), nil
}

// RunGit runs a git command and returns its trimmed output. Errors are
// reported through the notify callback; callers that need the error use
// RunGitChecked.
func (s *Service) RunGit(ctx context.Context, args []string, okReturncodes []int, silent bool) string {
	out, err := s.run(ctx, args, okReturncodes)
	if err != nil && !silent {
		s.notify(err.Error(), true)
	}
	return strings.TrimSpace(out)
}

// RunGitChecked runs a git command and returns trimmed output plus the
// error, without notifying.
func (s *Service) RunGitChecked(ctx context.Context, args ...string) (string, error) {
	out, err := s.run(ctx, args, nil)
	return strings.TrimSpace(out), err
}

// EnsureRepository verifies workdir is inside a git work tree and
// re-roots the service at the repository top level.
func (s *Service) EnsureRepository(ctx context.Context) error {
	out, err := s.RunGitChecked(ctx, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return fmt.Errorf("not a git repository: %w", err)
	}
	if out == "" {
		return fmt.Errorf("not a git repository: empty toplevel")
	}
	s.workdir = out
	return nil
}

// CurrentBranch returns the checked-out branch name. A detached HEAD is
// reported as an error.
func (s *Service) CurrentBranch(ctx context.Context) (string, error) {
	out, err := s.RunGitChecked(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if out == "HEAD" {
		return "", fmt.Errorf("detached HEAD")
	}
	return out, nil
}

// ChangedFiles lists tracked changes and untracked files, staged state
// included, sorted by path.
func (s *Service) ChangedFiles(ctx context.Context) ([]models.ChangedFile, error) {
	out, err := s.RunGitChecked(ctx, "git", "status", "--porcelain", "-z", "--untracked-files=all")
	if err != nil {
		return nil, err
	}
	return parseChangedFiles(out), nil
}

// parseChangedFiles parses NUL-separated porcelain v1 status output.
func parseChangedFiles(out string) []models.ChangedFile {
	fields := strings.Split(out, "\x00")
	var files []models.ChangedFile
	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if len(entry) < 4 {
			continue
		}
		x, y := entry[0], entry[1]
		path := entry[3:]
		file := models.ChangedFile{Path: path}
		switch {
		case x == '?' || y == '?':
			file.Kind = models.ChangeAdded
			file.Staged = false
		case x != ' ':
			file.Staged = true
			file.Kind = kindFromCode(x)
		default:
			file.Staged = false
			file.Kind = kindFromCode(y)
		}
		if x == 'R' || x == 'C' {
			// Rename and copy entries carry the source path as the
			// following NUL field.
			if i+1 < len(fields) {
				file.OldPath = fields[i+1]
				i++
			}
		}
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

func kindFromCode(code byte) models.ChangeKind {
	switch code {
	case 'A', 'C':
		return models.ChangeAdded
	case 'D':
		return models.ChangeDeleted
	default:
		return models.ChangeModified
	}
}

// Stage adds a single path to the index.
func (s *Service) Stage(ctx context.Context, path string) error {
	_, err := s.RunGitChecked(ctx, "git", "add", "--", path)
	return err
}

// Unstage removes a single path from the index.
func (s *Service) Unstage(ctx context.Context, path string) error {
	_, err := s.RunGitChecked(ctx, "git", "reset", "HEAD", "--", path)
	return err
}

// UnstageAll unstages every given path, attempting all of them even
// when some fail. The combined error covers each failed path.
func (s *Service) UnstageAll(ctx context.Context, paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := s.Unstage(ctx, path); err != nil {
			errs = append(errs, fmt.Errorf("unstage %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// StageGlobs stages files matching the extension globs, optionally
// scoped to a directory.
func (s *Service) StageGlobs(ctx context.Context, dir string, extensions []string) error {
	globs := globsFor(dir, extensions)
	if len(globs) == 0 {
		return nil
	}
	args := append([]string{"git", "add", "--"}, globs...)
	_, err := s.RunGitChecked(ctx, args...)
	return err
}

// globsFor builds pathspecs for the given extensions. With a directory
// the glob recurses below it, otherwise it spans the whole tree.
func globsFor(dir string, extensions []string) []string {
	var globs []string
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}
		if dir != "" {
			globs = append(globs, ":(glob)"+filepath.ToSlash(filepath.Join(dir, "**", "*."+ext)))
		} else {
			globs = append(globs, ":(glob)**/*."+ext)
		}
	}
	return globs
}

// Commit records the staged changes and returns the short hash of the
// new commit.
func (s *Service) Commit(ctx context.Context, message string) (string, error) {
	if _, err := s.RunGitChecked(ctx, "git", "commit", "-m", message); err != nil {
		return "", err
	}
	return s.RunGitChecked(ctx, "git", "rev-parse", "--short", "HEAD")
}

// Push pushes the current branch to its upstream.
func (s *Service) Push(ctx context.Context) error {
	_, err := s.RunGitChecked(ctx, "git", "push")
	return err
}

// CreateBranch creates and checks out a new branch.
func (s *Service) CreateBranch(ctx context.Context, name string) error {
	_, err := s.RunGitChecked(ctx, "git", "checkout", "-b", name)
	return err
}

// ListBranches returns local and remote branches, current branch first.
func (s *Service) ListBranches(ctx context.Context) ([]models.Branch, error) {
	out, err := s.RunGitChecked(ctx, "git", "branch", "-a", "--no-color")
	if err != nil {
		return nil, err
	}
	return parseBranches(out), nil
}

var branchPointerRe = regexp.MustCompile(`\s+->\s+`)

// parseBranches parses `git branch -a` output. Symbolic refs such as
// origin/HEAD -> origin/main are skipped.
func parseBranches(out string) []models.Branch {
	var branches []models.Branch
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || branchPointerRe.MatchString(line) {
			continue
		}
		current := strings.HasPrefix(line, "* ")
		line = strings.TrimSpace(strings.TrimPrefix(line, "* "))
		if line == "" || strings.HasPrefix(line, "(") {
			// Detached HEAD marker.
			continue
		}
		branch := models.Branch{Ref: line, IsCurrent: current}
		name := strings.TrimPrefix(line, "remotes/")
		if name != line {
			branch.IsRemote = true
		}
		branch.Name = name
		branches = append(branches, branch)
	}
	sort.SliceStable(branches, func(i, j int) bool {
		if branches[i].IsCurrent != branches[j].IsCurrent {
			return branches[i].IsCurrent
		}
		if branches[i].IsRemote != branches[j].IsRemote {
			return branches[j].IsRemote
		}
		return branches[i].Name < branches[j].Name
	})
	return branches
}

// CheckoutBranch checks out a branch. Remote branches get a local
// tracking branch named after their last segments.
func (s *Service) CheckoutBranch(ctx context.Context, branch models.Branch) error {
	if !branch.IsRemote {
		_, err := s.RunGitChecked(ctx, "git", "checkout", branch.Name)
		return err
	}
	local := localNameFor(branch.Name)
	_, err := s.RunGitChecked(ctx, "git", "checkout", "-b", local, "--track", branch.Name)
	return err
}

// localNameFor strips the remote component from a remote branch name.
func localNameFor(remote string) string {
	parts := strings.SplitN(remote, "/", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return remote
}

// Diff returns the diff for a single file. Staged files diff against
// HEAD, unstaged against the work tree, untracked against /dev/null.
func (s *Service) Diff(ctx context.Context, file models.ChangedFile) (string, error) {
	var args []string
	switch {
	case file.Untracked():
		args = []string{"git", "diff", "--no-color", "--no-index", "--", os.DevNull, file.Path}
		// --no-index exits 1 when the files differ.
		out, err := s.run(ctx, args, []int{0, 1})
		if err != nil {
			return "", err
		}
		return out, nil
	case file.Staged:
		args = []string{"git", "diff", "--no-color", "--cached", "--", file.Path}
	default:
		args = []string{"git", "diff", "--no-color", "--", file.Path}
	}
	out, err := s.run(ctx, args, nil)
	if err != nil {
		return "", err
	}
	return out, nil
}
