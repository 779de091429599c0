package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazycommit/internal/app/screen"
	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/models"
)

type fakeGit struct {
	mu       sync.Mutex
	calls    []string
	failOn   map[string]error
	branches []models.Branch
}

var _ GitClient = (*fakeGit)(nil)

func newFakeGit() *fakeGit {
	return &fakeGit{failOn: map[string]error{}}
}

func (f *fakeGit) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeGit) fail(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failOn[op]
}

func (f *fakeGit) called(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

func (f *fakeGit) Workdir() string { return "." }

func (f *fakeGit) Stage(_ context.Context, path string) error {
	f.record("stage " + path)
	return f.fail("stage")
}

func (f *fakeGit) Unstage(_ context.Context, path string) error {
	f.record("unstage " + path)
	return f.fail("unstage")
}

func (f *fakeGit) UnstageAll(_ context.Context, paths []string) error {
	f.record("unstage-all " + strings.Join(paths, ","))
	return f.fail("unstage-all")
}

func (f *fakeGit) Commit(_ context.Context, message string) (string, error) {
	f.record("commit " + message)
	if err := f.fail("commit"); err != nil {
		return "", err
	}
	return "abc1234", nil
}

func (f *fakeGit) Push(_ context.Context) error {
	f.record("push")
	return f.fail("push")
}

func (f *fakeGit) CreateBranch(_ context.Context, name string) error {
	f.record("create-branch " + name)
	return f.fail("create-branch")
}

func (f *fakeGit) ListBranches(_ context.Context) ([]models.Branch, error) {
	f.record("list-branches")
	return f.branches, f.fail("list-branches")
}

func (f *fakeGit) CheckoutBranch(_ context.Context, branch models.Branch) error {
	f.record("checkout " + branch.Name)
	return f.fail("checkout")
}

func (f *fakeGit) Diff(_ context.Context, file models.ChangedFile) (string, error) {
	f.record("diff " + file.Path)
	if err := f.fail("diff"); err != nil {
		return "", err
	}
	return "+changes in " + file.Path, nil
}

func testConfig() *config.AppConfig {
	cfg := config.DefaultConfig()
	cfg.AutoRefreshDiff = false
	cfg.ShowIcons = false
	return cfg
}

func testFiles() []models.ChangedFile {
	return []models.ChangedFile{
		{Path: "internal/session.go", Kind: models.ChangeModified},
		{Path: "README.md", Kind: models.ChangeModified},
	}
}

// runCmd executes a command synchronously and feeds the resulting
// messages back into the model until the chain settles.
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(t, m, c)
		}
	case tea.QuitMsg:
	case busyTickMsg:
		// Spinner animation only; dropping it keeps the helper finite.
	default:
		_, next := m.Update(msg)
		runCmd(t, m, next)
	}
}

func startModel(t *testing.T, m *Model) {
	t.Helper()
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	runCmd(t, m, cmd)
}

func press(t *testing.T, m *Model, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(msg)
	runCmd(t, m, cmd)
}

func pressRunes(t *testing.T, m *Model, s string) {
	t.Helper()
	press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func pressEnter(t *testing.T, m *Model) {
	t.Helper()
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestCommitFlowEndToEnd(t *testing.T) {
	fake := newFakeGit()
	m := NewModel(testConfig(), fake, Options{
		Mode:   ModeCommit,
		Files:  testFiles(),
		Branch: "main",
	})
	startModel(t, m)

	if m.screens.Type() != screen.TypeFileReview {
		t.Fatalf("expected file review entry screen, got %v", m.screens.Type())
	}

	// Stage the highlighted file and advance.
	pressRunes(t, m, " ")
	if !fake.called("stage internal/session.go") {
		t.Fatal("toggle did not issue a stage command")
	}
	pressRunes(t, m, "y")

	if m.screens.Type() != screen.TypePrefixSelect {
		t.Fatalf("expected prefix screen, got %v", m.screens.Type())
	}
	pressEnter(t, m) // default prefix: feat:

	if m.screens.Type() != screen.TypeInput {
		t.Fatalf("expected message input, got %v", m.screens.Type())
	}
	pressRunes(t, m, "add login")
	pressEnter(t, m)

	if m.screens.Type() != screen.TypeConfirm {
		t.Fatalf("expected confirm screen, got %v", m.screens.Type())
	}
	pressRunes(t, m, "y")

	res := m.Result()
	if res.Outcome != OutcomeCommitted {
		t.Fatalf("expected committed outcome, got %d (err %v)", res.Outcome, res.Err)
	}
	if res.Message != "feat: add login" {
		t.Fatalf("unexpected composed message %q", res.Message)
	}
	if res.CommitID != "abc1234" {
		t.Fatalf("unexpected commit id %q", res.CommitID)
	}
	if !res.Pushed {
		t.Fatal("auto-push should have pushed")
	}
	if !fake.called("commit feat: add login") {
		t.Fatal("commit command not issued with the composed message")
	}
	if fake.called("unstage-all") {
		t.Fatal("successful run must not restore the index")
	}
}

func TestCommitAbortRestoresIndex(t *testing.T) {
	fake := newFakeGit()
	files := testFiles()
	files[0].Staged = true
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: files, Branch: "main"})
	startModel(t, m)

	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	res := m.Result()
	if res.Outcome != OutcomeAborted {
		t.Fatalf("expected aborted outcome, got %d", res.Outcome)
	}
	if res.Err != nil {
		t.Fatalf("plain abort must not carry an error, got %v", res.Err)
	}
	if !fake.called("unstage-all internal/session.go") {
		t.Fatal("abort did not restore the index")
	}
}

func TestAbortWithNothingStagedSkipsCleanup(t *testing.T) {
	fake := newFakeGit()
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: testFiles(), Branch: "main"})
	startModel(t, m)

	pressRunes(t, m, "n")

	if m.Result().Outcome != OutcomeAborted {
		t.Fatalf("expected aborted outcome, got %d", m.Result().Outcome)
	}
	if fake.called("unstage-all") {
		t.Fatal("nothing was staged, no cleanup expected")
	}
}

func TestPushFailureKeepsCommit(t *testing.T) {
	errPush := errors.New("remote rejected")
	fake := newFakeGit()
	fake.failOn["push"] = errPush
	files := testFiles()
	files[0].Staged = true
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: files, Branch: "main"})
	startModel(t, m)

	pressRunes(t, m, "y")
	pressEnter(t, m)
	pressRunes(t, m, "fix handler")
	pressEnter(t, m)
	pressRunes(t, m, "y")

	res := m.Result()
	if res.Outcome != OutcomeFailed {
		t.Fatalf("expected failed outcome, got %d", res.Outcome)
	}
	if !errors.Is(res.Err, errPush) {
		t.Fatalf("expected push error, got %v", res.Err)
	}
	if res.CommitID != "abc1234" {
		t.Fatalf("commit id should survive a push failure, got %q", res.CommitID)
	}
	if !fake.called("unstage-all") {
		t.Fatal("failure did not restore the index")
	}
}

func TestCleanupFailureDoesNotMaskError(t *testing.T) {
	errPush := errors.New("remote rejected")
	fake := newFakeGit()
	fake.failOn["push"] = errPush
	fake.failOn["unstage-all"] = errors.New("index locked")
	files := testFiles()
	files[0].Staged = true
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: files, Branch: "main"})
	startModel(t, m)

	pressRunes(t, m, "y")
	pressEnter(t, m)
	pressRunes(t, m, "x")
	pressEnter(t, m)
	pressRunes(t, m, "y")

	res := m.Result()
	if res.Outcome != OutcomeFailed {
		t.Fatalf("expected failed outcome, got %d", res.Outcome)
	}
	if !errors.Is(res.Err, errPush) {
		t.Fatalf("original error must survive the cleanup failure, got %v", res.Err)
	}
	if !strings.Contains(res.Err.Error(), "cleanup failed") {
		t.Fatalf("cleanup detail missing from %v", res.Err)
	}
	if !strings.Contains(res.Err.Error(), "index locked") {
		t.Fatalf("cleanup cause missing from %v", res.Err)
	}
}

func TestCleanupFailureOnAbortBecomesFailure(t *testing.T) {
	fake := newFakeGit()
	fake.failOn["unstage-all"] = errors.New("index locked")
	files := testFiles()
	files[0].Staged = true
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: files, Branch: "main"})
	startModel(t, m)

	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	res := m.Result()
	if res.Outcome != OutcomeFailed {
		t.Fatalf("a dirty index after abort is a failure, got %d", res.Outcome)
	}
	if res.Err == nil || !strings.Contains(res.Err.Error(), "restore index") {
		t.Fatalf("expected restore error, got %v", res.Err)
	}
}

func TestZeroStagedBlocksAdvance(t *testing.T) {
	fake := newFakeGit()
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: testFiles(), Branch: "main"})
	startModel(t, m)

	pressRunes(t, m, "y")

	if m.quitting {
		t.Fatal("advance with nothing staged must not end the session")
	}
	if m.screens.Type() != screen.TypeFileReview {
		t.Fatalf("expected to stay on file review, got %v", m.screens.Type())
	}
	review := m.screens.Current().(*screen.FileReviewScreen)
	if review.Notice == "" {
		t.Fatal("expected a validation notice")
	}
	if fake.called("commit") {
		t.Fatal("no commit may be issued without staged files")
	}
}

func TestEmptyMessageRepromptsInPlace(t *testing.T) {
	fake := newFakeGit()
	files := testFiles()
	files[0].Staged = true
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: files, Branch: "main"})
	startModel(t, m)

	pressRunes(t, m, "y")
	pressEnter(t, m)

	input, ok := m.screens.Current().(*screen.InputScreen)
	if !ok {
		t.Fatalf("expected message input, got %v", m.screens.Type())
	}
	pressEnter(t, m)
	if m.screens.Current() != screen.Screen(input) {
		t.Fatal("empty submit must stay on the same input screen")
	}
	if input.ErrorMsg == "" {
		t.Fatal("expected a validation message")
	}

	pressRunes(t, m, "add docs")
	pressEnter(t, m)
	if m.screens.Type() != screen.TypeConfirm {
		t.Fatalf("expected confirm screen after valid message, got %v", m.screens.Type())
	}
}

func TestPresetsSkipPrefixAndMessage(t *testing.T) {
	fake := newFakeGit()
	files := testFiles()
	files[0].Staged = true
	m := NewModel(testConfig(), fake, Options{
		Mode:    ModeCommit,
		Files:   files,
		Branch:  "main",
		Presets: Presets{Prefix: "fix:", Message: "crash handler"},
	})
	startModel(t, m)

	pressRunes(t, m, "y")

	confirm, ok := m.screens.Current().(*screen.ConfirmScreen)
	if !ok {
		t.Fatalf("presets should land on confirm, got %v", m.screens.Type())
	}
	if confirm.Message != "fix: crash handler" {
		t.Fatalf("unexpected composed message %q", confirm.Message)
	}
}

func TestStoryFlagFlowsIntoMessage(t *testing.T) {
	cfg := testConfig()
	cfg.StoryPrefix = "JIRA-"
	fake := newFakeGit()
	files := testFiles()
	files[0].Staged = true
	m := NewModel(cfg, fake, Options{
		Mode:    ModeCommit,
		Files:   files,
		Branch:  "main",
		Presets: Presets{Prefix: "feat:", Story: "123", Message: "add x"},
	})
	startModel(t, m)

	pressRunes(t, m, "y")

	confirm := m.screens.Current().(*screen.ConfirmScreen)
	if confirm.Message != "feat: JIRA-123: add x" {
		t.Fatalf("unexpected composed message %q", confirm.Message)
	}
}

func TestTicketResolutionFromBranch(t *testing.T) {
	cfg := testConfig()
	cfg.CommitPrefixes = []string{"JIRA-"}
	cfg.StoryPrefix = "JIRA-"
	fake := newFakeGit()
	files := testFiles()
	files[0].Staged = true
	m := NewModel(cfg, fake, Options{Mode: ModeCommit, Files: files, Branch: "feat/JIRA-123/login"})
	startModel(t, m)

	pressRunes(t, m, "y")
	pressEnter(t, m) // select the JIRA- pseudo-prefix
	pressRunes(t, m, "fix crash")
	pressEnter(t, m)

	confirm := m.screens.Current().(*screen.ConfirmScreen)
	if confirm.Message != "JIRA-123: fix crash" {
		t.Fatalf("expected ticket-resolved message, got %q", confirm.Message)
	}
}

func TestBranchFlowEndToEnd(t *testing.T) {
	cfg := testConfig()
	cfg.StoryPrefix = "JIRA-"
	fake := newFakeGit()
	m := NewModel(cfg, fake, Options{Mode: ModeBranch, Branch: "main"})
	startModel(t, m)

	if m.screens.Type() != screen.TypePrefixSelect {
		t.Fatalf("expected branch prefix screen, got %v", m.screens.Type())
	}
	pressRunes(t, m, "feat")
	pressEnter(t, m)

	// Story input: non-digit runes never reach the buffer.
	pressRunes(t, m, "a")
	pressRunes(t, m, "456")
	pressEnter(t, m)

	pressRunes(t, m, "User Auth!")
	pressEnter(t, m)

	res := m.Result()
	if res.Outcome != OutcomeBranchCreated {
		t.Fatalf("expected created outcome, got %d (err %v)", res.Outcome, res.Err)
	}
	if res.Branch != "feat/JIRA-456/user-auth" {
		t.Fatalf("unexpected branch name %q", res.Branch)
	}
	if !fake.called("create-branch feat/JIRA-456/user-auth") {
		t.Fatal("create-branch command not issued")
	}
}

func TestBranchFlowWithoutStory(t *testing.T) {
	fake := newFakeGit()
	m := NewModel(testConfig(), fake, Options{Mode: ModeBranch, Branch: "main"})
	startModel(t, m)

	pressRunes(t, m, "fix")
	pressEnter(t, m)
	pressEnter(t, m) // empty story
	pressRunes(t, m, "bug")
	pressEnter(t, m)

	if got := m.Result().Branch; got != "fix/bug" {
		t.Fatalf("unexpected branch name %q", got)
	}
}

func TestStoryPrefilledFromCurrentBranch(t *testing.T) {
	cfg := testConfig()
	cfg.StoryPrefix = "JIRA-"
	fake := newFakeGit()
	m := NewModel(cfg, fake, Options{
		Mode:    ModeBranch,
		Branch:  "feat/JIRA-789/login",
		Presets: Presets{Prefix: "fix"},
	})
	startModel(t, m)

	input, ok := m.screens.Current().(*screen.InputScreen)
	if !ok {
		t.Fatalf("expected story input, got %v", m.screens.Type())
	}
	if input.Value() != "789" {
		t.Fatalf("expected story prefilled from branch, got %q", input.Value())
	}
}

func TestBranchCreateFailure(t *testing.T) {
	errExists := errors.New("branch exists")
	fake := newFakeGit()
	fake.failOn["create-branch"] = errExists
	m := NewModel(testConfig(), fake, Options{Mode: ModeBranch, Branch: "main"})
	startModel(t, m)

	pressRunes(t, m, "fix")
	pressEnter(t, m)
	pressEnter(t, m)
	pressRunes(t, m, "bug")
	pressEnter(t, m)

	res := m.Result()
	if res.Outcome != OutcomeFailed {
		t.Fatalf("expected failed outcome, got %d", res.Outcome)
	}
	if !errors.Is(res.Err, errExists) {
		t.Fatalf("expected create error, got %v", res.Err)
	}
}

func TestSearchFlowChecksOutBranch(t *testing.T) {
	fake := newFakeGit()
	fake.branches = []models.Branch{
		{Name: "main", Ref: "main", IsCurrent: true},
		{Name: "feature/login", Ref: "feature/login"},
		{Name: "fix/crash", Ref: "fix/crash"},
	}
	m := NewModel(testConfig(), fake, Options{Mode: ModeSearch})
	startModel(t, m)

	if m.screens.Type() != screen.TypeBranchSearch {
		t.Fatalf("expected branch search screen, got %v", m.screens.Type())
	}
	pressRunes(t, m, "crash")
	pressEnter(t, m)

	res := m.Result()
	if res.Outcome != OutcomeCheckedOut {
		t.Fatalf("expected checked-out outcome, got %d (err %v)", res.Outcome, res.Err)
	}
	if res.Branch != "fix/crash" {
		t.Fatalf("unexpected branch %q", res.Branch)
	}
	if !fake.called("checkout fix/crash") {
		t.Fatal("checkout command not issued")
	}
}

func TestSearchInitialQueryFromFlag(t *testing.T) {
	fake := newFakeGit()
	fake.branches = []models.Branch{
		{Name: "main", Ref: "main", IsCurrent: true},
		{Name: "feature/login", Ref: "feature/login"},
	}
	m := NewModel(testConfig(), fake, Options{
		Mode:    ModeSearch,
		Presets: Presets{SearchQuery: "login"},
	})
	startModel(t, m)

	search := m.screens.Current().(*screen.BranchSearchScreen)
	if len(search.Filtered) != 1 || search.Filtered[0].Name != "feature/login" {
		t.Fatalf("initial query not applied, filtered %v", search.Filtered)
	}
}

func TestZoomOverlayPushAndPop(t *testing.T) {
	fake := newFakeGit()
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: testFiles(), Branch: "main"})
	startModel(t, m)

	pressRunes(t, m, "d")
	if m.screens.Type() != screen.TypeDiff {
		t.Fatalf("expected diff overlay, got %v", m.screens.Type())
	}
	if m.screens.StackDepth() != 1 {
		t.Fatalf("expected the review stacked below, depth %d", m.screens.StackDepth())
	}

	pressRunes(t, m, "q")
	if m.screens.Type() != screen.TypeFileReview {
		t.Fatalf("expected to return to file review, got %v", m.screens.Type())
	}
}

func TestHelpOverlayPushAndPop(t *testing.T) {
	fake := newFakeGit()
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: testFiles(), Branch: "main"})
	startModel(t, m)

	pressRunes(t, m, "?")
	if m.screens.Type() != screen.TypeHelp {
		t.Fatalf("expected help overlay, got %v", m.screens.Type())
	}

	pressRunes(t, m, "q")
	if m.screens.Type() != screen.TypeFileReview {
		t.Fatalf("expected to return to file review, got %v", m.screens.Type())
	}
}

func TestViewWaitsForWindowSize(t *testing.T) {
	fake := newFakeGit()
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: testFiles(), Branch: "main"})

	if got := m.View(); got != "Loading..." {
		t.Fatalf("expected loading placeholder before sizing, got %q", got)
	}

	startModel(t, m)
	view := m.View()
	if !strings.Contains(view, "session.go") {
		t.Fatalf("expected the file list in the view, got %q", view)
	}
}

func TestDiffPreviewFollowsCursor(t *testing.T) {
	fake := newFakeGit()
	m := NewModel(testConfig(), fake, Options{Mode: ModeCommit, Files: testFiles(), Branch: "main"})
	startModel(t, m)

	review := m.screens.Current().(*screen.FileReviewScreen)
	if review.DiffPath != "internal/session.go" {
		t.Fatalf("expected initial preview for the first file, got %q", review.DiffPath)
	}

	pressRunes(t, m, "j")
	if review.DiffPath != "README.md" {
		t.Fatalf("expected preview to follow the cursor, got %q", review.DiffPath)
	}
	if !fake.called("diff README.md") {
		t.Fatal("cursor move did not load the next diff")
	}
}
