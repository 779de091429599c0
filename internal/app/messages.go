package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazycommit/internal/app/screen"
	"github.com/chmouel/lazycommit/internal/models"
)

// Message types for the Bubble Tea app.
type (
	busyTickMsg  struct{}
	diffEventMsg struct{}

	diffLoadedMsg struct {
		path string
		diff string
		err  error
	}
	stageSyncedMsg struct {
		file models.ChangedFile
		err  error
	}
	zoomDiffMsg struct {
		path string
		diff string
	}
	showHelpMsg struct{}

	branchesLoadedMsg struct {
		branches []models.Branch
		err      error
	}
	commitResultMsg struct {
		commitID string
		pushed   bool
		err      error
	}
	branchCreatedMsg struct {
		name string
		err  error
	}
	checkoutResultMsg struct {
		branch models.Branch
		err    error
	}
	sessionFinishedMsg struct {
		outcome Outcome
		err     error
	}
)

// handleBusyTick advances the busy spinner and re-arms the tick while
// a git command is outstanding.
func (m *Model) handleBusyTick() (tea.Model, tea.Cmd) {
	busy, ok := m.screens.Current().(*screen.BusyScreen)
	if !ok {
		return m, nil
	}
	busy.Tick()
	return m, m.busyTick()
}

// handleDiffEvent re-reads the highlighted preview after the watcher
// saw a change, debounced.
func (m *Model) handleDiffEvent() (tea.Model, tea.Cmd) {
	if m.watch == nil {
		return m, nil
	}
	m.watch.ResetWaiting()
	cmds := []tea.Cmd{m.waitForDiffEvent()}
	if m.screens.Type() == screen.TypeFileReview && m.watch.ShouldRefresh(time.Now()) {
		if file, ok := m.staging.Current(); ok {
			cmds = append(cmds, m.loadDiffCmd(file))
		}
	}
	return m, tea.Batch(cmds...)
}

// handleDiffLoaded places a loaded diff into the preview pane. Loads
// for files the cursor has already left are dropped.
func (m *Model) handleDiffLoaded(msg diffLoadedMsg) (tea.Model, tea.Cmd) {
	review, ok := m.screens.Current().(*screen.FileReviewScreen)
	if !ok {
		return m, nil
	}
	file, ok := m.staging.Current()
	if !ok || file.Path != msg.path {
		return m, nil
	}
	text := msg.diff
	if msg.err != nil {
		text = fmt.Sprintf("diff failed: %v", msg.err)
	}
	review.SetDiff(msg.path, text)
	return m, nil
}

// handleStageSynced processes the index update for a toggle. A failure
// here is a repository error and ends the session.
func (m *Model) handleStageSynced(msg stageSyncedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.failSession(msg.err)
	}
	// The staged and unstaged diffs differ; re-read the preview.
	return m, m.loadDiffCmd(msg.file)
}

// handleZoomDiff pushes the full-screen diff overlay.
func (m *Model) handleZoomDiff(msg zoomDiffMsg) (tea.Model, tea.Cmd) {
	if m.screens.Type() != screen.TypeFileReview {
		return m, nil
	}
	m.screens.Push(screen.NewDiffViewScreen(msg.path, msg.diff, m.width, m.height, m.theme))
	return m, nil
}

// handleShowHelp pushes the help overlay.
func (m *Model) handleShowHelp() (tea.Model, tea.Cmd) {
	if m.screens.Type() == screen.TypeHelp {
		return m, nil
	}
	prefixes := m.config.CommitPrefixes
	if m.mode == ModeBranch {
		prefixes = m.config.BranchPrefixes
	}
	m.screens.Push(screen.NewHelpScreen(m.width, m.height, prefixes, m.theme, m.config.ShowIcons))
	return m, nil
}

// handleBranchesLoaded opens the branch picker once branches arrive.
func (m *Model) handleBranchesLoaded(msg branchesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.quit(OutcomeFailed, fmt.Errorf("list branches: %w", msg.err))
	}
	m.showBranchSearch(msg.branches)
	return m, textinput.Blink
}

// handleCommitResult finishes the commit flow.
func (m *Model) handleCommitResult(msg commitResultMsg) (tea.Model, tea.Cmd) {
	m.result.CommitID = msg.commitID
	m.result.Pushed = msg.pushed
	if msg.err != nil {
		return m, m.failSession(msg.err)
	}
	m.debugf("committed %s (pushed=%v)", msg.commitID, msg.pushed)
	return m, m.quit(OutcomeCommitted, nil)
}

// handleBranchCreated finishes the branch flow.
func (m *Model) handleBranchCreated(msg branchCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.failSession(msg.err)
	}
	m.result.Branch = msg.name
	return m, m.quit(OutcomeBranchCreated, nil)
}

// handleCheckoutResult finishes the branch-search flow.
func (m *Model) handleCheckoutResult(msg checkoutResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.failSession(msg.err)
	}
	m.result.Branch = msg.branch.Name
	return m, m.quit(OutcomeCheckedOut, nil)
}
