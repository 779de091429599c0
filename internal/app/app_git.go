package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazycommit/internal/models"
)

const busyTickInterval = 150 * time.Millisecond

func (m *Model) busyTick() tea.Cmd {
	return tea.Tick(busyTickInterval, func(time.Time) tea.Msg {
		return busyTickMsg{}
	})
}

// toggleStageCmd flips the highlighted file in the model and mirrors
// the change onto the real index.
func (m *Model) toggleStageCmd() tea.Cmd {
	file, ok := m.staging.Toggle()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		var err error
		if file.Staged {
			if err = m.git.Stage(m.ctx, file.Path); err != nil {
				err = fmt.Errorf("stage %s: %w", file.Path, err)
			}
		} else {
			if err = m.git.Unstage(m.ctx, file.Path); err != nil {
				err = fmt.Errorf("unstage %s: %w", file.Path, err)
			}
		}
		return stageSyncedMsg{file: file, err: err}
	}
}

// loadDiffCmd reads the diff of one file for the preview pane.
func (m *Model) loadDiffCmd(file models.ChangedFile) tea.Cmd {
	return func() tea.Msg {
		diff, err := m.git.Diff(m.ctx, file)
		return diffLoadedMsg{path: file.Path, diff: diff, err: err}
	}
}

// zoomDiffCmd reads the diff of one file for the full-screen overlay.
func (m *Model) zoomDiffCmd(file models.ChangedFile) tea.Cmd {
	return func() tea.Msg {
		diff, err := m.git.Diff(m.ctx, file)
		if err != nil {
			diff = fmt.Sprintf("diff failed: %v", err)
		}
		return zoomDiffMsg{path: file.Path, diff: diff}
	}
}

// commitCmd stages the confirmed set once more, commits, and pushes
// when enabled. Errors come back raw; the result handler runs cleanup.
func (m *Model) commitCmd(message string) tea.Cmd {
	paths := m.stagedPaths()
	push := m.config.AutoPush
	return func() tea.Msg {
		for _, path := range paths {
			if err := m.git.Stage(m.ctx, path); err != nil {
				return commitResultMsg{err: fmt.Errorf("stage %s: %w", path, err)}
			}
		}
		commitID, err := m.git.Commit(m.ctx, message)
		if err != nil {
			return commitResultMsg{err: fmt.Errorf("commit: %w", err)}
		}
		if !push {
			return commitResultMsg{commitID: commitID}
		}
		if err := m.git.Push(m.ctx); err != nil {
			// The commit stays; only staging is rolled back.
			return commitResultMsg{commitID: commitID, err: fmt.Errorf("push: %w", err)}
		}
		return commitResultMsg{commitID: commitID, pushed: true}
	}
}

func (m *Model) createBranchCmd(name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.git.CreateBranch(m.ctx, name); err != nil {
			return branchCreatedMsg{name: name, err: fmt.Errorf("create branch %s: %w", name, err)}
		}
		return branchCreatedMsg{name: name}
	}
}

func (m *Model) loadBranchesCmd() tea.Cmd {
	return func() tea.Msg {
		branches, err := m.git.ListBranches(m.ctx)
		return branchesLoadedMsg{branches: branches, err: err}
	}
}

func (m *Model) checkoutCmd(branch models.Branch) tea.Cmd {
	return func() tea.Msg {
		if err := m.git.CheckoutBranch(m.ctx, branch); err != nil {
			return checkoutResultMsg{branch: branch, err: fmt.Errorf("checkout %s: %w", branch.Name, err)}
		}
		return checkoutResultMsg{branch: branch}
	}
}

// finishAbort ends the session on a cancel, restoring the index first.
func (m *Model) finishAbort() tea.Cmd {
	paths := m.stagedPaths()
	if len(paths) == 0 {
		return m.quit(OutcomeAborted, nil)
	}
	m.showBusy("Restoring index", "")
	return tea.Batch(m.cleanupCmd(OutcomeAborted, nil, paths), m.busyTick())
}

// failSession ends the session on a repository error, restoring the
// index first.
func (m *Model) failSession(opErr error) tea.Cmd {
	m.debugf("session failed: %v", opErr)
	paths := m.stagedPaths()
	if len(paths) == 0 {
		return m.quit(OutcomeFailed, opErr)
	}
	m.showBusy("Restoring index", "")
	return tea.Batch(m.cleanupCmd(OutcomeFailed, opErr, paths), m.busyTick())
}

// cleanupCmd unstages every file the session still marks staged. A
// cleanup failure never masks the error that got us here.
func (m *Model) cleanupCmd(outcome Outcome, opErr error, paths []string) tea.Cmd {
	return func() tea.Msg {
		err := opErr
		if cleanupErr := m.git.UnstageAll(m.ctx, paths); cleanupErr != nil {
			if err != nil {
				err = fmt.Errorf("%w (cleanup failed: %v)", err, cleanupErr)
			} else {
				outcome = OutcomeFailed
				err = fmt.Errorf("restore index: %w", cleanupErr)
			}
		}
		return sessionFinishedMsg{outcome: outcome, err: err}
	}
}
