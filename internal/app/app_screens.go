package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazycommit/internal/app/screen"
	"github.com/chmouel/lazycommit/internal/app/services"
	"github.com/chmouel/lazycommit/internal/compose"
	"github.com/chmouel/lazycommit/internal/models"
)

func (m *Model) handleScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.screens.IsActive() {
		if msg.String() == "ctrl+c" {
			return m, m.quit(OutcomeAborted, nil)
		}
		return m, nil
	}
	current := m.screens.Current()
	scr, cmd := current.Update(msg)
	if scr == nil {
		// Only pop if the callback has not already replaced the screen.
		if m.screens.Current() == current {
			m.screens.Pop()
		}
	} else {
		m.screens.Set(scr)
	}
	return m, cmd
}

// showFileReview opens the staging review, the entry screen of the
// commit flow.
func (m *Model) showFileReview() {
	review := screen.NewFileReviewScreen(m.staging, m.width, m.height, m.theme, m.config.ShowIcons)
	review.OnToggle = func(models.ChangedFile) tea.Cmd {
		return m.toggleStageCmd()
	}
	review.OnCursorChange = func(file models.ChangedFile) tea.Cmd {
		return m.loadDiffCmd(file)
	}
	review.OnAdvance = func() tea.Cmd {
		return m.advanceCommitFlow()
	}
	review.OnZoom = func(file models.ChangedFile) tea.Cmd {
		return m.zoomDiffCmd(file)
	}
	review.OnHelp = func() tea.Cmd {
		return func() tea.Msg { return showHelpMsg{} }
	}
	review.OnCancel = func() tea.Cmd {
		return m.finishAbort()
	}
	m.screens.Set(review)
}

// advanceCommitFlow leaves the review with at least one staged file.
// Flag presets skip their screens.
func (m *Model) advanceCommitFlow() tea.Cmd {
	m.stopDiffWatcher()
	if m.presets.Prefix != "" {
		// --prefix is used as given, without ticket resolution.
		m.prefix = m.presets.Prefix
		return m.afterCommitPrefix()
	}
	return m.showCommitPrefixSelect()
}

func (m *Model) showCommitPrefixSelect() tea.Cmd {
	sel := screen.NewPrefixSelectScreen(
		m.config.CommitPrefixes, "Commit Prefix",
		m.config.DefaultCommitIndex(), m.width, m.height, m.theme, m.config.ShowIcons,
	)
	sel.OnSelect = func(choice string) tea.Cmd {
		// Picking the story prefix itself means "use the ticket from
		// my branch": JIRA- on feat/JIRA-123/x becomes JIRA-123:.
		m.prefix = compose.ResolvePrefix(choice, m.config.StoryPrefix, m.branch)
		return m.afterCommitPrefix()
	}
	sel.OnCancel = func() tea.Cmd {
		return m.finishAbort()
	}
	m.screens.Set(sel)
	return textinput.Blink
}

func (m *Model) afterCommitPrefix() tea.Cmd {
	if m.presets.Message != "" {
		m.messageText = m.presets.Message
		return m.showCommitConfirm()
	}
	return m.showMessageInput()
}

func (m *Model) showMessageInput() tea.Cmd {
	input := screen.NewInputScreen("Commit message", "what changed and why", "", m.theme)
	input.SetValidation(func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "Commit message must not be empty."
		}
		return ""
	})
	input.OnSubmit = func(value string) tea.Cmd {
		m.messageText = strings.TrimSpace(value)
		return m.showCommitConfirm()
	}
	input.OnCancel = func() tea.Cmd {
		return m.finishAbort()
	}
	m.screens.Set(input)
	return textinput.Blink
}

// showCommitConfirm composes the message once and asks for the final
// go-ahead over the staged set.
func (m *Model) showCommitConfirm() tea.Cmd {
	message := compose.CommitMessage(m.prefix, m.config.StoryPrefix, m.story, m.messageText)
	m.result.Message = message

	confirm := screen.NewConfirmScreen("Ready to commit?", message, m.width, m.theme)
	confirm.ConfirmLabel = "Commit"
	confirm.CancelLabel = "Abort"
	for _, file := range m.staging.StagedFiles() {
		confirm.Files = append(confirm.Files, fmt.Sprintf("%s  %s", string(file.Kind), file.Path))
	}
	if m.config.AutoPush {
		confirm.Note = "Will push to origin after committing."
	}
	confirm.OnConfirm = func() tea.Cmd {
		m.showBusy("Committing", message)
		return tea.Batch(m.commitCmd(message), m.busyTick())
	}
	confirm.OnCancel = func() tea.Cmd {
		return m.finishAbort()
	}
	m.screens.Set(confirm)
	return nil
}

// startBranchFlow opens the first branch screen, honoring presets.
func (m *Model) startBranchFlow() tea.Cmd {
	if m.presets.Prefix != "" {
		m.prefix = m.presets.Prefix
		return m.afterBranchPrefix()
	}
	return m.showBranchPrefixSelect()
}

func (m *Model) showBranchPrefixSelect() tea.Cmd {
	sel := screen.NewPrefixSelectScreen(
		m.config.BranchPrefixes, "Branch Prefix", 0, m.width, m.height, m.theme, m.config.ShowIcons,
	)
	sel.OnSelect = func(choice string) tea.Cmd {
		m.prefix = choice
		return m.afterBranchPrefix()
	}
	sel.OnCancel = func() tea.Cmd {
		return m.finishAbort()
	}
	m.screens.Set(sel)
	return textinput.Blink
}

func (m *Model) afterBranchPrefix() tea.Cmd {
	if m.presets.Story != "" {
		return m.showNameInput()
	}
	return m.showStoryInput()
}

func (m *Model) showStoryInput() tea.Cmd {
	initial := compose.StoryFromBranch(m.branch, m.config.StoryPrefix)
	input := screen.NewInputScreen("Story number (optional)", "1234", initial, m.theme)
	input.Hint = "Digits only. Leave empty for no story segment."
	input.SetRuneFilter(func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	input.SetValidation(func(value string) string {
		if !compose.IsStoryNumber(strings.TrimSpace(value)) {
			return "Story must be digits only."
		}
		return ""
	})
	input.OnSubmit = func(value string) tea.Cmd {
		m.story = strings.TrimSpace(value)
		return m.showNameInput()
	}
	input.OnCancel = func() tea.Cmd {
		return m.finishAbort()
	}
	m.screens.Set(input)
	return textinput.Blink
}

func (m *Model) showNameInput() tea.Cmd {
	input := screen.NewInputScreen("Branch name", "short-description", "", m.theme)
	input.SetValidation(func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "Branch name must not be empty."
		}
		if compose.SanitizeBranchSegment(value) == "" {
			return "Branch name needs at least one letter, digit, dot or dash."
		}
		return ""
	})
	input.OnSubmit = func(value string) tea.Cmd {
		name := compose.BranchName(
			m.prefix, m.config.StoryPrefix, m.story,
			compose.SanitizeBranchSegment(value),
		)
		m.showBusy("Creating branch", name)
		return tea.Batch(m.createBranchCmd(name), m.busyTick())
	}
	input.OnCancel = func() tea.Cmd {
		return m.finishAbort()
	}
	m.screens.Set(input)
	return textinput.Blink
}

// showBranchSearch opens the branch picker once branches are loaded.
func (m *Model) showBranchSearch(branches []models.Branch) {
	search := screen.NewBranchSearchScreen(
		branches, m.presets.SearchQuery, m.width, m.height, m.theme, m.config.ShowIcons,
	)
	search.Matcher = services.MatchBranches
	search.OnSelect = func(branch models.Branch) tea.Cmd {
		m.showBusy("Switching branch", branch.Name)
		return tea.Batch(m.checkoutCmd(branch), m.busyTick())
	}
	search.OnCancel = func() tea.Cmd {
		return m.finishAbort()
	}
	m.screens.Set(search)
}

// showBusy replaces the current screen with the busy spinner. Keys are
// ignored until the outstanding command reports back.
func (m *Model) showBusy(message, detail string) {
	frames := screen.TextSpinnerFrames()
	if m.config.ShowIcons {
		frames = screen.IconSpinnerFrames()
	}
	busy := screen.NewBusyScreen(message, m.theme, frames)
	busy.Detail = detail
	m.screens.Set(busy)
}
