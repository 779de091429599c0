package screen

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/chmouel/lazycommit/internal/theme"
)

// ConfirmScreen asks the user to approve or reject a pending action.
// The message is shown verbatim so the user sees exactly what will be
// recorded.
type ConfirmScreen struct {
	Title          string
	Message        string
	Files          []string
	Note           string
	ConfirmLabel   string
	CancelLabel    string
	SelectedButton int // 0 = confirm, 1 = cancel
	Width          int
	Thm            *theme.Theme

	// Callbacks
	OnConfirm func() tea.Cmd
	OnCancel  func() tea.Cmd
}

// NewConfirmScreen builds a confirmation modal around a message.
func NewConfirmScreen(title, message string, maxWidth int, thm *theme.Theme) *ConfirmScreen {
	width := clampInt(int(float64(maxWidth)*0.7), 44, 76)
	return &ConfirmScreen{
		Title:        title,
		Message:      message,
		ConfirmLabel: "Confirm",
		CancelLabel:  "Cancel",
		Width:        width,
		Thm:          thm,
	}
}

// Type returns the screen type.
func (s *ConfirmScreen) Type() Type {
	return TypeConfirm
}

// Update handles keyboard input and returns nil to signal the screen
// should close.
func (s *ConfirmScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyTab, "right", "l", "left", "h", keyShiftTab:
		s.SelectedButton = 1 - s.SelectedButton
		return s, nil
	case "y":
		if s.OnConfirm != nil {
			return nil, s.OnConfirm()
		}
		return nil, nil
	case "n", keyEsc, keyQ, keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	case keyEnter:
		if s.SelectedButton == 0 {
			if s.OnConfirm != nil {
				return nil, s.OnConfirm()
			}
		} else if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	}
	return s, nil
}

// View renders the confirmation modal.
func (s *ConfirmScreen) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(s.Width - 6).
		Align(lipgloss.Center)

	messageStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.BorderDim).
		Foreground(s.Thm.TextFg).
		Padding(0, 1).
		Width(s.Width - 6)

	fileStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(s.Width - 6)

	noteStyle := lipgloss.NewStyle().
		Foreground(s.Thm.WarnFg).
		Width(s.Width - 6)

	sections := []string{titleStyle.Render(s.Title), ""}
	sections = append(sections, messageStyle.Render(wrap.String(s.Message, s.Width-10)))

	if len(s.Files) > 0 {
		sections = append(sections, "")
		for _, f := range s.Files {
			sections = append(sections, fileStyle.Render(truncateLine(f, s.Width-6)))
		}
	}

	if s.Note != "" {
		sections = append(sections, "", noteStyle.Render(s.Note))
	}

	buttonStyle := lipgloss.NewStyle().
		Padding(0, 3).
		Foreground(s.Thm.TextFg)

	selectedButtonStyle := lipgloss.NewStyle().
		Padding(0, 3).
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg).
		Bold(true)

	confirmBtn := buttonStyle.Render(s.ConfirmLabel)
	cancelBtn := buttonStyle.Render(s.CancelLabel)
	if s.SelectedButton == 0 {
		confirmBtn = selectedButtonStyle.Render(s.ConfirmLabel)
	} else {
		cancelBtn = selectedButtonStyle.Render(s.CancelLabel)
	}

	buttons := lipgloss.NewStyle().
		Width(s.Width - 6).
		Align(lipgloss.Center).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, confirmBtn, "   ", cancelBtn))

	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(s.Width - 6).
		Align(lipgloss.Center).
		Render("y/n quick answer • Tab to switch • Enter to choose")

	sections = append(sections, "", buttons, "", footer)

	return boxStyle.Render(strings.Join(sections, "\n"))
}
