package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/theme"
)

// DiffViewScreen displays a single file's diff in a pager-like modal.
type DiffViewScreen struct {
	Title    string
	Content  string
	Viewport viewport.Model
	Width    int
	Height   int
	Thm      *theme.Theme

	OnClose func() tea.Cmd
}

// NewDiffViewScreen creates a scrollable diff viewer modal. The diff is
// colorized before it is handed to the viewport.
func NewDiffViewScreen(title, diff string, maxWidth, maxHeight int, thm *theme.Theme) *DiffViewScreen {
	s := &DiffViewScreen{
		Title: title,
		Thm:   thm,
	}
	s.Resize(maxWidth, maxHeight)
	if strings.TrimSpace(diff) == "" {
		diff = "No changes."
	}
	s.Content = ColorizeDiff(diff, thm)
	s.setViewportContent()
	return s
}

// Type returns the screen type.
func (s *DiffViewScreen) Type() Type {
	return TypeDiff
}

// Resize updates modal and viewport dimensions based on terminal size.
func (s *DiffViewScreen) Resize(maxWidth, maxHeight int) {
	s.Width = 96
	s.Height = 30
	if maxWidth > 0 {
		s.Width = clampInt(maxWidth-4, 70, 160)
	}
	if maxHeight > 0 {
		s.Height = clampInt(maxHeight-2, 18, 60)
	}
	s.Viewport.Width = maxInt(1, s.Width-4)
	s.Viewport.Height = maxInt(3, s.Height-5)
	s.setViewportContent()
}

// Update handles navigation and close actions.
func (s *DiffViewScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyQ, keyEsc, keyEscRaw, keyCtrlC, "d":
		if s.OnClose != nil {
			return nil, s.OnClose()
		}
		return nil, nil
	case "j", keyDown:
		s.Viewport.ScrollDown(1)
		return s, nil
	case "k", keyUp:
		s.Viewport.ScrollUp(1)
		return s, nil
	case keyCtrlD, " ":
		s.Viewport.HalfPageDown()
		return s, nil
	case keyCtrlU:
		s.Viewport.HalfPageUp()
		return s, nil
	case "g":
		s.Viewport.GotoTop()
		return s, nil
	case "G":
		s.Viewport.GotoBottom()
		return s, nil
	}

	var cmd tea.Cmd
	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

// View renders the diff viewer modal.
func (s *DiffViewScreen) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(s.Width - 4).
		Align(lipgloss.Center)

	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(s.Width - 4).
		Align(lipgloss.Center)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(0, 1).
		Width(s.Width).
		Height(s.Height)

	footer := fmt.Sprintf("%3.f%% • q close • j/k scroll • Ctrl+D/U half page • g/G top/bottom",
		s.Viewport.ScrollPercent()*100)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(truncateLine(s.Title, s.Width-4)),
		s.Viewport.View(),
		footerStyle.Render(footer),
	)

	return boxStyle.Render(content)
}

// SetTheme updates the screen theme.
func (s *DiffViewScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
}

func (s *DiffViewScreen) setViewportContent() {
	if s.Viewport.Width <= 0 {
		return
	}
	s.Viewport.SetContent(s.Content)
}
