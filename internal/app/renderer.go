package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazycommit/internal/app/screen"
)

// View renders the active screen centered in the terminal.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Wait for window size before rendering full UI
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if !m.screens.IsActive() {
		return ""
	}

	current := m.screens.Current()
	// Full-window screens track the terminal size; the small modals
	// keep the size they were built with.
	switch scr := current.(type) {
	case *screen.FileReviewScreen:
		scr.Resize(m.width, m.height)
	case *screen.DiffViewScreen:
		scr.Resize(m.width, m.height)
	case *screen.HelpScreen:
		scr.SetSize(m.width, m.height)
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, current.View())
}
