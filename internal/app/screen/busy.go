package screen

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/theme"
)

// BusyScreen displays a modal while a git command is running. It
// swallows all key input so an in-flight commit or push cannot be
// interrupted from the keyboard.
type BusyScreen struct {
	Message        string
	Detail         string
	FrameIdx       int
	BorderColorIdx int
	Thm            *theme.Theme
	SpinnerFrames  []string
}

// TextSpinnerFrames returns the text-only spinner frames.
func TextSpinnerFrames() []string {
	return []string{"...", ".. ", ".  "}
}

// IconSpinnerFrames returns the braille spinner frames used when nerd
// font icons are enabled.
func IconSpinnerFrames() []string {
	return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
}

// NewBusyScreen creates a busy modal with the given message.
func NewBusyScreen(message string, thm *theme.Theme, spinnerFrames []string) *BusyScreen {
	frames := spinnerFrames
	if len(frames) == 0 {
		frames = TextSpinnerFrames()
	}
	return &BusyScreen{
		Message:       message,
		Thm:           thm,
		SpinnerFrames: frames,
	}
}

// Type returns the screen type.
func (s *BusyScreen) Type() Type {
	return TypeBusy
}

// Update swallows key events. Running git commands are never
// interrupted from the keyboard.
func (s *BusyScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	return s, nil
}

func (s *BusyScreen) borderColors() []lipgloss.Color {
	return []lipgloss.Color{
		s.Thm.Accent,
		s.Thm.SuccessFg,
		s.Thm.WarnFg,
		s.Thm.Accent,
	}
}

// Tick advances the spinner frame and border colour.
func (s *BusyScreen) Tick() {
	s.FrameIdx = (s.FrameIdx + 1) % len(s.SpinnerFrames)
	colours := s.borderColors()
	s.BorderColorIdx = (s.BorderColorIdx + 1) % len(colours)
}

// View renders the busy modal.
func (s *BusyScreen) View() string {
	width := 56
	height := 7

	colours := s.borderColors()
	borderColour := colours[s.BorderColorIdx%len(colours)]

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColour).
		Padding(1, 2).
		Width(width).
		Height(height)

	spinnerFrame := s.SpinnerFrames[s.FrameIdx%len(s.SpinnerFrames)]
	spinnerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Foreground(s.Thm.TextFg).
		Bold(true)

	lines := []string{
		spinnerStyle.Render(spinnerFrame),
		"",
		messageStyle.Render(s.Message),
	}

	if s.Detail != "" {
		detail := s.Detail
		maxDetailLen := width - 8
		if len(detail) > maxDetailLen {
			detail = detail[:maxDetailLen-1] + "…"
		}
		detailStyle := lipgloss.NewStyle().
			Foreground(s.Thm.MutedFg).
			Italic(true)
		separator := lipgloss.NewStyle().
			Foreground(s.Thm.BorderDim).
			Render(strings.Repeat("-", width-6))
		lines = append(lines, separator, detailStyle.Render(detail))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return boxStyle.Render(content)
}

// SetTheme updates the theme for this screen.
func (s *BusyScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
}
