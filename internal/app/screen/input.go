package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/theme"
)

// InputScreen displays a modal single-line input with optional
// validation and rune filtering. Word-wise editing comes from the
// textinput keymap: alt+b/f and alt/ctrl+arrows move by word, ctrl+w
// and alt+backspace delete the word behind the cursor, alt+d deletes
// the word ahead, ctrl+a/ctrl+e jump to the line edges.
type InputScreen struct {
	Prompt      string
	Placeholder string
	Input       textinput.Model
	ErrorMsg    string
	Hint        string
	Thm         *theme.Theme

	// Validate returns a non-empty message to reject a submission.
	Validate func(string) string

	// RuneFilter rejects whole rune events; a message containing any
	// rejected rune leaves the buffer untouched.
	RuneFilter func(rune) bool

	// Callbacks
	OnSubmit func(value string) tea.Cmd
	OnCancel func() tea.Cmd

	boxWidth int
}

// NewInputScreen creates an input screen with the given parameters.
func NewInputScreen(prompt, placeholder, value string, thm *theme.Theme) *InputScreen {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Focus()
	ti.CharLimit = 200
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(thm.TextFg)

	// Fixed width to match modal style (60 - padding/border = 52 for input)
	ti.Width = 52

	// Terminals disagree on word-movement chords; accept both alt and
	// ctrl arrows.
	ti.KeyMap.WordBackward.SetKeys("alt+left", "ctrl+left", "alt+b")
	ti.KeyMap.WordForward.SetKeys("alt+right", "ctrl+right", "alt+f")
	ti.KeyMap.DeleteWordForward.SetKeys("alt+delete", "alt+d")

	return &InputScreen{
		Prompt:      prompt,
		Placeholder: placeholder,
		Input:       ti,
		Thm:         thm,
		boxWidth:    60,
	}
}

// SetValidation sets a validation function that returns an error message.
func (s *InputScreen) SetValidation(fn func(string) string) {
	s.Validate = fn
}

// SetRuneFilter restricts which runes the input accepts.
func (s *InputScreen) SetRuneFilter(fn func(rune) bool) {
	s.RuneFilter = fn
}

// Value returns the current buffer content.
func (s *InputScreen) Value() string {
	return s.Input.Value()
}

// Type returns the screen type.
func (s *InputScreen) Type() Type {
	return TypeInput
}

// Update handles keyboard input for the input screen.
// Returns nil to signal the screen should be closed.
func (s *InputScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case keyEnter:
		value := s.Input.Value()

		if s.Validate != nil {
			if errMsg := strings.TrimSpace(s.Validate(value)); errMsg != "" {
				s.ErrorMsg = errMsg
				return s, nil
			}
			s.ErrorMsg = ""
		}

		if s.OnSubmit != nil {
			cmd = s.OnSubmit(value)
			// If OnSubmit set an error message, stay open
			if s.ErrorMsg != "" {
				return s, cmd
			}
		}
		return nil, cmd

	case keyEsc, keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	}

	// Alt-modified runes are editing chords (alt+b, alt+d, ...), not
	// insertions, so they bypass the filter.
	if msg.Type == tea.KeyRunes && !msg.Alt && s.RuneFilter != nil {
		for _, r := range msg.Runes {
			if !s.RuneFilter(r) {
				return s, nil
			}
		}
	}

	if s.ErrorMsg != "" && (msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete) {
		s.ErrorMsg = ""
	}

	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// View renders the input screen.
func (s *InputScreen) View() string {
	width := s.boxWidth

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(width)

	promptStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(width - 6).
		Align(lipgloss.Center)

	inputWrapperStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.Thm.Border).
		Padding(0, 1).
		Width(width - 6)

	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(width - 6).
		Align(lipgloss.Center).
		MarginTop(1)

	contentLines := []string{
		promptStyle.Render(s.Prompt),
		inputWrapperStyle.Render(s.Input.View()),
	}

	if s.ErrorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(s.Thm.ErrorFg).
			Width(width - 6).
			Align(lipgloss.Center)
		contentLines = append(contentLines, errorStyle.Render(s.ErrorMsg))
	}

	if s.Hint != "" {
		hintStyle := lipgloss.NewStyle().
			Foreground(s.Thm.MutedFg).
			Width(width - 6).
			Align(lipgloss.Center)
		contentLines = append(contentLines, hintStyle.Render(s.Hint))
	}

	contentLines = append(contentLines, footerStyle.Render("Enter to confirm • Esc to cancel"))

	content := strings.Join(contentLines, "\n\n")

	return boxStyle.Render(content)
}
