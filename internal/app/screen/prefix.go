package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/theme"
)

// PrefixSelectScreen lets the user pick a prefix from a cyclic list.
// Typing narrows the options; Up/Down wrap around the visible set.
type PrefixSelectScreen struct {
	Options  []string
	Filtered []string

	FilterInput  textinput.Model
	Cursor       int
	ScrollOffset int
	Width        int
	Height       int
	Title        string
	Thm          *theme.Theme
	ShowIcons    bool

	// Callbacks
	OnSelect func(string) tea.Cmd
	OnCancel func() tea.Cmd
}

// NewPrefixSelectScreen builds a prefix selection screen. An
// out-of-range initial index falls back to the first option.
func NewPrefixSelectScreen(options []string, title string, initial, maxWidth, maxHeight int, thm *theme.Theme, showIcons bool) *PrefixSelectScreen {
	width := clampInt(int(float64(maxWidth)*0.8), 44, 72)
	height := clampInt(int(float64(maxHeight)*0.8), 14, 30)

	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 50
	ti.Prompt = "> "
	ti.Focus()
	ti.Width = width - 4

	cursor := 0
	if initial >= 0 && initial < len(options) {
		cursor = initial
	}
	if len(options) == 0 {
		cursor = -1
	}

	return &PrefixSelectScreen{
		Options:     options,
		Filtered:    options,
		FilterInput: ti,
		Cursor:      cursor,
		Width:       width,
		Height:      height,
		Title:       title,
		Thm:         thm,
		ShowIcons:   showIcons,
	}
}

// Type returns the screen type.
func (s *PrefixSelectScreen) Type() Type {
	return TypePrefixSelect
}

// Selected returns the highlighted option, if any.
func (s *PrefixSelectScreen) Selected() (string, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Filtered) {
		return "", false
	}
	return s.Filtered[s.Cursor], true
}

// Next moves the selection down, wrapping to the top.
func (s *PrefixSelectScreen) Next() {
	if len(s.Filtered) == 0 {
		return
	}
	s.Cursor = (s.Cursor + 1) % len(s.Filtered)
	s.followCursor()
}

// Previous moves the selection up, wrapping to the bottom.
func (s *PrefixSelectScreen) Previous() {
	if len(s.Filtered) == 0 {
		return
	}
	s.Cursor = (s.Cursor - 1 + len(s.Filtered)) % len(s.Filtered)
	s.followCursor()
}

func (s *PrefixSelectScreen) followCursor() {
	maxVisible := s.maxVisible()
	if s.Cursor < s.ScrollOffset {
		s.ScrollOffset = s.Cursor
	}
	if s.Cursor >= s.ScrollOffset+maxVisible {
		s.ScrollOffset = s.Cursor - maxVisible + 1
	}
}

// Update handles keyboard input and returns nil to signal the screen
// should close.
func (s *PrefixSelectScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case keyEnter:
		if s.OnSelect != nil {
			if option, ok := s.Selected(); ok {
				return nil, s.OnSelect(option)
			}
			return s, nil
		}
		return nil, nil
	case keyEsc, keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	case keyUp, "ctrl+k", keyShiftTab:
		s.Previous()
		return s, nil
	case keyDown, "ctrl+j", keyTab:
		s.Next()
		return s, nil
	}

	s.FilterInput, cmd = s.FilterInput.Update(msg)
	s.applyFilter()
	return s, cmd
}

func (s *PrefixSelectScreen) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(s.FilterInput.Value()))
	if query == "" {
		s.Filtered = s.Options
	} else {
		s.Filtered = []string{}
		for _, option := range s.Options {
			if strings.Contains(strings.ToLower(option), query) {
				s.Filtered = append(s.Filtered, option)
			}
		}
	}

	if len(s.Filtered) == 0 {
		s.Cursor = -1
	} else if s.Cursor >= len(s.Filtered) || s.Cursor < 0 {
		s.Cursor = 0
	}
	s.ScrollOffset = 0
}

func (s *PrefixSelectScreen) maxVisible() int {
	return maxInt(3, s.Height-7)
}

// View renders the prefix selection screen.
func (s *PrefixSelectScreen) View() string {
	maxVisible := s.maxVisible()

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width).
		Padding(0)

	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width-2).
		Padding(0, 1).
		Render(s.Title)

	inputStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2).
		Foreground(s.Thm.TextFg)

	itemStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2)

	selectedStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2).
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg).
		Bold(true)

	noResultsStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2).
		Foreground(s.Thm.MutedFg).
		Italic(true)

	var itemViews []string

	end := minInt(s.ScrollOffset+maxVisible, len(s.Filtered))
	start := minInt(s.ScrollOffset, end)

	for i := start; i < end; i++ {
		if i == s.Cursor {
			itemViews = append(itemViews, selectedStyle.Render(s.Filtered[i]))
		} else {
			itemViews = append(itemViews, itemStyle.Render(s.Filtered[i]))
		}
	}

	if len(s.Filtered) == 0 {
		itemViews = append(itemViews, noResultsStyle.Render("No matching prefixes."))
	}

	separator := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width - 2).
		Render("")

	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Right).
		Width(s.Width - 2).
		PaddingTop(1)
	footer := footerStyle.Render(fmt.Sprintf("%s to move (wraps) • Enter to select • Esc to cancel", arrowPair(s.ShowIcons)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle,
		inputStyle.Render(s.FilterInput.View()),
		separator,
		strings.Join(itemViews, "\n"),
		footer,
	)

	return boxStyle.Render(content)
}
