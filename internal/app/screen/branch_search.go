package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/theme"
)

// BranchSearchScreen lets the user find and pick a branch by typing a
// query. Matching is delegated to the injected Matcher so remote
// handling and deduplication live with the branch services, not here.
type BranchSearchScreen struct {
	Branches []models.Branch
	Filtered []models.Branch

	FilterInput  textinput.Model
	Cursor       int
	ScrollOffset int
	Width        int
	Height       int
	Thm          *theme.Theme
	ShowIcons    bool

	// Matcher filters branches for a query. When nil a plain
	// case-insensitive substring match is used.
	Matcher func(branches []models.Branch, query string) []models.Branch

	// Callbacks
	OnSelect func(models.Branch) tea.Cmd
	OnCancel func() tea.Cmd
}

// NewBranchSearchScreen builds a branch search screen over the given
// branches, pre-seeded with an initial query.
func NewBranchSearchScreen(branches []models.Branch, initialQuery string, maxWidth, maxHeight int, thm *theme.Theme, showIcons bool) *BranchSearchScreen {
	width := clampInt(int(float64(maxWidth)*0.8), 48, 90)
	height := clampInt(int(float64(maxHeight)*0.8), 14, 32)

	ti := textinput.New()
	ti.Placeholder = "Search branches..."
	ti.CharLimit = 100
	ti.Prompt = "> "
	ti.Focus()
	ti.Width = width - 4
	ti.SetValue(initialQuery)

	s := &BranchSearchScreen{
		Branches:    branches,
		FilterInput: ti,
		Width:       width,
		Height:      height,
		Thm:         thm,
		ShowIcons:   showIcons,
	}
	s.applyFilter()
	return s
}

// Type returns the screen type.
func (s *BranchSearchScreen) Type() Type {
	return TypeBranchSearch
}

// Selected returns the highlighted branch, if any.
func (s *BranchSearchScreen) Selected() (models.Branch, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Filtered) {
		return models.Branch{}, false
	}
	return s.Filtered[s.Cursor], true
}

// Update handles keyboard input and returns nil to signal the screen
// should close.
func (s *BranchSearchScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case keyEnter:
		if branch, ok := s.Selected(); ok && s.OnSelect != nil {
			return nil, s.OnSelect(branch)
		}
		return s, nil
	case keyEsc, keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	case keyUp, "ctrl+k":
		if s.Cursor > 0 {
			s.Cursor--
			s.followCursor()
		}
		return s, nil
	case keyDown, "ctrl+j":
		if s.Cursor < len(s.Filtered)-1 {
			s.Cursor++
			s.followCursor()
		}
		return s, nil
	}

	s.FilterInput, cmd = s.FilterInput.Update(msg)
	s.applyFilter()
	return s, cmd
}

func (s *BranchSearchScreen) applyFilter() {
	query := s.FilterInput.Value()
	if s.Matcher != nil {
		s.Filtered = s.Matcher(s.Branches, query)
	} else {
		s.Filtered = s.basicMatch(query)
	}

	if len(s.Filtered) == 0 {
		s.Cursor = -1
	} else if s.Cursor >= len(s.Filtered) || s.Cursor < 0 {
		s.Cursor = 0
	}
	s.ScrollOffset = 0
}

func (s *BranchSearchScreen) basicMatch(query string) []models.Branch {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Branches
	}
	matched := []models.Branch{}
	for _, branch := range s.Branches {
		if strings.Contains(strings.ToLower(branch.Name), q) {
			matched = append(matched, branch)
		}
	}
	return matched
}

func (s *BranchSearchScreen) followCursor() {
	maxVisible := s.maxVisible()
	if s.Cursor < s.ScrollOffset {
		s.ScrollOffset = s.Cursor
	}
	if s.Cursor >= s.ScrollOffset+maxVisible {
		s.ScrollOffset = s.Cursor - maxVisible + 1
	}
}

func (s *BranchSearchScreen) maxVisible() int {
	return maxInt(3, s.Height-7)
}

func (s *BranchSearchScreen) branchLabel(branch models.Branch) string {
	marker := "  "
	if branch.IsCurrent {
		marker = "* "
	}
	return marker + branch.Name
}

// View renders the branch search screen.
func (s *BranchSearchScreen) View() string {
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
		Render(fmt.Sprintf("Switch Branch (%d)", len(s.Filtered)))

	inputStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2).
		Foreground(s.Thm.TextFg)

	itemStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2)

	remoteStyle := itemStyle.
		Foreground(s.Thm.MutedFg)

	currentStyle := itemStyle.
		Foreground(s.Thm.SuccessFg)

	selectedStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2).
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg).
		Bold(true)

	var itemViews []string

	end := minInt(s.ScrollOffset+maxVisible, len(s.Filtered))
	start := minInt(s.ScrollOffset, end)

	for i := start; i < end; i++ {
		branch := s.Filtered[i]
		label := truncateLine(s.branchLabel(branch), s.Width-4)
		switch {
		case i == s.Cursor:
			itemViews = append(itemViews, selectedStyle.Render(label))
		case branch.IsCurrent:
			itemViews = append(itemViews, currentStyle.Render(label))
		case branch.IsRemote:
			itemViews = append(itemViews, remoteStyle.Render(label))
		default:
			itemViews = append(itemViews, itemStyle.Render(label))
		}
	}

	if len(s.Filtered) == 0 {
		noResultsStyle := lipgloss.NewStyle().
			Padding(0, 1).
			Width(s.Width - 2).
			Foreground(s.Thm.MutedFg).
			Italic(true)
		itemViews = append(itemViews, noResultsStyle.Render("No matching branches."))
	}

	separator := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width - 2).
		Render("")

	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Right).
		Width(s.Width - 2).
		PaddingTop(1).
		Render(fmt.Sprintf("%s to move • Enter to checkout • Esc to cancel", arrowPair(s.ShowIcons)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle,
		inputStyle.Render(s.FilterInput.View()),
		separator,
		strings.Join(itemViews, "\n"),
		footer,
	)

	return boxStyle.Render(content)
}
