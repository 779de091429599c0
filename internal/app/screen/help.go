package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/theme"
)

// HelpScreen renders searchable documentation for the app controls.
type HelpScreen struct {
	Viewport    viewport.Model
	Width       int
	Height      int
	FullText    []string
	SearchInput textinput.Model
	Searching   bool
	SearchQuery string
	Thm         *theme.Theme
	ShowIcons   bool
}

// NewHelpScreen initializes help content with the available screen size.
func NewHelpScreen(maxWidth, maxHeight int, prefixes []string, thm *theme.Theme, showIcons bool) *HelpScreen {
	helpTextTemplate := `LazyCommit Help Guide

**Commit Flow**
The commit flow walks file review, prefix selection, message input, and
confirmation. Aborting at any step restores the staging area.
- Esc / Ctrl+C: Abort the flow (staged files are unstaged again)

**File Review**
- j / {{ARROW_DOWN}}: Move cursor down the file list
- k / {{ARROW_UP}}: Move cursor up the file list
- Space / Enter: Stage or unstage the selected file
- y: Accept the staged set and continue
- n / Esc: Abort the commit
- Tab: Move focus between file list and diff pane
- d: Zoom the diff for the selected file

**Diff Pane (when focused)**
- j / k: Scroll line by line
- Ctrl+D / Space: Half page down
- Ctrl+U: Half page up
- g / G: Jump to top / bottom
- Tab: Return focus to the file list

**Prefix Selection**
- Type to filter the prefix list
- {{ARROW_UP}} / {{ARROW_DOWN}}: Move selection (wraps at both ends)
- Enter: Choose the highlighted prefix
- Esc: Abort

**Message Input**
- Enter: Accept the message (must not be empty)
- Alt+{{ARROW_LEFT}} / Alt+{{ARROW_RIGHT}}: Move by word
- Ctrl+W / Alt+Backspace: Delete the previous word
- Alt+D / Alt+Delete: Delete the next word
- Ctrl+A / Ctrl+E: Jump to start / end of line
- Esc: Abort

**Confirmation**
- y: Create the commit
- n / Esc: Abort (staged files are restored)
- Tab: Switch between buttons, Enter picks the highlighted one

**Branch Mode**
lazycommit --branch walks prefix selection, story number, and branch name,
then creates and checks out the branch.
- Story numbers are digits only; the ticket prefix comes from the configuration
- Leave the story number empty to skip the ticket segment
- Esc: Abort without touching the repository

**Branch Search**
lazycommit --search opens a branch picker over local and remote branches.
- Type to filter; remote branches match when the query starts with origin/
- Enter: Check out the selected branch (remote branches get a local copy)
- Esc: Cancel

**Configuration & Overrides**
Configuration is read from multiple sources (in order of precedence):
1. Flags (highest): lazycommit --theme nord --no-push
2. Git local config: git config --local lc.theme nord
3. Git global config: git config --global lc.auto-push false
4. YAML file: ~/.config/lazycommit/config.yaml
5. Built-in defaults (lowest)

**Help Navigation**
- /: Search help (Enter to apply, Esc to clear)
- q / Esc: Close help
- j / k: Scroll up / down
- Ctrl+D / Ctrl+U: Scroll half page down / up

**Shell Completion**
Generate completions: lazycommit completion <bash|zsh|fish>
For all flags, see: lazycommit --help`

	replacer := strings.NewReplacer(
		"{{ARROW_UP}}", arrowUp(showIcons),
		"{{ARROW_DOWN}}", arrowDown(showIcons),
		"{{ARROW_LEFT}}", arrowLeft(showIcons),
		"{{ARROW_RIGHT}}", arrowRight(showIcons),
	)

	helpText := replacer.Replace(helpTextTemplate)

	// Append the configured prefixes so the list in help matches the
	// running configuration.
	if len(prefixes) > 0 {
		entries := make([]string, 0, len(prefixes))
		for _, prefix := range prefixes {
			entries = append(entries, "- "+prefix)
		}
		helpText += "\n\n**Configured Prefixes**\n" + strings.Join(entries, "\n")
	}

	width := 80
	height := 30
	if maxWidth > 0 {
		width = minInt(100, maxInt(60, int(float64(maxWidth)*0.75)))
	}
	if maxHeight > 0 {
		height = minInt(40, maxInt(20, int(float64(maxHeight)*0.7)))
	}

	vp := viewport.New(width, maxInt(5, height-3))
	fullLines := strings.Split(helpText, "\n")

	ti := textinput.New()
	ti.Placeholder = "Search help (/ to start, Enter to apply, Esc to clear)"
	ti.CharLimit = 64
	ti.Prompt = "/ "
	ti.SetValue("")
	ti.Blur()
	ti.Width = maxInt(20, width-6)

	hs := &HelpScreen{
		Viewport:    vp,
		Width:       width,
		Height:      height,
		FullText:    fullLines,
		SearchInput: ti,
		Thm:         thm,
		ShowIcons:   showIcons,
	}

	hs.refreshContent()
	return hs
}

// Type returns TypeHelp to identify this screen.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// Update handles scrolling and search input for the help screen.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch key {
	case "/":
		if !s.Searching {
			s.Searching = true
			s.SearchInput.Focus()
			return s, textinput.Blink
		}
	case keyEnter:
		if s.Searching {
			s.SearchQuery = strings.TrimSpace(s.SearchInput.Value())
			s.Searching = false
			s.SearchInput.Blur()
			s.refreshContent()
			return s, nil
		}
	case keyEsc, keyCtrlC:
		// If searching, clear search; otherwise close help
		if s.Searching || s.SearchQuery != "" {
			s.Searching = false
			s.SearchInput.SetValue("")
			s.SearchQuery = ""
			s.SearchInput.Blur()
			s.refreshContent()
			return s, nil
		}
		return nil, nil
	case keyQ, "?":
		if !s.Searching {
			return nil, nil
		}
	}

	if s.Searching {
		s.SearchInput, cmd = s.SearchInput.Update(msg)
		newQuery := strings.TrimSpace(s.SearchInput.Value())
		if newQuery != s.SearchQuery {
			s.SearchQuery = newQuery
			s.refreshContent()
		}
		return s, cmd
	}

	switch key {
	case keyCtrlD, " ":
		s.Viewport.HalfPageDown()
		return s, nil
	case keyCtrlU:
		s.Viewport.HalfPageUp()
		return s, nil
	case "j", keyDown:
		s.Viewport.ScrollDown(1)
		return s, nil
	case "k", keyUp:
		s.Viewport.ScrollUp(1)
		return s, nil
	}

	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

// refreshContent updates the viewport with styled and filtered content.
func (s *HelpScreen) refreshContent() {
	content := s.renderContent()
	s.Viewport.SetContent(content)
	s.Viewport.GotoTop()
}

// SetSize updates the help screen dimensions (useful on terminal resize).
func (s *HelpScreen) SetSize(maxWidth, maxHeight int) {
	width := 80
	height := 30
	if maxWidth > 0 {
		width = minInt(100, maxInt(60, int(float64(maxWidth)*0.75)))
	}
	if maxHeight > 0 {
		height = minInt(40, maxInt(20, int(float64(maxHeight)*0.7)))
	}
	s.Width = width
	s.Height = height

	s.Viewport.Width = s.Width - 2
	s.Viewport.Height = maxInt(5, s.Height-4)
}

// renderContent applies styling and search filtering to help text.
func (s *HelpScreen) renderContent() string {
	lines := s.FullText

	styledLines := []string{}
	titleStyle := lipgloss.NewStyle().Foreground(s.Thm.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(s.Thm.SuccessFg).Bold(true)

	for _, line := range lines {
		// Style section headers (lines that start with ** and end with **)
		if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
			header := strings.TrimPrefix(strings.TrimSuffix(line, "**"), "**")
			prefix := disclosureIndicator(s.ShowIcons)
			styledLines = append(styledLines, titleStyle.Render(prefix+" "+header))
			continue
		}

		// Style key bindings (lines starting with "- " and containing ": ")
		if strings.HasPrefix(line, "- ") {
			parts := strings.SplitN(line, ": ", 2)
			if len(parts) == 2 {
				keys := strings.TrimPrefix(parts[0], "- ")
				description := parts[1]
				styledLine := "  " + keyStyle.Render(keys) + ": " + description
				styledLines = append(styledLines, styledLine)
				continue
			}
		}

		styledLines = append(styledLines, line)
	}

	if strings.TrimSpace(s.SearchQuery) != "" {
		query := strings.ToLower(strings.TrimSpace(s.SearchQuery))
		highlightStyle := lipgloss.NewStyle().Foreground(s.Thm.AccentFg).Background(s.Thm.Accent).Bold(true)
		filteredLines := []string{}
		for _, line := range styledLines {
			lower := strings.ToLower(line)
			if strings.Contains(lower, query) {
				filteredLines = append(filteredLines, highlightMatches(line, lower, query, highlightStyle))
			}
		}

		if len(filteredLines) == 0 {
			return fmt.Sprintf("No help entries match %q", s.SearchQuery)
		}
		return strings.Join(filteredLines, "\n")
	}

	return strings.Join(styledLines, "\n")
}

// highlightMatches highlights all occurrences of the query in the line.
func highlightMatches(line, lowerLine, lowerQuery string, style lipgloss.Style) string {
	if lowerQuery == "" {
		return line
	}

	var b strings.Builder
	searchFrom := 0
	qLen := len(lowerQuery)

	for {
		idx := strings.Index(lowerLine[searchFrom:], lowerQuery)
		if idx < 0 {
			b.WriteString(line[searchFrom:])
			break
		}
		start := searchFrom + idx
		end := start + qLen
		b.WriteString(line[searchFrom:start])
		b.WriteString(style.Render(line[start:end]))
		searchFrom = end
	}

	return b.String()
}

// View renders the help content and search input inside the viewport.
func (s *HelpScreen) View() string {
	content := s.renderContent()

	vHeight := maxInt(5, s.Height-4)
	s.Viewport.Width = s.Width - 2
	s.Viewport.Height = vHeight
	s.Viewport.SetContent(content)

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
		Render("❓ Help")

	searchView := ""
	if s.Searching || s.SearchQuery != "" {
		searchView = lipgloss.NewStyle().
			Width(s.Width-2).
			Padding(0, 1).
			Render(s.SearchInput.View())

		searchView += "\n" + lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(s.Thm.BorderDim).
			Width(s.Width-2).
			Render("")
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Left).
		Width(s.Width - 2).
		PaddingTop(1)
	footer := footerStyle.Render("j/k: scroll • Ctrl+d/u: page • /: search • esc: close")

	vpStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2)

	body := vpStyle.Render(s.Viewport.View())

	contentBlock := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle,
		searchView,
		body,
		footer,
	)

	return boxStyle.Render(contentBlock)
}
