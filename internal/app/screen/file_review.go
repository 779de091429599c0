package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/theme"
)

// FileList is the stateful file selection the review screen drives.
// The session owns the concrete list so staging survives screen churn.
type FileList interface {
	Files() []models.ChangedFile
	Cursor() int
	Current() (models.ChangedFile, bool)
	MoveUp()
	MoveDown()
	StagedFiles() []models.ChangedFile
	IsEmpty() bool
}

// FileReviewScreen shows the changed files next to the diff of the
// selected file. Files are staged and unstaged here before the commit
// flow moves on to prefix selection.
type FileReviewScreen struct {
	List         FileList
	Diff         viewport.Model
	DiffPath     string
	FocusDiff    bool
	Notice       string
	ScrollOffset int
	Width        int
	Height       int
	Thm          *theme.Theme
	ShowIcons    bool

	// Callbacks
	OnToggle       func(file models.ChangedFile) tea.Cmd
	OnAdvance      func() tea.Cmd
	OnCancel       func() tea.Cmd
	OnZoom         func(file models.ChangedFile) tea.Cmd
	OnCursorChange func(file models.ChangedFile) tea.Cmd
	OnHelp         func() tea.Cmd
}

// NewFileReviewScreen builds the review screen over the given list.
func NewFileReviewScreen(list FileList, maxWidth, maxHeight int, thm *theme.Theme, showIcons bool) *FileReviewScreen {
	s := &FileReviewScreen{
		List:      list,
		Thm:       thm,
		ShowIcons: showIcons,
	}
	s.Resize(maxWidth, maxHeight)
	return s
}

// Type returns the screen type.
func (s *FileReviewScreen) Type() Type {
	return TypeFileReview
}

// Resize updates pane and viewport dimensions based on terminal size.
func (s *FileReviewScreen) Resize(maxWidth, maxHeight int) {
	s.Width = 100
	s.Height = 30
	if maxWidth > 0 {
		s.Width = clampInt(maxWidth-2, 72, 170)
	}
	if maxHeight > 0 {
		s.Height = clampInt(maxHeight-1, 18, 60)
	}
	s.Diff.Width = maxInt(10, s.diffWidth()-4)
	s.Diff.Height = maxInt(3, s.Height-5)
}

func (s *FileReviewScreen) listWidth() int {
	return clampInt(int(float64(s.Width)*0.42), 30, 64)
}

func (s *FileReviewScreen) diffWidth() int {
	return s.Width - s.listWidth() - 1
}

func (s *FileReviewScreen) maxVisible() int {
	return maxInt(3, s.Height-5)
}

// SetDiff replaces the diff pane content for the given path.
func (s *FileReviewScreen) SetDiff(path, diff string) {
	s.DiffPath = path
	if strings.TrimSpace(diff) == "" {
		diff = "No changes."
	}
	s.Diff.SetContent(ColorizeDiff(diff, s.Thm))
	s.Diff.GotoTop()
}

// Update handles keyboard input and returns nil to signal the screen
// should close.
func (s *FileReviewScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "n", keyEsc, keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	case "y":
		if s.List.IsEmpty() {
			s.Notice = "Stage at least one file to continue."
			return s, nil
		}
		if s.OnAdvance != nil {
			return nil, s.OnAdvance()
		}
		return nil, nil
	case keyTab:
		s.FocusDiff = !s.FocusDiff
		return s, nil
	case "d":
		if file, ok := s.List.Current(); ok && s.OnZoom != nil {
			return s, s.OnZoom(file)
		}
		return s, nil
	case "?":
		if !s.FocusDiff && s.OnHelp != nil {
			return s, s.OnHelp()
		}
		return s, nil
	}

	if s.FocusDiff {
		return s.updateDiff(msg)
	}
	return s.updateList(msg)
}

func (s *FileReviewScreen) updateList(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "k", keyUp:
		return s, s.moveCursor(func() { s.List.MoveUp() })
	case "j", keyDown:
		return s, s.moveCursor(func() { s.List.MoveDown() })
	case keyEnter, " ":
		if file, ok := s.List.Current(); ok && s.OnToggle != nil {
			s.Notice = ""
			return s, s.OnToggle(file)
		}
	}
	return s, nil
}

func (s *FileReviewScreen) moveCursor(move func()) tea.Cmd {
	before := s.List.Cursor()
	move()
	if s.List.Cursor() == before {
		return nil
	}
	s.followCursor()
	if file, ok := s.List.Current(); ok && s.OnCursorChange != nil {
		return s.OnCursorChange(file)
	}
	return nil
}

func (s *FileReviewScreen) followCursor() {
	maxVisible := s.maxVisible()
	cursor := s.List.Cursor()
	if cursor < s.ScrollOffset {
		s.ScrollOffset = cursor
	}
	if cursor >= s.ScrollOffset+maxVisible {
		s.ScrollOffset = cursor - maxVisible + 1
	}
}

func (s *FileReviewScreen) updateDiff(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "j", keyDown:
		s.Diff.ScrollDown(1)
		return s, nil
	case "k", keyUp:
		s.Diff.ScrollUp(1)
		return s, nil
	case keyCtrlD, " ":
		s.Diff.HalfPageDown()
		return s, nil
	case keyCtrlU:
		s.Diff.HalfPageUp()
		return s, nil
	case "g":
		s.Diff.GotoTop()
		return s, nil
	case "G":
		s.Diff.GotoBottom()
		return s, nil
	}

	var cmd tea.Cmd
	s.Diff, cmd = s.Diff.Update(msg)
	return s, cmd
}

func (s *FileReviewScreen) fileRow(file models.ChangedFile, width int, selected bool) string {
	devicon := ""
	if s.ShowIcons {
		name := file.Path
		if parts := strings.Split(file.Path, "/"); len(parts) > 0 {
			name = parts[len(parts)-1]
		}
		devicon = iconWithSpace(getDevicon(name, false))
	}

	suffix := " " + changeMarker(file.Kind)
	if file.OldPath != "" {
		suffix += " (was " + file.OldPath + ")"
	}

	pathWidth := width - len(checkboxMarker(true)) - lipgloss.Width(devicon) - lipgloss.Width(suffix)
	path := truncateLine(file.Path, maxInt(8, pathWidth))

	label := checkboxMarker(file.Staged) + devicon + path + suffix

	rowStyle := lipgloss.NewStyle().Padding(0, 1).Width(width)
	switch {
	case selected && !s.FocusDiff:
		rowStyle = rowStyle.Background(s.Thm.Accent).Foreground(s.Thm.AccentFg).Bold(true)
	case selected:
		rowStyle = rowStyle.Foreground(s.Thm.Accent).Bold(true)
	case file.Staged:
		rowStyle = rowStyle.Foreground(s.Thm.SuccessFg)
	default:
		rowStyle = rowStyle.Foreground(s.Thm.TextFg)
	}
	return rowStyle.Render(label)
}

// View renders the two-pane review layout.
func (s *FileReviewScreen) View() string {
	listWidth := s.listWidth()
	diffWidth := s.diffWidth()
	maxVisible := s.maxVisible()

	listBorder := s.Thm.BorderDim
	diffBorder := s.Thm.BorderDim
	if s.FocusDiff {
		diffBorder = s.Thm.Accent
	} else {
		listBorder = s.Thm.Accent
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Padding(0, 1)

	statsStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Padding(0, 1)

	files := s.List.Files()
	staged := len(s.List.StagedFiles())

	listHeader := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render("Files"),
		statsStyle.Render(fmt.Sprintf("%d/%d staged", staged, len(files))),
	)

	rows := []string{listHeader}
	end := minInt(s.ScrollOffset+maxVisible, len(files))
	start := minInt(s.ScrollOffset, end)
	for i := start; i < end; i++ {
		rows = append(rows, s.fileRow(files[i], listWidth-4, i == s.List.Cursor()))
	}
	if len(files) == 0 {
		empty := lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(s.Thm.MutedFg).
			Italic(true)
		rows = append(rows, empty.Render("No changed files."))
	}

	listPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(listBorder).
		Width(listWidth).
		Height(s.Height - 2).
		Render(strings.Join(rows, "\n"))

	diffTitle := s.DiffPath
	if diffTitle == "" {
		diffTitle = "Diff"
	}
	diffHeader := headerStyle.Render(truncateLine(diffTitle, diffWidth-4))

	diffPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(diffBorder).
		Width(diffWidth).
		Height(s.Height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, diffHeader, s.Diff.View()))

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, diffPane)

	noticeStyle := lipgloss.NewStyle().
		Foreground(s.Thm.WarnFg).
		Padding(0, 1).
		Width(s.Width)
	notice := noticeStyle.Render(s.Notice)

	footerText := "j/k: move • Space: stage/unstage • y: continue • n: abort • Tab: diff • d: zoom • ?: help"
	if s.FocusDiff {
		footerText = "j/k: scroll • Ctrl+D/U: half page • g/G: top/bottom • Tab: files • d: zoom"
	}
	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Padding(0, 1).
		Width(s.Width).
		Render(footerText)

	return lipgloss.JoinVertical(lipgloss.Left, body, notice, footer)
}

// SetTheme updates the screen theme.
func (s *FileReviewScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
}
