package screen

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/theme"
)

// DeviconFunc resolves a file icon by name.
type DeviconFunc func(name string, isDir bool) string

// IconProviderFunc is the injected devicon lookup.
var IconProviderFunc DeviconFunc

// SetIconProviderFunc sets the function used to get file icons.
func SetIconProviderFunc(fn DeviconFunc) {
	IconProviderFunc = fn
}

func getDevicon(name string, isDir bool) string {
	if IconProviderFunc != nil {
		return IconProviderFunc(name, isDir)
	}
	return ""
}

func iconWithSpace(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}

func arrowPair(showIcons bool) string {
	if !showIcons {
		return "Up/Down"
	}
	return "↑↓"
}

func arrowUp(showIcons bool) string {
	if !showIcons {
		return "Up"
	}
	return "↑"
}

func arrowDown(showIcons bool) string {
	if !showIcons {
		return "Down"
	}
	return "↓"
}

func arrowLeft(showIcons bool) string {
	if !showIcons {
		return "Left"
	}
	return "←"
}

func arrowRight(showIcons bool) string {
	if !showIcons {
		return "Right"
	}
	return "→"
}

func disclosureIndicator(showIcons bool) string {
	if !showIcons {
		return "v"
	}
	return "▼"
}

func checkboxMarker(checked bool) string {
	if checked {
		return "[x] "
	}
	return "[ ] "
}

func changeMarker(kind models.ChangeKind) string {
	switch kind {
	case models.ChangeAdded:
		return "[+]"
	case models.ChangeDeleted:
		return "[-]"
	default:
		return "[~]"
	}
}

// ColorizeDiff applies theme colors to unified diff text line by line.
func ColorizeDiff(diff string, thm *theme.Theme) string {
	if diff == "" {
		return diff
	}
	addStyle := lipgloss.NewStyle().Foreground(thm.DiffAddFg)
	delStyle := lipgloss.NewStyle().Foreground(thm.DiffDelFg)
	hunkStyle := lipgloss.NewStyle().Foreground(thm.DiffHunkFg)
	headStyle := lipgloss.NewStyle().Foreground(thm.MutedFg).Bold(true)

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"),
			strings.HasPrefix(line, "diff --git"), strings.HasPrefix(line, "index "):
			lines[i] = headStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = delStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func truncateLine(line string, width int) string {
	if width <= 1 || len(line) <= width {
		return line
	}
	return line[:width-1] + "…"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
