// Package theme provides theme definitions and management for the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines all colors used in the application UI.
type Theme struct {
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // Foreground for text on Accent background
	AccentDim  lipgloss.Color
	Border     lipgloss.Color
	BorderDim  lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	DiffAddFg  lipgloss.Color // Added lines in diff panes
	DiffDelFg  lipgloss.Color // Removed lines in diff panes
	DiffHunkFg lipgloss.Color // Hunk headers in diff panes
}

// Theme names.
const (
	DraculaName         = "dracula"
	CatppuccinMochaName = "catppuccin-mocha"
	GruvboxDarkName     = "gruvbox-dark"
	NordName            = "nord"
	SolarizedLightName  = "solarized-light"
)

// Dracula returns the Dracula theme (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#BD93F9"), // Purple (primary accent)
		AccentFg:   lipgloss.Color("#282A36"), // Dark text on accent
		AccentDim:  lipgloss.Color("#44475A"), // Current line / selection
		Border:     lipgloss.Color("#6272A4"),
		BorderDim:  lipgloss.Color("#44475A"),
		MutedFg:    lipgloss.Color("#6272A4"),
		TextFg:     lipgloss.Color("#F8F8F2"),
		SuccessFg:  lipgloss.Color("#50FA7B"),
		WarnFg:     lipgloss.Color("#FFB86C"),
		ErrorFg:    lipgloss.Color("#FF5555"),
		DiffAddFg:  lipgloss.Color("#50FA7B"),
		DiffDelFg:  lipgloss.Color("#FF5555"),
		DiffHunkFg: lipgloss.Color("#8BE9FD"),
	}
}

// CatppuccinMocha returns the Catppuccin Mocha theme.
func CatppuccinMocha() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#B4BEFE"),
		AccentFg:   lipgloss.Color("#1E1E2E"),
		AccentDim:  lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475A"),
		BorderDim:  lipgloss.Color("#313244"),
		MutedFg:    lipgloss.Color("#6C7086"),
		TextFg:     lipgloss.Color("#CDD6F4"),
		SuccessFg:  lipgloss.Color("#A6E3A1"),
		WarnFg:     lipgloss.Color("#F9E2AF"),
		ErrorFg:    lipgloss.Color("#F38BA8"),
		DiffAddFg:  lipgloss.Color("#A6E3A1"),
		DiffDelFg:  lipgloss.Color("#F38BA8"),
		DiffHunkFg: lipgloss.Color("#89DCEB"),
	}
}

// GruvboxDark returns the Gruvbox dark theme.
func GruvboxDark() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#FABD2F"),
		AccentFg:   lipgloss.Color("#282828"),
		AccentDim:  lipgloss.Color("#3C3836"),
		Border:     lipgloss.Color("#504945"),
		BorderDim:  lipgloss.Color("#3C3836"),
		MutedFg:    lipgloss.Color("#928374"),
		TextFg:     lipgloss.Color("#EBDBB2"),
		SuccessFg:  lipgloss.Color("#B8BB26"),
		WarnFg:     lipgloss.Color("#FABD2F"),
		ErrorFg:    lipgloss.Color("#FB4934"),
		DiffAddFg:  lipgloss.Color("#B8BB26"),
		DiffDelFg:  lipgloss.Color("#FB4934"),
		DiffHunkFg: lipgloss.Color("#83A598"),
	}
}

// Nord returns the Nord theme.
func Nord() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#88C0D0"),
		AccentFg:   lipgloss.Color("#2E3440"),
		AccentDim:  lipgloss.Color("#3B4252"),
		Border:     lipgloss.Color("#4C566A"),
		BorderDim:  lipgloss.Color("#434C5E"),
		MutedFg:    lipgloss.Color("#81A1C1"),
		TextFg:     lipgloss.Color("#E5E9F0"),
		SuccessFg:  lipgloss.Color("#A3BE8C"),
		WarnFg:     lipgloss.Color("#EBCB8B"),
		ErrorFg:    lipgloss.Color("#BF616A"),
		DiffAddFg:  lipgloss.Color("#A3BE8C"),
		DiffDelFg:  lipgloss.Color("#BF616A"),
		DiffHunkFg: lipgloss.Color("#88C0D0"),
	}
}

// SolarizedLight returns the Solarized light theme.
func SolarizedLight() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#268BD2"),
		AccentFg:   lipgloss.Color("#FDF6E3"),
		AccentDim:  lipgloss.Color("#EEE8D5"),
		Border:     lipgloss.Color("#93A1A1"),
		BorderDim:  lipgloss.Color("#E4DDC7"),
		MutedFg:    lipgloss.Color("#93A1A1"),
		TextFg:     lipgloss.Color("#073642"),
		SuccessFg:  lipgloss.Color("#859900"),
		WarnFg:     lipgloss.Color("#B58900"),
		ErrorFg:    lipgloss.Color("#DC322F"),
		DiffAddFg:  lipgloss.Color("#859900"),
		DiffDelFg:  lipgloss.Color("#DC322F"),
		DiffHunkFg: lipgloss.Color("#2AA198"),
	}
}

// GetTheme returns a theme by name, or Dracula if not found.
func GetTheme(name string) *Theme {
	switch name {
	case CatppuccinMochaName:
		return CatppuccinMocha()
	case GruvboxDarkName:
		return GruvboxDark()
	case NordName:
		return Nord()
	case SolarizedLightName:
		return SolarizedLight()
	default:
		return Dracula()
	}
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		CatppuccinMochaName,
		GruvboxDarkName,
		NordName,
		SolarizedLightName,
	}
}
