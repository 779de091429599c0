// Package screen provides the modal screens of the commit and branch
// flows and a stack-based manager for them.
package screen

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is one modal step of the flow. It handles key input and
// renders itself.
type Screen interface {
	// Update processes a key message and returns the updated screen and
	// any command. Returning nil for the Screen signals that this screen
	// should be closed.
	Update(msg tea.KeyMsg) (Screen, tea.Cmd)

	// View renders the screen's content.
	View() string

	// Type returns the screen's type identifier.
	Type() Type
}

// Type identifies the kind of screen being displayed.
type Type int

// Screen type constants.
const (
	TypeNone Type = iota
	TypeFileReview
	TypePrefixSelect
	TypeInput
	TypeConfirm
	TypeBusy
	TypeBranchSearch
	TypeDiff
	TypeHelp
)

// String returns a human-readable name for the screen type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeFileReview:
		return "file-review"
	case TypePrefixSelect:
		return "prefix-select"
	case TypeInput:
		return "input"
	case TypeConfirm:
		return "confirm"
	case TypeBusy:
		return "busy"
	case TypeBranchSearch:
		return "branch-search"
	case TypeDiff:
		return "diff"
	case TypeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Key constants shared across screens.
const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyEscRaw   = "\x1b" // Raw escape byte for terminals that send ESC as a rune
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyQ        = "q"
	keyCtrlC    = "ctrl+c"
	keyCtrlD    = "ctrl+d"
	keyCtrlU    = "ctrl+u"
	keyUp       = "up"
	keyDown     = "down"
)
