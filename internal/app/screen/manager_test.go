package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazycommit/internal/theme"
)

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m == nil {
		t.Fatal("expected non-nil manager")
	}
	if m.IsActive() {
		t.Error("expected new manager to have no active screen")
	}
	if m.Type() != TypeNone {
		t.Errorf("expected TypeNone, got %v", m.Type())
	}
}

func TestManagerPushPop(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()

	confirm := NewConfirmScreen("Commit?", "feat: add parser", 80, thm)
	m.Push(confirm)

	if !m.IsActive() {
		t.Error("expected manager to be active after push")
	}
	if m.Type() != TypeConfirm {
		t.Errorf("expected TypeConfirm, got %v", m.Type())
	}
	if m.Current() != confirm {
		t.Error("expected current to be the pushed screen")
	}

	help := NewHelpScreen(100, 40, nil, thm, false)
	m.Push(help)

	if m.Type() != TypeHelp {
		t.Errorf("expected TypeHelp, got %v", m.Type())
	}
	if m.StackDepth() != 1 {
		t.Errorf("expected stack depth 1, got %d", m.StackDepth())
	}

	popped := m.Pop()
	if popped != help {
		t.Error("expected to pop the help screen")
	}
	if m.Type() != TypeConfirm {
		t.Errorf("expected TypeConfirm after pop, got %v", m.Type())
	}

	popped = m.Pop()
	if popped != confirm {
		t.Error("expected to pop the confirm screen")
	}
	if m.IsActive() {
		t.Error("expected manager to be inactive after popping all screens")
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()

	m.Push(NewConfirmScreen("Commit?", "msg", 80, thm))
	m.Push(NewHelpScreen(100, 40, nil, thm, false))

	if !m.IsActive() {
		t.Error("expected manager to be active")
	}

	m.Clear()

	if m.IsActive() {
		t.Error("expected manager to be inactive after clear")
	}
	if m.StackDepth() != 0 {
		t.Errorf("expected stack depth 0, got %d", m.StackDepth())
	}
}

func TestManagerSet(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()

	first := NewInputScreen("Story number", "123", "", thm)
	second := NewInputScreen("Branch name", "user-auth", "", thm)

	m.Push(first)
	m.Set(second)

	// Set replaces current without growing the stack
	if m.Current() != second {
		t.Error("expected current to be the second screen after Set")
	}
	if m.StackDepth() != 0 {
		t.Errorf("expected stack depth 0 after Set, got %d", m.StackDepth())
	}
}

func TestBusyScreenTick(t *testing.T) {
	thm := theme.Dracula()
	s := NewBusyScreen("Committing...", thm, nil)

	if s.FrameIdx != 0 {
		t.Errorf("expected initial frame index 0, got %d", s.FrameIdx)
	}

	s.Tick()
	if s.FrameIdx != 1 {
		t.Errorf("expected frame index 1 after tick, got %d", s.FrameIdx)
	}

	for i := 0; i < len(s.SpinnerFrames)*3; i++ {
		s.Tick()
	}
	if s.FrameIdx < 0 || s.FrameIdx >= len(s.SpinnerFrames) {
		t.Errorf("frame index %d out of range after wrapping", s.FrameIdx)
	}
}

func TestBusyScreenDoesNotRespondToKeys(t *testing.T) {
	thm := theme.Dracula()
	s := NewBusyScreen("Pushing...", thm, IconSpinnerFrames())

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		updated, cmd := s.Update(msg)
		if updated != s {
			t.Errorf("expected busy screen to stay open on %q", msg.String())
		}
		if cmd != nil {
			t.Errorf("expected no command on %q", msg.String())
		}
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t        Type
		expected string
	}{
		{TypeNone, "none"},
		{TypeFileReview, "file-review"},
		{TypePrefixSelect, "prefix-select"},
		{TypeInput, "input"},
		{TypeConfirm, "confirm"},
		{TypeBusy, "busy"},
		{TypeBranchSearch, "branch-search"},
		{TypeDiff, "diff"},
		{TypeHelp, "help"},
		{Type(999), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.t.String(); got != tc.expected {
			t.Errorf("Type(%d).String() = %q, want %q", tc.t, got, tc.expected)
		}
	}
}
