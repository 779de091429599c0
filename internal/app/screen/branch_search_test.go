package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/theme"
)

func testBranches() []models.Branch {
	return []models.Branch{
		{Name: "main", IsCurrent: true},
		{Name: "feature/login"},
		{Name: "fix/crash"},
		{Name: "origin/feature/signup", IsRemote: true},
	}
}

func newBranchScreen(initial string) *BranchSearchScreen {
	return NewBranchSearchScreen(testBranches(), initial, 100, 40, theme.Dracula(), false)
}

func TestBranchSearchDefaultFilter(t *testing.T) {
	s := newBranchScreen("")

	if len(s.Filtered) != len(testBranches()) {
		t.Fatalf("expected all branches with empty query, got %d", len(s.Filtered))
	}

	s.Update(runesMsg("f"))
	s.Update(runesMsg("i"))
	s.Update(runesMsg("x"))

	if len(s.Filtered) != 1 || s.Filtered[0].Name != "fix/crash" {
		t.Errorf("filtered = %v, want [fix/crash]", s.Filtered)
	}
}

func TestBranchSearchInitialQuery(t *testing.T) {
	s := newBranchScreen("login")

	if len(s.Filtered) != 1 || s.Filtered[0].Name != "feature/login" {
		t.Errorf("filtered = %v, want [feature/login]", s.Filtered)
	}
}

func TestBranchSearchMatcherDelegation(t *testing.T) {
	s := newBranchScreen("")

	var gotQuery string
	canned := []models.Branch{{Name: "canned/result"}}
	s.Matcher = func(branches []models.Branch, query string) []models.Branch {
		gotQuery = query
		return canned
	}

	s.Update(runesMsg("x"))

	if gotQuery != "x" {
		t.Errorf("matcher query = %q, want %q", gotQuery, "x")
	}
	if len(s.Filtered) != 1 || s.Filtered[0].Name != "canned/result" {
		t.Errorf("filtered = %v, want matcher result", s.Filtered)
	}
}

func TestBranchSearchSelect(t *testing.T) {
	s := newBranchScreen("")

	var selected models.Branch
	s.OnSelect = func(branch models.Branch) tea.Cmd {
		selected = branch
		return nil
	}

	s.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated != nil {
		t.Error("expected screen to close after selection")
	}
	if selected.Name != "feature/login" {
		t.Errorf("selected %q, want %q", selected.Name, "feature/login")
	}
}

func TestBranchSearchNavClamps(t *testing.T) {
	s := newBranchScreen("")

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	s.Update(up)
	if s.Cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", s.Cursor)
	}

	for i := 0; i < 10; i++ {
		s.Update(down)
	}
	if s.Cursor != len(s.Filtered)-1 {
		t.Errorf("expected cursor at last entry, got %d", s.Cursor)
	}
}

func TestBranchSearchEnterWithoutMatches(t *testing.T) {
	s := newBranchScreen("")

	selectCount := 0
	s.OnSelect = func(models.Branch) tea.Cmd {
		selectCount++
		return nil
	}

	s.Update(runesMsg("z"))
	s.Update(runesMsg("z"))
	if len(s.Filtered) != 0 {
		t.Fatalf("filtered = %v, want empty", s.Filtered)
	}

	updated, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated == nil {
		t.Error("expected screen to stay open with no matches")
	}
	if selectCount != 0 {
		t.Error("expected OnSelect not to fire")
	}
}

func TestBranchSearchCancel(t *testing.T) {
	s := newBranchScreen("")

	cancelled := false
	s.OnCancel = func() tea.Cmd {
		cancelled = true
		return nil
	}

	updated, _ := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if updated != nil {
		t.Error("expected screen to close on esc")
	}
	if !cancelled {
		t.Error("expected OnCancel to be called")
	}
}
