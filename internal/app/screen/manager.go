package screen

// Manager tracks the current screen and the stack of screens beneath
// overlays such as help and the zoomed diff.
type Manager struct {
	current Screen
	stack   []Screen
}

// NewManager creates an empty screen manager.
func NewManager() *Manager {
	return &Manager{
		stack: make([]Screen, 0),
	}
}

// Push stacks the current screen and makes s the current one.
func (m *Manager) Push(s Screen) {
	if s == nil {
		return
	}
	if m.current != nil {
		m.stack = append(m.stack, m.current)
	}
	m.current = s
}

// Pop removes the current screen and restores the previous one. It
// returns the removed screen, or nil if none was active.
func (m *Manager) Pop() Screen {
	removed := m.current
	if len(m.stack) > 0 {
		m.current = m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
	} else {
		m.current = nil
	}
	return removed
}

// Current returns the active screen, or nil.
func (m *Manager) Current() Screen {
	return m.current
}

// IsActive reports whether a screen is displayed.
func (m *Manager) IsActive() bool {
	return m.current != nil
}

// Type returns the type of the current screen, or TypeNone.
func (m *Manager) Type() Type {
	if m.current == nil {
		return TypeNone
	}
	return m.current.Type()
}

// Clear drops all screens.
func (m *Manager) Clear() {
	m.current = nil
	m.stack = m.stack[:0]
}

// Set replaces the current screen without touching the stack. The flow
// screens advance with Set; overlays use Push/Pop.
func (m *Manager) Set(s Screen) {
	m.current = s
}

// StackDepth returns the number of stacked screens below the current one.
func (m *Manager) StackDepth() int {
	return len(m.stack)
}
