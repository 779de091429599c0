package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// startDiffWatcher begins watching the reviewed files so the preview
// follows edits made from another terminal.
func (m *Model) startDiffWatcher() tea.Cmd {
	if m.watch == nil || m.staging == nil {
		return nil
	}
	started, err := m.watch.Start(m.config.AutoRefreshDiff, m.staging.Files())
	if err != nil {
		m.debugf("diff watcher failed to start: %v", err)
		return nil
	}
	if !started {
		return nil
	}
	return m.waitForDiffEvent()
}

func (m *Model) stopDiffWatcher() {
	if m.watch == nil {
		return
	}
	m.watch.Stop()
}

func (m *Model) waitForDiffEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-events
		if !ok {
			return nil
		}
		return diffEventMsg{}
	}
}
