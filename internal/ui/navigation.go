package ui

import (
	"github.com/atomicstack/integration-selector/internal/logging/events"
	"github.com/atomicstack/integration-selector/internal/selector"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return m.cancel()
	case "ctrl+s":
		return m.submit()
	}
	if m.level.ChipsFocused() {
		if handled, cmd := m.handleChipKey(keyMsg); handled {
			return cmd
		}
		m.blurChips()
	}
	switch keyMsg.String() {
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "tab":
		if m.ctrl.Multi() {
			return m.handleEnterKey()
		}
		return nil
	case "shift+tab":
		m.focusChips()
		return nil
	case "up":
		m.moveCursor(m.level.MoveCursorUp)
		return nil
	case "down":
		if m.level.AtEnd() && m.ctrl.Search().HasMore() {
			return m.loadMore()
		}
		m.moveCursor(m.level.MoveCursorDown)
		return m.loadMore()
	case "pgup":
		m.moveCursor(func() bool { return m.level.MoveCursorPageUp(m.maxVisibleItems()) })
		return nil
	case "pgdown":
		m.moveCursor(func() bool { return m.level.MoveCursorPageDown(m.maxVisibleItems()) })
		return m.loadMore()
	case "home":
		m.moveCursor(m.level.MoveCursorHome)
		return nil
	case "end":
		m.moveCursor(m.level.MoveCursorEnd)
		return m.loadMore()
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	return nil
}

func (m *Model) handleChipKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "left":
		if m.level.MoveChipLeft() {
			events.Chip.Focus(m.screen, m.level.ChipCursor)
		}
		return true, nil
	case "right":
		if m.level.MoveChipRight(m.ctrl.Store().Len()) {
			events.Chip.Focus(m.screen, m.level.ChipCursor)
		}
		return true, nil
	case "backspace", "delete", "enter":
		m.removeFocusedChip()
		return true, nil
	case "esc", "shift+tab", "down", "tab":
		m.blurChips()
		return true, nil
	}
	return false, nil
}

func (m *Model) focusChips() {
	if !m.ctrl.Multi() {
		return
	}
	if m.level.FocusChips(m.ctrl.Store().Len()) {
		events.Chip.Focus(m.screen, m.level.ChipCursor)
	}
}

func (m *Model) blurChips() {
	if !m.level.ChipsFocused() {
		return
	}
	m.level.BlurChips()
	events.Chip.Blur(m.screen)
}

func (m *Model) removeFocusedChip() {
	chips := m.ctrl.Store().Values()
	idx := m.level.ChipCursor
	if idx < 0 || idx >= len(chips) {
		return
	}
	item := chips[idx]
	if err := m.ctrl.Remove(item); err != nil {
		return
	}
	events.Selection.Remove(m.screen, m.ctrl.Identity(item), m.ctrl.Store().Len())
	m.level.ClampChips(m.ctrl.Store().Len())
	m.syncViewport()
}

func (m *Model) handleEscapeKey() tea.Cmd {
	if !m.level.Query.Empty() {
		_, cmd := m.editPrompt("esc", promptKeys["ctrl+u"])
		return cmd
	}
	return m.cancel()
}

func (m *Model) handleEnterKey() tea.Cmd {
	item, ok := m.level.Current()
	if !ok {
		return nil
	}
	events.UI.Enter(m.screen, m.ctrl.Identity(item), item.Label(), m.level.Query.Text())
	if err := m.ctrl.Select(item); err != nil {
		return nil
	}
	if m.ctrl.Multi() {
		store := m.ctrl.Store()
		key := m.ctrl.Identity(item)
		events.Selection.Toggle(m.screen, key, store.HasKey(key), store.Len())
		m.level.ClampChips(store.Len())
		m.syncViewport()
	}
	return nil
}

func (m *Model) submit() tea.Cmd {
	if m.headerAction == nil || !m.headerAction.Enabled || m.headerAction.ID != selector.SubmitActionID {
		return nil
	}
	if m.ctrl.Closed() {
		return nil
	}
	values := m.ctrl.Store().Values()
	keys := make([]string, len(values))
	for i, item := range values {
		keys[i] = m.ctrl.Identity(item)
	}
	events.Selection.Submit(m.screen, keys)
	_ = m.ctrl.Submit()
	return nil
}

func (m *Model) cancel() tea.Cmd {
	if m.ctrl.Closed() {
		return nil
	}
	events.App.Cancel(m.screen)
	m.ctrl.Cancel()
	return nil
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		events.UI.Cursor(m.screen, m.level.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.level.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}
