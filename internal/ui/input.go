package ui

import (
	"unicode"

	"github.com/atomicstack/integration-selector/internal/logging/events"
	uistate "github.com/atomicstack/integration-selector/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const filterPlaceholder = "Search"

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// promptKey is a search prompt binding. Term edits feed the search
// coordinator; the rest only move the caret.
type promptKey struct {
	edit func(*uistate.Query) bool
	term bool
}

var promptKeys = map[string]promptKey{
	"ctrl+u":    {(*uistate.Query).Clear, true},
	"ctrl+w":    {(*uistate.Query).DeleteWord, true},
	"backspace": {(*uistate.Query).Backspace, true},
	"ctrl+h":    {(*uistate.Query).Backspace, true},
	"ctrl+a":    {(*uistate.Query).Home, false},
	"ctrl+e":    {(*uistate.Query).End, false},
	"alt+b":     {(*uistate.Query).WordLeft, false},
	"alt+f":     {(*uistate.Query).WordRight, false},
	"left":      {(*uistate.Query).Left, false},
	"right":     {(*uistate.Query).Right, false},
}

func insertText(text string) promptKey {
	return promptKey{edit: func(q *uistate.Query) bool { return q.Insert(text) }, term: true}
}

func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	name := msg.String()
	if binding, ok := promptKeys[name]; ok {
		return m.editPrompt(name, binding)
	}
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return m.editPrompt("type", insertText(string(msg.Runes)))
	case tea.KeySpace:
		return m.editPrompt("space", insertText(" "))
	}
	return false, nil
}

func (m *Model) editPrompt(key string, binding promptKey) (bool, tea.Cmd) {
	query := &m.level.Query
	before := query.Pos()
	if !m.level.EditQuery(binding.edit) {
		return false, nil
	}
	if query.Pos() != before {
		m.filterCursorDirty = true
	}
	if !binding.term {
		events.Filter.Caret(m.screen, key, query.Pos())
		return true, nil
	}
	events.Filter.Edit(m.screen, key, query.Text())
	return true, m.filterChanged()
}

func (m *Model) filterPrompt() string {
	styles := m.styles
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	m.filterCursor.Style = styles.Cursor.Copy()
	m.filterCursor.TextStyle = styles.Filter.Copy()
	prompt := styles.FilterPrompt.Render("» ")
	text := m.level.Query.Text()
	if text == "" {
		runes := []rune(filterPlaceholder)
		m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := m.level.Query.Pos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	cursorStyle := m.styles.Cursor.Copy().Inline(true)
	return base.Inherit(cursorStyle).Blink(false).Render(char)
}
