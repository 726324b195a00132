package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/integration-selector/internal/format/table"
	"github.com/atomicstack/integration-selector/internal/selector"
	"github.com/atomicstack/integration-selector/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	itemIndicator = "▌"
	chipRemove    = " ×"
	singleHelp    = "↑/↓ move  enter select  ctrl+u clear  esc cancel"
	multiHelp     = "↑/↓ move  enter/tab toggle  shift+tab chips  ctrl+s done  esc cancel"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.styles = theme.Build(m.palette)
	m.syncViewport()

	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), raw: true})
	if chips := m.chipsLine(); chips != "" {
		lines = append(lines, styledLine{text: chips, raw: true})
	}
	lines = append(lines, m.itemLines()...)
	if m.loading() {
		lines = append(lines, styledLine{text: m.loadingLine(), raw: true})
	}
	if m.showFooter {
		help := singleHelp
		if m.ctrl.Multi() {
			help = multiHelp
		}
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: help, style: m.styles.Footer})
	}
	// reserve the bottom bar: status + prompt
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: m.styles.Error}
	}
	bottomLines := applyWidth([]styledLine{
		statusLine,
		{text: m.filterPrompt(), raw: true},
	}, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

func (m *Model) header() string {
	title := m.styles.Header.Render(m.title)
	if m.headerAction == nil {
		return title
	}
	label := m.headerAction.Label + " (ctrl+s)"
	action := m.styles.HeaderActionDisabled.Render(label)
	if m.headerAction.Enabled {
		action = m.styles.HeaderAction.Render(label)
	}
	gap := headerActionSeparator
	if m.width > 0 {
		if pad := m.width - ansi.StringWidth(title) - ansi.StringWidth(action); pad > len(gap) {
			gap = strings.Repeat(" ", pad)
		}
	}
	return title + gap + action
}

// chipsLine renders the selected items of a multi-select screen, in the
// order they were first selected.
func (m *Model) chipsLine() string {
	if !m.ctrl.Multi() {
		return ""
	}
	selected := m.ctrl.Store().Values()
	if len(selected) == 0 {
		return ""
	}
	chips := make([]string, len(selected))
	for i, item := range selected {
		style := m.styles.Chip
		if i == m.level.ChipCursor {
			style = m.styles.ChipFocused
		}
		chips[i] = style.Render(m.chipLabel(item) + chipRemove)
	}
	return strings.Join(chips, " ")
}

func (m *Model) chipLabel(item selector.Item) string {
	switch v := item.(type) {
	case selector.UserProfile:
		return v.DisplayName(m.nameDisplay)
	default:
		return item.Label()
	}
}

func (m *Model) itemLines() []styledLine {
	items := m.level.Items
	if len(items) == 0 {
		switch {
		case m.ctrl.Search().NoResults():
			return []styledLine{{text: noResultsText, style: m.styles.Info}}
		case m.loading():
			return nil
		default:
			return []styledLine{{text: "(no entries)", style: m.styles.Secondary}}
		}
	}
	start, end := m.level.VisibleRange(m.maxVisibleItems())
	visible := items[start:end]
	prefixWidth := ansi.StringWidth(itemIndicator + " ")
	if m.ctrl.Multi() {
		prefixWidth += ansi.StringWidth(checkColumn(false))
	}
	texts := m.rowTexts(visible, m.width-prefixWidth)
	lines := make([]styledLine, len(visible))
	for i, item := range visible {
		lines[i] = m.buildItemLine(item, texts[i], start+i)
	}
	return lines
}

// rowTexts lays out the visible rows. Users and channels are aligned in
// columns; options show their text.
func (m *Model) rowTexts(items []selector.Item, width int) []string {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = m.rowColumns(item)
	}
	return table.FormatWithin(rows, nil, width)
}

func (m *Model) rowColumns(item selector.Item) []string {
	switch v := item.(type) {
	case selector.UserProfile:
		you := ""
		if m.currentUserID != "" && v.ID == m.currentUserID {
			you = "(you)"
		}
		name := v.DisplayName(m.nameDisplay)
		if name == v.Username {
			return []string{"@" + v.Username, you}
		}
		return []string{name, "@" + v.Username, you}
	case selector.Channel:
		return []string{v.Label(), "~" + v.Name}
	default:
		return []string{item.Label()}
	}
}

func checkColumn(selected bool) string {
	if selected {
		return "[✓] "
	}
	return "[ ] "
}

// buildItemLine constructs a single styledLine for a list row. The text is
// padded to the full width so the cursor row's background spans the line.
func (m *Model) buildItemLine(item selector.Item, text string, idx int) styledLine {
	lineStyle := m.styles.Item
	indicatorStyle := m.styles.ItemIndicator
	if idx == m.level.Cursor && !m.level.ChipsFocused() {
		indicatorStyle = m.styles.SelectedItemIndicator
		lineStyle = m.styles.SelectedItem
	}
	check := ""
	if m.ctrl.Multi() {
		check = checkColumn(m.ctrl.Store().HasKey(m.ctrl.Identity(item)))
	}
	fullText := itemIndicator + " " + check + text
	if m.width > 0 {
		if pad := m.width - ansi.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the indicator
	}
}

func (m *Model) loadingLine() string {
	if m.animate {
		return m.spinner.View() + " " + m.styles.Loading.Render(loadingText)
	}
	return m.styles.Loading.Render(loadingText)
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header + status + filter prompt
	if m.ctrl.Multi() && m.ctrl.Store().Len() > 0 {
		used++
	}
	if m.loading() {
		used++
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens text to width cells. Escape sequences are kept and
// not counted.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
