package state

import "github.com/atomicstack/integration-selector/internal/selector"

// Level holds the view state of the selector screen.
type Level struct {
	ID    string
	Title string
	Items []selector.Item
	Query Query

	Cursor int
	// LastCursor is the list cursor when the current search began, or -1.
	LastCursor     int
	ViewportOffset int
	// ChipCursor is the focused chip, or -1 when the list has focus.
	ChipCursor int
}

// NewLevel constructs a Level showing items.
func NewLevel(id, title string, items []selector.Item) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		LastCursor: -1,
		ChipCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// UpdateItems replaces the displayed items, keeping the cursor and viewport
// within range.
func (l *Level) UpdateItems(items []selector.Item) {
	prevOffset := l.ViewportOffset
	l.Items = selector.CloneItems(items)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		prevOffset = 0
	}
	l.ViewportOffset = prevOffset
}

// ShowResults replaces the items with search results for query and moves
// the cursor to the best match.
func (l *Level) ShowResults(items []selector.Item, query string) {
	l.UpdateItems(items)
	l.ViewportOffset = 0
	l.Cursor = 0
	if idx := BestMatchIndex(l.Items, query); idx >= 0 {
		l.Cursor = idx
	}
}

// Current returns the item under the cursor.
func (l *Level) Current() (selector.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return nil, false
	}
	return l.Items[l.Cursor], true
}

// AtEnd reports whether the cursor rests on the last item.
func (l *Level) AtEnd() bool {
	return len(l.Items) > 0 && l.Cursor == len(l.Items)-1
}
