package state

import (
	"unicode"

	"github.com/atomicstack/integration-selector/internal/selector"
)

// Query is the search prompt: an editable rune buffer with a caret. The zero
// value is an empty prompt.
type Query struct {
	text []rune
	pos  int
}

// Text returns the prompt contents.
func (q *Query) Text() string { return string(q.text) }

// Pos returns the caret offset in runes.
func (q *Query) Pos() int { return q.pos }

// Empty reports whether the prompt holds no text.
func (q *Query) Empty() bool { return len(q.text) == 0 }

// Set replaces the text and clamps the caret to it.
func (q *Query) Set(text string, pos int) {
	q.text = []rune(text)
	q.pos = max(0, min(pos, len(q.text)))
}

// Insert types s at the caret.
func (q *Query) Insert(s string) bool {
	in := []rune(s)
	if len(in) == 0 {
		return false
	}
	out := make([]rune, 0, len(q.text)+len(in))
	out = append(out, q.text[:q.pos]...)
	out = append(out, in...)
	q.text = append(out, q.text[q.pos:]...)
	q.pos += len(in)
	return true
}

// Clear empties the prompt.
func (q *Query) Clear() bool {
	if q.Empty() {
		return false
	}
	q.text, q.pos = nil, 0
	return true
}

// Backspace removes the rune before the caret.
func (q *Query) Backspace() bool {
	return q.cut(q.pos - 1)
}

// DeleteWord removes the word before the caret along with any blanks
// between it and the caret.
func (q *Query) DeleteWord() bool {
	return q.cut(q.wordLeft())
}

func (q *Query) cut(from int) bool {
	if from < 0 || from >= q.pos {
		return false
	}
	q.text = append(q.text[:from], q.text[q.pos:]...)
	q.pos = from
	return true
}

func (q *Query) Home() bool { return q.moveTo(0) }

func (q *Query) End() bool { return q.moveTo(len(q.text)) }

func (q *Query) Left() bool { return q.moveTo(q.pos - 1) }

func (q *Query) Right() bool { return q.moveTo(q.pos + 1) }

func (q *Query) WordLeft() bool { return q.moveTo(q.wordLeft()) }

func (q *Query) WordRight() bool {
	i := q.pos
	for i < len(q.text) && !unicode.IsSpace(q.text[i]) {
		i++
	}
	for i < len(q.text) && unicode.IsSpace(q.text[i]) {
		i++
	}
	return q.moveTo(i)
}

func (q *Query) moveTo(pos int) bool {
	if pos < 0 || pos > len(q.text) || pos == q.pos {
		return false
	}
	q.pos = pos
	return true
}

func (q *Query) wordLeft() int {
	i := q.pos
	for i > 0 && unicode.IsSpace(q.text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(q.text[i-1]) {
		i--
	}
	return i
}

// EditQuery applies edit to the prompt. When a search starts from an empty
// prompt the list cursor is remembered so RestoreItems can put it back.
func (l *Level) EditQuery(edit func(*Query) bool) bool {
	wasEmpty := l.Query.Empty()
	if !edit(&l.Query) {
		return false
	}
	if wasEmpty && !l.Query.Empty() {
		l.LastCursor = l.Cursor
	}
	return true
}

// RestoreItems shows the base list again after a search was cleared.
func (l *Level) RestoreItems(items []selector.Item) {
	restore := l.LastCursor
	l.UpdateItems(items)
	if restore >= 0 && restore < len(l.Items) {
		l.Cursor = restore
	}
	l.LastCursor = -1
}
