package state

// MoveCursorUp steps to the previous item, wrapping to the last.
func (l *Level) MoveCursorUp() bool {
	return l.step(-1)
}

// MoveCursorDown steps to the next item, wrapping to the first.
func (l *Level) MoveCursorDown() bool {
	return l.step(1)
}

// MoveCursorHome jumps to the first item.
func (l *Level) MoveCursorHome() bool {
	return l.jump(0)
}

// MoveCursorEnd jumps to the last item.
func (l *Level) MoveCursorEnd() bool {
	return l.jump(len(l.Items) - 1)
}

// MoveCursorPageUp moves up by one viewport of rows, stopping at the first.
func (l *Level) MoveCursorPageUp(rows int) bool {
	return l.jump(l.Cursor - l.pageRows(rows))
}

// MoveCursorPageDown moves down by one viewport of rows, stopping at the last.
func (l *Level) MoveCursorPageDown(rows int) bool {
	return l.jump(l.Cursor + l.pageRows(rows))
}

func (l *Level) step(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	l.Cursor = ((clamp(l.Cursor, 0, n-1)+delta)%n + n) % n
	return n > 1
}

// jump moves the cursor to target clamped into the list.
func (l *Level) jump(target int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = clamp(target, 0, len(l.Items)-1)
	return l.Cursor != old
}

func (l *Level) pageRows(rows int) int {
	if rows <= 0 || rows > len(l.Items) {
		return max(len(l.Items), 1)
	}
	return rows
}

// EnsureCursorVisible scrolls the viewport so the cursor row is shown.
func (l *Level) EnsureCursorVisible(rows int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, n-1)
	if rows <= 0 {
		l.ViewportOffset = 0
		return
	}
	offset := clamp(l.ViewportOffset, 0, max(n-rows, 0))
	switch {
	case l.Cursor < offset:
		offset = l.Cursor
	case l.Cursor >= offset+rows:
		offset = l.Cursor - rows + 1
	}
	l.ViewportOffset = offset
}

// VisibleRange returns the half-open index range of items shown in a
// viewport of rows.
func (l *Level) VisibleRange(rows int) (start, end int) {
	n := len(l.Items)
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start = clamp(l.ViewportOffset, 0, n-rows)
	return start, start + rows
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
