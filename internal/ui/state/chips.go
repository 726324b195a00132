package state

// ChipsFocused reports whether the selected-chips strip has focus.
func (l *Level) ChipsFocused() bool {
	return l.ChipCursor >= 0
}

// FocusChips moves focus to the last of count chips. It reports false when
// there is nothing to focus.
func (l *Level) FocusChips(count int) bool {
	if count <= 0 {
		l.ChipCursor = -1
		return false
	}
	l.ChipCursor = count - 1
	return true
}

// BlurChips returns focus to the list.
func (l *Level) BlurChips() {
	l.ChipCursor = -1
}

// MoveChipLeft moves the chip focus one step left, stopping at the first.
func (l *Level) MoveChipLeft() bool {
	if l.ChipCursor <= 0 {
		return false
	}
	l.ChipCursor--
	return true
}

// MoveChipRight moves the chip focus one step right, stopping at the last.
func (l *Level) MoveChipRight(count int) bool {
	if l.ChipCursor < 0 || l.ChipCursor >= count-1 {
		return false
	}
	l.ChipCursor++
	return true
}

// ClampChips keeps the chip focus valid after the chip count changed. Focus
// returns to the list once no chips remain.
func (l *Level) ClampChips(count int) {
	if l.ChipCursor < 0 {
		return
	}
	if count <= 0 {
		l.ChipCursor = -1
		return
	}
	if l.ChipCursor >= count {
		l.ChipCursor = count - 1
	}
}
