package state

import "testing"

func TestChipFocusMovement(t *testing.T) {
	l := newTestLevel("a")
	if l.ChipsFocused() {
		t.Fatalf("expected list focus initially")
	}
	if l.FocusChips(0) {
		t.Fatalf("expected no focus without chips")
	}
	if !l.FocusChips(3) || l.ChipCursor != 2 {
		t.Fatalf("expected focus on last chip, got %d", l.ChipCursor)
	}
	if l.MoveChipRight(3) {
		t.Fatalf("expected no movement past the last chip")
	}
	if !l.MoveChipLeft() || !l.MoveChipLeft() || l.ChipCursor != 0 {
		t.Fatalf("expected focus on first chip, got %d", l.ChipCursor)
	}
	if l.MoveChipLeft() {
		t.Fatalf("expected no movement before the first chip")
	}
	if !l.MoveChipRight(3) || l.ChipCursor != 1 {
		t.Fatalf("expected focus on second chip, got %d", l.ChipCursor)
	}
	l.BlurChips()
	if l.ChipsFocused() {
		t.Fatalf("expected list focus after blur")
	}
}

func TestClampChips(t *testing.T) {
	l := newTestLevel("a")
	l.FocusChips(2)
	l.ClampChips(1)
	if l.ChipCursor != 0 {
		t.Fatalf("expected focus clamped to 0, got %d", l.ChipCursor)
	}
	l.ClampChips(0)
	if l.ChipsFocused() {
		t.Fatalf("expected focus back on the list once chips are gone")
	}
}
