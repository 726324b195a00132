package state

import "testing"

func TestQueryEdits(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		pos      int
		edit     func(*Query) bool
		changed  bool
		wantText string
		wantPos  int
	}{
		{"insert at end", "ab", 2, func(q *Query) bool { return q.Insert("c") }, true, "abc", 3},
		{"insert in middle", "ab", 1, func(q *Query) bool { return q.Insert("zz") }, true, "azzb", 3},
		{"insert nothing", "ab", 1, func(q *Query) bool { return q.Insert("") }, false, "ab", 1},
		{"backspace", "abc", 2, (*Query).Backspace, true, "ac", 1},
		{"backspace at start", "abc", 0, (*Query).Backspace, false, "abc", 0},
		{"delete word", "abc def", 7, (*Query).DeleteWord, true, "abc ", 4},
		{"delete word with trailing blanks", "abc def  ", 9, (*Query).DeleteWord, true, "abc ", 4},
		{"delete word at start", "abc", 0, (*Query).DeleteWord, false, "abc", 0},
		{"clear", "abc", 1, (*Query).Clear, true, "", 0},
		{"clear empty", "", 0, (*Query).Clear, false, "", 0},
		{"home", "abc", 2, (*Query).Home, true, "abc", 0},
		{"end", "abc", 0, (*Query).End, true, "abc", 3},
		{"end at end", "abc", 3, (*Query).End, false, "abc", 3},
		{"left", "abc", 1, (*Query).Left, true, "abc", 0},
		{"left at start", "abc", 0, (*Query).Left, false, "abc", 0},
		{"right", "abc", 1, (*Query).Right, true, "abc", 2},
		{"word left", "one two", 7, (*Query).WordLeft, true, "one two", 4},
		{"word right", "one two", 0, (*Query).WordRight, true, "one two", 4},
		{"word right at end", "one", 3, (*Query).WordRight, false, "one", 3},
		{"multibyte backspace", "héllo", 2, (*Query).Backspace, true, "hllo", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Query
			q.Set(tt.text, tt.pos)
			if got := tt.edit(&q); got != tt.changed {
				t.Fatalf("expected changed=%v, got %v", tt.changed, got)
			}
			if q.Text() != tt.wantText || q.Pos() != tt.wantPos {
				t.Fatalf("expected %q@%d, got %q@%d", tt.wantText, tt.wantPos, q.Text(), q.Pos())
			}
		})
	}
}

func TestQuerySetClampsCaret(t *testing.T) {
	var q Query
	q.Set("ab", 9)
	if q.Pos() != 2 {
		t.Fatalf("expected caret clamped to 2, got %d", q.Pos())
	}
	q.Set("ab", -3)
	if q.Pos() != 0 {
		t.Fatalf("expected caret clamped to 0, got %d", q.Pos())
	}
}

func TestEditQueryRemembersCursorForRestore(t *testing.T) {
	level := newTestLevel("one", "two", "three")
	level.Cursor = 2
	if !level.EditQuery(func(q *Query) bool { return q.Insert("tw") }) {
		t.Fatalf("expected edit to apply")
	}
	if level.LastCursor != 2 {
		t.Fatalf("expected list cursor remembered, got %d", level.LastCursor)
	}

	level.ShowResults(newTestLevel("two").Items, "tw")
	level.EditQuery(func(q *Query) bool { return q.Insert("o") })
	if level.LastCursor != 2 {
		t.Fatalf("expected remembered cursor kept while searching, got %d", level.LastCursor)
	}

	level.EditQuery((*Query).Clear)
	level.RestoreItems(newTestLevel("one", "two", "three").Items)
	if level.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", level.Cursor)
	}
	if level.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", level.LastCursor)
	}
	if level.EditQuery((*Query).Clear) {
		t.Fatalf("expected clearing an empty prompt to be a no-op")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := newTestLevel("Town Square", "Off-Topic", "town", "Tower").Items
	cases := []struct {
		term string
		want int
	}{
		{"", 0},
		{"TOWN", 2},
		{"tow", 0},
		{"off", 1},
		{"tpc", 1},
		{"zzz", 0},
	}
	for _, c := range cases {
		if got := BestMatchIndex(items, c.term); got != c.want {
			t.Fatalf("term %q: expected %d, got %d", c.term, c.want, got)
		}
	}
	if BestMatchIndex(nil, "x") != -1 {
		t.Fatalf("expected -1 for empty list")
	}
}
