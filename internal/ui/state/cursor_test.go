package state

import "testing"

func newTestLevel(labels ...string) *Level {
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = IntItem(i+1, label)
	}
	return NewLevel("authors", "Authors", items)
}

func TestMoveCursorWraps(t *testing.T) {
	l := newTestLevel("Leanne", "Ervin", "Clementine")
	if !l.MoveCursorUp() {
		t.Fatalf("expected movement when wrapping up")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor to wrap to 2, got %d", l.Cursor)
	}
	if !l.MoveCursorDown() {
		t.Fatalf("expected movement when wrapping down")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor to wrap to 0, got %d", l.Cursor)
	}

	single := newTestLevel("Leanne")
	if single.MoveCursorDown() {
		t.Fatalf("expected no reported movement for a single row")
	}
	if newTestLevel().MoveCursorUp() {
		t.Fatalf("expected no movement for empty level")
	}
}

func TestMoveCursorHomeAndEnd(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	l.Cursor = 2
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", l.Cursor)
	}
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected cursor at 2, got %d", l.Cursor)
	}
	if l.MoveCursorEnd() {
		t.Fatalf("expected no movement when already at end")
	}

	empty := newTestLevel()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty level")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) || l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(10) || l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestSelectID(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.SelectID("3") || l.Cursor != 2 {
		t.Fatalf("expected cursor on id 3, got %d", l.Cursor)
	}
	if l.SelectID("99") {
		t.Fatalf("expected unknown id to be rejected")
	}
	item, ok := l.Current()
	if !ok {
		t.Fatalf("expected current item")
	}
	if id, ok := item.IntID(); !ok || id != 3 {
		t.Fatalf("expected numeric id 3, got %d (%v)", id, ok)
	}
}

func TestUpdateItemsKeepsCursorOnSameID(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	l.Cursor = 1
	l.UpdateItems([]Item{IntItem(9, "z"), IntItem(2, "b")})
	if l.Cursor != 1 {
		t.Fatalf("expected cursor to follow id 2, got %d", l.Cursor)
	}
	l.UpdateItems(nil)
	if l.Cursor != 0 || l.ViewportOffset != 0 {
		t.Fatalf("expected reset for empty items, got cursor %d offset %d", l.Cursor, l.ViewportOffset)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}
	visible, start := l.Visible(2)
	if start != 3 || len(visible) != 2 || visible[1].Label != "e" {
		t.Fatalf("unexpected visible window %v from %d", visible, start)
	}

	l.Cursor = -1
	l.EnsureCursorVisible(2)
	if l.Cursor != 0 || l.ViewportOffset != 0 {
		t.Fatalf("expected cursor and offset normalised, got %d/%d", l.Cursor, l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}
}
