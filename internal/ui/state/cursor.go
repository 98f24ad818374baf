package state

// MoveCursorUp moves the cursor up one row, wrapping to the end.
func (l *Level) MoveCursorUp() bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	if l.Cursor > 0 {
		l.Cursor--
	} else {
		l.Cursor = n - 1
	}
	return n > 1
}

// MoveCursorDown moves the cursor down one row, wrapping to the start.
func (l *Level) MoveCursorDown() bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	if l.Cursor < n-1 {
		l.Cursor++
	} else {
		l.Cursor = 0
	}
	return n > 1
}

// MoveCursorHome moves the cursor to the first item.
func (l *Level) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (l *Level) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorBy(l.pageSize(maxVisible))
}

// SelectID moves the cursor onto id when present.
func (l *Level) SelectID(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}

func (l *Level) moveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	return l.Cursor != old
}

func (l *Level) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *Level) EnsureCursorVisible(maxVisible int) {
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
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
	}
}

// Visible returns the window of items starting at the viewport offset.
func (l *Level) Visible(maxVisible int) ([]Item, int) {
	if maxVisible <= 0 || len(l.Items) <= maxVisible {
		return l.Items, 0
	}
	start := l.ViewportOffset
	if start < 0 {
		start = 0
	}
	if start+maxVisible > len(l.Items) {
		start = len(l.Items) - maxVisible
	}
	return l.Items[start : start+maxVisible], start
}
