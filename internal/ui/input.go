package ui

import (
	"unicode"

	"github.com/atomicstack/authorview/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *level, before int) {
	if l == nil {
		return
	}
	if before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput edits the author filter. It reports false for keys that
// should fall through to navigation.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	current := m.authors
	switch msg.String() {
	case "ctrl+u":
		if current.Filter == "" {
			return false, nil
		}
		before := current.FilterCursorPos()
		current.SetFilter("", 0)
		m.noteFilterCursorChange(current, before)
		m.forceClearInfo()
		events.Filter.Cleared(current.ID)
		m.syncViewport(current)
		return true, nil
	case "ctrl+w":
		before := current.FilterCursorPos()
		if !current.DeleteFilterWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		m.forceClearInfo()
		events.Filter.WordBackspace(current.ID, current.Filter)
		m.syncViewport(current)
		return true, nil
	case "ctrl+a":
		return m.moveFilterCursor(current, current.MoveFilterCursorStart), nil
	case "ctrl+e":
		return m.moveFilterCursor(current, current.MoveFilterCursorEnd), nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune(), nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return m.appendToFilter(string(msg.Runes)), nil
	case tea.KeySpace:
		return m.appendToFilter(" "), nil
	case tea.KeyLeft:
		return m.moveFilterCursor(current, current.MoveFilterCursorRuneBackward), nil
	case tea.KeyRight:
		return m.moveFilterCursor(current, current.MoveFilterCursorRuneForward), nil
	}
	return false, nil
}

func (m *Model) moveFilterCursor(l *level, move func() bool) bool {
	before := l.FilterCursorPos()
	if !move() {
		return false
	}
	m.noteFilterCursorChange(l, before)
	events.Filter.Cursor(l.ID, l.FilterCursor)
	return true
}

func (m *Model) appendToFilter(text string) bool {
	current := m.authors
	before := current.FilterCursorPos()
	if !current.InsertFilterText(text) {
		return false
	}
	m.noteFilterCursorChange(current, before)
	m.forceClearInfo()
	events.Filter.Append(current.ID, current.Filter)
	m.syncViewport(current)
	return true
}

func (m *Model) removeFilterRune() bool {
	current := m.authors
	before := current.FilterCursorPos()
	if !current.DeleteFilterRuneBackward() {
		return false
	}
	m.noteFilterCursorChange(current, before)
	m.forceClearInfo()
	events.Filter.Backspace(current.ID, current.Filter)
	m.syncViewport(current)
	return true
}

func (m *Model) filterPrompt() string {
	current := m.authors
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := current.Filter
	if text == "" {
		placeholder := []rune("(type to filter authors)")
		if m.focus != focusAuthors {
			return prompt + render(styles.FilterPlaceholder, string(placeholder))
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	runes := []rune(text)
	pos := current.FilterCursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	if m.focus != focusAuthors {
		return prompt + before + render(styles.Filter, caretRune) + after
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
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
