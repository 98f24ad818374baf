package ui

import (
	"github.com/atomicstack/authorview/internal/logging/events"
	"github.com/atomicstack/authorview/internal/ui/panel"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.focus == focusAuthors {
		if handled, cmd := m.handleTextInput(keyMsg); handled {
			return cmd
		}
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "tab":
		m.cycleFocus(1)
	case "shift+tab":
		m.cycleFocus(-1)
	case "up":
		m.moveCursor((*level).MoveCursorUp)
	case "down":
		m.moveCursor((*level).MoveCursorDown)
	case "home":
		m.moveCursor((*level).MoveCursorHome)
	case "end":
		m.moveCursor((*level).MoveCursorEnd)
	case "pgup":
		m.moveCursor(func(l *level) bool { return l.MoveCursorPageUp(m.visibleRows(l)) })
	case "pgdown":
		m.moveCursor(func(l *level) bool { return l.MoveCursorPageDown(m.visibleRows(l)) })
	case "ctrl+n":
		return m.openCommentForm()
	case "ctrl+d":
		return m.deleteFocusedComment()
	}
	return nil
}

func (m *Model) handleEscapeKey() tea.Cmd {
	if _, ok := m.ctrl.SelectedPostID(); ok {
		m.ctrl.ClearPost()
		m.errMsg = ""
		m.forceClearInfo()
		return nil
	}
	if m.authors.Filter != "" {
		before := m.authors.FilterCursorPos()
		m.authors.ClearFilter()
		m.noteFilterCursorChange(m.authors, before)
		events.Filter.Cleared(m.authors.ID)
		m.syncViewport(m.authors)
		return nil
	}
	return tea.Quit
}

func (m *Model) handleEnterKey() tea.Cmd {
	switch m.focus {
	case focusAuthors:
		item, ok := m.authors.Current()
		if !ok {
			return nil
		}
		id, ok := item.IntID()
		if !ok {
			return nil
		}
		events.UI.Enter(m.authors.ID, item.ID, item.Label, m.authors.Filter)
		cmd := m.selectAuthor(id)
		m.setFocus(focusPosts)
		return cmd
	case focusPosts:
		if m.mainState() != panel.Posts {
			return nil
		}
		item, ok := m.posts.Current()
		if !ok {
			return nil
		}
		id, ok := item.IntID()
		if !ok {
			return nil
		}
		events.UI.Enter(m.posts.ID, item.ID, item.Label, "")
		if selected, ok := m.ctrl.SelectedPostID(); ok && selected == id {
			m.ctrl.ClearPost()
			return nil
		}
		m.ctrl.SelectPost(id)
	}
	return nil
}

// selectAuthor records the author and returns the posts fetch for it. The
// previous author's rows are dropped so the cursor starts at the top.
func (m *Model) selectAuthor(id int) tea.Cmd {
	req := m.ctrl.SelectUser(id)
	m.posts.UpdateItems(nil)
	m.posts.Cursor = 0
	m.errMsg = ""
	return m.loadCmd(req)
}

func (m *Model) cycleFocus(delta int) {
	order := []focus{focusAuthors, focusPosts}
	if m.detailOpen() {
		order = append(order, focusComments)
	}
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	m.setFocus(order[idx])
}

func (m *Model) setFocus(f focus) {
	if m.focus == f {
		return
	}
	m.focus = f
	events.UI.Focus(f.String())
}

func (m *Model) focusedLevel() *level {
	switch m.focus {
	case focusPosts:
		return m.posts
	case focusComments:
		return m.comments
	}
	return m.authors
}

func (m *Model) moveCursor(move func(*level) bool) {
	current := m.focusedLevel()
	if !move(current) {
		return
	}
	events.UI.Cursor(current.ID, current.Cursor)
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.visibleRows(l))
}

func (m *Model) detailOpen() bool {
	_, ok := m.ctrl.SelectedPost()
	return ok
}

func (m *Model) mainState() panel.State {
	_, selected := m.ctrl.SelectedUserID()
	return panel.Main(panel.Input{
		UserSelected: selected,
		Status:       m.ctrl.PostsStatus(),
		PostCount:    len(m.ctrl.Posts()),
	})
}

func (m *Model) detailState() panel.State {
	_, selected := m.ctrl.SelectedPostID()
	_, found := m.ctrl.SelectedPost()
	return panel.Detail(selected, found)
}
