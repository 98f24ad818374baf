package ui

import (
	"fmt"

	"github.com/atomicstack/authorview/internal/backend"
	"github.com/atomicstack/authorview/internal/model"
	uistate "github.com/atomicstack/authorview/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type backendEventMsg struct {
	event backend.Event
}

// loadCmd runs req on the loader goroutine and feeds the result back into
// Update.
func (m *Model) loadCmd(req backend.Request) tea.Cmd {
	if m.loader == nil {
		return nil
	}
	loader := m.loader
	return func() tea.Msg {
		return backendEventMsg{event: loader.Load(req)}
	}
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	return m.applyBackendEvent(eventMsg.event)
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	res := m.ctrl.Apply(evt)
	if res.Stale {
		return nil
	}
	switch evt.Request.Kind {
	case backend.KindUsers:
		m.syncAuthors()
		if res.Err != nil {
			m.errMsg = res.Err.Error()
			return nil
		}
		return m.applyPreselect()
	case backend.KindPosts:
		// failures surface through the main panel state; the store still
		// holds the previous author's rows, which must not become navigable
		if res.Err == nil {
			m.syncPosts()
		}
	case backend.KindComments:
		m.syncComments()
	case backend.KindCommentCreate:
		if res.Err != nil {
			m.detailErr = fmt.Sprintf("Unable to add comment: %v", res.Err)
			return nil
		}
		m.detailErr = ""
		m.syncComments()
		m.comments.MoveCursorEnd()
		m.setInfo("Comment added")
	case backend.KindCommentDelete:
		if res.Err != nil {
			m.detailErr = fmt.Sprintf("Unable to delete comment: %v", res.Err)
			return nil
		}
		m.detailErr = ""
		m.syncComments()
		m.setInfo("Comment deleted")
	}
	return nil
}

func (m *Model) applyPreselect() tea.Cmd {
	id := m.preselect
	if id <= 0 {
		return nil
	}
	m.preselect = 0
	user, ok := m.ctrl.UserByID(id)
	if !ok {
		m.setInfo(fmt.Sprintf("Author %d not found", id))
		return nil
	}
	m.authors.SelectID(authorItem(user).ID)
	m.syncViewport(m.authors)
	return m.selectAuthor(id)
}

func (m *Model) syncAuthors() {
	users := m.ctrl.Users()
	items := make([]uistate.Item, len(users))
	for i, user := range users {
		items[i] = authorItem(user)
	}
	m.authors.UpdateItems(items)
	m.syncViewport(m.authors)
}

func (m *Model) syncPosts() {
	posts := m.ctrl.Posts()
	items := make([]uistate.Item, len(posts))
	for i, post := range posts {
		items[i] = uistate.IntItem(post.ID, post.Title)
	}
	m.posts.UpdateItems(items)
	m.syncViewport(m.posts)
}

func (m *Model) syncComments() {
	comments := m.ctrl.Comments()
	items := make([]uistate.Item, len(comments))
	for i, comment := range comments {
		items[i] = uistate.IntItem(comment.ID, comment.Name)
	}
	m.comments.UpdateItems(items)
}

// observeDetail reacts to a change of the selected post. Opening a post that
// exists in the current list starts its comments load; closing it drops the
// comment list and any pending form.
func (m *Model) observeDetail() tea.Cmd {
	id, ok := m.ctrl.SelectedPostID()
	if !ok {
		id = 0
	}
	if id == m.detailPostID {
		return nil
	}
	m.detailPostID = id
	m.detailErr = ""
	m.form = nil
	m.comments.UpdateItems(nil)
	m.comments.Cursor = 0
	if id == 0 {
		if m.focus == focusComments {
			m.setFocus(focusPosts)
		}
		return nil
	}
	if _, found := m.ctrl.SelectedPost(); !found {
		return nil
	}
	return m.loadCmd(m.ctrl.LoadComments(id))
}

func authorItem(user model.User) uistate.Item {
	var label string
	switch {
	case user.Name != "" && user.Username != "":
		label = fmt.Sprintf("%s (@%s)", user.Name, user.Username)
	case user.Name != "":
		label = user.Name
	case user.Username != "":
		label = "@" + user.Username
	default:
		label = fmt.Sprintf("User %d", user.ID)
	}
	return uistate.IntItem(user.ID, label)
}
