package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/authorview/internal/logging/events"
	"github.com/atomicstack/authorview/internal/model"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
)

const (
	fieldName = iota
	fieldEmail
	fieldBody
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Email", "Body"}

// commentForm collects a new comment for the open post.
type commentForm struct {
	postID int
	inputs [fieldCount]textinput.Model
	active int
	err    string
}

func newCommentForm(postID int) *commentForm {
	f := &commentForm{postID: postID}
	placeholders := [fieldCount]string{"your name", "you@example.com", "say something nice"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 500
		ti.Cursor.SetMode(cursor.CursorStatic)
		f.inputs[i] = ti
	}
	f.inputs[fieldBody].CharLimit = 2000
	f.inputs[fieldName].Focus()
	return f
}

// Update feeds a key into the form. done reports that the user submitted;
// cancel that they backed out.
func (f *commentForm) Update(msg tea.KeyMsg) (cmd tea.Cmd, done, cancel bool) {
	switch msg.String() {
	case "esc":
		return nil, false, true
	case "tab", "down":
		f.focusField((f.active + 1) % fieldCount)
		return nil, false, false
	case "shift+tab", "up":
		f.focusField((f.active + fieldCount - 1) % fieldCount)
		return nil, false, false
	case "enter":
		if f.active < fieldBody {
			f.focusField(f.active + 1)
			return nil, false, false
		}
		return nil, true, false
	}
	f.inputs[f.active], cmd = f.inputs[f.active].Update(msg)
	return cmd, false, false
}

func (f *commentForm) focusField(idx int) {
	f.inputs[f.active].Blur()
	f.active = idx
	f.inputs[f.active].Focus()
}

// Data returns the entered values.
func (f *commentForm) Data() model.CommentData {
	return model.CommentData{
		PostID: f.postID,
		Name:   strings.TrimSpace(f.inputs[fieldName].Value()),
		Email:  strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Body:   strings.TrimSpace(f.inputs[fieldBody].Value()),
	}
}

// SetValues fills the inputs.
func (f *commentForm) SetValues(name, email, body string) {
	f.inputs[fieldName].SetValue(name)
	f.inputs[fieldEmail].SetValue(email)
	f.inputs[fieldBody].SetValue(body)
}

func (f *commentForm) lines() []styledLine {
	lines := []styledLine{{text: "New comment", style: styles.DetailTitle}}
	for i, input := range f.inputs {
		label := fieldLabels[i]
		if styles.FormLabel != nil {
			label = styles.FormLabel.Render(label)
		}
		lines = append(lines, styledLine{text: label + input.View(), raw: true})
	}
	if f.err != "" {
		lines = append(lines, styledLine{text: f.err, style: styles.Error})
	}
	lines = append(lines, styledLine{text: "tab next  enter submit  esc cancel", style: styles.Footer})
	return lines
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.form == nil {
		return false, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	if keyMsg.String() == "ctrl+c" {
		return true, tea.Quit
	}
	cmd, done, cancel := m.form.Update(keyMsg)
	if cancel {
		events.Form.Cancel(m.form.postID, events.FormReasonEscape)
		m.form = nil
		return true, nil
	}
	if !done {
		return true, cmd
	}
	req, err := m.ctrl.AddComment(m.form.Data())
	if err != nil {
		events.Form.Cancel(m.form.postID, events.FormReasonInvalid)
		m.form.err = formError(err)
		return true, nil
	}
	events.Form.Submit(m.form.postID)
	m.form = nil
	return true, m.loadCmd(req)
}

func (m *Model) openCommentForm() tea.Cmd {
	post, ok := m.ctrl.SelectedPost()
	if !ok || m.form != nil {
		return nil
	}
	m.form = newCommentForm(post.ID)
	m.setFocus(focusComments)
	events.Form.Open(post.ID)
	return nil
}

func (m *Model) deleteFocusedComment() tea.Cmd {
	if m.focus != focusComments || !m.detailOpen() {
		return nil
	}
	item, ok := m.comments.Current()
	if !ok {
		return nil
	}
	id, ok := item.IntID()
	if !ok {
		return nil
	}
	return m.loadCmd(m.ctrl.DeleteComment(id))
}

// formError turns a validation failure into a single line for the form.
func formError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s is not a valid address", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}
