package events

import "github.com/atomicstack/authorview/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type FormTracer struct{}

type formReason string

const (
	FormReasonEscape  formReason = "escape"
	FormReasonInvalid formReason = "invalid"
)

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
	Form   = FormTracer{}
)

func (UITracer) Focus(panel string) {
	logging.Trace("ui.focus", map[string]interface{}{"panel": panel})
}

func (UITracer) Cursor(listID string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"list": listID, "cursor": cursor})
}

func (UITracer) Enter(listID, itemID, label, filter string) {
	logging.Trace("ui.enter", map[string]interface{}{
		"list":   listID,
		"item":   itemID,
		"label":  label,
		"filter": filter,
	})
}

func (FilterTracer) Cleared(listID string) {
	logging.Trace("filter.clear", map[string]interface{}{"list": listID})
}

func (FilterTracer) WordBackspace(listID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"list": listID, "filter": filter})
}

func (FilterTracer) Cursor(listID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"list": listID, "cursor": pos})
}

func (FilterTracer) Append(listID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"list": listID, "filter": filter})
}

func (FilterTracer) Backspace(listID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"list": listID, "filter": filter})
}

func (FormTracer) Open(postID int) {
	logging.Trace("form.comment.open", map[string]interface{}{"post": postID})
}

func (FormTracer) Cancel(postID int, reason formReason) {
	logging.Trace("form.comment.cancel", map[string]interface{}{"post": postID, "reason": string(reason)})
}

func (FormTracer) Submit(postID int) {
	logging.Trace("form.comment.submit", map[string]interface{}{"post": postID})
}
