package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/authorview/internal/backend"
	"github.com/atomicstack/authorview/internal/controller"
	"github.com/atomicstack/authorview/internal/theme"
	uistate "github.com/atomicstack/authorview/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

type level = uistate.Level

type focus int

const (
	focusAuthors focus = iota
	focusPosts
	focusComments
)

func (f focus) String() string {
	switch f {
	case focusAuthors:
		return authorsLevelID
	case focusPosts:
		return postsLevelID
	case focusComments:
		return commentsLevelID
	}
	return "unknown"
}

const (
	authorsLevelID  = "authors"
	postsLevelID    = "posts"
	commentsLevelID = "comments"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Loader runs a backend request to completion. *backend.Loader satisfies it.
type Loader interface {
	Load(req backend.Request) backend.Event
}

// Options carries the presentation settings for NewModel.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Markdown   bool
	// User preselects an author once the author list has loaded.
	User int
}

// Model implements the Bubble Tea model for the author browser.
type Model struct {
	ctrl   *controller.Controller
	loader Loader

	focus    focus
	authors  *level
	posts    *level
	comments *level

	// detailPostID is the post the detail panel last observed; a change
	// triggers a comments load.
	detailPostID int
	detailErr    string
	form         *commentForm
	commentRows  int

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	preselect   int

	useMarkdown   bool
	markdown      *glamour.TermRenderer
	markdownWidth int

	spinner           spinner.Model
	filterCursor      cursor.Model
	filterCursorDirty bool
	animate           bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the UI around ctrl. Requests returned by the controller are
// executed through loader.
func NewModel(ctrl *controller.Controller, loader Loader, opts Options) *Model {
	if ctrl == nil {
		ctrl = controller.New()
	}
	m := &Model{
		ctrl:        ctrl,
		loader:      loader,
		focus:       focusAuthors,
		authors:     uistate.NewLevel(authorsLevelID, "Authors", nil),
		posts:       uistate.NewLevel(postsLevelID, "Posts", nil),
		comments:    uistate.NewLevel(commentsLevelID, "Comments", nil),
		showFooter:  opts.ShowFooter,
		useMarkdown: opts.Markdown,
		preselect:   opts.User,
		commentRows: -1,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	if styles.Spinner != nil {
		m.spinner.Style = *styles.Spinner
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.syncAuthors()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	m.animate = true
	cmds := []tea.Cmd{m.bootstrap(), m.spinner.Tick}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// bootstrap starts the author list fetch.
func (m *Model) bootstrap() tea.Cmd {
	return m.loadCmd(m.ctrl.LoadUsers())
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		cmds = append(cmds, cmd)
	} else if handler := m.handlerFor(msg); handler != nil {
		cmds = append(cmds, handler(msg))
	}
	cmds = append(cmds, m.observeDetail())
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if m.animate {
			cmds = append(cmds, m.filterCursor.BlinkCmd())
		}
	}
	return tea.Batch(cmds...)
}
