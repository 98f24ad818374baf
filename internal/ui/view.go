package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/authorview/internal/format/table"
	"github.com/atomicstack/authorview/internal/logging"
	"github.com/atomicstack/authorview/internal/state"
	"github.com/atomicstack/authorview/internal/ui/panel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	detailPanelMinWidth = 40   // below this the detail renders inline
	detailPanelFraction = 0.55 // share of the width given to the detail panel
	bottomBarRows       = 2    // status line + filter prompt
	linesPerComment     = 2
	footerText          = "tab focus  ↑/↓ move  enter select  ctrl+n comment  ctrl+d delete  esc back  ctrl+c quit"
)

var (
	detailBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	detailCountStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	var top string
	if m.hasSideDetail() {
		top = m.viewSideBySide()
	} else {
		top = m.viewVertical()
	}
	return top + "\n" + m.bottomBar()
}

// viewVertical stacks authors, posts and an inline detail block in a single
// column.
func (m *Model) viewVertical() string {
	lines := m.leftColumnLines(m.width)
	if m.detailState() != panel.DetailClosed {
		lines = append(lines, styledLine{})
		title := styledLine{text: m.detailTitle(), style: styles.Header}
		lines = append(lines, title)
		remain := -1
		if h := m.contentHeight(); h > 0 {
			remain = h - len(lines)
		}
		lines = append(lines, m.detailLines(m.width, remain)...)
	}
	lines = limitHeight(lines, m.contentHeight(), m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// viewSideBySide renders the lists on the left and the detail panel on the
// right.
func (m *Model) viewSideBySide() string {
	detailW := m.detailPanelWidth()
	leftW := m.width - detailW
	panelH := m.contentHeight()
	if panelH < 3 {
		panelH = 3
	}

	left := m.leftColumnLines(leftW)
	if len(left) > panelH {
		left = left[:panelH]
	}
	for len(left) < panelH {
		left = append(left, styledLine{})
	}
	leftRows := make([]string, len(left))
	for i, line := range left {
		leftRows[i] = fitLine(line, leftW)
	}
	right := m.renderDetailPanel(detailW, panelH)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(leftRows, "\n"), right)
}

func (m *Model) leftColumnLines(width int) []styledLine {
	lines := make([]styledLine, 0, 24)
	lines = append(lines, m.headerLine("Authors", focusAuthors))
	switch m.ctrl.UsersStatus() {
	case state.StatusLoading:
		lines = append(lines, m.loadingLine("Loading authors…"))
	case state.StatusFailed:
		lines = append(lines, styledLine{text: "Unable to load authors", style: styles.Error})
	default:
		lines = append(lines, m.authorLines(width)...)
	}

	lines = append(lines, styledLine{})
	postsTitle := "Posts"
	if author, ok := m.ctrl.Author(); ok {
		postsTitle = "Posts by " + author.Name
	}
	lines = append(lines, m.headerLine(postsTitle, focusPosts))
	switch st := m.mainState(); st {
	case panel.NoUser:
		lines = append(lines, styledLine{text: panel.Text(st), style: styles.Info})
	case panel.Loading:
		lines = append(lines, m.loadingLine(panel.Text(st)))
	case panel.Failed:
		lines = append(lines, styledLine{text: panel.Text(st), style: styles.Danger})
	case panel.Empty:
		lines = append(lines, styledLine{text: panel.Text(st), style: styles.Notice})
	case panel.Posts:
		lines = append(lines, m.postLines(width)...)
	}
	return lines
}

func (m *Model) authorLines(width int) []styledLine {
	if len(m.authors.Items) == 0 {
		msg := "No authors"
		if m.authors.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.authors.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	m.syncViewport(m.authors)
	selected, hasSelected := m.ctrl.SelectedUserID()
	visible, start := m.authors.Visible(m.authorRows())
	lines := make([]styledLine, 0, len(visible))
	for i, item := range visible {
		id, _ := item.IntID()
		isCursor := m.focus == focusAuthors && start+i == m.authors.Cursor
		lines = append(lines, buildItemLine(item.Label, isCursor, hasSelected && id == selected, width))
	}
	return lines
}

func (m *Model) postLines(width int) []styledLine {
	m.syncViewport(m.posts)
	selected, hasSelected := m.ctrl.SelectedPostID()
	visible, start := m.posts.Visible(m.postRows())
	rows := make([][]string, len(visible))
	for i, item := range visible {
		rows[i] = []string{"#" + item.ID, item.Label}
	}
	formatted := table.Format(rows, []table.Column{{Align: table.AlignRight}, {}})
	lines := make([]styledLine, 0, len(visible))
	for i, item := range visible {
		id, _ := item.IntID()
		isCursor := m.focus == focusPosts && start+i == m.posts.Cursor
		lines = append(lines, buildItemLine(formatted[i], isCursor, hasSelected && id == selected, width))
	}
	return lines
}

func (m *Model) detailTitle() string {
	if post, ok := m.ctrl.SelectedPost(); ok {
		return fmt.Sprintf("Post #%d", post.ID)
	}
	if id, ok := m.ctrl.SelectedPostID(); ok {
		return fmt.Sprintf("Post #%d", id)
	}
	return "Post"
}

// detailLines renders the body of the detail panel. height bounds the comment
// list; a negative height leaves it unbounded.
func (m *Model) detailLines(width, height int) []styledLine {
	if m.detailState() == panel.DetailMissing {
		return []styledLine{{text: panel.MissingText, style: styles.Notice}}
	}
	post, ok := m.ctrl.SelectedPost()
	if !ok {
		return nil
	}
	lines := make([]styledLine, 0, 32)
	lines = append(lines, styledLine{text: post.Title, style: styles.DetailTitle})
	if author, ok := m.ctrl.Author(); ok {
		lines = append(lines, styledLine{text: "by " + author.Name, style: styles.Notice})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, m.bodyLines(post.Body, width)...)
	lines = append(lines, styledLine{})

	commentsTitle := "Comments"
	if m.ctrl.CommentsStatus() == state.StatusIdle {
		commentsTitle = fmt.Sprintf("Comments (%d)", len(m.ctrl.Comments()))
	}
	lines = append(lines, m.headerLine(commentsTitle, focusComments))
	if m.detailErr != "" {
		lines = append(lines, styledLine{text: m.detailErr, style: styles.Error})
	}
	if m.form != nil {
		return append(lines, m.form.lines()...)
	}

	switch st := panel.Comments(m.ctrl.CommentsStatus(), len(m.ctrl.Comments())); st {
	case panel.CommentsLoading:
		lines = append(lines, m.loadingLine(panel.Text(st)))
	case panel.CommentsFailed:
		lines = append(lines, styledLine{text: panel.Text(st), style: styles.Error})
	case panel.CommentsEmpty:
		lines = append(lines, styledLine{text: panel.Text(st), style: styles.Notice})
	case panel.CommentsList:
		rows := -1
		if height > 0 {
			rows = (height - len(lines)) / linesPerComment
			if rows < 1 {
				rows = 1
			}
		}
		lines = append(lines, m.commentLines(width, rows)...)
	}
	return lines
}

func (m *Model) commentLines(width, rows int) []styledLine {
	m.commentRows = rows
	m.comments.EnsureCursorVisible(rows)
	comments := m.ctrl.Comments()
	visible, start := m.comments.Visible(rows)
	tableRows := make([][]string, len(visible))
	for i := range visible {
		c := comments[start+i]
		tableRows[i] = []string{c.Name, "<" + c.Email + ">"}
	}
	maxName := width / 2
	if maxName < 8 {
		maxName = 8
	}
	formatted := table.Format(tableRows, []table.Column{{MaxWidth: maxName}, {}})
	lines := make([]styledLine, 0, len(visible)*linesPerComment)
	for i := range visible {
		c := comments[start+i]
		isCursor := m.focus == focusComments && start+i == m.comments.Cursor
		line := buildItemLine(formatted[i], isCursor, false, width)
		if !isCursor {
			line.style = styles.CommentAuthor
		}
		body := strings.Join(strings.Fields(c.Body), " ")
		lines = append(lines, line, styledLine{text: "  " + body, style: styles.CommentBody})
	}
	return lines
}

func (m *Model) bodyLines(body string, width int) []styledLine {
	if width < 1 {
		width = 1
	}
	if m.useMarkdown {
		rendered, err := m.renderMarkdown(body, width)
		if err == nil {
			lines := make([]styledLine, len(rendered))
			for i, text := range rendered {
				lines[i] = styledLine{text: text, raw: true}
			}
			return lines
		}
		logging.Error(err)
	}
	wrapped := strings.Split(wordwrap.String(body, width), "\n")
	lines := make([]styledLine, len(wrapped))
	for i, text := range wrapped {
		lines[i] = styledLine{text: text, style: styles.DetailBody}
	}
	return lines
}

func (m *Model) renderMarkdown(body string, width int) ([]string, error) {
	if m.markdown == nil || m.markdownWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return nil, fmt.Errorf("markdown renderer: %w", err)
		}
		m.markdown = r
		m.markdownWidth = width
	}
	out, err := m.markdown.Render(body)
	if err != nil {
		return nil, fmt.Errorf("render post body: %w", err)
	}
	return strings.Split(strings.Trim(out, "\n"), "\n"), nil
}

// renderDetailPanel builds the bordered detail box with exactly height rows
// and totalWidth columns.
func (m *Model) renderDetailPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 4 // border plus one column of padding per side
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleSeg := " " + m.detailTitle() + " "
	countSeg := ""
	if m.detailOpen() && m.ctrl.CommentsStatus() == state.StatusIdle {
		countSeg = fmt.Sprintf(" %d comments ", len(m.ctrl.Comments()))
	}
	dashes := totalWidth - 4 - runewidth.StringWidth(titleSeg) - runewidth.StringWidth(countSeg)
	if dashes < 0 {
		countSeg = ""
		dashes = totalWidth - 4 - runewidth.StringWidth(titleSeg)
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - runewidth.StringWidth(titleSeg)
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := detailBorderStyle.Render(tlc+hz) +
		styles.Header.Render(titleSeg) +
		detailBorderStyle.Render(strings.Repeat(hz, dashes)) +
		detailCountStyle.Render(countSeg) +
		detailBorderStyle.Render(hz+trc)
	bottomLine := detailBorderStyle.Render(blc + strings.Repeat(hz, totalWidth-2) + brc)

	content := m.detailLines(innerW, innerH)
	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var line styledLine
		if i < len(content) {
			line = content[i]
		}
		rows = append(rows, detailBorderStyle.Render(vt)+" "+fitLine(line, innerW)+" "+detailBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

func (m *Model) bottomBar() string {
	lines := make([]styledLine, 0, 3)
	if m.showFooter {
		lines = append(lines, styledLine{text: footerText, style: styles.Footer})
	}
	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	} else if info := m.currentInfo(); info != "" {
		status = styledLine{text: info, style: styles.Info}
	}
	lines = append(lines, status, styledLine{text: m.filterPrompt(), raw: true})
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) headerLine(title string, f focus) styledLine {
	style := styles.Header
	if m.focus == f && styles.FocusedHeader != nil {
		style = styles.FocusedHeader
	}
	return styledLine{text: title, style: style}
}

func (m *Model) loadingLine(text string) styledLine {
	label := text
	if styles.Loading != nil {
		label = styles.Loading.Render(text)
	}
	return styledLine{text: m.spinner.View() + " " + label, raw: true}
}

// buildItemLine constructs a single styledLine for a list row. width is the
// target column width; when > 0 the text is padded so that the cursor row's
// background spans the full column.
func buildItemLine(label string, isCursor, isActive bool, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if isActive {
		lineStyle = styles.ActiveItem
		indicatorStyle = styles.SelectedItemIndicator
	}
	if isCursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - runewidth.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func (m *Model) hasSideDetail() bool {
	if m.detailState() == panel.DetailClosed {
		return false
	}
	return m.detailPanelWidth() > 0
}

// detailPanelWidth returns the width of the right-hand detail panel, or 0
// when the terminal is too narrow to split.
func (m *Model) detailPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * detailPanelFraction)
	if w < detailPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) contentHeight() int {
	if m.height <= 0 {
		return -1
	}
	h := m.height - bottomBarRows
	if m.showFooter {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) authorRows() int {
	h := m.contentHeight()
	if h < 0 {
		return -1
	}
	rows := h / 3
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m *Model) postRows() int {
	h := m.contentHeight()
	if h < 0 {
		return -1
	}
	// two headers and the blank separator
	rows := h - m.authorRows() - 3
	if !m.hasSideDetail() && m.detailState() != panel.DetailClosed {
		rows /= 2
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) visibleRows(l *level) int {
	switch l {
	case m.authors:
		return m.authorRows()
	case m.posts:
		return m.postRows()
	}
	return m.commentRows
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport(m.authors)
	m.syncViewport(m.posts)
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

// fitLine renders line padded or truncated to exactly width columns.
func fitLine(line styledLine, width int) string {
	if line.raw {
		text := line.text
		if w := lipgloss.Width(text); w > width {
			text = truncate.StringWithTail(text, uint(width-1), "…")
		}
		if pad := width - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
		return text
	}
	line.text = truncateText(line.text, width)
	if pad := width - runewidth.StringWidth(line.text); pad > 0 {
		line.text += strings.Repeat(" ", pad)
	}
	return renderLines([]styledLine{line})
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return runewidth.Truncate(text, width, "…")
}
