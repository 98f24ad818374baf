package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading               *lipgloss.Style
	Spinner               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	ActiveItem            *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Notice                *lipgloss.Style
	Danger                *lipgloss.Style
	Header                *lipgloss.Style
	FocusedHeader         *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	DetailBorder          *lipgloss.Style
	DetailTitle           *lipgloss.Style
	DetailBody            *lipgloss.Style
	CommentAuthor         *lipgloss.Style
	CommentBody           *lipgloss.Style
	FormLabel             *lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Spinner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	ActiveItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Notice: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
	),
	Danger: ptr(
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("124")).
			Bold(true).
			Padding(0, 1),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	FocusedHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true).Underline(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	DetailBorder: ptr(
		lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
	),
	DetailTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	DetailBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	CommentAuthor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
	),
	CommentBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("247")),
	),
	FormLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(7),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
