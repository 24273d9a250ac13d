package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared by the terminal chrome.
type Styles struct {
	TabStrip           *lipgloss.Style
	Tab                *lipgloss.Style
	ActiveTab          *lipgloss.Style
	Urlbar             *lipgloss.Style
	UrlbarPrompt       *lipgloss.Style
	Suggestion         *lipgloss.Style
	SelectedSuggestion *lipgloss.Style
	Page               *lipgloss.Style
	Status             *lipgloss.Style
	Error              *lipgloss.Style
	Header             *lipgloss.Style
	SidebarItem        *lipgloss.Style
	SelectedItem       *lipgloss.Style
	Filter             *lipgloss.Style
	FilterPrompt       *lipgloss.Style
	FilterPlaceholder  *lipgloss.Style
	OptionOn           *lipgloss.Style
	OptionOff          *lipgloss.Style
	LogInfo            *lipgloss.Style
	LogWarn            *lipgloss.Style
	LogError           *lipgloss.Style
}

var darkStyles = Styles{
	TabStrip: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("235")),
	),
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("235")),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Urlbar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	UrlbarPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Suggestion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedSuggestion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	Page: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	SidebarItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
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
	OptionOn: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	OptionOff: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	LogInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	LogWarn: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	LogError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	),
}

var lightStyles = Styles{
	TabStrip: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("254")),
	),
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Background(lipgloss.Color("254")),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("251")).Bold(true),
	),
	Urlbar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
	),
	UrlbarPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
	),
	Suggestion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedSuggestion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("251")),
	),
	Page: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true),
	),
	SidebarItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("251")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	),
	OptionOn: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	),
	OptionOff: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	),
	LogInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	LogWarn: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	),
	LogError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	),
}

// Default exposes the light style set.
func Default() *Styles {
	return &lightStyles
}

// For returns the dark or light style set.
func For(dark bool) *Styles {
	if dark {
		return &darkStyles
	}
	return &lightStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
