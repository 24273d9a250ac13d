package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/atomicstack/webshell/internal/format/table"
	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/state"
	"github.com/atomicstack/webshell/internal/theme"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
)

const (
	noTitle   = "No Title"
	titleCols = 15
	// tabCols is the width of one tab strip segment including its separator.
	tabCols = 21

	sidebarHeaderRows = 2
	optionsHeaderRows = 1

	statusHint = "ctrl+l location  ctrl+t new tab  ctrl+b tabs  ctrl+o options  ctrl+q quit"
)

func (m *model) View() string {
	win, ok := m.window().snapshot()
	if !ok {
		return ""
	}
	styles := theme.For(m.app.snapshot().DarkTheme)
	cols, rows := m.window().view.size()

	lines := make([]string, 0, rows)
	lines = append(lines, fit(tabStrip(win, styles), cols))
	lines = append(lines, fit(m.urlbarLine(win, styles), cols))
	lines = append(lines, m.bodyLines(win, styles, cols, bodyRows(rows, win))...)
	if win.LogsVisible {
		lines = append(lines, logLines(m.window().recentLogs(logRows-1), styles, cols)...)
	}
	status := statusHint
	if win.Status != "" {
		status = win.Status
	}
	lines = append(lines, fit(styles.Status.Render(status), cols))
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return strings.Join(lines, "\n")
}

func tabTitle(b state.BrowserState) string {
	if b.Title == "" {
		return noTitle
	}
	return b.Title
}

// tabStrip renders "| > title *|" segments, one per tab.
func tabStrip(win state.WindowState, styles *theme.Styles) string {
	var b strings.Builder
	b.WriteString(styles.TabStrip.Render("|"))
	for i, br := range win.Browsers {
		selected, loading := ' ', ' '
		style := styles.Tab
		if i == win.CurrentBrowserIndex {
			selected = '>'
			style = styles.ActiveTab
		}
		if br.IsLoading {
			loading = '*'
		}
		title := padding.String(truncate.String(tabTitle(br), titleCols), titleCols)
		b.WriteString(style.Render(fmt.Sprintf(" %c %s %c", selected, title, loading)))
		b.WriteString(styles.TabStrip.Render("|"))
	}
	return b.String()
}

// tabAt returns the tab under column x of the tab strip, or -1.
func tabAt(tabs, x int) int {
	if x < 1 {
		return -1
	}
	idx := (x - 1) / tabCols
	if idx >= tabs {
		return -1
	}
	return idx
}

func (m *model) urlbarLine(win state.WindowState, styles *theme.Styles) string {
	prompt := styles.UrlbarPrompt.Render("> ")
	if win.UrlbarFocused {
		return prompt + m.urlbar.View()
	}
	b := win.CurrentBrowser()
	if b == nil {
		return prompt
	}
	line := prompt + styles.Urlbar.Render(b.URL)
	if b.Zoom != 1 {
		line += styles.Status.Render(fmt.Sprintf("  %d%%", int(math.Round(b.Zoom*100))))
	}
	return line
}

func bodyRows(rows int, win state.WindowState) int {
	n := rows - chromeRows - statusRows
	if win.LogsVisible {
		n -= logRows
	}
	if n < 0 {
		return 0
	}
	return n
}

// listOffset scrolls a list so the cursor stays within visible rows.
func listOffset(cursor, visible int) int {
	if visible <= 0 || cursor < visible {
		return 0
	}
	return cursor - visible + 1
}

func (m *model) bodyLines(win state.WindowState, styles *theme.Styles, cols, height int) []string {
	var sidebar, options []string
	sideW, optW := 0, 0
	if win.SidebarIsOpen {
		sideW = sidebarCols
		sidebar = m.sidebarLines(styles, height)
	}
	if win.OptionsOpen {
		optW = optionsCols
		options = m.optionLines(win, styles)
	}
	pageW := cols - sideW - optW
	if pageW < 0 {
		pageW = 0
	}
	page := m.pageLines(win, styles)

	out := make([]string, height)
	for i := range out {
		var b strings.Builder
		if sideW > 0 {
			b.WriteString(fit(lineAt(sidebar, i), sideW))
		}
		b.WriteString(fit(lineAt(page, i), pageW))
		if optW > 0 {
			b.WriteString(fit(lineAt(options, i), optW))
		}
		out[i] = b.String()
	}
	return out
}

func (m *model) pageLines(win state.WindowState, styles *theme.Styles) []string {
	var lines []string
	if win.UrlbarFocused {
		for i, s := range win.Suggestions {
			style := styles.Suggestion
			if i == m.suggestion {
				style = styles.SelectedSuggestion
			}
			lines = append(lines, style.Render("  "+s))
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
	}
	b := win.CurrentBrowser()
	if b == nil {
		return lines
	}
	lines = append(lines, styles.Header.Render(" "+tabTitle(*b)), styles.Page.Render(" "+b.URL))
	if b.IsLoading {
		lines = append(lines, styles.Status.Render(" loading"))
	}
	return lines
}

func (m *model) sidebarLines(styles *theme.Styles, height int) []string {
	filter := styles.FilterPlaceholder.Render("type to filter")
	if m.tabs.Filter != "" {
		filter = styles.Filter.Render(m.tabs.Filter)
	}
	lines := []string{
		styles.Header.Render(" Tabs"),
		styles.FilterPrompt.Render(" / ") + filter,
	}
	visible := height - sidebarHeaderRows
	offset := listOffset(m.tabs.Cursor, visible)
	for i := offset; i < len(m.tabs.Items); i++ {
		item := m.tabs.Items[i]
		marker := ' '
		if item.Index == m.tabs.current {
			marker = '>'
		}
		label := fmt.Sprintf("%c%d %s", marker, item.Index+1, item.Label)
		style := styles.SidebarItem
		if i == m.tabs.Cursor {
			style = styles.SelectedItem
		}
		lines = append(lines, style.Render(fit(label, sidebarCols-1)))
	}
	return lines
}

func (m *model) optionLines(win state.WindowState, styles *theme.Styles) []string {
	lines := []string{styles.Header.Render(" Options")}
	for i, entry := range optionEntries(m.app.snapshot(), win) {
		box := "    "
		if entry.Checkbox {
			box = styles.OptionOff.Render(" [ ]")
			if entry.On {
				box = styles.OptionOn.Render(" [x]")
			}
		}
		label := " " + entry.Label
		if i == m.option {
			label = styles.SelectedItem.Render(label)
		}
		lines = append(lines, box+label)
	}
	return lines
}

func logLines(entries []logging.Entry, styles *theme.Styles, cols int) []string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		level := styles.LogInfo
		switch e.Level {
		case logging.LevelWarn:
			level = styles.LogWarn
		case logging.LevelError:
			level = styles.LogError
		}
		rows[i] = []string{e.Time.Format("15:04:05"), level.Render(e.Level.String()), e.Message}
	}
	lines := []string{fit(styles.Header.Render(" Logs"), cols)}
	for _, line := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft}, cols-1) {
		lines = append(lines, fit(" "+line, cols))
	}
	for len(lines) < logRows {
		lines = append(lines, fit("", cols))
	}
	return lines
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

// fit truncates or pads s to exactly width printable columns.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return padding.String(truncate.String(s, uint(width)), uint(width))
}
