//go:build raylib

package raylib

import (
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

// Chrome sizes in device independent pixels.
const (
	tabHeight    = 28
	urlbarHeight = 36
	statusHeight = 24
	logsHeight   = 120
	sidebarWidth = 220
	optionsWidth = 260
	tabWidth     = 160
	rowHeight    = 20
	fontSize     = 14
	padding      = 8
)

type region int

const (
	regionPage region = iota
	regionTabs
	regionUrlbar
	regionSidebar
	regionOptions
	regionStatus
)

func marginsFor(win state.WindowState) platform.Margins {
	m := platform.Margins{Top: tabHeight + urlbarHeight, Bottom: statusHeight}
	if win.LogsVisible {
		m.Bottom += logsHeight
	}
	if win.SidebarIsOpen {
		m.Left = sidebarWidth
	}
	if win.OptionsOpen {
		m.Right = optionsWidth
	}
	return m
}

// hit reports which part of the window contains the point x, y.
func hit(g platform.DrawableGeometry, x, y int) region {
	switch {
	case y < tabHeight:
		return regionTabs
	case y < g.Margins.Top:
		return regionUrlbar
	case y >= g.ViewSize.Height-g.Margins.Bottom:
		return regionStatus
	case x < g.Margins.Left:
		return regionSidebar
	case x >= g.ViewSize.Width-g.Margins.Right:
		return regionOptions
	}
	return regionPage
}

// tabAt returns the tab under x in the tab strip, or -1.
func tabAt(tabs, x int) int {
	if x < 0 {
		return -1
	}
	if idx := x / tabWidth; idx < tabs {
		return idx
	}
	return -1
}

// rowAt returns the list row under y for a list whose first row starts at top.
func rowAt(y, top int) int {
	if y < top {
		return -1
	}
	return (y - top) / rowHeight
}

// option is one row of the options panel.
type option struct {
	Label    string
	On       bool
	Checkbox bool
	command  platform.WindowCommand
	app      *platform.AppCommand
}

func optionEntries(app state.AppState, win state.WindowState) []option {
	entries := make([]option, 0, len(state.AllDebugOptions)+4)
	for _, o := range state.AllDebugOptions {
		entries = append(entries, option{
			Label:    string(o),
			On:       win.DebugOptions[o],
			Checkbox: true,
			command:  platform.ToggleDebugOption(o),
		})
	}
	darkTheme, clearHistory := platform.AppToggleDarkTheme, platform.AppClearHistory
	return append(entries,
		option{Label: "show logs", On: win.LogsVisible, Checkbox: true, command: platform.Do(platform.CmdToggleOptionShowLogs)},
		option{Label: "dark theme", On: app.DarkTheme, Checkbox: true, app: &darkTheme},
		option{Label: "clear history", app: &clearHistory},
		option{Label: "open in default browser", command: platform.Do(platform.CmdOpenInDefaultBrowser)},
	)
}

// activate delivers the option's command to the window or the app.
func (o option) activate(a *App, w *Window) {
	if o.app != nil {
		a.events.Push(platform.AppDoCommand{Command: *o.app})
		return
	}
	w.pushCommand(o.command)
}
