package term

import (
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultTitle = "webshell"

type launchMsg struct{}

type wakeMsg struct{}

type quitMsg struct{}

// model translates terminal messages into platform events and runs one
// shell tick per message.
type model struct {
	app    *App
	tick   func()
	keymap platform.Keymap

	urlbar     textinput.Model
	suggestion int
	tabs       *tabList
	option     int
	pressed    tea.MouseButton
	title      string
}

func newModel(app *App, tick func()) *model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search or type URL"
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &model{
		app:        app,
		tick:       tick,
		keymap:     platform.Keymap{Primary: platform.ModControl},
		urlbar:     ti,
		suggestion: -1,
		tabs:       newTabList(),
	}
}

func (m *model) Init() tea.Cmd {
	return func() tea.Msg { return launchMsg{} }
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case launchMsg:
		m.app.events.Push(platform.DidFinishLaunching{})
		m.collectWake()
	case wakeMsg:
		m.collectWake()
	case quitMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if m.window().view.resize(msg.Width, msg.Height) {
			m.window().view.events.Push(platform.ViewGeometryDidChange{})
		}
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	default:
		return m, nil
	}
	return m, tea.Batch(cmd, m.runTick())
}

func (m *model) window() *Window {
	return m.app.window
}

func (m *model) pushWindow(evt platform.WindowEvent) {
	m.window().events.Push(evt)
}

func (m *model) pushCommand(cmd platform.WindowCommand) {
	m.pushWindow(platform.WindowDoCommand{Command: cmd})
}

func (m *model) pushView(evt platform.ViewEvent) {
	m.window().view.events.Push(evt)
}

func (m *model) collectWake() {
	if m.window().awaken.Swap(false) {
		m.pushWindow(platform.EventLoopAwaken{})
	}
}

// runTick lets the shell reconcile, then aligns the local widgets with what
// it rendered.
func (m *model) runTick() tea.Cmd {
	if m.tick != nil {
		m.tick()
	}
	if m.app.quitting.Load() {
		return tea.Quit
	}
	win, ok := m.window().snapshot()
	if !ok {
		return nil
	}
	m.syncWidgets(win)
	title := defaultTitle
	if b := win.CurrentBrowser(); b != nil && b.Title != "" {
		title = b.Title + " - " + defaultTitle
	}
	if title == m.title {
		return nil
	}
	m.title = title
	return tea.SetWindowTitle(title)
}

func (m *model) syncWidgets(win state.WindowState) {
	switch {
	case win.UrlbarFocused && !m.urlbar.Focused():
		m.urlbar.SetValue(win.UrlbarInput)
		m.urlbar.CursorEnd()
		m.urlbar.Focus()
		m.suggestion = -1
	case !win.UrlbarFocused && m.urlbar.Focused():
		m.urlbar.Blur()
		m.suggestion = -1
	}
	if m.suggestion >= len(win.Suggestions) {
		m.suggestion = -1
	}

	items := make([]tabItem, len(win.Browsers))
	for i, b := range win.Browsers {
		items[i] = tabItem{Index: i, Label: tabTitle(b), URL: b.URL}
	}
	if !win.SidebarIsOpen && m.tabs.Filter != "" {
		m.tabs.SetFilter("", 0)
	}
	m.tabs.SetTabs(items, win.CurrentBrowserIndex)

	if n := len(optionEntries(state.AppState{}, win)); m.option >= n {
		m.option = n - 1
	}
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlQ {
		m.app.events.Push(platform.WillTerminate{})
		m.pushWindow(platform.WillClose{})
		return nil
	}
	win, _ := m.window().snapshot()
	if win.UrlbarFocused {
		return m.handleUrlbarKey(msg, win)
	}
	if cmd, ok := terminalCommand(msg); ok {
		m.pushCommand(cmd)
		return nil
	}
	key, mods, char := translateKey(msg)
	if cmd, ok := shortcut(m.keymap, key, mods); ok {
		m.pushCommand(cmd)
		return nil
	}
	if win.OptionsOpen && m.handleOptionsKey(msg, win) {
		return nil
	}
	if win.SidebarIsOpen && m.handleSidebarKey(msg) {
		return nil
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		for _, r := range msg.Runes {
			m.sendKey(platform.KeyForRune(r), mods, r)
		}
		return nil
	}
	m.sendKey(key, mods, char)
	return nil
}

// sendKey reports a press and, since terminals have no key-up, a release.
func (m *model) sendKey(key platform.Key, mods platform.Modifiers, char rune) {
	for _, st := range []platform.ElementState{platform.Pressed, platform.Released} {
		m.pushView(platform.KeyEvent{Char: char, Key: key, State: st, Modifiers: mods})
	}
}

func (m *model) handleUrlbarKey(msg tea.KeyMsg, win state.WindowState) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := m.urlbar.Value()
		if m.suggestion >= 0 && m.suggestion < len(win.Suggestions) {
			input = win.Suggestions[m.suggestion]
		}
		m.pushCommand(platform.Load(input))
		m.pushWindow(platform.UrlbarFocusChanged{Focused: false})
		return nil
	case tea.KeyEsc:
		m.pushWindow(platform.UrlbarFocusChanged{Focused: false})
		return nil
	case tea.KeyUp:
		if m.suggestion >= 0 {
			m.suggestion--
		}
		return nil
	case tea.KeyDown:
		if m.suggestion < len(win.Suggestions)-1 {
			m.suggestion++
		}
		return nil
	}
	before := m.urlbar.Value()
	var cmd tea.Cmd
	m.urlbar, cmd = m.urlbar.Update(msg)
	if value := m.urlbar.Value(); value != before {
		m.suggestion = -1
		m.pushCommand(platform.UrlbarInput(value))
	}
	return cmd
}

func (m *model) handleOptionsKey(msg tea.KeyMsg, win state.WindowState) bool {
	entries := optionEntries(m.app.snapshot(), win)
	switch msg.Type {
	case tea.KeyUp:
		if m.option > 0 {
			m.option--
		}
	case tea.KeyDown:
		if m.option < len(entries)-1 {
			m.option++
		}
	case tea.KeyEnter, tea.KeySpace:
		if m.option >= 0 && m.option < len(entries) {
			entries[m.option].activate(m.app)
		}
	case tea.KeyEsc:
		m.pushCommand(platform.Do(platform.CmdShowOptions))
	default:
		return false
	}
	return true
}

func (m *model) handleSidebarKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		m.tabs.MoveCursor(-1)
	case tea.KeyDown:
		m.tabs.MoveCursor(1)
	case tea.KeyEnter:
		if item, ok := m.tabs.Selected(); ok {
			m.pushCommand(platform.SelectTab(item.Index))
		}
	case tea.KeyEsc:
		if m.tabs.Filter != "" {
			m.tabs.SetFilter("", 0)
		} else {
			m.pushCommand(platform.Do(platform.CmdToggleSidebar))
		}
	case tea.KeyBackspace:
		m.tabs.DeleteFilterRuneBackward()
	case tea.KeyCtrlU:
		m.tabs.SetFilter("", 0)
	case tea.KeySpace:
		m.tabs.InsertFilterText(" ")
	case tea.KeyRunes:
		if msg.Alt {
			return false
		}
		m.tabs.InsertFilterText(string(msg.Runes))
	default:
		return false
	}
	return true
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	win, ok := m.window().snapshot()
	if !ok {
		return
	}
	cols, rows := m.window().view.size()
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
	switch {
	case msg.Y == 0:
		if press {
			if idx := tabAt(len(win.Browsers), msg.X); idx >= 0 {
				m.pushCommand(platform.SelectTab(idx))
			}
		}
		return
	case msg.Y < chromeRows:
		if press && !win.UrlbarFocused {
			m.pushCommand(platform.Do(platform.CmdOpenLocation))
		}
		return
	case msg.Y >= rows-statusRows:
		return
	case win.SidebarIsOpen && msg.X < sidebarCols:
		if press {
			visible := bodyRows(rows, win) - sidebarHeaderRows
			row := msg.Y - chromeRows - sidebarHeaderRows + listOffset(m.tabs.Cursor, visible)
			if row >= 0 && row < len(m.tabs.Items) {
				m.pushCommand(platform.SelectTab(m.tabs.Items[row].Index))
			}
		}
		return
	case win.OptionsOpen && msg.X >= cols-optionsCols:
		if press {
			row := msg.Y - chromeRows - optionsHeaderRows
			entries := optionEntries(m.app.snapshot(), win)
			if row >= 0 && row < len(entries) {
				m.option = row
				entries[row].activate(m.app)
			}
		}
		return
	}

	x, y := msg.X*cellWidth, msg.Y*cellHeight
	switch {
	case tea.MouseEvent(msg).IsWheel():
		m.pushView(platform.MouseWheel{Delta: wheelDelta(msg.Button), Phase: platform.TouchMoved})
	case msg.Action == tea.MouseActionMotion:
		m.pushView(platform.MouseMoved{X: x, Y: y})
	case msg.Action == tea.MouseActionPress:
		m.pressed = msg.Button
		m.pushView(platform.MouseInput{State: platform.Pressed, Button: mouseButton(msg.Button), X: x, Y: y})
	case msg.Action == tea.MouseActionRelease:
		button := msg.Button
		if button == tea.MouseButtonNone {
			button = m.pressed
		}
		m.pressed = tea.MouseButtonNone
		m.pushView(platform.MouseInput{State: platform.Released, Button: mouseButton(button), X: x, Y: y})
	}
}

// option is one row of the options panel.
type option struct {
	Label    string
	On       bool
	Checkbox bool
	activate func(a *App)
}

func optionEntries(app state.AppState, win state.WindowState) []option {
	entries := make([]option, 0, len(state.AllDebugOptions)+4)
	for _, o := range state.AllDebugOptions {
		o := o
		entries = append(entries, option{
			Label:    string(o),
			On:       win.DebugOptions[o],
			Checkbox: true,
			activate: func(a *App) { a.window.pushCommand(platform.ToggleDebugOption(o)) },
		})
	}
	entries = append(entries,
		option{
			Label:    "show logs",
			On:       win.LogsVisible,
			Checkbox: true,
			activate: func(a *App) { a.window.pushCommand(platform.Do(platform.CmdToggleOptionShowLogs)) },
		},
		option{
			Label:    "dark theme",
			On:       app.DarkTheme,
			Checkbox: true,
			activate: func(a *App) { a.events.Push(platform.AppDoCommand{Command: platform.AppToggleDarkTheme}) },
		},
		option{
			Label:    "clear history",
			activate: func(a *App) { a.events.Push(platform.AppDoCommand{Command: platform.AppClearHistory}) },
		},
		option{
			Label:    "open in default browser",
			activate: func(a *App) { a.window.pushCommand(platform.Do(platform.CmdOpenInDefaultBrowser)) },
		},
	)
	return entries
}

func (w *Window) pushCommand(cmd platform.WindowCommand) {
	w.events.Push(platform.WindowDoCommand{Command: cmd})
}
