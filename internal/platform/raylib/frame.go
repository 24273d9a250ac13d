//go:build raylib

package raylib

import (
	"fmt"
	"math"

	"github.com/atomicstack/webshell/internal/format/table"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultTitle = "webshell"
	noTitle      = "No Title"
	logLines     = 5
)

// frame holds the per-frame input and drawing state of the window.
type frame struct {
	app *App
	win *Window

	urlbar  []rune
	focused bool
	cursor  state.Cursor
	title   string
}

func newFrame(a *App, w *Window) *frame {
	return &frame{app: a, win: w, cursor: state.CursorDefault}
}

type keyBinding struct {
	raylib int32
	key    platform.Key
	char   rune
}

var keyTable = func() []keyBinding {
	t := []keyBinding{
		{rl.KeyEnter, platform.KeyEnter, '\r'},
		{rl.KeyEscape, platform.KeyEscape, 0},
		{rl.KeyTab, platform.KeyTab, '\t'},
		{rl.KeyBackspace, platform.KeyBackspace, 0},
		{rl.KeyDelete, platform.KeyDelete, 0},
		{rl.KeySpace, platform.KeySpace, ' '},
		{rl.KeyLeft, platform.KeyLeft, 0},
		{rl.KeyRight, platform.KeyRight, 0},
		{rl.KeyUp, platform.KeyUp, 0},
		{rl.KeyDown, platform.KeyDown, 0},
		{rl.KeyHome, platform.KeyHome, 0},
		{rl.KeyEnd, platform.KeyEnd, 0},
		{rl.KeyPageUp, platform.KeyPageUp, 0},
		{rl.KeyPageDown, platform.KeyPageDown, 0},
		{rl.KeyEqual, platform.KeyEqual, 0},
		{rl.KeyMinus, platform.KeyMinus, 0},
	}
	for i := int32(0); i < 10; i++ {
		t = append(t, keyBinding{rl.KeyZero + i, platform.Key0 + platform.Key(i), 0})
	}
	for i := int32(0); i < 26; i++ {
		t = append(t, keyBinding{rl.KeyA + i, platform.KeyA + platform.Key(i), 0})
	}
	return t
}()

func modifiers() platform.Modifiers {
	var m platform.Modifiers
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		m |= platform.ModShift
	}
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		m |= platform.ModControl
	}
	if rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt) {
		m |= platform.ModAlt
	}
	if rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper) {
		m |= platform.ModSuper
	}
	return m
}

func charsPressed() []rune {
	var out []rune
	for c := rl.GetCharPressed(); c > 0; c = rl.GetCharPressed() {
		out = append(out, rune(c))
	}
	return out
}

// takeChar removes the first typed character produced by key.
func takeChar(chars *[]rune, key platform.Key) (rune, bool) {
	for i, c := range *chars {
		if platform.KeyForRune(c) == key {
			*chars = append((*chars)[:i], (*chars)[i+1:]...)
			return c, true
		}
	}
	return 0, false
}

// poll turns this frame's input into platform events.
func (f *frame) poll() {
	win := f.win.snapshot()
	f.syncUrlbar(win)
	g := f.win.view.Geometry()
	view := &f.win.view.events

	pos := rl.GetMousePosition()
	x, y := int(pos.X), int(pos.Y)
	where := hit(g, x, y)
	if d := rl.GetMouseDelta(); (d.X != 0 || d.Y != 0) && where == regionPage {
		view.Push(platform.MouseMoved{X: x, Y: y})
	}
	if w := rl.GetMouseWheelMoveV(); (w.X != 0 || w.Y != 0) && where == regionPage {
		view.Push(platform.MouseWheel{
			Delta: platform.ScrollDelta{Kind: platform.LineDelta, DX: float64(w.X), DY: float64(w.Y)},
			Phase: platform.TouchMoved,
		})
	}
	buttons := []struct {
		raylib rl.MouseButton
		button state.MouseButton
	}{
		{rl.MouseButtonLeft, state.MouseLeft},
		{rl.MouseButtonRight, state.MouseRight},
		{rl.MouseButtonMiddle, state.MouseMiddle},
	}
	for _, b := range buttons {
		if rl.IsMouseButtonPressed(b.raylib) {
			if where == regionPage {
				view.Push(platform.MouseInput{State: platform.Pressed, Button: b.button, X: x, Y: y})
			} else if b.button == state.MouseLeft {
				f.clickChrome(where, g, win, x, y)
			}
		}
		if rl.IsMouseButtonReleased(b.raylib) && where == regionPage {
			view.Push(platform.MouseInput{State: platform.Released, Button: b.button, X: x, Y: y})
		}
	}

	chars := charsPressed()
	mods := modifiers()
	if win.UrlbarFocused {
		f.urlbarInput(chars)
		return
	}
	for _, k := range keyTable {
		if rl.IsKeyPressed(k.raylib) || rl.IsKeyPressedRepeat(k.raylib) {
			if cmd, ok := f.app.keymap.Command(k.key, mods); ok {
				f.win.pushCommand(cmd)
				continue
			}
			char := k.char
			if c, ok := takeChar(&chars, k.key); ok {
				char = c
			}
			view.Push(platform.KeyEvent{Char: char, Key: k.key, State: platform.Pressed, Modifiers: mods})
		}
		if rl.IsKeyReleased(k.raylib) {
			view.Push(platform.KeyEvent{Key: k.key, State: platform.Released, Modifiers: mods})
		}
	}
	for _, c := range chars {
		for _, st := range []platform.ElementState{platform.Pressed, platform.Released} {
			view.Push(platform.KeyEvent{Char: c, Key: platform.KeyForRune(c), State: st, Modifiers: mods})
		}
	}
}

// syncUrlbar seeds the edit buffer when the shell focuses the URL bar.
func (f *frame) syncUrlbar(win state.WindowState) {
	if win.UrlbarFocused && !f.focused {
		f.urlbar = []rune(win.UrlbarInput)
	}
	f.focused = win.UrlbarFocused
}

func (f *frame) urlbarInput(chars []rune) {
	before := string(f.urlbar)
	f.urlbar = append(f.urlbar, chars...)
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && len(f.urlbar) > 0 {
		f.urlbar = f.urlbar[:len(f.urlbar)-1]
	}
	switch {
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		f.win.pushCommand(platform.Load(string(f.urlbar)))
		f.win.events.Push(platform.UrlbarFocusChanged{Focused: false})
		return
	case rl.IsKeyPressed(rl.KeyEscape):
		f.win.events.Push(platform.UrlbarFocusChanged{Focused: false})
		return
	}
	if after := string(f.urlbar); after != before {
		f.win.pushCommand(platform.UrlbarInput(after))
	}
}

func (f *frame) clickChrome(where region, g platform.DrawableGeometry, win state.WindowState, x, y int) {
	switch where {
	case regionTabs:
		if idx := tabAt(len(win.Browsers), x); idx >= 0 {
			f.win.pushCommand(platform.SelectTab(idx))
		}
	case regionUrlbar:
		if !win.UrlbarFocused {
			f.win.pushCommand(platform.Do(platform.CmdOpenLocation))
		}
	case regionSidebar:
		if row := rowAt(y, g.Margins.Top+rowHeight); row >= 0 && row < len(win.Browsers) {
			f.win.pushCommand(platform.SelectTab(row))
		}
	case regionOptions:
		entries := optionEntries(f.app.snapshot(), win)
		if row := rowAt(y, g.Margins.Top+rowHeight); row >= 0 && row < len(entries) {
			entries[row].activate(f.app, f.win)
		}
	}
}

type palette struct {
	background, chrome, active, text, dim, accent, page, border rl.Color
}

var (
	lightPalette = palette{
		background: rl.NewColor(245, 245, 245, 255),
		chrome:     rl.NewColor(230, 230, 230, 255),
		active:     rl.NewColor(255, 255, 255, 255),
		text:       rl.NewColor(30, 30, 30, 255),
		dim:        rl.NewColor(110, 110, 110, 255),
		accent:     rl.NewColor(40, 110, 200, 255),
		page:       rl.NewColor(255, 255, 255, 255),
		border:     rl.NewColor(190, 190, 190, 255),
	}
	darkPalette = palette{
		background: rl.NewColor(28, 28, 30, 255),
		chrome:     rl.NewColor(44, 44, 48, 255),
		active:     rl.NewColor(64, 64, 70, 255),
		text:       rl.NewColor(230, 230, 230, 255),
		dim:        rl.NewColor(150, 150, 150, 255),
		accent:     rl.NewColor(110, 170, 255, 255),
		page:       rl.NewColor(18, 18, 20, 255),
		border:     rl.NewColor(80, 80, 86, 255),
	}
)

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

func text(s string, x, y int, c rl.Color) {
	rl.DrawText(s, int32(x), int32(y), fontSize, c)
}

// fitText truncates s so it fits in width pixels.
func fitText(s string, width int) string {
	if rl.MeasureText(s, fontSize) <= int32(width) {
		return s
	}
	for n := len([]rune(s)); n > 0; n-- {
		t := truncate.StringWithTail(s, uint(n), "...")
		if rl.MeasureText(t, fontSize) <= int32(width) {
			return t
		}
	}
	return ""
}

// draw paints the chrome around the page area and applies the cursor and
// window title the shell last rendered.
func (f *frame) draw() {
	appState := f.app.snapshot()
	win := f.win.snapshot()
	g := f.win.view.Geometry()
	p := paletteFor(appState.DarkTheme)
	w, h := g.ViewSize.Width, g.ViewSize.Height

	rl.BeginDrawing()
	rl.ClearBackground(p.background)

	page := g.PageSize()
	rl.DrawRectangle(int32(g.Margins.Left), int32(g.Margins.Top), int32(page.Width), int32(page.Height), p.page)
	if b := win.CurrentBrowser(); b != nil {
		x, y := g.Margins.Left+padding, g.Margins.Top+padding
		text(fitText(tabTitleOf(*b), page.Width-2*padding), x, y, p.text)
		text(fitText(b.URL, page.Width-2*padding), x, y+rowHeight, p.dim)
		if b.IsLoading {
			text("loading", x, y+2*rowHeight, p.accent)
		}
	}

	rl.DrawRectangle(0, 0, int32(w), tabHeight, p.chrome)
	for i, b := range win.Browsers {
		x := i * tabWidth
		if i == win.CurrentBrowserIndex {
			rl.DrawRectangle(int32(x), 0, tabWidth, tabHeight, p.active)
		}
		label := tabTitleOf(b)
		if b.IsLoading {
			label = "* " + label
		}
		text(fitText(label, tabWidth-2*padding), x+padding, (tabHeight-fontSize)/2, p.text)
		rl.DrawLine(int32(x+tabWidth), 0, int32(x+tabWidth), tabHeight, p.border)
	}

	rl.DrawRectangle(0, tabHeight, int32(w), urlbarHeight, p.chrome)
	rl.DrawRectangle(padding, tabHeight+4, int32(w-2*padding), urlbarHeight-8, p.active)
	urlY := tabHeight + (urlbarHeight-fontSize)/2
	if win.UrlbarFocused {
		line := string(f.urlbar)
		text(fitText(line, w-4*padding), 2*padding, urlY, p.text)
		cx := 2*padding + int(rl.MeasureText(line, fontSize))
		rl.DrawLine(int32(cx), int32(urlY), int32(cx), int32(urlY+fontSize), p.accent)
		for i, s := range win.Suggestions {
			y := g.Margins.Top + i*rowHeight
			rl.DrawRectangle(int32(g.Margins.Left), int32(y), int32(page.Width), rowHeight, p.active)
			text(fitText(s, page.Width-2*padding), g.Margins.Left+padding, y+3, p.dim)
		}
	} else if b := win.CurrentBrowser(); b != nil {
		line := b.URL
		if b.Zoom != 1 {
			line = fmt.Sprintf("%s  %d%%", line, int(math.Round(b.Zoom*100)))
		}
		text(fitText(line, w-4*padding), 2*padding, urlY, p.text)
	}

	if win.SidebarIsOpen {
		top := g.Margins.Top
		rl.DrawRectangle(0, int32(top), sidebarWidth, int32(h-top-g.Margins.Bottom), p.chrome)
		text("Tabs", padding, top+3, p.dim)
		for i, b := range win.Browsers {
			y := top + (i+1)*rowHeight
			if i == win.CurrentBrowserIndex {
				rl.DrawRectangle(0, int32(y), sidebarWidth, rowHeight, p.active)
			}
			text(fitText(fmt.Sprintf("%d %s", i+1, tabTitleOf(b)), sidebarWidth-2*padding), padding, y+3, p.text)
		}
	}

	if win.OptionsOpen {
		top, left := g.Margins.Top, w-optionsWidth
		rl.DrawRectangle(int32(left), int32(top), optionsWidth, int32(h-top-g.Margins.Bottom), p.chrome)
		text("Options", left+padding, top+3, p.dim)
		for i, o := range optionEntries(appState, win) {
			label := o.Label
			if o.Checkbox {
				box := "[ ] "
				if o.On {
					box = "[x] "
				}
				label = box + label
			}
			text(fitText(label, optionsWidth-2*padding), left+padding, top+(i+1)*rowHeight+3, p.text)
		}
	}

	statusY := h - statusHeight
	if win.LogsVisible {
		logY := h - g.Margins.Bottom
		rl.DrawRectangle(0, int32(logY), int32(w), logsHeight, p.chrome)
		text("Logs", padding, logY+3, p.dim)
		rows := make([][]string, 0, logLines)
		for _, e := range f.win.recentLogs(logLines) {
			rows = append(rows, []string{e.Time.Format("15:04:05"), e.Level.String(), e.Message})
		}
		aligns := []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft}
		for i, line := range table.Format(rows, aligns, 0) {
			text(fitText(line, w-2*padding), padding, logY+(i+1)*rowHeight+3, p.text)
		}
	}
	rl.DrawRectangle(0, int32(statusY), int32(w), statusHeight, p.chrome)
	rl.DrawLine(0, int32(statusY), int32(w), int32(statusY), p.border)
	if win.Status != "" {
		text(fitText(win.Status, w-2*padding), padding, statusY+(statusHeight-fontSize)/2, p.dim)
	}
	rl.EndDrawing()

	f.applyCursor(appState.Cursor)
	f.applyTitle(win)
}

func tabTitleOf(b state.BrowserState) string {
	if b.Title == "" {
		return noTitle
	}
	return b.Title
}

func (f *frame) applyCursor(c state.Cursor) {
	if c == f.cursor {
		return
	}
	f.cursor = c
	shape, visible := mapCursor(c)
	if !visible {
		rl.HideCursor()
		return
	}
	if rl.IsCursorHidden() {
		rl.ShowCursor()
	}
	rl.SetMouseCursor(shape)
}

func (f *frame) applyTitle(win state.WindowState) {
	title := defaultTitle
	if b := win.CurrentBrowser(); b != nil && b.Title != "" {
		title = b.Title + " - " + defaultTitle
	}
	if title != f.title {
		f.title = title
		rl.SetWindowTitle(title)
	}
}

// mapCursor picks the closest raylib cursor shape. raylib has fewer shapes
// than the engine requests, so several share one.
func mapCursor(c state.Cursor) (int32, bool) {
	switch c {
	case state.CursorNone:
		return rl.MouseCursorDefault, false
	case state.CursorPointer, state.CursorGrab, state.CursorGrabbing:
		return rl.MouseCursorPointingHand, true
	case state.CursorText, state.CursorVerticalText:
		return rl.MouseCursorIBeam, true
	case state.CursorCrosshair, state.CursorCell:
		return rl.MouseCursorCrosshair, true
	case state.CursorMove, state.CursorAllScroll:
		return rl.MouseCursorResizeAll, true
	case state.CursorNotAllowed, state.CursorNoDrop:
		return rl.MouseCursorNotAllowed, true
	case state.CursorEResize, state.CursorWResize, state.CursorEwResize, state.CursorColResize:
		return rl.MouseCursorResizeEW, true
	case state.CursorNResize, state.CursorSResize, state.CursorNsResize, state.CursorRowResize:
		return rl.MouseCursorResizeNS, true
	case state.CursorNwResize, state.CursorSeResize, state.CursorNwseResize:
		return rl.MouseCursorResizeNWSE, true
	case state.CursorNeResize, state.CursorSwResize, state.CursorNeswResize:
		return rl.MouseCursorResizeNESW, true
	}
	return rl.MouseCursorDefault, true
}
