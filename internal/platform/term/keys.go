package term

import (
	"unicode"

	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

// translateKey maps a terminal key press onto the platform key vocabulary.
// Terminals report ctrl+letter as control codes and cannot report key
// releases.
func translateKey(msg tea.KeyMsg) (platform.Key, platform.Modifiers, rune) {
	var mods platform.Modifiers
	if msg.Alt {
		mods |= platform.ModAlt
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return platform.KeyUnknown, mods, 0
		}
		r := msg.Runes[0]
		if unicode.IsUpper(r) {
			mods |= platform.ModShift
		}
		return platform.KeyForRune(r), mods, r
	case tea.KeySpace:
		return platform.KeySpace, mods, ' '
	case tea.KeyEnter:
		return platform.KeyEnter, mods, '\r'
	case tea.KeyTab:
		return platform.KeyTab, mods, '\t'
	case tea.KeyShiftTab:
		return platform.KeyTab, mods | platform.ModShift, 0
	case tea.KeyEsc:
		return platform.KeyEscape, mods, 0
	case tea.KeyBackspace:
		return platform.KeyBackspace, mods, 0
	case tea.KeyDelete:
		return platform.KeyDelete, mods, 0
	case tea.KeyUp:
		return platform.KeyUp, mods, 0
	case tea.KeyDown:
		return platform.KeyDown, mods, 0
	case tea.KeyLeft:
		return platform.KeyLeft, mods, 0
	case tea.KeyRight:
		return platform.KeyRight, mods, 0
	case tea.KeyCtrlLeft:
		return platform.KeyLeft, mods | platform.ModControl, 0
	case tea.KeyCtrlRight:
		return platform.KeyRight, mods | platform.ModControl, 0
	case tea.KeyHome:
		return platform.KeyHome, mods, 0
	case tea.KeyEnd:
		return platform.KeyEnd, mods, 0
	case tea.KeyPgUp:
		return platform.KeyPageUp, mods, 0
	case tea.KeyPgDown:
		return platform.KeyPageDown, mods, 0
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return platform.KeyA + platform.Key(msg.Type-tea.KeyCtrlA), mods | platform.ModControl, 0
	}
	return platform.KeyUnknown, mods, 0
}

// terminalCommand covers the bindings that only exist in the terminal
// backend, where the window has no menus.
func terminalCommand(msg tea.KeyMsg) (platform.WindowCommand, bool) {
	switch msg.Type {
	case tea.KeyCtrlB:
		return platform.Do(platform.CmdToggleSidebar), true
	case tea.KeyCtrlO:
		return platform.Do(platform.CmdShowOptions), true
	case tea.KeyCtrlPgDown:
		return platform.Do(platform.CmdNextTab), true
	case tea.KeyCtrlPgUp:
		return platform.Do(platform.CmdPrevTab), true
	case tea.KeyF5:
		return platform.Do(platform.CmdReload), true
	}
	return platform.WindowCommand{}, false
}

// shortcut resolves key through keymap. Alt stands in for the primary
// modifier for keys a terminal cannot send with ctrl, such as digits.
func shortcut(keymap platform.Keymap, key platform.Key, mods platform.Modifiers) (platform.WindowCommand, bool) {
	if cmd, ok := keymap.Command(key, mods); ok {
		return cmd, true
	}
	if mods.Has(platform.ModAlt) {
		return keymap.Command(key, mods|keymap.Primary)
	}
	return platform.WindowCommand{}, false
}

func mouseButton(b tea.MouseButton) state.MouseButton {
	switch b {
	case tea.MouseButtonLeft:
		return state.MouseLeft
	case tea.MouseButtonRight:
		return state.MouseRight
	case tea.MouseButtonMiddle:
		return state.MouseMiddle
	}
	return state.MouseNone
}

// wheelDelta converts a wheel notch into a line delta. Positive values scroll
// toward the top and left of the page.
func wheelDelta(b tea.MouseButton) platform.ScrollDelta {
	d := platform.ScrollDelta{Kind: platform.LineDelta}
	switch b {
	case tea.MouseButtonWheelUp:
		d.DY = 1
	case tea.MouseButtonWheelDown:
		d.DY = -1
	case tea.MouseButtonWheelLeft:
		d.DX = 1
	case tea.MouseButtonWheelRight:
		d.DX = -1
	}
	return d
}
