package platform

import (
	"runtime"
	"strings"
)

// Modifiers is a bitset of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

func (m Modifiers) String() string {
	var parts []string
	if m.Has(ModControl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModSuper) {
		parts = append(parts, "super")
	}
	return strings.Join(parts, "+")
}

// Key identifies a physical key independent of layout.
type Key int

const (
	KeyUnknown Key = iota
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEqual
	KeyMinus
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// KeyForRune maps a printable character to its key. Letters are case
// insensitive. Characters without a dedicated key map to KeyUnknown.
func KeyForRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0')
	case r == '=' || r == '+':
		return KeyEqual
	case r == '-' || r == '_':
		return KeyMinus
	case r == ' ':
		return KeySpace
	case r == '\t':
		return KeyTab
	case r == '\r' || r == '\n':
		return KeyEnter
	}
	return KeyUnknown
}

// Keymap resolves keyboard shortcuts into window commands. Primary is the
// "command or control" modifier of the host platform.
type Keymap struct {
	Primary Modifiers
}

// DefaultKeymap uses Super on macOS and Control elsewhere.
func DefaultKeymap() Keymap {
	if runtime.GOOS == "darwin" {
		return Keymap{Primary: ModSuper}
	}
	return Keymap{Primary: ModControl}
}

// Command returns the window command bound to key with mods, if any.
func (k Keymap) Command(key Key, mods Modifiers) (WindowCommand, bool) {
	if key == KeyTab && mods.Has(ModControl) {
		if mods.Has(ModShift) {
			return Do(CmdPrevTab), true
		}
		return Do(CmdNextTab), true
	}
	if !mods.Has(k.Primary) {
		return WindowCommand{}, false
	}
	switch key {
	case KeyR:
		return Do(CmdReload), true
	case KeyLeft:
		return Do(CmdNavigateBack), true
	case KeyRight:
		return Do(CmdNavigateForward), true
	case KeyL:
		return Do(CmdOpenLocation), true
	case KeyEqual:
		return Do(CmdZoomIn), true
	case KeyMinus:
		return Do(CmdZoomOut), true
	case Key0:
		return Do(CmdZoomToActualSize), true
	case KeyT:
		return Do(CmdNewTab), true
	case KeyW:
		return Do(CmdCloseTab), true
	}
	if key >= Key1 && key <= Key9 {
		return SelectTab(int(key - Key1)), true
	}
	return WindowCommand{}, false
}

// LineHeight is the pixel distance of one scroll line.
const LineHeight = 38

// NormalizeScroll converts line deltas to pixel deltas so every backend
// reports scrolling in the same unit.
func NormalizeScroll(d ScrollDelta) ScrollDelta {
	if d.Kind == PixelDelta {
		return d
	}
	return ScrollDelta{Kind: PixelDelta, DX: d.DX * LineHeight, DY: d.DY * LineHeight}
}
