package state

// Cursor is the pointer shape the engine most recently requested.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorNone
	CursorPointer
	CursorContextMenu
	CursorHelp
	CursorProgress
	CursorWait
	CursorCell
	CursorCrosshair
	CursorText
	CursorVerticalText
	CursorAlias
	CursorCopy
	CursorMove
	CursorNoDrop
	CursorNotAllowed
	CursorGrab
	CursorGrabbing
	CursorEResize
	CursorNResize
	CursorNeResize
	CursorNwResize
	CursorSResize
	CursorSeResize
	CursorSwResize
	CursorWResize
	CursorEwResize
	CursorNsResize
	CursorNeswResize
	CursorNwseResize
	CursorColResize
	CursorRowResize
	CursorAllScroll
	CursorZoomIn
	CursorZoomOut
)

var cursorNames = [...]string{
	CursorDefault:      "default",
	CursorNone:         "none",
	CursorPointer:      "pointer",
	CursorContextMenu:  "context-menu",
	CursorHelp:         "help",
	CursorProgress:     "progress",
	CursorWait:         "wait",
	CursorCell:         "cell",
	CursorCrosshair:    "crosshair",
	CursorText:         "text",
	CursorVerticalText: "vertical-text",
	CursorAlias:        "alias",
	CursorCopy:         "copy",
	CursorMove:         "move",
	CursorNoDrop:       "no-drop",
	CursorNotAllowed:   "not-allowed",
	CursorGrab:         "grab",
	CursorGrabbing:     "grabbing",
	CursorEResize:      "e-resize",
	CursorNResize:      "n-resize",
	CursorNeResize:     "ne-resize",
	CursorNwResize:     "nw-resize",
	CursorSResize:      "s-resize",
	CursorSeResize:     "se-resize",
	CursorSwResize:     "sw-resize",
	CursorWResize:      "w-resize",
	CursorEwResize:     "ew-resize",
	CursorNsResize:     "ns-resize",
	CursorNeswResize:   "nesw-resize",
	CursorNwseResize:   "nwse-resize",
	CursorColResize:    "col-resize",
	CursorRowResize:    "row-resize",
	CursorAllScroll:    "all-scroll",
	CursorZoomIn:       "zoom-in",
	CursorZoomOut:      "zoom-out",
}

func (c Cursor) String() string {
	if c < 0 || int(c) >= len(cursorNames) {
		return "default"
	}
	return cursorNames[c]
}

// ParseCursor maps a CSS cursor keyword to a Cursor. Unknown names map to
// CursorDefault.
func ParseCursor(name string) Cursor {
	for i, n := range cursorNames {
		if n == name {
			return Cursor(i)
		}
	}
	return CursorDefault
}
