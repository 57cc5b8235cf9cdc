package term

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Cursor tracks the current position and rendering style (0-based coordinates).
type Cursor struct {
	Row     int
	Col     int
	Style   CursorStyle
	Visible bool
}

// NewCursor creates a cursor at (0, 0) with blinking block style, visible.
func NewCursor() *Cursor {
	return &Cursor{
		Row:     0,
		Col:     0,
		Style:   CursorStyleBlinkingBlock,
		Visible: true,
	}
}

// SavedCursor stores cursor position, cell attributes, and charset state for
// restoration. Each grid (primary, alternate) owns its own slot: DECSC/DECRC
// and the implicit save/restore around DECSET 1049 both address whichever
// grid is active, so switching screens never clobbers the other grid's save.
type SavedCursor struct {
	Row          int
	Col          int
	Attrs        CellTemplate
	OriginMode   bool
	CharsetIndex int
	Charsets     [4]Charset
}

// NewSavedCursor captures cursor and the surrounding terminal state it needs
// to restore later. Keeping the snapshot logic here, rather than a struct
// literal at each call site, means DECSC and the DECSET 1049 save both
// capture the same fields the same way.
func NewSavedCursor(cursor *Cursor, attrs CellTemplate, originMode bool, charsetIndex int, charsets [4]Charset) *SavedCursor {
	return &SavedCursor{
		Row:          cursor.Row,
		Col:          cursor.Col,
		Attrs:        attrs,
		OriginMode:   originMode,
		CharsetIndex: charsetIndex,
		Charsets:     charsets,
	}
}

// RestorePosition writes the saved row/column back onto cursor, leaving
// every other cursor field (style, visibility) untouched.
func (sc *SavedCursor) RestorePosition(cursor *Cursor) {
	cursor.Row = sc.Row
	cursor.Col = sc.Col
}

// CellTemplate defines default attributes applied to newly written characters.
// Modified by SGR (Select Graphic Rendition) escape sequences.
type CellTemplate struct {
	Cell
}

// NewCellTemplate creates a template with default attributes (default foreground/background colors, no flags).
func NewCellTemplate() CellTemplate {
	return CellTemplate{
		Cell: NewCell(),
	}
}

// Charset selects the character encoding variant.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)

// CharsetIndex selects one of four character set slots (G0-G3).
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)
