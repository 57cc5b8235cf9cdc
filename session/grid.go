package session

import "github.com/vtterm/vtterm/term"

// GridCell is a packed, host-friendly view of one cell: its character,
// foreground/background resolved to 24-bit RGB (packed 0x00RRGGBB), and its
// attribute bitmask (term.CellFlags).
type GridCell struct {
	Char uint32 // Unicode scalar; empty and continuation cells hold a space (0x20), an out-of-range cell 0
	Fg   uint32
	Bg   uint32
	Attr uint16
}

func packColor(c term.Cell, fg bool) uint32 {
	col := c.Bg
	if fg {
		col = c.Fg
	}
	rgba := term.ResolveColor(col, fg)
	return uint32(rgba.R)<<16 | uint32(rgba.G)<<8 | uint32(rgba.B)
}

func packCell(c *term.Cell) GridCell {
	if c == nil {
		return GridCell{}
	}
	return GridCell{
		Char: uint32(c.Char),
		Fg:   packColor(*c, true),
		Bg:   packColor(*c, false),
		Attr: uint16(c.Flags),
	}
}

// GridSize returns the current screen model dimensions.
func (s *Session) GridSize() (cols, rows int) {
	return s.term.Cols(), s.term.Rows()
}

// Cell returns the packed character/color/attribute view of the cell at
// (row, col) in the active buffer. Out-of-range coordinates return a zero
// GridCell, matching the engine's "defensive default" contract-violation
// policy.
func (s *Session) Cell(row, col int) GridCell {
	return packCell(s.term.Cell(row, col))
}

// CursorPos returns the cursor's 0-based (row, col).
func (s *Session) CursorPos() (row, col int) {
	return s.term.CursorPos()
}

// CursorVisible reports whether the cursor should currently be painted.
func (s *Session) CursorVisible() bool {
	return s.term.CursorVisible()
}

// CursorKeysApp reports whether DECCKM (application cursor keys) is set.
func (s *Session) CursorKeysApp() bool {
	return s.term.HasMode(term.ModeCursorKeys)
}

// BracketedPaste reports whether bracketed-paste mode is set.
func (s *Session) BracketedPaste() bool {
	return s.term.HasMode(term.ModeBracketedPaste)
}

// Title returns the current window title (OSC 0/1/2).
func (s *Session) Title() string {
	return s.term.Title()
}

// WorkingDir returns the current working directory URI (OSC 7).
func (s *Session) WorkingDir() string {
	return s.term.WorkingDirectory()
}

// ScrollbackLen returns the number of lines held in scrollback.
func (s *Session) ScrollbackLen() int {
	return s.term.ScrollbackLen()
}

// ScrollbackCell returns the packed cell at (sbRow, col) in scrollback,
// where sbRow 0 is the oldest retained line.
func (s *Session) ScrollbackCell(sbRow, col int) GridCell {
	line := s.term.ScrollbackLine(sbRow)
	if col < 0 || col >= len(line) {
		return GridCell{}
	}
	return packCell(&line[col])
}

// ExtractText returns the text spanning absolute rows sr..er (scrollback
// lines precede the visible buffer in row numbering), clipped to columns
// [sc, ec) on the first/last row.
func (s *Session) ExtractText(sr, sc, er, ec int) string {
	return s.term.ExtractText(sr, sc, er, ec)
}
