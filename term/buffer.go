package term

import "image/color"

// Buffer stores a 2D grid of cells and tracks line wrapping state.
// Supports optional scrollback storage for lines scrolled off the top.
type Buffer struct {
	rows       int
	cols       int
	cells      [][]Cell
	wrapped    []bool // tracks if each line was wrapped (vs explicit newline)
	tabStop    []bool
	scrollback ScrollbackProvider
	hasDirty   bool
}

// NewBuffer creates a buffer with the given dimensions and no scrollback.
func NewBuffer(rows, cols int) *Buffer {
	return NewBufferWithStorage(rows, cols, NoopScrollback{})
}

// NewBufferWithStorage creates a buffer with custom scrollback storage.
// Tab stops are initialized every 8 columns.
func NewBufferWithStorage(rows, cols int, storage ScrollbackProvider) *Buffer {
	b := &Buffer{
		rows:       rows,
		cols:       cols,
		cells:      make([][]Cell, rows),
		wrapped:    make([]bool, rows),
		tabStop:    make([]bool, cols),
		scrollback: storage,
	}

	for i := range b.cells {
		b.cells[i] = make([]Cell, cols)
		for j := range b.cells[i] {
			b.cells[i][j] = NewCell()
		}
	}

	// Set default tab stops every 8 columns
	for i := 0; i < cols; i += 8 {
		b.tabStop[i] = true
	}

	return b
}

// Rows returns the buffer height in character rows.
func (b *Buffer) Rows() int {
	return b.rows
}

// Cols returns the buffer width in character columns.
func (b *Buffer) Cols() int {
	return b.cols
}

// Cell returns a pointer to the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (b *Buffer) Cell(row, col int) *Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return nil
	}
	return &b.cells[row][col]
}

// SetCell replaces the cell at (row, col) and marks it dirty.
// Does nothing if coordinates are out of bounds.
func (b *Buffer) SetCell(row, col int, cell Cell) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	cell.MarkDirty()
	b.cells[row][col] = cell
	b.hasDirty = true
}

// MarkDirty marks the cell at (row, col) as modified.
// Does nothing if coordinates are out of bounds.
func (b *Buffer) MarkDirty(row, col int) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	b.cells[row][col].MarkDirty()
	b.hasDirty = true
}

// HasDirty returns true if any cell has been modified since the last ClearAllDirty call.
func (b *Buffer) HasDirty() bool {
	return b.hasDirty
}

// DirtyCells returns positions of all modified cells.
func (b *Buffer) DirtyCells() []Position {
	var positions []Position
	for row := range b.cells {
		for col := range b.cells[row] {
			if b.cells[row][col].IsDirty() {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// ClearAllDirty resets the dirty state of all cells.
func (b *Buffer) ClearAllDirty() {
	for row := range b.cells {
		for col := range b.cells[row] {
			b.cells[row][col].ClearDirty()
		}
	}
	b.hasDirty = false
}

// ClearRow blanks all cells in the row to bg and marks them dirty. bg is the
// terminal's current SGR background, per the BCE (background color erase)
// convention: erased cells pick up the background in effect at erase time.
func (b *Buffer) ClearRow(row int, bg color.Color) {
	if row < 0 || row >= b.rows {
		return
	}
	for col := range b.cells[row] {
		b.cells[row][col].Blank(&NamedColor{Name: NamedColorForeground}, bg)
		b.cells[row][col].MarkDirty()
	}
	b.hasDirty = true
}

// ClearRowRange blanks cells in the row from startCol (inclusive) to endCol (exclusive) to bg.
func (b *Buffer) ClearRowRange(row, startCol, endCol int, bg color.Color) {
	if row < 0 || row >= b.rows {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > b.cols {
		endCol = b.cols
	}
	for col := startCol; col < endCol; col++ {
		b.cells[row][col].Blank(&NamedColor{Name: NamedColorForeground}, bg)
		b.cells[row][col].MarkDirty()
	}
	b.hasDirty = true
}

// ClearAll blanks every cell in the buffer to bg.
func (b *Buffer) ClearAll(bg color.Color) {
	for row := range b.cells {
		b.ClearRow(row, bg)
	}
}

// ScrollUp shifts lines up by n positions within [top, bottom).
// Lines scrolled off the top are pushed to scrollback if enabled and top==0.
// Bottom lines are cleared and marked dirty.
func (b *Buffer) ScrollUp(top, bottom, n int, bg color.Color) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > b.rows {
		bottom = b.rows
	}

	if n > bottom-top {
		n = bottom - top
	}

	// Save lines to scrollback if enabled and scrolling from top
	if b.scrollback != nil && top == 0 {
		for i := 0; i < n; i++ {
			b.scrollback.Push(b.cells[i])
		}
	}

	// Move lines up (including wrapped flags)
	for row := top; row < bottom-n; row++ {
		b.cells[row] = b.cells[row+n]
		b.wrapped[row] = b.wrapped[row+n]
		for col := range b.cells[row] {
			b.cells[row][col].MarkDirty()
		}
	}

	// Clear the bottom lines to bg
	for row := bottom - n; row < bottom; row++ {
		b.cells[row] = make([]Cell, b.cols)
		b.wrapped[row] = false
		for col := range b.cells[row] {
			b.cells[row][col] = blankCell(bg)
			b.cells[row][col].MarkDirty()
		}
	}
	b.hasDirty = true
}

// ScrollDown shifts lines down by n positions within [top, bottom).
// Top lines are cleared to bg and marked dirty.
func (b *Buffer) ScrollDown(top, bottom, n int, bg color.Color) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > b.rows {
		bottom = b.rows
	}

	if n > bottom-top {
		n = bottom - top
	}

	// Move lines down (including wrapped flags)
	for row := bottom - 1; row >= top+n; row-- {
		b.cells[row] = b.cells[row-n]
		b.wrapped[row] = b.wrapped[row-n]
		for col := 0; col < b.cols; col++ {
			b.cells[row][col].MarkDirty()
		}
	}

	// Clear the top lines to bg
	for row := top; row < top+n; row++ {
		b.cells[row] = make([]Cell, b.cols)
		b.wrapped[row] = false
		for col := 0; col < b.cols; col++ {
			b.cells[row][col] = blankCell(bg)
			b.cells[row][col].MarkDirty()
		}
	}
	b.hasDirty = true
}

// blankCell returns a new cell holding a space with the given background and default foreground.
func blankCell(bg color.Color) Cell {
	c := NewCell()
	c.Blank(&NamedColor{Name: NamedColorForeground}, bg)
	return c
}

// InsertLines inserts n blank lines at row, shifting existing lines down.
// Equivalent to ScrollDown(row, bottom, n).
func (b *Buffer) InsertLines(row, n, bottom int, bg color.Color) {
	if row < 0 || row >= bottom || n <= 0 {
		return
	}
	b.ScrollDown(row, bottom, n, bg)
}

// DeleteLines removes n lines at row, shifting remaining lines up.
// Equivalent to ScrollUp(row, bottom, n).
func (b *Buffer) DeleteLines(row, n, bottom int, bg color.Color) {
	if row < 0 || row >= bottom || n <= 0 {
		return
	}
	b.ScrollUp(row, bottom, n, bg)
}

// InsertBlanks inserts n blank cells at (row, col), shifting existing characters right.
func (b *Buffer) InsertBlanks(row, col, n int, bg color.Color) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols || n <= 0 {
		return
	}

	// Shift characters to the right
	for c := b.cols - 1; c >= col+n; c-- {
		b.cells[row][c] = b.cells[row][c-n]
		b.cells[row][c].MarkDirty()
	}

	// Clear the inserted positions to bg
	for c := col; c < col+n && c < b.cols; c++ {
		b.cells[row][c].Blank(&NamedColor{Name: NamedColorForeground}, bg)
		b.cells[row][c].MarkDirty()
	}
	b.hasDirty = true
}

// DeleteChars removes n characters at (row, col), shifting remaining characters left.
func (b *Buffer) DeleteChars(row, col, n int, bg color.Color) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols || n <= 0 {
		return
	}

	// Shift characters to the left
	for c := col; c < b.cols-n; c++ {
		b.cells[row][c] = b.cells[row][c+n]
		b.cells[row][c].MarkDirty()
	}

	// Clear the end of the line to bg
	for c := b.cols - n; c < b.cols; c++ {
		if c >= 0 {
			b.cells[row][c].Blank(&NamedColor{Name: NamedColorForeground}, bg)
			b.cells[row][c].MarkDirty()
		}
	}
	b.hasDirty = true
}

// Resize changes buffer dimensions by cropping or padding at the top-left
// corner: no reflow happens, and shrinking loses bottom/right content.
// This is the alternate grid's resize contract (full-screen apps redraw
// themselves on SIGWINCH and expect no reflow); the primary grid uses
// ReflowResize instead.
func (b *Buffer) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	newCells := make([][]Cell, rows)
	for i := range newCells {
		newCells[i] = make([]Cell, cols)
		for j := range newCells[i] {
			if i < b.rows && j < b.cols {
				newCells[i][j] = b.cells[i][j]
			} else {
				newCells[i][j] = NewCell()
			}
			newCells[i][j].MarkDirty()
		}
	}

	// Resize wrapped tracking
	newWrapped := make([]bool, rows)
	copy(newWrapped, b.wrapped)

	b.cells = newCells
	b.wrapped = newWrapped
	b.rows = rows
	b.cols = cols
	b.hasDirty = true

	// Resize tab stops
	newTabStop := make([]bool, cols)
	copy(newTabStop, b.tabStop)
	for i := len(b.tabStop); i < cols; i += 8 {
		newTabStop[i] = true
	}
	b.tabStop = newTabStop
}

// logicalLine is one soft-wrapped run of rows flattened into a single cell
// sequence, captured from the buffer ahead of a reflow.
type logicalLine struct {
	cells        []Cell
	hasCursor    bool
	cursorOffset int
}

// isBlankCell reports whether c carries no visible content: the space (or
// null) character, no attributes, no hyperlink, and default colors.
func isBlankCell(c Cell) bool {
	if (c.Char != 0 && c.Char != ' ') || c.Flags != 0 || c.Hyperlink != nil {
		return false
	}
	return isDefaultNamedColor(c.Fg, NamedColorForeground) && isDefaultNamedColor(c.Bg, NamedColorBackground)
}

func isDefaultNamedColor(c color.Color, want int) bool {
	if c == nil {
		return true
	}
	nc, ok := c.(*NamedColor)
	return ok && nc.Name == want
}

// trailingContentLength returns the index one past the last non-blank cell
// in cells, or 0 if cells has no visible content. Mirrors LineContent's own
// trailing-space trimming so a reflow followed by a reflow back to the
// original width reproduces the original content exactly.
func trailingContentLength(cells []Cell) int {
	for i := len(cells) - 1; i >= 0; i-- {
		if !isBlankCell(cells[i]) {
			return i + 1
		}
	}
	return 0
}

// captureLogicalLines flattens the buffer's rows into soft-wrap groups — a
// run of rows joined by wrapped[row]==true is one logical line — ahead of a
// column-width change. cursorRow/cursorCol identify the cell that should be
// followed into the new layout.
func (b *Buffer) captureLogicalLines(cursorRow, cursorCol int) []logicalLine {
	var lines []logicalLine

	for row := 0; row < b.rows; {
		groupStart := row
		for row < b.rows-1 && b.wrapped[row] {
			row++
		}
		groupEnd := row
		row++

		cells := make([]Cell, 0, (groupEnd-groupStart+1)*b.cols)
		for r := groupStart; r <= groupEnd; r++ {
			cells = append(cells, b.cells[r]...)
		}

		contentEnd := trailingContentLength(cells)

		line := logicalLine{}
		if cursorRow >= groupStart && cursorRow <= groupEnd {
			line.hasCursor = true
			line.cursorOffset = (cursorRow-groupStart)*b.cols + cursorCol
			if line.cursorOffset > contentEnd {
				contentEnd = line.cursorOffset
			}
		}
		line.cells = cells[:contentEnd]
		lines = append(lines, line)
	}

	return lines
}

// ReflowResize rewraps the primary grid's content at a new column width
// instead of cropping: soft-wrapped logical lines are regrouped into chunks
// of the new width, rows longer than the new width wrap and shorter rows
// are padded, and rows that no longer fit on screen are pushed into
// scrollback from the top rather than dropped off the bottom. cursorRow and
// cursorCol identify the cell the cursor should keep following; the new
// cursor position is returned.
func (b *Buffer) ReflowResize(rows, cols, cursorRow, cursorCol int) (int, int) {
	if rows <= 0 || cols <= 0 {
		return cursorRow, cursorCol
	}

	oldTabStop := b.tabStop
	lines := b.captureLogicalLines(cursorRow, cursorCol)

	var newCells [][]Cell
	var newWrapped []bool
	newCursorRow, newCursorCol := 0, 0

	for _, line := range lines {
		n := len(line.cells)
		chunks := n / cols
		if n == 0 || n%cols != 0 {
			chunks++
		}

		for c := 0; c < chunks; c++ {
			start := c * cols
			end := start + cols
			if end > n {
				end = n
			}

			row := make([]Cell, cols)
			for i := range row {
				row[i] = NewCell()
			}
			copy(row, line.cells[start:end])
			newCells = append(newCells, row)
			newWrapped = append(newWrapped, c < chunks-1)

			last := c == chunks-1
			if line.hasCursor && line.cursorOffset >= start && (line.cursorOffset < end || (last && line.cursorOffset == end)) {
				newCursorRow = len(newCells) - 1
				newCursorCol = line.cursorOffset - start
			}
		}
	}

	// Blank rows below the cursor are dropped before any content is pushed into scrollback.
	for len(newCells) > rows && len(newCells)-1 > newCursorRow && trailingContentLength(newCells[len(newCells)-1]) == 0 {
		newCells = newCells[:len(newCells)-1]
		newWrapped = newWrapped[:len(newWrapped)-1]
	}

	rowShift := 0
	if total := len(newCells); total > rows {
		overflow := total - rows
		if b.scrollback != nil {
			for i := 0; i < overflow; i++ {
				b.scrollback.Push(newCells[i])
			}
		}
		newCells = newCells[overflow:]
		newWrapped = newWrapped[overflow:]
		rowShift = overflow
	} else {
		for len(newCells) < rows {
			blank := make([]Cell, cols)
			for i := range blank {
				blank[i] = NewCell()
			}
			newCells = append(newCells, blank)
			newWrapped = append(newWrapped, false)
		}
	}

	for _, row := range newCells {
		for i := range row {
			row[i].MarkDirty()
		}
	}

	b.cells = newCells
	b.wrapped = newWrapped
	b.rows = rows
	b.cols = cols
	b.hasDirty = true

	newTabStop := make([]bool, cols)
	copy(newTabStop, oldTabStop)
	for i := len(oldTabStop); i < cols; i += 8 {
		newTabStop[i] = true
	}
	b.tabStop = newTabStop

	newCursorRow -= rowShift
	if newCursorRow < 0 {
		newCursorRow = 0
	}
	if newCursorRow >= rows {
		newCursorRow = rows - 1
	}
	if newCursorCol < 0 {
		newCursorCol = 0
	}
	if newCursorCol >= cols {
		newCursorCol = cols - 1
	}

	return newCursorRow, newCursorCol
}

// SetTabStop enables a tab stop at the specified column.
func (b *Buffer) SetTabStop(col int) {
	if col >= 0 && col < b.cols {
		b.tabStop[col] = true
	}
}

// ClearTabStop disables the tab stop at the specified column.
func (b *Buffer) ClearTabStop(col int) {
	if col >= 0 && col < b.cols {
		b.tabStop[col] = false
	}
}

// ClearAllTabStops disables all tab stops.
func (b *Buffer) ClearAllTabStops() {
	for i := range b.tabStop {
		b.tabStop[i] = false
	}
}

// NextTabStop returns the column index of the next enabled tab stop after col.
// Returns the last column if no tab stop is found.
func (b *Buffer) NextTabStop(col int) int {
	for c := col + 1; c < b.cols; c++ {
		if b.tabStop[c] {
			return c
		}
	}
	return b.cols - 1
}

// PrevTabStop returns the column index of the previous enabled tab stop before col.
// Returns 0 if no tab stop is found.
func (b *Buffer) PrevTabStop(col int) int {
	for c := col - 1; c >= 0; c-- {
		if b.tabStop[c] {
			return c
		}
	}
	return 0
}

// FillWithE fills all cells with 'E' (used by DECALN alignment test pattern).
func (b *Buffer) FillWithE() {
	for row := range b.cells {
		for col := range b.cells[row] {
			b.cells[row][col].Reset()
			b.cells[row][col].Char = 'E'
			b.cells[row][col].MarkDirty()
		}
	}
	b.hasDirty = true
}

// ScrollbackLen returns the number of lines stored in scrollback.
func (b *Buffer) ScrollbackLen() int {
	if b.scrollback == nil {
		return 0
	}
	return b.scrollback.Len()
}

// ScrollbackLine returns a line from scrollback, where 0 is the oldest line.
// Returns nil if index is out of range or scrollback is disabled.
func (b *Buffer) ScrollbackLine(index int) []Cell {
	if b.scrollback == nil {
		return nil
	}
	return b.scrollback.Line(index)
}

// ClearScrollback removes all stored scrollback lines.
func (b *Buffer) ClearScrollback() {
	if b.scrollback != nil {
		b.scrollback.Clear()
	}
}

// SetMaxScrollback sets the maximum number of scrollback lines to retain.
func (b *Buffer) SetMaxScrollback(max int) {
	if b.scrollback != nil {
		b.scrollback.SetMaxLines(max)
	}
}

// MaxScrollback returns the current maximum scrollback capacity.
func (b *Buffer) MaxScrollback() int {
	if b.scrollback == nil {
		return 0
	}
	return b.scrollback.MaxLines()
}

// SetScrollbackProvider replaces the scrollback storage implementation.
func (b *Buffer) SetScrollbackProvider(storage ScrollbackProvider) {
	b.scrollback = storage
}

// ScrollbackProvider returns the current scrollback storage implementation.
func (b *Buffer) ScrollbackProvider() ScrollbackProvider {
	return b.scrollback
}

// LineContent returns the text content of a line, trimming trailing spaces.
// Wide character spacers are skipped. Returns empty string if the line is empty or out of bounds.
func (b *Buffer) LineContent(row int) string {
	if row < 0 || row >= b.rows {
		return ""
	}

	// Find the last non-space character
	lastNonSpace := -1
	for col := b.cols - 1; col >= 0; col-- {
		cell := &b.cells[row][col]
		if cell.Char != ' ' && cell.Char != 0 && !cell.IsWideSpacer() {
			lastNonSpace = col
			break
		}
	}

	if lastNonSpace < 0 {
		return ""
	}

	runes := make([]rune, 0, lastNonSpace+1)
	for col := range b.cells[row][:lastNonSpace+1] {
		cell := &b.cells[row][col]
		if cell.IsWideSpacer() {
			continue
		}
		if cell.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cell.Char)
		}
	}

	return string(runes)
}

// --- Wrapped Line Tracking ---

// IsWrapped returns true if the line was wrapped due to column overflow.
func (b *Buffer) IsWrapped(row int) bool {
	if row < 0 || row >= b.rows {
		return false
	}
	return b.wrapped[row]
}

// SetWrapped sets whether the line was wrapped or ended with an explicit newline.
func (b *Buffer) SetWrapped(row int, wrapped bool) {
	if row < 0 || row >= b.rows {
		return
	}
	b.wrapped[row] = wrapped
}

// Position identifies a cell location in the terminal grid (0-based).
type Position struct {
	Row int
	Col int
}

// Before returns true if this position comes before other in reading order (top-to-bottom, left-to-right).
func (p Position) Before(other Position) bool {
	if p.Row < other.Row {
		return true
	}
	if p.Row == other.Row && p.Col < other.Col {
		return true
	}
	return false
}

// Equal returns true if both row and column match.
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}
