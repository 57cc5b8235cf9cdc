package term

import "testing"

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(24, 80)

	if b.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", b.Rows())
	}
	if b.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", b.Cols())
	}
}

func TestBufferCell(t *testing.T) {
	b := NewBuffer(24, 80)

	cell := b.Cell(0, 0)
	if cell == nil {
		t.Fatal("expected cell at (0,0)")
	}
	cell.Char = 'A'

	if got := b.Cell(0, 0).Char; got != 'A' {
		t.Errorf("expected 'A', got %q", got)
	}
}

func TestBufferCellOutOfBounds(t *testing.T) {
	b := NewBuffer(24, 80)

	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {24, 0}, {0, 80}} {
		if b.Cell(pos[0], pos[1]) != nil {
			t.Errorf("Cell(%d,%d) should be nil, out of bounds for a 24x80 buffer", pos[0], pos[1])
		}
	}
}

func TestBufferClearRow(t *testing.T) {
	b := NewBuffer(24, 80)
	b.Cell(0, 0).Char = 'A'
	b.Cell(0, 1).Char = 'B'

	b.ClearRow(0, &NamedColor{Name: NamedColorBackground})

	if b.Cell(0, 0).Char != ' ' || b.Cell(0, 1).Char != ' ' {
		t.Error("expected cleared row to contain only blanks")
	}
}

func TestBufferScrollUp(t *testing.T) {
	b := NewBuffer(5, 10)
	for row := 0; row < 5; row++ {
		b.Cell(row, 0).Char = rune('0' + row)
	}

	b.ScrollUp(0, 5, 1, &NamedColor{Name: NamedColorBackground})

	if got := b.Cell(0, 0).Char; got != '1' {
		t.Errorf("row 0 should now hold what was in row 1, got %q", got)
	}
	if got := b.Cell(4, 0).Char; got != ' ' {
		t.Errorf("the row scrolled in at the bottom should be blank, got %q", got)
	}
}

func TestBufferScrollDown(t *testing.T) {
	b := NewBuffer(5, 10)
	for row := 0; row < 5; row++ {
		b.Cell(row, 0).Char = rune('0' + row)
	}

	b.ScrollDown(0, 5, 1, &NamedColor{Name: NamedColorBackground})

	if got := b.Cell(1, 0).Char; got != '0' {
		t.Errorf("row 1 should now hold what was in row 0, got %q", got)
	}
	if got := b.Cell(0, 0).Char; got != ' ' {
		t.Errorf("the row scrolled in at the top should be blank, got %q", got)
	}
}

func TestBufferScrollbackReceivesEvictedLines(t *testing.T) {
	storage := NewMemoryScrollback(100)
	b := NewBufferWithStorage(5, 10, storage)
	for row := 0; row < 5; row++ {
		b.Cell(row, 0).Char = rune('A' + row)
	}

	b.ScrollUp(0, 5, 1, &NamedColor{Name: NamedColorBackground})

	if b.ScrollbackLen() != 1 {
		t.Fatalf("expected 1 scrollback line, got %d", b.ScrollbackLen())
	}
	line := b.ScrollbackLine(0)
	if line == nil || line[0].Char != 'A' {
		t.Fatalf("expected scrolled-off row 0 ('A') in scrollback, got %v", line)
	}
}

func TestBufferLineContent(t *testing.T) {
	b := NewBuffer(24, 80)
	for i, r := range "Hello" {
		b.Cell(0, i).Char = r
	}

	if content := b.LineContent(0); content != "Hello" {
		t.Errorf("LineContent(0) = %q, want %q", content, "Hello")
	}
}

func TestBufferTabStops(t *testing.T) {
	b := NewBuffer(24, 80)

	if next := b.NextTabStop(0); next != 8 {
		t.Errorf("NextTabStop(0) = %d, want 8", next)
	}
	if next := b.NextTabStop(8); next != 16 {
		t.Errorf("NextTabStop(8) = %d, want 16", next)
	}
	if prev := b.PrevTabStop(16); prev != 8 {
		t.Errorf("PrevTabStop(16) = %d, want 8", prev)
	}
}

// TestBufferResize exercises the alternate-grid resize contract: crop/pad at
// top-left, no reflow, cells outside the new bounds are simply lost.
func TestBufferResize(t *testing.T) {
	b := NewBuffer(10, 20)
	b.Cell(0, 0).Char = 'A'
	b.Cell(5, 10).Char = 'B'

	b.Resize(20, 40)

	if b.Rows() != 20 || b.Cols() != 40 {
		t.Errorf("expected 20x40, got %dx%d", b.Rows(), b.Cols())
	}
	if b.Cell(0, 0).Char != 'A' || b.Cell(5, 10).Char != 'B' {
		t.Error("expected in-bounds content to be preserved across a grow")
	}
}

func TestBufferResizeShrinkCropsRatherThanReflows(t *testing.T) {
	b := NewBuffer(3, 10)
	for i, r := range "0123456789" {
		b.Cell(0, i).Char = r
	}

	b.Resize(3, 5)

	if got := b.LineContent(0); got != "01234" {
		t.Errorf("LineContent(0) = %q, want %q (Resize crops, it does not reflow)", got, "01234")
	}

	b.Resize(3, 10)
	if got := b.Cell(0, 7).Char; got != ' ' {
		t.Errorf("columns dropped by a shrink must not reappear after growing back, got %q at col 7", got)
	}
}

func TestBufferDirtyTracking(t *testing.T) {
	b := NewBuffer(24, 80)
	b.ClearAllDirty()

	if b.HasDirty() {
		t.Error("expected no dirty cells after ClearAllDirty")
	}

	b.MarkDirty(0, 0)
	if !b.HasDirty() {
		t.Error("expected a dirty cell after MarkDirty")
	}

	dirty := b.DirtyCells()
	if len(dirty) != 1 || dirty[0].Row != 0 || dirty[0].Col != 0 {
		t.Errorf("DirtyCells() = %v, want exactly [(0,0)]", dirty)
	}
}

func TestBufferInsertBlanks(t *testing.T) {
	b := NewBuffer(24, 80)
	b.Cell(0, 0).Char = 'A'
	b.Cell(0, 1).Char = 'B'
	b.Cell(0, 2).Char = 'C'

	b.InsertBlanks(0, 1, 2, &NamedColor{Name: NamedColorBackground})

	if b.Cell(0, 0).Char != 'A' || b.Cell(0, 1).Char != ' ' || b.Cell(0, 2).Char != ' ' || b.Cell(0, 3).Char != 'B' {
		t.Error("InsertBlanks should shift B,C right by 2 and blank the gap")
	}
}

func TestBufferDeleteChars(t *testing.T) {
	b := NewBuffer(24, 80)
	for i, r := range "ABCD" {
		b.Cell(0, i).Char = r
	}

	b.DeleteChars(0, 1, 2, &NamedColor{Name: NamedColorBackground})

	if b.Cell(0, 0).Char != 'A' || b.Cell(0, 1).Char != 'D' {
		t.Error("DeleteChars(0,1,2) should remove B,C and shift D left")
	}
}

func TestBufferWrappedLineTracking(t *testing.T) {
	b := NewBuffer(5, 10)

	if b.IsWrapped(0) {
		t.Error("expected line 0 not wrapped initially")
	}

	b.SetWrapped(0, true)
	if !b.IsWrapped(0) {
		t.Error("expected line 0 to be wrapped")
	}

	b.SetWrapped(0, false)
	if b.IsWrapped(0) {
		t.Error("expected line 0 not wrapped after clear")
	}

	b.SetWrapped(-1, true)
	b.SetWrapped(100, true)
	if b.IsWrapped(-1) || b.IsWrapped(100) {
		t.Error("out-of-bounds SetWrapped/IsWrapped should not panic or report wrapped")
	}
}

func TestBufferWrappedLineTrackingWithScroll(t *testing.T) {
	b := NewBuffer(5, 10)
	b.SetWrapped(0, true)
	b.SetWrapped(1, false)
	b.SetWrapped(2, true)

	b.ScrollUp(0, 5, 1, &NamedColor{Name: NamedColorBackground})

	if b.IsWrapped(0) {
		t.Error("expected line 0 (was line 1) not wrapped after scroll")
	}
	if !b.IsWrapped(1) {
		t.Error("expected line 1 (was line 2) wrapped after scroll")
	}
	if b.IsWrapped(4) {
		t.Error("expected the newly scrolled-in line not wrapped")
	}
}

// --- ReflowResize (primary grid) ---

func setRow(b *Buffer, row int, s string) {
	for i, r := range s {
		b.Cell(row, i).Char = r
	}
}

func TestReflowResizeNarrowerWrapsLongLine(t *testing.T) {
	b := NewBuffer(3, 10)
	setRow(b, 0, "0123456789")

	cursorRow, cursorCol := b.ReflowResize(3, 5, 0, 9)

	if got := b.LineContent(0); got != "01234" {
		t.Errorf("row 0 = %q, want %q", got, "01234")
	}
	if got := b.LineContent(1); got != "56789" {
		t.Errorf("row 1 = %q, want %q", got, "56789")
	}
	if !b.IsWrapped(0) {
		t.Error("row 0 should be marked wrapped into row 1")
	}
	if cursorRow != 1 || cursorCol != 4 {
		t.Errorf("cursor tracking (%d,%d), want (1,4) — last character of the original row", cursorRow, cursorCol)
	}
}

func TestReflowResizeRoundTripReproducesContent(t *testing.T) {
	// 9 rows: the 27-char logical line needs exactly 6 rows at width 5, plus
	// the 3 blank rows below it, so narrowing never evicts real content.
	b := NewBuffer(9, 10)
	setRow(b, 0, "the quick ")
	setRow(b, 1, "fox jumped")
	setRow(b, 2, "over it   ")
	b.SetWrapped(0, true)
	b.SetWrapped(1, true)

	midRow, midCol := b.ReflowResize(9, 5, 2, 3)
	cursorRow, cursorCol := b.ReflowResize(9, 10, midRow, midCol)

	if got := b.LineContent(0); got != "the quick" {
		t.Errorf("row 0 after round trip = %q, want %q", got, "the quick")
	}
	if got := b.LineContent(1); got != "fox jumped" {
		t.Errorf("row 1 after round trip = %q, want %q", got, "fox jumped")
	}
	if got := b.LineContent(2); got != "over it" {
		t.Errorf("row 2 after round trip = %q, want %q", got, "over it")
	}
	if cursorRow != 2 || cursorCol != 3 {
		t.Errorf("cursor after round trip (%d,%d), want (2,3)", cursorRow, cursorCol)
	}
}

func TestReflowResizeShrinkingHeightEvictsFromTop(t *testing.T) {
	storage := NewMemoryScrollback(100)
	b := NewBufferWithStorage(4, 5, storage)
	setRow(b, 0, "row0 ")
	setRow(b, 1, "row1 ")
	setRow(b, 2, "row2 ")
	setRow(b, 3, "row3 ")

	b.ReflowResize(2, 5, 3, 0)

	if b.ScrollbackLen() != 2 {
		t.Fatalf("ScrollbackLen() = %d, want 2 (rows 0 and 1 pushed off the top)", b.ScrollbackLen())
	}
	first := b.ScrollbackLine(0)
	if first == nil || first[0].Char != 'r' {
		t.Fatalf("expected the oldest row (row0) in scrollback first, got %v", first)
	}
	if got := b.LineContent(0); got != "row2" {
		t.Errorf("surviving row 0 = %q, want %q", got, "row2")
	}
	if got := b.LineContent(1); got != "row3" {
		t.Errorf("surviving row 1 = %q, want %q", got, "row3")
	}
}

func TestReflowResizeGrowingHeightPadsBlankRows(t *testing.T) {
	b := NewBuffer(2, 5)
	setRow(b, 0, "hi   ")

	b.ReflowResize(5, 5, 0, 0)

	if b.Rows() != 5 {
		t.Fatalf("Rows() = %d, want 5", b.Rows())
	}
	if got := b.LineContent(4); got != "" {
		t.Errorf("padded row 4 = %q, want blank", got)
	}
}
