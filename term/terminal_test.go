package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vtterm/vtterm/vtparser"
)

func TestNewTerminalDefaults(t *testing.T) {
	tm := New()
	if tm.Rows() != 24 || tm.Cols() != 80 {
		t.Errorf("default size = %dx%d, want 24x80", tm.Rows(), tm.Cols())
	}
}

func TestNewTerminalWithSize(t *testing.T) {
	tm := New(WithSize(40, 120))
	if tm.Rows() != 40 || tm.Cols() != 120 {
		t.Errorf("size = %dx%d, want 40x120", tm.Rows(), tm.Cols())
	}
}

func TestTerminalWriteAndCursor(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.WriteString("Hello")

	if got := tm.LineContent(0); got != "Hello" {
		t.Errorf("LineContent(0) = %q, want %q", got, "Hello")
	}
	if row, col := tm.CursorPos(); row != 0 || col != 5 {
		t.Errorf("CursorPos() = (%d,%d), want (0,5)", row, col)
	}
}

func TestTerminalNewline(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.WriteString("Line1\r\nLine2")

	if tm.LineContent(0) != "Line1" || tm.LineContent(1) != "Line2" {
		t.Errorf("got %q / %q, want %q / %q", tm.LineContent(0), tm.LineContent(1), "Line1", "Line2")
	}
}

func TestTerminalClearScreen(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.WriteString("Hello")
	tm.WriteString("\x1b[2J")

	if got := tm.LineContent(0); got != "" {
		t.Errorf("LineContent(0) after CSI 2J = %q, want empty", got)
	}
}

func TestTerminalEraseUsesCurrentBackgroundColor(t *testing.T) {
	tm := New(WithSize(5, 10))
	// SGR 44 = blue background, then erase the line and the rest of the screen.
	tm.WriteString("\x1b[44mAB\x1b[2K")

	cell := tm.Cell(0, 0)
	if cell == nil {
		t.Fatal("expected cell at (0,0)")
	}
	nc, ok := cell.Bg.(*NamedColor)
	if !ok || nc.Name != 4 {
		t.Errorf("erased cell background = %#v, want the active SGR blue (BCE), not the palette default", cell.Bg)
	}

	tm.WriteString("\x1b[2J")
	cell = tm.Cell(1, 0)
	nc, ok = cell.Bg.(*NamedColor)
	if !ok || nc.Name != 4 {
		t.Errorf("full-screen erase background = %#v, want the active SGR blue (BCE)", cell.Bg)
	}
}

func TestTerminalWideCharacter(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.WriteString("中")

	if _, col := tm.CursorPos(); col != 2 {
		t.Errorf("cursor col after a wide rune = %d, want 2", col)
	}

	cell := tm.Cell(0, 0)
	if cell == nil || cell.Char != '中' || !cell.IsWide() {
		t.Fatalf("cell(0,0) = %+v, want wide '中'", cell)
	}
	spacer := tm.Cell(0, 1)
	if spacer == nil || !spacer.IsWideSpacer() {
		t.Fatalf("cell(0,1) = %+v, want a wide-char spacer", spacer)
	}
}

func TestTerminalSelection(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.WriteString("Hello World")

	tm.SetSelection(Position{Row: 0, Col: 0}, Position{Row: 0, Col: 4})
	if !tm.HasSelection() {
		t.Fatal("expected an active selection")
	}
	if got := tm.GetSelectedText(); got != "Hello" {
		t.Errorf("GetSelectedText() = %q, want %q", got, "Hello")
	}
	tm.ClearSelection()
	if tm.HasSelection() {
		t.Error("expected selection cleared")
	}
}

func TestTerminalString(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.WriteString("Line1\r\nLine2\r\nLine3")

	if got, want := tm.String(), "Line1\nLine2\nLine3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTerminalDirtyTracking(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.ClearDirty()
	if tm.HasDirty() {
		t.Fatal("expected clean after ClearDirty")
	}

	tm.WriteString("A")
	if !tm.HasDirty() {
		t.Fatal("expected dirty after a write")
	}
	if len(tm.DirtyCells()) == 0 {
		t.Error("expected at least one dirty cell")
	}

	tm.ClearDirty()
	if tm.HasDirty() {
		t.Error("expected clean again after ClearDirty")
	}
}

func TestTerminalColorsAndAttributes(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.WriteString("\x1b[31mRed")
	if cell := tm.Cell(0, 0); cell == nil || cell.Fg == nil {
		t.Fatal("expected SGR 31 to set a foreground color")
	}

	tm2 := New(WithSize(24, 80))
	tm2.WriteString("\x1b[1mBold")
	if cell := tm2.Cell(0, 0); cell == nil || !cell.HasFlag(CellFlagBold) {
		t.Fatal("expected SGR 1 to set the bold flag")
	}
}

func TestTerminalAlternateScreenRoundTrip(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.WriteString("Main screen")

	if tm.IsAlternateScreen() {
		t.Fatal("expected to start on the primary screen")
	}

	tm.WriteString("\x1b[?1049h")
	if !tm.IsAlternateScreen() {
		t.Fatal("DECSET 1049 should switch to the alternate screen")
	}
	if tm.LineContent(0) != "" {
		t.Error("the alternate screen should start clear")
	}
	tm.WriteString("Alt screen")

	tm.WriteString("\x1b[?1049l")
	if tm.IsAlternateScreen() {
		t.Fatal("DECRST 1049 should return to the primary screen")
	}
	if got := tm.LineContent(0); got != "Main screen" {
		t.Errorf("primary screen content = %q, want %q (should survive the alternate-screen round trip)", got, "Main screen")
	}
}

// TestAlternateScreenDoesNotShareSavedCursorWithDECSC is the regression case
// for the single shared saved-cursor slot: entering the alternate screen
// (which implicitly saves/restores the cursor) must not clobber an explicit
// DECSC/DECRC pair used while inside it, or vice versa.
func TestAlternateScreenDoesNotShareSavedCursorWithDECSC(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.WriteString("\x1b[5;5H") // move to (4,4) before entering the alt screen

	tm.WriteString("\x1b[?1049h") // implicit save of (4,4), enter alt screen clean
	tm.WriteString("\x1b[10;10H") // move to (9,9)
	tm.WriteString("\x1b7")       // DECSC: explicit save of (9,9) in the alt-screen slot
	tm.WriteString("\x1b[1;1H")   // move to (0,0)
	tm.WriteString("\x1b8")       // DECRC: should restore (9,9), not the primary screen's (4,4)

	if row, col := tm.CursorPos(); row != 9 || col != 9 {
		t.Fatalf("DECRC restored (%d,%d), want (9,9) — it must not read the primary screen's saved slot", row, col)
	}

	tm.WriteString("\x1b[?1049l") // implicit restore back to (4,4)
	if row, col := tm.CursorPos(); row != 4 || col != 4 {
		t.Fatalf("leaving the alternate screen restored (%d,%d), want (4,4)", row, col)
	}
}

func TestCustomScrollbackProviderReceivesPushes(t *testing.T) {
	storage := NewMemoryScrollback(100)
	tm := New(WithSize(3, 80), WithScrollback(storage))

	for i := 0; i < 10; i++ {
		tm.WriteString("Line\n")
	}

	if tm.ScrollbackLen() == 0 {
		t.Error("expected scrolled-off lines to reach the custom scrollback provider")
	}
}

func TestMiddlewareInputCanRewriteRunes(t *testing.T) {
	var intercepted []rune
	tm := New(WithSize(24, 80), WithMiddleware(&Middleware{
		Input: func(r rune, next func(rune)) {
			intercepted = append(intercepted, r)
			if r == 'a' {
				next('A')
				return
			}
			next(r)
		},
	}))

	tm.WriteString("abc")

	if len(intercepted) != 3 {
		t.Fatalf("intercepted %d runes, want 3", len(intercepted))
	}
	if got := tm.LineContent(0); got != "Abc" {
		t.Errorf("LineContent(0) = %q, want %q", got, "Abc")
	}
}

func TestMiddlewareInputCanSuppressRunes(t *testing.T) {
	tm := New(WithSize(24, 80), WithMiddleware(&Middleware{
		Input: func(r rune, next func(rune)) {
			if r != 'x' {
				next(r)
			}
		},
	}))

	tm.WriteString("axbxc")

	if got := tm.LineContent(0); got != "abc" {
		t.Errorf("LineContent(0) = %q, want %q (x's suppressed)", got, "abc")
	}
}

func TestMiddlewareBellAndTitle(t *testing.T) {
	bells, titles := 0, 0
	tm := New(WithSize(24, 80), WithMiddleware(&Middleware{
		Bell: func(next func()) {
			bells++
			next()
		},
		SetTitle: func(title string, next func(string)) {
			titles++
			next("[PREFIX] " + title)
		},
	}))

	tm.WriteString("\x07")
	tm.WriteString("\x1b]0;My Title\x07")

	if bells != 1 || titles != 1 {
		t.Fatalf("bells=%d titles=%d, want 1,1", bells, titles)
	}
	if got := tm.Title(); got != "[PREFIX] My Title" {
		t.Errorf("Title() = %q, want %q", got, "[PREFIX] My Title")
	}
}

func TestMiddlewareClearScreenCanBlockTheCall(t *testing.T) {
	clears := 0
	tm := New(WithSize(24, 80), WithMiddleware(&Middleware{
		ClearScreen: func(mode vtparser.ClearMode, next func(vtparser.ClearMode)) {
			clears++
		},
	}))

	tm.WriteString("Hello")
	tm.WriteString("\x1b[2J")

	if clears != 1 {
		t.Fatalf("clears = %d, want 1", clears)
	}
	if got := tm.LineContent(0); got != "Hello" {
		t.Errorf("LineContent(0) = %q, want %q — middleware that never calls next should block the clear", got, "Hello")
	}
}

func TestMiddlewareMerge(t *testing.T) {
	bells, titles := 0, 0
	mw1 := &Middleware{Bell: func(next func()) { bells++; next() }}
	mw2 := &Middleware{SetTitle: func(title string, next func(string)) { titles++; next(title) }}
	mw1.Merge(mw2)

	tm := New(WithSize(24, 80), WithMiddleware(mw1))
	tm.WriteString("\x07")
	tm.WriteString("\x1b]0;Hi\x07")

	if bells != 1 || titles != 1 {
		t.Errorf("bells=%d titles=%d, want 1,1 — Merge should combine both hooks", bells, titles)
	}
}

type capturingClipboard struct {
	content map[byte][]byte
}

func (c *capturingClipboard) Read(clipboard byte) string {
	return string(c.content[clipboard])
}

func (c *capturingClipboard) Write(clipboard byte, data []byte) {
	c.content[clipboard] = append([]byte(nil), data...)
}

func TestClipboardProviderIsReachableFromTheTerminal(t *testing.T) {
	clipboard := &capturingClipboard{content: make(map[byte][]byte)}
	tm := New(WithSize(24, 80), WithClipboard(clipboard))

	clipboard.Write('c', []byte("test content"))
	if tm.ClipboardProvider() != clipboard {
		t.Fatal("expected ClipboardProvider() to return the configured provider")
	}
	if got := clipboard.Read('c'); got != "test content" {
		t.Errorf("Read('c') = %q, want %q", got, "test content")
	}
}

func TestResponseWriterReceivesDeviceStatusReply(t *testing.T) {
	var responses bytes.Buffer
	tm := New(WithSize(24, 80), WithResponse(&responses))

	tm.WriteString("\x1b[5n")

	if got, want := responses.String(), "\x1b[0n"; got != want {
		t.Errorf("device status reply = %q, want %q", got, want)
	}
}

func TestWriteResponseIsSafeForConcurrentQueries(t *testing.T) {
	tm := New(WithSize(24, 80))
	var buf bytes.Buffer
	tm.SetResponseProvider(&buf)

	done := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		go func() {
			tm.DeviceStatus(6)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if buf.Len() == 0 {
		t.Error("expected at least one response written under concurrent DeviceStatus calls")
	}
}

func TestTerminalWrappedLineTracking(t *testing.T) {
	tm := New(WithSize(5, 10))

	if tm.IsWrapped(0) {
		t.Fatal("expected line 0 not wrapped initially")
	}

	tm.WriteString("1234567890ABC") // 13 chars: line 0 overflows at col 10
	if !tm.IsWrapped(0) {
		t.Error("expected line 0 marked wrapped once it overflows")
	}
	if tm.IsWrapped(1) {
		t.Error("expected line 1 not wrapped (no explicit newline yet)")
	}
}

func TestTerminalWrappedLineClearedOnExplicitNewline(t *testing.T) {
	tm := New(WithSize(5, 10))
	tm.WriteString("1234567890ABC")
	tm.WriteString("\n")

	if tm.IsWrapped(1) {
		t.Error("an explicit newline on the cursor's row should not be recorded as a soft wrap")
	}
}

func TestActiveCharsetBoundsValidation(t *testing.T) {
	tm := New(WithSize(24, 80))
	for i := 0; i < 4; i++ {
		tm.SetActiveCharset(i)
		tm.WriteString("A")
	}

	tm.WriteString("Hello World")
	row, col := tm.CursorPos()
	if row < 0 || row >= tm.Rows() || col < 0 || col >= tm.Cols() {
		t.Errorf("cursor out of bounds: (%d,%d) for %dx%d", row, col, tm.Rows(), tm.Cols())
	}
}

func TestResizeIgnoresInvalidDimensions(t *testing.T) {
	tm := New(WithSize(24, 80))
	rows, cols := tm.Rows(), tm.Cols()

	for _, d := range [][2]int{{0, 0}, {-10, -20}, {0, 100}, {50, 0}} {
		tm.Resize(d[0], d[1])
		if tm.Rows() != rows || tm.Cols() != cols {
			t.Errorf("Resize(%d,%d) should be a no-op, got %dx%d", d[0], d[1], tm.Rows(), tm.Cols())
		}
	}

	tm.Resize(30, 100)
	if tm.Rows() != 30 || tm.Cols() != 100 {
		t.Errorf("Resize(30,100) should apply, got %dx%d", tm.Rows(), tm.Cols())
	}
}

// TestResizeReflowsPrimaryGrid is the round-trip invariant: narrowing then
// widening back to the original column count must reproduce the original
// rows, because Resize reflows the primary grid instead of cropping it.
func TestResizeReflowsPrimaryGrid(t *testing.T) {
	tm := New(WithSize(6, 10))
	tm.WriteString("0123456789")

	tm.Resize(6, 5)
	if tm.LineContent(0) != "01234" || tm.LineContent(1) != "56789" {
		t.Fatalf("after narrowing: row0=%q row1=%q, want %q/%q", tm.LineContent(0), tm.LineContent(1), "01234", "56789")
	}
	if !tm.IsWrapped(0) {
		t.Fatal("expected row 0 marked wrapped into row 1 after the reflow")
	}

	tm.Resize(6, 10)
	if got := tm.LineContent(0); got != "0123456789" {
		t.Errorf("after widening back: row0=%q, want %q — reflow round trip should reproduce the original row", got, "0123456789")
	}
}

// TestResizeShrinkHeightEvictsFromTop is the companion invariant: overflow
// rows on a height shrink move to scrollback from the top, not the bottom.
func TestResizeShrinkHeightEvictsFromTop(t *testing.T) {
	storage := NewMemoryScrollback(100)
	tm := New(WithSize(4, 10), WithScrollback(storage))
	tm.WriteString("row0\r\nrow1\r\nrow2\r\nrow3")

	tm.Resize(2, 10)

	if tm.ScrollbackLen() == 0 {
		t.Fatal("expected overflow rows pushed to scrollback on a height shrink")
	}
	oldest := tm.ScrollbackLine(0)
	if len(oldest) == 0 || oldest[0].Char != 'r' {
		t.Fatalf("oldest scrollback row should be the original row 0 (\"row0\"), got %+v", oldest)
	}
	if got := tm.LineContent(0); got != "row2" {
		t.Errorf("surviving row 0 = %q, want %q (bottom rows stay on screen, top rows evict)", got, "row2")
	}
}

func TestResizeCursorStaysInBounds(t *testing.T) {
	tm := New(WithSize(24, 80))
	tm.WriteString(strings.Repeat("A", 80))
	tm.WriteString("\r\n")
	tm.WriteString(strings.Repeat("B", 80))

	tm.Resize(10, 40)

	row, col := tm.CursorPos()
	if row < 0 || row >= 10 || col < 0 || col >= 40 {
		t.Errorf("cursor (%d,%d) out of bounds after shrinking to 10x40", row, col)
	}
}

func TestCursorBoundsAfterRepeatedWrap(t *testing.T) {
	tm := New(WithSize(5, 10))
	for i := 0; i < 10; i++ {
		tm.WriteString("123456789A")
	}

	row, col := tm.CursorPos()
	if row < 0 || row >= tm.Rows() || col < 0 || col > tm.Cols() {
		t.Errorf("cursor (%d,%d) out of bounds after repeated wraps", row, col)
	}
}

func TestCursorBoundsUnderSustainedWrite(t *testing.T) {
	tm := New(WithSize(5, 10))
	for i := 0; i < 100; i++ {
		tm.WriteString("A")
	}

	row, col := tm.CursorPos()
	if row < 0 || row >= tm.Rows() || col < 0 || col > tm.Cols() {
		t.Errorf("cursor (%d,%d) out of bounds", row, col)
	}

	tm.WriteString("X")
	row2, col2 := tm.CursorPos()
	if row2 < 0 || row2 >= tm.Rows() || col2 < 0 || col2 > tm.Cols() {
		t.Errorf("cursor (%d,%d) out of bounds after a further write", row2, col2)
	}
}
