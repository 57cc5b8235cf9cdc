// Package term provides a headless VT220/xterm-compatible terminal emulator.
//
// This package emulates a terminal without any display, making it ideal for:
//   - Testing terminal applications without a GUI
//   - Building terminal multiplexers and recorders
//   - Creating terminal-based web applications
//   - Automated testing of CLI tools
//   - Screen scraping and automation
//
// # Quick Start
//
// Create a terminal and write ANSI sequences to it:
//
//	t := term.New()
//	t.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(t.String()) // "Hello World!"
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: The main emulator that processes ANSI sequences
//   - [Buffer]: A 2D grid of cells with scrollback support
//   - [Cell]: A single character with colors and attributes
//   - [Cursor]: Tracks position and rendering style
//
// Terminal does not parse escape sequences itself; it implements
// [vtparser.Handler] and hands a [vtparser.Parser] every byte it is
// given, receiving back fully decoded operations.
//
// # Terminal
//
// Terminal is the main entry point. It implements [io.Writer] so you can write
// raw bytes containing ANSI escape sequences:
//
//	t := term.New(
//	    term.WithSize(24, 80),           // 24 rows, 80 columns
//	    term.WithScrollback(storage),    // Enable scrollback
//	    term.WithResponse(ptyWriter),    // Handle terminal responses
//	)
//
//	// Process output from a command
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = t
//	cmd.Run()
//
//	// Read the result
//	for row := 0; row < t.Rows(); row++ {
//	    fmt.Println(t.LineContent(row))
//	}
//
// # Dual Buffers
//
// Terminal maintains two buffers:
//
//   - Primary buffer: Normal mode with optional scrollback storage
//   - Alternate buffer: Used by full-screen apps (vim, less, htop), no scrollback
//
// Applications switch buffers via ANSI sequences (CSI ?1049h/l). Check which
// buffer is active:
//
//	if t.IsAlternateScreen() {
//	    // Full-screen app is running
//	}
//
// # Cells and Attributes
//
// Each cell stores a character with styling information:
//
//	cell := t.Cell(row, col)
//	if cell != nil {
//	    fmt.Printf("Char: %c\n", cell.Char)
//	    fmt.Printf("Bold: %v\n", cell.HasFlag(term.CellFlagBold))
//	    fmt.Printf("FG: %v\n", cell.Fg)
//	    fmt.Printf("BG: %v\n", cell.Bg)
//	}
//
// Cell flags include: Bold, Dim, Italic, Underline, Blink, Reverse, Hidden, Strike.
//
// # Colors
//
// Colors are stored using Go's [image/color] interface. The package supports:
//
//   - Named colors (indices 0-15 for standard ANSI colors)
//   - 256-color palette (indices 0-255)
//   - True color (24-bit RGB via [color.RGBA])
//
// Use [ResolveColor] to convert any color to RGBA:
//
//	rgba := term.ResolveColor(cell.Fg, true)
//
// # Scrollback
//
// Lines scrolled off the top of the primary buffer can be stored for later access.
// Implement [ScrollbackProvider] or use the built-in memory storage:
//
//	// In-memory scrollback with 10000 line limit
//	storage := term.NewMemoryScrollback(10000)
//	t := term.New(term.WithScrollback(storage))
//
//	// Access scrollback
//	for i := 0; i < t.ScrollbackLen(); i++ {
//	    line := t.ScrollbackLine(i) // []Cell
//	}
//
// # Responses
//
// [ResponseProvider] receives terminal responses (cursor position reports, etc.),
// typically to write them back to the PTY:
//
//	t := term.New(term.WithResponse(os.Stdout))
//
// # Providers
//
// Providers handle terminal events and queries. All are optional with no-op defaults:
//
//   - [BellProvider]: Handles bell/beep events
//   - [TitleProvider]: Handles window title changes (OSC 0/1/2)
//   - [ClipboardProvider]: Handles clipboard operations (OSC 52)
//   - [ScrollbackProvider]: Stores lines scrolled off screen
//   - [SizeProvider]: Provides pixel dimensions for queries
//
// Example with providers:
//
//	t := term.New(
//	    term.WithResponse(os.Stdout),
//	    term.WithBell(&MyBellHandler{}),
//	    term.WithTitle(&MyTitleHandler{}),
//	)
//
// # Middleware
//
// Middleware intercepts ANSI handler calls for custom behavior:
//
//	mw := &term.Middleware{
//	    Input: func(r rune, next func(rune)) {
//	        log.Printf("Input: %c", r)
//	        next(r) // Call default handler
//	    },
//	    Bell: func(next func()) {
//	        log.Println("Bell!")
//	        // Don't call next() to suppress the bell
//	    },
//	}
//	t := term.New(term.WithMiddleware(mw))
//
// # Terminal Modes
//
// Various terminal behaviors are controlled by mode flags:
//
//	t.HasMode(term.ModeLineWrap)       // Auto line wrap enabled?
//	t.HasMode(term.ModeShowCursor)     // Cursor visible?
//	t.HasMode(term.ModeBracketedPaste) // Bracketed paste enabled?
//
// See [TerminalMode] for all available modes.
//
// # Dirty Tracking
//
// Track which cells changed for efficient rendering:
//
//	if t.HasDirty() {
//	    for _, pos := range t.DirtyCells() {
//	        // Redraw cell at pos.Row, pos.Col
//	    }
//	    t.ClearDirty()
//	}
//
// # Selection
//
// Manage text selections for copy/paste:
//
//	t.SetSelection(
//	    term.Position{Row: 0, Col: 0},
//	    term.Position{Row: 2, Col: 10},
//	)
//	text := t.GetSelectedText()
//	t.ClearSelection()
//
// # Snapshots
//
// Capture the terminal state for serialization or rendering:
//
//	// Text only (smallest)
//	snap := t.Snapshot(term.SnapshotDetailText)
//
//	// With style segments (good for HTML rendering)
//	snap := t.Snapshot(term.SnapshotDetailStyled)
//
//	// Full cell data (complete state)
//	snap := t.Snapshot(term.SnapshotDetailFull)
//
//	// Convert to JSON
//	data, _ := json.Marshal(snap)
//
// Snapshot attributes are booleans: Underline is set for any underline style
// and Blink for slow or fast blink. The underline style, the blink rate and
// the underline color are not included in a snapshot.
//
// # Shell Integration
//
// Track shell prompts and command output (OSC 133):
//
//	t := term.New(
//	    term.WithResponse(ptyWriter),
//	)
//
//	// Navigate between prompts (uses absolute rows, including scrollback)
//	currentAbsRow := t.ScrollbackLen() // Absolute row of viewport row 0
//	nextAbsRow := t.NextPromptRow(currentAbsRow, -1)
//	prevAbsRow := t.PrevPromptRow(currentAbsRow, -1)
//
//	// Convert absolute row back to viewport for display
//	viewportRow := nextAbsRow - t.ScrollbackLen() // negative if in scrollback
//
//	// Get last command output and its duration
//	output := t.GetLastCommandOutput()
//	cmds := t.CommandHistory()
//
// # Thread Safety
//
// All Terminal methods are safe for concurrent use. The terminal uses internal
// locking to protect state. However, if you need to perform multiple operations
// atomically, you should use your own synchronization.
//
// # Supported ANSI Sequences
//
// The terminal supports a comprehensive set of ANSI escape sequences including:
//
//   - Cursor movement (CUU, CUD, CUF, CUB, CUP, HVP, etc.)
//   - Cursor save/restore (DECSC, DECRC)
//   - Erase commands (ED, EL, ECH)
//   - Insert/delete (ICH, DCH, IL, DL)
//   - Scrolling (SU, SD, DECSTBM)
//   - Character attributes (SGR) with full color support
//   - Terminal modes (DECSET, DECRST)
//   - Device status and device attribute reports (DSR, DA1, DA2)
//   - Alternate screen buffer
//   - Bracketed paste mode
//   - Mouse reporting
//   - Window title (OSC 0/1/2)
//   - Clipboard (OSC 52)
//   - Hyperlinks (OSC 8)
//   - Shell integration (OSC 133)
//
// For the byte-level state machine that feeds Terminal, see the sibling
// [vtparser] package.
package term
