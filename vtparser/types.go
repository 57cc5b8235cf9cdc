package vtparser

// This file defines the vocabulary of types the dispatch table passes to a
// Handler. The shapes mirror github.com/danielgatis/go-ansicode, which
// cannot be fetched in this environment (see DESIGN.md) — inferred from
// every ansicode.* call site across the handler, middleware and terminal
// code this package's Handler interface replaces.

// CharAttribute identifies an SGR sub-command.
type CharAttribute int

const (
	CharAttributeReset CharAttribute = iota
	CharAttributeBold
	CharAttributeDim
	CharAttributeItalic
	CharAttributeUnderline
	CharAttributeDoubleUnderline
	CharAttributeCurlyUnderline
	CharAttributeDottedUnderline
	CharAttributeDashedUnderline
	CharAttributeBlinkSlow
	CharAttributeBlinkFast
	CharAttributeReverse
	CharAttributeHidden
	CharAttributeStrike
	CharAttributeCancelBold
	CharAttributeCancelBoldDim
	CharAttributeCancelItalic
	CharAttributeCancelUnderline
	CharAttributeCancelBlink
	CharAttributeCancelReverse
	CharAttributeCancelHidden
	CharAttributeCancelStrike
	CharAttributeForeground
	CharAttributeBackground
	CharAttributeUnderlineColor
)

// RGBColor is a fully specified 24-bit color (SGR 38/48;2;r;g;b).
type RGBColor struct {
	R, G, B uint8
}

// IndexedColor names a palette slot (SGR 38/48;5;n).
type IndexedColor struct {
	Index uint8
}

// NamedColorValue names one of the 16 standard ANSI slots, or the
// terminal's default foreground/background.
type NamedColorValue int

// TerminalCharAttribute is one parsed SGR sub-command: either a plain
// attribute toggle (Attr) or a color assignment, in which case exactly one
// of RGBColor/IndexedColor/NamedColor is set.
type TerminalCharAttribute struct {
	Attr         CharAttribute
	RGBColor     *RGBColor
	IndexedColor *IndexedColor
	NamedColor   *NamedColorValue
}

// ClearMode selects an ED (Erase in Display) variant.
type ClearMode int

const (
	ClearModeBelow ClearMode = iota
	ClearModeAbove
	ClearModeAll
	ClearModeSaved
)

// LineClearMode selects an EL (Erase in Line) variant.
type LineClearMode int

const (
	LineClearModeRight LineClearMode = iota
	LineClearModeLeft
	LineClearModeAll
)

// TabulationClearMode selects a TBC (Tab Clear) variant.
type TabulationClearMode int

const (
	TabulationClearModeCurrent TabulationClearMode = iota
	TabulationClearModeAll
)

// CursorStyle mirrors DECSCUSR's Ps values, in wire order, so it converts
// directly to term.CursorStyle with a plain int cast.
type CursorStyle int

const (
	CursorStyleBlinkingBlockDefault CursorStyle = iota // Ps omitted or 0
	CursorStyleBlinkingBlock                            // 1
	CursorStyleSteadyBlock                              // 2
	CursorStyleBlinkingUnderline                        // 3
	CursorStyleSteadyUnderline                          // 4
	CursorStyleBlinkingBar                              // 5
	CursorStyleSteadyBar                                // 6
)

// Charset and CharsetIndex mirror ESC ( / ) / * / + charset designation.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)

type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// Hyperlink carries an OSC 8 hyperlink's id and target URI.
type Hyperlink struct {
	ID  string
	URI string
}

// KeyboardMode is the Kitty keyboard-protocol bitmask (CSI > u / CSI < u /
// CSI = u).
type KeyboardMode int

const (
	KeyboardModeNoMode KeyboardMode = 0

	KeyboardModeDisambiguateEscapes KeyboardMode = 1 << iota
	KeyboardModeReportEventTypes
	KeyboardModeReportAlternateKeys
	KeyboardModeReportAllKeysAsEscapes
	KeyboardModeReportAssociatedText
)

// KeyboardModeBehavior selects how a new KeyboardMode combines with the
// current top of the keyboard-mode stack.
type KeyboardModeBehavior int

const (
	KeyboardModeBehaviorReplace KeyboardModeBehavior = iota
	KeyboardModeBehaviorUnion
	KeyboardModeBehaviorDifference
)

// ModifyOtherKeys is xterm's modifyOtherKeys resource value (0, 1, or 2).
type ModifyOtherKeys int

// TerminalMode names an SM/RM or DECSET/DECRST mode by its semantic
// meaning, after the dispatch table has already resolved the numeric Ps
// value and the '?' private marker.
type TerminalMode int

const (
	TerminalModeCursorKeys TerminalMode = iota
	TerminalModeColumnMode
	TerminalModeInsert
	TerminalModeOrigin
	TerminalModeLineWrap
	TerminalModeBlinkingCursor
	TerminalModeLineFeedNewLine
	TerminalModeShowCursor
	TerminalModeReportMouseClicks
	TerminalModeReportCellMouseMotion
	TerminalModeReportAllMouseMotion
	TerminalModeReportFocusInOut
	TerminalModeUTF8Mouse
	TerminalModeSGRMouse
	TerminalModeAlternateScroll
	TerminalModeUrgencyHints
	TerminalModeSwapScreenAndSetRestoreCursor
	TerminalModeBracketedPaste
)

// ShellIntegrationMark names an OSC 133 mark kind.
type ShellIntegrationMark int

const (
	PromptStart ShellIntegrationMark = iota
	CommandStart
	CommandExecuted
	CommandFinished
)
