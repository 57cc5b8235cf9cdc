package vtparser

// Handler receives semantically decoded terminal operations. dispatch.go
// resolves every CSI/ESC/OSC/DCS/APC/PM/SOS sequence's numeric parameters
// and private markers into one of these calls, so a Handler implementation
// (term.Terminal) never has to parse a parameter list itself — mirroring
// how go-ansicode's Handler interface hands pre-parsed arguments to its
// callers.
type Handler interface {
	// Text and raw control
	Input(r rune)
	Backspace()
	Tab()
	HorizontalTabSet()
	LineFeed()
	CarriageReturn()
	Substitute()
	Bell()

	// Cursor movement
	Goto(row, col int)
	GotoLine(row int)
	GotoCol(col int)
	MoveUp(n int)
	MoveDown(n int)
	MoveForward(n int)
	MoveBackward(n int)
	MoveUpCr(n int)
	MoveDownCr(n int)
	MoveForwardTabs(n int)
	MoveBackwardTabs(n int)
	SaveCursorPosition()
	RestoreCursorPosition()
	SetCursorStyle(style CursorStyle)

	// Editing
	Decaln()
	EraseChars(n int)
	DeleteChars(n int)
	InsertBlank(n int)
	InsertBlankLines(n int)
	DeleteLines(n int)
	ClearLine(mode LineClearMode)
	ClearScreen(mode ClearMode)
	ClearTabs(mode TabulationClearMode)

	// Scrolling
	ScrollUp(n int)
	ScrollDown(n int)
	ReverseIndex()
	SetScrollingRegion(top, bottom int)

	// Attributes and color
	SetTerminalCharAttribute(attr TerminalCharAttribute)
	SetColor(index int, color RGBColor)
	SetDynamicColor(which int, color RGBColor)
	ResetColor(index int)

	// Charset
	ConfigureCharset(index CharsetIndex, charset Charset)
	SetActiveCharset(index CharsetIndex)

	// Modes
	SetMode(mode TerminalMode)
	UnsetMode(mode TerminalMode)
	SetKeypadApplicationMode()
	UnsetKeypadApplicationMode()
	SetKeyboardMode(mode KeyboardMode, behavior KeyboardModeBehavior)
	PushKeyboardMode(mode KeyboardMode)
	PopKeyboardMode()
	ReportKeyboardMode()
	SetModifyOtherKeys(mode ModifyOtherKeys)
	ReportModifyOtherKeys()

	// Device / terminal identity
	IdentifyTerminal(b byte)
	DeviceStatus(n int)
	TextAreaSizeChars()
	TextAreaSizePixels()
	CellSizePixels()

	// Titles
	SetTitle(title string)
	PushTitle()
	PopTitle()

	// Hyperlinks and clipboard
	SetHyperlink(hyperlink *Hyperlink)
	ClipboardLoad(clipboard byte)
	ClipboardStore(clipboard byte, data []byte)

	// Working directory (OSC 7)
	SetWorkingDirectory(uri string)

	// Shell integration (OSC 133)
	ShellIntegrationMark(mark ShellIntegrationMark, exitCode int)

	// String payloads the dispatch table does not interpret itself
	ApplicationCommandReceived(data []byte)
	PrivacyMessageReceived(data []byte)
	StartOfStringReceived(data []byte)

	// Full reset (RIS)
	ResetState()
}
