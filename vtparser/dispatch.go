package vtparser

import (
	"strconv"
	"strings"
)

// dispatchAction turns one completed Action into zero or more calls on h,
// resolving numeric parameters and private/intermediate markers the way
// original_source/src/core/handler.rs's csi_dispatch/esc_dispatch/
// osc_dispatch do, generalized to the fuller sequence set this package
// covers (DA1/DA2, OSC 4/8/10/11/52/104, Kitty keyboard protocol, window
// ops) with DA1/DA2 reply bytes matching a real xterm.
func dispatchAction(h Handler, a Action) {
	if h == nil {
		return
	}
	switch a.Kind {
	case ActionPrint:
		h.Input(a.Rune)
	case ActionExecute:
		execute(h, a.Byte)
	case ActionCsiDispatch:
		csiDispatch(h, a)
	case ActionEscDispatch:
		escDispatch(h, a)
	case ActionOscDispatch:
		oscDispatch(h, a.Data)
	case ActionApcDispatch:
		h.ApplicationCommandReceived(a.Data)
	case ActionPmDispatch:
		h.PrivacyMessageReceived(a.Data)
	case ActionSosDispatch:
		h.StartOfStringReceived(a.Data)
	}
}

func execute(h Handler, b byte) {
	switch b {
	case 0x07:
		h.Bell()
	case 0x08:
		h.Backspace()
	case 0x09:
		h.Tab()
	case 0x0a, 0x0b, 0x0c:
		h.LineFeed()
	case 0x0d:
		h.CarriageReturn()
	case 0x0e:
		h.SetActiveCharset(CharsetIndexG1)
	case 0x0f:
		h.SetActiveCharset(CharsetIndexG0)
	case 0x1a:
		h.Substitute()
	}
}

func param(params []int, idx, def int) int {
	if idx >= len(params) {
		return def
	}
	if params[idx] == 0 {
		return def
	}
	return params[idx]
}

func rawParam(params []int, idx, def int) int {
	if idx >= len(params) {
		return def
	}
	return params[idx]
}

func csiDispatch(h Handler, a Action) {
	params := a.Params
	inter := a.Intermediates
	isPrivate := len(inter) > 0 && inter[0] == '?'
	isGT := len(inter) > 0 && inter[0] == '>'
	isLT := len(inter) > 0 && inter[0] == '<'
	isEq := len(inter) > 0 && inter[0] == '='
	isSpace := len(inter) > 0 && inter[len(inter)-1] == ' '

	switch a.Final {
	case 'A':
		h.MoveUp(param(params, 0, 1))
	case 'B':
		h.MoveDown(param(params, 0, 1))
	case 'C':
		h.MoveForward(param(params, 0, 1))
	case 'D':
		h.MoveBackward(param(params, 0, 1))
	case 'E':
		h.MoveDownCr(param(params, 0, 1))
	case 'F':
		h.MoveUpCr(param(params, 0, 1))
	case 'G', '`':
		h.GotoCol(param(params, 0, 1) - 1)
	case 'H', 'f':
		h.Goto(param(params, 0, 1)-1, param(params, 1, 1)-1)
	case 'd':
		h.GotoLine(param(params, 0, 1) - 1)
	case 'I':
		h.MoveForwardTabs(param(params, 0, 1))
	case 'Z':
		h.MoveBackwardTabs(param(params, 0, 1))
	case 'J':
		h.ClearScreen(clearModeFromParam(param(params, 0, 0)))
	case 'K':
		h.ClearLine(lineClearModeFromParam(param(params, 0, 0)))
	case 'X':
		h.EraseChars(param(params, 0, 1))
	case 'L':
		h.InsertBlankLines(param(params, 0, 1))
	case 'M':
		h.DeleteLines(param(params, 0, 1))
	case 'P':
		h.DeleteChars(param(params, 0, 1))
	case '@':
		h.InsertBlank(param(params, 0, 1))
	case 'S':
		if !isPrivate {
			h.ScrollUp(param(params, 0, 1))
		}
	case 'T':
		h.ScrollDown(param(params, 0, 1))
	case 'm':
		dispatchSGR(h, params)
	case 'r':
		if !isPrivate {
			h.SetScrollingRegion(param(params, 0, 1), rawParam(params, 1, 0))
		}
	case 'h':
		if isPrivate {
			setDecModes(h, params, true)
		} else {
			setAnsiModes(h, params, true)
		}
	case 'l':
		if isPrivate {
			setDecModes(h, params, false)
		} else {
			setAnsiModes(h, params, false)
		}
	case 's':
		if !isPrivate {
			h.SaveCursorPosition()
		}
	case 'u':
		switch {
		case isGT:
			h.PushKeyboardMode(KeyboardMode(rawParam(params, 0, 0)))
		case isLT:
			h.PopKeyboardMode()
		case isEq:
			behavior := KeyboardModeBehaviorReplace
			switch rawParam(params, 1, 1) {
			case 2:
				behavior = KeyboardModeBehaviorUnion
			case 3:
				behavior = KeyboardModeBehaviorDifference
			}
			h.SetKeyboardMode(KeyboardMode(rawParam(params, 0, 0)), behavior)
		case len(inter) == 0:
			h.RestoreCursorPosition()
		}
	case 'n':
		if isPrivate {
			h.DeviceStatus(param(params, 0, 0) + 1000)
		} else {
			h.DeviceStatus(param(params, 0, 0))
		}
	case 'c':
		if isGT {
			h.IdentifyTerminal('>')
		} else if !isPrivate {
			h.IdentifyTerminal(0)
		}
	case 'g':
		h.ClearTabs(tabClearModeFromParam(param(params, 0, 0)))
	case 'q':
		if isSpace {
			h.SetCursorStyle(CursorStyle(param(params, 0, 0)))
		}
	case 't':
		switch param(params, 0, 0) {
		case 14:
			h.TextAreaSizePixels()
		case 16:
			h.CellSizePixels()
		case 18:
			h.TextAreaSizeChars()
		}
	}
}

func clearModeFromParam(n int) ClearMode {
	switch n {
	case 1:
		return ClearModeAbove
	case 2:
		return ClearModeAll
	case 3:
		return ClearModeSaved
	default:
		return ClearModeBelow
	}
}

func lineClearModeFromParam(n int) LineClearMode {
	switch n {
	case 1:
		return LineClearModeLeft
	case 2:
		return LineClearModeAll
	default:
		return LineClearModeRight
	}
}

func tabClearModeFromParam(n int) TabulationClearMode {
	if n == 3 {
		return TabulationClearModeAll
	}
	return TabulationClearModeCurrent
}

func setDecModes(h Handler, params []int, set bool) {
	for _, p := range params {
		m, ok := decModeFromParam(p)
		if !ok {
			continue
		}
		if set {
			h.SetMode(m)
		} else {
			h.UnsetMode(m)
		}
	}
}

func decModeFromParam(p int) (TerminalMode, bool) {
	switch p {
	case 1:
		return TerminalModeCursorKeys, true
	case 3:
		return TerminalModeColumnMode, true
	case 6:
		return TerminalModeOrigin, true
	case 7:
		return TerminalModeLineWrap, true
	case 12:
		return TerminalModeBlinkingCursor, true
	case 25:
		return TerminalModeShowCursor, true
	case 1000:
		return TerminalModeReportMouseClicks, true
	case 1002:
		return TerminalModeReportCellMouseMotion, true
	case 1003:
		return TerminalModeReportAllMouseMotion, true
	case 1004:
		return TerminalModeReportFocusInOut, true
	case 1005:
		return TerminalModeUTF8Mouse, true
	case 1006:
		return TerminalModeSGRMouse, true
	case 1007:
		return TerminalModeAlternateScroll, true
	case 1042:
		return TerminalModeUrgencyHints, true
	case 47, 1047, 1049:
		return TerminalModeSwapScreenAndSetRestoreCursor, true
	case 2004:
		return TerminalModeBracketedPaste, true
	default:
		return 0, false
	}
}

func setAnsiModes(h Handler, params []int, set bool) {
	for _, p := range params {
		var m TerminalMode
		switch p {
		case 4:
			m = TerminalModeInsert
		case 20:
			m = TerminalModeLineFeedNewLine
		default:
			continue
		}
		if set {
			h.SetMode(m)
		} else {
			h.UnsetMode(m)
		}
	}
}

func dispatchSGR(h Handler, params []int) {
	if len(params) == 0 {
		h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeReset})
		return
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeReset})
		case p == 1:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeBold})
		case p == 2:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeDim})
		case p == 3:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeItalic})
		case p == 4:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeUnderline})
		case p == 5:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeBlinkSlow})
		case p == 6:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeBlinkFast})
		case p == 7:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeReverse})
		case p == 8:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeHidden})
		case p == 9:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeStrike})
		case p == 21:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeDoubleUnderline})
		case p == 22:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeCancelBoldDim})
		case p == 23:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeCancelItalic})
		case p == 24:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeCancelUnderline})
		case p == 25:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeCancelBlink})
		case p == 27:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeCancelReverse})
		case p == 28:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeCancelHidden})
		case p == 29:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeCancelStrike})
		case p >= 30 && p <= 37:
			nc := NamedColorValue(p - 30)
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeForeground, NamedColor: &nc})
		case p == 38:
			attr, skip := extendedColor(params, i+1, CharAttributeForeground)
			if attr != nil {
				h.SetTerminalCharAttribute(*attr)
				i += skip
			}
		case p == 39:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeForeground})
		case p >= 90 && p <= 97:
			nc := NamedColorValue(p - 90 + 8)
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeForeground, NamedColor: &nc})
		case p >= 40 && p <= 47:
			nc := NamedColorValue(p - 40)
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeBackground, NamedColor: &nc})
		case p == 48:
			attr, skip := extendedColor(params, i+1, CharAttributeBackground)
			if attr != nil {
				h.SetTerminalCharAttribute(*attr)
				i += skip
			}
		case p == 49:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeBackground})
		case p >= 100 && p <= 107:
			nc := NamedColorValue(p - 100 + 8)
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeBackground, NamedColor: &nc})
		case p == 58:
			attr, skip := extendedColor(params, i+1, CharAttributeUnderlineColor)
			if attr != nil {
				h.SetTerminalCharAttribute(*attr)
				i += skip
			}
		case p == 59:
			h.SetTerminalCharAttribute(TerminalCharAttribute{Attr: CharAttributeUnderlineColor})
		}
	}
}

// extendedColor parses the ;5;N or ;2;R;G;B tail of an SGR 38/48/58
// sub-command. Returns how many extra params it consumed.
func extendedColor(params []int, start int, attr CharAttribute) (*TerminalCharAttribute, int) {
	if start >= len(params) {
		return nil, 0
	}
	switch params[start] {
	case 5:
		if start+1 >= len(params) {
			return nil, 0
		}
		return &TerminalCharAttribute{Attr: attr, IndexedColor: &IndexedColor{Index: uint8(params[start+1])}}, 2
	case 2:
		if start+3 >= len(params) {
			return nil, 0
		}
		return &TerminalCharAttribute{Attr: attr, RGBColor: &RGBColor{
			R: uint8(params[start+1]), G: uint8(params[start+2]), B: uint8(params[start+3]),
		}}, 4
	default:
		return nil, 0
	}
}

func escDispatch(h Handler, a Action) {
	inter := a.Intermediates
	if len(inter) > 0 && inter[0] == '#' {
		if a.Final == '8' {
			h.Decaln()
		}
		return
	}
	if len(inter) > 0 && (inter[0] == '(' || inter[0] == ')' || inter[0] == '*' || inter[0] == '+') {
		idx := CharsetIndexG0
		switch inter[0] {
		case ')':
			idx = CharsetIndexG1
		case '*':
			idx = CharsetIndexG2
		case '+':
			idx = CharsetIndexG3
		}
		cs := CharsetASCII
		if a.Final == '0' {
			cs = CharsetLineDrawing
		}
		h.ConfigureCharset(idx, cs)
		return
	}
	switch a.Final {
	case '7':
		h.SaveCursorPosition()
	case '8':
		h.RestoreCursorPosition()
	case 'D':
		h.LineFeed()
	case 'M':
		h.ReverseIndex()
	case 'E':
		h.CarriageReturn()
		h.LineFeed()
	case 'H':
		h.HorizontalTabSet()
	case '=':
		h.SetKeypadApplicationMode()
	case '>':
		h.UnsetKeypadApplicationMode()
	case 'c':
		h.ResetState()
	}
}

func oscDispatch(h Handler, data []byte) {
	s := string(data)
	cmd, rest, ok := cutOsc(s)
	if !ok {
		return
	}
	switch cmd {
	case "0", "1", "2":
		h.SetTitle(rest)
	case "4":
		dispatchOscColor(rest, func(idx int, c RGBColor) { h.SetColor(idx, c) })
	case "7":
		h.SetWorkingDirectory(rest)
	case "8":
		dispatchHyperlink(h, rest)
	case "10":
		if c, ok := parseColorSpec(rest); ok {
			h.SetDynamicColor(10, c)
		}
	case "11":
		if c, ok := parseColorSpec(rest); ok {
			h.SetDynamicColor(11, c)
		}
	case "52":
		dispatchClipboard(h, rest)
	case "104":
		if rest == "" {
			h.ResetColor(-1)
			return
		}
		for _, f := range strings.Split(rest, ";") {
			if n, err := strconv.Atoi(f); err == nil {
				h.ResetColor(n)
			}
		}
	case "133":
		dispatchShellIntegration(h, rest)
	}
}

func cutOsc(s string) (cmd, rest string, ok bool) {
	i := strings.IndexByte(s, ';')
	if i < 0 {
		return s, "", s != ""
	}
	return s[:i], s[i+1:], true
}

func dispatchOscColor(rest string, set func(int, RGBColor)) {
	i := strings.IndexByte(rest, ';')
	if i < 0 {
		return
	}
	idx, err := strconv.Atoi(rest[:i])
	if err != nil {
		return
	}
	if c, ok := parseColorSpec(rest[i+1:]); ok {
		set(idx, c)
	}
}

// parseColorSpec understands the two OSC color spec forms xterm emits and
// accepts: "rgb:RRRR/GGGG/BBBB" and "#RRGGBB".
func parseColorSpec(spec string) (RGBColor, bool) {
	if strings.HasPrefix(spec, "rgb:") {
		parts := strings.Split(spec[4:], "/")
		if len(parts) != 3 {
			return RGBColor{}, false
		}
		var vals [3]uint8
		for i, p := range parts {
			if len(p) > 2 {
				p = p[:2]
			}
			n, err := strconv.ParseUint(p, 16, 8)
			if err != nil {
				return RGBColor{}, false
			}
			vals[i] = uint8(n)
		}
		return RGBColor{R: vals[0], G: vals[1], B: vals[2]}, true
	}
	if strings.HasPrefix(spec, "#") && len(spec) == 7 {
		n, err := strconv.ParseUint(spec[1:], 16, 32)
		if err != nil {
			return RGBColor{}, false
		}
		return RGBColor{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, true
	}
	return RGBColor{}, false
}

func dispatchHyperlink(h Handler, rest string) {
	i := strings.IndexByte(rest, ';')
	if i < 0 {
		h.SetHyperlink(nil)
		return
	}
	params, uri := rest[:i], rest[i+1:]
	if uri == "" {
		h.SetHyperlink(nil)
		return
	}
	id := ""
	for _, kv := range strings.Split(params, ":") {
		if strings.HasPrefix(kv, "id=") {
			id = kv[3:]
		}
	}
	h.SetHyperlink(&Hyperlink{ID: id, URI: uri})
}

func dispatchClipboard(h Handler, rest string) {
	i := strings.IndexByte(rest, ';')
	if i < 0 {
		return
	}
	selector, payload := rest[:i], rest[i+1:]
	clipboard := byte('c')
	if len(selector) > 0 {
		clipboard = selector[0]
	}
	if payload == "?" {
		h.ClipboardLoad(clipboard)
		return
	}
	h.ClipboardStore(clipboard, []byte(payload))
}

func dispatchShellIntegration(h Handler, rest string) {
	if rest == "" {
		return
	}
	switch rest[0] {
	case 'A':
		h.ShellIntegrationMark(PromptStart, -1)
	case 'B':
		h.ShellIntegrationMark(CommandStart, -1)
	case 'C':
		h.ShellIntegrationMark(CommandExecuted, -1)
	case 'D':
		exitCode := -1
		if len(rest) > 2 && rest[1] == ';' {
			if n, err := strconv.Atoi(rest[2:]); err == nil {
				exitCode = n
			}
		}
		h.ShellIntegrationMark(CommandFinished, exitCode)
	}
}
