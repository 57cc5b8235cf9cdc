package vtparser

// Parser is a byte-at-a-time DEC ANSI / ECMA-48 state machine, extending
// the Ground/Escape/CSI/OSC states of original_source's parser.rs with the
// DCS and SOS/PM/APC states it stubs out, plus bounds on how much state a
// single sequence can accumulate before a misbehaving or malicious stream
// would otherwise grow it without limit.
//
// Parser never interprets a sequence itself — it emits Actions, which
// dispatch.go turns into calls against a Handler.
type Parser struct {
	state state

	params        []int
	paramsTrunc   bool
	intermediates []byte

	oscData []byte
	dcsData []byte

	utf8 utf8Decoder

	handler Handler
}

type state int

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
	stateSosPmApcString
)

const (
	maxParams  = 16
	maxPayload = 4096 // OSC / DCS / SOS/PM/APC payload cap, in bytes
)

// NewParser returns a Parser that dispatches interpreted sequences to h.
func NewParser(h Handler) *Parser {
	return &Parser{handler: h}
}

// Write feeds raw PTY output through the state machine. It never returns an
// error: malformed input is absorbed (replaced with U+FFFD, or ignored)
// rather than rejected, matching a real terminal's tolerance of garbage.
func (p *Parser) Write(data []byte) (int, error) {
	for _, b := range data {
		p.advance(b)
	}
	return len(data), nil
}

func (p *Parser) advance(b byte) {
	// UTF-8 continuation/lead bytes only matter in Ground — everywhere
	// else a raw byte >=0x80 is either a C1 control or garbage, handled
	// the same as in Ground's low range.
	if p.state == stateGround && b >= 0x80 {
		if r, ok := p.utf8.feed(b); ok {
			p.dispatch(Action{Kind: ActionPrint, Rune: r})
		}
		return
	}
	if p.utf8.pending() {
		// A C0/ESC byte arrived mid-sequence: abandon the partial rune.
		p.utf8.reset()
	}

	switch p.state {
	case stateGround:
		p.ground(b)
	case stateEscape:
		p.escape(b)
	case stateEscapeIntermediate:
		p.escapeIntermediate(b)
	case stateCsiEntry:
		p.csiEntry(b)
	case stateCsiParam:
		p.csiParam(b)
	case stateCsiIntermediate:
		p.csiIntermediate(b)
	case stateCsiIgnore:
		p.csiIgnore(b)
	case stateOscString:
		p.oscString(b)
	case stateDcsEntry:
		p.dcsEntry(b)
	case stateDcsParam:
		p.dcsParam(b)
	case stateDcsIntermediate:
		p.dcsIntermediate(b)
	case stateDcsPassthrough:
		p.dcsPassthrough(b)
	case stateDcsIgnore:
		p.dcsIgnore(b)
	case stateSosPmApcString:
		p.sosPmApcString(b)
	}
}

func (p *Parser) clear() {
	p.params = p.params[:0]
	p.paramsTrunc = false
	p.intermediates = p.intermediates[:0]
	p.oscData = p.oscData[:0]
	p.dcsData = p.dcsData[:0]
}

func (p *Parser) toGround(b byte) {
	p.clear()
	p.state = stateGround
	p.executeOrPrint(b)
}

func (p *Parser) executeOrPrint(b byte) {
	if isExecutable(b) {
		p.dispatch(Action{Kind: ActionExecute, Byte: b})
		return
	}
	if b >= 0x20 && b < 0x7f {
		p.dispatch(Action{Kind: ActionPrint, Rune: rune(b)})
	}
}

func isExecutable(b byte) bool {
	return b <= 0x1f || b == 0x7f
}

// isCancel reports whether b is CAN or SUB, which abort any escape or
// control sequence in progress and return the parser to Ground from
// anywhere except Ground itself.
func isCancel(b byte) bool {
	return b == 0x18 || b == 0x1a
}

// cancelToGround executes b and returns to Ground. Called from every
// non-Ground state on CAN/SUB instead of letting isExecutable's generic
// execute-and-stay handling apply.
func (p *Parser) cancelToGround(b byte) {
	p.dispatch(Action{Kind: ActionExecute, Byte: b})
	p.clear()
	p.state = stateGround
}

// --- Ground ---

func (p *Parser) ground(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
		p.state = stateEscape
	case isExecutable(b):
		p.dispatch(Action{Kind: ActionExecute, Byte: b})
	case b >= 0x20 && b < 0x7f:
		p.dispatch(Action{Kind: ActionPrint, Rune: rune(b)})
	}
}

// --- Escape ---

func (p *Parser) escape(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
	case isCancel(b):
		p.cancelToGround(b)
	case isExecutable(b) && b != 0x1b:
		p.dispatch(Action{Kind: ActionExecute, Byte: b})
	case b == '[':
		p.clear()
		p.state = stateCsiEntry
	case b == ']':
		p.clear()
		p.state = stateOscString
	case b == 'P':
		p.clear()
		p.state = stateDcsEntry
	case b == 'X' || b == '^' || b == '_':
		p.clear()
		p.appendIntermediate(b) // remembers which string type was introduced
		p.state = stateSosPmApcString
	case b >= 0x20 && b <= 0x2f:
		p.appendIntermediate(b)
		p.state = stateEscapeIntermediate
	case b >= 0x30 && b <= 0x7e:
		p.dispatch(Action{Kind: ActionEscDispatch, Final: b, Intermediates: p.intermediates})
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *Parser) escapeIntermediate(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
		p.state = stateEscape
	case isCancel(b):
		p.cancelToGround(b)
	case isExecutable(b):
		p.dispatch(Action{Kind: ActionExecute, Byte: b})
	case b >= 0x20 && b <= 0x2f:
		p.appendIntermediate(b)
	case b >= 0x30 && b <= 0x7e:
		p.dispatch(Action{Kind: ActionEscDispatch, Final: b, Intermediates: p.intermediates})
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

// --- CSI ---

func (p *Parser) csiEntry(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
		p.state = stateEscape
	case isCancel(b):
		p.cancelToGround(b)
	case isExecutable(b):
		p.dispatch(Action{Kind: ActionExecute, Byte: b})
	case b >= '0' && b <= '9':
		p.startParam(b)
		p.state = stateCsiParam
	case b == ';':
		p.startParam(0)
		p.appendParam(';')
		p.state = stateCsiParam
	case b == ':':
		p.state = stateCsiIgnore
	case b >= 0x3c && b <= 0x3f, b == '?' || b == '<' || b == '=' || b == '>':
		p.appendIntermediate(b)
		p.state = stateCsiParam
	case b >= 0x20 && b <= 0x2f:
		p.appendIntermediate(b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.finishCsi(b)
	default:
		p.state = stateGround
	}
}

func (p *Parser) csiParam(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
		p.state = stateEscape
	case isCancel(b):
		p.cancelToGround(b)
	case isExecutable(b):
		p.dispatch(Action{Kind: ActionExecute, Byte: b})
	case b >= '0' && b <= '9':
		p.appendParam(b)
	case b == ';':
		p.appendParam(';')
	case b == ':':
		p.state = stateCsiIgnore
	case b >= 0x20 && b <= 0x2f:
		p.appendIntermediate(b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.finishCsi(b)
	default:
		p.state = stateGround
	}
}

func (p *Parser) csiIntermediate(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
		p.state = stateEscape
	case isCancel(b):
		p.cancelToGround(b)
	case isExecutable(b):
		p.dispatch(Action{Kind: ActionExecute, Byte: b})
	case b >= 0x20 && b <= 0x2f:
		p.appendIntermediate(b)
	case b >= 0x40 && b <= 0x7e:
		p.finishCsi(b)
	default:
		p.state = stateGround
	}
}

func (p *Parser) csiIgnore(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
		p.state = stateEscape
	case isCancel(b):
		p.cancelToGround(b)
	case isExecutable(b):
		p.dispatch(Action{Kind: ActionExecute, Byte: b})
	case b >= 0x40 && b <= 0x7e:
		p.clear()
		p.state = stateGround
	default:
	}
}

func (p *Parser) finishCsi(final byte) {
	p.commitParam()
	p.dispatch(Action{
		Kind:          ActionCsiDispatch,
		Final:         final,
		Params:        append([]int(nil), p.params...),
		ParamsTrailer: p.paramsTrunc,
		Intermediates: append([]byte(nil), p.intermediates...),
	})
	p.clear()
	p.state = stateGround
}

// --- OSC ---

func (p *Parser) oscString(b byte) {
	switch {
	case b == 0x1b:
		// Peek for a following ']'-style ST (ESC \\); handled generically:
		// any ESC terminates the OSC string and re-enters Escape so a
		// subsequent '\\' (String Terminator) or new sequence is parsed.
		p.dispatchOsc()
		p.clear()
		p.state = stateEscape
	case b == 0x07:
		p.dispatchOsc()
		p.clear()
		p.state = stateGround
	case b == 0x18:
		p.clear()
		p.state = stateGround
	case isExecutable(b):
		// ignore other C0 controls inside OSC payloads
	default:
		if len(p.oscData) < maxPayload {
			p.oscData = append(p.oscData, b)
		}
	}
}

func (p *Parser) dispatchOsc() {
	p.dispatch(Action{Kind: ActionOscDispatch, Data: append([]byte(nil), p.oscData...)})
}

// --- DCS ---

func (p *Parser) dcsEntry(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
		p.state = stateEscape
	case isExecutable(b):
	case b >= '0' && b <= '9':
		p.startParam(b)
		p.state = stateDcsParam
	case b == ';':
		p.startParam(0)
		p.appendParam(';')
		p.state = stateDcsParam
	case b == ':':
		p.state = stateDcsIgnore
	case b >= 0x3c && b <= 0x3f:
		p.appendIntermediate(b)
		p.state = stateDcsParam
	case b >= 0x20 && b <= 0x2f:
		p.appendIntermediate(b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.enterDcsPassthrough(b)
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) dcsParam(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
		p.state = stateEscape
	case b >= '0' && b <= '9':
		p.appendParam(b)
	case b == ';':
		p.appendParam(';')
	case b == ':':
		p.state = stateDcsIgnore
	case b >= 0x20 && b <= 0x2f:
		p.appendIntermediate(b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.enterDcsPassthrough(b)
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) dcsIntermediate(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
		p.state = stateEscape
	case b >= 0x20 && b <= 0x2f:
		p.appendIntermediate(b)
	case b >= 0x40 && b <= 0x7e:
		p.enterDcsPassthrough(b)
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) enterDcsPassthrough(final byte) {
	p.commitParam()
	p.dispatch(Action{
		Kind:          ActionDcsHook,
		Final:         final,
		Params:        append([]int(nil), p.params...),
		ParamsTrailer: p.paramsTrunc,
		Intermediates: append([]byte(nil), p.intermediates...),
	})
	p.state = stateDcsPassthrough
}

func (p *Parser) dcsPassthrough(b byte) {
	switch {
	case b == 0x1b:
		p.dispatch(Action{Kind: ActionDcsUnhook})
		p.clear()
		p.state = stateEscape
	case b == 0x18:
		p.dispatch(Action{Kind: ActionDcsUnhook})
		p.clear()
		p.state = stateGround
	case isExecutable(b):
	default:
		if len(p.dcsData) < maxPayload {
			p.dcsData = append(p.dcsData, b)
			p.dispatch(Action{Kind: ActionDcsPut, Byte: b})
		}
	}
}

func (p *Parser) dcsIgnore(b byte) {
	switch {
	case b == 0x1b:
		p.clear()
		p.state = stateEscape
	case b == 0x18:
		p.clear()
		p.state = stateGround
	default:
	}
}

// --- SOS / PM / APC ---

func (p *Parser) sosPmApcString(b byte) {
	switch {
	case b == 0x1b:
		p.dispatchApc()
		p.clear()
		p.state = stateEscape
	case b == 0x18:
		p.clear()
		p.state = stateGround
	case isExecutable(b):
	default:
		if len(p.oscData) < maxPayload {
			p.oscData = append(p.oscData, b)
		}
	}
}

func (p *Parser) dispatchApc() {
	kind := ActionApcDispatch
	if len(p.intermediates) > 0 {
		switch p.intermediates[0] {
		case 'X':
			kind = ActionSosDispatch
		case '^':
			kind = ActionPmDispatch
		}
	}
	p.dispatch(Action{Kind: kind, Data: append([]byte(nil), p.oscData...)})
}

// --- param/intermediate accumulation ---

func (p *Parser) startParam(first byte) {
	p.params = append(p.params, 0)
	if first >= '0' && first <= '9' {
		p.params[len(p.params)-1] = int(first - '0')
	}
}

func (p *Parser) appendParam(b byte) {
	if b == ';' {
		if len(p.params) >= maxParams {
			p.paramsTrunc = true
			return
		}
		p.params = append(p.params, 0)
		return
	}
	if len(p.params) == 0 {
		p.params = append(p.params, 0)
	}
	if len(p.params) > maxParams {
		p.paramsTrunc = true
		return
	}
	idx := len(p.params) - 1
	v := p.params[idx]
	v = v*10 + int(b-'0')
	if v > 0xffff {
		v = 0xffff
	}
	p.params[idx] = v
}

func (p *Parser) commitParam() {
	if len(p.params) > maxParams {
		p.params = p.params[:maxParams]
		p.paramsTrunc = true
	}
}

func (p *Parser) appendIntermediate(b byte) {
	if len(p.intermediates) < 4 {
		p.intermediates = append(p.intermediates, b)
	}
}

func (p *Parser) dispatch(a Action) {
	dispatchAction(p.handler, a)
}
