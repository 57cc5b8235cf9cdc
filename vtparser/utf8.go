package vtparser

import "unicode/utf8"

// utf8Decoder accumulates UTF-8 continuation bytes one at a time and emits
// a complete rune (or U+FFFD on a malformed sequence) as soon as it can,
// the same incremental contract as original_source's Utf8Decoder
// (core/utf8.rs), reimplemented on top of unicode/utf8.DecodeRune since no
// third-party package in the retrieval pack has a grounded call site for
// this (see DESIGN.md).
type utf8Decoder struct {
	buf [utf8.UTFMax]byte
	n   int
}

func (d *utf8Decoder) pending() bool {
	return d.n > 0
}

func (d *utf8Decoder) reset() {
	d.n = 0
}

// leadByteLen returns the total encoded length of a UTF-8 sequence
// starting with b, or 0/1 if b cannot start one (a continuation byte, or
// a byte outside any valid lead-byte range).
func leadByteLen(b byte) int {
	switch {
	case b&0x80 == 0:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}

// feed consumes one byte of a (possibly multi-byte) UTF-8 sequence. It
// returns a rune and ok=true once a full code point (valid or replacement)
// has been assembled.
func (d *utf8Decoder) feed(b byte) (rune, bool) {
	if d.n == 0 {
		want := leadByteLen(b)
		if want < 2 {
			// Invalid lead byte (a continuation byte with no lead, or an
			// otherwise malformed single byte >=0x80).
			return utf8.RuneError, true
		}
		d.buf[0] = b
		d.n = 1
		return 0, false
	}

	if b&0xc0 != 0x80 {
		// Expected a continuation byte, got something else: the pending
		// sequence was truncated. Discard it and reprocess b as if it
		// were the start of a new sequence.
		d.n = 0
		return d.feed(b)
	}

	d.buf[d.n] = b
	d.n++

	want := leadByteLen(d.buf[0])
	if d.n < want {
		return 0, false
	}

	r, size := utf8.DecodeRune(d.buf[:d.n])
	d.n = 0
	if size != want || r == utf8.RuneError {
		return utf8.RuneError, true
	}
	return r, true
}
