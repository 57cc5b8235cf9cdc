package term

import (
	"image/color"
	"testing"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r        rune
		expected int
	}{
		{'A', 1},
		{'a', 1},
		{'1', 1},
		{' ', 1},
		{'中', 2},
		{'日', 2},
		{'本', 2},
		{'한', 2},
		{'글', 2},
		{'가', 2},
		{'Ａ', 2}, // Fullwidth A
		{0, 0},
	}

	for _, tt := range tests {
		if got := runeWidth(tt.r); got != tt.expected {
			t.Errorf("runeWidth(%q) = %d, want %d", tt.r, got, tt.expected)
		}
	}
}

func TestIsWideRune(t *testing.T) {
	tests := []struct {
		r        rune
		expected bool
	}{
		{'A', false},
		{'a', false},
		{' ', false},
		{'中', true},
		{'日', true},
		{'한', true},
		{'가', true},
		{'Ａ', true}, // Fullwidth A
		{'0', false},
	}

	for _, tt := range tests {
		if got := isWideRune(tt.r); got != tt.expected {
			t.Errorf("isWideRune(%q) = %v, want %v", tt.r, got, tt.expected)
		}
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		s        string
		expected int
	}{
		{"Hello", 5},
		{"中文", 4},
		{"Hello中文", 9},
		{"", 0},
		{"한글", 4},
	}

	for _, tt := range tests {
		if got := StringWidth(tt.s); got != tt.expected {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.s, got, tt.expected)
		}
	}
}

func TestApplyWideCellFlags_Wide(t *testing.T) {
	cell := NewCell()
	cell.Char = '中'
	applyWideCellFlags(&cell, runeWidth(cell.Char))

	if !cell.HasFlag(CellFlagWideChar) {
		t.Error("applyWideCellFlags should set CellFlagWideChar for a width-2 rune")
	}
}

func TestApplyWideCellFlags_NarrowClearsStalePairing(t *testing.T) {
	cell := NewCell()
	cell.SetFlag(CellFlagWideChar | CellFlagWideCharSpacer)

	applyWideCellFlags(&cell, 1)

	if cell.HasFlag(CellFlagWideChar) || cell.HasFlag(CellFlagWideCharSpacer) {
		t.Error("overwriting a wide cell with a narrow rune must clear both pairing flags, or the stale spacer beside it misrenders")
	}
}

func TestMarkSpacerCell(t *testing.T) {
	spacer := NewCell()
	spacer.Char = 'X' // stale content from a previous write at this position
	fg, bg := color.RGBA{R: 1}, color.RGBA{B: 1}

	markSpacerCell(&spacer, fg, bg)

	if spacer.Char != ' ' {
		t.Errorf("markSpacerCell should reset the spacer's character, got %q", spacer.Char)
	}
	if !spacer.HasFlag(CellFlagWideCharSpacer) {
		t.Error("markSpacerCell should set CellFlagWideCharSpacer")
	}
	if spacer.Fg != fg || spacer.Bg != bg {
		t.Error("markSpacerCell should inherit the leading cell's colors so a selection spanning the pair looks consistent")
	}
}
