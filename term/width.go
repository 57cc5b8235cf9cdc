package term

import (
	"image/color"

	"github.com/unilibs/uniwidth"
)

// runeWidth returns the display width: 2 for wide characters (CJK, emoji), 1 for normal, 0 for zero-width (combining marks, control chars).
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune returns true if the rune occupies 2 columns (CJK ideographs, fullwidth forms, emoji).
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// StringWidth returns the total display width of a string (sum of rune widths).
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}

// applyWideCellFlags tags or untags cell as the leading half of a wide
// character pair, keeping the wide/spacer pairing invariant centralized
// next to the width logic that decides it, rather than scattered across
// the input handler.
func applyWideCellFlags(cell *Cell, width int) {
	if width == 2 {
		cell.SetFlag(CellFlagWideChar)
	} else {
		cell.ClearFlag(CellFlagWideChar | CellFlagWideCharSpacer)
	}
}

// markSpacerCell resets spacer and tags it as the trailing half of a wide
// character pair, inheriting fg/bg so a selection or redraw over the pair
// sees consistent colors on both cells.
func markSpacerCell(spacer *Cell, fg, bg color.Color) {
	spacer.Reset()
	spacer.Fg = fg
	spacer.Bg = bg
	spacer.SetFlag(CellFlagWideCharSpacer)
}
