package types

// cp437 maps the non-ASCII attribute codes the game writes to Unicode.
var cp437 = map[Attribute]rune{
	218: '┌',
	191: '┐',
	192: '└',
	217: '┘',
	196: '─',
	179: '│',
	254: '■',
	219: '█',
}

// Glyph returns the rune a frontend should show for a and whether it has
// the marker bit set on top of a printable code (drawn in inverse video).
func Glyph(a Attribute) (r rune, inverse bool) {
	if r, ok := cp437[a]; ok {
		return r, false
	}
	if a&MarkerBit != 0 {
		base := a &^ MarkerBit
		if printable(base) {
			return rune(base), true
		}
		return '?', false
	}
	if printable(a) {
		return rune(a), false
	}
	return '?', false
}

// IsBorder reports whether a is one of the frame glyphs.
func IsBorder(a Attribute) bool {
	for _, b := range BoxChars {
		if a == b {
			return true
		}
	}
	return false
}

func printable(a Attribute) bool {
	return a >= 0x20 && a < 0x7f
}
