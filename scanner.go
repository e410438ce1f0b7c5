package tinygfx

import "unicode/utf8"

// ScanString decodes s as UTF-8, one code point at a time, and for each
// one invokes draw(cp, x) with the pen position that code point should be
// drawn at, then advances the pen by that code point's glyph width (after
// first applying any kerning adjustment against the previous code point).
// It returns the final pen x, i.e. the total advance.
//
// Malformed UTF-8 sequences decode to the replacement character U+FFFD
// (utf8.DecodeRune's own behaviour) rather than aborting the scan.
//
// Both [StringWidth] and glyphcache.DrawString are built directly on top
// of ScanString, so measurement and rendering can never disagree about
// where a character lands.
func ScanString(font *Font, s []byte, draw func(cp rune, x Coordinate)) Coordinate {
	var x Coordinate
	havePrev := false
	var prev rune

	for len(s) > 0 {
		cp, size := utf8.DecodeRune(s)
		s = s[size:]

		g := font.FindGlyph(cp)
		if havePrev {
			x += Coordinate(font.spacing) - Coordinate(kerningDistance(g, prev))
		}
		if draw != nil {
			draw(cp, x)
		}
		x += Coordinate(font.GlyphWidth(g))

		prev = cp
		havePrev = true
	}

	return x
}

// kerningDistance returns the distance of the first kerning pair in g
// whose Preceding matches prev, or 0 if there is none.
func kerningDistance(g *Glyph, prev rune) uint8 {
	for _, pair := range g.Kerning {
		if pair.Preceding == prev {
			return pair.Distance
		}
	}
	return 0
}

// StringWidth returns the total pen advance ScanString would produce for
// s, without invoking any draw callback.
func StringWidth(font *Font, s []byte) Coordinate {
	return ScanString(font, s, nil)
}
