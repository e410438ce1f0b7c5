package tinygfx

import "fmt"

// KerningPair is a single kerning adjustment: when the glyph carrying this
// pair is drawn right after code point Preceding, Distance is subtracted
// from the font's default spacing.
type KerningPair struct {
	Preceding rune
	Distance  uint8
}

// Glyph is one font entry: its kerning table, plus column-major pixel
// bytes (height bytes per column, bit 0 = topmost row of each 8-row band).
type Glyph struct {
	Kerning []KerningPair
	Pixels  []byte
}

// Width returns the glyph's pixel width, derived from the length of its
// packed pixel slice (bytes_in_column_slice / height).
func (self *Glyph) Width(height uint8) uint16 {
	if height == 0 {
		return 0
	}
	return uint16(len(self.Pixels) / int(height))
}

// fallbackGlyph is the code point used as the missing-glyph placeholder:
// WHITE SQUARE.
const fallbackGlyph rune = 0x25A1

// Font is an immutable, read-only glyph/kerning table, normally produced
// by [Parse]. Fonts are never mutated after construction and are safe for
// concurrent read-only use.
type Font struct {
	id       uint8
	baseline uint8
	widest   uint8
	height   uint8 // number of 8-row bands; pixel height is height*8
	spacing  uint8

	glyphs    map[rune]*Glyph
	firstCode rune // code point of the first glyph inserted, the last-resort fallback
}

func (self *Font) ID() uint8       { return self.id }
func (self *Font) Baseline() uint8 { return self.baseline }
func (self *Font) Widest() uint8   { return self.widest }
func (self *Font) Spacing() uint8  { return self.spacing }

// Height returns the font's row count in 8-pixel bands; PixelHeight is
// Height()*8.
func (self *Font) Height() uint8       { return self.height }
func (self *Font) PixelHeight() uint16 { return uint16(self.height) * 8 }

// Stride returns ceil(widest/8), the byte width of the densest glyph this
// font can produce. Used to size glyph cache arena slots.
func (self *Font) Stride() uint16 {
	return RequiredStride(uint16(self.widest))
}

// FindGlyph resolves cp to a glyph following the fallback chain: an exact
// match, then the WHITE SQUARE placeholder, then the first glyph recorded
// in the font (the last-resort sentinel, which Parse guarantees exists).
func (self *Font) FindGlyph(cp rune) *Glyph {
	if g, ok := self.glyphs[cp]; ok {
		return g
	}
	if g, ok := self.glyphs[fallbackGlyph]; ok {
		return g
	}
	return self.glyphs[self.firstCode]
}

// GlyphWidth returns g's pixel width for this font's row count, or 0 if g
// is nil.
func (self *Font) GlyphWidth(g *Glyph) uint16 {
	if g == nil {
		return 0
	}
	return g.Width(self.height)
}

// CharWidth looks up cp (through the usual fallback chain) and returns its
// pixel width in one call.
func (self *Font) CharWidth(cp rune) uint16 {
	return self.GlyphWidth(self.FindGlyph(cp))
}

// Validate checks the structural invariants [Parse] relies on: at least
// one glyph, a non-zero row count, a last-resort fallback glyph, and
// pixel slices whose length is an exact multiple of the row count. It is
// exported so a caller assembling a Font by hand, rather than through
// Parse, can check it before use.
func (self *Font) Validate() error {
	if len(self.glyphs) == 0 {
		return fmt.Errorf("tinygfx: font has no glyphs")
	}
	if self.height == 0 {
		return fmt.Errorf("tinygfx: font height is zero")
	}
	if _, ok := self.glyphs[self.firstCode]; !ok {
		return fmt.Errorf("tinygfx: font's last-resort fallback glyph is missing")
	}
	for cp, g := range self.glyphs {
		if len(g.Pixels)%int(self.height) != 0 {
			return fmt.Errorf("tinygfx: glyph U+%04X pixel data is not a multiple of the font's row count", cp)
		}
		if g.Width(self.height) > 0xFF {
			return fmt.Errorf("tinygfx: glyph U+%04X is wider than a byte can address", cp)
		}
		if g.Width(self.height) > uint16(self.widest) {
			return fmt.Errorf("tinygfx: glyph U+%04X is wider than the font's declared widest glyph", cp)
		}
	}
	return nil
}
