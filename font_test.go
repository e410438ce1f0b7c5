package tinygfx

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"testing"
)

type testGlyphSpec struct {
	codePoint rune
	width     uint16
	pixels    []byte
	kerning   []KerningPair
}

func buildFontBytes(t *testing.T, id, baseline, widest, heightBands, spacing uint8, glyphs []testGlyphSpec) []byte {
	var buf bytes.Buffer
	buf.Write(signature)

	gz := gzip.NewWriter(&buf)

	writeU8 := func(v uint8) { gz.Write([]byte{v}) }
	writeU16 := func(v uint16) {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], v)
		gz.Write(b[:])
	}
	writeU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		gz.Write(b[:])
	}

	writeU8(id)
	writeU8(baseline)
	writeU8(widest)
	writeU8(heightBands<<4 | spacing)
	writeU32(uint32(len(glyphs)))

	for _, g := range glyphs {
		writeU32(uint32(g.codePoint))
		writeU16(uint16(len(g.kerning)))
		writeU16(g.width)
		for _, k := range g.kerning {
			packed := uint32(k.Preceding)&0x1FFFFF | uint32(k.Distance)<<24
			writeU32(packed)
		}
		gz.Write(g.pixels)
	}

	if err := gz.Close(); err != nil {
		t.Fatalf("gzip.Close: %v", err)
	}
	return buf.Bytes()
}

func TestParseRoundTrip(t *testing.T) {
	data := buildFontBytes(t, 7, 6, 1, 1, 2, []testGlyphSpec{
		{codePoint: 'A', width: 1, pixels: []byte{0xFF}},
		{
			codePoint: 'B', width: 1, pixels: []byte{0x81},
			kerning: []KerningPair{{Preceding: 'A', Distance: 1}},
		},
	})

	font, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if font.ID() != 7 {
		t.Fatalf("expected id 7, got %d", font.ID())
	}
	if font.Baseline() != 6 {
		t.Fatalf("expected baseline 6, got %d", font.Baseline())
	}
	if font.Widest() != 1 {
		t.Fatalf("expected widest 1, got %d", font.Widest())
	}
	if font.Height() != 1 {
		t.Fatalf("expected height 1, got %d", font.Height())
	}
	if font.PixelHeight() != 8 {
		t.Fatalf("expected pixel height 8, got %d", font.PixelHeight())
	}
	if font.Spacing() != 2 {
		t.Fatalf("expected spacing 2, got %d", font.Spacing())
	}
	if font.CharWidth('A') != 1 {
		t.Fatalf("expected char width 1, got %d", font.CharWidth('A'))
	}

	gB := font.FindGlyph('B')
	if gB == nil || len(gB.Kerning) != 1 || gB.Kerning[0].Preceding != 'A' || gB.Kerning[0].Distance != 1 {
		t.Fatalf("expected B's kerning pair against A, got %+v", gB)
	}
}

func TestFindGlyphFallbackChain(t *testing.T) {
	data := buildFontBytes(t, 1, 0, 1, 1, 1, []testGlyphSpec{
		{codePoint: 'Z', width: 1, pixels: []byte{0x00}},
	})
	font, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	g := font.FindGlyph('Q')
	if g != font.glyphs['Z'] {
		t.Fatalf("expected unknown code point to fall back to the first-inserted glyph")
	}
}

func TestFindGlyphFallbackChainWithWhiteSquare(t *testing.T) {
	data := buildFontBytes(t, 1, 0, 1, 1, 1, []testGlyphSpec{
		{codePoint: 'Z', width: 1, pixels: []byte{0x00}},
		{codePoint: fallbackGlyph, width: 1, pixels: []byte{0xFF}},
	})
	font, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	g := font.FindGlyph('Q')
	if g != font.glyphs[fallbackGlyph] {
		t.Fatalf("expected unknown code point to fall back to the WHITE SQUARE glyph")
	}
}

func TestParseRejectsBadSignature(t *testing.T) {
	data := buildFontBytes(t, 1, 0, 1, 1, 1, []testGlyphSpec{
		{codePoint: 'A', width: 1, pixels: []byte{0x00}},
	})
	data[0] = 'x'

	if _, err := Parse(bytes.NewReader(data)); err == nil {
		t.Fatalf("expected an error for a corrupted signature")
	}
}

func TestValidateRejectsEmptyFont(t *testing.T) {
	font := &Font{height: 1, glyphs: map[rune]*Glyph{}}
	if err := font.Validate(); err == nil {
		t.Fatalf("expected an error for a font with no glyphs")
	}
}

func TestValidateRejectsMisshapenPixels(t *testing.T) {
	font := &Font{
		height:    2,
		firstCode: 'A',
		glyphs: map[rune]*Glyph{
			'A': {Pixels: []byte{0x00, 0x00, 0x00}},
		},
	}
	if err := font.Validate(); err == nil {
		t.Fatalf("expected an error for pixel data not a multiple of the row count")
	}
}

func TestValidateRejectsGlyphWiderThanWidest(t *testing.T) {
	font := &Font{
		widest:    1,
		height:    1,
		firstCode: 'A',
		glyphs: map[rune]*Glyph{
			'A': {Pixels: []byte{0xFF, 0xFF}}, // width 2, wider than widest (1)
		},
	}
	if err := font.Validate(); err == nil {
		t.Fatalf("expected an error for a glyph wider than the font's declared widest glyph")
	}
}

func TestParseRejectsGlyphWiderThanWidest(t *testing.T) {
	data := buildFontBytes(t, 1, 0, 1, 1, 1, []testGlyphSpec{
		{codePoint: 'A', width: 2, pixels: []byte{0xFF, 0xFF}},
	})
	if _, err := Parse(bytes.NewReader(data)); err == nil {
		t.Fatalf("expected Parse to reject a font whose glyph exceeds its declared widest width")
	}
}
