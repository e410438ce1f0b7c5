package tinygfx

import "io"
import "io/fs"
import "slices"
import "errors"

import "github.com/tinygfx/tinygfx/internal"

// signature is a fixed, ungzipped prefix identifying a tinygfx font file,
// read raw (not through the gzip reader) before anything else.
var signature = []byte{'t', 'g', 'f', 'x', '1'}

// ParseFS opens filename within filesys (e.g. an embed.FS) and parses it
// as a font.
func ParseFS(filesys fs.FS, filename string) (*Font, error) {
	file, err := filesys.Open(filename)
	if err != nil {
		return nil, err
	}
	font, err := Parse(file)
	if err != nil {
		return font, err
	}
	return font, file.Close()
}

// Parse reads a gzip-wrapped, bit-exact tinygfx font from reader: the raw
// signature "tgfx1", then, inside the gzip stream and all little-endian,
// u8 id, u8 baseline, u8 widest, u8 (height<<4 | spacing), u32 glyph
// count, and per glyph a u32 code point, u16 kerning-pair count, u16
// pixel width, one u32 per kerning pair (preceding code point in the low
// 21 bits, distance in the high 8) and height*width column-major pixel
// bytes. Data after the last glyph is rejected.
//
// Parse always validates the result (see [Font.Validate]) before
// returning it, so a caller never has to special-case an ill-formed font
// at first use.
func Parse(reader io.Reader) (*Font, error) {
	var buffer internal.ParsingBuffer
	buffer.FileType = "tinygfx font"
	buffer.InitBuffers()

	sig := make([]byte, len(signature))
	n, err := reader.Read(sig)
	if err != nil || n != len(sig) {
		return nil, buffer.NewError("failed to read file signature")
	}
	if !slices.Equal(sig, signature) {
		return nil, buffer.NewError("invalid signature")
	}

	if err := buffer.InitGzipReader(reader); err != nil {
		return nil, buffer.NewError("invalid gzip envelope: " + err.Error())
	}

	id, err := buffer.ReadUint8()
	if err != nil {
		return nil, err
	}
	baseline, err := buffer.ReadUint8()
	if err != nil {
		return nil, err
	}
	widest, err := buffer.ReadUint8()
	if err != nil {
		return nil, err
	}
	heightSpacing, err := buffer.ReadUint8()
	if err != nil {
		return nil, err
	}

	font := &Font{
		id:       id,
		baseline: baseline,
		widest:   widest,
		height:   heightSpacing >> 4,
		spacing:  heightSpacing & 0x0F,
	}

	glyphCount, err := buffer.ReadUint32()
	if err != nil {
		return nil, err
	}
	if glyphCount == 0 {
		return nil, buffer.NewError("font declares zero glyphs")
	}
	if glyphCount > internal.MaxGlyphs {
		return nil, buffer.NewError("font declares more glyphs than the format allows")
	}
	font.glyphs = make(map[rune]*Glyph, glyphCount)

	for i := uint32(0); i < glyphCount; i++ {
		g, cp, err := parseGlyph(&buffer, font.height)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			font.firstCode = cp
		}
		font.glyphs[cp] = g
	}

	if err := buffer.EnsureEOF(); err != nil {
		return nil, err
	}
	if err := font.Validate(); err != nil {
		return nil, err
	}
	return font, nil
}

// parseGlyph reads one (code_point, (kerning_pairs, pixel_bytes)) entry.
func parseGlyph(buffer *internal.ParsingBuffer, height uint8) (*Glyph, rune, error) {
	cpRaw, err := buffer.ReadUint32()
	if err != nil {
		return nil, 0, err
	}
	kerningCount, err := buffer.ReadUint16()
	if err != nil {
		return nil, 0, err
	}
	glyphWidth, err := buffer.ReadUint16()
	if err != nil {
		return nil, 0, err
	}

	kerning := make([]KerningPair, kerningCount)
	for k := range kerning {
		packed, err := buffer.ReadUint32()
		if err != nil {
			return nil, 0, err
		}
		kerning[k] = KerningPair{
			Preceding: rune(packed & 0x1FFFFF),
			Distance:  uint8(packed >> 24),
		}
	}

	pixelLen := int(height) * int(glyphWidth)
	start := buffer.Index
	if err := buffer.AdvanceBytes(pixelLen); err != nil {
		return nil, 0, err
	}
	pixels := make([]byte, pixelLen)
	copy(pixels, buffer.Bytes[start:buffer.Index])

	if len(kerning) > internal.MaxKerningPairsPerGlyph {
		return nil, 0, errors.New("tinygfx: glyph has an implausible number of kerning pairs")
	}
	return &Glyph{Kerning: kerning, Pixels: pixels}, rune(cpRaw), nil
}
