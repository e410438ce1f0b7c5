// Package glyphcache lazily unpacks a font's compact column-major glyph
// encoding into row-major packed bitmaps, cached in a fixed-capacity
// Tree-PLRU cache (package plru) backed by a single pre-sized byte arena.
package glyphcache

import (
	"github.com/tinygfx/tinygfx"
	"github.com/tinygfx/tinygfx/plru"
)

// GlyphCache owns a contiguous byte arena, partitioned into capacity
// equal slots sized to hold the densest glyph across every font passed to
// [New]. Construct with [New]; the zero value is not usable.
type GlyphCache struct {
	cache    *plru.Cache[uint64, tinygfx.Bitmap]
	arena    []byte
	slotSize int
}

// New builds a GlyphCache for a Tree-PLRU cache of the given Sets and
// Ways (both must be powers of two — see package plru). fonts lists every
// font the cache will ever be asked to render; its arena slot size is
// sized to the densest glyph any of them can produce, computed once here
// so steady-state rendering never allocates again.
//
// Rendering glyphs from more than one font at a time is supported: the
// cache key folds in the font's id byte, so entries for distinct fonts
// never collide even if their code points do.
func New(sets, ways int, fonts ...*tinygfx.Font) *GlyphCache {
	if len(fonts) == 0 {
		panic("glyphcache: New requires at least one font to size its arena")
	}

	slotSize := 0
	for _, f := range fonts {
		if s := int(f.Stride()) * int(f.PixelHeight()); s > slotSize {
			slotSize = s
		}
	}

	return &GlyphCache{
		cache:    plru.New[uint64, tinygfx.Bitmap](sets, ways),
		arena:    make([]byte, sets*ways*slotSize),
		slotSize: slotSize,
	}
}

// cacheKey folds a font's id byte into the high bits of its code point so
// that entries for different fonts never alias each other.
func cacheKey(fontID uint8, cp rune) uint64 {
	return uint64(fontID)<<32 | uint64(uint32(cp))
}

// Get returns the cached, unpacked bitmap for cp in font, unpacking and
// inserting it (evicting the pseudo-oldest entry in its set if necessary)
// on a cache miss. The returned pointer is valid for as long as the
// GlyphCache is not cleared and the slot is not evicted.
func (self *GlyphCache) Get(font *tinygfx.Font, cp rune) *tinygfx.Bitmap {
	key := cacheKey(font.ID(), cp)
	return self.cache.Access(key, func(_ uint64, index int) tinygfx.Bitmap {
		return self.render(font, cp, index)
	}, nil)
}

func (self *GlyphCache) render(font *tinygfx.Font, cp rune, index int) tinygfx.Bitmap {
	slot := self.arena[index*self.slotSize : (index+1)*self.slotSize]
	g := font.FindGlyph(cp)
	width := font.GlyphWidth(g)
	bm := tinygfx.NewBitmapStride(slot, width, font.PixelHeight(), font.Stride())
	unpack(&bm, g, font.Height())
	return bm
}

// Clear discards every cached glyph, so later Gets unpack afresh into the
// existing arena. It does not resize the arena: Get for a font whose
// Stride()*PixelHeight() exceeds the slot size computed by New panics,
// with or without a Clear.
func (self *GlyphCache) Clear() {
	self.cache.Clear()
}

// unpack converts g's column-major pixel bytes (height bytes per column,
// bit 0 = topmost row of each 8-row band) into dest's row-major packed
// layout (bit 7 = leftmost column). dest must already be sized to g's
// pixel width and font pixel height.
func unpack(dest *tinygfx.Bitmap, g *tinygfx.Glyph, height uint8) {
	width := g.Width(height)
	pixelHeight := int(height) * 8
	stride := int(dest.Stride())
	store := dest.Store()

	wholeBytes := width &^ 7
	for y := 0; y < pixelHeight; y++ {
		var x uint16
		for ; x < wholeBytes; x += 8 {
			var pixels byte
			for bit := uint16(0); bit < 8; bit++ {
				srcIndex := int(x+bit)*int(height) + y/8
				if g.Pixels[srcIndex]&(1<<(uint(y)%8)) != 0 {
					pixels |= 0x80 >> bit
				}
			}
			store[y*stride+int(x)/8] = pixels
		}
		for ; x < width; x++ {
			srcIndex := int(x)*int(height) + y/8
			bitSet := g.Pixels[srcIndex]&(1<<(uint(y)%8)) != 0
			dest.Set(tinygfx.Point{X: tinygfx.Coordinate(x), Y: tinygfx.Coordinate(y)}, bitSet)
		}
	}
}

// DrawChar blits cp's cached glyph from font into bm at pos with Or
// transfer, short-circuiting if pos already lies beyond bm's bounds.
func DrawChar(bm *tinygfx.Bitmap, gc *GlyphCache, font *tinygfx.Font, cp rune, pos tinygfx.Point) {
	if pos.X > tinygfx.Coordinate(bm.Width()) || pos.Y > tinygfx.Coordinate(bm.Height()) {
		return
	}
	glyph := gc.Get(font, cp)
	bm.Copy(*glyph, pos, tinygfx.Or)
}

// DrawString draws s into bm starting at pos, advancing the pen by each
// code point's kerning-adjusted glyph width exactly as
// [tinygfx.ScanString] computes it, and returns the pen position after
// the last code point.
func DrawString(bm *tinygfx.Bitmap, gc *GlyphCache, font *tinygfx.Font, s []byte, pos tinygfx.Point) tinygfx.Point {
	finalX := tinygfx.ScanString(font, s, func(cp rune, x tinygfx.Coordinate) {
		DrawChar(bm, gc, font, cp, tinygfx.Point{X: pos.X + x, Y: pos.Y})
	})
	return tinygfx.Point{X: pos.X + finalX, Y: pos.Y}
}
