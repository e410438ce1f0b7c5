// Package tinygfx renders monochrome text and geometric primitives into a
// caller-supplied 1-bit-per-pixel framebuffer. It targets small OLED/e-ink
// panels and terminal visualisers equally: after a [Bitmap] or a
// glyphcache.GlyphCache is constructed, no further heap growth, floating
// point, or file I/O is required to draw.
//
// The library decomposes into three pieces that compose through narrow
// interfaces:
//   - [Bitmap] is a non-owning view over caller-owned bytes that knows how
//     to set pixels, draw lines and rectangles, and blit another [Bitmap]
//     into itself.
//   - [Font] is a read-only glyph/kerning table, normally produced by
//     [Parse] from the binary format described in the package's tests.
//   - package glyphcache lazily unpacks a [Font]'s compact glyph encoding
//     into row-major bitmaps, cached in a fixed-capacity, set-associative
//     Tree-PLRU cache (package [github.com/tinygfx/tinygfx/plru]) backed by
//     a single pre-sized byte arena.
//
// [ScanString] drives both width measurement ([StringWidth]) and drawing
// (glyphcache.DrawString), so layout and rendering can never disagree about
// where a character lands.
package tinygfx
