package tinygfx

import (
	"fmt"
	"io"
	"strings"
)

// Bitmap is a non-owning, mutable view over a caller-provided byte buffer:
// pixel (x,y) occupies bit 7-(x%8) of byte y*Stride+x/8 (MSB-first within a
// byte). Bitmap is trivially copyable; copies share the same backing bytes.
//
// The caller owns the backing storage and is responsible for keeping it
// alive for as long as any Bitmap view refers to it.
type Bitmap struct {
	store  []byte
	width  uint16
	height uint16
	stride uint16
}

// RequiredStride returns ceil(width/8), the minimum bytes-per-row for a
// bitmap of the given pixel width.
func RequiredStride(width uint16) uint16 {
	if width > uint16(maxCoordinate) {
		panic("tinygfx: width exceeds coordinate range")
	}
	return (width + 7) / 8
}

// RequiredStoreSize returns the minimum backing-buffer size, in bytes, for
// a bitmap with the given dimensions and default stride.
func RequiredStoreSize(width, height uint16) int {
	if height > uint16(maxCoordinate) {
		panic("tinygfx: height exceeds coordinate range")
	}
	return int(RequiredStride(width)) * int(height)
}

// NewBitmap constructs a Bitmap over store using the default stride
// (RequiredStride(width)). It panics if store is too small or if width or
// height exceed the coordinate range — both are programmer errors, not
// something a caller should recover from at run time.
func NewBitmap(store []byte, width, height uint16) Bitmap {
	return NewBitmapStride(store, width, height, RequiredStride(width))
}

// NewBitmapStride is like NewBitmap but with an explicit stride, which must
// be at least RequiredStride(width).
func NewBitmapStride(store []byte, width, height, stride uint16) Bitmap {
	if stride < RequiredStride(width) {
		panic("tinygfx: stride too small for width")
	}
	if height > uint16(maxCoordinate) {
		panic("tinygfx: height exceeds coordinate range")
	}
	if len(store) < int(stride)*int(height) {
		panic(fmt.Sprintf("tinygfx: store has %d bytes, need at least %d", len(store), int(stride)*int(height)))
	}
	return Bitmap{store: store, width: width, height: height, stride: stride}
}

func (self Bitmap) Width() uint16  { return self.width }
func (self Bitmap) Height() uint16 { return self.height }
func (self Bitmap) Stride() uint16 { return self.stride }

// Bounds returns the bitmap's own pixel rect, top-left at the origin.
func (self Bitmap) Bounds() Rect {
	return Rect{Top: 0, Left: 0, Bottom: Coordinate(self.height), Right: Coordinate(self.width)}
}

// Store exposes the backing bytes, e.g. for a terminal/LCD driver to push
// out to real hardware.
func (self Bitmap) Store() []byte { return self.store }

func (self *Bitmap) actualStoreSize() int { return int(self.stride) * int(self.height) }

// Clear zeroes every byte of the bitmap's active rows (stride*height
// bytes); any padding past that within the backing store is untouched.
func (self *Bitmap) Clear() {
	store := self.store[:self.actualStoreSize()]
	for i := range store {
		store[i] = 0
	}
}

// Set sets or clears pixel p. It returns false (and does nothing) if p
// falls outside the bitmap's bounds.
func (self *Bitmap) Set(p Point, newState bool) bool {
	if p.X < 0 || p.Y < 0 {
		return false
	}
	x, y := uint(p.X), uint(p.Y)
	if x >= uint(self.width) || y >= uint(self.height) {
		return false
	}
	index := y*uint(self.stride) + x/8
	bit := byte(0x80) >> (x % 8)
	if newState {
		self.store[index] |= bit
	} else {
		self.store[index] &^= bit
	}
	return true
}

// Line draws a line from p0 to p1: horizontal and vertical lines dispatch
// to fast fixed-pattern paths, everything else uses integer Bresenham.
func (self *Bitmap) Line(p0, p1 Point) {
	if p0.Y == p1.Y {
		if p0.Y >= 0 && p0.Y < Coordinate(self.height) {
			self.lineHorizontal(max16(p0.X, 0), max16(p1.X, 0), uint16(p0.Y), 0xFF)
		}
		return
	}
	if p0.X == p1.X {
		if p0.X >= 0 && p0.X < Coordinate(self.width) {
			self.lineVertical(uint16(p0.X), max16(p0.Y, 0), max16(p1.Y, 0))
		}
		return
	}

	sx, sy := Coordinate(1), Coordinate(1)
	if p0.X >= p1.X {
		sx = -1
	}
	if p0.Y >= p1.Y {
		sy = -1
	}
	dx := absCoord(p1.X - p0.X)
	dy := -absCoord(p1.Y - p0.Y)
	err := dx + dy

	for {
		self.Set(p0, true)
		e2 := err * 2
		if e2 >= dy {
			if p0.X == p1.X {
				break
			}
			err += dy
			p0.X += sx
		}
		if e2 <= dx {
			if p0.Y == p1.Y {
				break
			}
			err += dx
			p0.Y += sy
		}
	}
}

func max16(a, b Coordinate) uint16 {
	if a < b {
		return uint16(b)
	}
	return uint16(a)
}

func absCoord(v Coordinate) Coordinate {
	if v < 0 {
		return -v
	}
	return v
}

// lineHorizontal draws row y from x0 to x1 (inclusive, after swapping so
// x0<=x1) filling with the single byte pattern.
func (self *Bitmap) lineHorizontal(x0, x1 uint16, y uint16, pattern byte) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x0 >= self.width || y >= self.height {
		return
	}
	if x1 >= self.width {
		x1 = self.width - 1
	}

	rowStart := int(y)*int(self.stride) + int(x0)/8
	maskLow := byte(0xFF) >> (x0 % 8)
	maskHigh := byte(0xFF) << (7 - (x1 % 8))

	bytes := int(x1/8) - int(x0/8)
	if bytes == 0 {
		mask := maskLow & maskHigh
		self.store[rowStart] = (self.store[rowStart] &^ mask) | (mask & pattern)
		return
	}

	self.store[rowStart] = (self.store[rowStart] &^ maskLow) | (maskLow & pattern)
	i := rowStart + 1
	for ; bytes > 1; bytes-- {
		self.store[i] = pattern
		i++
	}
	self.store[i] = (self.store[i] &^ maskHigh) | (maskHigh & pattern)
}

// lineVertical draws column x from y0 to y1 inclusive (after swapping).
func (self *Bitmap) lineVertical(x, y0, y1 uint16) {
	if x >= self.width {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y0 >= self.height {
		return
	}
	end := y1 + 1
	if end > self.height || end < y1 {
		end = self.height
	}

	index := int(y0)*int(self.stride) + int(x)/8
	bit := byte(0x80) >> (x % 8)
	for y := y0; y < end; y++ {
		self.store[index] |= bit
		index += int(self.stride)
	}
}

// FrameRect draws the outline of r: top, bottom, left and right edges,
// each inclusive of its endpoints. A no-op if r.Right<r.Left or
// r.Bottom<r.Top.
func (self *Bitmap) FrameRect(r Rect) {
	if r.Right < r.Left || r.Bottom < r.Top {
		return
	}
	self.Line(Point{X: r.Left, Y: r.Top}, Point{X: r.Right, Y: r.Top})
	self.Line(Point{X: r.Left, Y: r.Bottom}, Point{X: r.Right, Y: r.Bottom})
	self.Line(Point{X: r.Left, Y: r.Top}, Point{X: r.Left, Y: r.Bottom})
	self.Line(Point{X: r.Right, Y: r.Top}, Point{X: r.Right, Y: r.Bottom})
}

// PaintRect fills r with pat, tiled vertically every 8 rows. A no-op if r
// is degenerate or lies entirely above/left of the origin.
func (self *Bitmap) PaintRect(r Rect, pat Pattern) {
	if r.Bottom < r.Top || r.Right < r.Left || r.Bottom < 0 || r.Right < 0 {
		return
	}
	if r.Top >= 0 && uint16(r.Top) >= self.height {
		return
	}

	x0 := max16(r.Left, 0)
	x1 := max16(r.Right, 0)
	y0 := max16(r.Top, 0)
	y1 := uint16(r.Bottom)
	if y1 > self.height-1 {
		y1 = self.height - 1
	}
	for y := y0; y <= y1; y++ {
		self.lineHorizontal(x0, x1, y, pat[y%8])
	}
}

// Dump writes an ASCII rendering of the bitmap's raw bytes for tests and
// debugging: each byte becomes 8 '0'/'1' characters, a newline follows
// every Stride bytes, and a final row of underscores marks Width columns.
func (self Bitmap) Dump(w io.Writer) error {
	xb := 0
	for _, b := range self.store[:self.actualStoreSize()] {
		if _, err := fmt.Fprintf(w, "%08b", b); err != nil {
			return err
		}
		xb++
		if xb >= int(self.stride) {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			xb = 0
		}
	}
	_, err := fmt.Fprintln(w, strings.Repeat("_", int(self.width)))
	return err
}
