package tinygfx

import "testing"

func TestRectWidthHeight(t *testing.T) {
	r := Rect{Top: 1, Left: 1, Bottom: 6, Right: 14}
	if r.Width() != 13 { t.Fatalf("expected width %d, got %d", 13, r.Width()) }
	if r.Height() != 5 { t.Fatalf("expected height %d, got %d", 5, r.Height()) }
	if r.Empty() { t.Fatalf("expected rect not to be empty") }

	empty := Rect{Top: 5, Left: 5, Bottom: 5, Right: 5}
	if !empty.Empty() { t.Fatalf("expected degenerate rect to be empty") }
	if empty.Width() != 0 { t.Fatalf("expected empty rect width 0, got %d", empty.Width()) }
}

func TestRectInset(t *testing.T) {
	r := Rect{Top: 0, Left: 0, Bottom: 10, Right: 10}
	inset := r.Inset(2, 3)
	if inset.Width() != 6 { t.Fatalf("expected width %d, got %d", 6, inset.Width()) }
	if inset.Height() != 4 { t.Fatalf("expected height %d, got %d", 4, inset.Height()) }

	collapsed := r.Inset(6, 1)
	if collapsed != (Rect{}) {
		t.Fatalf("expected collapsing inset to normalise to the zero rect, got %+v", collapsed)
	}
}

func TestTransferPrimitive(t *testing.T) {
	dest := byte(0b1111_0000)
	transfer(&dest, 0b0000_1111, 0b0000_1010, Replace)
	if dest != 0b1111_1010 {
		t.Fatalf("expected %08b after Replace, got %08b", 0b1111_1010, dest)
	}

	dest = 0b1111_0000
	transfer(&dest, 0b0000_1111, 0b0000_1010, Or)
	if dest != 0b1111_1010 {
		t.Fatalf("expected %08b after Or, got %08b", 0b1111_1010, dest)
	}
}
