package plru

// tree is the Ways-1 bit binary-tree PLRU state for one cache set. Leaf i
// corresponds to way i; internal node bits record which half of the
// sub-tree was most recently touched.
type tree struct {
	ways int
	bits []bool
}

func newTree(ways int) tree {
	return tree{ways: ways, bits: make([]bool, ways-1)}
}

// touch marks way as the most recently used member of the set: it walks
// from the root down a Ways-leaf binary search for way, and at each
// internal node records whether way fell in the left half.
func (self *tree) touch(way int) {
	node, start, end := 0, 0, self.ways
	for node < self.ways-1 {
		mid := (start + end) / 2
		isLess := way < mid
		if isLess {
			end = mid
		} else {
			start = mid
		}
		self.bits[node] = isLess
		if isLess {
			node = 2*node + 1
		} else {
			node = 2*node + 2
		}
	}
}

// oldest returns the pseudo-least-recently-used leaf index: starting at
// the root, it descends away from whichever half each node's bit says was
// most recently touched.
func (self *tree) oldest() int {
	node := 0
	for node < self.ways-1 {
		if self.bits[node] {
			node = 2*node + 2
		} else {
			node = 2*node + 1
		}
	}
	return node - (self.ways - 1)
}

func (self *tree) reset() {
	for i := range self.bits {
		self.bits[i] = false
	}
}
