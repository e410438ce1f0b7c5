// Package plru implements a fixed-capacity, set-associative cache with
// Tree-PLRU (pseudo-least-recently-used) eviction: Sets independent sets,
// each holding Ways slots, both required to be powers of two.
//
// It is meant for small caches of objects that are cheap to store but
// comparatively expensive to construct — the motivating client is
// package glyphcache, which caches unpacked glyph bitmaps keyed by code
// point.
package plru

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// cacheSet holds the Ways tagged slots and PLRU state for one set. Tag and
// valid flag are kept as separate parallel slices rather than packed into
// a single word: the packed layout in the original design exists to
// support a SIMD equality-broadcast comparison, which Go has no portable
// way to express, so there is nothing to gain from it here — the
// externally visible contract (a linear scan over Ways tagged slots) is
// identical either way.
type cacheSet[K constraints.Unsigned, V any] struct {
	tags   []K
	valid  []bool
	values []V
	plru   tree
}

func newCacheSet[K constraints.Unsigned, V any](ways int) cacheSet[K, V] {
	return cacheSet[K, V]{
		tags:   make([]K, ways),
		valid:  make([]bool, ways),
		values: make([]V, ways),
		plru:   newTree(ways),
	}
}

// Cache is a Sets*Ways set-associative cache keyed by an unsigned integer
// type K, mapping to an arbitrary value type V. Construct with [New]; the
// zero value is not usable. A Cache must not be copied after first use.
type Cache[K constraints.Unsigned, V any] struct {
	sets    []cacheSet[K, V]
	ways    int
	setMask K
	setBits uint
}

// New builds a Cache with the given number of sets and ways per set, both
// of which must be powers of two. It panics otherwise — a non-power-of-two
// capacity parameter is a programmer error, not a runtime condition to
// recover from.
func New[K constraints.Unsigned, V any](numSets, ways int) *Cache[K, V] {
	if numSets <= 0 || bits.OnesCount(uint(numSets)) != 1 {
		panic(fmt.Sprintf("plru: Sets must be a power of two, got %d", numSets))
	}
	if ways <= 0 || bits.OnesCount(uint(ways)) != 1 {
		panic(fmt.Sprintf("plru: Ways must be a power of two, got %d", ways))
	}

	self := &Cache[K, V]{
		sets:    make([]cacheSet[K, V], numSets),
		ways:    ways,
		setMask: K(numSets - 1),
		setBits: uint(bits.Len(uint(numSets - 1))),
	}
	for i := range self.sets {
		self.sets[i] = newCacheSet[K, V](ways)
	}
	return self
}

// Sets returns the number of independent sets.
func (self *Cache[K, V]) Sets() int { return len(self.sets) }

// Ways returns the number of slots per set.
func (self *Cache[K, V]) Ways() int { return self.ways }

func (self *Cache[K, V]) setIndex(key K) int { return int(key & self.setMask) }
func (self *Cache[K, V]) tagOf(key K) K      { return key >> self.setBits }

func (self *Cache[K, V]) findInSet(set *cacheSet[K, V], tag K) int {
	for i := 0; i < self.ways; i++ {
		if set.valid[i] && set.tags[i] == tag {
			return i
		}
	}
	return -1
}

// Access looks up key. On a hit, if valid is non-nil and returns false for
// the cached value, miss is called to refresh it in place; otherwise the
// cached value is returned unchanged. On a miss, the pseudo-oldest slot in
// key's set is evicted and miss(key, globalIndex) populates its
// replacement, where globalIndex = set*Ways + way identifies the evicted
// slot uniquely across the whole cache (e.g. for mapping onto a private
// byte-arena slot). Either way, the slot is marked most-recently-used
// before Access returns a pointer to its value.
func (self *Cache[K, V]) Access(key K, miss func(key K, globalIndex int) V, valid func(V) bool) *V {
	setIndex := self.setIndex(key)
	set := &self.sets[setIndex]
	tag := self.tagOf(key)

	if i := self.findInSet(set, tag); i >= 0 {
		if valid != nil && !valid(set.values[i]) {
			set.values[i] = miss(key, setIndex*self.ways+i)
		}
		set.plru.touch(i)
		return &set.values[i]
	}

	victim := set.plru.oldest()
	set.values[victim] = miss(key, setIndex*self.ways+victim)
	set.tags[victim] = tag
	set.valid[victim] = true
	set.plru.touch(victim)
	return &set.values[victim]
}

// Contains reports whether key has a valid entry, without affecting PLRU
// ordering.
func (self *Cache[K, V]) Contains(key K) bool {
	set := &self.sets[self.setIndex(key)]
	return self.findInSet(set, self.tagOf(key)) >= 0
}

// Size returns the number of valid entries across every set.
func (self *Cache[K, V]) Size() int {
	var n int
	for i := range self.sets {
		for _, v := range self.sets[i].valid {
			if v {
				n++
			}
		}
	}
	return n
}

// Clear discards every entry and resets all PLRU state.
func (self *Cache[K, V]) Clear() {
	for i := range self.sets {
		set := &self.sets[i]
		var zero V
		for w := 0; w < self.ways; w++ {
			set.valid[w] = false
			set.tags[w] = 0
			set.values[w] = zero
		}
		set.plru.reset()
	}
}

// Each visits every valid (key, value) pair in set-major, way-minor
// order. The reconstructed key's low bits come from the set index it was
// found in, and its high bits from the stored tag, exactly reversing
// [Cache.Access]'s split of a key into set and tag.
func (self *Cache[K, V]) Each(fn func(key K, value V)) {
	for s := range self.sets {
		set := &self.sets[s]
		for w := 0; w < self.ways; w++ {
			if !set.valid[w] {
				continue
			}
			key := (set.tags[w] << self.setBits) | K(s)
			fn(key, set.values[w])
		}
	}
}
