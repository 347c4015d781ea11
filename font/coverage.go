package font

import "sync"

// coverage memoises cmap lookups using 2 bits per rune: (checked, has).
// Runes are grouped in 256-rune blocks allocated on first use, so sparse
// access across the Unicode range stays small.
//
// coverage is safe for concurrent use.
type coverage struct {
	mu     sync.RWMutex
	blocks map[uint32]*coverageBlock
}

// coverageBlock holds 256 runes in 512 bits.
type coverageBlock struct {
	bits [8]uint64
}

func newCoverage() *coverage {
	return &coverage{blocks: make(map[uint32]*coverageBlock)}
}

func coverageBit(r rune) (block, word, shift uint32) {
	u := uint32(r)
	bit := (u & 0xFF) * 2
	return u >> 8, bit / 64, bit % 64
}

// get returns (has, checked).
func (c *coverage) get(r rune) (has, checked bool) {
	blk, word, shift := coverageBit(r)

	c.mu.RLock()
	b, ok := c.blocks[blk]
	var w uint64
	if ok {
		w = b.bits[word]
	}
	c.mu.RUnlock()

	return (w>>(shift+1))&1 != 0, (w>>shift)&1 != 0
}

func (c *coverage) set(r rune, has bool) {
	blk, word, shift := coverageBit(r)

	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.blocks[blk]
	if !ok {
		b = &coverageBlock{}
		c.blocks[blk] = b
	}
	b.bits[word] |= 1 << shift
	if has {
		b.bits[word] |= 1 << (shift + 1)
	} else {
		b.bits[word] &^= 1 << (shift + 1)
	}
}

// lookup returns the memoised answer for r, calling query on a miss.
func (c *coverage) lookup(r rune, query func(rune) bool) bool {
	if has, checked := c.get(r); checked {
		return has
	}
	has := query(r)
	c.set(r, has)
	return has
}
