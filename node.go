package wmint

// node is a transient view into a contiguous slice of one bitmap level:
// the conceptual wavelet-tree node holding exactly the symbols whose
// level-bit prefix is sym. Nodes are materialized during traversal and
// never stored.
type node struct {
	offset uint64
	size   uint64
	level  uint32
	sym    uint64
}

// rng is an inclusive local range [s, e] inside a node; empty ranges
// have s > e.
type rng struct {
	s, e uint64
}

func (r rng) empty() bool {
	return r.s > r.e
}

func (r rng) size() uint64 {
	return r.e - r.s + 1
}

// childRange normalizes empty children to {1, 0} so the s > e test
// holds even when sp == 0.
func childRange(sp, size uint64) rng {
	if size == 0 {
		return rng{1, 0}
	}
	return rng{sp, sp + size - 1}
}

func (wm *WaveletMatrix) root() node {
	return node{0, wm.size, 0, 0}
}

func (wm *WaveletMatrix) isLeaf(v node) bool {
	return v.level == wm.maxLevel
}

// expand returns the left and right child of an inner node v.
// Children of level-k nodes are not stored below their parent: all
// zero-children of level k occupy the first zeroCnt[k] positions of
// level k+1, followed by all one-children.
func (wm *WaveletMatrix) expand(v node) [2]node {
	rankB := wm.rank1(v.offset)
	return wm.expandWith(v, rankB)
}

func (wm *WaveletMatrix) expandWith(v node, rankB uint64) [2]node {
	n := wm.size
	ones := wm.rank1(v.offset+v.size) - rankB
	onesP := rankB - wm.rankLevel[v.level]
	left := node{
		offset: uint64(v.level+1)*n + (v.offset - uint64(v.level)*n) - onesP,
		size:   v.size - ones,
		level:  v.level + 1,
		sym:    v.sym << 1,
	}
	right := node{
		offset: uint64(v.level+1)*n + wm.zeroCnt[v.level] + onesP,
		size:   ones,
		level:  v.level + 1,
		sym:    v.sym<<1 | 1,
	}
	return [2]node{left, right}
}

// expandRange maps a local range of v into the local ranges of its two
// children.
func (wm *WaveletMatrix) expandRange(v node, r rng) [2]rng {
	return wm.expandRangeWith(v, r, wm.rank1(v.offset))
}

func (wm *WaveletMatrix) expandRangeWith(v node, r rng, vSpRank uint64) [2]rng {
	spRank := wm.rank1(v.offset + r.s)
	rightSize := wm.rank1(v.offset+r.e+1) - spRank
	leftSize := r.size() - rightSize
	rightSp := spRank - vSpRank
	leftSp := r.s - rightSp
	return [2]rng{childRange(leftSp, leftSize), childRange(rightSp, rightSize)}
}

// expandBoth expands the node and a range in one pass, sharing the
// rank1 at the node start. The rank is returned for callers that lift
// child-local positions back to v via select0/select1.
func (wm *WaveletMatrix) expandBoth(v node, r rng) ([2]node, [2]rng, uint64) {
	rankB := wm.rank1(v.offset)
	return wm.expandWith(v, rankB), wm.expandRangeWith(v, r, rankB), rankB
}

// symRange returns the exclusive upper bound and midpoint of the symbol
// interval [ilb, irb) covered by a node at the given level.
func (wm *WaveletMatrix) symRange(level uint32, ilb uint64) (irb, mid uint64) {
	irb = ilb + uint64(1)<<(wm.maxLevel-level)
	mid = (ilb + irb) >> 1
	return irb, mid
}
