// Package wmint provides a wavelet matrix for integer sequences over
// large alphabets, supporting rank/select, 2d range search, range
// minimum and range-next-value queries for general arrays.
package wmint

import (
	"github.com/hillbig/rsdic"
)

// WaveletMatrix is the core of the library. It stores the sequence as a
// single bitmap of size*maxLevel bits: level k occupies the slice
// [k*size, (k+1)*size) and records bit (maxLevel-1-k) of each element in
// the stably partitioned order of that level. zeroCnt[k] counts the
// zeros of level k, rankLevel[k] caches rank1 at the start of level k;
// together they let every query recover per-node offsets without any
// per-node storage.
type WaveletMatrix struct {
	size      uint64
	sigma     uint64
	tree      *rsdic.RSDic
	maxLevel  uint32
	zeroCnt   []uint64
	rankLevel []uint64
}

// Num returns the number of values in T.
func (wm *WaveletMatrix) Num() uint64 {
	return wm.size
}

// Sigma returns the number of distinct values in T.
func (wm *WaveletMatrix) Sigma() uint64 {
	return wm.sigma
}

// MaxLevel returns the number of bit levels of the matrix.
func (wm *WaveletMatrix) MaxLevel() uint32 {
	return wm.maxLevel
}

// rank1 counts the ones in the bitmap prefix [0, i).
func (wm *WaveletMatrix) rank1(i uint64) uint64 {
	return wm.tree.Rank(i, true)
}

// select1 returns the position of the k-th one, k >= 1.
func (wm *WaveletMatrix) select1(k uint64) uint64 {
	return wm.tree.Select(k-1, true)
}

// select0 returns the position of the k-th zero, k >= 1.
func (wm *WaveletMatrix) select0(k uint64) uint64 {
	return wm.tree.Select(k-1, false)
}

// inAlphabet reports whether c is representable in maxLevel bits.
func (wm *WaveletMatrix) inAlphabet(c uint64) bool {
	return wm.maxLevel >= 64 || c < uint64(1)<<wm.maxLevel
}

// clampSym clamps a value-range upper bound to the largest symbol.
func (wm *WaveletMatrix) clampSym(vrb uint64) uint64 {
	if wm.maxLevel < 64 && vrb >= uint64(1)<<wm.maxLevel {
		return uint64(1)<<wm.maxLevel - 1
	}
	return vrb
}

// Lookup returns T[pos].
func (wm *WaveletMatrix) Lookup(pos uint64) uint64 {
	val := uint64(0)
	n := wm.size
	i := pos
	for k := uint32(0); k < wm.maxLevel; k++ {
		val <<= 1
		rankOnes := wm.rank1(i) - wm.rankLevel[k]
		if wm.tree.Bit(i) {
			i = uint64(k+1)*n + wm.zeroCnt[k] + rankOnes
			val |= 1
		} else {
			rankZeros := (i - uint64(k)*n) - rankOnes
			i = uint64(k+1)*n + rankZeros
		}
	}
	return val
}

// Rank returns the number of c (== val) in T[0...pos).
// Values outside the alphabet have rank 0.
func (wm *WaveletMatrix) Rank(pos uint64, val uint64) uint64 {
	if !wm.inAlphabet(val) {
		return 0
	}
	n := wm.size
	b := uint64(0)
	i := pos
	for k := uint32(0); k < wm.maxLevel && i > 0; k++ {
		rankB := wm.rank1(b)
		ones := wm.rank1(b+i) - rankB
		onesP := rankB - wm.rankLevel[k]
		if getMSB(val, k, wm.maxLevel) {
			i = ones
			b = uint64(k+1)*n + wm.zeroCnt[k] + onesP
		} else {
			i = i - ones
			b = uint64(k+1)*n + (b - uint64(k)*n - onesP)
		}
	}
	return i
}

// LookupAndRank returns T[pos] and Rank(pos, T[pos]).
// Faster than Lookup followed by Rank.
func (wm *WaveletMatrix) LookupAndRank(pos uint64) (uint64, uint64) {
	val := uint64(0)
	n := wm.size
	b := uint64(0)
	i := pos
	for k := uint32(0); k < wm.maxLevel; k++ {
		rankB := wm.rank1(b)
		ones := wm.rank1(b+i) - rankB
		onesP := rankB - wm.rankLevel[k]
		val <<= 1
		if wm.tree.Bit(b + i) {
			i = ones
			b = uint64(k+1)*n + wm.zeroCnt[k] + onesP
			val |= 1
		} else {
			i = i - ones
			b = uint64(k+1)*n + (b - uint64(k)*n - onesP)
		}
	}
	return val, i
}

// Select returns the position of the i-th occurrence of val, i >= 1.
// The caller must ensure 1 <= i <= Rank(Num(), val).
func (wm *WaveletMatrix) Select(i uint64, val uint64) uint64 {
	pathOff, pathRankOff := wm.selectPath(i, val)
	return wm.selectUp(i, val, pathOff, pathRankOff)
}

// SelectNext returns the position of the first occurrence of val at or
// after pos, together with r = Rank(pos, val). If no such occurrence is
// within the first nElems ones of val, it returns (0, 0).
func (wm *WaveletMatrix) SelectNext(pos uint64, val uint64, nElems uint64) (uint64, uint64) {
	pathOff, pathRankOff := wm.selectPath(pos, val)
	r := pathRankOff[wm.maxLevel]
	i := r + 1
	if i > nElems {
		return 0, 0
	}
	return wm.selectUp(i, val, pathOff, pathRankOff), r
}

// selectPath runs the downward phase of select: a Rank(i, val) descent
// recording the node start and its rank at every level. The final
// candidate count (= Rank(i, val)) is stashed in pathRankOff[maxLevel].
func (wm *WaveletMatrix) selectPath(i uint64, val uint64) ([]uint64, []uint64) {
	pathOff := make([]uint64, wm.maxLevel+1)
	pathRankOff := make([]uint64, wm.maxLevel+1)
	n := wm.size
	b := uint64(0)
	r := i
	for k := uint32(0); k < wm.maxLevel; k++ {
		rankB := wm.rank1(b)
		ones := wm.rank1(b+r) - rankB
		onesP := rankB - wm.rankLevel[k]
		if getMSB(val, k, wm.maxLevel) {
			r = ones
			b = uint64(k+1)*n + wm.zeroCnt[k] + onesP
		} else {
			r = r - ones
			b = uint64(k+1)*n + (b - uint64(k)*n - onesP)
		}
		pathOff[k+1] = b
		pathRankOff[k] = rankB
	}
	pathRankOff[wm.maxLevel] = r
	return pathOff, pathRankOff
}

// selectUp walks the recorded path bottom-up, turning the i-th
// occurrence within the leaf into its position in T.
func (wm *WaveletMatrix) selectUp(i uint64, val uint64, pathOff, pathRankOff []uint64) uint64 {
	for k := wm.maxLevel; k > 0; k-- {
		b := pathOff[k-1]
		rankB := pathRankOff[k-1]
		if val&(uint64(1)<<(wm.maxLevel-k)) != 0 {
			i = wm.select1(rankB+i) - b + 1
		} else {
			i = wm.select0(b-rankB+i) - b + 1
		}
	}
	return i - 1
}

func getMSB(x uint64, pos uint32, blen uint32) bool {
	return ((x >> (blen - pos - 1)) & 1) == 1
}

func getLSB(val, depth uint64) bool {
	return (val & (1 << depth)) != 0
}
