package wmint

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Active-set traversals work against a caller-owned, heap-indexed array
// of mask words: the root of the conceptual tree is slot 1 and the
// children of slot p are 2p and 2p+1, so the array spans 2^(maxLevel+1)
// slots regardless of how many symbols are actually marked. The index
// itself is never mutated.

// ActiveValue pairs a symbol with the mask bits newly activated for it.
type ActiveValue[W constraints.Unsigned] struct {
	Sym  uint64
	Mask W
}

const maxActiveSetLevel = 28

// NewActiveSet allocates a heap-indexed mask array for a matrix of the
// given level depth. The array has 2^(maxLevel+1) slots, so deep
// alphabets are refused rather than silently allocating gigabytes.
func NewActiveSet[W constraints.Unsigned](maxLevel uint32) ([]W, error) {
	if maxLevel > maxActiveSetLevel {
		return nil, errors.Errorf("wmint: active set over %d levels needs %d slots", maxLevel, uint64(1)<<(maxLevel+1))
	}
	return make([]W, uint64(1)<<(maxLevel+1)), nil
}

// Mark ORs bc into every slot of bwt along the canonical path of symbol
// c, leaf included.
func Mark[W constraints.Unsigned](wm *WaveletMatrix, c uint64, bwt []W, bc W) {
	markPath(wm, c, func(pos uint64) {
		bwt[pos] |= bc
	})
}

// Unmark clears every slot of bwt along the canonical path of symbol c,
// leaf included.
func Unmark[W constraints.Unsigned](wm *WaveletMatrix, c uint64, bwt []W) {
	markPath(wm, c, func(pos uint64) {
		bwt[pos] = 0
	})
}

// markPath descends the same branches Rank(., c) takes, visiting the
// heap slot of every node on the path.
func markPath(wm *WaveletMatrix, c uint64, visit func(pos uint64)) {
	n := wm.size
	b := uint64(0)
	pos := uint64(1)
	for k := uint32(0); k < wm.maxLevel; k++ {
		rankB := wm.rank1(b)
		onesP := rankB - wm.rankLevel[k]
		visit(pos)
		if getMSB(c, k, wm.maxLevel) {
			b = uint64(k+1)*n + wm.zeroCnt[k] + onesP
			pos = 2*pos + 1
		} else {
			b = uint64(k+1)*n + (b - uint64(k)*n - onesP)
			pos = 2 * pos
		}
	}
	visit(pos)
}

// AllActivePValuesInRange enumerates the values of T[lb..rb] with
// multiplicity, pruning every subtree whose bwt slot shares no bits
// with d.
func AllActivePValuesInRange[W constraints.Unsigned](wm *WaveletMatrix, lb, rb uint64, bwt []W, d W) []uint64 {
	var res []uint64
	if lb <= rb {
		allActiveP(wm, wm.root(), rng{lb, rb}, 0, bwt, d, 1, &res)
	}
	return res
}

func allActiveP[W constraints.Unsigned](wm *WaveletMatrix, v node, r rng, ilb uint64, bwt []W, d W, pos uint64, res *[]uint64) {
	if bwt[pos]&d == 0 {
		return
	}
	if r.empty() {
		return
	}
	if wm.isLeaf(v) {
		for t := uint64(0); t < r.size(); t++ {
			*res = append(*res, v.sym)
		}
		return
	}
	_, mid := wm.symRange(v.level, ilb)
	cv := wm.expand(v)
	cr := wm.expandRange(v, r)
	if !cr[0].empty() && mid > 0 {
		allActiveP(wm, cv[0], cr[0], ilb, bwt, d, 2*pos, res)
	}
	if !cr[1].empty() {
		allActiveP(wm, cv[1], cr[1], mid, bwt, d, 2*pos+1, res)
	}
}

// AllActiveSValuesInRange enumerates, once per distinct value of
// T[lb..rb], the mask bits of d not yet subsumed by the dwt slot of the
// value's leaf, updating dwt as it goes: a subtree is pruned when its
// slot already subsumes d, a visited leaf absorbs the fresh bits, and
// every internal slot is rewritten as the AND of its children on the
// way back up.
func AllActiveSValuesInRange[W constraints.Unsigned](wm *WaveletMatrix, lb, rb uint64, dwt []W, d W) []ActiveValue[W] {
	var res []ActiveValue[W]
	if lb <= rb {
		allActiveS(wm, wm.root(), rng{lb, rb}, 0, dwt, d, 1, &res)
	}
	return res
}

func allActiveS[W constraints.Unsigned](wm *WaveletMatrix, v node, r rng, ilb uint64, dwt []W, d W, pos uint64, res *[]ActiveValue[W]) {
	if dwt[pos]|d == dwt[pos] {
		return
	}
	if r.empty() {
		return
	}
	if wm.isLeaf(v) {
		fresh := d &^ dwt[pos]
		dwt[pos] |= fresh
		*res = append(*res, ActiveValue[W]{Sym: v.sym, Mask: fresh})
		return
	}
	_, mid := wm.symRange(v.level, ilb)
	cv := wm.expand(v)
	cr := wm.expandRange(v, r)
	if !cr[0].empty() && mid > 0 {
		allActiveS(wm, cv[0], cr[0], ilb, dwt, d, 2*pos, res)
	}
	if !cr[1].empty() {
		allActiveS(wm, cv[1], cr[1], mid, dwt, d, 2*pos+1, res)
	}
	dwt[pos] = dwt[2*pos] & dwt[2*pos+1]
}
