package wmint

// Range represents a range [Bpos, Epos)
// only valid for Bpos <= Epos
type Range struct {
	Bpos uint64
	Epos uint64
}

const (
	// OpEqual is used in RangedRankOp()
	OpEqual = iota
	// OpLessThan is used in RangedRankOp()
	OpLessThan
	// OpMoreThan is used in RangedRankOp()
	OpMoreThan
	// OpMax is upper boundary for OpXXXX constants
	OpMax
)

// levelOnes counts the ones of level k strictly before the level-local
// position pos.
func (wm *WaveletMatrix) levelOnes(k uint32, pos uint64) uint64 {
	return wm.rank1(uint64(k)*wm.size+pos) - wm.rankLevel[k]
}

// RangedRankOp returns the number of c that satisfies 'c op val'
// in T[ranze.Bpos, ranze.Epos).
// The op should be one of {OpEqual, OpLessThan, OpMoreThan}.
func (wm *WaveletMatrix) RangedRankOp(ranze Range, val uint64, op int) uint64 {
	rankLessThan := uint64(0)
	rankMoreThan := uint64(0)
	for k := uint32(0); k < wm.maxLevel; k++ {
		bit := getMSB(val, k, wm.maxLevel)
		onesB := wm.levelOnes(k, ranze.Bpos)
		onesE := wm.levelOnes(k, ranze.Epos)
		if bit {
			if op == OpLessThan {
				rankLessThan += (ranze.Epos - onesE) - (ranze.Bpos - onesB)
			}
			ranze.Bpos = wm.zeroCnt[k] + onesB
			ranze.Epos = wm.zeroCnt[k] + onesE
		} else {
			if op == OpMoreThan {
				rankMoreThan += onesE - onesB
			}
			ranze.Bpos = ranze.Bpos - onesB
			ranze.Epos = ranze.Epos - onesE
		}
	}
	switch op {
	case OpEqual:
		return ranze.Epos - ranze.Bpos
	case OpLessThan:
		return rankLessThan
	case OpMoreThan:
		return rankMoreThan
	default:
		return 0
	}
}

// RankLessThan returns the number of c (< val) in T[0...pos)
func (wm *WaveletMatrix) RankLessThan(pos uint64, val uint64) uint64 {
	return wm.RangedRankOp(Range{0, pos}, val, OpLessThan)
}

// RankMoreThan returns the number of c (> val) in T[0...pos)
func (wm *WaveletMatrix) RankMoreThan(pos uint64, val uint64) uint64 {
	return wm.RangedRankOp(Range{0, pos}, val, OpMoreThan)
}

// RangedRankRange searches T[ranze.Bpos, ranze.Epos) and
// returns the number of c that falls within valueRange
// i.e. [valueRange.Bpos, valueRange.Epos).
func (wm *WaveletMatrix) RangedRankRange(ranze Range, valueRange Range) uint64 {
	end := wm.RangedRankOp(ranze, valueRange.Epos, OpLessThan)
	beg := wm.RangedRankOp(ranze, valueRange.Bpos, OpLessThan)
	return end - beg
}

func (wm *WaveletMatrix) rangedRankIgnoreLSBsHelper(ranze Range, val, ignoreBits uint64) Range {
	for k := uint32(0); uint64(k)+ignoreBits < uint64(wm.maxLevel); k++ {
		onesB := wm.levelOnes(k, ranze.Bpos)
		onesE := wm.levelOnes(k, ranze.Epos)
		if getMSB(val, k, wm.maxLevel) {
			ranze.Bpos = wm.zeroCnt[k] + onesB
			ranze.Epos = wm.zeroCnt[k] + onesE
		} else {
			ranze.Bpos = ranze.Bpos - onesB
			ranze.Epos = ranze.Epos - onesE
		}
	}
	return ranze
}

// RangedRankIgnoreLSBs searches T[ranze.Bpos, ranze.Epos) and
// returns the number of c that matches the val.
//
// If ignoreBits > 0, ignoreBits-bit portion from LSB are not considered
// for match.
// This behavior is useful for IP address prefix search such as 192.168.10.0/24
// (ignoreBits in this case, is 8).
func (wm *WaveletMatrix) RangedRankIgnoreLSBs(ranze Range, val, ignoreBits uint64) uint64 {
	r := wm.rangedRankIgnoreLSBsHelper(ranze, val, ignoreBits)
	return r.Epos - r.Bpos
}

// rangedSelectIgnoreLSBsHelper lifts a level-local position back to
// level 0 along the path spelled by the low bits of val.
func (wm *WaveletMatrix) rangedSelectIgnoreLSBsHelper(pos, val, ignoreBits uint64) uint64 {
	for depth := ignoreBits; depth < uint64(wm.maxLevel); depth++ {
		k := wm.maxLevel - uint32(depth) - 1
		base := uint64(k) * wm.size
		if getLSB(val, depth) {
			pos = wm.tree.Select(wm.rankLevel[k]+(pos-wm.zeroCnt[k]), true) - base
		} else {
			zerosBefore := base - wm.rankLevel[k]
			pos = wm.tree.Select(zerosBefore+pos, false) - base
		}
	}
	return pos
}

// RangedSelectIgnoreLSBs searches T[ranze.Bpos, ranze.Epos) and
// returns the position of (rank+1)'th c that matches the val.
// If not found, returns ranze.Epos.
//
// If ignoreBits > 0, ignoreBits-bit portion from LSB are not considered
// for match.
func (wm *WaveletMatrix) RangedSelectIgnoreLSBs(ranze Range, rank, val, ignoreBits uint64) uint64 {
	r := wm.rangedRankIgnoreLSBsHelper(ranze, val, ignoreBits)
	pos := r.Bpos + rank
	if r.Epos <= pos {
		return ranze.Epos
	}
	return wm.rangedSelectIgnoreLSBsHelper(pos, val, ignoreBits)
}

// RangedSelect returns the position of the (rank+1)-th val in
// T[ranze.Bpos, ranze.Epos), or ranze.Epos if not found.
func (wm *WaveletMatrix) RangedSelect(ranze Range, rank uint64, val uint64) uint64 {
	return wm.RangedSelectIgnoreLSBs(ranze, rank, val, 0)
}

// Quantile returns the (k+1)-th smallest value in
// T[ranze.Bpos, ranze.Epos).
func (wm *WaveletMatrix) Quantile(ranze Range, k uint64) uint64 {
	val := uint64(0)
	bpos, epos := ranze.Bpos, ranze.Epos
	for depth := uint32(0); depth < wm.maxLevel; depth++ {
		val <<= 1
		zerosB := bpos - wm.levelOnes(depth, bpos)
		zerosE := epos - wm.levelOnes(depth, epos)
		nz := zerosE - zerosB
		if k < nz {
			bpos = zerosB
			epos = zerosE
		} else {
			k -= nz
			val |= 1
			bpos = wm.zeroCnt[depth] + (bpos - zerosB)
			epos = wm.zeroCnt[depth] + (epos - zerosE)
		}
	}
	return val
}

// Intersect returns the values that occur in at least k of the given
// ranges, in increasing order.
func (wm *WaveletMatrix) Intersect(ranges []Range, k int) []uint64 {
	return wm.intersectHelper(ranges, k, 0, 0)
}

func (wm *WaveletMatrix) intersectHelper(ranges []Range, k int, depth uint32, prefix uint64) []uint64 {
	if depth == wm.maxLevel {
		return []uint64{prefix}
	}
	zeroRanges := make([]Range, 0)
	oneRanges := make([]Range, 0)
	for _, ranze := range ranges {
		onesB := wm.levelOnes(depth, ranze.Bpos)
		onesE := wm.levelOnes(depth, ranze.Epos)
		zerosB := ranze.Bpos - onesB
		zerosE := ranze.Epos - onesE
		if zerosE-zerosB > 0 {
			zeroRanges = append(zeroRanges, Range{zerosB, zerosE})
		}
		if onesE-onesB > 0 {
			oneRanges = append(oneRanges, Range{wm.zeroCnt[depth] + onesB, wm.zeroCnt[depth] + onesE})
		}
	}
	ret := make([]uint64, 0)
	if len(zeroRanges) >= k {
		ret = append(ret, wm.intersectHelper(zeroRanges, k, depth+1, prefix<<1)...)
	}
	if len(oneRanges) >= k {
		ret = append(ret, wm.intersectHelper(oneRanges, k, depth+1, (prefix<<1)|1)...)
	}
	return ret
}
