package wmint

// RangeMinQuery returns the minimum value in T[i..j], both bounds
// inclusive. The range must be non-empty and j < Num().
//
// Smaller values share longer zero prefixes, so descending into the
// leftmost non-empty child at every level spells out the minimum
// MSB-first.
func (wm *WaveletMatrix) RangeMinQuery(i, j uint64) uint64 {
	n := wm.size
	res := uint64(0)
	b := uint64(0)
	for depth := uint32(0); depth < wm.maxLevel; depth++ {
		rank0b := wm.rank1(b)
		rankBI := wm.rank1(b+i) - rank0b
		rankBJ := wm.rank1(b+j+1) - rank0b
		onesP := rank0b - wm.rankLevel[depth]
		il := i - rankBI
		jl := j - rankBJ
		ir := i - il
		jr := j - 1 - jl
		nl := jl - il + 1
		res <<= 1
		if nl == 0 {
			b = uint64(depth+1)*n + wm.zeroCnt[depth] + onesP
			res |= 1
			i, j = ir, jr
		} else {
			b = uint64(depth+1)*n + (b - uint64(depth)*n - onesP)
			i, j = il, jl
		}
	}
	return res
}

// RangeNextValue returns the smallest value >= x occurring in T[i..j],
// or 0 when there is none. A result of 0 is indistinguishable from a
// genuine occurrence of 0; use RangeNextValuePos when 0 is a valid
// symbol.
func (wm *WaveletMatrix) RangeNextValue(x, i, j uint64) uint64 {
	if !wm.inAlphabet(x) {
		return 0
	}
	if x == 0 {
		// Every value is >= 0: the answer is the range minimum.
		return wm.rangeNextValueMin(i, j, 0, 0, 0)
	}
	return wm.rangeNextValue(x, i, j, 0, 0, 0)
}

func (wm *WaveletMatrix) rangeNextValue(x, i, j uint64, depth uint32, b, res uint64) uint64 {
	if b+i > b+j {
		return 0
	}
	if depth == wm.maxLevel {
		return res
	}
	n := wm.size
	rank0b := wm.rank1(b)
	rankBI := wm.rank1(b+i) - rank0b
	rankBJ := wm.rank1(b+j+1) - rank0b
	onesP := rank0b - wm.rankLevel[depth]
	il := i - rankBI
	jl := j - rankBJ
	ir := i - il
	jr := j - 1 - jl
	res <<= 1
	if x&(uint64(1)<<(wm.maxLevel-1-depth)) != 0 {
		// Only the right subtree can hold values >= x.
		br := uint64(depth+1)*n + wm.zeroCnt[depth] + onesP
		return wm.rangeNextValue(x, ir, jr, depth+1, br, res|1)
	}
	bl := uint64(depth+1)*n + (b - uint64(depth)*n - onesP)
	if y := wm.rangeNextValue(x, il, jl, depth+1, bl, res); y != 0 {
		return y
	}
	// Nothing matched the prefix of x on the left; the answer, if any,
	// is the minimum of the right subtree.
	br := uint64(depth+1)*n + wm.zeroCnt[depth] + onesP
	return wm.rangeNextValueMin(ir, jr, depth+1, br, res|1)
}

// rangeNextValueMin is RangeMinQuery restricted to a subtree rooted at
// offset b, returning 0 on an empty range.
func (wm *WaveletMatrix) rangeNextValueMin(i, j uint64, depth uint32, b, res uint64) uint64 {
	if b+i > b+j {
		return 0
	}
	if depth == wm.maxLevel {
		return res
	}
	n := wm.size
	rank0b := wm.rank1(b)
	rankBI := wm.rank1(b+i) - rank0b
	rankBJ := wm.rank1(b+j+1) - rank0b
	onesP := rank0b - wm.rankLevel[depth]
	il := i - rankBI
	jl := j - rankBJ
	ir := i - il
	jr := j - 1 - jl
	nl := jl - il + 1
	res <<= 1
	if nl == 0 {
		br := uint64(depth+1)*n + wm.zeroCnt[depth] + onesP
		return wm.rangeNextValueMin(ir, jr, depth+1, br, res|1)
	}
	bl := uint64(depth+1)*n + (b - uint64(depth)*n - onesP)
	return wm.rangeNextValueMin(il, jl, depth+1, bl, res)
}

// RangeNextValuePos returns the smallest value >= x occurring in
// T[i..j] together with the leftmost position holding it. When there is
// no such value (or x is outside the alphabet) it returns (0, j+1).
func (wm *WaveletMatrix) RangeNextValuePos(x, i, j uint64) (uint64, uint64) {
	if !wm.inAlphabet(x) {
		return 0, j + 1
	}
	var pos uint64
	if x == 0 {
		// Every value is >= 0: the answer is the range minimum.
		val := wm.rangeNextValueMinPos(i, j, 0, 0, 0, &pos)
		return val, pos - 1
	}
	val := wm.rangeNextValuePos(x, i, j, 0, 0, 0, &pos)
	return val, pos - 1
}

func (wm *WaveletMatrix) rangeNextValuePos(x, i, j uint64, depth uint32, b, res uint64, pos *uint64) uint64 {
	if b+i > b+j {
		*pos = j + 2
		return 0
	}
	if depth == wm.maxLevel {
		*pos = i + 1
		return res
	}
	n := wm.size
	rank0b := wm.rank1(b)
	rankBI := wm.rank1(b+i) - rank0b
	rankBJ := wm.rank1(b+j+1) - rank0b
	onesP := rank0b - wm.rankLevel[depth]
	il := i - rankBI
	jl := j - rankBJ
	ir := i - il
	jr := j - 1 - jl
	res <<= 1
	antB := b
	if x&(uint64(1)<<(wm.maxLevel-1-depth)) != 0 {
		br := uint64(depth+1)*n + wm.zeroCnt[depth] + onesP
		val := wm.rangeNextValuePos(x, ir, jr, depth+1, br, res|1, pos)
		if val != 0 {
			*pos = wm.select1(rank0b+*pos) - antB + 1
		} else {
			*pos = j + 2
		}
		return val
	}
	bl := uint64(depth+1)*n + (b - uint64(depth)*n - onesP)
	if y := wm.rangeNextValuePos(x, il, jl, depth+1, bl, res, pos); y != 0 {
		*pos = wm.select0(*pos+antB-rank0b) - antB + 1
		return y
	}
	br := uint64(depth+1)*n + wm.zeroCnt[depth] + onesP
	val := wm.rangeNextValueMinPos(ir, jr, depth+1, br, res|1, pos)
	if val != 0 {
		*pos = wm.select1(*pos+rank0b) - antB + 1
	} else {
		*pos = j + 2
	}
	return val
}

func (wm *WaveletMatrix) rangeNextValueMinPos(i, j uint64, depth uint32, b, res uint64, pos *uint64) uint64 {
	if b+i > b+j {
		*pos = j + 2
		return 0
	}
	if depth == wm.maxLevel {
		*pos = i + 1
		return res
	}
	n := wm.size
	rank0b := wm.rank1(b)
	rankBI := wm.rank1(b+i) - rank0b
	rankBJ := wm.rank1(b+j+1) - rank0b
	onesP := rank0b - wm.rankLevel[depth]
	il := i - rankBI
	jl := j - rankBJ
	ir := i - il
	jr := j - 1 - jl
	nl := jl - il + 1
	res <<= 1
	antB := b
	if nl == 0 {
		br := uint64(depth+1)*n + wm.zeroCnt[depth] + onesP
		val := wm.rangeNextValueMinPos(ir, jr, depth+1, br, res|1, pos)
		*pos = wm.select1(rank0b+*pos) - antB + 1
		return val
	}
	bl := uint64(depth+1)*n + (b - uint64(depth)*n - onesP)
	val := wm.rangeNextValueMinPos(il, jl, depth+1, bl, res, pos)
	*pos = wm.select0(*pos+antB-rank0b) - antB + 1
	return val
}

// RelMinObjMaj returns the smallest index k >= lb with T[k] in
// [vlb, vrb], or Num()+1 when no such index exists. Any return value
// >= Num() means "none".
func (wm *WaveletMatrix) RelMinObjMaj(vlb, vrb, lb uint64) uint64 {
	vrb = wm.clampSym(vrb)
	if vlb > vrb || lb >= wm.size {
		return wm.size + 1
	}
	return wm.relMinObjMaj(wm.root(), vlb, vrb, rng{lb, wm.size - 1}, 0)
}

func (wm *WaveletMatrix) relMinObjMaj(v node, vlb, vrb uint64, r rng, ilb uint64) uint64 {
	none := wm.size + 1
	// The +1 keeps a right-restricted range whose end underflowed to
	// ^uint64(0) classified as empty.
	if r.s+1 > r.e+1 {
		return none
	}
	if wm.isLeaf(v) {
		return r.s
	}
	irb, mid := wm.symRange(v.level, ilb)
	if vlb <= ilb && irb-1 <= vrb {
		return r.s
	}
	cv, cr, rnk := wm.expandBoth(v, r)
	ans1, old1, ans2 := none, none, none
	if !cr[0].empty() && vlb < mid && mid > 0 {
		old1 = wm.relMinObjMaj(cv[0], vlb, min(vrb, mid-1), cr[0], ilb)
		if old1 != none {
			ans1 = wm.select0(v.offset-rnk+old1+1) - v.offset
		}
	}
	if !cr[1].empty() && vrb >= mid {
		if ans1 != none {
			// Only positions that can beat the left answer matter.
			lim := min(cr[1].e, cr[1].s+ans1-old1-1)
			ans2 = wm.relMinObjMaj(cv[1], max(mid, vlb), vrb, rng{cr[1].s, lim}, mid)
			if ans2 == none {
				return ans1
			}
			ans2 = wm.select1(rnk+ans2+1) - v.offset
		} else {
			ans2 = wm.relMinObjMaj(cv[1], max(mid, vlb), vrb, cr[1], mid)
			if ans2 != none {
				ans2 = wm.select1(rnk+ans2+1) - v.offset
			}
		}
	}
	return min(ans1, ans2)
}

// AllValuesInRange returns the values occurring in T[lb..rb] with
// multiplicity, in increasing value order.
func (wm *WaveletMatrix) AllValuesInRange(lb, rb uint64) []uint64 {
	return wm.AllValuesInRangeBounded(lb, rb, ^uint64(0))
}

// AllValuesInRangeBounded is AllValuesInRange stopping after bound
// results.
func (wm *WaveletMatrix) AllValuesInRangeBounded(lb, rb, bound uint64) []uint64 {
	var res []uint64
	if lb <= rb {
		var cnt uint64
		wm.allValuesInRange(wm.root(), rng{lb, rb}, 0, bound, &res, &cnt)
	}
	return res
}

func (wm *WaveletMatrix) allValuesInRange(v node, r rng, ilb, bound uint64, res *[]uint64, cnt *uint64) {
	if r.empty() || *cnt >= bound {
		return
	}
	if wm.isLeaf(v) {
		for t := uint64(0); t < r.size() && *cnt < bound; t++ {
			*res = append(*res, v.sym)
			*cnt++
		}
		return
	}
	_, mid := wm.symRange(v.level, ilb)
	cv := wm.expand(v)
	cr := wm.expandRange(v, r)
	if !cr[0].empty() && mid > 0 {
		wm.allValuesInRange(cv[0], cr[0], ilb, bound, res, cnt)
	}
	if !cr[1].empty() {
		wm.allValuesInRange(cv[1], cr[1], mid, bound, res, cnt)
	}
}
