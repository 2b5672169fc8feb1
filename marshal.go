package wmint

import (
	"github.com/hillbig/rsdic"
	"github.com/ugorji/go/codec"
)

// MarshalBinary encodes the WaveletMatrix into a binary form and
// returns the result. Field order: size, sigma, tree (bitmap with its
// rank/select supports), maxLevel, zeroCnt, rankLevel.
func (wm *WaveletMatrix) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	if err = enc.Encode(wm.size); err != nil {
		return
	}
	if err = enc.Encode(wm.sigma); err != nil {
		return
	}
	if err = enc.Encode(wm.tree); err != nil {
		return
	}
	if err = enc.Encode(wm.maxLevel); err != nil {
		return
	}
	if err = enc.Encode(wm.zeroCnt); err != nil {
		return
	}
	err = enc.Encode(wm.rankLevel)
	return
}

// UnmarshalBinary decodes a WaveletMatrix from a binary form generated
// by MarshalBinary.
func (wm *WaveletMatrix) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	if err = dec.Decode(&wm.size); err != nil {
		return
	}
	if err = dec.Decode(&wm.sigma); err != nil {
		return
	}
	wm.tree = rsdic.New()
	if err = dec.Decode(wm.tree); err != nil {
		return
	}
	if err = dec.Decode(&wm.maxLevel); err != nil {
		return
	}
	if err = dec.Decode(&wm.zeroCnt); err != nil {
		return
	}
	err = dec.Decode(&wm.rankLevel)
	return
}
