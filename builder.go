package wmint

import (
	"bufio"
	"encoding/binary"
	"io"
	"math/bits"
	"os"

	"github.com/hillbig/rsdic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrShortInput is returned by Build when the requested prefix length
// exceeds the input length.
var ErrShortInput = errors.New("wmint: input shorter than requested prefix")

// IntSource is a streamable integer input for construction.
type IntSource interface {
	Len() uint64
	Get(i uint64) uint64
	// Width is a fixed upper bound on the bits per element.
	Width() uint8
}

// SliceSource adapts a []uint64 to IntSource.
type SliceSource []uint64

func (s SliceSource) Len() uint64 {
	return uint64(len(s))
}

func (s SliceSource) Get(i uint64) uint64 {
	return s[i]
}

func (s SliceSource) Width() uint8 {
	return 64
}

// BuildOption configures construction.
type BuildOption func(*buildConfig)

type buildConfig struct {
	scratchDir string
	spill      bool
	logger     zerolog.Logger
}

// WithScratchDir spills the per-level ones buffer to a scratch file in
// dir instead of holding it in memory. Scratch files are removed on
// success; on failure they are left for the caller to clean up.
func WithScratchDir(dir string) BuildOption {
	return func(c *buildConfig) {
		c.scratchDir = dir
		c.spill = true
	}
}

// WithLogger enables debug-level construction progress logging.
func WithLogger(logger zerolog.Logger) BuildOption {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

// Builder builds a WaveletMatrix from an integer array.
// A user calls PushBack()s followed by Build().
type Builder struct {
	vals []uint64
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// PushBack appends val to the sequence to be indexed.
func (b *Builder) PushBack(val uint64) {
	b.vals = append(b.vals, val)
}

// Build indexes everything pushed so far. The number of bit levels is
// derived from the largest pushed value.
func (b *Builder) Build() (*WaveletMatrix, error) {
	return Build(SliceSource(b.vals), uint64(len(b.vals)), 0)
}

// Build constructs a WaveletMatrix over the first n elements of src.
// maxLevel fixes the number of bit levels; 0 derives it from the
// largest element of the prefix (at least 1).
//
// The construction streams one bitmap level at a time: elements whose
// current bit is 0 are stably compacted to the front of the working
// buffer, elements whose bit is 1 go to a ones buffer appended behind
// them. Time O(n * maxLevel).
func Build(src IntSource, n uint64, maxLevel uint32, opts ...BuildOption) (*WaveletMatrix, error) {
	cfg := buildConfig{logger: zerolog.Nop()}
	for _, o := range opts {
		o(&cfg)
	}
	if n > src.Len() {
		return nil, errors.Wrapf(ErrShortInput, "have %d elements, want %d", src.Len(), n)
	}

	wm := &WaveletMatrix{
		size:      n,
		tree:      rsdic.New(),
		zeroCnt:   []uint64{},
		rankLevel: []uint64{},
	}
	if n == 0 {
		return wm, nil
	}

	rac := make([]uint64, n)
	maxVal := uint64(1)
	for i := uint64(0); i < n; i++ {
		x := src.Get(i)
		if x > maxVal {
			maxVal = x
		}
		rac[i] = x
	}
	if maxLevel == 0 {
		wm.maxLevel = uint32(bits.Len64(maxVal))
	} else {
		wm.maxLevel = maxLevel
	}
	wm.zeroCnt = make([]uint64, wm.maxLevel)
	wm.rankLevel = make([]uint64, wm.maxLevel)

	var ones onesBuffer
	if cfg.spill {
		ones = &spillBuffer{dir: cfg.scratchDir}
	} else {
		ones = &memBuffer{buf: make([]uint64, 0, n)}
	}

	for k := uint32(0); k < wm.maxLevel; k++ {
		mask := uint64(1) << (wm.maxLevel - k - 1)
		zeros := uint64(0)
		if err := ones.Reset(); err != nil {
			return nil, errors.Wrapf(err, "level %d", k)
		}
		for i := uint64(0); i < n; i++ {
			x := rac[i]
			if x&mask != 0 {
				wm.tree.PushBack(true)
				if err := ones.Push(x); err != nil {
					return nil, errors.Wrapf(err, "level %d", k)
				}
			} else {
				wm.tree.PushBack(false)
				rac[zeros] = x
				zeros++
			}
		}
		wm.zeroCnt[k] = zeros
		if err := ones.Drain(rac[zeros:]); err != nil {
			return nil, errors.Wrapf(err, "level %d", k)
		}
		cfg.logger.Debug().
			Uint32("level", k).
			Uint64("zeros", zeros).
			Uint64("ones", n-zeros).
			Msg("wavelet level built")
	}
	if err := ones.Close(); err != nil {
		return nil, err
	}

	// The final rac is grouped by symbol, so adjacent-distinct counting
	// yields the alphabet size.
	sigma := uint64(1)
	for i := uint64(1); i < n; i++ {
		if rac[i] != rac[i-1] {
			sigma++
		}
	}
	wm.sigma = sigma

	for k := uint32(0); k < wm.maxLevel; k++ {
		wm.rankLevel[k] = wm.tree.Rank(uint64(k)*n, true)
	}
	cfg.logger.Debug().
		Uint64("size", n).
		Uint64("sigma", sigma).
		Uint32("levels", wm.maxLevel).
		Msg("wavelet matrix built")
	return wm, nil
}

// onesBuffer accumulates the one-branch elements of a level and hands
// them back in order.
type onesBuffer interface {
	Reset() error
	Push(x uint64) error
	Drain(dst []uint64) error
	Close() error
}

type memBuffer struct {
	buf []uint64
}

func (m *memBuffer) Reset() error {
	m.buf = m.buf[:0]
	return nil
}

func (m *memBuffer) Push(x uint64) error {
	m.buf = append(m.buf, x)
	return nil
}

func (m *memBuffer) Drain(dst []uint64) error {
	copy(dst, m.buf)
	return nil
}

func (m *memBuffer) Close() error {
	return nil
}

// spillBuffer streams the ones of the current level through a scratch
// file, keeping construction memory at the working buffer alone.
type spillBuffer struct {
	dir   string
	f     *os.File
	w     *bufio.Writer
	word  [8]byte
	count uint64
}

func (s *spillBuffer) Reset() error {
	if err := s.Close(); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.dir, "wmint-ones-*")
	if err != nil {
		return errors.Wrap(err, "create scratch file")
	}
	s.f = f
	s.w = bufio.NewWriter(f)
	s.count = 0
	return nil
}

func (s *spillBuffer) Push(x uint64) error {
	binary.LittleEndian.PutUint64(s.word[:], x)
	if _, err := s.w.Write(s.word[:]); err != nil {
		return errors.Wrapf(err, "write scratch %s", s.f.Name())
	}
	s.count++
	return nil
}

func (s *spillBuffer) Drain(dst []uint64) error {
	if err := s.w.Flush(); err != nil {
		return errors.Wrapf(err, "flush scratch %s", s.f.Name())
	}
	if _, err := s.f.Seek(0, 0); err != nil {
		return errors.Wrapf(err, "rewind scratch %s", s.f.Name())
	}
	r := bufio.NewReader(s.f)
	for i := uint64(0); i < s.count; i++ {
		if _, err := io.ReadFull(r, s.word[:]); err != nil {
			return errors.Wrapf(err, "read scratch %s", s.f.Name())
		}
		dst[i] = binary.LittleEndian.Uint64(s.word[:])
	}
	return nil
}

func (s *spillBuffer) Close() error {
	if s.f == nil {
		return nil
	}
	name := s.f.Name()
	if err := s.f.Close(); err != nil {
		return errors.Wrapf(err, "close scratch %s", name)
	}
	s.f = nil
	if err := os.Remove(name); err != nil {
		return errors.Wrapf(err, "remove scratch %s", name)
	}
	return nil
}
