package wmint

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShortInput(t *testing.T) {
	_, err := Build(SliceSource{1, 2, 3}, 4, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShortInput))
}

func TestBuildPrefix(t *testing.T) {
	src := SliceSource{5, 3, 7, 1, 6, 2}
	wm, err := Build(src, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), wm.Num())
	assert.Equal(t, uint64(5), wm.Lookup(0))
	assert.Equal(t, uint64(3), wm.Lookup(1))
	assert.Equal(t, uint64(7), wm.Lookup(2))
	assert.Equal(t, uint64(3), wm.Sigma())
}

func TestBuildDerivedLevels(t *testing.T) {
	cases := []struct {
		name   string
		vals   []uint64
		levels uint32
	}{
		{"all zeros still need one level", []uint64{0, 0, 0}, 1},
		{"max 1", []uint64{0, 1, 0}, 1},
		{"max 7", []uint64{7, 0, 3}, 3},
		{"max 8", []uint64{8}, 4},
		{"max 1023", []uint64{1023, 5}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wm, err := Build(SliceSource(tc.vals), uint64(len(tc.vals)), 0)
			require.NoError(t, err)
			assert.Equal(t, tc.levels, wm.MaxLevel())
			for i, v := range tc.vals {
				assert.Equal(t, v, wm.Lookup(uint64(i)))
			}
		})
	}
}

func TestBuildFixedLevels(t *testing.T) {
	wm, err := Build(SliceSource{1, 0, 1}, 3, 8)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), wm.MaxLevel())
	assert.Equal(t, uint64(1), wm.Lookup(0))
	assert.Equal(t, uint64(2), wm.Rank(3, 1))
	assert.Equal(t, uint64(0), wm.Rank(3, 200))
}

func TestBuildSigma(t *testing.T) {
	wm, err := Build(SliceSource{9, 9, 9, 9}, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), wm.Sigma())

	wm, err = Build(SliceSource{1, 2, 1, 2, 3}, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), wm.Sigma())
}

func TestBuildWithScratchDir(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	vals := make([]uint64, 777)
	for i := range vals {
		vals[i] = uint64(rnd.Intn(1 << 12))
	}
	inMem, err := Build(SliceSource(vals), uint64(len(vals)), 0)
	require.NoError(t, err)
	spilled, err := Build(SliceSource(vals), uint64(len(vals)), 0,
		WithScratchDir(t.TempDir()), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	assert.Equal(t, inMem.Sigma(), spilled.Sigma())
	assert.Equal(t, inMem.MaxLevel(), spilled.MaxLevel())
	assert.Equal(t, inMem.zeroCnt, spilled.zeroCnt)
	assert.Equal(t, inMem.rankLevel, spilled.rankLevel)
	for i, v := range vals {
		require.Equal(t, v, spilled.Lookup(uint64(i)))
	}
}

func TestBuildScratchDirMissing(t *testing.T) {
	_, err := Build(SliceSource{1, 2, 3}, 3, 0, WithScratchDir("/nonexistent-wmint-scratch"))
	require.Error(t, err)
}

func TestBuilderPushBack(t *testing.T) {
	b := NewBuilder()
	for _, v := range []uint64{4, 2, 4} {
		b.PushBack(v)
	}
	wm, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), wm.Num())
	assert.Equal(t, uint64(2), wm.Rank(3, 4))
	assert.Equal(t, uint32(3), wm.MaxLevel())
}
