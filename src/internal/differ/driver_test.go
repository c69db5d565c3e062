package differ

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trezbouchez/rollsync/src/internal/chunking"
	"github.com/trezbouchez/rollsync/src/internal/delta"
)

func apply(t *testing.T, old, new []byte, d delta.Delta) []byte {
	t.Helper()
	out := make([]byte, 0, d.NewLength)
	for _, seg := range d.Segments {
		src := old
		if seg.Kind == delta.Literal {
			src = new
		}
		require.LessOrEqual(t, seg.End(), uint64(len(src)))
		out = append(out, src[seg.Offset:seg.End()]...)
	}
	return out
}

func smallConfig() Config {
	return Config{Chunking: chunking.Config{
		WindowSize:   2,
		MinChunkSize: 2,
		MaxChunkSize: 4,
		BoundaryMask: 0x1,
	}}
}

func TestDiffIdenticalStreams(t *testing.T) {
	data := []byte("abcdef")
	cfg := smallConfig()
	d, err := Diff(data, data, cfg)
	require.NoError(t, err)
	require.Equal(t, data, apply(t, data, data, d))
	for _, seg := range d.Segments {
		require.Equal(t, delta.Reuse, seg.Kind)
	}
}

func TestDiffEmptyOld(t *testing.T) {
	d, err := Diff(nil, []byte("hello"), smallConfig())
	require.NoError(t, err)
	require.Equal(t, []delta.Segment{{Kind: delta.Literal, Offset: 0, Length: 5}}, d.Segments)
}

func TestDiffEmptyNew(t *testing.T) {
	d, err := Diff([]byte("hello"), nil, smallConfig())
	require.NoError(t, err)
	require.Empty(t, d.Segments)
}

func TestDiffBothEmpty(t *testing.T) {
	d, err := Diff(nil, nil, smallConfig())
	require.NoError(t, err)
	require.Empty(t, d.Segments)
}

func TestDiffReconstructsTargeted(t *testing.T) {
	old := []byte("the quick brown fox")
	new := []byte("the slow brown fox")
	cfg := Config{Chunking: chunking.Config{
		WindowSize:   2,
		MinChunkSize: 2,
		MaxChunkSize: 8,
		BoundaryMask: 0x3,
	}}
	d, err := Diff(old, new, cfg)
	require.NoError(t, err)
	require.Equal(t, new, apply(t, old, new, d))
}

func TestDiffBlockchainSphereScenario(t *testing.T) {
	old := []byte("What a a year in the blockchain sphere. It's also been quite a year for Equilibrium and I thought I'd recap everything that has happened in the company.")
	new := []byte("It's been a year in the blockchain sphere. It's also been quite a year for Equilibrium. I thought I'd recap everything that has happened in the company with a Year In Review post.")
	cfg := Config{Chunking: chunking.Config{
		WindowSize:   8,
		MinChunkSize: 8,
		MaxChunkSize: 32,
		BoundaryMask: (1 << 4) - 1,
	}}
	d, err := Diff(old, new, cfg)
	require.NoError(t, err)
	require.Equal(t, new, apply(t, old, new, d))

	var reused int
	for _, seg := range d.Segments {
		if seg.Kind == delta.Reuse {
			reused++
		}
	}
	require.Greater(t, reused, 0)
}

func TestStreamingMatchesOneShot(t *testing.T) {
	old := []byte("What a a year in the blockchain sphere. It's also been quite a year for Equilibrium and I thought I'd recap everything that has happened in the company.")
	new := []byte("It's been a year in the blockchain sphere. It's also been quite a year for Equilibrium. I thought I'd recap everything that has happened in the company with a Year In Review post.")
	cfg := Config{Chunking: chunking.Config{
		WindowSize:   8,
		MinChunkSize: 8,
		MaxChunkSize: 32,
		BoundaryMask: (1 << 4) - 1,
	}}

	oneShot, err := Diff(old, new, cfg)
	require.NoError(t, err)

	d, err := New(cfg)
	require.NoError(t, err)
	oldSplits := [][]byte{old[:10], old[10:37], old[37:]}
	newSplits := [][]byte{new[:5], new[5:60], new[60:100], new[100:]}
	for i := 0; i < len(oldSplits) || i < len(newSplits); i++ {
		if i < len(oldSplits) {
			require.NoError(t, d.PushOld(oldSplits[i]))
		}
		if i < len(newSplits) {
			require.NoError(t, d.PushNew(newSplits[i]))
		}
	}
	streamed, err := d.Finalize()
	require.NoError(t, err)

	require.Equal(t, oneShot, streamed)
}

func TestPushAfterFinalizeIsProtocolError(t *testing.T) {
	d, err := New(smallConfig())
	require.NoError(t, err)
	require.NoError(t, d.PushOld([]byte("ab")))
	require.NoError(t, d.PushNew([]byte("ab")))
	_, err = d.Finalize()
	require.NoError(t, err)

	require.Error(t, d.PushOld([]byte("c")))
	require.Error(t, d.PushNew([]byte("c")))
	_, err = d.Finalize()
	require.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{Chunking: chunking.Config{WindowSize: 8, MinChunkSize: 4, MaxChunkSize: 16, BoundaryMask: 0x1}})
	require.Error(t, err)
}
