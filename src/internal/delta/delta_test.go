package delta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trezbouchez/rollsync/src/internal/chunking"
	"github.com/trezbouchez/rollsync/src/internal/lcs"
)

func chunk(start, length uint64, digest string) chunking.Chunk {
	return chunking.Chunk{Start: start, Length: length, Digest: []byte(digest)}
}

func TestAssembleNothingInCommon(t *testing.T) {
	old := []chunking.Chunk{chunk(0, 4, "A")}
	new := []chunking.Chunk{chunk(0, 4, "V")}
	d := Assemble(old, new, nil)
	require.Equal(t, []Segment{{Kind: Literal, Offset: 0, Length: 4}}, d.Segments)
	require.Equal(t, uint64(4), d.NewLength)
}

func TestAssembleEmptyOld(t *testing.T) {
	new := []chunking.Chunk{chunk(0, 5, "A"), chunk(5, 3, "B")}
	d := Assemble(nil, new, nil)
	require.Equal(t, []Segment{{Kind: Literal, Offset: 0, Length: 8}}, d.Segments)
}

func TestAssembleEmptyNew(t *testing.T) {
	old := []chunking.Chunk{chunk(0, 5, "A")}
	d := Assemble(old, nil, nil)
	require.Empty(t, d.Segments)
	require.Equal(t, uint64(0), d.NewLength)
}

func TestAssembleBothEmpty(t *testing.T) {
	d := Assemble(nil, nil, nil)
	require.Empty(t, d.Segments)
}

func TestAssembleIdenticalStreams(t *testing.T) {
	old := []chunking.Chunk{chunk(0, 4, "A"), chunk(4, 4, "B")}
	new := []chunking.Chunk{chunk(0, 4, "A"), chunk(4, 4, "B")}
	trace := lcs.Trace{{I: 0, J: 0}, {I: 1, J: 1}}
	d := Assemble(old, new, trace)
	require.Equal(t, []Segment{
		{Kind: Reuse, Offset: 0, Length: 4},
		{Kind: Reuse, Offset: 4, Length: 4},
	}, d.Segments)
}

func TestAssemblePrepend(t *testing.T) {
	old := []chunking.Chunk{chunk(0, 4, "A")}
	new := []chunking.Chunk{chunk(0, 3, "Z"), chunk(3, 4, "A")}
	trace := lcs.Trace{{I: 0, J: 1}}
	d := Assemble(old, new, trace)
	require.Equal(t, []Segment{
		{Kind: Literal, Offset: 0, Length: 3},
		{Kind: Reuse, Offset: 0, Length: 4},
	}, d.Segments)
}

func TestAssembleAppend(t *testing.T) {
	old := []chunking.Chunk{chunk(0, 4, "A")}
	new := []chunking.Chunk{chunk(0, 4, "A"), chunk(4, 3, "Z")}
	trace := lcs.Trace{{I: 0, J: 0}}
	d := Assemble(old, new, trace)
	require.Equal(t, []Segment{
		{Kind: Reuse, Offset: 0, Length: 4},
		{Kind: Literal, Offset: 4, Length: 3},
	}, d.Segments)
}

func TestAssembleInsertInMiddle(t *testing.T) {
	old := []chunking.Chunk{chunk(0, 4, "A"), chunk(4, 4, "B")}
	new := []chunking.Chunk{chunk(0, 4, "A"), chunk(4, 3, "Z"), chunk(7, 4, "B")}
	trace := lcs.Trace{{I: 0, J: 0}, {I: 1, J: 2}}
	d := Assemble(old, new, trace)
	require.Equal(t, []Segment{
		{Kind: Reuse, Offset: 0, Length: 4},
		{Kind: Literal, Offset: 4, Length: 3},
		{Kind: Reuse, Offset: 4, Length: 4},
	}, d.Segments)
}

func TestEncodeDecodeTextRoundTrip(t *testing.T) {
	d := Delta{Segments: []Segment{
		{Kind: Reuse, Offset: 0, Length: 10},
		{Kind: Literal, Offset: 10, Length: 4},
	}}
	var buf strings.Builder
	require.NoError(t, EncodeText(&buf, d))
	require.Equal(t, "REUSE 0 10\nLITERAL 10 4\n", buf.String())

	decoded, err := DecodeText(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, d.Segments, decoded.Segments)
}

func TestDecodeTextRejectsMalformedLine(t *testing.T) {
	_, err := DecodeText(strings.NewReader("GARBAGE\n"))
	require.Error(t, err)
}
