// Package delta assembles a longest-common-subsequence trace over two
// chunk tables into an ordered list of REUSE/LITERAL segments describing
// how to reconstruct a new stream from an old one plus the new stream's
// own bytes.
package delta

import (
	"github.com/trezbouchez/rollsync/src/internal/chunking"
	"github.com/trezbouchez/rollsync/src/internal/lcs"
)

// Kind distinguishes a reused byte range of the old stream from a literal
// byte range of the new stream.
type Kind int

const (
	// Reuse means Offset/Length index into the old stream.
	Reuse Kind = iota
	// Literal means Offset/Length index into the new stream.
	Literal
)

// String renders the kind the way it appears in the text format.
func (k Kind) String() string {
	if k == Reuse {
		return "REUSE"
	}
	return "LITERAL"
}

// Segment is one ordered step of reconstructing the new stream.
type Segment struct {
	Kind   Kind
	Offset uint64
	Length uint64
}

// End returns Offset+Length.
func (s Segment) End() uint64 { return s.Offset + s.Length }

// Delta is the ordered sequence of segments that reconstructs a new
// stream, plus its total byte length.
type Delta struct {
	Segments  []Segment
	NewLength uint64
}

// Assemble walks trace (an LCS trace over oldChunks' and newChunks'
// digest sequences) in order, maintaining a cursor over the new stream's
// not-yet-covered bytes. Each trace pair (i, j) emits at most one Literal
// segment for the gap before new-chunk j, then exactly one Reuse segment
// for old-chunk i: reuse segments correspond one to one with LCS
// entries, never merged across consecutive chunks. A final Literal
// segment covers whatever of the new stream remains after the last
// pair.
func Assemble(oldChunks, newChunks []chunking.Chunk, trace lcs.Trace) Delta {
	var newLen uint64
	if len(newChunks) > 0 {
		newLen = newChunks[len(newChunks)-1].End()
	}

	if len(trace) == 0 {
		if len(newChunks) == 0 {
			return Delta{NewLength: newLen}
		}
		return Delta{
			NewLength: newLen,
			Segments:  []Segment{{Kind: Literal, Offset: newChunks[0].Start, Length: newLen}},
		}
	}

	var segments []Segment
	cursor := uint64(0)
	for _, pair := range trace {
		newChunk := newChunks[pair.J]
		if cursor < newChunk.Start {
			segments = append(segments, Segment{Kind: Literal, Offset: cursor, Length: newChunk.Start - cursor})
		}
		oldChunk := oldChunks[pair.I]
		segments = append(segments, Segment{Kind: Reuse, Offset: oldChunk.Start, Length: oldChunk.Length})
		cursor = newChunk.End()
	}
	if cursor < newLen {
		segments = append(segments, Segment{Kind: Literal, Offset: cursor, Length: newLen - cursor})
	}

	return Delta{Segments: segments, NewLength: newLen}
}
