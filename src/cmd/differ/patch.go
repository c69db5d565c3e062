package main

import (
	"github.com/trezbouchez/rollsync/src/internal/delta"
	"github.com/trezbouchez/rollsync/src/internal/errors"
)

// ApplyPatch reconstructs the new stream d describes, given the old
// stream's bytes and the new stream's own bytes (the latter is what the
// delta generator had on hand to source Literal segments from; a real
// patch recipient would instead carry the literal bytes alongside the
// delta itself). This only exists to let the CLI self-check a delta it
// just produced; applying a delta against a genuinely remote old file is
// out of scope.
func ApplyPatch(old, new []byte, d delta.Delta) ([]byte, error) {
	out := make([]byte, 0, d.NewLength)
	for _, seg := range d.Segments {
		var src []byte
		switch seg.Kind {
		case delta.Reuse:
			src = old
		case delta.Literal:
			src = new
		default:
			return nil, errors.Errorf("unknown segment kind %v", seg.Kind)
		}
		if seg.End() > uint64(len(src)) {
			return nil, errors.Errorf("segment %v(%d,%d) out of range of its source (len %d)", seg.Kind, seg.Offset, seg.Length, len(src))
		}
		out = append(out, src[seg.Offset:seg.End()]...)
	}
	return out, nil
}
