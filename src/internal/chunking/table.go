package chunking

// Table is the ordered, append-only sequence of Chunks produced for one
// stream. A Slicer's onChunk callback normally feeds a Table's Append
// method directly; the driver Seals the table once its stream is
// finalized.
type Table struct {
	chunks []Chunk
	sealed bool
}

// NewTable returns an empty, unsealed Table.
func NewTable() *Table {
	return &Table{}
}

// Append adds c as the next chunk. Append after Seal indicates a driver
// bug, not a recoverable condition, so it panics rather than returning an
// error.
func (t *Table) Append(c Chunk) {
	if t.sealed {
		panic("chunking: Append called on a sealed Table")
	}
	t.chunks = append(t.chunks, c)
}

// Seal marks the table complete. Seal is idempotent.
func (t *Table) Seal() { t.sealed = true }

// Sealed reports whether Seal has been called.
func (t *Table) Sealed() bool { return t.sealed }

// Len returns the number of chunks.
func (t *Table) Len() int { return len(t.chunks) }

// At returns the chunk at index i.
func (t *Table) At(i int) Chunk { return t.chunks[i] }

// Chunks returns the full chunk sequence. The returned slice is owned by
// the Table and must not be mutated by the caller.
func (t *Table) Chunks() []Chunk { return t.chunks }

// Digests returns the table's projection onto its sequence of strong
// digests, preserving order. Digests are returned as strings so they
// compare with ordinary == and work directly as map keys and as the
// comparable element type an LCS engine runs over; the conversion is a
// reinterpretation of the existing bytes, not a text encoding.
func (t *Table) Digests() []string {
	digests := make([]string, len(t.chunks))
	for i, c := range t.chunks {
		digests[i] = string(c.Digest)
	}
	return digests
}

// TotalLength returns the sum of all chunk lengths, i.e. the length of the
// stream the table was built from.
func (t *Table) TotalLength() uint64 {
	if len(t.chunks) == 0 {
		return 0
	}
	return t.chunks[len(t.chunks)-1].End()
}
