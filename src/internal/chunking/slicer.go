package chunking

import (
	"github.com/trezbouchez/rollsync/src/internal/errors"
)

// Config holds the content-defined-chunking parameters. All fields are
// mandatory; Validate enforces the documented constraints.
type Config struct {
	WindowSize   uint32
	MinChunkSize uint32
	MaxChunkSize uint32
	BoundaryMask uint32
}

// Validate reports a configuration error if any constraint is violated:
// 1 <= W <= m < M, and K = 2^b-1 for some b >= 1.
func (c Config) Validate() error {
	if c.WindowSize == 0 {
		return errors.Errorf("window_size must be > 0")
	}
	if c.WindowSize > c.MinChunkSize {
		return errors.Errorf("window_size (%d) must be <= min_chunk_size (%d)", c.WindowSize, c.MinChunkSize)
	}
	if c.MinChunkSize >= c.MaxChunkSize {
		return errors.Errorf("min_chunk_size (%d) must be < max_chunk_size (%d)", c.MinChunkSize, c.MaxChunkSize)
	}
	if c.BoundaryMask == 0 || (c.BoundaryMask&(c.BoundaryMask+1)) != 0 {
		return errors.Errorf("boundary_mask (%#x) must be of the form 2^b-1 for some b >= 1", c.BoundaryMask)
	}
	return nil
}

// Chunk is a contiguous, non-overlapping byte range of one input stream,
// fingerprinted with a strong digest.
type Chunk struct {
	Start  uint64
	Length uint64
	Digest []byte
}

// End returns the offset one past the chunk's last byte.
func (c Chunk) End() uint64 { return c.Start + c.Length }

// Slicer performs content-defined chunking over an arbitrarily split
// sequence of byte pushes, emitting Chunks through onChunk as boundaries
// are found. A Slicer processes exactly one stream; a new instance is
// required for another.
type Slicer struct {
	cfg           Config
	rhash         RollingHash
	digestFactory DigestFactory
	digest        Digest
	onChunk       func(Chunk)

	// window is a ring buffer of the last (up to) WindowSize raw bytes
	// seen in the currently open chunk. It is kept regardless of whether
	// the rolling hash is being consulted, so that once chunk length
	// reaches min_chunk_size the rolling hash can be primed from the
	// correct trailing window in one shot (see primeRollingHash).
	window    []byte
	windowLen int
	windowPos int

	chunkStart  uint64
	chunkLength uint64
	done        bool
}

// NewSlicer constructs a Slicer. rhash must be freshly constructed (or
// just Reset) with a window size matching cfg.WindowSize; digestFactory
// is called once, and the Digest it returns is Reset after each chunk.
func NewSlicer(cfg Config, rhash RollingHash, digestFactory DigestFactory, onChunk func(Chunk)) (*Slicer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if uint32(rhash.WindowSize()) != cfg.WindowSize {
		return nil, errors.Errorf("rolling hash window size (%d) does not match config window_size (%d)", rhash.WindowSize(), cfg.WindowSize)
	}
	return &Slicer{
		cfg:           cfg,
		rhash:         rhash,
		digestFactory: digestFactory,
		digest:        digestFactory(),
		onChunk:       onChunk,
		window:        make([]byte, cfg.WindowSize),
	}, nil
}

// Push feeds more bytes of the stream into the slicer. It may be called
// any number of times with any sizing; the resulting Chunk sequence
// depends only on the concatenation of all bytes pushed across all calls.
func (s *Slicer) Push(data []byte) {
	for _, b := range data {
		s.pushByte(b)
	}
}

func (s *Slicer) pushByte(b byte) {
	s.digest.Write([]byte{b})
	s.recordWindow(b)
	s.chunkLength++

	var boundary bool
	switch {
	case s.chunkLength < uint64(s.cfg.MinChunkSize):
		// Step 1: below min_chunk_size the rolling hash is fed neither
		// raw bytes nor consulted for a boundary decision.
	case s.chunkLength == uint64(s.cfg.MinChunkSize):
		// The byte where length reaches m: reset the rolling hash and
		// prime it in one shot from the last W raw bytes already seen
		// (ending at this byte), so it reflects the correct trailing
		// window without ever having been "consulted" byte-by-byte
		// before now.
		s.primeRollingHash()
		boundary = s.rhash.Filled() && (s.rhash.Value()&s.cfg.BoundaryMask) == s.cfg.BoundaryMask
	default:
		h := s.rhash.Push(b)
		boundary = s.rhash.Filled() && (h&s.cfg.BoundaryMask) == s.cfg.BoundaryMask
	}
	if !boundary && s.chunkLength == uint64(s.cfg.MaxChunkSize) {
		boundary = true
	}
	if boundary {
		s.emit()
	}
}

// recordWindow appends b to the ring buffer of the last WindowSize raw
// bytes seen in the current chunk.
func (s *Slicer) recordWindow(b byte) {
	s.window[s.windowPos] = b
	s.windowPos = (s.windowPos + 1) % len(s.window)
	if s.windowLen < len(s.window) {
		s.windowLen++
	}
}

// primeRollingHash resets the rolling hash and feeds it the last
// windowLen raw bytes in chronological order, so that it reports filled
// and holds the same value it would have had it been running continuously
// over that window.
func (s *Slicer) primeRollingHash() {
	s.rhash.Reset()
	w := len(s.window)
	start := (s.windowPos - s.windowLen + w) % w
	for i := 0; i < s.windowLen; i++ {
		s.rhash.Push(s.window[(start+i)%w])
	}
}

func (s *Slicer) emit() {
	chunk := Chunk{
		Start:  s.chunkStart,
		Length: s.chunkLength,
		Digest: s.digest.Finalize(),
	}
	s.onChunk(chunk)
	s.chunkStart = chunk.End()
	s.chunkLength = 0
	s.digest.Reset()
	s.windowLen = 0
	s.windowPos = 0
}

// Flush emits whatever bytes remain in the currently open chunk as the
// final chunk of the stream, even if shorter than min_chunk_size. If no
// bytes remain open (the stream was empty, or it ended exactly on a
// boundary), Flush emits nothing. Flush is idempotent.
func (s *Slicer) Flush() {
	if s.done {
		return
	}
	s.done = true
	if s.chunkLength == 0 {
		return
	}
	s.onChunk(Chunk{
		Start:  s.chunkStart,
		Length: s.chunkLength,
		Digest: s.digest.Finalize(),
	})
}
