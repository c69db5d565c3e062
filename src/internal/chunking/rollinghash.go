package chunking

import (
	"encoding/binary"

	rollinghash "github.com/chmduquesne/rollinghash"
)

// RollingHash is the O(1)-per-byte capability contract a content-defined
// chunker drives to find boundaries: Reset, Push, Value, and Filled are
// the only four operations a slicer needs.
type RollingHash interface {
	// Reset returns the hash to its just-constructed, underfilled state.
	Reset()
	// Push feeds one byte into the sliding window and returns the
	// updated hash value.
	Push(b byte) uint32
	// Value returns the current hash value without mutating state.
	Value() uint32
	// Filled reports whether at least WindowSize bytes have been pushed
	// since the last Reset. Only a filled hash is a valid boundary
	// candidate.
	Filled() bool
	// WindowSize returns the fixed window size W this hash was
	// constructed with.
	WindowSize() int
}

// defaultBase is the odd 32-bit constant used as the polynomial base when
// none is supplied. It has no special number-theoretic significance beyond
// being odd; this one is also prime.
const defaultBase uint32 = 1000003

// PolynomialHash implements a polynomial (Rabin-Karp style) rolling hash:
//
//	H = sum_{i=0..W-1} b[k-W+i] * B^(W-1-i)   (mod 2^32)
//
// maintained incrementally on every push, once the window is full, via
//
//	H' = (H - b_out * B^(W-1)) * B + b_new   (mod 2^32)
//
// Arithmetic is plain uint32, which wraps modulo 2^32 on overflow exactly
// as required; B^(W-1) mod 2^32 is precomputed once at construction.
type PolynomialHash struct {
	window []byte
	tap    int
	filled bool
	pushed int

	base   uint32
	maxPow uint32
	hash   uint32
}

// NewPolynomialHash constructs a PolynomialHash with the given window size.
// An alternate base may be supplied (must be odd); it defaults to
// defaultBase.
func NewPolynomialHash(windowSize int, base ...uint32) *PolynomialHash {
	b := defaultBase
	if len(base) > 0 {
		b = base[0]
	}
	h := &PolynomialHash{
		window: make([]byte, windowSize),
		base:   b,
	}
	h.maxPow = modPow32(b, uint32(windowSize-1))
	return h
}

// modPow32 computes base^exp mod 2^32 via natural uint32 wraparound,
// exponentiation by squaring.
func modPow32(base uint32, exp uint32) uint32 {
	result := uint32(1)
	b := base
	for exp > 0 {
		if exp&1 == 1 {
			result *= b
		}
		b *= b
		exp >>= 1
	}
	return result
}

// Reset implements RollingHash.
func (h *PolynomialHash) Reset() {
	for i := range h.window {
		h.window[i] = 0
	}
	h.tap = 0
	h.filled = false
	h.pushed = 0
	h.hash = 0
}

// Push implements RollingHash.
func (h *PolynomialHash) Push(b byte) uint32 {
	if !h.filled {
		h.hash = h.hash*h.base + uint32(b)
		h.window[h.tap] = b
		h.tap++
		h.pushed++
		if h.pushed == len(h.window) {
			h.filled = true
			h.tap = 0
		}
		return h.hash
	}
	outgoing := h.window[h.tap]
	h.hash = (h.hash-uint32(outgoing)*h.maxPow)*h.base + uint32(b)
	h.window[h.tap] = b
	h.tap = (h.tap + 1) % len(h.window)
	return h.hash
}

// Value implements RollingHash.
func (h *PolynomialHash) Value() uint32 { return h.hash }

// Filled implements RollingHash.
func (h *PolynomialHash) Filled() bool { return h.filled }

// WindowSize implements RollingHash.
func (h *PolynomialHash) WindowSize() int { return len(h.window) }

// The following methods let PolynomialHash satisfy
// github.com/chmduquesne/rollinghash's Hash32 capability interface
// (hash.Hash plus Roll/Sum32). We don't use the library's own hash
// constructors, since this polynomial construction is a fixed
// requirement, but satisfying the shared interface keeps PolynomialHash
// usable anywhere the ecosystem expects one.

// Write implements hash.Hash by pushing each byte in turn.
func (h *PolynomialHash) Write(p []byte) (int, error) {
	for _, b := range p {
		h.Push(b)
	}
	return len(p), nil
}

// Roll implements rollinghash.Hash.
func (h *PolynomialHash) Roll(b byte) { h.Push(b) }

// Sum32 implements rollinghash.Hash32.
func (h *PolynomialHash) Sum32() uint32 { return h.hash }

// Sum implements hash.Hash.
func (h *PolynomialHash) Sum(b []byte) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], h.hash)
	return append(b, buf[:]...)
}

// Size implements hash.Hash.
func (h *PolynomialHash) Size() int { return 4 }

// BlockSize implements hash.Hash.
func (h *PolynomialHash) BlockSize() int { return 1 }

var _ rollinghash.Hash32 = (*PolynomialHash)(nil)
