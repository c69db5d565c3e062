package chunking

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"hash"
)

// Digest is the strong, collision-resistant fingerprint contract a chunk
// carries: it accumulates bytes incrementally (so a chunk's digest can be
// built alongside slicing, in the same pass) and yields a fixed-width sum
// on Finalize. md5/sha1/sha256 are the expected backends, so all three
// wrap their stdlib implementations directly rather than reaching for a
// third-party digest package.
type Digest interface {
	// Write feeds more bytes into the digest. It never returns an error;
	// the signature matches io.Writer so a Digest composes with anything
	// that writes to a hash.Hash.
	Write(p []byte) (int, error)
	// Finalize returns the fixed-width digest of everything written so
	// far. Finalize does not reset the digest.
	Finalize() []byte
	// Reset clears accumulated state so the Digest can be reused for the
	// next chunk.
	Reset()
}

// DigestFactory constructs a fresh Digest. A Slicer calls it once and
// Resets that Digest between chunks.
type DigestFactory func() Digest

type stdDigest struct {
	h hash.Hash
}

func (d *stdDigest) Write(p []byte) (int, error) { return d.h.Write(p) }
func (d *stdDigest) Finalize() []byte            { return d.h.Sum(nil) }
func (d *stdDigest) Reset()                      { d.h.Reset() }

// SHA256 constructs the default strong digest (32-byte output).
func SHA256() Digest { return &stdDigest{h: sha256.New()} }

// SHA1 constructs a sha1-backed strong digest (20-byte output).
func SHA1() Digest { return &stdDigest{h: sha1.New()} }

// MD5 constructs an md5-backed strong digest (16-byte output).
func MD5() Digest { return &stdDigest{h: md5.New()} }
