// Package differ drives a pair of content-defined-chunking slicers and an
// LCS engine end to end, in either one-shot or streaming mode, producing
// the Delta that reconstructs a new stream from an old one.
package differ

import (
	"github.com/trezbouchez/rollsync/src/internal/chunking"
	"github.com/trezbouchez/rollsync/src/internal/delta"
	"github.com/trezbouchez/rollsync/src/internal/errors"
	"github.com/trezbouchez/rollsync/src/internal/lcs"
)

// Config gathers everything a Driver needs to run: the chunking
// parameters and, optionally, the strong digest and LCS backends to use.
// DigestFactory and Engine default to SHA256 and Nakatsu when left zero.
type Config struct {
	Chunking        chunking.Config
	DigestFactory   chunking.DigestFactory
	RollingHashBase uint32
	Engine          lcs.Engine
}

func (c Config) digestFactory() chunking.DigestFactory {
	if c.DigestFactory != nil {
		return c.DigestFactory
	}
	return chunking.SHA256
}

func (c Config) engine() lcs.Engine {
	if c.Engine != nil {
		return c.Engine
	}
	return lcs.Nakatsu{}
}

func (c Config) newRollingHash() chunking.RollingHash {
	if c.RollingHashBase != 0 {
		return chunking.NewPolynomialHash(int(c.Chunking.WindowSize), c.RollingHashBase)
	}
	return chunking.NewPolynomialHash(int(c.Chunking.WindowSize))
}

// Driver runs the old and new streams through independent Slicers into
// their own chunk Tables, then assembles a Delta once both are
// finalized. A Driver is single-use: construct a new one per diff. The
// core is synchronous and holds no implicit concurrency of its own.
type Driver struct {
	cfg Config

	oldSlicer *chunking.Slicer
	newSlicer *chunking.Slicer
	oldTable  *chunking.Table
	newTable  *chunking.Table

	finalized bool
}

// New constructs a Driver ready to receive PushOld/PushNew calls.
func New(cfg Config) (*Driver, error) {
	if err := cfg.Chunking.Validate(); err != nil {
		return nil, errors.Wrap(err, "differ: invalid configuration")
	}

	oldTable := chunking.NewTable()
	newTable := chunking.NewTable()

	oldSlicer, err := chunking.NewSlicer(cfg.Chunking, cfg.newRollingHash(), cfg.digestFactory(), oldTable.Append)
	if err != nil {
		return nil, errors.Wrap(err, "differ: constructing old-stream slicer")
	}
	newSlicer, err := chunking.NewSlicer(cfg.Chunking, cfg.newRollingHash(), cfg.digestFactory(), newTable.Append)
	if err != nil {
		return nil, errors.Wrap(err, "differ: constructing new-stream slicer")
	}

	return &Driver{
		cfg:       cfg,
		oldSlicer: oldSlicer,
		newSlicer: newSlicer,
		oldTable:  oldTable,
		newTable:  newTable,
	}, nil
}

// PushOld feeds more bytes of the old stream. It may be called any
// number of times, interleaved arbitrarily with PushNew, up until
// Finalize. Calling it afterward is a protocol error.
func (d *Driver) PushOld(data []byte) error {
	if d.finalized {
		return errors.Errorf("differ: PushOld called after Finalize")
	}
	d.oldSlicer.Push(data)
	return nil
}

// PushNew feeds more bytes of the new stream. See PushOld.
func (d *Driver) PushNew(data []byte) error {
	if d.finalized {
		return errors.Errorf("differ: PushNew called after Finalize")
	}
	d.newSlicer.Push(data)
	return nil
}

// Finalize flushes both slicers' trailing chunks, seals their tables,
// runs the configured LCS engine over the resulting digest sequences,
// and assembles the Delta. Calling Finalize more than once is a protocol
// error.
func (d *Driver) Finalize() (delta.Delta, error) {
	if d.finalized {
		return delta.Delta{}, errors.Errorf("differ: Finalize called more than once")
	}
	d.finalized = true

	d.oldSlicer.Flush()
	d.newSlicer.Flush()
	d.oldTable.Seal()
	d.newTable.Seal()

	trace := d.cfg.engine().LCS(d.oldTable.Digests(), d.newTable.Digests())
	return delta.Assemble(d.oldTable.Chunks(), d.newTable.Chunks(), trace), nil
}

// OldChunks returns the old stream's sealed chunk table. Valid only
// after Finalize.
func (d *Driver) OldChunks() *chunking.Table { return d.oldTable }

// NewChunks returns the new stream's sealed chunk table. Valid only
// after Finalize.
func (d *Driver) NewChunks() *chunking.Table { return d.newTable }

// Diff is the one-shot convenience path: it runs old and new fully
// through a fresh Driver and returns the resulting Delta.
func Diff(old, new []byte, cfg Config) (delta.Delta, error) {
	d, err := New(cfg)
	if err != nil {
		return delta.Delta{}, err
	}
	if err := d.PushOld(old); err != nil {
		return delta.Delta{}, err
	}
	if err := d.PushNew(new); err != nil {
		return delta.Delta{}, err
	}
	return d.Finalize()
}
