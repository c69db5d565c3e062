// Command differ computes a content-defined-chunking delta between two
// files, writes it alongside a reconstructed "patched" copy of the new
// file (as a self-check that the delta actually reconstructs it), and
// exits non-zero with a message on any failure.
package main

import (
	"bytes"
	"context"
	"os"

	units "github.com/docker/go-units"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trezbouchez/rollsync/src/internal/chunking"
	"github.com/trezbouchez/rollsync/src/internal/cmdutil"
	"github.com/trezbouchez/rollsync/src/internal/delta"
	"github.com/trezbouchez/rollsync/src/internal/differ"
	"github.com/trezbouchez/rollsync/src/internal/errors"
	"github.com/trezbouchez/rollsync/src/internal/log"
)

var (
	windowSizeFlag   string
	minChunkSizeFlag string
	maxChunkSizeFlag string
	boundaryBits     uint32
	verbose          bool
)

func main() {
	root := &cobra.Command{
		Use:   "differ <old-file> <new-file> <patched-file> <delta-file>",
		Short: "diff two files by content-defined chunking and write the delta",
		PersistentPreRun: func(*cobra.Command, []string) {
			cmdutil.PrintErrorStacks = verbose
		},
		Run: cmdutil.RunFixedArgs(4, run),
	}
	root.PersistentFlags().StringVar(&windowSizeFlag, "window-size", "8B", "rolling hash window size")
	root.PersistentFlags().StringVar(&minChunkSizeFlag, "min-chunk-size", "2KB", "minimum chunk size")
	root.PersistentFlags().StringVar(&maxChunkSizeFlag, "max-chunk-size", "64KB", "maximum chunk size")
	root.PersistentFlags().Uint32Var(&boundaryBits, "boundary-bits", 13, "boundary mask width b, where K = 2^b-1")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "print a stack trace alongside any error")

	if err := root.Execute(); err != nil {
		cmdutil.ErrorAndExit(err)
	}
}

func run(args []string) error {
	oldPath, newPath, patchedPath, deltaPath := args[0], args[1], args[2], args[3]

	logger, err := zap.NewProduction()
	if err != nil {
		return errors.Wrap(err, "constructing logger")
	}
	defer logger.Sync() //nolint:errcheck
	ctx := log.NewContext(context.Background(), logger)

	cfg, err := parseConfig()
	if err != nil {
		return err
	}

	var oldData, newData []byte
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := os.ReadFile(oldPath)
		if err != nil {
			return errors.Wrapf(err, "reading %s", oldPath)
		}
		oldData = data
		return nil
	})
	g.Go(func() error {
		data, err := os.ReadFile(newPath)
		if err != nil {
			return errors.Wrapf(err, "reading %s", newPath)
		}
		newData = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info(ctx, "read input files", zap.Int("old_bytes", len(oldData)), zap.Int("new_bytes", len(newData)))

	d, err := differ.Diff(oldData, newData, cfg)
	if err != nil {
		return errors.Wrap(err, "computing delta")
	}
	log.Info(ctx, "computed delta", zap.Int("segments", len(d.Segments)))

	if err := writeAtomic(deltaPath, func(f *os.File) error {
		return delta.EncodeText(f, d)
	}); err != nil {
		return errors.Wrapf(err, "writing delta to %s", deltaPath)
	}

	patched, err := ApplyPatch(oldData, newData, d)
	if err != nil {
		return errors.Wrap(err, "reconstructing patched output")
	}
	if !bytes.Equal(patched, newData) {
		return errors.Errorf("integrity check failed: patched output (%d bytes) does not match %s (%d bytes)", len(patched), newPath, len(newData))
	}
	if err := writeAtomic(patchedPath, func(f *os.File) error {
		_, err := f.Write(patched)
		return err
	}); err != nil {
		return errors.Wrapf(err, "writing patched output to %s", patchedPath)
	}

	log.Info(ctx, "wrote delta and patched output", zap.String("delta", deltaPath), zap.String("patched", patchedPath))
	return nil
}

func parseConfig() (differ.Config, error) {
	w, err := units.RAMInBytes(windowSizeFlag)
	if err != nil {
		return differ.Config{}, errors.Wrapf(err, "parsing --window-size %q", windowSizeFlag)
	}
	m, err := units.RAMInBytes(minChunkSizeFlag)
	if err != nil {
		return differ.Config{}, errors.Wrapf(err, "parsing --min-chunk-size %q", minChunkSizeFlag)
	}
	M, err := units.RAMInBytes(maxChunkSizeFlag)
	if err != nil {
		return differ.Config{}, errors.Wrapf(err, "parsing --max-chunk-size %q", maxChunkSizeFlag)
	}
	if boundaryBits == 0 {
		return differ.Config{}, errors.Errorf("--boundary-bits must be >= 1")
	}
	return differ.Config{
		Chunking: chunking.Config{
			WindowSize:   uint32(w),
			MinChunkSize: uint32(m),
			MaxChunkSize: uint32(M),
			BoundaryMask: uint32(1)<<boundaryBits - 1,
		},
	}, nil
}

// writeAtomic writes via write to a uuid-suffixed temp file beside path,
// then renames it into place, so a failed or interrupted run never
// leaves a half-written output file at path.
func writeAtomic(path string, write func(*os.File) error) error {
	tmp := path + "." + uuid.NewString() + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "creating %s", tmp)
	}
	if err := write(f); err != nil {
		f.Close() //nolint:errcheck
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "closing %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "renaming %s to %s", tmp, path)
	}
	return nil
}
