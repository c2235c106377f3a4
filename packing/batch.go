package packing

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/vec"
)

// minBatchChunk is the smallest number of samples handed to one worker.
const minBatchChunk = 256

// PackBatch packs samples into consecutive records of out, record i at
// out[i*size:(i+1)*size] where size is PackedSize(f, params).
//
// Work is split into contiguous chunks packed concurrently by at most
// workers goroutines (GOMAXPROCS when workers <= 0). Every chunk writes a
// disjoint region of out, so the result is byte-identical to packing the
// samples one after another.
//
// Returns:
//   - error: the first packing error, annotated with the sample index, or
//     the context error when ctx is cancelled before all chunks ran
func (c *Codec) PackBatch(ctx context.Context, f format.VectorFormat, samples []vec.Vector4, params Params, out []byte, workers int) error {
	size, err := c.PackedSize(f, params)
	if err != nil {
		return err
	}
	if err := checkLen(out, size*len(samples), f.String()+" batch"); err != nil {
		return err
	}

	return runChunks(ctx, len(samples), workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if err := c.Pack(f, samples[i], params, out[i*size:]); err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
		}

		return nil
	})
}

// UnpackBatch decodes count consecutive records of layout f from in.
func (c *Codec) UnpackBatch(ctx context.Context, f format.VectorFormat, in []byte, count int, params Params, workers int) ([]vec.Vector4, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", errs.ErrInvalidArgument, count)
	}

	size, err := c.PackedSize(f, params)
	if err != nil {
		return nil, err
	}
	if err := checkLen(in, size*count, f.String()+" batch"); err != nil {
		return nil, err
	}

	samples := make([]vec.Vector4, count)
	err = runChunks(ctx, count, workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			v, err := c.Unpack(f, in[i*size:], params)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
			samples[i] = v
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return samples, nil
}

// runChunks splits [0, n) into contiguous chunks and runs fn on each.
func runChunks(ctx context.Context, n int, workers int, fn func(lo, hi int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	chunk := max((n+workers-1)/workers, minBatchChunk)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return fn(lo, hi)
		})
	}

	return g.Wait()
}
