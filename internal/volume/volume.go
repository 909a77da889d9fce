// Package volume generates cloud noise volumes and reads and writes them in
// the .cft3 text format.
package volume

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/MeKo-Tech/cloudnoise/internal/voxel"
	"github.com/MeKo-Tech/cloudnoise/internal/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// Header holds the dimensions of a volume.
type Header struct {
	Width  int
	Height int
	Depth  int
}

// Len returns the number of voxels described by h.
func (h Header) Len() int {
	return h.Width * h.Height * h.Depth
}

func (h Header) String() string {
	return fmt.Sprintf("%d %d %d", h.Width, h.Height, h.Depth)
}

// Volume is a dense grid of packed RGBA voxels stored x fastest, then y,
// then z.
type Volume struct {
	Voxels []uint32
	Header
}

// New allocates a zeroed volume.
func New(h Header) *Volume {
	return &Volume{Header: h, Voxels: make([]uint32, h.Len())}
}

// Index returns the position of voxel (x, y, z) in Voxels.
func (v *Volume) Index(x, y, z int) int {
	return x + v.Width*(y+v.Height*z)
}

// At returns the voxel at (x, y, z).
func (v *Volume) At(x, y, z int) uint32 {
	return v.Voxels[v.Index(x, y, z)]
}

// Options configures Generate.
type Options struct {
	// OnProgress receives slice completion counts.
	OnProgress worker.ProgressFunc
	// Workers values <= 0 use runtime.NumCPU().
	Workers int
}

// WorkerCount returns the number of workers Generate will start.
func (o Options) WorkerCount() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

// Generate samples a size^3 volume. Voxel (x, y, z) is sampled at
// (x, y, z)/size, so the last voxel stops one step short of the tile edge and
// the volume repeats seamlessly.
func Generate(ctx context.Context, s voxel.Sampler, size int, opts Options) (*Volume, error) {
	if size <= 0 {
		return nil, fmt.Errorf("size must be positive, got %d", size)
	}

	v := New(Header{Width: size, Height: size, Depth: size})
	pool := worker.New(worker.Config{
		Workers:    opts.WorkerCount(),
		Generator:  &sliceFiller{volume: v, sampler: s},
		OnProgress: opts.OnProgress,
	})

	var errs []error
	for _, r := range pool.Run(ctx, worker.SliceTasks(size)) {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("slice %d: %w", r.Task.Depth, r.Err))
		}
	}
	// The feeder stops early on cancellation, so some slices may never report.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("volume generation cancelled: %w", err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return v, nil
}

// sliceFiller writes one depth slice into its own disjoint range of the
// volume buffer.
type sliceFiller struct {
	volume  *Volume
	sampler voxel.Sampler
}

func (f *sliceFiller) GenerateSlice(ctx context.Context, z int) error {
	v := f.volume
	norm := 1 / float32(v.Width)
	offset := v.Index(0, 0, z)

	for y := 0; y < v.Height; y++ {
		// Check between rows so a cancelled run does not finish a whole slice.
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < v.Width; x++ {
			coord := mgl32.Vec3{float32(x), float32(y), float32(z)}.Mul(norm)
			v.Voxels[offset+x+v.Width*y] = f.sampler.Sample(coord)
		}
	}
	return nil
}
