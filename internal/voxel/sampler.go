// Package voxel turns noise recipes into packed RGBA voxels.
package voxel

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/cloudnoise/internal/noise"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects which cloud volume a Sampler produces.
type Mode int

const (
	// BaseShape packs Perlin-Worley and three Worley FBM stacks.
	BaseShape Mode = iota
	// Erosion packs three high-frequency Worley FBM stacks with opaque alpha.
	Erosion
)

// Modes lists every sampler mode in generation order.
var Modes = []Mode{BaseShape, Erosion}

func (m Mode) String() string {
	switch m {
	case BaseShape:
		return "base"
	case Erosion:
		return "erosion"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// DefaultSize is the edge length of the cubic volume usually generated for m.
func (m Mode) DefaultSize() int {
	if m == Erosion {
		return 32
	}
	return 128
}

// ParseMode parses "base" or "erosion".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "base":
		return BaseShape, nil
	case "erosion":
		return Erosion, nil
	default:
		return 0, fmt.Errorf("unknown mode %q: must be 'base' or 'erosion'", s)
	}
}

// Sampler evaluates one cloud volume. The zero value samples the base shape
// with the default Perlin-Worley remap. Sampler holds no state and is safe
// for concurrent use.
type Sampler struct {
	Mode    Mode
	Variant noise.PerlinWorleyVariant
}

// Sample returns the packed voxel at coord, a position in the unit tile.
func (s Sampler) Sample(coord mgl32.Vec3) uint32 {
	if s.Mode == Erosion {
		c := noise.Erosion(coord)
		return Pack(c[0], c[1], c[2], 1)
	}
	c := noise.BaseShape(coord, s.Variant)
	return Pack(c[0], c[1], c[2], c[3])
}

// Sample returns the packed voxel for mode at coord using the default
// Perlin-Worley remap.
func Sample(coord mgl32.Vec3, mode Mode) uint32 {
	return Sampler{Mode: mode}.Sample(coord)
}

// Pack clamps each channel to [0,1], scales it to a byte and packs the result
// as R in the high byte through A in the low byte.
func Pack(r, g, b, a float32) uint32 {
	return uint32(toByte(r))<<24 | uint32(toByte(g))<<16 | uint32(toByte(b))<<8 | uint32(toByte(a))
}

// Unpack splits a packed voxel into its channels.
func Unpack(v uint32) (r, g, b, a uint8) {
	return uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0 || math.IsNaN(float64(v)):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v * 255)
}
