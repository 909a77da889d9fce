package noise

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Base-shape and erosion recipe parameters.
const (
	BasePerlinFrequency = 8
	BasePerlinOctaves   = 3
	BaseCellCount       = 4
	ErosionCellCount    = 2
)

// perlinWorleyFrequencies are the Worley cell multipliers of the Perlin-Worley
// channel. Only the first three feed the FBM; from 14 upwards the cells are
// smaller than a texel of a 128^3 volume.
var perlinWorleyFrequencies = [6]float32{2, 8, 14, 20, 26, 32}

// PerlinWorleyVariant selects how Perlin and Worley FBM are merged into the
// Perlin-Worley channel.
type PerlinWorleyVariant int

const (
	// RemapPerlin remaps Perlin noise into [worleyFBM, 1], following the text
	// description of the technique. This is the default.
	RemapPerlin PerlinWorleyVariant = iota
	// RemapWorley remaps Worley FBM into [0, perlin]. It looks closer to the
	// published reference figure but is not what shipped textures use.
	RemapWorley
)

func (v PerlinWorleyVariant) String() string {
	switch v {
	case RemapPerlin:
		return "remap-perlin"
	case RemapWorley:
		return "remap-worley"
	default:
		return fmt.Sprintf("PerlinWorleyVariant(%d)", int(v))
	}
}

// ParsePerlinWorleyVariant parses the names returned by String.
func ParsePerlinWorleyVariant(s string) (PerlinWorleyVariant, error) {
	switch s {
	case "remap-perlin", "":
		return RemapPerlin, nil
	case "remap-worley":
		return RemapWorley, nil
	default:
		return 0, fmt.Errorf("unknown perlin-worley variant %q: must be 'remap-perlin' or 'remap-worley'", s)
	}
}

// Remap linearly maps v from [oldMin, oldMax] to [newMin, newMax].
func Remap(v, oldMin, oldMax, newMin, newMax float32) float32 {
	return newMin + ((v-oldMin)/(oldMax-oldMin))*(newMax-newMin)
}

// WorleyFBM sums three inverted Worley octaves with weights 0.625, 0.25, 0.125.
func WorleyFBM(w0, w1, w2 float32) float32 {
	return w0*0.625 + w1*0.25 + w2*0.125
}

// TruncatedWorleyFBM is WorleyFBM for the highest stack, where the third
// octave would alias with the texel frequency and is dropped.
func TruncatedWorleyFBM(w0, w1 float32) float32 {
	return w0*0.75 + w1*0.25
}

// invertedWorley fills dst with 1 - Worley(p, cellCount*m) for each multiplier.
func invertedWorley(dst []float32, p mgl32.Vec3, cellCount float32, multipliers ...float32) {
	for i, m := range multipliers {
		dst[i] = 1 - Worley(p, cellCount*m)
	}
}

// PerlinWorley returns the Perlin-Worley value in [0,1] at p.
func PerlinWorley(p mgl32.Vec3, variant PerlinWorleyVariant) float32 {
	perlin := Perlin(p, BasePerlinFrequency, BasePerlinOctaves)

	var w [3]float32
	invertedWorley(w[:], p, BaseCellCount, perlinWorleyFrequencies[:3]...)
	worleyFBM := WorleyFBM(w[0], w[1], w[2])

	var v float32
	switch variant {
	case RemapWorley:
		v = Remap(worleyFBM, 0, 1, 0, perlin)
	default:
		v = Remap(perlin, 0, 1, worleyFBM, 1)
	}
	return clamp01(v)
}

// BaseShape returns the four channels of the base-shape volume at p, each in
// [0,1]: squared Perlin-Worley followed by three Worley FBM stacks of
// increasing frequency.
func BaseShape(p mgl32.Vec3, variant PerlinWorleyVariant) [4]float32 {
	pw := PerlinWorley(p, variant)

	// Multipliers 2..16 of the 1,2,4,8,16 series; the lowest octave does not
	// take part in any stack.
	var w [5]float32
	invertedWorley(w[1:], p, BaseCellCount, 2, 4, 8, 16)

	return [4]float32{
		clamp01(pw * pw),
		clamp01(WorleyFBM(w[1], w[2], w[3])),
		clamp01(WorleyFBM(w[2], w[3], w[4])),
		clamp01(TruncatedWorleyFBM(w[3], w[4])),
	}
}

// Erosion returns the three detail channels of the erosion volume at p, each
// in [0,1].
func Erosion(p mgl32.Vec3) [3]float32 {
	var w [4]float32
	invertedWorley(w[:], p, ErosionCellCount, 1, 2, 4, 8)

	return [3]float32{
		clamp01(WorleyFBM(w[0], w[1], w[2])),
		clamp01(WorleyFBM(w[1], w[2], w[3])),
		clamp01(TruncatedWorleyFBM(w[2], w[3])),
	}
}
