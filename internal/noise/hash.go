// Package noise implements tileable 3D value, Worley and Perlin noise and the
// fractal recipes that combine them into cloud texture channels.
//
// All math is single precision. The constants in Hash and Value are part of
// the output format: changing them changes every generated volume.
package noise

import "math"

// Hash returns a deterministic pseudo-random value in [0,1) for the scalar
// lattice index n.
func Hash(n float32) float32 {
	return fract(float32(math.Sin(float64(n+1.951))) * 43758.5453)
}
