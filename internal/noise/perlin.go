package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Frequency multiplier between Perlin octaves.
const octaveFrequencyFactor = 2

// Perlin returns tileable fractal Perlin noise in [0,1] at p. frequency is the
// number of gradient periods across the unit tile for the first octave and
// must be an integer for the result to tile. octaveCount values below 1 are
// treated as 1.
//
// The octave weight starts at 0.5 and is squared after every octave
// (0.5, 0.25, 0.0625, ...), not halved. Generated textures depend on this.
func Perlin(p mgl32.Vec3, frequency float32, octaveCount int) float32 {
	if octaveCount < 1 {
		octaveCount = 1
	}

	var sum, weightSum float32
	weight := float32(0.5)
	for oct := 0; oct < octaveCount; oct++ {
		// 3D periodic gradient noise shows stripes along z, so sample the
		// 4D field on the w=0 hyperplane instead.
		p4 := mgl32.Vec4{p[0], p[1], p[2], 0}.Mul(frequency)
		val := Gradient4(p4, mgl32.Vec4{frequency, frequency, frequency, frequency})

		sum += val * weight
		weightSum += weight

		weight *= weight
		frequency *= octaveFrequencyFactor
	}

	return clamp01((sum/weightSum)*0.5 + 0.5)
}

// Gradient4 is periodic classic Perlin noise in four dimensions, returning
// roughly [-1,1]. Lattice coordinates wrap modulo rep on each axis.
//
// Hashing uses the mod-289 permutation polynomial and gradients are taken from
// a 7x7x6 lattice folded onto the cross-polytope, as in the GLSL noise
// functions by Stefan Gustavson.
func Gradient4(p, rep mgl32.Vec4) float32 {
	var pi0, pi1, pf0, pf1 mgl32.Vec4
	for i := range p {
		pi0[i] = mod(floor32(p[i]), rep[i])
		pi1[i] = mod(pi0[i]+1, rep[i])
		pf0[i] = fract(p[i])
		pf1[i] = pf0[i] - 1
	}

	// Corner c has bit k set when it sits on the upper lattice line of axis k.
	var n [16]float32
	for c := 0; c < 16; c++ {
		var cellHash float32
		var offset mgl32.Vec4
		for axis := 0; axis < 4; axis++ {
			lattice, frac := pi0[axis], pf0[axis]
			if c&(1<<axis) != 0 {
				lattice, frac = pi1[axis], pf1[axis]
			}
			cellHash = permute(cellHash + lattice)
			offset[axis] = frac
		}
		n[c] = gradient(cellHash).Dot(offset)
	}

	// Collapse one axis at a time, w first, then z, y and x.
	width := 16
	for axis := 3; axis >= 0; axis-- {
		t := fade(pf0[axis])
		width /= 2
		for c := 0; c < width; c++ {
			n[c] = mix(n[c], n[c+width], t)
		}
	}

	return 2.2 * n[0]
}

// gradient maps a permuted hash to a normalised 4D gradient.
func gradient(h float32) mgl32.Vec4 {
	gx := h / 7
	gy := floor32(gx) / 7
	gz := floor32(gy) / 6
	gx = fract(gx) - 0.5
	gy = fract(gy) - 0.5
	gz = fract(gz) - 0.5
	gw := 0.75 - abs32(gx) - abs32(gy) - abs32(gz)

	// Fold points outside the octahedron back inside.
	if gw <= 0 {
		gx -= step(gx) - 0.5
		gy -= step(gy) - 0.5
		gz -= step(gz) - 0.5
	}

	g := mgl32.Vec4{gx, gy, gz, gw}
	return g.Mul(taylorInvSqrt(g.Dot(g)))
}

func mod289(x float32) float32 {
	return x - floor32(x*(1.0/289.0))*289
}

func permute(x float32) float32 {
	return mod289((x*34 + 1) * x)
}

func taylorInvSqrt(r float32) float32 {
	return 1.79284291400159 - 0.85373472095314*r
}

// fade is the quintic interpolant 6t^5 - 15t^4 + 10t^3.
func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

// step returns 0 for x < 0 and 1 otherwise.
func step(x float32) float32 {
	if x < 0 {
		return 0
	}
	return 1
}

func abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
