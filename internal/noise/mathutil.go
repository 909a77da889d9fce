package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func floor32(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// fract returns x - floor(x), folded into [0,1).
func fract(x float32) float32 {
	f := x - floor32(x)
	if f >= 1 {
		return 0
	}
	return f
}

// mod follows the GLSL definition x - y*floor(x/y), so the result carries
// the sign of y.
func mod(x, y float32) float32 {
	return x - y*floor32(x/y)
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func floor3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{floor32(v[0]), floor32(v[1]), floor32(v[2])}
}

func mod3(v mgl32.Vec3, y float32) mgl32.Vec3 {
	return mgl32.Vec3{mod(v[0], y), mod(v[1], y), mod(v[2], y)}
}
