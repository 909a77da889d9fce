package noise

import "github.com/go-gl/mathgl/mgl32"

// Lattice strides used to fold a 3D cell into the scalar passed to Hash.
const (
	strideY = 57
	strideZ = 113
)

// Value returns smooth value noise in [0,1) at x. Corners are addressed as
// n + {0, 1, 57, 58, 113, 114, 170, 171} with n = p.x + 57*p.y + 113*p.z.
func Value(x mgl32.Vec3) float32 {
	p := floor3(x)
	f := x.Sub(p)
	for i := range f {
		f[i] = f[i] * f[i] * (3 - 2*f[i])
	}

	n := p[0] + p[1]*strideY + strideZ*p[2]
	return mix(
		mix(
			mix(Hash(n), Hash(n+1), f[0]),
			mix(Hash(n+strideY), Hash(n+strideY+1), f[0]),
			f[1]),
		mix(
			mix(Hash(n+strideZ), Hash(n+strideZ+1), f[0]),
			mix(Hash(n+strideZ+strideY), Hash(n+strideZ+strideY+1), f[0]),
			f[1]),
		f[2])
}
