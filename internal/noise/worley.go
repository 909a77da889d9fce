package noise

import "github.com/go-gl/mathgl/mgl32"

// Worley returns tileable cellular noise in [0,1]: the squared distance from
// p to the nearest jittered feature point, with cellCount cells across the
// unit tile.
//
// Only the 27 cells around the sample are searched. For cell counts close to
// the sampling resolution the result is an approximation.
func Worley(p mgl32.Vec3, cellCount float32) float32 {
	pCell := p.Mul(cellCount)
	base := floor3(pCell)

	d := float32(1.0e10)
	for xo := -1; xo <= 1; xo++ {
		for yo := -1; yo <= 1; yo++ {
			for zo := -1; zo <= 1; zo++ {
				cell := base.Add(mgl32.Vec3{float32(xo), float32(yo), float32(zo)})
				tp := pCell.Sub(FeaturePoint(cell, cellCount))
				d = min(d, tp.Dot(tp))
			}
		}
	}
	return clamp01(d)
}

// FeaturePoint returns the jittered feature point of the integer cell, in the
// scaled space where cells have unit size. The jitter is looked up on the cell
// wrapped modulo cellCount, which is what makes Worley tile.
func FeaturePoint(cell mgl32.Vec3, cellCount float32) mgl32.Vec3 {
	j := Value(mod3(cell, cellCount))
	return cell.Add(mgl32.Vec3{j, j, j})
}
