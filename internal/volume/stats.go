package volume

import "github.com/MeKo-Tech/cloudnoise/internal/voxel"

// ChannelStats summarises one byte channel across a volume.
type ChannelStats struct {
	Mean float64
	Min  uint8
	Max  uint8
}

// Stats returns per-channel statistics in R, G, B, A order.
func Stats(v *Volume) [4]ChannelStats {
	var stats [4]ChannelStats
	if len(v.Voxels) == 0 {
		return stats
	}

	var sums [4]uint64
	for i := range stats {
		stats[i].Min = 255
	}
	for _, packed := range v.Voxels {
		r, g, b, a := voxel.Unpack(packed)
		for i, c := range [4]uint8{r, g, b, a} {
			sums[i] += uint64(c)
			stats[i].Min = min(stats[i].Min, c)
			stats[i].Max = max(stats[i].Max, c)
		}
	}
	for i := range stats {
		stats[i].Mean = float64(sums[i]) / float64(len(v.Voxels))
	}
	return stats
}
