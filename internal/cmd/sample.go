package cmd

import (
	"fmt"
	"io"

	"github.com/MeKo-Tech/cloudnoise/internal/noise"
	"github.com/MeKo-Tech/cloudnoise/internal/voxel"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the voxel at a normalized coordinate",
	Long:  "Evaluate a single voxel of the base-shape or erosion volume at a coordinate in [0,1]^3.",
	RunE:  runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().StringP("mode", "m", voxel.BaseShape.String(), "Volume to sample: base or erosion")
	sampleCmd.Flags().Float32("x", 0, "X coordinate in [0,1]")
	sampleCmd.Flags().Float32("y", 0, "Y coordinate in [0,1]")
	sampleCmd.Flags().Float32("z", 0, "Z coordinate in [0,1]")
	sampleCmd.Flags().String("perlin-worley", noise.RemapPerlin.String(), "Perlin-Worley blend: remap-perlin or remap-worley")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"sample.mode", "mode"},
		{"sample.x", "x"},
		{"sample.y", "y"},
		{"sample.z", "z"},
		{"sample.perlin_worley", "perlin-worley"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, sampleCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runSample(cmd *cobra.Command, args []string) error {
	mode, err := voxel.ParseMode(viper.GetString("sample.mode"))
	if err != nil {
		return err
	}
	variant, err := noise.ParsePerlinWorleyVariant(viper.GetString("sample.perlin_worley"))
	if err != nil {
		return err
	}

	coord := mgl32.Vec3{
		float32(viper.GetFloat64("sample.x")),
		float32(viper.GetFloat64("sample.y")),
		float32(viper.GetFloat64("sample.z")),
	}
	return printSample(cmd.OutOrStdout(), voxel.Sampler{Mode: mode, Variant: variant}, coord)
}

func printSample(w io.Writer, s voxel.Sampler, coord mgl32.Vec3) error {
	packed := s.Sample(coord)
	r, g, b, a := voxel.Unpack(packed)
	_, err := fmt.Fprintf(w, "%s (%g, %g, %g): %d r=%d g=%d b=%d a=%d\n",
		s.Mode, coord[0], coord[1], coord[2], packed, r, g, b, a)
	return err
}
