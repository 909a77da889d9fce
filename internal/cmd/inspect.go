package cmd

import (
	"github.com/MeKo-Tech/cloudnoise/internal/volume"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the dimensions and channel statistics of a volume file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var channelNames = [4]string{"r", "g", "b", "a"}

func runInspect(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	v, err := volume.ReadFile(args[0])
	if err != nil {
		return err
	}

	logger.Info("Volume",
		"path", args[0],
		"width", v.Width,
		"height", v.Height,
		"depth", v.Depth,
	)
	for i, s := range volume.Stats(v) {
		logger.Info("Channel",
			"channel", channelNames[i],
			"min", s.Min,
			"max", s.Max,
			"mean", s.Mean,
		)
	}
	return nil
}
