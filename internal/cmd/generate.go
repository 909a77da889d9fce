package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/MeKo-Tech/cloudnoise/internal/noise"
	"github.com/MeKo-Tech/cloudnoise/internal/volume"
	"github.com/MeKo-Tech/cloudnoise/internal/voxel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate cloud noise volumes",
	Long: `Generate the base-shape and/or erosion noise volumes.

Every voxel is sampled independently, so depth slices are spread over a pool
of workers. Output files are plain text: a "width height depth" header
followed by one packed RGBA integer per voxel.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("mode", "m", "both", "Volumes to generate: base, erosion or both")
	generateCmd.Flags().Int("base-size", voxel.BaseShape.DefaultSize(), "Edge length of the base-shape volume")
	generateCmd.Flags().Int("erosion-size", voxel.Erosion.DefaultSize(), "Edge length of the erosion volume")
	generateCmd.Flags().String("base-output", "perlin_worley"+volume.FileExtension, "Base-shape output file, relative to --output-dir")
	generateCmd.Flags().String("erosion-output", "worley"+volume.FileExtension, "Erosion output file, relative to --output-dir")
	generateCmd.Flags().String("perlin-worley", noise.RemapPerlin.String(), "Perlin-Worley blend: remap-perlin or remap-worley (experimental)")
	generateCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	generateCmd.Flags().Bool("progress", true, "Show progress bar during generation")
	generateCmd.Flags().Bool("force", false, "Overwrite volumes that already exist")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"generate.mode", "mode"},
		{"generate.base_size", "base-size"},
		{"generate.erosion_size", "erosion-size"},
		{"generate.base_output", "base-output"},
		{"generate.erosion_output", "erosion-output"},
		{"generate.perlin_worley", "perlin-worley"},
		{"generate.workers", "workers"},
		{"generate.progress", "progress"},
		{"generate.force", "force"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, generateCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

// volumeJob is one volume to generate and write.
type volumeJob struct {
	path    string
	sampler voxel.Sampler
	size    int
}

// generateConfig collects the settings of one generate run.
type generateConfig struct {
	mode          string
	outputDir     string
	baseOutput    string
	erosionOutput string
	variant       string
	baseSize      int
	erosionSize   int
	workers       int
	progress      bool
	force         bool
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	cfg := generateConfig{
		mode:          viper.GetString("generate.mode"),
		outputDir:     viper.GetString("output-dir"),
		baseOutput:    viper.GetString("generate.base_output"),
		erosionOutput: viper.GetString("generate.erosion_output"),
		variant:       viper.GetString("generate.perlin_worley"),
		baseSize:      viper.GetInt("generate.base_size"),
		erosionSize:   viper.GetInt("generate.erosion_size"),
		workers:       viper.GetInt("generate.workers"),
		progress:      viper.GetBool("generate.progress"),
		force:         viper.GetBool("generate.force"),
	}

	jobs, err := planJobs(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, job := range jobs {
		if err := runJob(ctx, job, volume.Options{Workers: cfg.workers}, cfg.progress, cfg.force); err != nil {
			return err
		}
	}
	return nil
}

// planJobs validates cfg and returns the volumes it asks for, base shape
// first.
func planJobs(cfg generateConfig) ([]volumeJob, error) {
	var modes []voxel.Mode
	switch cfg.mode {
	case "both":
		modes = voxel.Modes
	default:
		m, err := voxel.ParseMode(cfg.mode)
		if err != nil {
			return nil, fmt.Errorf("invalid --mode: %w", err)
		}
		modes = []voxel.Mode{m}
	}

	variant, err := noise.ParsePerlinWorleyVariant(cfg.variant)
	if err != nil {
		return nil, err
	}

	jobs := make([]volumeJob, 0, len(modes))
	for _, m := range modes {
		size, output := cfg.baseSize, cfg.baseOutput
		if m == voxel.Erosion {
			size, output = cfg.erosionSize, cfg.erosionOutput
		}
		if size <= 0 {
			return nil, fmt.Errorf("%s size must be positive, got %d", m, size)
		}
		if output == "" {
			return nil, fmt.Errorf("%s output file must not be empty", m)
		}
		if !filepath.IsAbs(output) {
			output = filepath.Join(cfg.outputDir, output)
		}
		jobs = append(jobs, volumeJob{
			path:    output,
			sampler: voxel.Sampler{Mode: m, Variant: variant},
			size:    size,
		})
	}
	return jobs, nil
}

// runJob generates one volume and writes it. opts.OnProgress is replaced by
// the job's own reporter.
func runJob(ctx context.Context, job volumeJob, opts volume.Options, showProgress, force bool) error {
	if !force {
		if _, err := os.Stat(job.path); err == nil {
			logger.Info("Volume exists, skipping", "mode", job.sampler.Mode, "path", job.path)
			return nil
		}
	}

	logger.Info("Starting volume generation",
		"mode", job.sampler.Mode,
		"size", job.size,
		"perlin_worley", job.sampler.Variant,
		"workers", opts.WorkerCount(),
		"path", job.path,
	)

	var out io.Writer
	if showProgress {
		out = os.Stderr
	}
	reporter := volume.NewReporter(out, job.sampler.Mode.String(), job.size)
	opts.OnProgress = reporter.Observe
	start := time.Now()

	v, err := volume.Generate(ctx, job.sampler, job.size, opts)
	reporter.Finish()
	if err != nil {
		return fmt.Errorf("failed to generate %s volume: %w", job.sampler.Mode, err)
	}
	logger.Debug(reporter.Summary())

	if err := volume.WriteFile(job.path, v, force); err != nil {
		return fmt.Errorf("failed to write %s volume: %w", job.sampler.Mode, err)
	}

	logger.Info("Volume written",
		"mode", job.sampler.Mode,
		"path", job.path,
		"voxels", len(v.Voxels),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
