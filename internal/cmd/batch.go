package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/worldmapgen/internal/atlas"
	"github.com/MeKo-Tech/worldmapgen/internal/config"
	"github.com/MeKo-Tech/worldmapgen/internal/worker"
)

var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <input-root> <bundle.worldatlas>",
	Short: "Run the full pipeline over every subdirectory of input-root, bundling results into one .worldatlas file",
	Args:  cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		inputRoot, bundlePath := args[0], args[1]
		cfg := config.FromViper(viper.GetViper())

		entries, err := os.ReadDir(inputRoot)
		if err != nil {
			return fmt.Errorf("batch: read %s: %w", inputRoot, err)
		}

		var tasks []worker.Task
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			tasks = append(tasks, worker.Task{
				MapID:    e.Name(),
				InputDir: filepath.Join(inputRoot, e.Name()),
			})
		}
		if len(tasks) == 0 {
			return fmt.Errorf("batch: no map subdirectories found under %s", inputRoot)
		}

		bundle, err := atlas.New(bundlePath)
		if err != nil {
			return err
		}
		defer bundle.Close()

		progress := worker.NewProgress(len(tasks), true)
		pool := worker.New(worker.Config{
			Workers:    batchWorkers,
			Generator:  &atlasGenerator{cfg: cfg, bundle: bundle},
			OnProgress: progress.Callback(),
		})

		results := pool.Run(context.Background(), tasks)
		progress.Done()

		var failed int
		for _, r := range results {
			if r.Err != nil {
				failed++
				progress.RecordFailedMap(r.Task.MapID)
				fmt.Fprintf(os.Stderr, "map %s failed: %v\n", r.Task.MapID, r.Err)
			}
		}
		fmt.Println(progress.Summary())
		if failed > 0 {
			return fmt.Errorf("batch: %d of %d maps failed", failed, len(tasks))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "number of maps to generate concurrently")
	rootCmd.AddCommand(batchCmd)
}

// atlasGenerator adapts runFull/writeOutputs to worker.Generator, staging
// each map's artifacts in a temporary directory before streaming them into
// the shared atlas bundle.
type atlasGenerator struct {
	cfg    config.Generation
	bundle *atlas.Writer
}

func (g *atlasGenerator) Generate(ctx context.Context, job worker.Task) error {
	tmp, err := os.MkdirTemp("", "worldmapgen-"+job.MapID+"-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	res, err := runFull(defaultMapInputs(job.InputDir), g.cfg)
	if err != nil {
		return err
	}
	if _, err := writeOutputs(tmp, res); err != nil {
		return err
	}

	if err := g.bundle.RegisterMap(job.MapID, ""); err != nil {
		return err
	}

	return filepath.WalkDir(tmp, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(tmp, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return g.bundle.WriteFile(job.MapID, filepath.ToSlash(rel), data)
	})
}
