package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/crimenet/internal/agents"
	"github.com/talgya/crimenet/internal/config"
	"github.com/talgya/crimenet/internal/engine"
)

// sweepResult is one replicate's long-run outcome at one parameter point.
type sweepResult struct {
	CoerciveCapacity float64
	Replicate        int
	Seed             int64
	Detentions       int
	Wrongful         int
	WrongfulRate     float64
	ShareCriminal    float64
	Err              error
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep coercive capacity across a range of replicated runs",
		Long: `Sweep runs the model at evenly spaced coercive-capacity points, with
several independently seeded replicates per point. Replicates run in
parallel; each replicate is itself strictly sequential, so determinism per
(seed, config) is preserved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			outDir, _ := cmd.Flags().GetString("out")
			from, _ := cmd.Flags().GetFloat64("from")
			to, _ := cmd.Flags().GetFloat64("to")
			points, _ := cmd.Flags().GetInt("points")
			replicates, _ := cmd.Flags().GetInt("replicates")

			if points < 2 {
				return fmt.Errorf("sweep needs at least 2 points, got %d", points)
			}
			if replicates < 1 {
				return fmt.Errorf("sweep needs at least 1 replicate, got %d", replicates)
			}
			if to < from {
				return fmt.Errorf("sweep range is empty: from=%g to=%g", from, to)
			}

			base := config.Default()
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				base = loaded
			}

			results := make([]sweepResult, points*replicates)
			var wg sync.WaitGroup

			for p := 0; p < points; p++ {
				cc := from + (to-from)*float64(p)/float64(points-1)
				for r := 0; r < replicates; r++ {
					wg.Add(1)
					go func(p, r int, cc float64) {
						defer wg.Done()
						cfg := *base // value copy: independent per replicate
						cfg.Model.CoerciveCapacity = cc
						cfg.Simulation.Seed = base.Simulation.Seed + int64(p*1000+r)
						results[p*replicates+r] = runReplicate(&cfg, r)
					}(p, r, cc)
				}
			}
			wg.Wait()

			for _, res := range results {
				if res.Err != nil {
					return fmt.Errorf("replicate %d at cc=%g: %w", res.Replicate, res.CoerciveCapacity, res.Err)
				}
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}
			path := filepath.Join(outDir, fmt.Sprintf("sweep__%s.csv", time.Now().Format("20060102-150405")))
			if err := writeSweepCSV(path, results); err != nil {
				return err
			}

			slog.Info("sweep finished",
				"points", points,
				"replicates", replicates,
				"summary", path,
			)
			return nil
		},
	}

	cmd.Flags().String("config", "", "Base YAML config file")
	cmd.Flags().String("out", "experiments", "Output directory for the sweep summary")
	cmd.Flags().Float64("from", 0.0, "Lowest coercive capacity")
	cmd.Flags().Float64("to", 0.10, "Highest coercive capacity")
	cmd.Flags().Int("points", 6, "Number of evenly spaced capacity points")
	cmd.Flags().Int("replicates", 4, "Independently seeded replicates per point")

	return cmd
}

func runReplicate(cfg *config.Config, replicate int) sweepResult {
	res := sweepResult{
		CoerciveCapacity: cfg.Model.CoerciveCapacity,
		Replicate:        replicate,
		Seed:             cfg.Simulation.Seed,
	}

	sim, err := engine.NewSimulation(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	if err := sim.Run(); err != nil {
		res.Err = err
		return res
	}

	records := sim.Collector().Records()
	for _, rec := range records {
		res.Detentions += rec.Detentions
		res.Wrongful += rec.WrongfulDetentions
	}
	res.WrongfulRate = engine.WrongfulRate(records)
	if len(records) > 0 {
		last := records[len(records)-1]
		res.ShareCriminal = last.Share(agents.StatusCriminal)
	}
	return res
}

func writeSweepCSV(path string, results []sweepResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"coercive_capacity", "replicate", "seed",
		"detentions", "wrongful_detentions", "wrongful_rate", "final_share_criminal",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			strconv.FormatFloat(r.CoerciveCapacity, 'f', 4, 64),
			strconv.Itoa(r.Replicate),
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.Detentions),
			strconv.Itoa(r.Wrongful),
			strconv.FormatFloat(r.WrongfulRate, 'f', 6, 64),
			strconv.FormatFloat(r.ShareCriminal, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
