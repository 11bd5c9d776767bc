package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/talgya/crimenet/internal/config"
	"github.com/talgya/crimenet/internal/engine"
	"github.com/talgya/crimenet/internal/output"
	"github.com/talgya/crimenet/internal/persistence"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and write its daily metrics series",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			outDir, _ := cmd.Flags().GetString("out")
			dbPath, _ := cmd.Flags().GetString("db")
			seedFlag, _ := cmd.Flags().GetInt64("seed")
			horizonFlag, _ := cmd.Flags().GetInt("horizon")

			cfg := config.Default()
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("seed") {
				cfg.Simulation.Seed = seedFlag
			}
			if cmd.Flags().Changed("horizon") {
				cfg.Simulation.HorizonDays = horizonFlag
			}

			sim, err := engine.NewSimulation(cfg)
			if err != nil {
				return err
			}
			if err := sim.Run(); err != nil {
				return fmt.Errorf("run aborted: %w", err)
			}

			records := sim.Collector().Records()

			csvPath, err := output.WriteRun(outDir, cfg, records, time.Now())
			if err != nil {
				return err
			}
			slog.Info("results written", "csv", csvPath)

			if dbPath != "" {
				db, err := persistence.Open(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()

				params, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				runID, err := db.SaveRun(cfg.Simulation.Seed, cfg.Simulation.HorizonDays,
					cfg.Model.NAgents, string(params), records)
				if err != nil {
					return err
				}
				slog.Info("run stored", "db", dbPath, "run_id", runID)
			}

			return nil
		},
	}

	cmd.Flags().String("config", "", "YAML config file (defaults used if omitted)")
	cmd.Flags().String("out", "experiments", "Output directory for CSV results")
	cmd.Flags().String("db", "", "SQLite database to store the run in (optional)")
	cmd.Flags().Int64("seed", 42, "Override the random seed")
	cmd.Flags().Int("horizon", 365, "Override the horizon in days")

	return cmd
}
