package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/crimenet/internal/agents"
	"github.com/talgya/crimenet/internal/engine"
	"github.com/talgya/crimenet/internal/persistence"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs stored in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			limit, _ := cmd.Flags().GetInt("limit")

			db, err := persistence.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.RecentRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no stored runs")
				return nil
			}

			for _, r := range runs {
				age := r.CreatedAt
				if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
					age = humanize.Time(t)
				}

				records, err := db.LoadMetrics(r.ID)
				if err != nil {
					return err
				}

				crimes := 0
				for _, rec := range records {
					crimes += rec.CrimeEvents
				}
				summary := fmt.Sprintf("crimes=%s wrongful_rate=%.3f",
					humanize.Comma(int64(crimes)), engine.WrongfulRate(records))
				if len(records) > 0 {
					last := records[len(records)-1]
					summary += fmt.Sprintf(" final_share_criminal=%.3f",
						last.Share(agents.StatusCriminal))
				}

				fmt.Printf("%s  %s  seed=%d  agents=%s  days=%s  %s\n",
					r.ID, age, r.Seed,
					humanize.Comma(int64(r.NAgents)),
					humanize.Comma(int64(r.HorizonDays)),
					summary,
				)
			}
			return nil
		},
	}

	cmd.Flags().String("db", "data/crimenet.db", "SQLite database path")
	cmd.Flags().Int("limit", 10, "Maximum runs to list")

	return cmd
}
