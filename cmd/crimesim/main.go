// Command crimesim runs the networked crime-dynamics simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.2.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "crimesim",
		Short: "Agent-based simulation of crime, policing, and incarceration on a social network",
		Long: `crimesim simulates a population of networked agents whose legal states
evolve daily through social influence, offending, policing, judicial
outcomes, and incarceration-driven network rewiring.

Runs are fully deterministic for a fixed seed and configuration.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "Enable per-day debug logging")

	rootCmd.AddCommand(
		newRunCmd(),
		newSweepCmd(),
		newRunsCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("crimesim version %s\n", version)
		},
	}
}
