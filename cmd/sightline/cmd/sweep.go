package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sweepSince time.Duration

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the score-threshold sweep",
	Long: `Pairs recent sighting score movements with the signals subscribed to
score_threshold events and prints each upward crossing that also matches
the signal's geography and conditions.

Examples:
  go run ./cmd/sightline sweep
  go run ./cmd/sightline sweep --since 1h`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().DurationVar(&sweepSince, "since", 15*time.Minute, "how far back to look for score changes")
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := setupEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	svc := e.newEvaluationService()

	matches, err := svc.SweepScoreThresholds(ctx, time.Now().Add(-sweepSince))
	if err != nil {
		return fmt.Errorf("sweep score thresholds: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No threshold crossings found")
		return nil
	}

	for _, m := range matches {
		fmt.Printf("signal %-30s sighting %-20s score %.1f\n",
			m.Signal.ID, m.Sighting.ID, m.Sighting.Score)
	}
	fmt.Printf("\n%d threshold match(es)\n", len(matches))

	return nil
}
