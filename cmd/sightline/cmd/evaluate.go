package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmcferran/sightline/internal/domain/sighting"
)

var (
	evaluateSightingID string
	evaluateEvent      string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a sighting against every signal",
	Long: `Runs the diagnostic evaluation of one sighting event against every
signal, active or not, and prints one verdict per signal.

Examples:
  go run ./cmd/sightline evaluate --sighting s-123
  go run ./cmd/sightline evaluate --sighting s-123 --event sighting_confirmed`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateSightingID, "sighting", "", "sighting id (required)")
	evaluateCmd.Flags().StringVar(&evaluateEvent, "event", string(sighting.EventNewSighting), "event type")
	evaluateCmd.MarkFlagRequired("sighting")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := setupEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	svc := e.newEvaluationService()

	evals, err := svc.DetailedEvaluation(ctx, evaluateSightingID, sighting.EventType(evaluateEvent))
	if err != nil {
		return fmt.Errorf("evaluate sighting: %w", err)
	}

	matched := 0
	for _, ev := range evals {
		mark := "✗"
		if ev.Matched {
			mark = "✓"
			matched++
		}
		fmt.Printf("%s %-30s %s\n", mark, ev.Signal.ID, ev.Reason)
	}
	fmt.Printf("\n%d of %d signals matched\n", matched, len(evals))

	return nil
}
