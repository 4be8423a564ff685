package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

var (
	planHistoryFile  string
	planGoal         string
	planCompany      string
	planRequirements string
	planOut          string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Derive a deck structure from a planning conversation",
	Long: `Derives a short numbered deck structure from a planning conversation.

The conversation is read from --history-file, or from stdin when the flag
is omitted. The resulting structure text is printed to stdout and feeds
the outline stage.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planHistoryFile, "history-file", "", "conversation log file (default: stdin)")
	planCmd.Flags().StringVar(&planGoal, "goal", "", "final goal of the deck")
	planCmd.Flags().StringVar(&planCompany, "company", "", "target audience company")
	planCmd.Flags().StringVar(&planRequirements, "requirements", "", "additional constraints")
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "also write the structure to this file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if plannerService == nil {
		return errors.New("structure planner not configured")
	}

	history, err := readPlanHistory(cmd)
	if err != nil {
		return err
	}

	structure, err := plannerService.Plan(context.Background(), domain.PlanningContext{
		ConversationHistory:    history,
		Goal:                   planGoal,
		TargetCompany:          planCompany,
		AdditionalRequirements: planRequirements,
	})
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	if planOut != "" {
		if err := os.WriteFile(planOut, []byte(structure+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing structure file: %w", err)
		}
	}

	cmd.Println(structure)
	return nil
}

func readPlanHistory(cmd *cobra.Command) (string, error) {
	if planHistoryFile != "" {
		data, err := os.ReadFile(planHistoryFile)
		if err != nil {
			return "", fmt.Errorf("reading history file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading conversation from stdin: %w", err)
	}
	return string(data), nil
}
