package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	snapshotsSaveDoc  string
	snapshotsSaveName string
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage saved deck snapshots",
	Long: `Snapshots are immutable saved copies of finished decks, kept in the
local deck history database.`,
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotsList,
}

var snapshotsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the working document as a snapshot",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotsSave,
}

func init() {
	snapshotsSaveCmd.Flags().StringVar(&snapshotsSaveDoc, "doc", defaultDocumentPath, "document path")
	snapshotsSaveCmd.Flags().StringVar(&snapshotsSaveName, "name", "", "snapshot label")
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsSaveCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

func runSnapshotsList(cmd *cobra.Command, _ []string) error {
	if deckStore == nil {
		return errors.New("deck store not configured")
	}

	snapshots, err := deckStore.ListSnapshots(context.Background())
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		cmd.Println("No snapshots saved.")
		return nil
	}

	for _, snap := range snapshots {
		cmd.Printf("%s  %s  %s\n",
			snap.ID, snap.CreatedAt.Format("2006-01-02 15:04:05"), snap.Name)
	}
	return nil
}

func runSnapshotsSave(cmd *cobra.Command, _ []string) error {
	if deckStore == nil {
		return errors.New("deck store not configured")
	}
	if documentStore == nil {
		return errors.New("document store not configured")
	}
	if snapshotsSaveName == "" {
		return errors.New("--name is required")
	}

	ctx := context.Background()
	doc, err := documentStore.Load(ctx, snapshotsSaveDoc)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	snap, err := deckStore.SaveSnapshot(ctx, snapshotsSaveName, doc)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	cmd.Printf("Saved snapshot %s (%s)\n", snap.ID, snap.Name)
	return nil
}
