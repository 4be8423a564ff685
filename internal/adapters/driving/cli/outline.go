package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

var (
	outlineDoc     string
	outlineRequest string
	outlineCompany string
	outlineNotes   string
)

var outlineCmd = &cobra.Command{
	Use:   "outline [structure-file]",
	Short: "Build a deck skeleton from a structure",
	Long: `Selects slide templates from the catalog for each part of the deck
structure and writes the resulting document skeleton.

The structure text is read from the given file. When the catalog or the
LLM cannot produce a selection, a deterministic fallback outline is built
instead, so this command always yields a document.`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func init() {
	outlineCmd.Flags().StringVar(&outlineDoc, "doc", defaultDocumentPath, "output document path")
	outlineCmd.Flags().StringVar(&outlineRequest, "request", "", "original user request")
	outlineCmd.Flags().StringVar(&outlineCompany, "company", "", "target audience company")
	outlineCmd.Flags().StringVar(&outlineNotes, "notes", "", "additional outline instructions")
	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	if outlineService == nil {
		return errors.New("outline service not configured")
	}
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	structure, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading structure file: %w", err)
	}

	ctx := context.Background()
	doc, err := outlineService.Generate(ctx, string(structure), domain.GenerationContext{
		UserRequest:     outlineRequest,
		TargetCompany:   outlineCompany,
		AdditionalNotes: outlineNotes,
	})
	if err != nil {
		return fmt.Errorf("outline generation failed: %w", err)
	}

	if err := documentStore.Save(ctx, outlineDoc, doc); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	cmd.Printf("Outlined %d slides -> %s\n", len(doc.Slides), outlineDoc)
	for _, slide := range doc.Slides {
		title := ""
		if slide.Title != nil {
			title = *slide.Title
		}
		cmd.Printf("  [%d] %s (%s) %s\n", slide.PageNumber, slide.SlideID, slide.AssetID, title)
	}
	return nil
}
