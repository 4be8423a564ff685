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
	renderDoc string
	renderOut string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the document to a presentation file",
	Long: `Binds the working document onto its slide templates and writes the
finished presentation binary.

Rendering aborts when the templates have drifted from the catalog
manifest; fix the library before re-running.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderDoc, "doc", defaultDocumentPath, "document path")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "deck.pptx", "output presentation path")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if rendererService == nil {
		return errors.New("renderer not configured")
	}
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	ctx := context.Background()
	doc, err := documentStore.Load(ctx, renderDoc)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	data, err := rendererService.Render(ctx, doc)
	if err != nil {
		if errors.Is(err, domain.ErrTemplateDrift) {
			return fmt.Errorf("template library out of sync with manifest: %w", err)
		}
		return fmt.Errorf("rendering failed: %w", err)
	}

	if err := os.WriteFile(renderOut, data, 0o644); err != nil {
		return fmt.Errorf("writing presentation: %w", err)
	}

	cmd.Printf("Rendered %d slides -> %s\n", len(doc.Slides), renderOut)
	return nil
}
