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
	previewDoc  string
	previewPage int
	previewOut  string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a raster preview of one slide",
	Long: `Renders the working document and converts a single page to a PNG image.

Preview requires LibreOffice (soffice) on the PATH; when it is absent the
command reports that previews are unavailable.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewDoc, "doc", defaultDocumentPath, "document path")
	previewCmd.Flags().IntVarP(&previewPage, "page", "p", 0, "zero-based page index")
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "preview.png", "output image path")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	if rendererService == nil {
		return errors.New("renderer not configured")
	}
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	ctx := context.Background()
	doc, err := documentStore.Load(ctx, previewDoc)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	data, err := rendererService.RenderPreview(ctx, doc, previewPage)
	if err != nil {
		if errors.Is(err, domain.ErrPreviewUnavailable) {
			return errors.New("preview unavailable: LibreOffice (soffice) not found")
		}
		return fmt.Errorf("preview failed: %w", err)
	}

	if err := os.WriteFile(previewOut, data, 0o644); err != nil {
		return fmt.Errorf("writing preview image: %w", err)
	}

	cmd.Printf("Preview of page %d -> %s\n", previewPage, previewOut)
	return nil
}
