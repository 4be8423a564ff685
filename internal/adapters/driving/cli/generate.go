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
	generateDoc          string
	generateSlide        string
	generateRequest      string
	generateCompany      string
	generateResearchFile string
	generateNotes        string
	generateWebSearch    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fill slide placeholders with generated content",
	Long: `Generates text for every placeholder in the working document according
to each placeholder's edit policy. Fixed and populate placeholders are
filled deterministically; generate placeholders use the LLM.

Use --slide to regenerate a single slide. External research supplied via
--research-file grounds the generated content and suppresses web search.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateDoc, "doc", defaultDocumentPath, "document path")
	generateCmd.Flags().StringVar(&generateSlide, "slide", "", "only regenerate this slide ID")
	generateCmd.Flags().StringVar(&generateRequest, "request", "", "content request")
	generateCmd.Flags().StringVar(&generateCompany, "company", "", "target audience company")
	generateCmd.Flags().StringVar(&generateResearchFile, "research-file", "", "external research text file")
	generateCmd.Flags().StringVar(&generateNotes, "notes", "", "additional content instructions")
	generateCmd.Flags().BoolVar(&generateWebSearch, "web-search", false, "allow live web search")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	ctx := context.Background()
	doc, err := documentStore.Load(ctx, generateDoc)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	research := ""
	if generateResearchFile != "" {
		data, err := os.ReadFile(generateResearchFile)
		if err != nil {
			return fmt.Errorf("reading research file: %w", err)
		}
		research = string(data)
	}

	gc := domain.GenerationContext{
		UserRequest:      generateRequest,
		TargetCompany:    generateCompany,
		ExternalResearch: research,
		AdditionalNotes:  generateNotes,
		PerformWebSearch: generateWebSearch,
	}

	if generateSlide != "" {
		err = contentService.GenerateForSlide(ctx, doc, generateSlide, gc)
	} else {
		err = contentService.GenerateForDocument(ctx, doc, gc)
	}
	if err != nil {
		return fmt.Errorf("content generation failed: %w", err)
	}

	if err := documentStore.Save(ctx, generateDoc, doc); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if generateSlide != "" {
		cmd.Printf("Generated slide %s -> %s\n", generateSlide, generateDoc)
	} else {
		cmd.Printf("Generated %d slides -> %s\n", len(doc.Slides), generateDoc)
	}
	if refs := doc.References(); len(refs) > 0 {
		cmd.Println("References:")
		for _, ref := range refs {
			cmd.Printf("  - %s\n", ref)
		}
	}
	return nil
}
