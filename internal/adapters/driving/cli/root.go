// Package cli implements the cobra command tree for deckgen. Commands are
// thin adapters: they parse flags, delegate to the core services injected
// via SetServices, and move slide documents through the document store so
// each pipeline stage is independently re-runnable.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/core/ports/driving"
	"github.com/geotra-labs/deckgen/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultDocumentPath is where stage commands read and write the working
// slide document unless --doc overrides it.
const defaultDocumentPath = "slide.json"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "Generate slide decks from business requests",
	Long: `deckgen builds presentation decks stage by stage: plan a structure from a
conversation, outline it against a template catalog, generate placeholder
content with an LLM, and render the result to a presentation file.

Each stage reads and writes the working document (slide.json by default),
so stages can be re-run independently.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Package-level services, injected once at startup. Commands nil-check the
// services they need and fail with a configuration error when absent.
var (
	plannerService  driving.StructurePlanner
	outlineService  driving.OutlineService
	contentService  driving.ContentService
	catalogService  driven.TemplateCatalog
	documentStore   driven.DocumentStore
	deckStore       driven.DeckStore
	rendererService driven.DeckRenderer
)

// Services aggregates everything the command tree depends on. Optional
// collaborators may be nil; the commands that need them report it.
type Services struct {
	Planner  driving.StructurePlanner
	Outliner driving.OutlineService
	Content  driving.ContentService
	Catalog  driven.TemplateCatalog
	DocStore driven.DocumentStore
	Decks    driven.DeckStore
	Renderer driven.DeckRenderer
}

// SetServices injects the service implementations used by all commands.
func SetServices(s Services) {
	plannerService = s.Planner
	outlineService = s.Outliner
	contentService = s.Content
	catalogService = s.Catalog
	documentStore = s.DocStore
	deckStore = s.Decks
	rendererService = s.Renderer
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
