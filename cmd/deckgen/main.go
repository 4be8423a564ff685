// Command deckgen generates presentation decks from business requests.
// It assembles the core services and adapters from local configuration
// (~/.deckgen/config.toml) and environment variables, then hands control
// to the cobra command tree.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	catalogfile "github.com/geotra-labs/deckgen/internal/adapters/driven/catalog/file"
	"github.com/geotra-labs/deckgen/internal/adapters/driven/llm"
	"github.com/geotra-labs/deckgen/internal/adapters/driven/renderer/exec"
	researchfile "github.com/geotra-labs/deckgen/internal/adapters/driven/research/file"
	"github.com/geotra-labs/deckgen/internal/adapters/driven/storage/sqlite"
	storefile "github.com/geotra-labs/deckgen/internal/adapters/driven/store/file"
	"github.com/geotra-labs/deckgen/internal/adapters/driving/cli"
	"github.com/geotra-labs/deckgen/internal/config"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/core/services"
	"github.com/geotra-labs/deckgen/internal/logger"
)

func main() {
	// Optional .env for local development; real config lives in ~/.deckgen.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	llmService := buildLLM(cfg)
	if llmService != nil {
		defer llmService.Close()
	}

	var catalog driven.TemplateCatalog
	var renderer driven.DeckRenderer
	if root := cfg.GetString(config.KeyCatalogRoot); root != "" {
		fileCatalog, err := catalogfile.NewCatalog(root)
		if err != nil {
			return fmt.Errorf("loading template catalog: %w", err)
		}
		catalog = fileCatalog

		planner := services.NewRenderPlanner(catalog, exec.NewInventory(root))
		renderer = exec.NewRenderer(cfg.GetString(config.KeyRenderCommand), catalog, planner)
	}

	var research driven.ResearchProvider
	if path := cfg.GetString(config.KeyResearchDocument); path != "" {
		research = researchfile.NewProvider(path, cfg.GetInt(config.KeyResearchMaxChars))
	}

	deckStore, err := sqlite.NewDeckStore("")
	if err != nil {
		return fmt.Errorf("opening deck store: %w", err)
	}
	defer deckStore.Close()

	svc := cli.Services{
		Planner:  services.NewPlannerService(llmService),
		Catalog:  catalog,
		DocStore: storefile.NewDocumentStore(),
		Decks:    deckStore,
		Renderer: renderer,
	}
	if catalog != nil {
		svc.Outliner = services.NewOutlineGenerator(catalog, llmService)
		svc.Content = services.NewContentGenerator(catalog, llmService, research)
	}
	cli.SetServices(svc)

	return cli.Execute()
}

// apiKeyEnvVars maps provider names to their conventional environment
// variable, consulted when the config has no key set.
var apiKeyEnvVars = map[string]string{
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderGemini:    "GEMINI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// buildLLM constructs the configured LLM provider. Returns nil when no
// provider is configured or it cannot be created; the services degrade
// to their deterministic fallbacks.
func buildLLM(cfg *config.Store) driven.LLMService {
	settings := &llm.Settings{
		Provider:          cfg.GetString(config.KeyLLMProvider),
		Model:             cfg.GetString(config.KeyLLMModel),
		APIKey:            cfg.GetString(config.KeyLLMAPIKey),
		RequestsPerSecond: cfg.GetFloat(config.KeyLLMRateLimit),
	}
	if settings.APIKey == "" {
		settings.APIKey = os.Getenv(apiKeyEnvVars[settings.Provider])
	}

	svc, err := llm.NewService(context.Background(), settings)
	if err != nil {
		logger.Warn("LLM provider %s unavailable: %v", settings.Provider, err)
		return nil
	}
	if svc == nil {
		logger.Debug("No LLM provider configured")
		return nil
	}
	return svc
}
