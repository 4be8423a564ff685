// Package exec provides the subprocess-backed deck renderer. Deck binary
// assembly is delegated to an external render command; previews go through
// LibreOffice when it is installed.
package exec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/core/ports/driving"
	"github.com/geotra-labs/deckgen/internal/logger"
)

// Ensure Renderer implements the interface.
var _ driven.DeckRenderer = (*Renderer)(nil)

// sofficeCandidates are the LibreOffice binaries probed for previews, in
// order.
var sofficeCandidates = []string{
	"soffice",
	"/usr/bin/soffice",
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
}

// Renderer renders documents by handing a prepared binding plan to an
// external command. The command is invoked as:
//
//	<command> <plan.json> <master-template> <output.pptx>
//
// and must write the finished deck to the output path.
type Renderer struct {
	command string
	catalog driven.TemplateCatalog
	planner driving.RenderPlanService

	// lookPath is swappable for tests.
	lookPath func(string) (string, error)
}

// NewRenderer creates a renderer that invokes command for deck assembly.
func NewRenderer(command string, catalog driven.TemplateCatalog, planner driving.RenderPlanService) *Renderer {
	return &Renderer{
		command:  command,
		catalog:  catalog,
		planner:  planner,
		lookPath: osexec.LookPath,
	}
}

// Render produces the presentation binary for the document.
func (r *Renderer) Render(ctx context.Context, doc *domain.SlideDocument) ([]byte, error) {
	if strings.TrimSpace(r.command) == "" {
		return nil, fmt.Errorf("render command is not configured")
	}

	plan, err := r.planner.Build(ctx, doc)
	if err != nil {
		return nil, err
	}
	masterPath, err := r.catalog.MasterTemplatePath()
	if err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "deckgen-render-*")
	if err != nil {
		return nil, fmt.Errorf("creating render workspace: %w", err)
	}
	defer os.RemoveAll(workDir)

	planPath := filepath.Join(workDir, "plan.json")
	outPath := filepath.Join(workDir, "deck.pptx")

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encoding render plan: %w", err)
	}
	if err := os.WriteFile(planPath, planJSON, 0o600); err != nil {
		return nil, fmt.Errorf("writing render plan: %w", err)
	}

	argv := append(strings.Fields(r.command), planPath, masterPath, outPath)
	logger.Debug("Render command: %s", strings.Join(argv, " "))

	cmd := osexec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("render command failed: %w: %s", err, stderr.String())
	}

	payload, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("reading rendered deck: %w", err)
	}
	logger.Info("Rendered deck: %d slides, %d bytes", len(plan.Slides), len(payload))
	return payload, nil
}

// RenderPreview renders the deck and converts one page to PNG via
// LibreOffice. A missing soffice binary is domain.ErrPreviewUnavailable.
func (r *Renderer) RenderPreview(ctx context.Context, doc *domain.SlideDocument, pageIndex int) ([]byte, error) {
	soffice, err := r.locateSoffice()
	if err != nil {
		return nil, err
	}

	payload, err := r.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "deckgen-preview-*")
	if err != nil {
		return nil, fmt.Errorf("creating preview workspace: %w", err)
	}
	defer os.RemoveAll(workDir)

	pptxPath := filepath.Join(workDir, "preview.pptx")
	if err := os.WriteFile(pptxPath, payload, 0o600); err != nil {
		return nil, fmt.Errorf("writing preview deck: %w", err)
	}

	cmd := osexec.CommandContext(ctx, soffice,
		"--headless", "--convert-to", "png", "--outdir", workDir, pptxPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("preview conversion failed: %w: %s", err, stderr.String())
	}

	pngs, err := filepath.Glob(filepath.Join(workDir, "*.png"))
	if err != nil || len(pngs) == 0 {
		return nil, fmt.Errorf("preview conversion produced no images: %w", domain.ErrPreviewUnavailable)
	}
	sort.Strings(pngs)

	// Clamp to the available page range rather than failing.
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageIndex >= len(pngs) {
		pageIndex = len(pngs) - 1
	}
	return os.ReadFile(pngs[pageIndex])
}

// locateSoffice probes the candidate binaries.
func (r *Renderer) locateSoffice() (string, error) {
	for _, candidate := range sofficeCandidates {
		if path, err := r.lookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("soffice not found: %w", domain.ErrPreviewUnavailable)
}
