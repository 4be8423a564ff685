package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

func TestRenderCmd_Use(t *testing.T) {
	assert.Equal(t, "render", renderCmd.Use)
}

func TestRenderCmd_WritesPresentation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docPath := saveTestDocument(t)
	outPath := filepath.Join(t.TempDir(), "deck.pptx")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"render", "--doc", docPath, "--out", outPath})
	defer func() {
		rootCmd.SetArgs(nil)
		renderDoc = defaultDocumentPath
		renderOut = "deck.pptx"
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Rendered 2 slides")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data)
}

func TestRenderCmd_TemplateDrift(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rendererService = &mockRenderer{renderErr: domain.ErrTemplateDrift}
	docPath := saveTestDocument(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"render", "--doc", docPath})
	defer func() {
		rootCmd.SetArgs(nil)
		renderDoc = defaultDocumentPath
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTemplateDrift)
	assert.Contains(t, err.Error(), "out of sync")
}

func TestRenderCmd_RendererNotConfigured(t *testing.T) {
	oldRenderer := rendererService
	rendererService = nil
	defer func() {
		rendererService = oldRenderer
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"render"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestPreviewCmd_WritesImage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rendererService = &mockRenderer{preview: []byte("\x89PNG")}
	docPath := saveTestDocument(t)
	outPath := filepath.Join(t.TempDir(), "preview.png")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"preview", "--doc", docPath, "--page", "1", "--out", outPath})
	defer func() {
		rootCmd.SetArgs(nil)
		previewDoc = defaultDocumentPath
		previewPage = 0
		previewOut = "preview.png"
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Preview of page 1")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data)
}

func TestPreviewCmd_Unavailable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rendererService = &mockRenderer{previewErr: domain.ErrPreviewUnavailable}
	docPath := saveTestDocument(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"preview", "--doc", docPath})
	defer func() {
		rootCmd.SetArgs(nil)
		previewDoc = defaultDocumentPath
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "soffice")
}
