package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveTestDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slide.json")
	require.NoError(t, documentStore.Save(context.Background(), path, testDocument()))
	return path
}

func TestGenerateCmd_Use(t *testing.T) {
	assert.Equal(t, "generate", generateCmd.Use)
}

func TestGenerateCmd_FillsWholeDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	content := &mockContent{}
	contentService = content
	docPath := saveTestDocument(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"generate", "--doc", docPath})
	defer func() {
		rootCmd.SetArgs(nil)
		generateDoc = defaultDocumentPath
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 1, content.docCalls)
	assert.Empty(t, content.slideCalls)
	assert.Contains(t, buf.String(), "Generated 2 slides")
}

func TestGenerateCmd_SingleSlide(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	content := &mockContent{}
	contentService = content
	docPath := saveTestDocument(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"generate", "--doc", docPath, "--slide", "slide_02"})
	defer func() {
		rootCmd.SetArgs(nil)
		generateDoc = defaultDocumentPath
		generateSlide = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"slide_02"}, content.slideCalls)
	assert.Zero(t, content.docCalls)
	assert.Contains(t, buf.String(), "Generated slide slide_02")
}

func TestGenerateCmd_MissingDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"generate", "--doc", filepath.Join(t.TempDir(), "ghost.json")})
	defer func() {
		rootCmd.SetArgs(nil)
		generateDoc = defaultDocumentPath
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "loading document")
}

func TestGenerateCmd_ServiceNotConfigured(t *testing.T) {
	oldService := contentService
	contentService = nil
	defer func() {
		contentService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"generate"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
