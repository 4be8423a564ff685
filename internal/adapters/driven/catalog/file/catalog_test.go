package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

const testManifest = `{
  "master_file": "master.pptx",
  "assets": [
    {
      "id": "cover_001",
      "file_name": "cover_001.pptx",
      "description": "表紙スライド",
      "category": "cover",
      "tags": ["cover", "title"],
      "placeholders": [
        {"name": "P1", "idx": 0, "description": "相手企業名向け資料", "edit_policy": "populate"},
        {"name": "P2", "idx": 1, "description": "「提案概要」と記載する", "edit_policy": "fixed", "font_size": 24}
      ]
    },
    {
      "id": "body_001",
      "file_name": "body_001.pptx",
      "description": "本文スライド",
      "placeholders": [
        {"name": "B1", "idx": 0, "description": "主張をまとめる"}
      ]
    }
  ]
}`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	err := os.WriteFile(filepath.Join(root, ManifestFileName), []byte(content), 0o644)
	require.NoError(t, err)
	return root
}

func TestNewCatalog_LoadsManifest(t *testing.T) {
	root := writeManifest(t, testManifest)

	catalog, err := NewCatalog(root)
	require.NoError(t, err)

	assets := catalog.List()
	require.Len(t, assets, 2)
	assert.Equal(t, "cover_001", assets[0].ID)
	assert.Equal(t, "body_001", assets[1].ID)
}

func TestNewCatalog_MissingManifest(t *testing.T) {
	_, err := NewCatalog(t.TempDir())
	require.ErrorIs(t, err, domain.ErrManifestMissing)
}

func TestNewCatalog_InvalidJSON(t *testing.T) {
	root := writeManifest(t, "{not json")

	_, err := NewCatalog(root)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrManifestMissing)
}

func TestNewCatalog_DuplicateAssetID(t *testing.T) {
	root := writeManifest(t, `{
  "assets": [
    {"id": "a", "file_name": "a.pptx", "placeholders": []},
    {"id": "a", "file_name": "a2.pptx", "placeholders": []}
  ]
}`)

	_, err := NewCatalog(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate asset ID")
}

func TestNewCatalog_DuplicatePlaceholderIndex(t *testing.T) {
	root := writeManifest(t, `{
  "assets": [
    {"id": "a", "file_name": "a.pptx", "placeholders": [
      {"name": "P1", "idx": 0, "description": "x"},
      {"name": "P2", "idx": 0, "description": "y"}
    ]}
  ]
}`)

	_, err := NewCatalog(root)
	require.Error(t, err)
}

func TestCatalog_Get(t *testing.T) {
	catalog, err := NewCatalog(writeManifest(t, testManifest))
	require.NoError(t, err)

	asset, err := catalog.Get("cover_001")
	require.NoError(t, err)
	assert.Equal(t, "cover_001.pptx", asset.FileName)
	require.Len(t, asset.Placeholders, 2)
	// Policy defaults to generate when the manifest omits it.
	body, err := catalog.Get("body_001")
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyGenerate, body.Placeholders[0].Policy)

	_, err = catalog.Get("ghost")
	require.ErrorIs(t, err, domain.ErrUnknownAsset)
}

func TestCatalog_GetPlaceholder(t *testing.T) {
	catalog, err := NewCatalog(writeManifest(t, testManifest))
	require.NoError(t, err)

	spec, err := catalog.GetPlaceholder("cover_001", "P2")
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyFixed, spec.Policy)
	// Extra manifest keys survive as metadata.
	assert.Equal(t, float64(24), spec.Metadata["font_size"])

	_, err = catalog.GetPlaceholder("cover_001", "P9")
	require.ErrorIs(t, err, domain.ErrUnknownPlaceholder)

	_, err = catalog.GetPlaceholder("ghost", "P1")
	require.ErrorIs(t, err, domain.ErrUnknownAsset)
}

func TestCatalog_MasterTemplatePath(t *testing.T) {
	root := writeManifest(t, testManifest)
	catalog, err := NewCatalog(root)
	require.NoError(t, err)

	path, err := catalog.MasterTemplatePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "master.pptx"), path)
}

func TestCatalog_MasterTemplatePath_Undeclared(t *testing.T) {
	root := writeManifest(t, `{"assets": []}`)
	catalog, err := NewCatalog(root)
	require.NoError(t, err)

	_, err = catalog.MasterTemplatePath()
	require.ErrorIs(t, err, domain.ErrManifestMissing)
}

func TestCatalog_AssetPath(t *testing.T) {
	root := writeManifest(t, testManifest)
	catalog, err := NewCatalog(root)
	require.NoError(t, err)

	path, err := catalog.AssetPath("body_001")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "body_001.pptx"), path)

	_, err = catalog.AssetPath("ghost")
	require.ErrorIs(t, err, domain.ErrUnknownAsset)
}
