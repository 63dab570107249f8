package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
providers:
  - name: Anthropic
    models:
      - name: claude-3-5-sonnet-latest
        label: Claude 3.5 Sonnet
  - name: Groq
    models:
      - name: llama-3.3-70b-versatile
      - name: llama-3.1-8b-instant
        label: Llama 3.1 8B
`

func TestParseCatalog(t *testing.T) {
	models, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, models, 3)

	assert.Equal(t, "Anthropic", models[0].Provider)
	assert.Equal(t, "Claude 3.5 Sonnet", models[0].Label)
	assert.Equal(t, "llama-3.3-70b-versatile", models[1].Label, "label defaults to name")
	assert.Equal(t, "Groq", models[2].Provider)
}

func TestParseCatalogRejectsMissingName(t *testing.T) {
	_, err := ParseCatalog([]byte("providers:\n  - name: Groq\n    models:\n      - label: nameless\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseCatalogBadYAML(t *testing.T) {
	_, err := ParseCatalog([]byte("providers: [unterminated"))
	assert.Error(t, err)
}

func TestStaticCatalogFallsBackToBuiltin(t *testing.T) {
	models, err := StaticCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, StaticModels, models)

	// The returned slice is a copy.
	models[0].Label = "changed"
	assert.NotEqual(t, "changed", StaticModels[0].Label)
}

func TestStaticCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	models, err := StaticCatalog(path)
	require.NoError(t, err)
	assert.Len(t, models, 3)
}

func TestBuiltinCatalogIsValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range StaticModels {
		require.NoError(t, m.Validate())
		key := m.Provider + "/" + m.Name
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
	_, ok := seen[DefaultProvider+"/"+DefaultModel]
	assert.True(t, ok, "default selection is in the catalog")
}
