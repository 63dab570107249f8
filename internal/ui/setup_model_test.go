package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuckie/modelpick/internal/config"
)

func TestSetupOllamaDefaults(t *testing.T) {
	m := NewSetup(&config.Config{OllamaURL: "http://gpu-box:11434"})

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, setupStepURL, m.step)
	assert.Equal(t, "http://gpu-box:11434", m.urlInput.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, setupStepConfirm, m.step)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	res, ok := m.Result()
	assert.True(t, ok)
	assert.Equal(t, SourceSetup{Kind: SourceOllama, BaseURL: "http://gpu-box:11434"}, res)
}

func TestSetupRejectsBadURL(t *testing.T) {
	m := NewSetup(nil)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("localhost:8000")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, setupStepURL, m.step)
	assert.Contains(t, m.View(), "http:// or https://")
}

func TestSetupAbort(t *testing.T) {
	m := NewSetup(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, ok := m.Result()
	assert.False(t, ok)
}

func TestSourceSetupApply(t *testing.T) {
	cfg := &config.Config{OllamaURL: "http://localhost:11434"}

	SourceSetup{Kind: SourceOpenAILike, BaseURL: "https://api.example.com/v1", APIKey: "sk-x"}.Apply(cfg)
	assert.Equal(t, "https://api.example.com/v1", cfg.OpenAILikeBaseURL)
	assert.Equal(t, "sk-x", cfg.OpenAILikeAPIKey)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)

	SourceSetup{Kind: SourceOllama, BaseURL: "http://other:11434"}.Apply(cfg)
	assert.Equal(t, "http://other:11434", cfg.OllamaURL)
}

func TestValidateBaseURL(t *testing.T) {
	assert.NoError(t, validateBaseURL("http://localhost:11434"))
	assert.NoError(t, validateBaseURL(" https://api.example.com/v1 "))
	assert.Error(t, validateBaseURL(""))
	assert.Error(t, validateBaseURL("ftp://host"))
	assert.Error(t, validateBaseURL("http://"))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "(none)", maskSecret(" "))
	assert.Equal(t, "******", maskSecret("abc"))
	assert.Equal(t, "sk-****890", maskSecret("sk-1234890"))
}
