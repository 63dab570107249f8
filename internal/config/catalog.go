package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chuckie/modelpick/internal/domain"
)

// Selection used when nothing is configured.
const (
	DefaultProvider = "Anthropic"
	DefaultModel    = "claude-3-5-sonnet-latest"
)

// StaticModels is the built-in catalog. It is shown while dynamic sources
// load and is the fallback when they fail.
var StaticModels = []domain.ModelInfo{
	{Name: "claude-3-5-sonnet-latest", Label: "Claude 3.5 Sonnet", Provider: "Anthropic"},
	{Name: "claude-3-5-haiku-latest", Label: "Claude 3.5 Haiku", Provider: "Anthropic"},
	{Name: "claude-3-opus-latest", Label: "Claude 3 Opus", Provider: "Anthropic"},
	{Name: "gpt-4o", Label: "GPT-4o", Provider: "OpenAI"},
	{Name: "gpt-4o-mini", Label: "GPT-4o Mini", Provider: "OpenAI"},
	{Name: "gpt-4.1", Label: "GPT-4.1", Provider: "OpenAI"},
	{Name: "gpt-4.1-mini", Label: "GPT-4.1 Mini", Provider: "OpenAI"},
	{Name: "llama-3.1-8b-instant", Label: "Llama 3.1 8B (Groq)", Provider: "Groq"},
	{Name: "llama-3.3-70b-versatile", Label: "Llama 3.3 70B (Groq)", Provider: "Groq"},
	{Name: "deepseek/deepseek-coder", Label: "Deepseek-Coder V2 236B (OpenRouter)", Provider: "OpenRouter"},
	{Name: "google/gemini-flash-1.5", Label: "Google Gemini Flash 1.5 (OpenRouter)", Provider: "OpenRouter"},
	{Name: "mistralai/mistral-nemo", Label: "OpenRouter Mistral Nemo (OpenRouter)", Provider: "OpenRouter"},
}

// catalogFile is the on-disk YAML shape:
//
//	providers:
//	  - name: Anthropic
//	    models:
//	      - name: claude-3-5-sonnet-latest
//	        label: Claude 3.5 Sonnet
type catalogFile struct {
	Providers []struct {
		Name   string `yaml:"name"`
		Models []struct {
			Name  string `yaml:"name"`
			Label string `yaml:"label"`
		} `yaml:"models"`
	} `yaml:"providers"`
}

// LoadCatalog reads a YAML catalog. A missing file returns (nil, nil).
func LoadCatalog(path string) ([]domain.ModelInfo, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

// ParseCatalog decodes YAML catalog bytes.
func ParseCatalog(b []byte) ([]domain.ModelInfo, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	var models []domain.ModelInfo
	for _, p := range f.Providers {
		provider := strings.TrimSpace(p.Name)
		for _, m := range p.Models {
			mi := domain.ModelInfo{
				Name:     strings.TrimSpace(m.Name),
				Label:    strings.TrimSpace(m.Label),
				Provider: provider,
			}
			if mi.Label == "" {
				mi.Label = mi.Name
			}
			if err := mi.Validate(); err != nil {
				return nil, fmt.Errorf("%w: catalog: %v", ErrInvalidConfig, err)
			}
			models = append(models, mi)
		}
	}
	return models, nil
}

// StaticCatalog returns the catalog at path if present, otherwise the
// built-in StaticModels.
func StaticCatalog(path string) ([]domain.ModelInfo, error) {
	models, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		out := make([]domain.ModelInfo, len(StaticModels))
		copy(out, StaticModels)
		return out, nil
	}
	return models, nil
}
