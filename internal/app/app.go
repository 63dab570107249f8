package app

import (
	"fmt"

	"github.com/chuckie/modelpick/internal/adapters/cache"
	"github.com/chuckie/modelpick/internal/adapters/source/ollama"
	"github.com/chuckie/modelpick/internal/adapters/source/openailike"
	"github.com/chuckie/modelpick/internal/adapters/source/static"
	"github.com/chuckie/modelpick/internal/config"
	"github.com/chuckie/modelpick/internal/domain"
	"github.com/chuckie/modelpick/internal/ports"
)

// App is the application container with all services.
type App struct {
	Catalog    *CatalogService
	Selection  *ConfigSelection
	Config     *config.Config
	ConfigPath string
}

// Sources returns the dynamic sources described by cfg, in merge order:
// Ollama first, then the OpenAI-like endpoint.
func Sources(cfg *config.Config) []NamedSource {
	o := ollama.NewClient(cfg.OllamaURL)
	oa := openailike.NewClient(cfg.OpenAILikeAPIKey, cfg.OpenAILikeBaseURL)
	return []NamedSource{
		{Name: "ollama", Key: o.BaseURL(), Source: o},
		{Name: "openai-like", Key: oa.BaseURL(), Source: oa},
	}
}

// New wires the catalog and selection from cfg. configPath is where
// selections are saved; builtin is the static model list.
func New(cfg *config.Config, configPath string, builtin []domain.ModelInfo, c ports.Cache) *App {
	if c == nil {
		c = cache.NewInMemory(cfg.CacheTTL())
	}
	return NewWithSources(cfg, configPath, Sources(cfg), builtin, c)
}

// NewWithSources is New with explicit dynamic sources.
func NewWithSources(cfg *config.Config, configPath string, dynamic []NamedSource, builtin []domain.ModelInfo, c ports.Cache) *App {
	return &App{
		Catalog:    NewCatalogService(dynamic, static.New(builtin), c, cfg.UseCache, cfg.FetchTimeout()),
		Selection:  NewConfigSelection(cfg, configPath),
		Config:     cfg,
		ConfigPath: configPath,
	}
}

// Reconfigure rebuilds the catalog after Config changed. The cache and the
// static list carry over; loads already running keep the old catalog.
func (a *App) Reconfigure() {
	old := a.Catalog
	a.Catalog = NewCatalogService(Sources(a.Config), old.fallback, old.cache, a.Config.UseCache, a.Config.FetchTimeout())
}

// SaveConfig persists Config to ConfigPath. An empty path is a no-op.
func (a *App) SaveConfig() error {
	if a.ConfigPath == "" {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}
	if err := config.SaveToFile(a.ConfigPath, a.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
