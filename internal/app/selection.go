package app

import (
	"fmt"
	"strings"

	"github.com/chuckie/modelpick/internal/config"
	"github.com/chuckie/modelpick/internal/domain"
)

// ConfigSelection holds the chosen model/provider and can persist them.
// It implements ports.Selection.
type ConfigSelection struct {
	cfg  *config.Config
	path string
}

// NewConfigSelection binds cfg to the config file at path. An empty path
// disables Save.
func NewConfigSelection(cfg *config.Config, path string) *ConfigSelection {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &ConfigSelection{cfg: cfg, path: path}
}

// SetModel records the model id.
func (s *ConfigSelection) SetModel(model string) {
	s.cfg.Model = model
}

// SetProvider records the provider.
func (s *ConfigSelection) SetProvider(provider string) {
	s.cfg.Provider = provider
}

// Current returns the recorded pair.
func (s *ConfigSelection) Current() domain.Selection {
	return domain.Selection{Model: s.cfg.Model, Provider: s.cfg.Provider}
}

// Save writes the config file.
func (s *ConfigSelection) Save() error {
	if s.path == "" {
		return nil
	}
	if strings.TrimSpace(s.cfg.Model) == "" || strings.TrimSpace(s.cfg.Provider) == "" {
		return fmt.Errorf("model and provider are required")
	}
	if err := config.SaveToFile(s.path, s.cfg); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}
