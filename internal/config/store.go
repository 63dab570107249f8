package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = "modelpick"

// PartialConfig represents a config file with optional fields.
// This prevents missing keys from clobbering defaults.
type PartialConfig struct {
	Provider            *string `json:"Provider,omitempty"`
	Model               *string `json:"Model,omitempty"`
	OllamaURL           *string `json:"OllamaURL,omitempty"`
	OpenAILikeBaseURL   *string `json:"OpenAILikeBaseURL,omitempty"`
	OpenAILikeAPIKey    *string `json:"OpenAILikeAPIKey,omitempty"`
	SearchDelayMS       *int    `json:"SearchDelayMS,omitempty"`
	FetchTimeoutSeconds *int    `json:"FetchTimeoutSeconds,omitempty"`
	UseCache            *bool   `json:"UseCache,omitempty"`
	CacheTTLSeconds     *int    `json:"CacheTTLSeconds,omitempty"`
	CatalogPath         *string `json:"CatalogPath,omitempty"`
}

// DefaultConfigPath returns the default per-user config path.
//
// Typically:
// - Linux:   ~/.config/modelpick/config.json
// - macOS:   ~/Library/Application Support/modelpick/config.json
// - Windows: %AppData%/modelpick/config.json
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, "config.json"), nil
}

// DefaultCatalogPath returns the per-user static catalog path, next to the
// config file.
func DefaultCatalogPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, "models.yaml"), nil
}

// LoadFromFile loads config from a JSON file. If the file doesn't exist, returns (nil, nil).
func LoadFromFile(path string) (*PartialConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg PartialConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	return &cfg, nil
}

// SaveToFile saves config to a JSON file (atomic write). Creates directories as needed.
//
// NOTE: This may include the OpenAI-like API key. The file is written with 0600 permissions.
func SaveToFile(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config JSON: %w", err)
	}
	b = append(b, '\n')

	return writeFileAtomic(path, b)
}

func writeFileAtomic(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(0o600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	// Best-effort; don't fail after successful rename.
	_ = os.Chmod(path, 0o600)

	return nil
}

// DeleteConfig removes the config file at the given path.
func DeleteConfig(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil // Already gone, not an error
		}
		return fmt.Errorf("remove config: %w", err)
	}
	return nil
}
