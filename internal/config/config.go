package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Provider            string
	Model               string
	OllamaURL           string
	OpenAILikeBaseURL   string
	OpenAILikeAPIKey    string
	SearchDelayMS       int
	FetchTimeoutSeconds int
	UseCache            bool
	CacheTTLSeconds     int
	CatalogPath         string
}

// Load loads configuration with precedence:
// environment variables → config file → defaults.
func Load() (*Config, error) {
	// 1) Defaults
	cfg := &Config{
		Provider:            DefaultProvider,
		Model:               DefaultModel,
		OllamaURL:           "http://localhost:11434",
		OpenAILikeBaseURL:   "",
		OpenAILikeAPIKey:    "",
		SearchDelayMS:       300,
		FetchTimeoutSeconds: 10,
		UseCache:            true,
		CacheTTLSeconds:     300,
	}

	// 2) Config file (best-effort)
	if path, err := DefaultConfigPath(); err == nil {
		if fileCfg, err := LoadFromFile(path); err == nil && fileCfg != nil {
			applyPartialConfig(cfg, fileCfg)
		}
	}

	// 3) Env overrides
	if v, ok := os.LookupEnv("MODELPICK_PROVIDER"); ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := os.LookupEnv("MODELPICK_MODEL"); ok && v != "" {
		cfg.Model = v
	}
	if v, ok := os.LookupEnv("OLLAMA_URL"); ok && v != "" {
		cfg.OllamaURL = v
	}
	if v, ok := os.LookupEnv("OPENAI_LIKE_API_BASE_URL"); ok {
		cfg.OpenAILikeBaseURL = v
	}
	// If the env var exists (even empty), it wins over the config file.
	if _, ok := os.LookupEnv("OPENAI_LIKE_API_KEY"); ok {
		cfg.OpenAILikeAPIKey = getEnv("OPENAI_LIKE_API_KEY", "")
	}
	if _, ok := os.LookupEnv("SEARCH_DEBOUNCE_MS"); ok {
		cfg.SearchDelayMS = getEnvInt("SEARCH_DEBOUNCE_MS", cfg.SearchDelayMS)
	}
	if _, ok := os.LookupEnv("FETCH_TIMEOUT_SECONDS"); ok {
		cfg.FetchTimeoutSeconds = getEnvInt("FETCH_TIMEOUT_SECONDS", cfg.FetchTimeoutSeconds)
	}
	if _, ok := os.LookupEnv("ENABLE_CACHE"); ok {
		cfg.UseCache = getEnvBool("ENABLE_CACHE", cfg.UseCache)
	}
	if _, ok := os.LookupEnv("MODEL_CACHE_TTL_SECONDS"); ok {
		cfg.CacheTTLSeconds = getEnvInt("MODEL_CACHE_TTL_SECONDS", cfg.CacheTTLSeconds)
	}
	if v, ok := os.LookupEnv("MODELPICK_CATALOG_PATH"); ok && v != "" {
		cfg.CatalogPath = v
	}

	if cfg.CatalogPath == "" {
		if p, err := DefaultCatalogPath(); err == nil {
			cfg.CatalogPath = p
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and required fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Provider) == "" {
		return fmt.Errorf("%w: provider must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: model must not be empty", ErrInvalidConfig)
	}
	if c.SearchDelayMS < 0 {
		return fmt.Errorf("%w: search delay must not be negative, got %d", ErrInvalidConfig, c.SearchDelayMS)
	}
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: fetch timeout must be positive, got %d", ErrInvalidConfig, c.FetchTimeoutSeconds)
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("%w: cache TTL must not be negative, got %d", ErrInvalidConfig, c.CacheTTLSeconds)
	}
	return nil
}

// SearchDelay returns the search debounce as a duration.
func (c *Config) SearchDelay() time.Duration {
	return time.Duration(c.SearchDelayMS) * time.Millisecond
}

// FetchTimeout returns the model listing timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// CacheTTL returns how long dynamic listings stay cached.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func applyPartialConfig(dst *Config, src *PartialConfig) {
	if dst == nil || src == nil {
		return
	}
	if src.Provider != nil {
		dst.Provider = *src.Provider
	}
	if src.Model != nil {
		dst.Model = *src.Model
	}
	if src.OllamaURL != nil {
		dst.OllamaURL = *src.OllamaURL
	}
	if src.OpenAILikeBaseURL != nil {
		dst.OpenAILikeBaseURL = *src.OpenAILikeBaseURL
	}
	if src.OpenAILikeAPIKey != nil {
		dst.OpenAILikeAPIKey = *src.OpenAILikeAPIKey
	}
	if src.SearchDelayMS != nil {
		dst.SearchDelayMS = *src.SearchDelayMS
	}
	if src.FetchTimeoutSeconds != nil {
		dst.FetchTimeoutSeconds = *src.FetchTimeoutSeconds
	}
	if src.UseCache != nil {
		dst.UseCache = *src.UseCache
	}
	if src.CacheTTLSeconds != nil {
		dst.CacheTTLSeconds = *src.CacheTTLSeconds
	}
	if src.CatalogPath != nil {
		dst.CatalogPath = *src.CatalogPath
	}
}

// IsInvalid returns true when err came from validation.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// getEnv retrieves an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int with a default value.
func getEnvInt(key string, defaultValue int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as bool with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultValue
}
