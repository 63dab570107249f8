package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/chuckie/modelpick/internal/domain"
	"github.com/chuckie/modelpick/internal/observability"
)

// ProviderName is the grouping key for models served by Ollama.
const ProviderName = "Ollama"

// DefaultURL is where a local Ollama server listens.
const DefaultURL = "http://localhost:11434"

// Client lists the models installed on an Ollama server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new Ollama client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 0}, // Let context handle timeout
	}
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type tagsResponse struct {
	Models []struct {
		Name   string `json:"name"`
		Model  string `json:"model"`
		Size   int64  `json:"size"`
		Digest string `json:"digest"`
	} `json:"models"`
}

// ListModels calls GET /api/tags.
func (c *Client) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, observability.Snip(strings.TrimSpace(string(body)), 200))
	}

	var data tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		observability.Logger().Printf("ollama: invalid tags JSON from %s: %v", observability.RedactForLog(c.baseURL), err)
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	models := make([]domain.ModelInfo, 0, len(data.Models))
	for _, m := range data.Models {
		name := m.Name
		if name == "" {
			name = m.Model
		}
		if name == "" {
			continue
		}
		models = append(models, domain.ModelInfo{
			Name:     name,
			Label:    fmt.Sprintf("%s (%sGB)", name, sizeInGB(m.Size)),
			Provider: ProviderName,
		})
	}
	return models, nil
}

// sizeInGB formats a byte count in decimal gigabytes with two decimals.
func sizeInGB(bytes int64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/1e9)
}
