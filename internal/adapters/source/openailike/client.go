package openailike

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/chuckie/modelpick/internal/domain"
)

// ProviderName is the grouping key for models served by an
// OpenAI-compatible endpoint.
const ProviderName = "OpenAILike"

// Client lists models from any endpoint that implements GET /models.
type Client struct {
	apiKey  string
	baseURL string
}

// NewClient creates a new client. An empty baseURL disables the source.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Enabled reports whether a base URL is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// ListModels returns the endpoint's models, or nothing when disabled.
func (c *Client) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	if !c.Enabled() {
		return []domain.ModelInfo{}, nil
	}

	config := openai.DefaultConfig(c.apiKey)
	config.BaseURL = c.baseURL
	client := openai.NewClientWithConfig(config)

	list, err := client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("OpenAI-like API error: %w", err)
	}

	models := make([]domain.ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		if m.ID == "" {
			continue
		}
		models = append(models, domain.ModelInfo{
			Name:     m.ID,
			Label:    m.ID,
			Provider: ProviderName,
		})
	}
	return models, nil
}
