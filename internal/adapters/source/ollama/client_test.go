package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuckie/modelpick/internal/domain"
	"github.com/chuckie/modelpick/internal/testutil"
)

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testutil.SampleOllamaTagsJSON))
	}))
	defer srv.Close()

	models, err := NewClient(srv.URL + "/").ListModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.ModelInfo{
		{Name: "llama3.1:8b", Label: "llama3.1:8b (4.66GB)", Provider: ProviderName},
		{Name: "qwen2.5-coder:7b", Label: "qwen2.5-coder:7b (4.68GB)", Provider: ProviderName},
	}, models)
}

func TestListModelsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	models, err := NewClient(srv.URL).ListModels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestListModelsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListModels(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestListModelsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListModels(context.Background())
	assert.Error(t, err)
}

func TestListModelsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient("http://127.0.0.1:1").ListModels(ctx)
	assert.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	assert.Equal(t, DefaultURL, NewClient("").BaseURL())
}

func TestSizeInGB(t *testing.T) {
	assert.Equal(t, "0.00", sizeInGB(0))
	assert.Equal(t, "1.50", sizeInGB(1_500_000_000))
}
