package testutil

import "github.com/chuckie/modelpick/internal/domain"

// SampleStatic is a small static catalog.
func SampleStatic() []domain.ModelInfo {
	return []domain.ModelInfo{
		{Name: "claude-3-5-sonnet-latest", Label: "Claude 3.5 Sonnet", Provider: "Anthropic"},
		{Name: "gpt-4o", Label: "GPT-4o", Provider: "OpenAI"},
		{Name: "gpt-4o-mini", Label: "GPT-4o Mini", Provider: "OpenAI"},
	}
}

// SampleOllama is what a local Ollama server might report.
func SampleOllama() []domain.ModelInfo {
	return []domain.ModelInfo{
		{Name: "llama3.1:8b", Label: "llama3.1:8b (4.66GB)", Provider: "Ollama"},
		{Name: "qwen2.5-coder:7b", Label: "qwen2.5-coder:7b (4.68GB)", Provider: "Ollama"},
	}
}

// SampleOpenAILike is what an OpenAI-compatible endpoint might report.
func SampleOpenAILike() []domain.ModelInfo {
	return []domain.ModelInfo{
		{Name: "mistral-large", Label: "mistral-large", Provider: "OpenAILike"},
	}
}

// SampleOllamaTagsJSON is a GET /api/tags response body.
const SampleOllamaTagsJSON = `{
  "models": [
    {"name": "llama3.1:8b", "model": "llama3.1:8b", "size": 4661224676, "digest": "abc"},
    {"name": "qwen2.5-coder:7b", "model": "qwen2.5-coder:7b", "size": 4683087332, "digest": "def"}
  ]
}`
