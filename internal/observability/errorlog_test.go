package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnip(t *testing.T) {
	assert.Equal(t, "", Snip("abc", 0))
	assert.Equal(t, "abc", Snip("abc", 3))
	assert.Equal(t, "ab…", Snip("abc", 2))
	assert.Equal(t, "héé…", Snip("hééllo", 3))
}

func TestRedactForLog(t *testing.T) {
	out := RedactForLog(`fetch openai-like models: Get "http://localhost:8000/v1/models?api_key=sk-abcdefghijklmnopqrstuv"`)
	assert.NotContains(t, out, "sk-abcdefghijklmnopqrstuv")
	assert.Contains(t, out, "fetch openai-like models")
}
