package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuckie/modelpick/internal/domain"
)

func TestInMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemory(time.Minute)

	_, err := c.Get(ctx, "ollama|http://localhost:11434")
	assert.ErrorIs(t, err, ErrMiss)

	in := []domain.ModelInfo{{Name: "llama3.1:8b", Label: "llama3.1:8b", Provider: "Ollama"}}
	require.NoError(t, c.Set(ctx, "ollama|http://localhost:11434", in))

	out, err := c.Get(ctx, "ollama|http://localhost:11434")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Copies on both sides.
	in[0].Name = "mutated"
	out[0].Label = "mutated"
	again, err := c.Get(ctx, "ollama|http://localhost:11434")
	require.NoError(t, err)
	assert.Equal(t, "llama3.1:8b", again[0].Name)
	assert.Equal(t, "llama3.1:8b", again[0].Label)
}

func TestInMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewInMemory(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []domain.ModelInfo{{Name: "a", Provider: "p"}}))

	now = now.Add(59 * time.Second)
	_, err := c.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Empty(t, c.cache)
}

func TestInMemoryZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	c := NewInMemory(0)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", nil))
	now = now.Add(24 * time.Hour)

	_, err := c.Get(ctx, "k")
	assert.NoError(t, err)
}

func TestInMemoryDelete(t *testing.T) {
	ctx := context.Background()
	c := NewInMemory(time.Minute)
	require.NoError(t, c.Set(ctx, "a", nil))
	require.NoError(t, c.Set(ctx, "b", nil))

	c.Delete(ctx, "a")
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = c.Get(ctx, "b")
	assert.NoError(t, err)
	assert.Len(t, c.cache, 1)
}
