package ports

import (
	"context"

	"github.com/chuckie/modelpick/internal/domain"
)

// ModelSource lists the models a backend offers.
type ModelSource interface {
	ListModels(ctx context.Context) ([]domain.ModelInfo, error)
}

// Selection receives the user's choice. SetModel and SetProvider are
// invoked together, once per selection.
type Selection interface {
	SetModel(model string)
	SetProvider(provider string)
}

// Redactor redacts sensitive data from text.
type Redactor interface {
	Redact(text string) string
	RedactLog(text string) string // for logging (more aggressive)
}

// Cache caches model listings by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.ModelInfo, error)
	Set(ctx context.Context, key string, models []domain.ModelInfo) error
	Delete(ctx context.Context, key string)
}
