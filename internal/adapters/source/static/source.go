package static

import "github.com/chuckie/modelpick/internal/domain"

// Source is the built-in model list. It needs no I/O, so the picker can
// show it before any dynamic source answers and falls back to it when one
// fails.
type Source struct {
	models []domain.ModelInfo
}

// New wraps models. The slice is copied.
func New(models []domain.ModelInfo) *Source {
	cp := make([]domain.ModelInfo, len(models))
	copy(cp, models)
	return &Source{models: cp}
}

// Models returns the list synchronously.
func (s *Source) Models() []domain.ModelInfo {
	out := make([]domain.ModelInfo, len(s.models))
	copy(out, s.models)
	return out
}
