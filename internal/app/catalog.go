package app

import (
	"context"
	"fmt"
	"time"

	"github.com/chuckie/modelpick/internal/adapters/source/static"
	"github.com/chuckie/modelpick/internal/domain"
	"github.com/chuckie/modelpick/internal/observability"
	"github.com/chuckie/modelpick/internal/ports"
)

// NamedSource is a dynamic model source with a stable cache identity.
type NamedSource struct {
	Name   string // used in logs and error messages
	Key    string // cache namespace, typically the endpoint URL
	Source ports.ModelSource
}

// CatalogService assembles the full model list.
type CatalogService struct {
	dynamic  []NamedSource
	fallback *static.Source
	cache    ports.Cache
	useCache bool
	timeout  time.Duration
}

// NewCatalogService creates a catalog over dynamic sources (queried in
// order) followed by the static fallback. A nil fallback is empty.
func NewCatalogService(dynamic []NamedSource, fallback *static.Source, cache ports.Cache, useCache bool, timeout time.Duration) *CatalogService {
	if fallback == nil {
		fallback = static.New(nil)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CatalogService{
		dynamic:  dynamic,
		fallback: fallback,
		cache:    cache,
		useCache: useCache,
		timeout:  timeout,
	}
}

// Static returns the static list, available without I/O.
func (s *CatalogService) Static() []domain.ModelInfo {
	return s.fallback.Models()
}

// Load fetches every dynamic source in order and merges the results ahead
// of the static list.
//
// If any fetch fails the error is logged and the static list is returned
// together with the error; callers can always render the returned list.
// refresh bypasses the cache.
func (s *CatalogService) Load(ctx context.Context, refresh bool) ([]domain.ModelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lists := make([][]domain.ModelInfo, 0, len(s.dynamic)+1)
	for _, src := range s.dynamic {
		models, err := s.fetch(ctx, src, refresh)
		if err != nil {
			err = fmt.Errorf("fetch %s models: %w", src.Name, err)
			observability.Errorf("catalog: %v", err)
			return s.Static(), err
		}
		lists = append(lists, models)
	}
	lists = append(lists, s.fallback.Models())

	return domain.Merge(lists...), nil
}

func (s *CatalogService) fetch(ctx context.Context, src NamedSource, refresh bool) ([]domain.ModelInfo, error) {
	key := s.cacheKey(src)
	if s.useCache && s.cache != nil {
		if refresh {
			s.cache.Delete(ctx, key)
		} else if cached, err := s.cache.Get(ctx, key); err == nil {
			return cached, nil
		}
	}

	models, err := src.Source.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	if s.useCache && s.cache != nil {
		_ = s.cache.Set(ctx, key, models) // ignore cache errors
	}
	return models, nil
}

func (s *CatalogService) cacheKey(src NamedSource) string {
	return src.Name + "|" + src.Key
}
