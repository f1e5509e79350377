package app

import (
	"context"
	"time"

	"magic_villa/internal/domain"
)

type QueryService struct {
	repo     domain.VillaRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewQueryService wires the read side. A nil cache reads straight from the store.
func NewQueryService(r domain.VillaRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) List(ctx context.Context) ([]VillaDTO, error) {
	var out []VillaDTO
	if s.cached(ctx, listCacheKey, &out) {
		return out, nil
	}
	vs, err := s.repo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out = ToDTOs(vs)
	s.store(ctx, listCacheKey, out)
	return out, nil
}

func (s *QueryService) Get(ctx context.Context, id int64) (VillaDTO, error) {
	if id <= 0 {
		return VillaDTO{}, domain.NewValidationError("Id", "id must be greater than 0")
	}
	key := villaCacheKey(id)
	var dto VillaDTO
	if s.cached(ctx, key, &dto) {
		return dto, nil
	}
	v, err := s.repo.Get(ctx, domain.ByID(id), false)
	if err != nil {
		return VillaDTO{}, err
	}
	dto = ToDTO(v)
	s.store(ctx, key, dto)
	return dto, nil
}

// Ping reports whether the backing store is reachable.
func (s *QueryService) Ping(ctx context.Context) error { return s.repo.Ping(ctx) }

func (s *QueryService) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	return ok && err == nil
}

func (s *QueryService) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
}
