package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"magic_villa/internal/domain"
)

const listCacheKey = "villas:all"

func villaCacheKey(id int64) string { return fmt.Sprintf("villa:%d", id) }

type CommandService struct {
	repo  domain.VillaRepository
	cache domain.Cache
}

// NewCommandService wires the write side. cache may be nil.
func NewCommandService(r domain.VillaRepository, c domain.Cache) *CommandService {
	return &CommandService{repo: r, cache: c}
}

// Create stores a new villa when the name is not taken (case-insensitive).
func (s *CommandService) Create(ctx context.Context, in *VillaCreateDTO) (VillaDTO, error) {
	if in == nil {
		return VillaDTO{}, domain.NewValidationError("", "request body is required")
	}
	if err := validateDTO(in); err != nil {
		return VillaDTO{}, err
	}

	_, err := s.repo.Get(ctx, domain.ByName(in.Name), false)
	switch {
	case err == nil:
		return VillaDTO{}, &domain.ValidationError{
			Fields:   []domain.FieldError{{Field: "Name", Message: "Villa already exists"}},
			Conflict: true,
		}
	case !errors.Is(err, domain.ErrNotFound):
		return VillaDTO{}, err
	}

	v := FromCreate(*in)
	if err := s.repo.Create(ctx, &v); err != nil {
		return VillaDTO{}, err
	}
	if err := s.repo.Save(ctx); err != nil {
		return VillaDTO{}, err
	}
	s.invalidate(ctx, v.ID)
	return ToDTO(v), nil
}

// Update replaces every mutable field of villa id. The payload id must equal id; that
// is checked before the store is consulted.
func (s *CommandService) Update(ctx context.Context, id int64, in *VillaUpdateDTO) error {
	if in == nil {
		return domain.NewValidationError("", "request body is required")
	}
	if id <= 0 || in.ID != id {
		return domain.NewValidationError("Id", "route id and payload id must match")
	}
	if err := validateDTO(in); err != nil {
		return err
	}
	if _, err := s.repo.Get(ctx, domain.ByID(id), false); err != nil {
		return err
	}
	return s.persist(ctx, FromUpdate(*in))
}

// Patch applies ops to the update shape of the stored villa and persists the result
// only if it still validates and keeps the same id.
func (s *CommandService) Patch(ctx context.Context, id int64, ops []PatchOperation) error {
	if len(ops) == 0 {
		return domain.NewValidationError("", "patch document is required")
	}
	if id == 0 {
		return domain.NewValidationError("Id", "id is required")
	}
	cur, err := s.repo.Get(ctx, domain.ByID(id), false)
	if err != nil {
		return err
	}

	patched, err := ApplyPatch(ToUpdateDTO(cur), ops)
	if err != nil {
		return err
	}
	if err := validateDTO(&patched); err != nil {
		return err
	}
	if patched.ID != cur.ID {
		return domain.NewValidationError("Id", "id cannot be changed")
	}
	return s.persist(ctx, FromUpdate(patched))
}

// Delete removes villa id.
func (s *CommandService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("Id", "id must be greater than 0")
	}
	v, err := s.repo.Get(ctx, domain.ByID(id), true)
	if err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, v); err != nil {
		return err
	}
	if err := s.repo.Save(ctx); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CommandService) persist(ctx context.Context, v domain.Villa) error {
	if err := s.repo.Update(ctx, &v); err != nil {
		return err
	}
	if err := s.repo.Save(ctx); err != nil {
		return err
	}
	s.invalidate(ctx, v.ID)
	return nil
}

func (s *CommandService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, villaCacheKey(id), listCacheKey); err != nil {
		log.Warn().Err(err).Int64("villa_id", id).Msg("cache invalidation failed")
	}
}
