package services

import (
	"context"

	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/policy"
	"github.com/nohlan/stayhub/internal/domain/providers"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// AmenityService owns the amenity repository. All mutations are
// admin-only, rejected before any lookup so nothing about the catalog
// leaks to unauthorized principals.
type AmenityService struct {
	repo repositories.AmenityRepository
	bus  providers.EventBus
}

// NewAmenityService creates a new amenity service. bus may be nil.
func NewAmenityService(repo repositories.AmenityRepository, bus providers.EventBus) *AmenityService {
	return &AmenityService{repo: repo, bus: bus}
}

// Create validates and persists a new amenity (admin only).
func (s *AmenityService) Create(ctx context.Context, p policy.Principal, name, description string) (*entities.Amenity, error) {
	if !policy.CanManageAmenity(p) {
		return nil, apperrors.NewForbiddenError("admin privileges required")
	}

	amenity, err := entities.NewAmenity(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, amenity); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.bus, "amenity", providers.EventCreated, amenity.ID, p.ID)
	return amenity, nil
}

// Update applies a name/description change (admin only).
func (s *AmenityService) Update(ctx context.Context, p policy.Principal, id, name, description string) (*entities.Amenity, error) {
	if !policy.CanManageAmenity(p) {
		return nil, apperrors.NewForbiddenError("admin privileges required")
	}

	amenity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := amenity.Update(name, description); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, amenity); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.bus, "amenity", providers.EventUpdated, amenity.ID, p.ID)
	return amenity, nil
}

// Delete removes an amenity (admin only).
func (s *AmenityService) Delete(ctx context.Context, p policy.Principal, id string) error {
	if !policy.CanManageAmenity(p) {
		return apperrors.NewForbiddenError("admin privileges required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.bus, "amenity", providers.EventDeleted, id, p.ID)
	return nil
}

// GetByID retrieves an amenity by id.
func (s *AmenityService) GetByID(ctx context.Context, id string) (*entities.Amenity, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all amenities.
func (s *AmenityService) List(ctx context.Context) ([]*entities.Amenity, error) {
	return s.repo.List(ctx)
}
