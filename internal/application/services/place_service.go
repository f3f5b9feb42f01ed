package services

import (
	"context"

	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/policy"
	"github.com/nohlan/stayhub/internal/domain/providers"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// PlaceService owns the place repository and enforces the cross-entity
// invariants: the owner is always the acting principal, every attached
// amenity must exist, and the outward detail view is composed at read
// time from the other repositories.
type PlaceService struct {
	repo      repositories.PlaceRepository
	users     repositories.UserRepository
	amenities repositories.AmenityRepository
	reviews   repositories.ReviewRepository
	bus       providers.EventBus
}

// NewPlaceService creates a new place service. bus may be nil.
func NewPlaceService(
	repo repositories.PlaceRepository,
	users repositories.UserRepository,
	amenities repositories.AmenityRepository,
	reviews repositories.ReviewRepository,
	bus providers.EventBus,
) *PlaceService {
	return &PlaceService{
		repo:      repo,
		users:     users,
		amenities: amenities,
		reviews:   reviews,
		bus:       bus,
	}
}

// CreatePlaceInput carries the place creation fields. There is no owner
// field on purpose: the owner is always the acting principal.
type CreatePlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	AmenityIDs  []string
}

// Create persists a new place owned by the principal. Every referenced
// amenity is resolved first; the first missing id fails the whole
// operation with REFERENCE and nothing is persisted.
func (s *PlaceService) Create(ctx context.Context, p policy.Principal, in CreatePlaceInput) (*entities.Place, error) {
	if _, err := s.users.GetByID(ctx, p.ID); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewReferenceError("user", p.ID)
		}
		return nil, err
	}

	amenityIDs, err := s.resolveAmenities(ctx, in.AmenityIDs)
	if err != nil {
		return nil, err
	}

	place, err := entities.NewPlace(in.Title, in.Description, in.Price, in.Latitude, in.Longitude, p.ID, amenityIDs)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, place); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.bus, "place", providers.EventCreated, place.ID, p.ID)
	return place, nil
}

// UpdatePlaceInput carries the mutable place fields. A nil AmenityIDs
// leaves the amenity set untouched; a non-nil one replaces it whole.
type UpdatePlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	AmenityIDs  []string
}

// Update applies the mutable fields, owner only. The amenity set is
// replaced atomically: resolution failures leave the stored place
// untouched.
func (s *PlaceService) Update(ctx context.Context, p policy.Principal, id string, in UpdatePlaceInput) (*entities.Place, error) {
	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyPlace(p, place) {
		return nil, apperrors.NewForbiddenError("only the owner may modify this place")
	}

	if err := place.SetDetails(in.Title, in.Description, in.Price, in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	if in.AmenityIDs != nil {
		amenityIDs, err := s.resolveAmenities(ctx, in.AmenityIDs)
		if err != nil {
			return nil, err
		}
		place.SetAmenities(amenityIDs)
	}

	if err := s.repo.Update(ctx, place); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.bus, "place", providers.EventUpdated, place.ID, p.ID)
	return place, nil
}

// GetByID retrieves a place without resolving its references.
func (s *PlaceService) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDetail composes the outward aggregate view: base fields plus the
// resolved owner, amenities and reviews. Reviews are derived here at
// read time; they are never stored on the place.
func (s *PlaceService) GetDetail(ctx context.Context, id string) (*entities.PlaceDetail, error) {
	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, place.OwnerID)
	if err != nil {
		// The owner was validated at creation; a miss here is corruption.
		return nil, apperrors.NewInternalError("place owner missing", err)
	}

	amenities := make([]entities.AmenitySummary, 0, len(place.AmenityIDs))
	for _, amenityID := range place.AmenityIDs {
		amenity, err := s.amenities.GetByID(ctx, amenityID)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				// Amenity removed from the catalog since attachment.
				continue
			}
			return nil, err
		}
		amenities = append(amenities, amenity.Summary())
	}

	placeReviews, err := s.reviews.ListByPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews := make([]entities.ReviewSummary, 0, len(placeReviews))
	for _, review := range placeReviews {
		reviews = append(reviews, review.Summary())
	}

	return &entities.PlaceDetail{
		Place:     *place,
		Owner:     owner.Summary(),
		Amenities: amenities,
		Reviews:   reviews,
	}, nil
}

// List retrieves places, optionally filtered by owner.
func (s *PlaceService) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	return s.repo.List(ctx, filter)
}

// Delete removes a place and its derived reviews, owner or admin only.
func (s *PlaceService) Delete(ctx context.Context, p policy.Principal, id string) error {
	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeletePlace(p, place) {
		return apperrors.NewForbiddenError("only the owner or an admin may delete this place")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.reviews.DeleteByPlace(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.bus, "place", providers.EventDeleted, id, p.ID)
	return nil
}

// resolveAmenities deduplicates and verifies every amenity id, failing
// with REFERENCE naming the first missing one.
func (s *PlaceService) resolveAmenities(ctx context.Context, ids []string) ([]string, error) {
	deduped := entities.DedupeIDs(ids)
	for _, amenityID := range deduped {
		if _, err := s.amenities.GetByID(ctx, amenityID); err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				return nil, apperrors.NewReferenceError("amenity", amenityID)
			}
			return nil, err
		}
	}
	return deduped, nil
}
