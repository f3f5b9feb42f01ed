package services

import (
	"context"

	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/policy"
	"github.com/nohlan/stayhub/internal/domain/providers"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// ReviewService owns the review repository and enforces the review
// invariants: the author is the acting principal, owners never review
// their own place, and one review per user per place — the last closed
// by the repository's conditional insert rather than a check here.
type ReviewService struct {
	repo   repositories.ReviewRepository
	places repositories.PlaceRepository
	users  repositories.UserRepository
	bus    providers.EventBus
}

// NewReviewService creates a new review service. bus may be nil.
func NewReviewService(
	repo repositories.ReviewRepository,
	places repositories.PlaceRepository,
	users repositories.UserRepository,
	bus providers.EventBus,
) *ReviewService {
	return &ReviewService{repo: repo, places: places, users: users, bus: bus}
}

// CreateReviewInput carries the review creation fields. The author is
// always the acting principal, never client-supplied.
type CreateReviewInput struct {
	PlaceID string
	Text    string
	Rating  int
}

// Create validates fields in canonical order (text, then rating), then
// resolves the author and the place, checks ownership, and persists. A
// duplicate (user, place) pair surfaces as CONFLICT from the repository
// itself.
func (s *ReviewService) Create(ctx context.Context, p policy.Principal, in CreateReviewInput) (*entities.Review, error) {
	review, err := entities.NewReview(in.Text, in.Rating, in.PlaceID, p.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, p.ID); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewReferenceError("user", p.ID)
		}
		return nil, err
	}

	place, err := s.places.GetByID(ctx, in.PlaceID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewReferenceError("place", in.PlaceID)
		}
		return nil, err
	}
	if !policy.CanReviewPlace(p, place) {
		return nil, apperrors.NewForbiddenError("you cannot review your own place")
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.bus, "review", providers.EventCreated, review.ID, p.ID)
	return review, nil
}

// Update applies a text/rating change, author or admin only. A failed
// validation leaves the stored review untouched.
func (s *ReviewService) Update(ctx context.Context, p policy.Principal, id, text string, rating int) (*entities.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyReview(p, review) {
		return nil, apperrors.NewForbiddenError("you may only modify your own review")
	}

	if err := review.SetContent(text, rating); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.bus, "review", providers.EventUpdated, review.ID, p.ID)
	return review, nil
}

// GetByID retrieves a review by id.
func (s *ReviewService) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByPlace retrieves the reviews of an existing place.
func (s *ReviewService) ListByPlace(ctx context.Context, placeID string) ([]*entities.Review, error) {
	if _, err := s.places.GetByID(ctx, placeID); err != nil {
		return nil, err
	}
	return s.repo.ListByPlace(ctx, placeID)
}

// List retrieves all reviews.
func (s *ReviewService) List(ctx context.Context) ([]*entities.Review, error) {
	return s.repo.List(ctx)
}

// Delete removes a review, author or admin only.
func (s *ReviewService) Delete(ctx context.Context, p policy.Principal, id string) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanModifyReview(p, review) {
		return apperrors.NewForbiddenError("you may only delete your own review")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.bus, "review", providers.EventDeleted, id, p.ID)
	return nil
}
