package memory

import (
	"context"
	"fmt"

	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// ReviewRepository implements review persistence on the in-memory store.
// The (user, place) uniqueness check shares the insert's critical
// section, so two concurrent reviews by one user cannot both land.
type ReviewRepository struct {
	store *Store[entities.Review]
}

// NewReviewRepository creates an empty in-memory review repository.
func NewReviewRepository() repositories.ReviewRepository {
	return &ReviewRepository{
		store: NewStore(
			func(rv *entities.Review) string { return rv.ID },
			func(rv *entities.Review) { rv.Touch() },
			func(rv *entities.Review) *entities.Review { c := *rv; return &c },
		),
	}
}

// Create inserts a review, CONFLICT if this user already reviewed the place.
func (r *ReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	return r.store.AddUnique(review,
		func(other *entities.Review) bool {
			return other.UserID == review.UserID && other.PlaceID == review.PlaceID
		},
		fmt.Sprintf("user %s has already reviewed place %s", review.UserID, review.PlaceID),
	)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	review, ok := r.store.Get(id)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	return review, nil
}

func (r *ReviewRepository) GetByUserAndPlace(ctx context.Context, userID, placeID string) (*entities.Review, error) {
	review, ok := r.store.Find(func(rv *entities.Review) bool {
		return rv.UserID == userID && rv.PlaceID == placeID
	})
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no review by user %s on place %s", userID, placeID))
	}
	return review, nil
}

func (r *ReviewRepository) ListByPlace(ctx context.Context, placeID string) ([]*entities.Review, error) {
	return r.store.List(func(rv *entities.Review) bool { return rv.PlaceID == placeID }), nil
}

func (r *ReviewRepository) List(ctx context.Context) ([]*entities.Review, error) {
	return r.store.List(nil), nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *entities.Review) error {
	return r.store.Replace(review, nil, "")
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Delete(id) {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	return nil
}

func (r *ReviewRepository) DeleteByPlace(ctx context.Context, placeID string) error {
	r.store.DeleteWhere(func(rv *entities.Review) bool { return rv.PlaceID == placeID })
	return nil
}

func (r *ReviewRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.store.DeleteWhere(func(rv *entities.Review) bool { return rv.UserID == userID })
	return nil
}
