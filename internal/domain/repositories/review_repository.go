package repositories

import (
	"context"

	"github.com/nohlan/stayhub/internal/domain/entities"
)

// ReviewRepository defines the storage contract for reviews. The
// one-review-per-user-per-place invariant lives here as a conditional
// insert, so two concurrent reviews by the same user on the same place
// cannot both commit.
type ReviewRepository interface {
	// Create persists a new review. CONFLICT if the (user, place) pair
	// already has one.
	Create(ctx context.Context, review *entities.Review) error

	// GetByID retrieves a review by id, NOT_FOUND on miss.
	GetByID(ctx context.Context, id string) (*entities.Review, error)

	// GetByUserAndPlace retrieves the review a user left on a place,
	// NOT_FOUND if there is none.
	GetByUserAndPlace(ctx context.Context, userID, placeID string) (*entities.Review, error)

	// ListByPlace retrieves all reviews of a place in insertion order.
	ListByPlace(ctx context.Context, placeID string) ([]*entities.Review, error)

	// List retrieves all reviews in insertion order.
	List(ctx context.Context) ([]*entities.Review, error)

	Update(ctx context.Context, review *entities.Review) error

	Delete(ctx context.Context, id string) error

	// DeleteByPlace removes all reviews of a place. Deleting a place
	// must not leave dangling reviews behind.
	DeleteByPlace(ctx context.Context, placeID string) error

	// DeleteByUser removes all reviews a user has written, for the same
	// reason on account deletion.
	DeleteByUser(ctx context.Context, userID string) error
}
