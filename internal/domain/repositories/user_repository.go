package repositories

import (
	"context"

	"github.com/nohlan/stayhub/internal/domain/entities"
)

// UserRepository defines the storage contract for users. The in-memory
// and PostgreSQL backends must be behaviorally indistinguishable through
// it: the email uniqueness check and the insert are one critical section
// in both.
type UserRepository interface {
	// Create persists a new user. It returns a CONFLICT error if the id
	// or email is already taken.
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by id, NOT_FOUND on miss.
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by exact, case-sensitive email match.
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// List retrieves all users in insertion order.
	List(ctx context.Context) ([]*entities.User, error)

	// Update persists field changes and bumps updated_at. NOT_FOUND if
	// the id is absent; CONFLICT if the new email is taken.
	Update(ctx context.Context, user *entities.User) error

	// Delete removes a user, NOT_FOUND if absent.
	Delete(ctx context.Context, id string) error
}
