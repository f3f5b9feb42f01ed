package memory

import (
	"context"
	"fmt"

	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// UserRepository implements user persistence on the in-memory store.
// The store's single write lock makes the email uniqueness check and
// the insert one critical section.
type UserRepository struct {
	store *Store[entities.User]
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() repositories.UserRepository {
	return &UserRepository{
		store: NewStore(
			func(u *entities.User) string { return u.ID },
			func(u *entities.User) { u.Touch() },
			func(u *entities.User) *entities.User { c := *u; return &c },
		),
	}
}

// Create inserts a user, CONFLICT if the email is already registered.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	return r.store.AddUnique(user,
		func(other *entities.User) bool { return other.Email == user.Email },
		fmt.Sprintf("email %s is already registered", user.Email),
	)
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	user, ok := r.store.Get(id)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	return user, nil
}

// GetByEmail retrieves a user by exact email match.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, ok := r.store.Find(func(u *entities.User) bool { return u.Email == email })
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	return user, nil
}

// List retrieves all users in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	return r.store.List(nil), nil
}

// Update replaces the stored user, keeping the email unique.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	return r.store.Replace(user,
		func(other *entities.User) bool { return other.Email == user.Email },
		fmt.Sprintf("email %s is already registered", user.Email),
	)
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Delete(id) {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	return nil
}
