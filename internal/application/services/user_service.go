package services

import (
	"context"
	"strings"

	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/policy"
	"github.com/nohlan/stayhub/internal/domain/providers"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// PasswordHasher is the external hashing collaborator. The domain never
// inspects the opaque hash format.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// UserService owns the user repository and enforces the registration
// and profile-update invariants. It also owns the account-deletion
// cascade, so removing a user behaves the same on every backend.
type UserService struct {
	repo    repositories.UserRepository
	places  repositories.PlaceRepository
	reviews repositories.ReviewRepository
	hasher  PasswordHasher
	bus     providers.EventBus
}

// NewUserService creates a new user service. bus may be nil.
func NewUserService(
	repo repositories.UserRepository,
	places repositories.PlaceRepository,
	reviews repositories.ReviewRepository,
	hasher PasswordHasher,
	bus providers.EventBus,
) *UserService {
	return &UserService{repo: repo, places: places, reviews: reviews, hasher: hasher, bus: bus}
}

// RegisterInput carries the registration fields. is_admin is never
// client-supplied; admin accounts are provisioned out of band.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register validates the input, hashes the password and persists the
// user. The repository's uniqueness index makes duplicate emails a
// CONFLICT, with the check and insert in one critical section.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entities.User, error) {
	if strings.TrimSpace(in.Password) == "" {
		return nil, apperrors.NewValidationError("password must not be blank")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user, err := entities.NewUser(in.FirstName, in.LastName, in.Email, hash, false)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.bus, "user", providers.EventCreated, user.ID, user.ID)
	return user, nil
}

// Authenticate resolves an email/password pair to a user. Both unknown
// email and wrong password surface as the same UNAUTHORIZED error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	return user, nil
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	return s.repo.List(ctx)
}

// UpdateProfileInput carries the self-service mutable fields. Email and
// password are immutable through this path.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
}

// UpdateProfile applies a whitelisted profile change for the principal
// themselves (or an admin acting on their behalf).
func (s *UserService) UpdateProfile(ctx context.Context, p policy.Principal, userID string, in UpdateProfileInput) (*entities.User, error) {
	if !policy.CanModifyUser(p, userID) {
		return nil, apperrors.NewForbiddenError("you may only modify your own profile")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.Rename(in.FirstName, in.LastName); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.bus, "user", providers.EventUpdated, user.ID, p.ID)
	return user, nil
}

// AdminUpdateInput carries the admin-path partial update. Nil fields
// are left unchanged.
type AdminUpdateInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	IsAdmin   *bool
}

// AdminUpdate lets an admin change names, email and the admin flag. An
// email change goes through the same uniqueness index as registration.
func (s *UserService) AdminUpdate(ctx context.Context, p policy.Principal, userID string, in AdminUpdateInput) (*entities.User, error) {
	if !p.IsAdmin {
		return nil, apperrors.NewForbiddenError("admin privileges required")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	firstName, lastName := user.FirstName, user.LastName
	if in.FirstName != nil {
		firstName = *in.FirstName
	}
	if in.LastName != nil {
		lastName = *in.LastName
	}
	if err := user.Rename(firstName, lastName); err != nil {
		return nil, err
	}
	if in.Email != nil {
		if err := user.SetEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.bus, "user", providers.EventUpdated, user.ID, p.ID)
	return user, nil
}

// Delete removes a user, allowed to the user themselves or an admin.
// The user's places (with their reviews) and the reviews they wrote
// elsewhere are removed first, so no backend is left with dangling
// references.
func (s *UserService) Delete(ctx context.Context, p policy.Principal, userID string) error {
	if !policy.CanModifyUser(p, userID) {
		return apperrors.NewForbiddenError("you may only delete your own account")
	}

	owned, err := s.places.List(ctx, repositories.PlaceFilter{OwnerID: userID})
	if err != nil {
		return err
	}
	for _, place := range owned {
		if err := s.reviews.DeleteByPlace(ctx, place.ID); err != nil {
			return err
		}
		if err := s.places.Delete(ctx, place.ID); err != nil {
			return err
		}
	}
	if err := s.reviews.DeleteByUser(ctx, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	publishEvent(ctx, s.bus, "user", providers.EventDeleted, userID, p.ID)
	return nil
}
