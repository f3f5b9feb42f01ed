package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nohlan/stayhub/internal/adapters/memory"
	"github.com/nohlan/stayhub/internal/application/services"
	"github.com/nohlan/stayhub/internal/domain/policy"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// stubHasher is a transparent stand-in for the bcrypt collaborator.
type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }
func (stubHasher) Verify(plaintext, hash string) bool    { return hash == "hashed:"+plaintext }

func newUserService() *services.UserService {
	return services.NewUserService(
		memory.NewUserRepository(),
		memory.NewPlaceRepository(),
		memory.NewReviewRepository(),
		stubHasher{},
		nil,
	)
}

func registerUser(t *testing.T, svc *services.UserService, email string) policy.Principal {
	t.Helper()
	user, err := svc.Register(context.Background(), services.RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "s3cret",
	})
	require.NoError(t, err)
	return policy.Principal{ID: user.ID}
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and persists", func(t *testing.T) {
		svc := newUserService()

		user, err := svc.Register(ctx, services.RegisterInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Password:  "s3cret",
		})

		require.NoError(t, err)
		assert.Equal(t, "hashed:s3cret", user.PasswordHash)
		assert.False(t, user.IsAdmin)
	})

	t.Run("exactly one of two same-email registrations succeeds", func(t *testing.T) {
		svc := newUserService()
		registerUser(t, svc, "ada@example.com")

		_, err := svc.Register(ctx, services.RegisterInput{
			FirstName: "Imposter",
			LastName:  "User",
			Email:     "ada@example.com",
			Password:  "other",
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

		users, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("rejects a blank password before hashing", func(t *testing.T) {
		svc := newUserService()

		_, err := svc.Register(ctx, services.RegisterInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Password:  "   ",
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()
	registerUser(t, svc, "ada@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "ada@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, badPass := svc.Authenticate(ctx, "ada@example.com", "nope")
		_, badEmail := svc.Authenticate(ctx, "ghost@example.com", "s3cret")

		assert.True(t, apperrors.IsType(badPass, apperrors.ErrorTypeUnauthorized))
		assert.True(t, apperrors.IsType(badEmail, apperrors.ErrorTypeUnauthorized))
		assert.Equal(t, badPass.Error(), badEmail.Error())
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("self-service rename", func(t *testing.T) {
		svc := newUserService()
		principal := registerUser(t, svc, "ada@example.com")

		user, err := svc.UpdateProfile(ctx, principal, principal.ID, services.UpdateProfileInput{
			FirstName: "Augusta",
			LastName:  "King",
		})
		require.NoError(t, err)
		assert.Equal(t, "Augusta", user.FirstName)
	})

	t.Run("another user is forbidden before any lookup", func(t *testing.T) {
		svc := newUserService()
		principal := registerUser(t, svc, "ada@example.com")
		other := registerUser(t, svc, "bob@example.com")

		_, err := svc.UpdateProfile(ctx, principal, other.ID, services.UpdateProfileInput{
			FirstName: "Hijack",
			LastName:  "Attempt",
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})
}

func TestUserService_AdminUpdate(t *testing.T) {
	ctx := context.Background()
	admin := policy.Principal{ID: "root", IsAdmin: true}

	t.Run("non-admin is rejected", func(t *testing.T) {
		svc := newUserService()
		principal := registerUser(t, svc, "ada@example.com")

		_, err := svc.AdminUpdate(ctx, principal, principal.ID, services.AdminUpdateInput{})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("email change honors the uniqueness index", func(t *testing.T) {
		svc := newUserService()
		registerUser(t, svc, "taken@example.com")
		target := registerUser(t, svc, "ada@example.com")

		taken := "taken@example.com"
		_, err := svc.AdminUpdate(ctx, admin, target.ID, services.AdminUpdateInput{Email: &taken})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

		fresh := "new@example.com"
		user, err := svc.AdminUpdate(ctx, admin, target.ID, services.AdminUpdateInput{Email: &fresh})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
	})

	t.Run("can grant the admin flag", func(t *testing.T) {
		svc := newUserService()
		target := registerUser(t, svc, "ada@example.com")

		isAdmin := true
		user, err := svc.AdminUpdate(ctx, admin, target.ID, services.AdminUpdateInput{IsAdmin: &isAdmin})
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()
	principal := registerUser(t, svc, "ada@example.com")
	other := registerUser(t, svc, "bob@example.com")

	err := svc.Delete(ctx, principal, other.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

	require.NoError(t, svc.Delete(ctx, principal, principal.ID))
	_, err = svc.GetByID(ctx, principal.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestUserService_DeleteCascades(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting an owner removes their places and those places' reviews", func(t *testing.T) {
		f := newFixture()
		owner := f.registerUser(t, "owner@example.com")
		guest := f.registerUser(t, "guest@example.com")
		place, err := f.places.Create(ctx, owner, services.CreatePlaceInput{Title: "Canal house", Price: 120})
		require.NoError(t, err)
		review, err := f.reviews.Create(ctx, guest, services.CreateReviewInput{
			PlaceID: place.ID, Text: "Lovely stay", Rating: 5,
		})
		require.NoError(t, err)

		require.NoError(t, f.users.Delete(ctx, owner, owner.ID))

		_, err = f.places.GetByID(ctx, place.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		_, err = f.places.GetDetail(ctx, place.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		_, err = f.reviews.GetByID(ctx, review.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("deleting a guest removes the reviews they wrote elsewhere", func(t *testing.T) {
		f := newFixture()
		owner := f.registerUser(t, "owner@example.com")
		guest := f.registerUser(t, "guest@example.com")
		place, err := f.places.Create(ctx, owner, services.CreatePlaceInput{Title: "Canal house", Price: 120})
		require.NoError(t, err)
		review, err := f.reviews.Create(ctx, guest, services.CreateReviewInput{
			PlaceID: place.ID, Text: "Lovely stay", Rating: 5,
		})
		require.NoError(t, err)

		require.NoError(t, f.users.Delete(ctx, guest, guest.ID))

		_, err = f.reviews.GetByID(ctx, review.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		reviews, err := f.reviews.ListByPlace(ctx, place.ID)
		require.NoError(t, err)
		assert.Empty(t, reviews)

		// The other user's place is untouched.
		_, err = f.places.GetByID(ctx, place.ID)
		require.NoError(t, err)
	})
}
