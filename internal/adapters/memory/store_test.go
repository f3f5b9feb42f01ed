package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nohlan/stayhub/internal/adapters/memory"
	"github.com/nohlan/stayhub/internal/domain/entities"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

func newUser(t *testing.T, email string) *entities.User {
	t.Helper()
	user, err := entities.NewUser("Test", "User", email, "$2a$fakehash", false)
	require.NoError(t, err)
	return user
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a user", func(t *testing.T) {
		repo := memory.NewUserRepository()
		user := newUser(t, "ada@example.com")

		require.NoError(t, repo.Create(ctx, user))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)

		byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := memory.NewUserRepository()
		require.NoError(t, repo.Create(ctx, newUser(t, "ada@example.com")))

		err := repo.Create(ctx, newUser(t, "ada@example.com"))
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("email match is case sensitive", func(t *testing.T) {
		repo := memory.NewUserRepository()
		require.NoError(t, repo.Create(ctx, newUser(t, "ada@example.com")))

		require.NoError(t, repo.Create(ctx, newUser(t, "Ada@example.com")))
	})
}

// Two concurrent registrations with the same email: exactly one wins.
func TestUserRepository_ConcurrentDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, newUser(t, "race@example.com"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("bumps updated_at", func(t *testing.T) {
		repo := memory.NewUserRepository()
		user := newUser(t, "ada@example.com")
		require.NoError(t, repo.Create(ctx, user))

		require.NoError(t, user.Rename("Augusta", "King"))
		require.NoError(t, repo.Update(ctx, user))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Augusta", got.FirstName)
		assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
	})

	t.Run("is NOT_FOUND for a missing id, never a silent no-op", func(t *testing.T) {
		repo := memory.NewUserRepository()
		user := newUser(t, "ghost@example.com")

		err := repo.Update(ctx, user)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("keeps email unique across updates", func(t *testing.T) {
		repo := memory.NewUserRepository()
		first := newUser(t, "first@example.com")
		second := newUser(t, "second@example.com")
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))

		require.NoError(t, second.SetEmail("first@example.com"))
		err := repo.Update(ctx, second)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})
}

func TestUserRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	var ids []string
	for i := 0; i < 3; i++ {
		user := newUser(t, fmt.Sprintf("user%d@example.com", i))
		require.NoError(t, repo.Create(ctx, user))
		ids = append(ids, user.ID)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for i, user := range users {
		assert.Equal(t, ids[i], user.ID, "insertion order is preserved")
	}

	require.NoError(t, repo.Delete(ctx, ids[1]))
	err = repo.Delete(ctx, ids[1])
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

// Mutating a returned entity must not affect stored state.
func TestStore_ReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPlaceRepository()

	place, err := entities.NewPlace("Loft", "", 50, 0, 0, "owner-1", []string{"a-1"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, place))

	got, err := repo.GetByID(ctx, place.ID)
	require.NoError(t, err)
	got.Title = "Hacked"
	got.AmenityIDs[0] = "a-999"

	fresh, err := repo.GetByID(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loft", fresh.Title)
	assert.Equal(t, []string{"a-1"}, fresh.AmenityIDs)
}
