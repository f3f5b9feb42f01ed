package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nohlan/stayhub/internal/application/services"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("guest reviews a place and it appears in the detail view", func(t *testing.T) {
		f := newFixture()
		owner := f.registerUser(t, "owner@example.com")
		guest := f.registerUser(t, "guest@example.com")
		place, err := f.places.Create(ctx, owner, services.CreatePlaceInput{Title: "Canal house", Price: 120})
		require.NoError(t, err)

		review, err := f.reviews.Create(ctx, guest, services.CreateReviewInput{
			PlaceID: place.ID, Text: "Lovely stay", Rating: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, guest.ID, review.UserID)

		detail, err := f.places.GetDetail(ctx, place.ID)
		require.NoError(t, err)
		require.Len(t, detail.Reviews, 1)
		assert.Equal(t, review.ID, detail.Reviews[0].ID)
	})

	t.Run("field validation runs before the place lookup", func(t *testing.T) {
		f := newFixture()
		guest := f.registerUser(t, "guest@example.com")

		// Blank text on a nonexistent place: VALIDATION wins over REFERENCE.
		_, err := f.reviews.Create(ctx, guest, services.CreateReviewInput{
			PlaceID: "nonexistent", Text: "   ", Rating: 3,
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("unknown place fails with REFERENCE", func(t *testing.T) {
		f := newFixture()
		guest := f.registerUser(t, "guest@example.com")

		_, err := f.reviews.Create(ctx, guest, services.CreateReviewInput{
			PlaceID: "nonexistent", Text: "Nice", Rating: 3,
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeReference))
	})

	t.Run("a deleted account cannot leave a review", func(t *testing.T) {
		f := newFixture()
		owner := f.registerUser(t, "owner@example.com")
		guest := f.registerUser(t, "guest@example.com")
		place, err := f.places.Create(ctx, owner, services.CreatePlaceInput{Title: "Canal house", Price: 120})
		require.NoError(t, err)

		// The token outlives the account: the author must still resolve.
		require.NoError(t, f.users.Delete(ctx, guest, guest.ID))

		_, err = f.reviews.Create(ctx, guest, services.CreateReviewInput{
			PlaceID: place.ID, Text: "Ghostwritten", Rating: 4,
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeReference))

		reviews, err := f.reviews.ListByPlace(ctx, place.ID)
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})

	t.Run("the owner cannot review their own place", func(t *testing.T) {
		f := newFixture()
		owner := f.registerUser(t, "owner@example.com")
		place, err := f.places.Create(ctx, owner, services.CreatePlaceInput{Title: "Canal house", Price: 120})
		require.NoError(t, err)

		_, err = f.reviews.Create(ctx, owner, services.CreateReviewInput{
			PlaceID: place.ID, Text: "Best place ever", Rating: 5,
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

		reviews, err := f.reviews.ListByPlace(ctx, place.ID)
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})

	t.Run("a second review by the same guest on the same place conflicts", func(t *testing.T) {
		f := newFixture()
		owner := f.registerUser(t, "owner@example.com")
		guest := f.registerUser(t, "guest@example.com")
		place, err := f.places.Create(ctx, owner, services.CreatePlaceInput{Title: "Canal house", Price: 120})
		require.NoError(t, err)

		_, err = f.reviews.Create(ctx, guest, services.CreateReviewInput{
			PlaceID: place.ID, Text: "First", Rating: 4,
		})
		require.NoError(t, err)

		_, err = f.reviews.Create(ctx, guest, services.CreateReviewInput{
			PlaceID: place.ID, Text: "Second", Rating: 2,
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

		reviews, err := f.reviews.ListByPlace(ctx, place.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, "First", reviews[0].Text)
	})
}

func TestReviewService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.registerUser(t, "owner@example.com")
	guest := f.registerUser(t, "guest@example.com")
	other := f.registerUser(t, "other@example.com")
	place, err := f.places.Create(ctx, owner, services.CreatePlaceInput{Title: "Canal house", Price: 120})
	require.NoError(t, err)
	review, err := f.reviews.Create(ctx, guest, services.CreateReviewInput{
		PlaceID: place.ID, Text: "Decent", Rating: 3,
	})
	require.NoError(t, err)

	t.Run("only the author or an admin may update", func(t *testing.T) {
		_, err := f.reviews.Update(ctx, other, review.ID, "Edited", 4)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

		updated, err := f.reviews.Update(ctx, f.admin, review.ID, "Moderated", 3)
		require.NoError(t, err)
		assert.Equal(t, "Moderated", updated.Text)
	})

	t.Run("rating outside range leaves the prior state intact", func(t *testing.T) {
		_, err := f.reviews.Update(ctx, guest, review.ID, "Out of range", 6)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		got, err := f.reviews.GetByID(ctx, review.ID)
		require.NoError(t, err)
		assert.Equal(t, "Moderated", got.Text)
		assert.Equal(t, 3, got.Rating)
	})
}

func TestReviewService_ListByPlace(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.reviews.ListByPlace(ctx, "nonexistent")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.registerUser(t, "owner@example.com")
	guest := f.registerUser(t, "guest@example.com")
	place, err := f.places.Create(ctx, owner, services.CreatePlaceInput{Title: "Canal house", Price: 120})
	require.NoError(t, err)
	review, err := f.reviews.Create(ctx, guest, services.CreateReviewInput{
		PlaceID: place.ID, Text: "Fine", Rating: 3,
	})
	require.NoError(t, err)

	t.Run("the place owner cannot delete someone else's review", func(t *testing.T) {
		err := f.reviews.Delete(ctx, owner, review.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("the author can delete", func(t *testing.T) {
		require.NoError(t, f.reviews.Delete(ctx, guest, review.ID))

		_, err := f.reviews.GetByID(ctx, review.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}
