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

func TestAmenityService_Create(t *testing.T) {
	ctx := context.Background()
	admin := policy.Principal{ID: "root", IsAdmin: true}
	guest := policy.Principal{ID: "guest"}

	t.Run("admin creates an amenity", func(t *testing.T) {
		svc := services.NewAmenityService(memory.NewAmenityRepository(), nil)

		amenity, err := svc.Create(ctx, admin, "Wi-Fi", "Fiber uplink")
		require.NoError(t, err)
		assert.Equal(t, "Wi-Fi", amenity.Name)
	})

	t.Run("names are not unique, two Wi-Fi entries may coexist", func(t *testing.T) {
		svc := services.NewAmenityService(memory.NewAmenityRepository(), nil)

		first, err := svc.Create(ctx, admin, "Wi-Fi", "Fiber uplink")
		require.NoError(t, err)
		second, err := svc.Create(ctx, admin, "Wi-Fi", "Roof antenna")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		amenities, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, amenities, 2)
	})

	t.Run("non-admin is rejected and nothing is persisted", func(t *testing.T) {
		svc := services.NewAmenityService(memory.NewAmenityRepository(), nil)

		_, err := svc.Create(ctx, guest, "Wi-Fi", "")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

		amenities, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, amenities)
	})

	t.Run("admin with a blank name fails validation", func(t *testing.T) {
		svc := services.NewAmenityService(memory.NewAmenityRepository(), nil)

		_, err := svc.Create(ctx, admin, "  ", "")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestAmenityService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	admin := policy.Principal{ID: "root", IsAdmin: true}
	guest := policy.Principal{ID: "guest"}
	svc := services.NewAmenityService(memory.NewAmenityRepository(), nil)

	amenity, err := svc.Create(ctx, admin, "Wi-Fi", "")
	require.NoError(t, err)

	t.Run("non-admin cannot update", func(t *testing.T) {
		_, err := svc.Update(ctx, guest, amenity.ID, "Pool", "")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("admin update round trips", func(t *testing.T) {
		updated, err := svc.Update(ctx, admin, amenity.ID, "Pool", "Heated")
		require.NoError(t, err)
		assert.Equal(t, "Pool", updated.Name)

		got, err := svc.GetByID(ctx, amenity.ID)
		require.NoError(t, err)
		assert.Equal(t, "Heated", got.Description)
	})

	t.Run("update of a missing amenity is NOT_FOUND", func(t *testing.T) {
		_, err := svc.Update(ctx, admin, "missing-id", "Pool", "")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("admin delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, admin, amenity.ID))
		_, err := svc.GetByID(ctx, amenity.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}
