package repositories

import (
	"context"

	"github.com/nohlan/stayhub/internal/domain/entities"
)

// PlaceFilter narrows place listings. Zero value means no filtering.
type PlaceFilter struct {
	OwnerID string
}

// PlaceRepository defines the storage contract for places, including
// their amenity id set. Replacing the amenity set is atomic: it either
// fully replaces or fails without partial mutation.
type PlaceRepository interface {
	Create(ctx context.Context, place *entities.Place) error

	// GetByID retrieves a place with its amenity ids, NOT_FOUND on miss.
	GetByID(ctx context.Context, id string) (*entities.Place, error)

	// List retrieves places in insertion order, optionally filtered.
	List(ctx context.Context, filter PlaceFilter) ([]*entities.Place, error)

	// Update persists mutable fields and the amenity set, bumps
	// updated_at. NOT_FOUND if the id is absent.
	Update(ctx context.Context, place *entities.Place) error

	Delete(ctx context.Context, id string) error
}
