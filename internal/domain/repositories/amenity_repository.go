package repositories

import (
	"context"

	"github.com/nohlan/stayhub/internal/domain/entities"
)

// AmenityRepository defines the storage contract for amenities.
type AmenityRepository interface {
	Create(ctx context.Context, amenity *entities.Amenity) error

	// GetByID retrieves an amenity by id, NOT_FOUND on miss.
	GetByID(ctx context.Context, id string) (*entities.Amenity, error)

	// GetByName retrieves an amenity by exact name match.
	GetByName(ctx context.Context, name string) (*entities.Amenity, error)

	// List retrieves all amenities in insertion order.
	List(ctx context.Context) ([]*entities.Amenity, error)

	Update(ctx context.Context, amenity *entities.Amenity) error

	Delete(ctx context.Context, id string) error
}
