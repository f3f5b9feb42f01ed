package memory

import (
	"context"
	"fmt"

	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// AmenityRepository implements amenity persistence on the in-memory store.
type AmenityRepository struct {
	store *Store[entities.Amenity]
}

// NewAmenityRepository creates an empty in-memory amenity repository.
func NewAmenityRepository() repositories.AmenityRepository {
	return &AmenityRepository{
		store: NewStore(
			func(a *entities.Amenity) string { return a.ID },
			func(a *entities.Amenity) { a.Touch() },
			func(a *entities.Amenity) *entities.Amenity { c := *a; return &c },
		),
	}
}

func (r *AmenityRepository) Create(ctx context.Context, amenity *entities.Amenity) error {
	return r.store.Add(amenity)
}

func (r *AmenityRepository) GetByID(ctx context.Context, id string) (*entities.Amenity, error) {
	amenity, ok := r.store.Get(id)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", id))
	}
	return amenity, nil
}

func (r *AmenityRepository) GetByName(ctx context.Context, name string) (*entities.Amenity, error) {
	amenity, ok := r.store.Find(func(a *entities.Amenity) bool { return a.Name == name })
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("amenity named %s not found", name))
	}
	return amenity, nil
}

func (r *AmenityRepository) List(ctx context.Context) ([]*entities.Amenity, error) {
	return r.store.List(nil), nil
}

func (r *AmenityRepository) Update(ctx context.Context, amenity *entities.Amenity) error {
	return r.store.Replace(amenity, nil, "")
}

func (r *AmenityRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Delete(id) {
		return apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", id))
	}
	return nil
}
