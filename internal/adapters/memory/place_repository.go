package memory

import (
	"context"
	"fmt"

	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// PlaceRepository implements place persistence on the in-memory store.
// Because Replace swaps the whole record under one lock, amenity set
// replacement is naturally atomic.
type PlaceRepository struct {
	store *Store[entities.Place]
}

// NewPlaceRepository creates an empty in-memory place repository.
func NewPlaceRepository() repositories.PlaceRepository {
	return &PlaceRepository{
		store: NewStore(
			func(p *entities.Place) string { return p.ID },
			func(p *entities.Place) { p.Touch() },
			clonePlace,
		),
	}
}

func clonePlace(p *entities.Place) *entities.Place {
	c := *p
	c.AmenityIDs = append([]string(nil), p.AmenityIDs...)
	return &c
}

func (r *PlaceRepository) Create(ctx context.Context, place *entities.Place) error {
	return r.store.Add(place)
}

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	place, ok := r.store.Get(id)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", id))
	}
	return place, nil
}

func (r *PlaceRepository) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	var match func(*entities.Place) bool
	if filter.OwnerID != "" {
		match = func(p *entities.Place) bool { return p.OwnerID == filter.OwnerID }
	}
	return r.store.List(match), nil
}

func (r *PlaceRepository) Update(ctx context.Context, place *entities.Place) error {
	return r.store.Replace(place, nil, "")
}

func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Delete(id) {
		return apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", id))
	}
	return nil
}
