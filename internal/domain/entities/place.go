package entities

import (
	"fmt"
	"strings"

	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

const maxTitleLength = 100

// Place is a rental listing. The owner is always the principal that
// created it and never changes; amenities are held as a deduplicated
// set of ids, and reviews are derived at read time, never stored here.
type Place struct {
	Entity
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description" db:"description"`
	Price       float64  `json:"price" db:"price"`
	Latitude    float64  `json:"latitude" db:"latitude"`
	Longitude   float64  `json:"longitude" db:"longitude"`
	OwnerID     string   `json:"owner_id" db:"owner_id"`
	AmenityIDs  []string `json:"amenities" db:"-"`
}

// PlaceDetail is the composed outward view of a place with its owner,
// amenities and reviews resolved.
type PlaceDetail struct {
	Place
	Owner     UserSummary      `json:"owner"`
	Amenities []AmenitySummary `json:"amenities"`
	Reviews   []ReviewSummary  `json:"reviews"`
}

// NewPlace constructs a validated place owned by ownerID. Amenity ids
// are deduplicated preserving first occurrence; their existence is the
// caller's concern.
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string, amenityIDs []string) (*Place, error) {
	p := &Place{
		Entity:      NewEntity(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Price:       price,
		Latitude:    latitude,
		Longitude:   longitude,
		OwnerID:     ownerID,
		AmenityIDs:  DedupeIDs(amenityIDs),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces the per-field place invariants.
func (p Place) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return apperrors.NewValidationError("title must not be blank")
	}
	if len(p.Title) > maxTitleLength {
		return apperrors.NewValidationError(fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	if p.Price < 0 {
		return apperrors.NewValidationError("price must not be negative")
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return apperrors.NewValidationError("latitude must be between -90 and 90")
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return apperrors.NewValidationError("longitude must be between -180 and 180")
	}
	if p.OwnerID == "" {
		return apperrors.NewValidationError("owner_id is required")
	}
	return nil
}

// SetDetails applies the mutable place fields, all-or-nothing.
// Owner and amenity set are intentionally out of reach here.
func (p *Place) SetDetails(title, description string, price, latitude, longitude float64) error {
	next := *p
	next.Title = strings.TrimSpace(title)
	next.Description = strings.TrimSpace(description)
	next.Price = price
	next.Latitude = latitude
	next.Longitude = longitude
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

// SetAmenities replaces the amenity set, deduplicated.
func (p *Place) SetAmenities(amenityIDs []string) {
	p.AmenityIDs = DedupeIDs(amenityIDs)
}

// DedupeIDs removes duplicate ids preserving first-occurrence order.
func DedupeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
