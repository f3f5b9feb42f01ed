package entities

import (
	"fmt"
	"strings"

	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

const maxAmenityNameLength = 50

// Amenity is an independent, admin-managed entity with no foreign references.
type Amenity struct {
	Entity
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// AmenitySummary is the outward (id, name) pair embedded in place details.
type AmenitySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewAmenity constructs a validated amenity.
func NewAmenity(name, description string) (*Amenity, error) {
	a := &Amenity{
		Entity:      NewEntity(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate enforces the amenity field invariants.
func (a Amenity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return apperrors.NewValidationError("name must not be blank")
	}
	if len(a.Name) > maxAmenityNameLength {
		return apperrors.NewValidationError(fmt.Sprintf("name must be at most %d characters", maxAmenityNameLength))
	}
	return nil
}

// Update applies a name/description change, all-or-nothing.
func (a *Amenity) Update(name, description string) error {
	next := *a
	next.Name = strings.TrimSpace(name)
	next.Description = strings.TrimSpace(description)
	if err := next.Validate(); err != nil {
		return err
	}
	*a = next
	return nil
}

// Summary returns the outward (id, name) pair.
func (a *Amenity) Summary() AmenitySummary {
	return AmenitySummary{ID: a.ID, Name: a.Name}
}
