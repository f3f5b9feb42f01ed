package entities

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base shape shared by every domain entity: an opaque
// immutable id and creation/update timestamps. It is composed into each
// entity type rather than inherited.
type Entity struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewEntity returns a freshly identified Entity with both timestamps set to now.
func NewEntity() Entity {
	now := time.Now().UTC()
	return Entity{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Key returns the entity id.
func (e *Entity) Key() string {
	return e.ID
}

// Touch bumps UpdatedAt. It never moves the timestamp backwards.
func (e *Entity) Touch() {
	if now := time.Now().UTC(); now.After(e.UpdatedAt) {
		e.UpdatedAt = now
	}
}
