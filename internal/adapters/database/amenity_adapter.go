package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	"github.com/nohlan/stayhub/internal/infrastructure/clients/postgres"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// AmenityAdapter implements amenity persistence in PostgreSQL.
type AmenityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAmenityAdapter creates a new amenity adapter.
func NewAmenityAdapter(client *postgres.Client) repositories.AmenityRepository {
	return &AmenityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new amenity.
func (a *AmenityAdapter) Create(ctx context.Context, amenity *entities.Amenity) error {
	record := goqu.Record{
		"id":          amenity.ID,
		"name":        amenity.Name,
		"description": sql.NullString{String: amenity.Description, Valid: amenity.Description != ""},
		"created_at":  amenity.CreatedAt,
		"updated_at":  amenity.UpdatedAt,
	}

	query, args, err := a.db.Insert("amenities").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("amenity with id %s already exists", amenity.ID))
		}
		return apperrors.NewInternalError("failed to create amenity", err)
	}

	return nil
}

// GetByID retrieves an amenity by ID.
func (a *AmenityAdapter) GetByID(ctx context.Context, id string) (*entities.Amenity, error) {
	return a.getByField(ctx, "id", id)
}

// GetByName retrieves an amenity by exact name match.
func (a *AmenityAdapter) GetByName(ctx context.Context, name string) (*entities.Amenity, error) {
	return a.getByField(ctx, "name", name)
}

func (a *AmenityAdapter) getByField(ctx context.Context, field, value string) (*entities.Amenity, error) {
	query, args, err := a.db.Select(
		"id", "name", "description", "created_at", "updated_at",
	).From("amenities").
		Where(goqu.Ex{field: value}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build amenity query", err)
	}

	amenity := &entities.Amenity{}
	var description sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&amenity.ID,
		&amenity.Name,
		&description,
		&amenity.CreatedAt,
		&amenity.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("amenity with %s %s not found", field, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get amenity", err)
	}

	amenity.Description = description.String
	return amenity, nil
}

// List retrieves all amenities in insertion order.
func (a *AmenityAdapter) List(ctx context.Context) ([]*entities.Amenity, error) {
	query, args, err := a.db.Select(
		"id", "name", "description", "created_at", "updated_at",
	).From("amenities").
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build amenity list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list amenities", err)
	}
	defer rows.Close()

	var amenities []*entities.Amenity
	for rows.Next() {
		amenity := &entities.Amenity{}
		var description sql.NullString

		err := rows.Scan(
			&amenity.ID,
			&amenity.Name,
			&description,
			&amenity.CreatedAt,
			&amenity.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan amenity", err)
		}

		amenity.Description = description.String
		amenities = append(amenities, amenity)
	}

	return amenities, nil
}

// Update persists field changes and bumps updated_at.
func (a *AmenityAdapter) Update(ctx context.Context, amenity *entities.Amenity) error {
	amenity.Touch()

	record := goqu.Record{
		"name":        amenity.Name,
		"description": sql.NullString{String: amenity.Description, Valid: amenity.Description != ""},
		"updated_at":  amenity.UpdatedAt,
	}

	query, args, err := a.db.Update("amenities").
		Set(record).
		Where(goqu.Ex{"id": amenity.ID}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build amenity update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update amenity", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", amenity.ID))
	}

	return nil
}

// Delete removes an amenity.
func (a *AmenityAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("amenities").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build amenity delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete amenity", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", id))
	}

	return nil
}
