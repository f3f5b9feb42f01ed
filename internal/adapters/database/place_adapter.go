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

// PlaceAdapter implements place persistence in PostgreSQL. The amenity
// set lives in the place_amenities join table and is replaced inside
// the same transaction as the place row, so a failed write never leaves
// a partially replaced set behind.
type PlaceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPlaceAdapter creates a new place adapter.
func NewPlaceAdapter(client *postgres.Client) repositories.PlaceRepository {
	return &PlaceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new place and its amenity links.
func (a *PlaceAdapter) Create(ctx context.Context, place *entities.Place) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	record := goqu.Record{
		"id":          place.ID,
		"title":       place.Title,
		"description": sql.NullString{String: place.Description, Valid: place.Description != ""},
		"price":       place.Price,
		"latitude":    place.Latitude,
		"longitude":   place.Longitude,
		"owner_id":    place.OwnerID,
		"created_at":  place.CreatedAt,
		"updated_at":  place.UpdatedAt,
	}

	query, args, err := a.db.Insert("places").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build place insert query", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("place with id %s already exists", place.ID))
		}
		return apperrors.NewInternalError("failed to create place", err)
	}

	if err := a.insertAmenityLinks(ctx, tx, place.ID, place.AmenityIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit place insert", err)
	}

	return nil
}

// GetByID retrieves a place with its amenity ids.
func (a *PlaceAdapter) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	query, args, err := a.db.Select(
		"id", "title", "description", "price",
		"latitude", "longitude", "owner_id", "created_at", "updated_at",
	).From("places").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build place query", err)
	}

	place := &entities.Place{}
	var description sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&place.ID,
		&place.Title,
		&description,
		&place.Price,
		&place.Latitude,
		&place.Longitude,
		&place.OwnerID,
		&place.CreatedAt,
		&place.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get place", err)
	}

	place.Description = description.String

	amenityIDs, err := a.amenityIDs(ctx, place.ID)
	if err != nil {
		return nil, err
	}
	place.AmenityIDs = amenityIDs

	return place, nil
}

// List retrieves places in insertion order, optionally filtered by owner.
func (a *PlaceAdapter) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	ds := a.db.Select(
		"id", "title", "description", "price",
		"latitude", "longitude", "owner_id", "created_at", "updated_at",
	).From("places")

	if filter.OwnerID != "" {
		ds = ds.Where(goqu.Ex{"owner_id": filter.OwnerID})
	}

	ds = ds.Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build place list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list places", err)
	}
	defer rows.Close()

	var places []*entities.Place
	for rows.Next() {
		place := &entities.Place{}
		var description sql.NullString

		err := rows.Scan(
			&place.ID,
			&place.Title,
			&description,
			&place.Price,
			&place.Latitude,
			&place.Longitude,
			&place.OwnerID,
			&place.CreatedAt,
			&place.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan place", err)
		}

		place.Description = description.String
		places = append(places, place)
	}

	for _, place := range places {
		amenityIDs, err := a.amenityIDs(ctx, place.ID)
		if err != nil {
			return nil, err
		}
		place.AmenityIDs = amenityIDs
	}

	return places, nil
}

// Update persists mutable fields and replaces the amenity set in one
// transaction.
func (a *PlaceAdapter) Update(ctx context.Context, place *entities.Place) error {
	place.Touch()

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	record := goqu.Record{
		"title":       place.Title,
		"description": sql.NullString{String: place.Description, Valid: place.Description != ""},
		"price":       place.Price,
		"latitude":    place.Latitude,
		"longitude":   place.Longitude,
		"updated_at":  place.UpdatedAt,
	}

	query, args, err := a.db.Update("places").
		Set(record).
		Where(goqu.Ex{"id": place.ID}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build place update query", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update place", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", place.ID))
	}

	deleteQuery, deleteArgs, err := a.db.Delete("place_amenities").
		Where(goqu.Ex{"place_id": place.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity link delete query", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return apperrors.NewInternalError("failed to clear amenity links", err)
	}

	if err := a.insertAmenityLinks(ctx, tx, place.ID, place.AmenityIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit place update", err)
	}

	return nil
}

// Delete removes a place. Amenity links cascade via the foreign key.
func (a *PlaceAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("places").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build place delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete place", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", id))
	}

	return nil
}

func (a *PlaceAdapter) insertAmenityLinks(ctx context.Context, tx *sql.Tx, placeID string, amenityIDs []string) error {
	if len(amenityIDs) == 0 {
		return nil
	}

	records := make([]interface{}, 0, len(amenityIDs))
	for _, amenityID := range amenityIDs {
		records = append(records, goqu.Record{
			"place_id":   placeID,
			"amenity_id": amenityID,
		})
	}

	query, args, err := a.db.Insert("place_amenities").Rows(records...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity link insert query", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert amenity links", err)
	}

	return nil
}

func (a *PlaceAdapter) amenityIDs(ctx context.Context, placeID string) ([]string, error) {
	query, args, err := a.db.Select("pa.amenity_id").
		From(goqu.T("place_amenities").As("pa")).
		Join(
			goqu.T("amenities").As("am"),
			goqu.On(goqu.I("pa.amenity_id").Eq(goqu.I("am.id"))),
		).
		Where(goqu.Ex{"pa.place_id": placeID}).
		Order(goqu.I("am.created_at").Asc(), goqu.I("am.id").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build amenity link query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list amenity links", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan amenity link", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
