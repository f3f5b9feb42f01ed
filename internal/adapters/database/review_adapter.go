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

// ReviewAdapter implements review persistence in PostgreSQL. The unique
// index on (user_id, place_id) enforces one review per user per place,
// so concurrent duplicate submissions cannot both commit.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new review, CONFLICT if the (user, place) pair
// already has one.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":         review.ID,
		"text":       review.Text,
		"rating":     review.Rating,
		"place_id":   review.PlaceID,
		"user_id":    review.UserID,
		"created_at": review.CreatedAt,
		"updated_at": review.UpdatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("you have already reviewed this place")
		}
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// GetByID retrieves a review by ID.
func (a *ReviewAdapter) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	query, args, err := a.selectReviews().
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review query", err)
	}

	review, err := a.scanOne(ctx, query, args)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	return review, err
}

// GetByUserAndPlace retrieves the review a user left on a place.
func (a *ReviewAdapter) GetByUserAndPlace(ctx context.Context, userID, placeID string) (*entities.Review, error) {
	query, args, err := a.selectReviews().
		Where(goqu.Ex{"user_id": userID, "place_id": placeID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review query", err)
	}

	review, err := a.scanOne(ctx, query, args)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("review by user %s on place %s not found", userID, placeID))
	}
	return review, err
}

// ListByPlace retrieves all reviews of a place in insertion order.
func (a *ReviewAdapter) ListByPlace(ctx context.Context, placeID string) ([]*entities.Review, error) {
	query, args, err := a.selectReviews().
		Where(goqu.Ex{"place_id": placeID}).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review list query", err)
	}
	return a.scanMany(ctx, query, args)
}

// List retrieves all reviews in insertion order.
func (a *ReviewAdapter) List(ctx context.Context) ([]*entities.Review, error) {
	query, args, err := a.selectReviews().
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review list query", err)
	}
	return a.scanMany(ctx, query, args)
}

// Update persists field changes and bumps updated_at.
func (a *ReviewAdapter) Update(ctx context.Context, review *entities.Review) error {
	review.Touch()

	record := goqu.Record{
		"text":       review.Text,
		"rating":     review.Rating,
		"updated_at": review.UpdatedAt,
	}

	query, args, err := a.db.Update("reviews").
		Set(record).
		Where(goqu.Ex{"id": review.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update review", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", review.ID))
	}

	return nil
}

// Delete removes a review.
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("reviews").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete review", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}

	return nil
}

// DeleteByPlace removes all reviews of a place. Zero rows is fine, the
// place may simply have none.
func (a *ReviewAdapter) DeleteByPlace(ctx context.Context, placeID string) error {
	query, args, err := a.db.Delete("reviews").
		Where(goqu.Ex{"place_id": placeID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete place reviews", err)
	}

	return nil
}

// DeleteByUser removes all reviews written by a user.
func (a *ReviewAdapter) DeleteByUser(ctx context.Context, userID string) error {
	query, args, err := a.db.Delete("reviews").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete user reviews", err)
	}

	return nil
}

func (a *ReviewAdapter) selectReviews() *goqu.SelectDataset {
	return a.db.Select(
		"id", "text", "rating", "place_id", "user_id", "created_at", "updated_at",
	).From("reviews")
}

func (a *ReviewAdapter) scanOne(ctx context.Context, query string, args []interface{}) (*entities.Review, error) {
	review := &entities.Review{}
	err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&review.Text,
		&review.Rating,
		&review.PlaceID,
		&review.UserID,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}
	return review, nil
}

func (a *ReviewAdapter) scanMany(ctx context.Context, query string, args []interface{}) ([]*entities.Review, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		review := &entities.Review{}
		err := rows.Scan(
			&review.ID,
			&review.Text,
			&review.Rating,
			&review.PlaceID,
			&review.UserID,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}
