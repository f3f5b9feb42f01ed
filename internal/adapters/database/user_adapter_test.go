package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nohlan/stayhub/internal/adapters/database"
	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	"github.com/nohlan/stayhub/internal/infrastructure/clients/postgres"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

func setupMockAdapter(t *testing.T) (repositories.UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return database.NewUserAdapter(postgres.NewClientWithDB(mockDB)), mock
}

func testUser(t *testing.T) *entities.User {
	t.Helper()
	user, err := entities.NewUser("Ada", "Lovelace", "ada@example.com", "hash", false)
	require.NoError(t, err)
	return user
}

func TestUserAdapter_Create(t *testing.T) {
	t.Run("inserts a user row", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)

		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := adapter.Create(context.Background(), testUser(t))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a unique violation to CONFLICT", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)

		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := adapter.Create(context.Background(), testUser(t))
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})
}

func TestUserAdapter_GetByID(t *testing.T) {
	columns := []string{
		"id", "first_name", "last_name", "email",
		"password_hash", "is_admin", "created_at", "updated_at",
	}

	t.Run("scans a user row", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)
		want := testUser(t)

		mock.ExpectQuery(`SELECT .+ FROM "users" WHERE`).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				want.ID, want.FirstName, want.LastName, want.Email,
				want.PasswordHash, want.IsAdmin, want.CreatedAt, want.UpdatedAt,
			))

		got, err := adapter.GetByID(context.Background(), want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.Email, got.Email)
		assert.Equal(t, want.PasswordHash, got.PasswordHash)
	})

	t.Run("maps an empty result to NOT_FOUND", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)

		mock.ExpectQuery(`SELECT .+ FROM "users" WHERE`).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := adapter.GetByID(context.Background(), "missing")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestUserAdapter_Update(t *testing.T) {
	t.Run("maps zero affected rows to NOT_FOUND", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.Update(context.Background(), testUser(t))
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("maps a unique violation on email to CONFLICT", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := adapter.Update(context.Background(), testUser(t))
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})
}

func TestUserAdapter_Delete(t *testing.T) {
	t.Run("maps zero affected rows to NOT_FOUND", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)

		mock.ExpectExec(`DELETE FROM "users"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.Delete(context.Background(), "missing")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}
