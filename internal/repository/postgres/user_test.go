package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/repository/postgres"
)

var userCols = []string{
	"id", "email", "password_hash", "full_name", "phone", "role", "is_active", "created_at", "updated_at",
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = LOWER\(\$1\)`).
		WithArgs("Dana@Example.COM").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id.String(), "dana@example.com", "$2a$10$hash", "Dana Levi", "0521234567", "owner", true, now, now))

	user, err := repo.GetByEmail(context.Background(), "Dana@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Equal(t, domain.RoleOwner, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "dana@example.com", "$2a$10$hash", "Dana Levi", "", "owner", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &domain.User{
		Email:        "dana@example.com",
		PasswordHash: "$2a$10$hash",
		FullName:     "Dana Levi",
		Role:         domain.RoleOwner,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT .+ FROM users WHERE 1=1 AND role = \$1\) AS sub`).
		WithArgs("owner").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE 1=1 AND role = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("owner", 20, 0).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(uuid.New().String(), "dana@example.com", "h", "Dana Levi", "", "owner", true, now, now))

	users, total, err := repo.List(context.Background(), repository.UserFilter{Role: domain.RoleOwner}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "Dana Levi", users[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
