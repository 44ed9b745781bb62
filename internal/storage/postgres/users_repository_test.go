package postgres

import (
	"context"
	"testing"

	"github.com/gatherly/server/internal/domain/users"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo, err := NewRepository(pool)
	require.NoError(t, err)

	created := insertUser(t, ctx, repo, "alice@example.com")
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice@example.com", created.Email)
	require.False(t, created.CreatedAt.IsZero())

	byEmail, err := repo.Users().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)
	require.NotEmpty(t, byEmail.PasswordHash)

	byID, err := repo.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, byID.Email)
}

func TestUserLookupMisses(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo, err := NewRepository(pool)
	require.NoError(t, err)

	_, err = repo.Users().GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo, err := NewRepository(pool)
	require.NoError(t, err)

	insertUser(t, ctx, repo, "bob@example.com")

	_, err = repo.Users().Create(ctx, users.CreateUserParams{
		Email:        "bob@example.com",
		Name:         "Other Bob",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, users.ErrEmailTaken)
}
