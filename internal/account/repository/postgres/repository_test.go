package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aakash6545/ServerCore/internal/account/domain"
	repo "github.com/Aakash6545/ServerCore/internal/account/repository/postgres"
)

var userColumns = []string{
	"id", "username", "email", "full_name", "password_hash",
	"avatar_url", "avatar_id", "cover_image_url", "cover_image_id",
	"current_refresh_token", "created_at", "updated_at",
}

func userRow(u *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).AddRow(
		u.ID, u.Username, u.Email, u.FullName, u.PasswordHash,
		u.AvatarURL, u.AvatarID, u.CoverImageURL, u.CoverImageID,
		u.CurrentRefreshToken, u.CreatedAt, u.UpdatedAt,
	)
}

func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	expected := &domain.User{ID: "user-123", Username: "alice", Email: "a@x.com"}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs(expected.ID).
			WillReturnRows(userRow(expected))

		user, err := r.GetByID(ctx, expected.ID)
		require.NoError(t, err)
		assert.Equal(t, expected.ID, user.ID)
		assert.Equal(t, expected.Username, user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByID(ctx, "ghost")
		require.NoError(t, err) // Should return nil user, nil error
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs(expected.ID).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByID(ctx, expected.ID)
		assert.Error(t, err)
	})
}

func TestGetByUsernameOrEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	expected := &domain.User{ID: "user-123", Username: "alice", Email: "a@x.com"}

	t.Run("by username", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("alice", "").
			WillReturnRows(userRow(expected))

		user, err := r.GetByUsernameOrEmail(ctx, "alice", "")
		require.NoError(t, err)
		assert.Equal(t, expected.ID, user.ID)
	})

	t.Run("by email", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("", "a@x.com").
			WillReturnRows(userRow(expected))

		user, err := r.GetByUsernameOrEmail(ctx, "", "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, expected.Email, user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("ghost", "").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByUsernameOrEmail(ctx, "ghost", "")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	now := time.Now()
	user := &domain.User{
		ID:           "user-123",
		Username:     "alice",
		Email:        "a@x.com",
		FullName:     "Alice Liddell",
		PasswordHash: "hash",
		AvatarURL:    "https://cdn/a.png",
		AvatarID:     "media/a.png",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
				user.AvatarURL, user.AvatarID, user.CoverImageURL, user.CoverImageID,
				user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, r.Create(ctx, user))
	})

	t.Run("duplicate key", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
				user.AvatarURL, user.AvatarID, user.CoverImageURL, user.CoverImageID,
				user.CreatedAt, user.UpdatedAt).
			WillReturnError(fmt.Errorf("duplicate key value violates unique constraint"))

		assert.Error(t, r.Create(ctx, user))
	})
}

func TestSetRefreshToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	mock.ExpectExec("UPDATE users SET current_refresh_token").
		WithArgs("user-123", "new-token").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, r.SetRefreshToken(context.Background(), "user-123", "new-token"))
}

// TestUpdateRefreshToken covers the rotation CAS: the affected-row
// count decides whether the caller won the race.
func TestUpdateRefreshToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("swap succeeds", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET current_refresh_token").
			WithArgs("user-123", "old-token", "new-token").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		swapped, err := r.UpdateRefreshToken(ctx, "user-123", "old-token", "new-token")
		require.NoError(t, err)
		assert.True(t, swapped)
	})

	t.Run("stale expected value", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET current_refresh_token").
			WithArgs("user-123", "rotated-out-token", "new-token").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		swapped, err := r.UpdateRefreshToken(ctx, "user-123", "rotated-out-token", "new-token")
		require.NoError(t, err)
		assert.False(t, swapped)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET current_refresh_token").
			WithArgs("user-123", "old-token", "new-token").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.UpdateRefreshToken(ctx, "user-123", "old-token", "new-token")
		assert.Error(t, err)
	})
}

func TestClearRefreshToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	// Clearing an already-cleared token still matches the row; the
	// operation stays idempotent.
	mock.ExpectExec("UPDATE users SET current_refresh_token").
		WithArgs("user-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, r.ClearRefreshToken(context.Background(), "user-123"))
}

func TestUpdatePassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET password_hash").
			WithArgs("user-123", "new-hash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, r.UpdatePassword(ctx, "user-123", "new-hash"))
	})

	t.Run("user not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET password_hash").
			WithArgs("ghost", "new-hash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.Error(t, r.UpdatePassword(ctx, "ghost", "new-hash"))
	})
}

func TestUpdateProfile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		updated := &domain.User{ID: "user-123", FullName: "New Name", Email: "new@x.com"}
		mock.ExpectQuery("UPDATE users SET full_name").
			WithArgs("user-123", "New Name", "new@x.com").
			WillReturnRows(userRow(updated))

		user, err := r.UpdateProfile(ctx, "user-123", "New Name", "new@x.com")
		require.NoError(t, err)
		assert.Equal(t, "New Name", user.FullName)
	})

	t.Run("user not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users SET full_name").
			WithArgs("ghost", "Name", "e@x.com").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.UpdateProfile(ctx, "ghost", "Name", "e@x.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUpdateAvatar(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	updated := &domain.User{ID: "user-123", AvatarURL: "https://cdn/new.png", AvatarID: "media/new.png"}
	mock.ExpectQuery("UPDATE users SET avatar_url").
		WithArgs("user-123", "https://cdn/new.png", "media/new.png").
		WillReturnRows(userRow(updated))

	user, err := r.UpdateAvatar(context.Background(), "user-123", "https://cdn/new.png", "media/new.png")
	require.NoError(t, err)
	assert.Equal(t, "media/new.png", user.AvatarID)
}

func TestUpdateCoverImage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	updated := &domain.User{ID: "user-123", CoverImageURL: "https://cdn/c.png", CoverImageID: "media/c.png"}
	mock.ExpectQuery("UPDATE users SET cover_image_url").
		WithArgs("user-123", "https://cdn/c.png", "media/c.png").
		WillReturnRows(userRow(updated))

	user, err := r.UpdateCoverImage(context.Background(), "user-123", "https://cdn/c.png", "media/c.png")
	require.NoError(t, err)
	assert.Equal(t, "media/c.png", user.CoverImageID)
}
