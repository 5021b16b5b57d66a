package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Aakash6545/ServerCore/internal/account/domain"
)

const userColumns = `id, username, email, full_name, password_hash,
	avatar_url, avatar_id, cover_image_url, cover_image_id,
	current_refresh_token, created_at, updated_at`

// DB is the subset of pgxpool.Pool used by the repository; pgxmock
// implements it too.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.PasswordHash, &user.AvatarURL, &user.AvatarID,
		&user.CoverImageURL, &user.CoverImageID, &user.CurrentRefreshToken,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1;`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE ($1 <> '' AND username = $1) OR ($2 <> '' AND email = $2)
		LIMIT 1;`
	return scanUser(r.db.QueryRow(ctx, query, username, email))
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, email, full_name, password_hash,
			avatar_url, avatar_id, cover_image_url, cover_image_id,
			current_refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, '', $10, $11)
	`, user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
		user.AvatarURL, user.AvatarID, user.CoverImageURL, user.CoverImageID,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET current_refresh_token = $2, updated_at = now()
		WHERE id = $1
	`, id, token)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}

	return nil
}

// UpdateRefreshToken is the rotation CAS: the write lands only if the
// stored token still equals expectedOld, and the affected-row count
// tells the caller whether it won or lost the race.
func (r *PostgresRepository) UpdateRefreshToken(ctx context.Context, id, expectedOld, next string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET current_refresh_token = $3, updated_at = now()
		WHERE id = $1 AND current_refresh_token = $2
	`, id, expectedOld, next)
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) ClearRefreshToken(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET current_refresh_token = '', updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update password: user %s not found", id)
	}

	return nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id, fullName, email string) (*domain.User, error) {
	query := `
		UPDATE users SET full_name = $2, email = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns + `;`
	return scanUser(r.db.QueryRow(ctx, query, id, fullName, email))
}

func (r *PostgresRepository) UpdateAvatar(ctx context.Context, id, url, mediaID string) (*domain.User, error) {
	query := `
		UPDATE users SET avatar_url = $2, avatar_id = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns + `;`
	return scanUser(r.db.QueryRow(ctx, query, id, url, mediaID))
}

func (r *PostgresRepository) UpdateCoverImage(ctx context.Context, id, url, mediaID string) (*domain.User, error) {
	query := `
		UPDATE users SET cover_image_url = $2, cover_image_id = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns + `;`
	return scanUser(r.db.QueryRow(ctx, query, id, url, mediaID))
}
