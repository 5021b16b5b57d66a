package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_user_store.go -package=mocks github.com/Aakash6545/ServerCore/internal/account/domain UserStore,MediaStore

// UserStore is the persistence contract for accounts. Lookups return
// (nil, nil) when no row matches.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByUsernameOrEmail matches either identifier; empty arguments
	// are ignored.
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	// SetRefreshToken unconditionally overwrites the stored refresh
	// token, discarding any prior session.
	SetRefreshToken(ctx context.Context, id, token string) error
	// UpdateRefreshToken atomically replaces the stored refresh token
	// only if it still equals expectedOld. Returns false when another
	// writer got there first.
	UpdateRefreshToken(ctx context.Context, id, expectedOld, next string) (bool, error)
	ClearRefreshToken(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateProfile(ctx context.Context, id, fullName, email string) (*User, error)
	UpdateAvatar(ctx context.Context, id, url, mediaID string) (*User, error)
	UpdateCoverImage(ctx context.Context, id, url, mediaID string) (*User, error)
}

// MediaStore uploads locally staged files to remote storage.
type MediaStore interface {
	Upload(ctx context.Context, localPath string) (*MediaObject, error)
	Delete(ctx context.Context, key string) error
}
