package domain

import "time"

// User is the persisted account record. PasswordHash and
// CurrentRefreshToken never leave the store layer in API responses.
type User struct {
	ID            string
	Username      string
	Email         string
	FullName      string
	PasswordHash  string
	AvatarURL     string
	AvatarID      string
	CoverImageURL string
	CoverImageID  string
	// CurrentRefreshToken is the single refresh token presently valid
	// for this user. Empty means logged out.
	CurrentRefreshToken string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// MediaObject is a stored media asset: a public URL plus the storage
// key needed to delete it later.
type MediaObject struct {
	URL string
	Key string
}
