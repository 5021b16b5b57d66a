package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Aakash6545/ServerCore/internal/account/domain"
	"github.com/Aakash6545/ServerCore/internal/account/dto"
	autherror "github.com/Aakash6545/ServerCore/internal/errors"
	"github.com/Aakash6545/ServerCore/internal/logging"
	"github.com/Aakash6545/ServerCore/pkg/constant"
)

// UserService orchestrates registration, the login/logout/refresh
// session lifecycle, and profile updates. All durable state lives in
// the UserStore; the service itself holds no per-user state.
type UserService struct {
	store  domain.UserStore
	media  domain.MediaStore
	tokens TokenGenerator
	hasher *PasswordHasher
	log    logging.Logger
}

func NewUserService(store domain.UserStore, media domain.MediaStore, tokens TokenGenerator,
	hasher *PasswordHasher, log logging.Logger) *UserService {
	return &UserService{
		store:  store,
		media:  media,
		tokens: tokens,
		hasher: hasher,
		log:    log,
	}
}

// TokenTTLs exposes the configured token lifetimes so the transport can
// align cookie expiries with them.
func (s *UserService) TokenTTLs() (access, refresh time.Duration) {
	return s.tokens.AccessTokenTTL(), s.tokens.RefreshTokenTTL()
}

// Register creates a new account. The avatar is required, the cover
// image optional; both are uploaded before the user row is written so a
// store failure cannot leave the row pointing at missing media.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput, avatarPath, coverPath string) (*dto.UserOutput, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || email == "" || fullName == "" || input.Password == "" || avatarPath == "" {
		return nil, autherror.ErrMissingFields
	}

	existing, err := s.store.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Username == username {
			return nil, autherror.ErrUsernameTaken
		}
		return nil, autherror.ErrEmailAlreadyInUse
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	avatar, err := s.media.Upload(ctx, avatarPath)
	if err != nil {
		return nil, autherror.ErrMediaUploadFailed
	}

	var cover *domain.MediaObject
	if coverPath != "" {
		cover, err = s.media.Upload(ctx, coverPath)
		if err != nil {
			s.deleteMedia(ctx, avatar.Key)
			return nil, autherror.ErrMediaUploadFailed
		}
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		AvatarURL:    avatar.URL,
		AvatarID:     avatar.Key,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if cover != nil {
		user.CoverImageURL = cover.URL
		user.CoverImageID = cover.Key
	}

	if err := s.store.Create(ctx, user); err != nil {
		s.deleteMedia(ctx, avatar.Key)
		if cover != nil {
			s.deleteMedia(ctx, cover.Key)
		}
		return nil, err
	}

	return dto.FromUser(user), nil
}

// Login verifies the credentials and issues a fresh token pair. The new
// refresh token unconditionally replaces any prior one, so at most one
// session per user is ever valid.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, *dto.UserOutput, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if username == "" && email == "" {
		return nil, nil, autherror.ErrMissingFields
	}

	user, err := s.store.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, nil, err
	}

	if user == nil || !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, nil, autherror.ErrInvalidCredentials
	}

	pair, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.store.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    constant.DefaultTokenType,
	}, dto.FromUser(user), nil
}

// Logout clears the stored refresh token. Logging out an already
// logged-out user is not an error.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.store.ClearRefreshToken(ctx, userID)
}

// Refresh rotates the refresh token: the presented token must match the
// stored one byte for byte, and the replacement is written with a
// compare-and-swap so concurrent refreshes resolve to exactly one
// winner. A mismatch means a previously rotated-out token is being
// replayed; the stored token is cleared to invalidate all sessions.
func (s *UserService) Refresh(ctx context.Context, presented string) (*dto.TokenResponse, error) {
	if presented == "" {
		return nil, autherror.ErrUnauthorized
	}

	claims, err := s.tokens.VerifyRefreshToken(presented)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUnauthorized
	}

	if user.CurrentRefreshToken == "" ||
		subtle.ConstantTimeCompare([]byte(presented), []byte(user.CurrentRefreshToken)) != 1 {
		s.log.Warn(ctx, "refresh token reuse detected, invalidating all sessions", "user_id", user.ID)
		if err := s.store.ClearRefreshToken(ctx, user.ID); err != nil {
			s.log.Error(ctx, "failed to clear refresh token after reuse", "user_id", user.ID, "error", err)
		}
		return nil, autherror.ErrRefreshTokenReused
	}

	pair, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}

	swapped, err := s.store.UpdateRefreshToken(ctx, user.ID, presented, pair.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, autherror.ErrRefreshTokenStale
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    constant.DefaultTokenType,
	}, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, input dto.ChangePasswordInput) error {
	if input.OldPassword == "" || input.NewPassword == "" {
		return autherror.ErrMissingFields
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	if !s.hasher.Verify(input.OldPassword, user.PasswordHash) {
		return autherror.ErrInvalidCredentials
	}

	passwordHash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	return s.store.UpdatePassword(ctx, userID, passwordHash)
}

func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserOutput, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}
	return dto.FromUser(user), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput) (*dto.UserOutput, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if fullName == "" || email == "" {
		return nil, autherror.ErrMissingFields
	}

	existing, err := s.store.GetByUsernameOrEmail(ctx, "", email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != userID {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	user, err := s.store.UpdateProfile(ctx, userID, fullName, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return dto.FromUser(user), nil
}

// UpdateAvatar replaces the avatar: the new image is uploaded first,
// then the row is updated, and only then is the old object deleted
// (best effort), so no failure leaves the user without a valid avatar.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, localPath string) (*dto.UserOutput, error) {
	return s.updateMedia(ctx, userID, localPath,
		func(u *domain.User) string { return u.AvatarID },
		s.store.UpdateAvatar)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID, localPath string) (*dto.UserOutput, error) {
	return s.updateMedia(ctx, userID, localPath,
		func(u *domain.User) string { return u.CoverImageID },
		s.store.UpdateCoverImage)
}

func (s *UserService) updateMedia(ctx context.Context, userID, localPath string,
	oldKey func(*domain.User) string,
	persist func(ctx context.Context, id, url, mediaID string) (*domain.User, error)) (*dto.UserOutput, error) {
	if localPath == "" {
		return nil, autherror.ErrMissingFields
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	obj, err := s.media.Upload(ctx, localPath)
	if err != nil {
		return nil, autherror.ErrMediaUploadFailed
	}

	updated, err := persist(ctx, userID, obj.URL, obj.Key)
	if err != nil {
		s.deleteMedia(ctx, obj.Key)
		return nil, err
	}
	if updated == nil {
		s.deleteMedia(ctx, obj.Key)
		return nil, autherror.ErrUserNotFound
	}

	if key := oldKey(user); key != "" {
		s.deleteMedia(ctx, key)
	}

	return dto.FromUser(updated), nil
}

func (s *UserService) deleteMedia(ctx context.Context, key string) {
	if err := s.media.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "failed to delete media object", "key", key, "error", err)
	}
}
