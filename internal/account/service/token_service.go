package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/Aakash6545/ServerCore/internal/account/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	autherror "github.com/Aakash6545/ServerCore/internal/errors"
	"github.com/Aakash6545/ServerCore/pkg/constant"
)

type TokenGenerator interface {
	GeneratePair(userID string) (*TokenPair, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

// TokenPair is the ephemeral result of a login or refresh. It is handed
// to the client and never persisted beyond the user's stored refresh
// token.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	TokenKind string `json:"token_kind"`
}

// TokenService signs and verifies the two token kinds. Access and
// refresh tokens use different secrets so a leaked access-token secret
// cannot be used to forge refresh tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	leeway        time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes, leewaySeconds int) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  time.Duration(accessMinutes) * time.Minute,
		refreshExpiry: time.Duration(refreshMinutes) * time.Minute,
		leeway:        time.Duration(leewaySeconds) * time.Second,
	}
}

func (ts *TokenService) GeneratePair(userID string) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(ts.accessExpiry)
	refreshExpiry := now.Add(ts.refreshExpiry)

	accessToken, err := ts.issue(userID, constant.TokenKindAccess, ts.accessSecret, now, accessExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, err := ts.issue(userID, constant.TokenKindRefresh, ts.refreshSecret, now, refreshExpiry)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExpiry,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

func (ts *TokenService) issue(userID, kind string, secret []byte, issuedAt, expiresAt time.Time) (string, error) {
	claims := JWTCustomClaims{
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// A unique jti keeps two rotations issued within the same
			// second from producing identical token strings.
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, constant.TokenKindAccess, ts.accessSecret)
}

func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, constant.TokenKindRefresh, ts.refreshSecret)
}

func (ts *TokenService) verify(tokenString, kind string, secret []byte) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithLeeway(ts.leeway))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrTokenExpired
		}
		return nil, autherror.ErrInvalidToken
	}

	if !token.Valid {
		return nil, autherror.ErrInvalidToken
	}

	if claims.TokenKind != kind {
		return nil, autherror.ErrWrongTokenKind
	}

	return claims, nil
}

func (ts *TokenService) AccessTokenTTL() time.Duration {
	return ts.accessExpiry
}

func (ts *TokenService) RefreshTokenTTL() time.Duration {
	return ts.refreshExpiry
}
