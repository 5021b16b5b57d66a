package errors

import (
	"errors"
	"net/http"
)

var (
	ErrMissingFields      = errors.New("all required fields must be provided")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("unauthorized request")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrWrongTokenKind     = errors.New("wrong token kind")
	ErrRefreshTokenReused = errors.New("refresh token expired or already used")
	ErrRefreshTokenStale  = errors.New("refresh token superseded by a concurrent refresh")
	ErrMediaUploadFailed  = errors.New("media upload failed")
	ErrStoreUnavailable   = errors.New("user store unavailable")
)

// HTTPStatus maps a service error to the status code exposed at the HTTP
// boundary. Every authentication-related failure collapses to a single
// 401 so the response does not reveal which check rejected the request.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailAlreadyInUse):
		return http.StatusConflict
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrWrongTokenKind),
		errors.Is(err, ErrRefreshTokenReused),
		errors.Is(err, ErrRefreshTokenStale):
		return http.StatusUnauthorized
	case errors.Is(err, ErrMediaUploadFailed):
		return http.StatusBadGateway
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
