package constant

const (
	// Cookie names used by the session boundary.
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	// Token kinds carried in the token_kind claim.
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"

	DefaultTokenType = "Bearer"

	// Key under which the authenticated identity is stored in the
	// request context by the auth middleware.
	CurrentUserKey = "current_user"
)
