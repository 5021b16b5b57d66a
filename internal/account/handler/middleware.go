package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Aakash6545/ServerCore/internal/account/domain"
	"github.com/Aakash6545/ServerCore/internal/account/dto"
	"github.com/Aakash6545/ServerCore/internal/account/service"
	autherror "github.com/Aakash6545/ServerCore/internal/errors"
	"github.com/Aakash6545/ServerCore/pkg/constant"
)

// AuthMiddleware gates protected routes: it extracts the access token
// from the cookie (or a bearer header), verifies it, resolves the user,
// and attaches the sanitized identity to the request context.
type AuthMiddleware struct {
	tokens service.TokenGenerator
	store  domain.UserStore
}

func NewAuthMiddleware(tokens service.TokenGenerator, store domain.UserStore) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, store: store}
}

func extractAccessToken(c *fiber.Ctx) string {
	if token := c.Cookies(constant.AccessTokenCookie); token != "" {
		return token
	}

	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}

	return ""
}

func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractAccessToken(c)
		if token == "" {
			return respondError(c, autherror.ErrUnauthorized)
		}

		claims, err := m.tokens.VerifyAccessToken(token)
		if err != nil {
			return respondError(c, autherror.ErrUnauthorized)
		}

		user, err := m.store.GetByID(c.Context(), claims.Subject)
		if err != nil || user == nil {
			return respondError(c, autherror.ErrUnauthorized)
		}

		c.Locals(constant.CurrentUserKey, dto.FromUser(user))

		return c.Next()
	}
}

// CurrentUser returns the identity attached by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *dto.UserOutput {
	user, _ := c.Locals(constant.CurrentUserKey).(*dto.UserOutput)
	return user
}
