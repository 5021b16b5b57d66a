package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Aakash6545/ServerCore/internal/account/dto"
	"github.com/Aakash6545/ServerCore/pkg/constant"
)

func sessionCookie(name, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expires,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// setSessionCookies mirrors the token pair into httpOnly cookies whose
// expiry matches each token's lifetime.
func setSessionCookies(c *fiber.Ctx, tokens *dto.TokenResponse, accessTTL, refreshTTL time.Duration) {
	now := time.Now()
	c.Cookie(sessionCookie(constant.AccessTokenCookie, tokens.AccessToken, now.Add(accessTTL)))
	c.Cookie(sessionCookie(constant.RefreshTokenCookie, tokens.RefreshToken, now.Add(refreshTTL)))
}

func clearSessionCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(sessionCookie(constant.AccessTokenCookie, "", expired))
	c.Cookie(sessionCookie(constant.RefreshTokenCookie, "", expired))
}
