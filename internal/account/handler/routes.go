package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, m *AuthMiddleware) {
	users := app.Group("/api/v1/users")

	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Post("/refresh-tokens", h.Refresh)

	// Protected routes
	users.Post("/logout", m.RequireAuth(), h.Logout)
	users.Post("/change-password", m.RequireAuth(), h.ChangePassword)
	users.Get("/me", m.RequireAuth(), h.GetCurrentUser)
	users.Patch("/update-details", m.RequireAuth(), h.UpdateProfile)
	users.Patch("/update-avatar", m.RequireAuth(), h.UpdateAvatar)
	users.Patch("/update-cover", m.RequireAuth(), h.UpdateCoverImage)
}
