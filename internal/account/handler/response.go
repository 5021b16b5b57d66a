package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	autherror "github.com/Aakash6545/ServerCore/internal/errors"
)

// respondError maps a service error to its HTTP status. 401 responses
// always carry the same body regardless of which check failed.
func respondError(c *fiber.Ctx, err error) error {
	status := autherror.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusUnauthorized {
		msg = autherror.ErrUnauthorized.Error()
	}

	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func respondMessage(c *fiber.Ctx, status int, msg string) error {
	key := "message"
	if status >= http.StatusBadRequest {
		key = "error"
	}

	return c.Status(status).JSON(fiber.Map{key: msg})
}
