package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Aakash6545/ServerCore/internal/account/dto"
	autherror "github.com/Aakash6545/ServerCore/internal/errors"
)

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return respondError(c, autherror.ErrUnauthorized)
	}

	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := h.userService.ChangePassword(c.Context(), user.ID, input); err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, fiber.StatusOK, "password updated")
}

func (h *AuthHandler) GetCurrentUser(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return respondError(c, autherror.ErrUnauthorized)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return respondError(c, autherror.ErrUnauthorized)
	}

	var input dto.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := h.userService.UpdateProfile(c.Context(), user.ID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *AuthHandler) UpdateAvatar(c *fiber.Ctx) error {
	return h.updateMedia(c, "avatar", h.userService.UpdateAvatar)
}

func (h *AuthHandler) UpdateCoverImage(c *fiber.Ctx) error {
	return h.updateMedia(c, "coverImage", h.userService.UpdateCoverImage)
}

func (h *AuthHandler) updateMedia(c *fiber.Ctx, field string,
	update func(ctx context.Context, userID, localPath string) (*dto.UserOutput, error)) error {
	user := CurrentUser(c)
	if user == nil {
		return respondError(c, autherror.ErrUnauthorized)
	}

	localPath, cleanup, err := stageUpload(c, field)
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "invalid file upload")
	}
	defer cleanup()

	updated, err := update(c.Context(), user.ID, localPath)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}
