package handler

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Aakash6545/ServerCore/internal/account/dto"
	"github.com/Aakash6545/ServerCore/internal/account/service"
	autherror "github.com/Aakash6545/ServerCore/internal/errors"
	"github.com/Aakash6545/ServerCore/pkg/constant"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// stageUpload saves a multipart file into the temp dir and returns its
// path. A missing file is reported as an empty path, not an error; the
// service decides whether the field was required.
func stageUpload(c *fiber.Ctx, field string) (string, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", func() {}, nil
	}

	path := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, path); err != nil {
		return "", func() {}, err
	}

	return path, func() { _ = os.Remove(path) }, nil
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	input := dto.RegisterInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		FullName: c.FormValue("full_name"),
		Password: c.FormValue("password"),
	}

	avatarPath, cleanupAvatar, err := stageUpload(c, "avatar")
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "invalid avatar upload")
	}
	defer cleanupAvatar()

	coverPath, cleanupCover, err := stageUpload(c, "coverImage")
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "invalid cover image upload")
	}
	defer cleanupCover()

	user, err := h.userService.Register(c.Context(), input, avatarPath, coverPath)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "invalid input")
	}

	tokens, user, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	accessTTL, refreshTTL := h.userService.TokenTTLs()
	setSessionCookies(c, tokens, accessTTL, refreshTTL)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":   user,
		"tokens": tokens,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	presented := c.Cookies(constant.RefreshTokenCookie)
	if presented == "" {
		var input dto.RefreshInput
		if err := c.BodyParser(&input); err == nil {
			presented = input.RefreshToken
		}
	}

	tokens, err := h.userService.Refresh(c.Context(), presented)
	if err != nil {
		return respondError(c, err)
	}

	accessTTL, refreshTTL := h.userService.TokenTTLs()
	setSessionCookies(c, tokens, accessTTL, refreshTTL)

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return respondError(c, autherror.ErrUnauthorized)
	}

	if err := h.userService.Logout(c.Context(), user.ID); err != nil {
		return respondError(c, err)
	}

	clearSessionCookies(c)

	return respondMessage(c, fiber.StatusOK, "logged out")
}
