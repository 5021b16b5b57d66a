package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aakash6545/ServerCore/internal/account/domain"
	"github.com/Aakash6545/ServerCore/internal/account/handler"
	"github.com/Aakash6545/ServerCore/internal/account/service"
	"github.com/Aakash6545/ServerCore/internal/mocks"
	"github.com/Aakash6545/ServerCore/pkg/constant"
)

func newMiddlewareApp(t *testing.T, accessMinutes int) (*fiber.App, service.TokenGenerator, *mocks.MockUserStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := mocks.NewMockUserStore(ctrl)
	tokens := service.NewTokenService("access-secret", "refresh-secret", accessMinutes, 60, 0)
	m := handler.NewAuthMiddleware(tokens, store)

	app := fiber.New()
	app.Get("/me", m.RequireAuth(), func(c *fiber.Ctx) error {
		user := handler.CurrentUser(c)
		require.NotNil(t, user)
		return c.Status(fiber.StatusOK).JSON(user)
	})

	return app, tokens, store
}

func TestRequireAuth(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		app, _, _ := newMiddlewareApp(t, 15)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		app, _, _ := newMiddlewareApp(t, 15)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: "not-a-jwt"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		app, tokens, _ := newMiddlewareApp(t, -1)

		pair, err := tokens.GeneratePair("user-123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: pair.AccessToken})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		app, tokens, _ := newMiddlewareApp(t, 15)

		pair, err := tokens.GeneratePair("user-123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: pair.RefreshToken})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid cookie", func(t *testing.T) {
		app, tokens, store := newMiddlewareApp(t, 15)

		pair, err := tokens.GeneratePair("user-123")
		require.NoError(t, err)
		store.EXPECT().GetByID(gomock.Any(), "user-123").
			Return(&domain.User{ID: "user-123", Username: "alice"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: pair.AccessToken})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("bearer header fallback", func(t *testing.T) {
		app, tokens, store := newMiddlewareApp(t, 15)

		pair, err := tokens.GeneratePair("user-123")
		require.NoError(t, err)
		store.EXPECT().GetByID(gomock.Any(), "user-123").
			Return(&domain.User{ID: "user-123", Username: "alice"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, constant.DefaultTokenType+" "+pair.AccessToken)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		app, tokens, store := newMiddlewareApp(t, 15)

		pair, err := tokens.GeneratePair("user-123")
		require.NoError(t, err)
		store.EXPECT().GetByID(gomock.Any(), "user-123").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: pair.AccessToken})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
