package middleware

import (
	"net/http/httptest"
	"survey-package-backend/config"
	authutils "survey-package-backend/lib/utils/auth-utils"
	"survey-package-backend/models"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp() *fiber.App {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = testSecret

	app := fiber.New()
	app.Use(AuthorizationRequired())
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"id": GetUserID(ctx), "role": GetUserRole(ctx)})
	})
	app.Get("/admin", AdminRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) int {
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthorization(t *testing.T) {
	app := newTestApp()

	t.Run(`no token`, func(t *testing.T) {
		require.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, "/me", ""))
	})

	t.Run(`foreign signature`, func(t *testing.T) {
		token, err := authutils.GetToken("other", 5, models.UserRoleAdmin, time.Minute)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, "/me", token))
	})

	t.Run(`subject is not admin`, func(t *testing.T) {
		token, err := authutils.GetToken(testSecret, 5, models.UserRoleSubject, time.Minute)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, doRequest(t, app, "/me", token))
		require.Equal(t, fiber.StatusForbidden, doRequest(t, app, "/admin", token))
	})

	t.Run(`admin`, func(t *testing.T) {
		token, err := authutils.GetToken(testSecret, 7, models.UserRoleAdmin, time.Minute)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, doRequest(t, app, "/admin", token))
	})
}
