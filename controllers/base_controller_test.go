package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	apperrors "survey-package-backend/lib/utils/app-errors"
	apimodels "survey-package-backend/models/api"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestErrorStatus(t *testing.T) {
	cases := map[int]error{
		fiber.StatusBadRequest:          apperrors.InvalidInput("x"),
		fiber.StatusNotFound:            apperrors.NotFound("x"),
		fiber.StatusConflict:            apperrors.Conflict("x"),
		fiber.StatusUnprocessableEntity: apperrors.Unprocessable("x"),
	}
	for status, err := range cases {
		require.Equal(t, status, ErrorStatus(err))
		require.Equal(t, status, ErrorStatus(errors.Wrap(err, "обертка")))
	}
	require.Equal(t, fiber.StatusInternalServerError, ErrorStatus(apperrors.Internal("x")))
	require.Equal(t, fiber.StatusInternalServerError, ErrorStatus(errors.New("db down")))
}

func TestSendError(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	app.Get("/conflict", func(ctx *fiber.Ctx) error {
		return c.SendError(ctx, log.NewEntry(log.StandardLogger()), apperrors.Conflict("уже есть"), "ошибка")
	})
	app.Get("/internal", func(ctx *fiber.Ctx) error {
		return c.SendError(ctx, log.NewEntry(log.StandardLogger()), errors.New("pq: connection refused"), "ошибка сохранения")
	})
	app.Get("/param/:id", func(ctx *fiber.Ctx) error {
		id, err := c.GetID(ctx)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return ctx.JSON(id)
	})

	call := func(t *testing.T, path string) (int, string) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	t.Run(`app error message is returned`, func(t *testing.T) {
		status, body := call(t, "/conflict")
		require.Equal(t, fiber.StatusConflict, status)
		var resp apimodels.Response
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		require.Equal(t, "fail", resp.Status)
		require.Equal(t, "уже есть", resp.Message)
	})

	t.Run(`internal error is hidden`, func(t *testing.T) {
		status, body := call(t, "/internal")
		require.Equal(t, fiber.StatusInternalServerError, status)
		require.Contains(t, body, "ошибка сохранения")
		require.NotContains(t, body, "connection refused")
	})

	t.Run(`id param`, func(t *testing.T) {
		status, body := call(t, "/param/42")
		require.Equal(t, fiber.StatusOK, status)
		require.Equal(t, "42", body)

		status, body = call(t, "/param/abc")
		require.Equal(t, fiber.StatusBadRequest, status)
		require.Equal(t, "некорректный параметр id", body)
	})
}
