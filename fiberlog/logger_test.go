package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run(`request fields check`, func(t *testing.T) {
		buf := new(bytes.Buffer)
		logger := logrus.New()
		logger.SetOutput(buf)
		logger.SetFormatter(&logrus.JSONFormatter{})

		app := fiber.New()
		app.Use(New(Config{
			Logger: logger,
			Tags:   []string{TagMethod, TagPath, TagStatus, TagResBody},
		}))
		app.Get("/ping", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "success"})
		})

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "GET", entry[TagMethod])
		require.Equal(t, "/ping", entry[TagPath])
		require.EqualValues(t, 200, entry[TagStatus])
		require.Equal(t, `{"status":"success"}`, entry[TagResBody])
		require.Equal(t, "info", entry["level"])
	})

	t.Run(`unknown tag is skipped`, func(t *testing.T) {
		ftm := getFuncTagMap(Config{Tags: []string{TagPath, "unknown"}})
		require.Len(t, ftm, 1)
	})
}
