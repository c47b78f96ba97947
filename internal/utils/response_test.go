package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/career-prep-api/internal/utils"
)

func TestSendSuccessDefaultsMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", map[string]string{"hello": "world"})
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
		Error   *string           `json:"error"`
	}
	decode(t, resp, &payload)

	require.True(t, payload.Success)
	require.Equal(t, "success", payload.Message)
	require.Equal(t, "world", payload.Data["hello"])
	require.Nil(t, payload.Error)
}

func TestSendErrorIncludesCode(t *testing.T) {
	app := fiber.New()
	app.Get("/upstream", func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusBadGateway, "could not generate prediction")
	})
	app.Get("/custom", func(c *fiber.Ctx) error {
		return utils.SendErrorCode(c, fiber.StatusBadRequest, "job does not match interview", "job_mismatch")
	})

	cases := []struct {
		path    string
		status  int
		message string
		code    string
	}{
		{"/upstream", fiber.StatusBadGateway, "could not generate prediction", "upstream_error"},
		{"/custom", fiber.StatusBadRequest, "job does not match interview", "job_mismatch"},
	}

	for _, tc := range cases {
		resp := performRequest(t, app, http.MethodGet, tc.path)
		require.Equal(t, tc.status, resp.StatusCode)

		var payload struct {
			Success bool                   `json:"success"`
			Message string                 `json:"message"`
			Error   string                 `json:"error"`
			Data    map[string]interface{} `json:"data"`
		}
		decode(t, resp, &payload)

		require.False(t, payload.Success)
		require.Equal(t, tc.message, payload.Message)
		require.Equal(t, tc.code, payload.Error)
		require.Nil(t, payload.Data)
	}
}

func performRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
