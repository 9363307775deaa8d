package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		headers map[string]string
		status  int
	}{
		{"Disabled", "", nil, fiber.StatusOK},
		{"Missing key", "secret", nil, fiber.StatusUnauthorized},
		{"Wrong key", "secret", map[string]string{Header: "nope"}, fiber.StatusUnauthorized},
		{"Header key", "secret", map[string]string{Header: "secret"}, fiber.StatusOK},
		{"Bearer key", "secret", map[string]string{"Authorization": "Bearer secret"}, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(New(Config{ApiKey: tt.apiKey}))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
