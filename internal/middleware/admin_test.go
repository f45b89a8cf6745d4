package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/config"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/identity"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	assert.Nil(t, parseCSV(""))
	assert.Equal(t, []string{"a@trek.io", "b@trek.io"}, parseCSV(" A@trek.io, ,b@trek.io "))
}

func TestAdminRequired(t *testing.T) {
	cfg := &config.Config{AdminEmails: "chief@trek.io", AdminToken: "ops-token"}

	withEmail := func(email string) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if email != "" {
				c.Locals(identity.LocalsKey, &jwt.Token{Claims: jwt.MapClaims{"sub": "x", "email": email}})
			}
			return c.Next()
		}
	}

	tests := []struct {
		name   string
		email  string
		token  string
		status int
	}{
		{"listed email", "Chief@trek.io", "", http.StatusOK},
		{"admin token", "hiker@trek.io", "ops-token", http.StatusOK},
		{"wrong token", "hiker@trek.io", "guess", http.StatusForbidden},
		{"no identity", "", "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", withEmail(tt.email), AdminRequired(cfg), func(c *fiber.Ctx) error {
				return c.SendStatus(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set("X-Admin-Token", tt.token)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
