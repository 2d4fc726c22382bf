package routes

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	middlewares "kntista_backend/internals/middlewares"
)

func TestRateLimiterIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	app := NewApp(nil)
	app.Use(middlewares.GlobalRateLimiter(1, nil))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(c.IP())
	})

	for i, forwarded := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(fiber.HeaderXForwardedFor, forwarded)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		resp.Body.Close()

		want := fiber.StatusOK
		if i > 0 {
			want = fiber.StatusTooManyRequests
		}
		if resp.StatusCode != want {
			t.Fatalf("request %d with X-Forwarded-For %s: expected %d, got %d", i, forwarded, want, resp.StatusCode)
		}
	}
}
