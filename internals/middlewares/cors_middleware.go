package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware allows the comma-separated origins. Credentials are not
// allowed together with a wildcard origin.
func CorsMiddleware(allowOrigins string) fiber.Handler {
	origins := strings.TrimSpace(allowOrigins)
	if origins == "" {
		origins = "http://localhost:5173"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		AllowCredentials: !strings.Contains(origins, "*"),
	})
}
