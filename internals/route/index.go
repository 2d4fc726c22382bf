package routes

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "kntista_backend/internals/route/details"
)

var startTime time.Time

// NewApp builds the Fiber app with the sonic JSON codec. X-Forwarded-For is
// only honoured when the peer is one of trustedProxies; otherwise c.IP() is
// the socket address.
func NewApp(trustedProxies []string) *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          trustedProxies,
	})
}

func SetupRoutes(app *fiber.App, db *gorm.DB, services *routeDetails.ActivityServices) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Mounting activity routes under /api...")
	api := app.Group("/api")
	routeDetails.ActivityRoutes(api, services)
}
