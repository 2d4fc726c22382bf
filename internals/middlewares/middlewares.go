package middlewares

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"kntista_backend/internals/configs"
	"kntista_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the global chain. It returns the limiter
// storage, if any, so the caller can close it on shutdown.
func SetupMiddlewares(app *fiber.App, cfg configs.AppConfig) fiber.Storage {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(5 * time.Second))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.AllowOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	var storage fiber.Storage
	if cfg.RedisURL != "" {
		redisStorage, err := NewRedisStorage(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("[ERROR] rate limiter storage: %v", err)
		}
		log.Println("[INFO] rate limiter counters in redis")
		storage = redisStorage
	}
	app.Use(GlobalRateLimiter(cfg.RateLimitMax, storage))
	return storage
}
