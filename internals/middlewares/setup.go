package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"ecclesia_backend/internals/configs"
	"ecclesia_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App, cfg configs.Config) {
	app.Use(RequestID(5 * time.Second))
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware(cfg.LogTimeZone))
	app.Use(CorsMiddleware(cfg.CorsOrigins))
}
