package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	database "ecclesia_backend/internals/databases"
	routeDetails "ecclesia_backend/internals/route/details"
)

func BaseRoutes(app *fiber.App, d routeDetails.Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(d.Cfg.AppName + " API is running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    d.Cfg.Env,
		})
	})
}
