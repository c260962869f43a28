package logger

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// quiet paths are polled by health checks or held open for minutes
var quiet = []string{"/health", "/realtime/stream"}

// LoggerMiddleware writes one access line per request, tagged with the tenant
// resolved by the auth chain (empty on public routes).
func LoggerMiddleware(timeZone string) fiber.Handler {
	if timeZone == "" {
		timeZone = "UTC"
	}
	return logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			for _, p := range quiet {
				if strings.HasSuffix(c.Path(), p) {
					return true
				}
			}
			return false
		},
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   timeZone,
		Format:     "[${time}] ${status} ${method} ${path} ${latency} ip=${ip} church=${locals:church_id} req=${locals:reqid}\n",
	})
}
