package middlewares

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"

	"ecclesia_backend/internals/helpers/reporter"
)

// RecoveryMiddleware turns panics into 500 and reports them.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			err, ok := e.(error)
			if !ok {
				err = fmt.Errorf("%v", e)
			}
			log.Printf("[PANIC] %s %s: %v", c.Method(), c.OriginalURL(), err)
			reporter.Critical(errors.WithStack(err), map[string]interface{}{
				"method":     c.Method(),
				"path":       c.Path(),
				"request_id": c.Locals(LocRequestID),
			})
		},
	})
}
