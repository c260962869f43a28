package middlewares

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	helper "ecclesia_backend/internals/helpers"
	"ecclesia_backend/internals/helpers/reporter"
)

// ErrorHandler renders every error returned by a handler in the JSON envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return helper.JsonError(c, fe.Code, fe.Message)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Resource not found")
	case helper.IsUniqueViolation(err):
		return helper.JsonError(c, fiber.StatusConflict, "Resource already exists")
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	reporter.Error(pkgerrors.WithStack(err), map[string]interface{}{
		"method":     c.Method(),
		"path":       c.Path(),
		"request_id": c.Locals(LocRequestID),
	})
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
