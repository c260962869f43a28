package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/content/events/controller"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func EventUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewEventController(db)
	user.Get("/events", ctl.List)
	user.Get("/events/:id", ctl.GetByID)
}

func EventAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewEventController(db)
	g := admin.Group("/events", authMiddleware.IsStaff())
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
