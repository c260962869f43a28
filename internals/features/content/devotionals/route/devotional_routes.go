package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/content/devotionals/controller"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func DevotionalUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewDevotionalController(db)
	user.Get("/devotionals", ctl.List)
	user.Get("/devotionals/today", ctl.Today)
	user.Get("/devotionals/:id", ctl.GetByID)
}

func DevotionalAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewDevotionalController(db)
	g := admin.Group("/devotionals", authMiddleware.IsStaff())
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
