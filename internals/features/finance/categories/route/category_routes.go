package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/finance/categories/controller"
)

// CategoryRoutes expects a router already guarded for finance roles.
func CategoryRoutes(finance fiber.Router, db *gorm.DB) {
	ctl := controller.NewCategoryController(db)
	g := finance.Group("/categories")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Rename)
	g.Delete("/:id", ctl.Delete)
}
