package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/ministries/demands/controller"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func DemandAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewDemandController(db)

	g := admin.Group("/demands", authMiddleware.IsStaff())
	g.Get("/", ctl.Board)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/move", ctl.Move)
	g.Delete("/:id", ctl.Delete)
}
