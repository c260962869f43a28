package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/ministries/ministries/controller"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func MinistryAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewMinistryController(db)

	g := admin.Group("/ministries", authMiddleware.IsStaff())
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)

	g.Get("/:id/volunteers", ctl.ListVolunteers)
	g.Post("/:id/volunteers", ctl.AddVolunteer)
	g.Delete("/:id/volunteers/:member_id", ctl.RemoveVolunteer)
}
