package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/billing/plans/controller"
)

func PlanPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewPlanController(db)
	public.Get("/plans", ctl.PublicList)
}

func PlanOwnerRoutes(owner fiber.Router, db *gorm.DB) {
	ctl := controller.NewPlanController(db)
	g := owner.Group("/plans")
	g.Get("/", ctl.OwnerList)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
