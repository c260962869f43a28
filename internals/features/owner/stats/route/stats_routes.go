package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/owner/stats/controller"
)

func StatsOwnerRoutes(owner fiber.Router, db *gorm.DB) {
	ctl := controller.NewStatsController(db)
	owner.Get("/stats", ctl.Get)
}
