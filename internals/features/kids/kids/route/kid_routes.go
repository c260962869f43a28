package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/kids/kids/controller"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func KidUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewKidController(db)
	user.Get("/kids/mine", ctl.Mine)
}

func KidAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewKidController(db)
	staff := authMiddleware.IsStaff()

	kids := admin.Group("/kids", staff)
	kids.Get("/", ctl.List)
	kids.Get("/:id", ctl.GetByID)
	kids.Post("/", ctl.Create)
	kids.Patch("/:id", ctl.Update)
	kids.Delete("/:id", ctl.Delete)
	kids.Post("/:id/checkin", ctl.CheckIn)

	checkins := admin.Group("/checkins", staff)
	checkins.Get("/open", ctl.ListOpen)
	checkins.Post("/:id/checkout", ctl.CheckOut)
}
