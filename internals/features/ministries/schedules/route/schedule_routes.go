package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/ministries/schedules/controller"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func ScheduleAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewScheduleController(db)

	g := admin.Group("/schedules", authMiddleware.IsStaff())
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/assignments", ctl.AddAssignment)
	g.Delete("/:id/assignments/:assignment_id", ctl.RemoveAssignment)
}

func ScheduleUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewScheduleController(db)
	user.Get("/schedules/mine", ctl.Mine)
	user.Patch("/schedules/assignments/:id", ctl.Respond)
}
