package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/content/schools/controller"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func SchoolUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewSchoolController(db)
	user.Get("/schools", ctl.List)
	user.Get("/schools/:id", ctl.GetByID)
}

func SchoolAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewSchoolController(db)
	g := admin.Group("/schools", authMiddleware.IsStaff())
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)

	g.Get("/:id/enrollments", ctl.ListEnrollments)
	g.Post("/:id/enrollments", ctl.Enroll)
	g.Delete("/:id/enrollments/:enrollment_id", ctl.Unenroll)
}
